package utils

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitsRegex = regexp.MustCompile(`^[0-9]+$`)
)

const (
	maxUsernameLen   = 80
	maxReviewTextLen = 500
)

// ValidateEmail validates an email address against a simple RFC shape.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUsername requires a non-empty username of at most 80 characters.
func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	return username != "" && len(username) <= maxUsernameLen
}

// SanitizeEmail normalizes an email address for storage and lookup.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCardNumber checks a card number is 13-19 digits, optionally
// enforcing the Luhn checksum.
func ValidateCardNumber(number string, luhn bool) bool {
	if len(number) < 13 || len(number) > 19 || !digitsRegex.MatchString(number) {
		return false
	}
	if luhn && !Luhn(number) {
		return false
	}
	return true
}

// Luhn verifies the Luhn checksum of a digit string.
func Luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateCVV checks a CVV is 3 or 4 digits. The value is validated and
// then discarded; it must never reach storage.
func ValidateCVV(cvv string) bool {
	return (len(cvv) == 3 || len(cvv) == 4) && digitsRegex.MatchString(cvv)
}

// ValidateExpiry checks the expiry month is 1-12 and the card is valid
// through at least the current month.
func ValidateExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}

// ValidateRating checks a review rating is an integer from 1 to 5.
func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ValidateReviewText requires non-empty review text of at most 500
// characters.
func ValidateReviewText(text string) bool {
	return strings.TrimSpace(text) != "" && len(text) <= maxReviewTextLen
}

// LastFour returns the trailing four digits of a card number, the only
// fragment safe to display.
func LastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}
