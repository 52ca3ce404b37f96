package domain

import "time"

// UnsubscribeToken is a single-use token backing an unsubscribe link.
// Consumed flips to true on redemption and never flips back.
type UnsubscribeToken struct {
	TokenHash string    `json:"-" db:"token_hash"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Consumed  bool      `json:"consumed" db:"consumed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Redeemable reports whether the token can still be consumed.
func (t UnsubscribeToken) Redeemable(now time.Time) bool {
	return !t.Consumed && now.Before(t.ExpiresAt)
}
