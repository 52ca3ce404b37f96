package domain

import "time"

// User represents a registered shopper or administrator.
type User struct {
	ID                string    `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	Email             string    `json:"email" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	IsAdmin           bool      `json:"is_admin" db:"is_admin"`
	IsSubscribed      bool      `json:"is_subscribed" db:"is_subscribed"`
	UnsubscribeReason *string   `json:"-" db:"unsubscribe_reason"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Session binds an opaque token to a user. Only the SHA-256 hash of the
// token is stored; the raw value exists only in the cookie.
type Session struct {
	TokenHash string     `json:"-" db:"token_hash"`
	UserID    string     `json:"user_id" db:"user_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	RevokedAt *time.Time `json:"-" db:"revoked_at"`
}

// Active reports whether the session can still authenticate requests.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
