package domain

import "time"

// PaymentCard holds a stored card. The number is kept only as
// authenticated ciphertext; last_four is the only displayable fragment.
// The CVV is never persisted.
type PaymentCard struct {
	ID                  string    `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	EncryptedCardNumber []byte    `json:"-" db:"encrypted_card_number"`
	LastFour            string    `json:"last_four" db:"last_four"`
	CardholderName      string    `json:"cardholder_name" db:"cardholder_name"`
	ExpiryMonth         int       `json:"expiry_month" db:"expiry_month"`
	ExpiryYear          int       `json:"expiry_year" db:"expiry_year"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}
