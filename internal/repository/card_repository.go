package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// CardRepo persists stored payment cards. Only ciphertext and the last
// four digits ever reach this layer.
type CardRepo struct {
	q database.Querier
}

// Create inserts a new payment card.
func (r *CardRepo) Create(ctx context.Context, card *domain.PaymentCard) error {
	query := `
		INSERT INTO payment_cards (id, user_id, encrypted_card_number, last_four, cardholder_name, expiry_month, expiry_year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx, query,
		card.ID,
		card.UserID,
		card.EncryptedCardNumber,
		card.LastFour,
		card.CardholderName,
		card.ExpiryMonth,
		card.ExpiryYear,
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment card: %w", err)
	}

	return nil
}

// ListByUser returns the user's stored cards, newest first.
func (r *CardRepo) ListByUser(ctx context.Context, userID string) ([]*domain.PaymentCard, error) {
	query := `
		SELECT id, user_id, encrypted_card_number, last_four, cardholder_name, expiry_month, expiry_year, created_at
		FROM payment_cards
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.PaymentCard
	for rows.Next() {
		card := &domain.PaymentCard{}
		if err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.EncryptedCardNumber,
			&card.LastFour,
			&card.CardholderName,
			&card.ExpiryMonth,
			&card.ExpiryYear,
			&card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment cards: %w", err)
	}

	return cards, nil
}
