package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// UnsubscribeTokenRepo persists single-use unsubscribe tokens, stored as
// SHA-256 hashes like session tokens.
type UnsubscribeTokenRepo struct {
	q database.Querier
}

// Create inserts a new unsubscribe token.
func (r *UnsubscribeTokenRepo) Create(ctx context.Context, token *domain.UnsubscribeToken) error {
	query := `
		INSERT INTO unsubscribe_tokens (token_hash, user_id, expires_at, consumed, created_at)
		VALUES (?, ?, ?, 0, ?)
	`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx, query,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("token already exists: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create unsubscribe token: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves an unsubscribe token by its hash.
func (r *UnsubscribeTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UnsubscribeToken, error) {
	query := `
		SELECT token_hash, user_id, expires_at, consumed, created_at
		FROM unsubscribe_tokens
		WHERE token_hash = ?
	`

	token := &domain.UnsubscribeToken{}
	err := r.q.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.TokenHash,
		&token.UserID,
		&token.ExpiresAt,
		&token.Consumed,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("unsubscribe token not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get unsubscribe token: %w", err)
	}

	return token, nil
}

// Consume flips the token to consumed. The consumed = 0 guard makes
// redemption single-use even under concurrent requests; zero affected
// rows means the token was already spent or never existed.
func (r *UnsubscribeTokenRepo) Consume(ctx context.Context, tokenHash string) error {
	query := `UPDATE unsubscribe_tokens SET consumed = 1 WHERE token_hash = ? AND consumed = 0`

	result, err := r.q.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to consume unsubscribe token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("unsubscribe token not redeemable: %w", ErrNotFound)
	}

	return nil
}
