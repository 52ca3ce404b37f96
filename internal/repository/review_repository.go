package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// ReviewRepo persists product reviews.
type ReviewRepo struct {
	q database.Querier
}

// Create inserts a review. The (user, product) unique constraint keeps
// reviews to one per user per product.
func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, rating, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx, query,
		review.ID,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Body,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("review for this product already exists: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct returns a product's reviews, newest first.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, rating, body, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		review := &domain.Review{}
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Rating,
			&review.Body,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}
