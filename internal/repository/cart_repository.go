package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// CartRepo persists cart items.
type CartRepo struct {
	q database.Querier
}

// Upsert adds quantity to the user's cart line for a product, creating
// the line if it does not exist. The (user, product) primary key keeps
// the cart to one row per product.
func (r *CartRepo) Upsert(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = quantity + excluded.quantity
	`

	_, err := r.q.ExecContext(ctx, query, userID, productID, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// LinesByUser returns the user's cart joined with product data, in the
// order the lines were added.
func (r *CartRepo) LinesByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.created_at, p.updated_at, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.Product.ID,
			&line.Product.Name,
			&line.Product.Description,
			&line.Product.Price,
			&line.Product.Stock,
			&line.Product.CreatedAt,
			&line.Product.UpdatedAt,
			&line.Quantity,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	return lines, nil
}

// DeleteByUser empties the user's cart. Checkout calls this after the
// order is recorded.
func (r *CartRepo) DeleteByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = ?`

	if _, err := r.q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}
