package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// OrderRepo persists orders and their item snapshots.
type OrderRepo struct {
	q database.Querier
}

// Create inserts a new order.
func (r *OrderRepo) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_amount, shipping_address, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.TotalAmount,
		order.ShippingAddress,
		string(order.Status),
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// UpdateStatus moves an order from one status to another. The old status
// in the WHERE clause enforces the pending-only transition rule.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("order status cannot change from %s to %s", from, to)
	}

	query := `UPDATE orders SET status = ? WHERE id = ? AND status = ?`

	result, err := r.q.ExecContext(ctx, query, string(to), orderID, string(from))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("order %s in status %s not found: %w", orderID, from, ErrNotFound)
	}

	return nil
}

// AddItem records one product line of an order with its price snapshot.
func (r *OrderRepo) AddItem(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.q.ExecContext(ctx, query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to add order item: %w", err)
	}

	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, total_amount, shipping_address, status, created_at
		FROM orders
		WHERE id = ?
	`

	order := &domain.Order{}
	var status string

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalAmount,
		&order.ShippingAddress,
		&status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Status = domain.OrderStatus(status)
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `
		SELECT id, user_id, total_amount, shipping_address, status, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order := &domain.Order{}
		var status string
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.ShippingAddress,
			&status,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, nil
}

// HasSuccessfulPurchase reports whether the user has a successful order
// containing the product. Reviews are gated on this.
func (r *OrderRepo) HasSuccessfulPurchase(ctx context.Context, userID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM orders o
			JOIN order_items i ON i.order_id = o.id
			WHERE o.user_id = ? AND i.product_id = ? AND o.status = 'successful'
		)
	`

	var exists bool
	if err := r.q.QueryRowContext(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return exists, nil
}
