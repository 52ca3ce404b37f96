package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/pkg/database"
)

// ProductRepo persists catalog products.
type ProductRepo struct {
	q database.Querier
}

// SearchFilter holds the optional product search criteria. Provided
// filters are AND-combined; at least one must be set.
type SearchFilter struct {
	Name        string
	Description string
	MinPrice    *float64
	MaxPrice    *float64
}

// Empty reports whether no criteria were provided.
func (f SearchFilter) Empty() bool {
	return f.Name == "" && f.Description == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SearchResult pairs a product with its relevance score.
type SearchResult struct {
	Product   domain.Product
	Relevance int
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products
		WHERE id = ?
	`

	product := &domain.Product{}
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Update replaces a product's editable fields.
func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, stock = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.q.ExecContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		time.Now().UTC(),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product with id %s not found: %w", product.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a product. Cart items referencing it cascade away.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = ?`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

// DecrementStock subtracts quantity from a product's stock only if the
// result stays non-negative. The guard in the WHERE clause, not a check
// after read, is what keeps stock from going below zero under
// concurrent checkouts.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	query := `UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`

	result, err := r.q.ExecContext(ctx, query, quantity, time.Now().UTC(), id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
	}

	return nil
}

// Search runs a parameterized query AND-combining the provided filters
// and ranks results by relevance: +2 for a name match, +1 for a
// description match. Price-only queries fall through to price ascending.
func (r *ProductRepo) Search(ctx context.Context, f SearchFilter, limit int) ([]SearchResult, error) {
	where := []string{}
	args := []any{}

	scoreExprs := []string{"0"}
	scoreArgs := []any{}

	if f.Name != "" {
		term := "%" + strings.ToLower(f.Name) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, term, term)
		scoreExprs = append(scoreExprs,
			"CASE WHEN LOWER(name) LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN LOWER(description) LIKE ? THEN 1 ELSE 0 END",
		)
		scoreArgs = append(scoreArgs, term, term)
	}
	if f.Description != "" {
		term := "%" + strings.ToLower(f.Description) + "%"
		where = append(where, "LOWER(description) LIKE ?")
		args = append(args, term)
		scoreExprs = append(scoreExprs,
			"CASE WHEN LOWER(description) LIKE ? THEN 1 ELSE 0 END",
		)
		scoreArgs = append(scoreArgs, term)
	}
	if f.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *f.MaxPrice)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	query := `
		SELECT id, name, description, price, stock, created_at, updated_at,
			(` + strings.Join(scoreExprs, " + ") + `) AS relevance
		FROM products
		WHERE ` + cond + `
		ORDER BY relevance DESC, price ASC, name ASC
		LIMIT ?
	`

	queryArgs := append(append(append([]any{}, scoreArgs...), args...), limit)

	rows, err := r.q.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	results := make([]SearchResult, 0, limit)
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(
			&res.Product.ID,
			&res.Product.Name,
			&res.Product.Description,
			&res.Product.Price,
			&res.Product.Stock,
			&res.Product.CreatedAt,
			&res.Product.UpdatedAt,
			&res.Relevance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return results, nil
}
