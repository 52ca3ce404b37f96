package domain

import "time"

// OrderStatus is the outcome of a checkout attempt.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderSuccessful OrderStatus = "successful"
	OrderFailed     OrderStatus = "failed"
)

// CanTransition reports whether an order may move to the given status.
// Orders are immutable once they leave pending.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return s == OrderPending && (to == OrderSuccessful || to == OrderFailed)
}

// Order is a frozen snapshot of a cart plus the payment outcome.
type Order struct {
	ID              string      `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	TotalAmount     float64     `json:"total_amount" db:"total_amount"`
	ShippingAddress string      `json:"shipping_address" db:"shipping_address"`
	Status          OrderStatus `json:"status" db:"status"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// OrderItem records one product line of an order. UnitPrice is the
// product price at order time and never follows later price changes.
type OrderItem struct {
	OrderID   string  `json:"order_id" db:"order_id"`
	ProductID string  `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}
