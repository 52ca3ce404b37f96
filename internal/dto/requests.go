package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required" form:"username"`
	Email    string `json:"email" binding:"required" form:"email"`
	Password string `json:"password" binding:"required" form:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" form:"username"`
	Password string `json:"password" binding:"required" form:"password"`
}

// AddToCartRequest represents an add-to-cart request
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required" form:"product_id"`
	Quantity  *int   `json:"quantity" binding:"required" form:"quantity"`
}

// CheckoutRequest represents a checkout request. CardToken is an opaque
// gateway reference, never a raw card number.
type CheckoutRequest struct {
	CardToken       string `json:"card_token" binding:"required" form:"card_token"`
	ShippingAddress string `json:"shipping_address" binding:"required" form:"shipping_address"`
}

// SearchRequest represents product search criteria from query params.
type SearchRequest struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	MinPrice    *float64 `form:"min_price"`
	MaxPrice    *float64 `form:"max_price"`
}

// ReviewRequest represents a review submission
type ReviewRequest struct {
	ProductID string `json:"product_id" binding:"required" form:"product_id"`
	Rating    *int   `json:"rating" binding:"required" form:"rating"`
	Text      string `json:"text" binding:"required" form:"text"`
}

// CardRequest represents a payment card registration. The number and CVV
// are validated and then discarded; only ciphertext and last_four persist.
type CardRequest struct {
	CardNumber     string `json:"card_number" binding:"required" form:"card_number"`
	CardholderName string `json:"cardholder_name" binding:"required" form:"cardholder_name"`
	ExpiryMonth    *int   `json:"expiry_month" binding:"required" form:"expiry_month"`
	ExpiryYear     *int   `json:"expiry_year" binding:"required" form:"expiry_year"`
	CVV            string `json:"cvv" binding:"required" form:"cvv"`
}

// ProductRequest represents an admin product create/update. Pointers
// keep zero prices and zero stock distinguishable from absent fields.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required" form:"name"`
	Description string   `json:"description" form:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0" form:"price"`
	Stock       *int     `json:"stock" binding:"required,gte=0" form:"stock"`
}

// UnsubscribeRequest carries the optional reason given on redemption.
type UnsubscribeRequest struct {
	Reason string `json:"reason" form:"reason"`
}
