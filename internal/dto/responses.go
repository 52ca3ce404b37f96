package dto

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// UserResponse represents a user profile response
type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	IsSubscribed bool   `json:"is_subscribed"`
	CreatedAt    string `json:"created_at"`
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// SearchResultResponse is one ranked search hit
type SearchResultResponse struct {
	ProductResponse
	Relevance int `json:"relevance"`
}

// SearchResponse represents ranked search results
type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
	Count   int                    `json:"count"`
}

// CheckoutResponse represents a successful checkout
type CheckoutResponse struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}

// ReviewResponse represents a created review
type ReviewResponse struct {
	ReviewID string `json:"review_id"`
}

// CardResponse represents a newly stored card. Only the last four digits
// of the number are ever returned.
type CardResponse struct {
	CardID   string `json:"card_id"`
	LastFour string `json:"last_four"`
}

// CardListItem is a stored card in masked form
type CardListItem struct {
	CardID         string `json:"card_id"`
	LastFour       string `json:"last_four"`
	CardholderName string `json:"cardholder_name"`
	ExpiryMonth    int    `json:"expiry_month"`
	ExpiryYear     int    `json:"expiry_year"`
}

// CardListResponse lists the caller's stored cards
type CardListResponse struct {
	Cards []CardListItem `json:"cards"`
}

// UnsubscribeLinkResponse returns a freshly minted unsubscribe link
type UnsubscribeLinkResponse struct {
	Message        string `json:"message"`
	UnsubscribeURL string `json:"unsubscribe_url"`
}

// UnsubscribeFormResponse describes a valid unsubscribe token to the
// page that renders the form
type UnsubscribeFormResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}
