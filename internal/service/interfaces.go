package service

import (
	"context"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
)

// AuthService defines registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Resolve(ctx context.Context, rawToken string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

// CatalogService defines product reads, search, and admin writes.
type CatalogService interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, req *dto.SearchRequest) ([]repository.SearchResult, error)
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// CartService defines cart mutation and checkout.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) error
	Checkout(ctx context.Context, userID, cardToken, shippingAddress string) (*dto.CheckoutResponse, error)
}

// CardService defines stored payment card entry and masked listing.
type CardService interface {
	AddCard(ctx context.Context, userID string, req *dto.CardRequest) (*dto.CardResponse, error)
	ListCards(ctx context.Context, userID string) (*dto.CardListResponse, error)
}

// ReviewService defines purchase-gated review submission.
type ReviewService interface {
	AddReview(ctx context.Context, userID string, req *dto.ReviewRequest) (*dto.ReviewResponse, error)
}

// NewsletterService defines the unsubscribe token lifecycle.
type NewsletterService interface {
	MintToken(ctx context.Context, userID string) (string, error)
	CheckToken(ctx context.Context, rawToken string) error
	Redeem(ctx context.Context, rawToken, reason string) error
}
