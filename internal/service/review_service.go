package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/internal/utils"
)

type reviewService struct {
	repos *repository.Repositories
}

// NewReviewService creates the review service.
func NewReviewService(repos *repository.Repositories) ReviewService {
	return &reviewService{repos: repos}
}

// AddReview stores a review if the caller has a successful order
// containing the product. One review per user per product.
func (s *reviewService) AddReview(ctx context.Context, userID string, req *dto.ReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating == nil {
		return nil, domain.MissingField("rating")
	}
	if !utils.ValidateRating(*req.Rating) {
		return nil, domain.Invalid("rating must be an integer from 1 to 5")
	}

	text := strings.TrimSpace(req.Text)
	if !utils.ValidateReviewText(text) {
		return nil, domain.Invalid("review text must be 1-500 characters")
	}

	purchased, err := s.repos.Orders.HasSuccessfulPurchase(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, fmt.Errorf("%w: reviews require a completed purchase of the product", domain.ErrForbidden)
	}

	review := &domain.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    *req.Rating,
		Body:      text,
	}

	if err := s.repos.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: product already reviewed", domain.ErrConflict)
		}
		return nil, err
	}

	return &dto.ReviewResponse{ReviewID: review.ID}, nil
}
