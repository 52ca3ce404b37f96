package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
)

type catalogService struct {
	repos       *repository.Repositories
	searchLimit int
}

// NewCatalogService creates the product catalog service.
func NewCatalogService(repos *repository.Repositories, searchLimit int) CatalogService {
	return &catalogService{
		repos:       repos,
		searchLimit: searchLimit,
	}
}

// GetProduct returns one product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repos.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

// Search runs a ranked product search. At least one criterion is
// required; an unbounded listing is not a search.
func (s *catalogService) Search(ctx context.Context, req *dto.SearchRequest) ([]repository.SearchResult, error) {
	filter := repository.SearchFilter{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}

	if filter.Empty() {
		return nil, domain.Invalid("at least one search criterion is required")
	}
	if filter.MinPrice != nil && *filter.MinPrice < 0 {
		return nil, domain.Invalid("min_price must be non-negative")
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, domain.Invalid("max_price must be non-negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, domain.Invalid("min_price cannot exceed max_price")
	}

	return s.repos.Products.Search(ctx, filter, s.searchLimit)
}

// CreateProduct adds a catalog entry.
func (s *catalogService) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*domain.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct replaces a product's editable fields.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, req *dto.ProductRequest) (*domain.Product, error) {
	product, err := productFromRequest(req)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.repos.Products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product. Cart lines referencing it cascade
// away; order item snapshots keep their copied data.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.repos.Products.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func productFromRequest(req *dto.ProductRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.MissingField("name")
	}
	if req.Price == nil {
		return nil, domain.MissingField("price")
	}
	if *req.Price < 0 {
		return nil, domain.Invalid("price must be non-negative")
	}
	if req.Stock == nil {
		return nil, domain.MissingField("stock")
	}
	if *req.Stock < 0 {
		return nil, domain.Invalid("stock must be non-negative")
	}

	return &domain.Product{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
	}, nil
}
