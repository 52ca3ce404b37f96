package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
	"go.uber.org/zap"
)

type cartService struct {
	repos       *repository.Repositories
	gateway     PaymentGateway
	shippingFee float64
	logger      *zap.Logger
}

// NewCartService creates the cart and checkout service.
func NewCartService(repos *repository.Repositories, gateway PaymentGateway, shippingFee float64, logger *zap.Logger) CartService {
	return &cartService{
		repos:       repos,
		gateway:     gateway,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// AddToCart adds quantity of a product to the user's cart, merging with
// any existing line. The stock check and the upsert share a transaction
// so the availability read cannot go stale between them.
func (s *cartService) AddToCart(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return domain.Invalid("quantity must be at least 1")
	}

	return s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		product, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
			}
			return err
		}

		if product.Stock < quantity {
			return fmt.Errorf("%w: only %d of %s available", domain.ErrOutOfStock, product.Stock, product.Name)
		}

		return tx.Carts.Upsert(ctx, userID, productID, quantity)
	})
}

// Checkout turns the user's cart into an order. Stock validation, the
// pending order, the charge, item snapshots, stock decrements, and the
// cart wipe all run in one transaction; a failed charge rolls everything
// back, and only then is a failed order recorded on its own.
func (s *cartService) Checkout(ctx context.Context, userID, cardToken, shippingAddress string) (*dto.CheckoutResponse, error) {
	var (
		resp  *dto.CheckoutResponse
		total float64
	)

	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		lines, err := tx.Carts.LinesByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.Invalid("cart is empty")
		}

		total = s.shippingFee
		for _, line := range lines {
			if line.Product.Stock < line.Quantity {
				return fmt.Errorf("%w: only %d of %s available", domain.ErrOutOfStock, line.Product.Stock, line.Product.Name)
			}
			total += line.Product.Price * float64(line.Quantity)
		}

		order := &domain.Order{
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: shippingAddress,
			Status:          domain.OrderPending,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		if err := s.gateway.Charge(ctx, cardToken, total); err != nil {
			return err
		}

		if err := tx.Orders.UpdateStatus(ctx, order.ID, domain.OrderPending, domain.OrderSuccessful); err != nil {
			return err
		}

		for _, line := range lines {
			item := &domain.OrderItem{
				OrderID:   order.ID,
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
			}
			if err := tx.Orders.AddItem(ctx, item); err != nil {
				return err
			}
			if err := tx.Products.DecrementStock(ctx, line.Product.ID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return fmt.Errorf("%w: %s sold out during checkout", domain.ErrOutOfStock, line.Product.Name)
				}
				return err
			}
		}

		if err := tx.Carts.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		resp = &dto.CheckoutResponse{OrderID: order.ID, Total: total}
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrPaymentFailed) {
			s.recordFailedOrder(ctx, userID, total, shippingAddress)
		}
		return nil, err
	}

	return resp, nil
}

// recordFailedOrder writes the failed order that survives the checkout
// rollback. A write failure here must not mask the payment error.
func (s *cartService) recordFailedOrder(ctx context.Context, userID string, total float64, shippingAddress string) {
	order := &domain.Order{
		UserID:          userID,
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		Status:          domain.OrderFailed,
	}
	if err := s.repos.Orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to record failed order",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
