package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// CartHandler handles cart and checkout requests
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddToCart handles adding a product to the caller's cart
// @Summary Add to cart
// @Description Add a quantity of a product to the cart, merging with any existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param request body dto.AddToCartRequest true "Cart request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.cartService.AddToCart(c.Request.Context(), userID(c), req.ProductID, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Product added to cart",
	})
}

// Checkout handles converting the cart into an order
// @Summary Checkout
// @Description Charge the cart total plus shipping and create an order
// @Tags cart
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Checkout request"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.cartService.Checkout(c.Request.Context(), userID(c), req.CardToken, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
