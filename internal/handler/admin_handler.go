package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// AdminHandler handles catalog administration requests
type AdminHandler struct {
	catalogService service.CatalogService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalogService service.CatalogService) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
	}
}

// CreateProduct handles adding a product to the catalog
// @Summary Create product
// @Description Add a new product to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.ProductRequest true "Product request"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, productResponse(product))
}

// UpdateProduct handles replacing a product's fields
// @Summary Update product
// @Description Update an existing product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body dto.ProductRequest true "Product request"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse(product))
}

// DeleteProduct handles removing a product
// @Summary Delete product
// @Description Remove a product from the catalog
// @Tags admin
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Product deleted",
	})
}
