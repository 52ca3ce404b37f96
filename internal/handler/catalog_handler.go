package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// CatalogHandler handles public product requests
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func productResponse(p *domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}

// GetProduct handles fetching one product
// @Summary Get product
// @Description Get a product by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse(product))
}

// Search handles ranked product search
// @Summary Search products
// @Description Search products by name, description, and price range
// @Tags catalog
// @Produce json
// @Param name query string false "Name term"
// @Param description query string false "Description term"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	results, err := h.catalogService.Search(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.SearchResponse{
		Results: make([]dto.SearchResultResponse, 0, len(results)),
		Count:   len(results),
	}
	for _, res := range results {
		response.Results = append(response.Results, dto.SearchResultResponse{
			ProductResponse: productResponse(&res.Product),
			Relevance:       res.Relevance,
		})
	}

	c.JSON(http.StatusOK, response)
}
