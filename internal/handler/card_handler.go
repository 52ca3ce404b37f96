package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// CardHandler handles stored payment card requests
type CardHandler struct {
	cardService service.CardService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// AddCard handles storing a payment card
// @Summary Add payment card
// @Description Validate and store a payment card; only the last four digits are ever returned
// @Tags cards
// @Accept json
// @Produce json
// @Param request body dto.CardRequest true "Card request"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /cards [post]
func (h *CardHandler) AddCard(c *gin.Context) {
	var req dto.CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	response, err := h.cardService.AddCard(c.Request.Context(), userID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListCards handles listing the caller's cards in masked form
// @Summary List payment cards
// @Description List the caller's stored cards with masked numbers
// @Tags cards
// @Produce json
// @Success 200 {object} dto.CardListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	response, err := h.cardService.ListCards(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
