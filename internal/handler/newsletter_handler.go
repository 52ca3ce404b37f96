package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/service"
)

// NewsletterHandler handles unsubscribe link requests
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler creates a new newsletter handler
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
	}
}

// UnsubscribeLink handles minting a single-use unsubscribe link
// @Summary Mint unsubscribe link
// @Description Issue a fresh single-use unsubscribe link for the caller
// @Tags newsletter
// @Produce json
// @Success 201 {object} dto.UnsubscribeLinkResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /unsubscribe [post]
func (h *NewsletterHandler) UnsubscribeLink(c *gin.Context) {
	token, err := h.newsletterService.MintToken(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s/api/v1/unsubscribe/%s",
		scheme, c.Request.Host, url.PathEscape(token))

	c.JSON(http.StatusCreated, dto.UnsubscribeLinkResponse{
		Message:        "Unsubscribe link created",
		UnsubscribeURL: link,
	})
}

// UnsubscribeForm handles probing a token before the form renders
// @Summary Check unsubscribe token
// @Description Report whether an unsubscribe token is still redeemable, without consuming it
// @Tags newsletter
// @Produce json
// @Param token path string true "Unsubscribe token"
// @Success 200 {object} dto.UnsubscribeFormResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /unsubscribe/{token} [get]
func (h *NewsletterHandler) UnsubscribeForm(c *gin.Context) {
	if err := h.newsletterService.CheckToken(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnsubscribeFormResponse{
		Valid:   true,
		Message: "Submit this form to unsubscribe from the newsletter",
	})
}

// Unsubscribe handles redeeming an unsubscribe token
// @Summary Unsubscribe
// @Description Consume an unsubscribe token and opt its user out of the newsletter
// @Tags newsletter
// @Accept json
// @Produce json
// @Param token path string true "Unsubscribe token"
// @Param request body dto.UnsubscribeRequest false "Optional reason"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /unsubscribe/{token} [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	if err := h.newsletterService.Redeem(c.Request.Context(), c.Param("token"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Unsubscribed from the newsletter",
	})
}
