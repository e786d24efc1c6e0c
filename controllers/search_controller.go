package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/1MindLabs/mivro-server/services"

	"github.com/gin-gonic/gin"
)

// genericErrorMessage is what callers see for unhandled failures; internal
// detail stays in logs and analytics events.
const genericErrorMessage = "Something went wrong. Please try again."

type SearchController struct {
	Svc    *services.SearchService
	Events *services.AnalyticsService
}

func NewSearchController(svc *services.SearchService, events *services.AnalyticsService) *SearchController {
	return &SearchController{Svc: svc, Events: events}
}

// GET /api/v1/search/barcode?product_barcode=...
func (h *SearchController) Barcode(c *gin.Context) {
	email := c.GetHeader("Mivro-Email")
	barcode := c.Query("product_barcode")
	if email == "" || barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and product barcode are required."})
		return
	}

	result, err := h.Svc.SearchBarcode(c.Request.Context(), email, barcode)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}
		h.Events.RuntimeError("barcode", err, "email", email, "product_barcode", barcode)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/search/text?product_name=...&page=...&page_size=...
func (h *SearchController) Text(c *gin.Context) {
	email := c.GetHeader("Mivro-Email")
	query := c.Query("product_name")
	if email == "" || query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and product name are required."})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.Svc.SearchText(c.Request.Context(), email, query, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}
		h.Events.RuntimeError("text_search", err, "email", email, "product_name", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}
