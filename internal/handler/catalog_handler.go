package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/pkg/response"
)

type catalogService interface {
	ListOfferings(ctx context.Context) ([]models.Offering, error)
}

// CatalogHandler serves the public offering listing.
type CatalogHandler struct {
	catalog catalogService
}

// NewCatalogHandler constructs a new CatalogHandler.
func NewCatalogHandler(catalog catalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListOfferings godoc
// @Summary List module offerings and who teaches them
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /list [get]
func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	offerings, err := h.catalog.ListOfferings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offerings)
}
