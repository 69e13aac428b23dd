package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// ExportHandler serves generated documents.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// GroupQRCards godoc
// @Summary Download the printable QR card sheet for a group
// @Tags Export
// @Produce application/pdf
// @Param id path int true "Group ID"
// @Success 200 {file} binary
// @Router /groups/{id}/qr-cards.pdf [get]
func (h *ExportHandler) GroupQRCards(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	pdf, filename, err := h.service.GroupQRCards(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
