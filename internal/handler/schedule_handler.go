package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// ScheduleHandler handles weekly schedule endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Week godoc
// @Summary Get the full weekly schedule across all groups
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	entries, err := h.service.Week(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// ListByGroup godoc
// @Summary List a group's schedule entries
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule [get]
func (h *ScheduleHandler) ListByGroup(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.service.ListByGroup(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Place godoc
// @Summary Place or replace a schedule slot for a group
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body service.ScheduleEntryRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule [put]
func (h *ScheduleHandler) Place(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	entry, err := h.service.Place(c.Request.Context(), groupID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}

// Remove godoc
// @Summary Remove a schedule entry
// @Tags Schedule
// @Param id path int true "Schedule entry ID"
// @Success 204
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) Remove(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
