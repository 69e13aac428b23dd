package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// AssignmentHandler handles assignment endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// ListByTopic godoc
// @Summary List the assignments of a topic
// @Tags Assignments
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /topics/{id}/assignments [get]
func (h *AssignmentHandler) ListByTopic(c *gin.Context) {
	topicID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	assignments, err := h.service.ListByTopic(c.Request.Context(), topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignments)
}

// Get godoc
// @Summary Get assignment by id
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	assignment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}

// Create godoc
// @Summary Add an assignment to a topic
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /topics/{id}/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	topicID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), topicID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Update assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param payload body service.AssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignment)
}

// Delete godoc
// @Summary Delete assignment
// @Tags Assignments
// @Param id path int true "Assignment ID"
// @Success 204
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
