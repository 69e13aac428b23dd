package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// TopicHandler handles topic endpoints.
type TopicHandler struct {
	service *service.TopicService
}

// NewTopicHandler constructs a topic handler.
func NewTopicHandler(svc *service.TopicService) *TopicHandler {
	return &TopicHandler{service: svc}
}

// List godoc
// @Summary List topics for a subject within a period
// @Tags Topics
// @Produce json
// @Param subject_id query int true "Subject ID"
// @Param period_id query int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	subjectID, err := queryID(c, "subject_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	periodID, err := queryID(c, "period_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topics, err := h.service.List(c.Request.Context(), subjectID, periodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, topics)
}

// Get godoc
// @Summary Get topic by id
// @Tags Topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /topics/{id} [get]
func (h *TopicHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topic, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, topic)
}

// Create godoc
// @Summary Create a topic with its category weights
// @Tags Topics
// @Accept json
// @Produce json
// @Param payload body service.CreateTopicRequest true "Topic payload"
// @Success 201 {object} response.Envelope
// @Router /topics [post]
func (h *TopicHandler) Create(c *gin.Context) {
	var req service.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	topic, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}

// Update godoc
// @Summary Update topic name or weights
// @Tags Topics
// @Accept json
// @Produce json
// @Param id path int true "Topic ID"
// @Param payload body service.UpdateTopicRequest true "Topic payload"
// @Success 200 {object} response.Envelope
// @Router /topics/{id} [put]
func (h *TopicHandler) Update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	topic, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, topic)
}

// Delete godoc
// @Summary Delete topic
// @Tags Topics
// @Param id path int true "Topic ID"
// @Success 204
// @Router /topics/{id} [delete]
func (h *TopicHandler) Delete(c *gin.Context) {
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
