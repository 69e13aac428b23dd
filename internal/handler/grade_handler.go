package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// GradeHandler handles grade recording, topic rollups and final grades.
type GradeHandler struct {
	service *service.GradeService
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(svc *service.GradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// ListByAssignment godoc
// @Summary List the grades recorded for an assignment
// @Tags Grades
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /assignments/{id}/grades [get]
func (h *GradeHandler) ListByAssignment(c *gin.Context) {
	assignmentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	grades, err := h.service.ListByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grades)
}

// Record godoc
// @Summary Record or replace a student's grade for an assignment
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.RecordGradeRequest true "Grade payload"
// @Success 201 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Record(c *gin.Context) {
	var req service.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// Delete godoc
// @Summary Delete a recorded grade
// @Tags Grades
// @Param id path int true "Grade ID"
// @Success 204
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
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

// TopicGrade godoc
// @Summary Get a student's weighted rollup for a topic
// @Tags Grades
// @Produce json
// @Param id path int true "Student ID"
// @Param topicId path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/topics/{topicId}/grade [get]
func (h *GradeHandler) TopicGrade(c *gin.Context) {
	studentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topicID, err := idParam(c, "topicId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rollup, err := h.service.TopicGrade(c.Request.Context(), studentID, topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rollup)
}

// RecomputeTopicGrade godoc
// @Summary Recompute a student's topic rollup from its recorded grades
// @Tags Grades
// @Produce json
// @Param id path int true "Student ID"
// @Param topicId path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/topics/{topicId}/grade/recompute [post]
func (h *GradeHandler) RecomputeTopicGrade(c *gin.Context) {
	studentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topicID, err := idParam(c, "topicId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rollup, err := h.service.RecomputeTopicGrade(c.Request.Context(), studentID, topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rollup)
}

// PeriodAverage godoc
// @Summary Get a student's average across the topics of a subject in a period
// @Tags Grades
// @Produce json
// @Param id path int true "Student ID"
// @Param subject_id query int true "Subject ID"
// @Param period_id query int true "Period ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/average [get]
func (h *GradeHandler) PeriodAverage(c *gin.Context) {
	studentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
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
	average, err := h.service.PeriodAverage(c.Request.Context(), studentID, subjectID, periodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"average": average})
}

// SaveFinalGrade godoc
// @Summary Save a student's final grade sheet for a subject
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.FinalGradeRequest true "Final grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades/final [put]
func (h *GradeHandler) SaveFinalGrade(c *gin.Context) {
	var req service.FinalGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	final, err := h.service.SaveFinalGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, final)
}

// FinalGrade godoc
// @Summary Get a student's final grade sheet for a subject
// @Tags Grades
// @Produce json
// @Param id path int true "Student ID"
// @Param subjectId path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/subjects/{subjectId}/final-grade [get]
func (h *GradeHandler) FinalGrade(c *gin.Context) {
	studentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjectID, err := idParam(c, "subjectId")
	if err != nil {
		response.Error(c, err)
		return
	}
	final, err := h.service.FinalGrade(c.Request.Context(), studentID, subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, final)
}

// FinalGradesBySubject godoc
// @Summary List the final grade sheets of a subject
// @Tags Grades
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/final-grades [get]
func (h *GradeHandler) FinalGradesBySubject(c *gin.Context) {
	subjectID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	finals, err := h.service.FinalGradesBySubject(c.Request.Context(), subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, finals)
}
