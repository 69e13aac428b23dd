package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// LinkCourseRequest holds the payload for linking a group to a course.
type LinkCourseRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// ClassroomHandler handles Google Classroom integration endpoints.
type ClassroomHandler struct {
	service  *service.ClassroomService
	students *service.StudentService
}

// NewClassroomHandler constructs a classroom handler. The student service is
// needed so roster imports go through the same path as manual registration.
func NewClassroomHandler(svc *service.ClassroomService, students *service.StudentService) *ClassroomHandler {
	return &ClassroomHandler{service: svc, students: students}
}

// Courses godoc
// @Summary List the teacher's active courses
// @Tags Classroom
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classroom/courses [get]
func (h *ClassroomHandler) Courses(c *gin.Context) {
	courses, err := h.service.Courses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, courses)
}

// LinkCourse godoc
// @Summary Link a group to a course
// @Tags Classroom
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body LinkCourseRequest true "Course link payload"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/classroom [put]
func (h *ClassroomHandler) LinkCourse(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req LinkCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.service.LinkCourse(c.Request.Context(), groupID, req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, link)
}

// UnlinkCourse godoc
// @Summary Unlink a group from its course
// @Tags Classroom
// @Param id path int true "Group ID"
// @Success 204
// @Router /groups/{id}/classroom [delete]
func (h *ClassroomHandler) UnlinkCourse(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.UnlinkCourse(c.Request.Context(), groupID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ImportRoster godoc
// @Summary Import the linked course roster into a group
// @Tags Classroom
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/classroom/import [post]
func (h *ClassroomHandler) ImportRoster(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.ImportRoster(c.Request.Context(), groupID, h.students)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Coursework godoc
// @Summary List the coursework of a group's linked course
// @Tags Classroom
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/classroom/coursework [get]
func (h *ClassroomHandler) Coursework(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	coursework, err := h.service.Coursework(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, coursework)
}

// TopicGradebook godoc
// @Summary Pull submissions for a topic's linked assignments
// @Tags Classroom
// @Produce json
// @Param id path int true "Group ID"
// @Param topicId path int true "Topic ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/classroom/topics/{topicId}/gradebook [get]
func (h *ClassroomHandler) TopicGradebook(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	topicID, err := idParam(c, "topicId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.TopicGradebook(c.Request.Context(), groupID, topicID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// Gradebook godoc
// @Summary Get a student's grades from the linked course
// @Tags Classroom
// @Produce json
// @Param id path int true "Group ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/classroom/students/{studentId}/gradebook [get]
func (h *ClassroomHandler) Gradebook(c *gin.Context) {
	groupID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, err := idParam(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.Gradebook(c.Request.Context(), groupID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}
