package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// AttendanceHandler handles QR scan and attendance log endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Scan godoc
// @Summary Record an attendance scan from a QR code
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.ScanRequest true "Scan payload"
// @Success 201 {object} response.Envelope
// @Router /attendance/scan [post]
func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req service.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.RecordScan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Today godoc
// @Summary List today's attendance records
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/today [get]
func (h *AttendanceHandler) Today(c *gin.Context) {
	records, err := h.service.Today(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// ByDate godoc
// @Summary List the attendance records of a given day
// @Tags Attendance
// @Produce json
// @Param date query string true "Day in YYYY-MM-DD format"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date query parameter, expected YYYY-MM-DD"))
		return
	}
	records, err := h.service.ByDate(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// ByStudent godoc
// @Summary List a student's attendance history
// @Tags Attendance
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/attendance [get]
func (h *AttendanceHandler) ByStudent(c *gin.Context) {
	studentID, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.service.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Delete godoc
// @Summary Delete an attendance record
// @Tags Attendance
// @Param id path int true "Attendance record ID"
// @Success 204
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
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
