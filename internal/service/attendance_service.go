package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type attendanceRepository interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	FindDetailByID(ctx context.Context, id int64) (*models.AttendanceDetail, error)
	ListByWindow(ctx context.Context, from, to time.Time) ([]models.AttendanceDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.AttendanceDetail, error)
	Delete(ctx context.Context, id int64) error
}

// ScanRequest holds the payload produced by scanning a student QR card. The
// scanner may pin the grading period explicitly; when it does not, the period
// covering the scan date is used.
type ScanRequest struct {
	QRCodeID string `json:"qr_code_id" validate:"required,max=40"`
	PeriodID *int64 `json:"period_id" validate:"omitempty,min=1"`
}

// AttendanceService records QR scans into the append-only attendance log.
// The log keeps every scan: duplicates on the same day are legitimate (a
// student can be scanned in two different class sessions).
type AttendanceService struct {
	repo      attendanceRepository
	students  studentRepository
	periods   periodRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service. metrics may be nil.
func NewAttendanceService(repo attendanceRepository, students studentRepository, periods periodRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		repo:      repo,
		students:  students,
		periods:   periods,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordScan resolves a scanned QR identifier to its student and appends an
// attendance record stamped with the scan time, the student's subject and the
// grading period covering today.
func (s *AttendanceService) RecordScan(ctx context.Context, req ScanRequest) (*models.AttendanceDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid scan payload")
	}
	student, err := s.students.FindByQRCode(ctx, req.QRCodeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "no student matches this qr code")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to resolve qr code")
	}
	if student.Status != models.StudentStatusActive {
		return nil, errors.Clone(errors.ErrInvalidState, "student is not active")
	}
	scannedAt := s.now().UTC()
	period, err := s.resolvePeriod(ctx, req.PeriodID, scannedAt)
	if err != nil {
		return nil, err
	}
	record := &models.AttendanceRecord{
		StudentID: student.ID,
		SubjectID: student.SubjectID,
		PeriodID:  period.ID,
		Timestamp: scannedAt,
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to record attendance")
	}
	s.metrics.RecordScan()
	s.logger.Info("attendance recorded",
		zap.Int64("student_id", student.ID),
		zap.Int64("record_id", record.ID),
		zap.String("qr_code_id", req.QRCodeID))
	detail, err := s.repo.FindDetailByID(ctx, record.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load attendance record")
	}
	return detail, nil
}

func (s *AttendanceService) resolvePeriod(ctx context.Context, periodID *int64, scannedAt time.Time) (*models.Period, error) {
	if periodID != nil {
		period, err := s.periods.FindByID(ctx, *periodID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, errors.Clone(errors.ErrNotFound, "grading period not found")
			}
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to resolve period")
		}
		return period, nil
	}
	period, err := s.periods.FindByDate(ctx, scannedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrInvalidState, "no grading period covers this date")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to resolve period")
	}
	return period, nil
}

// Today returns today's records newest first, using the server's local day.
func (s *AttendanceService) Today(ctx context.Context) ([]models.AttendanceDetail, error) {
	return s.ByDate(ctx, s.now())
}

// ByDate returns the records of a calendar day newest first.
func (s *AttendanceService) ByDate(ctx context.Context, day time.Time) ([]models.AttendanceDetail, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	records, err := s.repo.ListByWindow(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// ByStudent returns a student's attendance history newest first.
func (s *AttendanceService) ByStudent(ctx context.Context, studentID int64) ([]models.AttendanceDetail, error) {
	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// Delete removes a single attendance record, for correcting a bad scan.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindDetailByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.Clone(errors.ErrNotFound, "attendance record not found")
		}
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load attendance record")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete attendance record")
	}
	return nil
}
