package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/grading"
	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type gradeRepository interface {
	ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Grade, error)
	FetchDetailsByStudentTopic(ctx context.Context, studentID, topicID int64) ([]models.GradeDetail, error)
	Upsert(ctx context.Context, grade *models.Grade) error
	FindByID(ctx context.Context, id int64) (*models.Grade, error)
	Delete(ctx context.Context, id int64) error
}

type topicGradeRepository interface {
	Upsert(ctx context.Context, studentID, topicID int64, calculated decimal.Decimal) error
	Find(ctx context.Context, studentID, topicID int64) (*models.TopicGrade, error)
	ListByTopic(ctx context.Context, topicID int64) ([]models.TopicGrade, error)
	ListByStudentPeriod(ctx context.Context, studentID, subjectID, periodID int64) ([]models.TopicGrade, error)
}

type finalGradeRepository interface {
	Upsert(ctx context.Context, grade *models.FinalGrade) error
	Find(ctx context.Context, studentID, subjectID int64) (*models.FinalGrade, error)
	ListBySubject(ctx context.Context, subjectID int64) ([]models.FinalGrade, error)
}

// RecordGradeRequest holds payload for recording a grade.
type RecordGradeRequest struct {
	StudentID    int64           `json:"student_id" validate:"required"`
	AssignmentID int64           `json:"assignment_id" validate:"required"`
	Grade        decimal.Decimal `json:"grade"`
	Notes        *string         `json:"notes" validate:"omitempty,max=500"`
}

// FinalGradeRequest holds payload for writing a student's final grade sheet.
type FinalGradeRequest struct {
	StudentID      int64            `json:"student_id" validate:"required"`
	SubjectID      int64            `json:"subject_id" validate:"required"`
	Period1Grade   *decimal.Decimal `json:"period1_grade"`
	Period2Grade   *decimal.Decimal `json:"period2_grade"`
	Period3Grade   *decimal.Decimal `json:"period3_grade"`
	FinalYearGrade *decimal.Decimal `json:"final_year_grade"`
}

// GradeService records grades and keeps the per-topic rollups current. Every
// grade write recomputes the affected topic grade in the same call, so reads
// never see a stale rollup.
type GradeService struct {
	grades      gradeRepository
	topicGrades topicGradeRepository
	finalGrades finalGradeRepository
	assignments assignmentRepository
	topics      topicRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(
	grades gradeRepository,
	topicGrades topicGradeRepository,
	finalGrades finalGradeRepository,
	assignments assignmentRepository,
	topics topicRepository,
	validate *validator.Validate,
	logger *zap.Logger,
) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		grades:      grades,
		topicGrades: topicGrades,
		finalGrades: finalGrades,
		assignments: assignments,
		topics:      topics,
		validator:   validate,
		logger:      logger,
	}
}

// ListByAssignment returns the grades recorded for an assignment.
func (s *GradeService) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Grade, error) {
	grades, err := s.grades.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// Record stores a grade for a student on an assignment, replacing any prior
// value, then recomputes the topic rollup.
func (s *GradeService) Record(ctx context.Context, req RecordGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid grade payload")
	}
	assignment, err := s.assignments.FindByID(ctx, req.AssignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "assignment not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load assignment")
	}
	if req.Grade.IsNegative() || req.Grade.GreaterThan(assignment.MaxGrade) {
		return nil, errors.Clone(errors.ErrValidation, "grade must be between 0 and the assignment max")
	}
	grade := &models.Grade{
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		Grade:        req.Grade,
		Notes:        req.Notes,
	}
	if err := s.grades.Upsert(ctx, grade); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to record grade")
	}
	if err := s.recompute(ctx, req.StudentID, assignment.TopicID); err != nil {
		return nil, err
	}
	return grade, nil
}

// Delete removes a recorded grade and recomputes the affected rollup.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	grade, err := s.grades.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.Clone(errors.ErrNotFound, "grade not found")
		}
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load grade")
	}
	assignment, err := s.assignments.FindByID(ctx, grade.AssignmentID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load assignment")
	}
	if err := s.grades.Delete(ctx, id); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to delete grade")
	}
	return s.recompute(ctx, grade.StudentID, assignment.TopicID)
}

// TopicGrade returns the stored rollup for a student on a topic. A student
// with no recorded grades reads as zero rather than missing.
func (s *GradeService) TopicGrade(ctx context.Context, studentID, topicID int64) (*models.TopicGrade, error) {
	rollup, err := s.topicGrades.Find(ctx, studentID, topicID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.TopicGrade{StudentID: studentID, TopicID: topicID, CalculatedGrade: decimal.Zero}, nil
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load topic grade")
	}
	return rollup, nil
}

// RecomputeTopicGrade rebuilds a student's rollup from the recorded grades.
// Exposed for repair after out-of-band changes.
func (s *GradeService) RecomputeTopicGrade(ctx context.Context, studentID, topicID int64) (*models.TopicGrade, error) {
	if err := s.recompute(ctx, studentID, topicID); err != nil {
		return nil, err
	}
	return s.TopicGrade(ctx, studentID, topicID)
}

// PeriodAverage returns the mean of a student's topic rollups for a subject
// within a period, rounded to two decimals. No topics yields zero.
func (s *GradeService) PeriodAverage(ctx context.Context, studentID, subjectID, periodID int64) (decimal.Decimal, error) {
	rollups, err := s.topicGrades.ListByStudentPeriod(ctx, studentID, subjectID, periodID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list topic grades")
	}
	if len(rollups) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, r := range rollups {
		sum = sum.Add(r.CalculatedGrade)
	}
	return sum.Div(decimal.NewFromInt(int64(len(rollups)))).RoundBank(2), nil
}

// SaveFinalGrade writes the per-period and year grades for a student in a
// subject, replacing any previous sheet row.
func (s *GradeService) SaveFinalGrade(ctx context.Context, req FinalGradeRequest) (*models.FinalGrade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid final grade payload")
	}
	grade := &models.FinalGrade{
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		Period1Grade:   req.Period1Grade,
		Period2Grade:   req.Period2Grade,
		Period3Grade:   req.Period3Grade,
		FinalYearGrade: req.FinalYearGrade,
	}
	if err := s.finalGrades.Upsert(ctx, grade); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to save final grade")
	}
	return grade, nil
}

// FinalGrade returns a student's final grade sheet row for a subject.
func (s *GradeService) FinalGrade(ctx context.Context, studentID, subjectID int64) (*models.FinalGrade, error) {
	grade, err := s.finalGrades.Find(ctx, studentID, subjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "final grade not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load final grade")
	}
	return grade, nil
}

// FinalGradesBySubject returns the final grade sheet of a subject.
func (s *GradeService) FinalGradesBySubject(ctx context.Context, subjectID int64) ([]models.FinalGrade, error) {
	grades, err := s.finalGrades.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list final grades")
	}
	return grades, nil
}

func (s *GradeService) recompute(ctx context.Context, studentID, topicID int64) error {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load topic")
	}
	details, err := s.grades.FetchDetailsByStudentTopic(ctx, studentID, topicID)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to fetch topic grades")
	}
	calculated := grading.TopicGrade(*topic, details)
	if err := s.topicGrades.Upsert(ctx, studentID, topicID, calculated); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to store topic grade")
	}
	s.logger.Debug("topic grade recomputed",
		zap.Int64("student_id", studentID),
		zap.Int64("topic_id", topicID),
		zap.String("calculated", calculated.String()))
	return nil
}
