package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

// RosterProvider is the external courses API surface the sync needs. The
// Google-backed implementation lives in pkg/classroom.
type RosterProvider interface {
	Courses(ctx context.Context) ([]models.ClassroomCourse, error)
	Roster(ctx context.Context, courseID string) ([]models.RosterStudent, error)
	Coursework(ctx context.Context, courseID string) ([]models.ClassroomCoursework, error)
	Submissions(ctx context.Context, courseID, courseworkID string) ([]models.ClassroomSubmission, error)
}

type classroomLinkRepository interface {
	FindByGroup(ctx context.Context, groupID int64) (*models.ClassroomLink, error)
	ExistsByCourseID(ctx context.Context, courseID string, excludeGroupID int64) (bool, error)
	Upsert(ctx context.Context, link *models.ClassroomLink) error
	Delete(ctx context.Context, groupID int64) error
}

// ImportResult summarizes one roster import run.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// GradebookRow pairs external coursework with a student's assigned grade.
type GradebookRow struct {
	Coursework models.ClassroomCoursework `json:"coursework"`
	Grade      *decimal.Decimal           `json:"grade"`
}

// TopicGradebookRow ties one submission on a Classroom-linked assignment back
// to a local student.
type TopicGradebookRow struct {
	AssignmentID int64            `json:"assignment_id"`
	StudentID    int64            `json:"student_id"`
	Grade        *decimal.Decimal `json:"grade"`
}

const coursesCacheKey = "classroom:courses"

// ClassroomService links groups to external courses and pulls rosters and
// gradebooks from them. The course list is cached in Redis because the
// provider is rate limited and the list changes rarely.
type ClassroomService struct {
	provider    RosterProvider
	links       classroomLinkRepository
	students    studentRepository
	groups      groupRepository
	assignments assignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewClassroomService constructs the classroom sync service. The cache client
// may be nil, in which case every call hits the provider.
func NewClassroomService(
	provider RosterProvider,
	links classroomLinkRepository,
	students studentRepository,
	groups groupRepository,
	assignments assignmentRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	metrics *MetricsService,
	logger *zap.Logger,
) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{
		provider:    provider,
		links:       links,
		students:    students,
		groups:      groups,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
		logger:      logger,
	}
}

// Courses returns the teacher's courses, served from cache when fresh.
func (s *ClassroomService) Courses(ctx context.Context) ([]models.ClassroomCourse, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, coursesCacheKey).Result()
		if err == nil {
			var cached []models.ClassroomCourse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("courses cache read failed", zap.Error(err))
		}
	}
	courses, err := s.provider.Courses(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if raw, err := json.Marshal(courses); err == nil {
			if err := s.cache.Set(ctx, coursesCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("courses cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

// LinkCourse binds a group to a course. A course can back at most one group.
func (s *ClassroomService) LinkCourse(ctx context.Context, groupID int64, courseID string) (*models.ClassroomLink, error) {
	if courseID == "" {
		return nil, errors.Clone(errors.ErrValidation, "course id is required")
	}
	if _, err := s.groups.FindByID(ctx, groupID); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "group not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load group")
	}
	taken, err := s.links.ExistsByCourseID(ctx, courseID, groupID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to validate course link")
	}
	if taken {
		return nil, errors.Clone(errors.ErrConflict, "course already linked to another group")
	}
	link := &models.ClassroomLink{GroupID: groupID, CourseID: courseID}
	if err := s.links.Upsert(ctx, link); err != nil {
		return nil, mapWriteError(err, "course already linked to another group", "failed to link course")
	}
	s.logger.Info("course linked", zap.Int64("group_id", groupID), zap.String("course_id", courseID))
	return link, nil
}

// UnlinkCourse removes a group's course binding.
func (s *ClassroomService) UnlinkCourse(ctx context.Context, groupID int64) error {
	if _, err := s.linkForGroup(ctx, groupID); err != nil {
		return err
	}
	if err := s.links.Delete(ctx, groupID); err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to unlink course")
	}
	return nil
}

// ImportRoster pulls the linked course's roster and registers each entry as a
// student of the group. Entries already linked by Classroom user are skipped,
// so the import can run repeatedly without duplicating students.
func (s *ClassroomService) ImportRoster(ctx context.Context, groupID int64, studentSvc *StudentService) (*ImportResult, error) {
	link, err := s.linkForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	roster, err := s.provider.Roster(ctx, link.CourseID)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{}
	for _, entry := range roster {
		linked, err := s.students.ExistsByClassroomUser(ctx, groupID, entry.UserID, 0)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to check roster entry")
		}
		if linked {
			result.Skipped++
			continue
		}
		userID := entry.UserID
		if _, err := studentSvc.Create(ctx, CreateStudentRequest{
			FirstName:       entry.FirstName,
			LastName:        entry.LastName,
			GroupID:         groupID,
			ClassroomUserID: &userID,
		}); err != nil {
			if appErr := errors.FromError(err); appErr.Code == errors.ErrConflict.Code {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Imported++
	}
	s.metrics.RecordImport()
	s.logger.Info("roster imported",
		zap.Int64("group_id", groupID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// Coursework lists the linked course's graded work for linking to
// assignments.
func (s *ClassroomService) Coursework(ctx context.Context, groupID int64) ([]models.ClassroomCoursework, error) {
	link, err := s.linkForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.provider.Coursework(ctx, link.CourseID)
}

// Gradebook returns, per coursework item, the grade assigned to the given
// student in the linked course. Ungraded work carries a nil grade.
func (s *ClassroomService) Gradebook(ctx context.Context, groupID int64, studentID int64) ([]GradebookRow, error) {
	link, err := s.linkForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrNotFound, "student not found")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load student")
	}
	if student.ClassroomUserID == nil {
		return nil, errors.Clone(errors.ErrInvalidState, "student is not linked to a classroom user")
	}
	work, err := s.provider.Coursework(ctx, link.CourseID)
	if err != nil {
		return nil, err
	}
	rows := make([]GradebookRow, 0, len(work))
	for _, item := range work {
		submissions, err := s.provider.Submissions(ctx, link.CourseID, item.ID)
		if err != nil {
			return nil, err
		}
		row := GradebookRow{Coursework: item}
		for _, sub := range submissions {
			if sub.UserID == *student.ClassroomUserID && sub.AssignedGrade != nil {
				grade := decimal.NewFromFloat(*sub.AssignedGrade)
				row.Grade = &grade
				break
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TopicGradebook collects, for every Classroom-linked assignment under a
// topic, the submissions of the group's course mapped back to local students
// by their classroom user id. Assignments without a Classroom binding and
// submissions from unknown users are left out.
func (s *ClassroomService) TopicGradebook(ctx context.Context, groupID, topicID int64) ([]TopicGradebookRow, error) {
	link, err := s.linkForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list assignments")
	}
	roster, err := s.students.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to list students")
	}
	byUser := make(map[string]int64, len(roster))
	for _, student := range roster {
		if student.ClassroomUserID != nil {
			byUser[*student.ClassroomUserID] = student.ID
		}
	}
	var rows []TopicGradebookRow
	for _, assignment := range assignments {
		if assignment.ClassroomAssignmentID == nil {
			continue
		}
		submissions, err := s.provider.Submissions(ctx, link.CourseID, *assignment.ClassroomAssignmentID)
		if err != nil {
			return nil, err
		}
		for _, sub := range submissions {
			studentID, ok := byUser[sub.UserID]
			if !ok {
				continue
			}
			row := TopicGradebookRow{AssignmentID: assignment.ID, StudentID: studentID}
			if sub.AssignedGrade != nil {
				grade := decimal.NewFromFloat(*sub.AssignedGrade)
				row.Grade = &grade
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *ClassroomService) linkForGroup(ctx context.Context, groupID int64) (*models.ClassroomLink, error) {
	link, err := s.links.FindByGroup(ctx, groupID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Clone(errors.ErrInvalidState, "group is not linked to a course")
		}
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to load course link")
	}
	return link, nil
}
