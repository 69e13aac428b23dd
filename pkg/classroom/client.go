package classroom

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

// TokenSourceFunc yields the current OAuth token source; it is re-evaluated
// on every call so a reconnect takes effect without restarting.
type TokenSourceFunc func(ctx context.Context) (oauth2.TokenSource, error)

// Client is the Google Classroom roster provider.
type Client struct {
	tokenSource TokenSourceFunc
	logger      *zap.Logger
}

// NewClient constructs a Classroom client.
func NewClient(tokenSource TokenSourceFunc, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{tokenSource: tokenSource, logger: logger}
}

func (c *Client) service(ctx context.Context) (*classroomapi.Service, error) {
	ts, err := c.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := classroomapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRemoteService.Code, errors.ErrRemoteService.Status, "failed to build classroom client")
	}
	return svc, nil
}

// Courses lists the teacher's active courses.
func (c *Client) Courses(ctx context.Context) ([]models.ClassroomCourse, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	var courses []models.ClassroomCourse
	call := svc.Courses.List().TeacherId("me").CourseStates("ACTIVE")
	if err := call.Pages(ctx, func(page *classroomapi.ListCoursesResponse) error {
		for _, course := range page.Courses {
			courses = append(courses, models.ClassroomCourse{
				ID:             course.Id,
				Name:           course.Name,
				EnrollmentCode: course.EnrollmentCode,
				State:          course.CourseState,
			})
		}
		return nil
	}); err != nil {
		return nil, c.remoteError(err, "failed to list courses")
	}
	return courses, nil
}

// Roster lists the students enrolled in a course. Profile names are split the
// way the rest of the system stores them.
func (c *Client) Roster(ctx context.Context, courseID string) ([]models.RosterStudent, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	var roster []models.RosterStudent
	call := svc.Courses.Students.List(courseID)
	if err := call.Pages(ctx, func(page *classroomapi.ListStudentsResponse) error {
		for _, student := range page.Students {
			entry := models.RosterStudent{UserID: student.UserId}
			if student.Profile != nil && student.Profile.Name != nil {
				entry.FirstName = student.Profile.Name.GivenName
				entry.LastName = student.Profile.Name.FamilyName
			}
			if entry.FirstName == "" && student.Profile != nil {
				entry.FirstName = firstWord(student.Profile.Name.FullName)
			}
			roster = append(roster, entry)
		}
		return nil
	}); err != nil {
		return nil, c.remoteError(err, "failed to list roster")
	}
	return roster, nil
}

// Coursework lists the graded work published in a course.
func (c *Client) Coursework(ctx context.Context, courseID string) ([]models.ClassroomCoursework, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	var work []models.ClassroomCoursework
	call := svc.Courses.CourseWork.List(courseID)
	if err := call.Pages(ctx, func(page *classroomapi.ListCourseWorkResponse) error {
		for _, item := range page.CourseWork {
			entry := models.ClassroomCoursework{ID: item.Id, Title: item.Title}
			if item.MaxPoints > 0 {
				max := item.MaxPoints
				entry.MaxPoints = &max
			}
			work = append(work, entry)
		}
		return nil
	}); err != nil {
		return nil, c.remoteError(err, "failed to list coursework")
	}
	return work, nil
}

// Submissions lists the student submissions for one coursework item.
func (c *Client) Submissions(ctx context.Context, courseID, courseworkID string) ([]models.ClassroomSubmission, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}
	var submissions []models.ClassroomSubmission
	call := svc.Courses.CourseWork.StudentSubmissions.List(courseID, courseworkID)
	if err := call.Pages(ctx, func(page *classroomapi.ListStudentSubmissionsResponse) error {
		for _, sub := range page.StudentSubmissions {
			entry := models.ClassroomSubmission{UserID: sub.UserId}
			if sub.AssignedGrade != 0 || sub.State == "RETURNED" {
				grade := sub.AssignedGrade
				entry.AssignedGrade = &grade
			}
			submissions = append(submissions, entry)
		}
		return nil
	}); err != nil {
		return nil, c.remoteError(err, "failed to list submissions")
	}
	return submissions, nil
}

func (c *Client) remoteError(err error, message string) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		c.logger.Warn("classroom api error",
			zap.Int("status", apiErr.Code),
			zap.String("message", apiErr.Message))
	}
	return errors.Wrap(err, errors.ErrRemoteService.Code, errors.ErrRemoteService.Status, message)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
