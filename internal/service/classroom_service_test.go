package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type mockLinkRepo struct {
	links map[int64]*models.ClassroomLink
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[int64]*models.ClassroomLink)}
}

func (m *mockLinkRepo) FindByGroup(ctx context.Context, groupID int64) (*models.ClassroomLink, error) {
	if l, ok := m.links[groupID]; ok {
		return l, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockLinkRepo) ExistsByCourseID(ctx context.Context, courseID string, excludeGroupID int64) (bool, error) {
	for _, l := range m.links {
		if l.CourseID == courseID && l.GroupID != excludeGroupID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLinkRepo) Upsert(ctx context.Context, link *models.ClassroomLink) error {
	link.ID = link.GroupID
	copied := *link
	m.links[link.GroupID] = &copied
	return nil
}

func (m *mockLinkRepo) Delete(ctx context.Context, groupID int64) error {
	delete(m.links, groupID)
	return nil
}

type fakeProvider struct {
	courses     []models.ClassroomCourse
	rosters     map[string][]models.RosterStudent
	coursework  map[string][]models.ClassroomCoursework
	submissions map[string][]models.ClassroomSubmission
	courseCalls int
}

func (f *fakeProvider) Courses(ctx context.Context) ([]models.ClassroomCourse, error) {
	f.courseCalls++
	return f.courses, nil
}

func (f *fakeProvider) Roster(ctx context.Context, courseID string) ([]models.RosterStudent, error) {
	return f.rosters[courseID], nil
}

func (f *fakeProvider) Coursework(ctx context.Context, courseID string) ([]models.ClassroomCoursework, error) {
	return f.coursework[courseID], nil
}

func (f *fakeProvider) Submissions(ctx context.Context, courseID, courseworkID string) ([]models.ClassroomSubmission, error) {
	return f.submissions[courseworkID], nil
}

func classroomFixture() (*ClassroomService, *fakeProvider, *mockStudentRepo, *mockLinkRepo, *mockAssignmentRepo) {
	provider := &fakeProvider{
		rosters:     make(map[string][]models.RosterStudent),
		coursework:  make(map[string][]models.ClassroomCoursework),
		submissions: make(map[string][]models.ClassroomSubmission),
	}
	links := newMockLinkRepo()
	students := newMockStudentRepo()
	assignments := newMockAssignmentRepo()
	svc := NewClassroomService(provider, links, students, groupFixture(), assignments, nil, 0, nil, nil)
	return svc, provider, students, links, assignments
}

func TestClassroomServiceLinkCourse(t *testing.T) {
	svc, _, _, _, _ := classroomFixture()

	link, err := svc.LinkCourse(context.Background(), 4, "course-1")
	require.NoError(t, err)
	assert.Equal(t, "course-1", link.CourseID)
}

func TestClassroomServiceLinkCourseTakenByOtherGroup(t *testing.T) {
	svc, _, _, links, _ := classroomFixture()
	links.links[9] = &models.ClassroomLink{ID: 9, GroupID: 9, CourseID: "course-1"}

	_, err := svc.LinkCourse(context.Background(), 4, "course-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrConflict.Code, errors.FromError(err).Code)
}

func TestClassroomServiceImportRosterIsIdempotent(t *testing.T) {
	svc, provider, students, _, _ := classroomFixture()
	_, err := svc.LinkCourse(context.Background(), 4, "course-1")
	require.NoError(t, err)
	provider.rosters["course-1"] = []models.RosterStudent{
		{UserID: "u1", FirstName: "ana", LastName: "gómez"},
		{UserID: "u2", FirstName: "luis", LastName: "alvarez"},
	}
	studentSvc := NewStudentService(students, groupFixture(), nil, nil)

	first, err := svc.ImportRoster(context.Background(), 4, studentSvc)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Imported)
	assert.Equal(t, 0, first.Skipped)

	second, err := svc.ImportRoster(context.Background(), 4, studentSvc)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, 2, second.Skipped)

	roster, err := students.ListByGroup(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, roster, 2)
	for _, s := range roster {
		assert.NotNil(t, s.QRCodeID)
	}
}

func TestClassroomServiceImportRosterRequiresLink(t *testing.T) {
	svc, _, students, _, _ := classroomFixture()
	studentSvc := NewStudentService(students, groupFixture(), nil, nil)

	_, err := svc.ImportRoster(context.Background(), 4, studentSvc)
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidState.Code, errors.FromError(err).Code)
}

func TestClassroomServiceGradebook(t *testing.T) {
	svc, provider, students, _, _ := classroomFixture()
	_, err := svc.LinkCourse(context.Background(), 4, "course-1")
	require.NoError(t, err)

	userID := "u1"
	require.NoError(t, students.Create(context.Background(), &models.Student{
		FirstName: "Ana", LastName: "Gómez", Status: models.StudentStatusActive,
		GroupID: 4, ClassroomUserID: &userID,
	}))
	maxPoints := 100.0
	grade := 87.5
	provider.coursework["course-1"] = []models.ClassroomCoursework{
		{ID: "cw1", Title: "Tarea 1", MaxPoints: &maxPoints},
		{ID: "cw2", Title: "Tarea 2", MaxPoints: &maxPoints},
	}
	provider.submissions["cw1"] = []models.ClassroomSubmission{{UserID: "u1", AssignedGrade: &grade}}
	provider.submissions["cw2"] = []models.ClassroomSubmission{{UserID: "u1", AssignedGrade: nil}}

	rows, err := svc.Gradebook(context.Background(), 4, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Grade)
	assert.Equal(t, "87.5", rows[0].Grade.String())
	assert.Nil(t, rows[1].Grade)
}

func TestClassroomServiceTopicGradebookMapsSubmissionsToStudents(t *testing.T) {
	svc, provider, students, _, assignments := classroomFixture()
	_, err := svc.LinkCourse(context.Background(), 4, "course-1")
	require.NoError(t, err)

	userID := "u1"
	require.NoError(t, students.Create(context.Background(), &models.Student{
		FirstName: "Ana", LastName: "Gómez", Status: models.StudentStatusActive,
		GroupID: 4, ClassroomUserID: &userID,
	}))

	linked := assignments.add(3, models.CategoryPractice, 100)
	cw := "cw1"
	linked.ClassroomAssignmentID = &cw
	assignments.add(3, models.CategoryExam, 100) // no Classroom binding

	grade := 92.0
	provider.submissions["cw1"] = []models.ClassroomSubmission{
		{UserID: "u1", AssignedGrade: &grade},
		{UserID: "stranger", AssignedGrade: &grade},
	}

	rows, err := svc.TopicGradebook(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, linked.ID, rows[0].AssignmentID)
	require.NotNil(t, rows[0].Grade)
	assert.Equal(t, "92", rows[0].Grade.String())
}
