package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type gradeKey struct {
	student, assignment int64
}

type mockGradeRepo struct {
	grades map[gradeKey]*models.Grade
	byID   map[int64]*models.Grade
	nextID int64

	assignments *mockAssignmentRepo
}

func newMockGradeRepo(assignments *mockAssignmentRepo) *mockGradeRepo {
	return &mockGradeRepo{
		grades:      make(map[gradeKey]*models.Grade),
		byID:        make(map[int64]*models.Grade),
		assignments: assignments,
	}
}

func (m *mockGradeRepo) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Grade, error) {
	var out []models.Grade
	for _, g := range m.byID {
		if g.AssignmentID == assignmentID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockGradeRepo) FetchDetailsByStudentTopic(ctx context.Context, studentID, topicID int64) ([]models.GradeDetail, error) {
	var out []models.GradeDetail
	for _, g := range m.byID {
		if g.StudentID != studentID {
			continue
		}
		a := m.assignments.assignments[g.AssignmentID]
		if a == nil || a.TopicID != topicID {
			continue
		}
		out = append(out, models.GradeDetail{Grade: *g, Category: a.Category, MaxGrade: a.MaxGrade})
	}
	return out, nil
}

func (m *mockGradeRepo) Upsert(ctx context.Context, grade *models.Grade) error {
	key := gradeKey{grade.StudentID, grade.AssignmentID}
	if existing, ok := m.grades[key]; ok {
		existing.Grade = grade.Grade
		existing.Notes = grade.Notes
		grade.ID = existing.ID
		return nil
	}
	m.nextID++
	grade.ID = m.nextID
	copied := *grade
	m.grades[key] = &copied
	m.byID[grade.ID] = &copied
	return nil
}

func (m *mockGradeRepo) FindByID(ctx context.Context, id int64) (*models.Grade, error) {
	if g, ok := m.byID[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockGradeRepo) Delete(ctx context.Context, id int64) error {
	if g, ok := m.byID[id]; ok {
		delete(m.grades, gradeKey{g.StudentID, g.AssignmentID})
		delete(m.byID, id)
	}
	return nil
}

type topicGradeKey struct {
	student, topic int64
}

type mockTopicGradeRepo struct {
	rollups map[topicGradeKey]decimal.Decimal
}

func newMockTopicGradeRepo() *mockTopicGradeRepo {
	return &mockTopicGradeRepo{rollups: make(map[topicGradeKey]decimal.Decimal)}
}

func (m *mockTopicGradeRepo) Upsert(ctx context.Context, studentID, topicID int64, calculated decimal.Decimal) error {
	m.rollups[topicGradeKey{studentID, topicID}] = calculated
	return nil
}

func (m *mockTopicGradeRepo) Find(ctx context.Context, studentID, topicID int64) (*models.TopicGrade, error) {
	if v, ok := m.rollups[topicGradeKey{studentID, topicID}]; ok {
		return &models.TopicGrade{StudentID: studentID, TopicID: topicID, CalculatedGrade: v}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTopicGradeRepo) ListByTopic(ctx context.Context, topicID int64) ([]models.TopicGrade, error) {
	return nil, nil
}

func (m *mockTopicGradeRepo) ListByStudentPeriod(ctx context.Context, studentID, subjectID, periodID int64) ([]models.TopicGrade, error) {
	var out []models.TopicGrade
	for key, v := range m.rollups {
		if key.student == studentID {
			out = append(out, models.TopicGrade{StudentID: studentID, TopicID: key.topic, CalculatedGrade: v})
		}
	}
	return out, nil
}

type mockFinalGradeRepo struct {
	rows map[topicGradeKey]*models.FinalGrade
}

func newMockFinalGradeRepo() *mockFinalGradeRepo {
	return &mockFinalGradeRepo{rows: make(map[topicGradeKey]*models.FinalGrade)}
}

func (m *mockFinalGradeRepo) Upsert(ctx context.Context, grade *models.FinalGrade) error {
	grade.ID = 1
	copied := *grade
	m.rows[topicGradeKey{grade.StudentID, grade.SubjectID}] = &copied
	return nil
}

func (m *mockFinalGradeRepo) Find(ctx context.Context, studentID, subjectID int64) (*models.FinalGrade, error) {
	if g, ok := m.rows[topicGradeKey{studentID, subjectID}]; ok {
		return g, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFinalGradeRepo) ListBySubject(ctx context.Context, subjectID int64) ([]models.FinalGrade, error) {
	return nil, nil
}

type mockAssignmentRepo struct {
	assignments map[int64]*models.Assignment
	nextID      int64
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[int64]*models.Assignment)}
}

func (m *mockAssignmentRepo) add(topicID int64, category models.AssignmentCategory, maxGrade int64) *models.Assignment {
	m.nextID++
	a := &models.Assignment{
		ID:       m.nextID,
		Name:     string(category),
		Category: category,
		MaxGrade: decimal.NewFromInt(maxGrade),
		TopicID:  topicID,
	}
	m.assignments[a.ID] = a
	return a
}

func (m *mockAssignmentRepo) ListByTopic(ctx context.Context, topicID int64) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.TopicID == topicID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAssignmentRepo) ExistsByCategory(ctx context.Context, topicID int64, category models.AssignmentCategory, excludeID int64) (bool, error) {
	for _, a := range m.assignments {
		if a.TopicID == topicID && a.Category == category && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAssignmentRepo) ExistsByClassroomAssignment(ctx context.Context, topicID int64, classroomAssignmentID string) (bool, error) {
	return false, nil
}

func (m *mockAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	m.nextID++
	assignment.ID = m.nextID
	copied := *assignment
	m.assignments[assignment.ID] = &copied
	return nil
}

func (m *mockAssignmentRepo) Update(ctx context.Context, assignment *models.Assignment) error {
	copied := *assignment
	m.assignments[assignment.ID] = &copied
	return nil
}

func (m *mockAssignmentRepo) Delete(ctx context.Context, id int64) error {
	delete(m.assignments, id)
	return nil
}

func newGradeFixture(t *testing.T) (*GradeService, *mockAssignmentRepo, *mockTopicGradeRepo, *mockGradeRepo) {
	t.Helper()
	topics := newMockTopicRepo()
	require.NoError(t, topics.Create(context.Background(), &models.Topic{
		Name:           "Fracciones",
		PeriodID:       1,
		SubjectID:      2,
		ExamWeight:     decimal.NewFromInt(40),
		PracticeWeight: decimal.NewFromInt(30),
		NotebookWeight: decimal.NewFromInt(20),
		OtherWeight:    decimal.NewFromInt(10),
	}))
	assignments := newMockAssignmentRepo()
	grades := newMockGradeRepo(assignments)
	rollups := newMockTopicGradeRepo()
	finals := newMockFinalGradeRepo()
	svc := NewGradeService(grades, rollups, finals, assignments, topics, nil, nil)
	return svc, assignments, rollups, grades
}

func TestGradeServiceRecordRecomputesTopicGrade(t *testing.T) {
	svc, assignments, _, _ := newGradeFixture(t)
	exam := assignments.add(1, models.CategoryExam, 100)

	_, err := svc.Record(context.Background(), RecordGradeRequest{
		StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(80),
	})
	require.NoError(t, err)

	// Only the exam category has grades: 80/100*100 * 40% = 32.
	rollup, err := svc.TopicGrade(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, rollup.CalculatedGrade.Equal(decimal.NewFromInt(32)),
		"got %s", rollup.CalculatedGrade)
}

func TestGradeServiceRecordReplacesPriorValue(t *testing.T) {
	svc, assignments, _, _ := newGradeFixture(t)
	exam := assignments.add(1, models.CategoryExam, 100)

	_, err := svc.Record(context.Background(), RecordGradeRequest{
		StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	_, err = svc.Record(context.Background(), RecordGradeRequest{
		StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(90),
	})
	require.NoError(t, err)

	grades, err := svc.ListByAssignment(context.Background(), exam.ID)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.True(t, grades[0].Grade.Equal(decimal.NewFromInt(90)))
}

func TestGradeServiceRecordRejectsOutOfRange(t *testing.T) {
	svc, assignments, _, _ := newGradeFixture(t)
	exam := assignments.add(1, models.CategoryExam, 20)

	_, err := svc.Record(context.Background(), RecordGradeRequest{
		StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(25),
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidation.Code, errors.FromError(err).Code)
}

func TestGradeServiceMixedCategories(t *testing.T) {
	svc, assignments, _, _ := newGradeFixture(t)
	exam := assignments.add(1, models.CategoryExam, 100)
	practice1 := assignments.add(1, models.CategoryPractice, 10)
	practice2 := assignments.add(1, models.CategoryPractice, 10)

	for _, rec := range []RecordGradeRequest{
		{StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(90)},
		{StudentID: 7, AssignmentID: practice1.ID, Grade: decimal.NewFromInt(8)},
		{StudentID: 7, AssignmentID: practice2.ID, Grade: decimal.NewFromInt(6)},
	} {
		_, err := svc.Record(context.Background(), rec)
		require.NoError(t, err)
	}

	// exam 90 * 40% = 36; practice mean (80+60)/2 = 70 * 30% = 21;
	// notebook and other are empty and contribute nothing.
	rollup, err := svc.TopicGrade(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, rollup.CalculatedGrade.Equal(decimal.NewFromInt(57)),
		"got %s", rollup.CalculatedGrade)
}

func TestGradeServiceDeleteRecomputes(t *testing.T) {
	svc, assignments, _, _ := newGradeFixture(t)
	exam := assignments.add(1, models.CategoryExam, 100)

	grade, err := svc.Record(context.Background(), RecordGradeRequest{
		StudentID: 7, AssignmentID: exam.ID, Grade: decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), grade.ID))

	rollup, err := svc.TopicGrade(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.True(t, rollup.CalculatedGrade.IsZero())
}

func TestGradeServicePeriodAverage(t *testing.T) {
	svc, _, rollups, _ := newGradeFixture(t)
	require.NoError(t, rollups.Upsert(context.Background(), 7, 1, decimal.NewFromInt(80)))
	require.NoError(t, rollups.Upsert(context.Background(), 7, 2, decimal.NewFromInt(90)))

	avg, err := svc.PeriodAverage(context.Background(), 7, 2, 1)
	require.NoError(t, err)
	assert.True(t, avg.Equal(decimal.NewFromInt(85)), "got %s", avg)
}

func TestGradeServiceSaveFinalGrade(t *testing.T) {
	svc, _, _, _ := newGradeFixture(t)
	p1 := decimal.NewFromInt(85)
	saved, err := svc.SaveFinalGrade(context.Background(), FinalGradeRequest{
		StudentID: 7, SubjectID: 2, Period1Grade: &p1,
	})
	require.NoError(t, err)
	require.NotNil(t, saved.Period1Grade)
	assert.True(t, saved.Period1Grade.Equal(p1))
}
