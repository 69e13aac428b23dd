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

type mockTopicRepo struct {
	topics map[int64]*models.Topic
	nextID int64
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[int64]*models.Topic)}
}

func (m *mockTopicRepo) List(ctx context.Context, subjectID, periodID int64) ([]models.Topic, error) {
	var out []models.Topic
	for _, t := range m.topics {
		if t.SubjectID == subjectID && t.PeriodID == periodID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTopicRepo) ListBySubject(ctx context.Context, subjectID int64) ([]models.Topic, error) {
	var out []models.Topic
	for _, t := range m.topics {
		if t.SubjectID == subjectID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTopicRepo) FindByID(ctx context.Context, id int64) (*models.Topic, error) {
	if t, ok := m.topics[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	m.nextID++
	topic.ID = m.nextID
	copied := *topic
	m.topics[topic.ID] = &copied
	return nil
}

func (m *mockTopicRepo) Update(ctx context.Context, topic *models.Topic) error {
	copied := *topic
	m.topics[topic.ID] = &copied
	return nil
}

func (m *mockTopicRepo) Delete(ctx context.Context, id int64) error {
	delete(m.topics, id)
	return nil
}

func weights(exam, practice, notebook, other int64) (decimal.Decimal, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	return decimal.NewFromInt(exam), decimal.NewFromInt(practice), decimal.NewFromInt(notebook), decimal.NewFromInt(other)
}

func TestTopicServiceCreateValidWeights(t *testing.T) {
	svc := NewTopicService(newMockTopicRepo(), nil, nil)

	e, p, n, o := weights(40, 30, 20, 10)
	topic, err := svc.Create(context.Background(), CreateTopicRequest{
		Name: "Fracciones", PeriodID: 1, SubjectID: 2,
		ExamWeight: e, PracticeWeight: p, NotebookWeight: n, OtherWeight: o,
	})
	require.NoError(t, err)
	assert.NotZero(t, topic.ID)
}

func TestTopicServiceCreateRejectsBadSum(t *testing.T) {
	svc := NewTopicService(newMockTopicRepo(), nil, nil)

	e, p, n, o := weights(40, 30, 20, 5)
	_, err := svc.Create(context.Background(), CreateTopicRequest{
		Name: "Fracciones", PeriodID: 1, SubjectID: 2,
		ExamWeight: e, PracticeWeight: p, NotebookWeight: n, OtherWeight: o,
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidWeights.Code, errors.FromError(err).Code)
}

func TestTopicServicePartialUpdateValidatesMergedWeights(t *testing.T) {
	repo := newMockTopicRepo()
	svc := NewTopicService(repo, nil, nil)

	e, p, n, o := weights(40, 30, 20, 10)
	topic, err := svc.Create(context.Background(), CreateTopicRequest{
		Name: "Fracciones", PeriodID: 1, SubjectID: 2,
		ExamWeight: e, PracticeWeight: p, NotebookWeight: n, OtherWeight: o,
	})
	require.NoError(t, err)

	// Raising one weight alone breaks the sum: the stored values must win.
	bigger := decimal.NewFromInt(50)
	_, err = svc.Update(context.Background(), topic.ID, UpdateTopicRequest{
		Name: "Fracciones", ExamWeight: &bigger,
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidWeights.Code, errors.FromError(err).Code)

	stored, err := svc.Get(context.Background(), topic.ID)
	require.NoError(t, err)
	assert.True(t, stored.ExamWeight.Equal(decimal.NewFromInt(40)))
}

func TestTopicServicePairedUpdateSucceeds(t *testing.T) {
	repo := newMockTopicRepo()
	svc := NewTopicService(repo, nil, nil)

	e, p, n, o := weights(40, 30, 20, 10)
	topic, err := svc.Create(context.Background(), CreateTopicRequest{
		Name: "Fracciones", PeriodID: 1, SubjectID: 2,
		ExamWeight: e, PracticeWeight: p, NotebookWeight: n, OtherWeight: o,
	})
	require.NoError(t, err)

	newExam := decimal.NewFromInt(50)
	newPractice := decimal.NewFromInt(20)
	updated, err := svc.Update(context.Background(), topic.ID, UpdateTopicRequest{
		Name: "Fracciones", ExamWeight: &newExam, PracticeWeight: &newPractice,
	})
	require.NoError(t, err)
	assert.True(t, updated.ExamWeight.Equal(newExam))
	assert.True(t, updated.NotebookWeight.Equal(decimal.NewFromInt(20)))
}
