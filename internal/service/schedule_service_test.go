package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edugo-labs/aula-api/internal/models"
	"github.com/edugo-labs/aula-api/pkg/errors"
)

type scheduleSlot struct {
	day   int
	start string
}

type mockScheduleRepo struct {
	entries map[scheduleSlot]*models.ScheduleEntry
	nextID  int64
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[scheduleSlot]*models.ScheduleEntry)}
}

func (m *mockScheduleRepo) ListByGroup(ctx context.Context, groupID int64) ([]models.ScheduleEntry, error) {
	var out []models.ScheduleEntry
	for _, e := range m.entries {
		if e.GroupID == groupID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) ListWeek(ctx context.Context) ([]models.ScheduleDetail, error) {
	return nil, nil
}

func (m *mockScheduleRepo) Upsert(ctx context.Context, entry *models.ScheduleEntry) error {
	key := scheduleSlot{entry.DayOfWeek, entry.StartTime}
	if existing, ok := m.entries[key]; ok {
		existing.GroupID = entry.GroupID
		existing.EndTime = entry.EndTime
		entry.ID = existing.ID
		return nil
	}
	m.nextID++
	entry.ID = m.nextID
	copied := *entry
	m.entries[key] = &copied
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id int64) error {
	for key, e := range m.entries {
		if e.ID == id {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestScheduleServicePlaceAndReplace(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := NewScheduleService(repo, groupFixture(), nil, nil)

	first, err := svc.Place(context.Background(), 4, ScheduleEntryRequest{DayOfWeek: 0, StartTime: "08:00", EndTime: "09:00"})
	require.NoError(t, err)

	second, err := svc.Place(context.Background(), 4, ScheduleEntryRequest{DayOfWeek: 0, StartTime: "08:00", EndTime: "09:30"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	entries, err := svc.ListByGroup(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "09:30", entries[0].EndTime)
}

func TestScheduleServicePlaceReassignsSlotAcrossGroups(t *testing.T) {
	repo := newMockScheduleRepo()
	svc := NewScheduleService(repo, groupFixture(), nil, nil)

	first, err := svc.Place(context.Background(), 4, ScheduleEntryRequest{DayOfWeek: 2, StartTime: "10:00", EndTime: "11:00"})
	require.NoError(t, err)

	second, err := svc.Place(context.Background(), 5, ScheduleEntryRequest{DayOfWeek: 2, StartTime: "10:00", EndTime: "11:30"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	orphaned, err := svc.ListByGroup(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, orphaned)

	entries, err := svc.ListByGroup(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "11:30", entries[0].EndTime)
}

func TestScheduleServiceRejectsInvertedTimes(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), groupFixture(), nil, nil)

	_, err := svc.Place(context.Background(), 4, ScheduleEntryRequest{DayOfWeek: 0, StartTime: "10:00", EndTime: "09:00"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidation.Code, errors.FromError(err).Code)
}

func TestScheduleServiceRejectsBadClock(t *testing.T) {
	svc := NewScheduleService(newMockScheduleRepo(), groupFixture(), nil, nil)

	_, err := svc.Place(context.Background(), 4, ScheduleEntryRequest{DayOfWeek: 0, StartTime: "8am", EndTime: "9am"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrValidation.Code, errors.FromError(err).Code)
}
