package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsched/internal/model"
)

func TestForDay_FiltersSessionsAndRooms(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, Name: "A", Sort: 0},
		{ID: 2, Name: "B", Sort: 1},
		{ID: 3, Name: "C", Sort: 2},
	}
	sessions := []model.Session{
		mkSession("s1", 1, 9, 0, 10, 0),
		mkSession("s2", 2, 9, 30, 10, 30),
		{
			ID:       "other-day",
			RoomID:   3,
			StartsAt: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC),
		},
	}

	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	dayRooms, daySessions := ForDay(rooms, sessions, day)

	require.Len(t, daySessions, 2)
	assert.Equal(t, "s1", daySessions[0].ID)

	// Room C hosts nothing on June 3 and must not produce an empty column.
	require.Len(t, dayRooms, 2)
	assert.Equal(t, "A", dayRooms[0].Name)
	assert.Equal(t, "B", dayRooms[1].Name)
}

func TestForDay_Idempotent(t *testing.T) {
	rooms := fixtureRooms()
	sessions := []model.Session{
		mkSession("s1", 1, 9, 0, 10, 0),
		mkSession("s2", 2, 9, 30, 10, 30),
	}
	day := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	r1, s1 := ForDay(rooms, sessions, day)
	r2, s2 := ForDay(r1, s1, day)

	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
}

func TestForDay_MidnightBoundary(t *testing.T) {
	// A session starting 23:30 belongs to its start date, not the next day.
	late := model.Session{
		ID:       "late",
		RoomID:   1,
		StartsAt: time.Date(2025, 6, 3, 23, 30, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 6, 4, 0, 30, 0, 0, time.UTC),
	}

	_, onThird := ForDay(fixtureRooms(), []model.Session{late}, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
	require.Len(t, onThird, 1)

	_, onFourth := ForDay(fixtureRooms(), []model.Session{late}, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, onFourth)
}

func TestDays_DistinctSorted(t *testing.T) {
	sessions := []model.Session{
		{ID: "b", StartsAt: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)},
		{ID: "a", StartsAt: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)},
		{ID: "a2", StartsAt: time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC), EndsAt: time.Date(2025, 6, 3, 15, 0, 0, 0, time.UTC)},
	}

	days := Days(sessions, time.UTC)

	require.Len(t, days, 2)
	assert.Equal(t, 3, days[0].Day())
	assert.Equal(t, 4, days[1].Day())
	assert.Equal(t, 0, days[0].Hour())
}
