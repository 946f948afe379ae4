package schedule

import (
	"time"

	"confsched/internal/model"
)

// Shared fixtures for the engine tests: two rooms, one day (2025-06-03).

func fixtureRooms() []model.Room {
	return []model.Room{
		{ID: 1, Name: "A", Sort: 0},
		{ID: 2, Name: "B", Sort: 1},
	}
}

func mkSession(id string, roomID int, startHour, startMin, endHour, endMin int) model.Session {
	return model.Session{
		ID:       id,
		Title:    "Session " + id,
		RoomID:   roomID,
		StartsAt: time.Date(2025, 6, 3, startHour, startMin, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 6, 3, endHour, endMin, 0, 0, time.UTC),
	}
}
