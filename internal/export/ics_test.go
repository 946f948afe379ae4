package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsched/internal/model"
)

func exportFixture() ([]model.Session, []model.Room) {
	sessions := []model.Session{
		{
			ID:          "s1",
			Title:       "Opening Keynote",
			Description: "Welcome talk.",
			StartsAt:    time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
			EndsAt:      time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC),
			RoomID:      1,
		},
		{
			ID:       "s2",
			Title:    "Panel",
			StartsAt: time.Date(2025, 6, 3, 10, 30, 0, 0, time.UTC),
			EndsAt:   time.Date(2025, 6, 3, 11, 30, 0, 0, time.UTC),
			RoomID:   42, // no matching room: location stays empty
		},
	}
	rooms := []model.Room{{ID: 1, Name: "Grand Ballroom", Sort: 0}}
	return sessions, rooms
}

func TestICS_SerializesSessions(t *testing.T) {
	sessions, rooms := exportFixture()

	body, err := ICS(sessions, rooms, "@confsched")
	require.NoError(t, err)
	ics := string(body)

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR"))
	assert.Contains(t, ics, "UID:s1@confsched")
	assert.Contains(t, ics, "UID:s2@confsched")
	assert.Contains(t, ics, "SUMMARY:Opening Keynote")
	assert.Contains(t, ics, "LOCATION:Grand Ballroom")
	assert.Contains(t, ics, "DTSTART:20250603T090000Z")
	assert.Contains(t, ics, "DTEND:20250603T100000Z")
	assert.Contains(t, ics, "DESCRIPTION:Welcome talk.")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

func TestICS_UnknownRoomLeavesLocationEmpty(t *testing.T) {
	sessions, rooms := exportFixture()

	cal, err := BuildCalendar(sessions, rooms, "@confsched")
	require.NoError(t, err)

	// The second event references room 42 which is not in the room list;
	// the export degrades to no LOCATION rather than failing.
	serialized := cal.Serialize()
	assert.Equal(t, 1, strings.Count(serialized, "LOCATION:"))
}

func TestICS_EmptySelectionIsAnError(t *testing.T) {
	_, err := ICS(nil, nil, "@confsched")
	assert.Error(t, err)
}
