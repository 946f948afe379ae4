package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confsched/internal/model"
)

func TestNormalize_RoomOrderStable(t *testing.T) {
	rooms := []model.Room{
		{ID: 3, Name: "C", Sort: 1},
		{ID: 1, Name: "A", Sort: 0},
		{ID: 2, Name: "B", Sort: 1},
	}

	n := Normalize(rooms, nil, nil)

	require.Len(t, n.Rooms, 3)
	assert.Equal(t, "A", n.Rooms[0].Name)
	// Equal sort keys keep their original relative order.
	assert.Equal(t, "C", n.Rooms[1].Name)
	assert.Equal(t, "B", n.Rooms[2].Name)

	// Input slice is not reordered.
	assert.Equal(t, 3, rooms[0].ID)
}

func TestNormalize_SessionsByRoom(t *testing.T) {
	rooms := fixtureRooms()
	sessions := []model.Session{
		mkSession("s1", 1, 9, 0, 10, 0),
		mkSession("s2", 2, 9, 30, 10, 30),
		mkSession("s3", 1, 11, 0, 12, 0),
		mkSession("orphan", 99, 9, 0, 10, 0),
	}

	n := Normalize(rooms, sessions, nil)

	require.Len(t, n.SessionsByRoom[1], 2)
	assert.Equal(t, "s1", n.SessionsByRoom[1][0].ID)
	assert.Equal(t, "s3", n.SessionsByRoom[1][1].ID)
	assert.Len(t, n.SessionsByRoom[2], 1)

	// Unknown room id gets no bucket; the session stays in Sessions.
	_, ok := n.SessionsByRoom[99]
	assert.False(t, ok)
	assert.Len(t, n.Sessions, 4)
}

func TestNormalize_TimeSlotsDistinctSorted(t *testing.T) {
	sessions := []model.Session{
		mkSession("s1", 1, 10, 0, 11, 0),
		mkSession("s2", 2, 9, 0, 10, 0), // end == s1 start: deduplicated
	}

	n := Normalize(fixtureRooms(), sessions, nil)

	require.Len(t, n.TimeSlots, 3)
	assert.Equal(t, 9, n.TimeSlots[0].Hour())
	assert.Equal(t, 10, n.TimeSlots[1].Hour())
	assert.Equal(t, 11, n.TimeSlots[2].Hour())
	assert.True(t, n.TimeSlots[0].Before(n.TimeSlots[1]))
}

func TestNormalize_Lookups(t *testing.T) {
	speakers := []model.Speaker{
		{ID: "sp1", FullName: "Ada"},
		{ID: "sp1", FullName: "Ada v2"}, // duplicate id: last write wins
	}

	n := Normalize(fixtureRooms(), nil, speakers)

	sp, ok := n.Speaker("sp1")
	require.True(t, ok)
	assert.Equal(t, "Ada v2", sp.FullName)

	_, ok = n.Speaker("missing")
	assert.False(t, ok)

	_, ok = n.Room(42)
	assert.False(t, ok)

	r, ok := n.Room(1)
	require.True(t, ok)
	assert.Equal(t, "A", r.Name)
}

func TestNormalize_EmptyRoomHasEmptyBucket(t *testing.T) {
	n := Normalize(fixtureRooms(), nil, nil)

	bucket, ok := n.SessionsByRoom[2]
	require.True(t, ok)
	assert.NotNil(t, bucket)
	assert.Empty(t, bucket)
	assert.Empty(t, n.TimeSlots)
}
