package schedule

import (
	"sort"
	"time"

	"confsched/internal/model"
)

// NormalizedSchedule holds the lookup structures derived from one raw
// rooms/sessions/speakers set. It is recomputed from scratch on every
// schedule change; nothing in it is mutated in place.
type NormalizedSchedule struct {
	// Rooms in display order (stable-sorted by Sort ascending).
	Rooms    []model.Room
	Sessions []model.Session
	// TimeSlots is the distinct, ascending set of every session start and
	// end instant.
	TimeSlots      []time.Time
	RoomByID       map[int]model.Room
	SessionsByRoom map[int][]model.Session
	SpeakerByID    map[string]model.Speaker
}

// Normalize builds the derived lookup structures for one schedule. Duplicate
// room/speaker ids are last-write-wins; sessions referencing an unknown room
// are kept in Sessions but appear in no SessionsByRoom bucket.
func Normalize(rooms []model.Room, sessions []model.Session, speakers []model.Speaker) NormalizedSchedule {
	roomByID := make(map[int]model.Room, len(rooms))
	sessionsByRoom := make(map[int][]model.Session, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
		sessionsByRoom[r.ID] = []model.Session{}
	}
	for _, s := range sessions {
		if _, ok := sessionsByRoom[s.RoomID]; ok {
			sessionsByRoom[s.RoomID] = append(sessionsByRoom[s.RoomID], s)
		}
	}

	speakerByID := make(map[string]model.Speaker, len(speakers))
	for _, sp := range speakers {
		speakerByID[sp.ID] = sp
	}

	seen := make(map[int64]time.Time)
	for _, s := range sessions {
		seen[s.StartsAt.UnixNano()] = s.StartsAt
		seen[s.EndsAt.UnixNano()] = s.EndsAt
	}
	slots := make([]time.Time, 0, len(seen))
	for _, t := range seen {
		slots = append(slots, t)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })

	sorted := make([]model.Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Sort < sorted[j].Sort })

	return NormalizedSchedule{
		Rooms:          sorted,
		Sessions:       sessions,
		TimeSlots:      slots,
		RoomByID:       roomByID,
		SessionsByRoom: sessionsByRoom,
		SpeakerByID:    speakerByID,
	}
}

// Room looks up a room by id. The second return is false for unknown ids;
// missing references never panic.
func (n NormalizedSchedule) Room(id int) (model.Room, bool) {
	r, ok := n.RoomByID[id]
	return r, ok
}

// Speaker looks up a speaker by id.
func (n NormalizedSchedule) Speaker(id string) (model.Speaker, bool) {
	sp, ok := n.SpeakerByID[id]
	return sp, ok
}
