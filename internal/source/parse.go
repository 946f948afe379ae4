package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appLog "confsched/internal/log"
	"confsched/internal/model"
)

// wireSession mirrors the schedule JSON; timestamps arrive as strings and
// description may be null.
type wireSession struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	StartsAt    string   `json:"startsAt"`
	EndsAt      string   `json:"endsAt"`
	RoomID      int      `json:"roomId"`
	Speakers    []string `json:"speakers"`
}

type wireSpeaker struct {
	ID             string  `json:"id"`
	FullName       string  `json:"fullName"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Bio            *string `json:"bio"`
	TagLine        *string `json:"tagLine"`
	ProfilePicture *string `json:"profilePicture"`
}

// wireSchedule uses pointer slices so a structurally invalid payload
// (any of the three arrays absent) is distinguishable from an empty one.
type wireSchedule struct {
	Sessions *[]wireSession `json:"sessions"`
	Rooms    *[]model.Room  `json:"rooms"`
	Speakers *[]wireSpeaker `json:"speakers"`
}

// Parse decodes and validates a schedule payload. The payload is invalid
// when any of sessions/rooms/speakers is absent; callers fall back to the
// bundled dataset in that case.
//
// Individual bad records degrade instead of failing the whole payload:
// sessions with unparseable timestamps or an interval where end <= start are
// logged and skipped, so they can never violate the Session invariant
// downstream.
func Parse(body []byte, loc *time.Location) (model.Schedule, error) {
	var wire wireSchedule
	if err := json.Unmarshal(body, &wire); err != nil {
		return model.Schedule{}, fmt.Errorf("source: decode schedule: %w", err)
	}
	if wire.Sessions == nil || wire.Rooms == nil || wire.Speakers == nil {
		return model.Schedule{}, errors.New("source: schedule payload missing sessions, rooms or speakers array")
	}

	sched := model.Schedule{
		Rooms:    *wire.Rooms,
		Sessions: make([]model.Session, 0, len(*wire.Sessions)),
		Speakers: make([]model.Speaker, 0, len(*wire.Speakers)),
	}

	for _, ws := range *wire.Sessions {
		startsAt, err := parseTimestamp(ws.StartsAt, loc)
		if err != nil {
			appLog.Error("source: skipping session with bad startsAt", err, "session_id", ws.ID)
			continue
		}
		endsAt, err := parseTimestamp(ws.EndsAt, loc)
		if err != nil {
			appLog.Error("source: skipping session with bad endsAt", err, "session_id", ws.ID)
			continue
		}
		if !startsAt.Before(endsAt) {
			appLog.Error("source: skipping session with inverted interval",
				errors.New("endsAt is not after startsAt"),
				"session_id", ws.ID, "starts_at", ws.StartsAt, "ends_at", ws.EndsAt)
			continue
		}

		sched.Sessions = append(sched.Sessions, model.Session{
			ID:          ws.ID,
			Title:       ws.Title,
			Description: deref(ws.Description),
			StartsAt:    startsAt,
			EndsAt:      endsAt,
			RoomID:      ws.RoomID,
			Speakers:    ws.Speakers,
		})
	}

	for _, wsp := range *wire.Speakers {
		name := wsp.FullName
		if name == "" {
			name = joinName(wsp.FirstName, wsp.LastName)
		}
		sched.Speakers = append(sched.Speakers, model.Speaker{
			ID:             wsp.ID,
			FullName:       name,
			Bio:            deref(wsp.Bio),
			TagLine:        deref(wsp.TagLine),
			ProfilePicture: deref(wsp.ProfilePicture),
		})
	}

	return sched, nil
}

// parseTimestamp accepts RFC3339 timestamps and the zone-less ISO form used
// by conference schedule exports; the latter is interpreted in loc.
func parseTimestamp(v string, loc *time.Location) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(loc), nil
	}
	const layout = "2006-01-02T15:04:05"
	if t, err := time.ParseInLocation(layout, v, loc); err == nil {
		return t, nil
	}
	const layoutMinute = "2006-01-02T15:04"
	return time.ParseInLocation(layoutMinute, v, loc)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
