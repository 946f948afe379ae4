package export

import (
	"errors"

	ical "github.com/arran4/golang-ical"

	"confsched/internal/model"
)

// BuildCalendar serializes the projected sessions into an iCalendar object,
// one VEVENT per session. Location is the session's room name; an
// unresolvable room id simply leaves the location empty. The event UID is
// the session id plus uidSuffix so re-imports replace rather than duplicate.
//
// The sessions/rooms handed in are expected to be the exact set to export
// (the my-schedule projection); no filtering happens here.
func BuildCalendar(sessions []model.Session, rooms []model.Room, uidSuffix string) (*ical.Calendar, error) {
	if len(sessions) == 0 {
		return nil, errors.New("export: no sessions to export")
	}

	roomNames := make(map[int]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//confsched//schedule export//EN")

	for _, s := range sessions {
		ev := cal.AddEvent(s.ID + uidSuffix)
		ev.SetDtStampTime(s.StartsAt)
		ev.SetStartAt(s.StartsAt)
		ev.SetEndAt(s.EndsAt)
		ev.SetSummary(s.Title)
		if s.Description != "" {
			ev.SetDescription(s.Description)
		}
		if name, ok := roomNames[s.RoomID]; ok {
			ev.SetLocation(name)
		}
	}

	return cal, nil
}

// ICS renders the calendar to its text/calendar form.
func ICS(sessions []model.Session, rooms []model.Room, uidSuffix string) ([]byte, error) {
	cal, err := BuildCalendar(sessions, rooms, uidSuffix)
	if err != nil {
		return nil, err
	}
	return []byte(cal.Serialize()), nil
}
