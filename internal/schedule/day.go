package schedule

import (
	"sort"
	"time"

	"confsched/internal/model"
)

// sameDate reports whether a and b fall on the same calendar date, with a
// converted into b's location first. Comparing date components (not
// instants) avoids truncation errors at midnight boundaries.
func sameDate(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ForDay filters a schedule down to the sessions starting on the given
// calendar day, plus the subset of rooms referenced by at least one of those
// sessions. Room display order is preserved; rooms with no sessions that day
// are excluded so the grid renders no empty columns. Applying ForDay to an
// already day-scoped schedule is a no-op.
func ForDay(rooms []model.Room, sessions []model.Session, day time.Time) ([]model.Room, []model.Session) {
	daySessions := make([]model.Session, 0, len(sessions))
	used := make(map[int]bool)
	for _, s := range sessions {
		if sameDate(s.StartsAt, day) {
			daySessions = append(daySessions, s)
			used[s.RoomID] = true
		}
	}

	dayRooms := make([]model.Room, 0, len(used))
	for _, r := range rooms {
		if used[r.ID] {
			dayRooms = append(dayRooms, r)
		}
	}
	return dayRooms, daySessions
}

// Days returns the distinct calendar days (midnight instants in loc) on
// which at least one session starts, ascending. Used when the config does
// not pin an explicit day list.
func Days(sessions []model.Session, loc *time.Location) []time.Time {
	seen := make(map[int64]time.Time)
	for _, s := range sessions {
		st := s.StartsAt.In(loc)
		d := time.Date(st.Year(), st.Month(), st.Day(), 0, 0, 0, 0, loc)
		seen[d.Unix()] = d
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
