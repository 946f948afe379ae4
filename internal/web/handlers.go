package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"confsched/internal/export"
	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/schedule"
)

const dayLayout = "2006-01-02"

// dayDTO is one entry in the day picker.
type dayDTO struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// scheduleResponse is the JSON shape for /api/schedule.
type scheduleResponse struct {
	Day      string          `json:"day"`
	Rooms    []model.Room    `json:"rooms"`
	Sessions []model.Session `json:"sessions"`
	Speakers []model.Speaker `json:"speakers"`
}

// gridResponse is the JSON shape for /api/grid. Placements carry half-open
// block ranges; the client owns all span/merge arithmetic.
type gridResponse struct {
	Day        string                `json:"day"`
	View       string                `json:"view"`
	Rooms      []model.Room          `json:"rooms"`
	Blocks     []schedule.TimeBlock  `json:"blocks"`
	Placements []schedule.Placement  `json:"placements"`
	Conflicts  []string              `json:"conflicts"`
	Now        *schedule.NowPosition `json:"now,omitempty"`
	// NowFraction is Now as a fractional block index, so renderers can
	// draw the indicator line without redoing the offset arithmetic.
	NowFraction *float64 `json:"nowFraction,omitempty"`
}

// days returns the configured day list, or one derived from the schedule
// when the config does not pin days.
func (s *Server) days(sched model.Schedule) []dayDTO {
	if len(s.cfg.Days) > 0 {
		out := make([]dayDTO, 0, len(s.cfg.Days))
		for _, d := range s.cfg.Days {
			label := d.Label
			if label == "" {
				if t, err := time.ParseInLocation(dayLayout, d.Date, s.loc); err == nil {
					label = t.Format("Monday, January 2, 2006")
				}
			}
			out = append(out, dayDTO{Date: d.Date, Label: label})
		}
		return out
	}

	derived := schedule.Days(sched.Sessions, s.loc)
	out := make([]dayDTO, 0, len(derived))
	for _, d := range derived {
		out = append(out, dayDTO{
			Date:  d.Format(dayLayout),
			Label: d.Format("Monday, January 2, 2006"),
		})
	}
	return out
}

// resolveDay parses the ?day= query parameter, defaulting to the first
// conference day.
func (s *Server) resolveDay(raw string, sched model.Schedule) (time.Time, bool) {
	if raw != "" {
		t, err := time.ParseInLocation(dayLayout, raw, s.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	days := s.days(sched)
	if len(days) == 0 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dayLayout, days[0].Date, s.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	sched, err := s.loadSchedule(r.Context())
	if err != nil {
		appLog.Error("api days: schedule load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}
	writeJSON(w, http.StatusOK, s.days(sched))
}

// handleSchedule returns the day-scoped rooms/sessions plus the full
// speaker list for lookups.
//
// GET /api/schedule?day=2025-06-03
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := s.loadSchedule(r.Context())
	if err != nil {
		appLog.Error("api schedule: load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	day, ok := s.resolveDay(r.URL.Query().Get("day"), sched)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid or missing day")
		return
	}

	norm := schedule.Normalize(sched.Rooms, sched.Sessions, sched.Speakers)
	rooms, sessions := schedule.ForDay(norm.Rooms, norm.Sessions, day)

	writeJSON(w, http.StatusOK, scheduleResponse{
		Day:      day.Format(dayLayout),
		Rooms:    rooms,
		Sessions: sessions,
		Speakers: sched.Speakers,
	})
}

// handleGrid returns everything a renderer needs for one day view: ordered
// rooms, the block axis, placements, the conflict id set and (for today)
// the live position.
//
// GET /api/grid?day=2025-06-03&view=full|my
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	sched, err := s.loadSchedule(r.Context())
	if err != nil {
		appLog.Error("api grid: schedule load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	q := r.URL.Query()
	day, ok := s.resolveDay(q.Get("day"), sched)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid or missing day")
		return
	}
	view := q.Get("view")
	if view == "" {
		view = "full"
	}
	if view != "full" && view != "my" {
		writeError(w, http.StatusBadRequest, "view must be full or my")
		return
	}

	selected, err := s.picks.Load()
	if err != nil {
		appLog.Error("api grid: selection load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load selection")
		return
	}

	norm := schedule.Normalize(sched.Rooms, sched.Sessions, sched.Speakers)
	rooms, sessions := schedule.ForDay(norm.Rooms, norm.Sessions, day)

	// Conflict highlighting belongs to the full view only. The my view
	// exists for decluttered browsing, so the detector is not run at all
	// rather than run-and-ignored.
	conflicts := []string{}
	if view == "my" {
		sessions, rooms = schedule.Project(sessions, rooms, selected)
	} else {
		conflicts = sortedIDs(schedule.Conflicts(sessions, selected))
	}

	resp := gridResponse{
		Day:        day.Format(dayLayout),
		View:       view,
		Rooms:      rooms,
		Blocks:     s.grid.Blocks(),
		Placements: schedule.BuildPlacements(s.grid, sessions, rooms),
		Conflicts:  conflicts,
	}
	if pos, ok := s.livePosition(day); ok {
		resp.Now = &pos
		fraction := pos.Fraction(s.grid)
		resp.NowFraction = &fraction
	}

	writeJSON(w, http.StatusOK, resp)
}

// livePosition returns the indicator position for the viewed day, serving
// the minute-refreshed cache when it covers that day and is still fresh.
func (s *Server) livePosition(day time.Time) (schedule.NowPosition, bool) {
	s.liveMu.RLock()
	lc := s.liveCache
	s.liveMu.RUnlock()

	now := s.now().In(s.loc)
	if lc != nil && lc.day.Equal(day) && now.Sub(lc.updatedAt) < 90*time.Second {
		return lc.pos, lc.ok
	}
	return schedule.LivePosition(s.grid, day, now)
}

// handleSelection reads or replaces the selected session id snapshot.
//
// GET /api/selection          -> ["s1","s2"]
// PUT /api/selection          <- ["s1","s2"]
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ids, err := s.picks.Load()
		if err != nil {
			appLog.Error("api selection: load failed", err)
			writeError(w, http.StatusInternalServerError, "failed to load selection")
			return
		}
		writeJSON(w, http.StatusOK, ids)

	case http.MethodPut:
		var ids []string
		if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
			writeError(w, http.StatusBadRequest, "body must be a JSON array of session ids")
			return
		}
		if err := s.picks.Save(ids); err != nil {
			appLog.Error("api selection: save failed", err)
			writeError(w, http.StatusInternalServerError, "failed to save selection")
			return
		}
		writeJSON(w, http.StatusOK, ids)

	default:
		writeError(w, http.StatusMethodNotAllowed, "use GET or PUT")
	}
}

// handleExport serializes the my-schedule projection as an iCalendar file.
// With ?day= the export covers one day; without it, every selected session.
//
// GET /api/export.ics?day=2025-06-03
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sched, err := s.loadSchedule(r.Context())
	if err != nil {
		appLog.Error("api export: schedule load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	selected, err := s.picks.Load()
	if err != nil {
		appLog.Error("api export: selection load failed", err)
		writeError(w, http.StatusInternalServerError, "failed to load selection")
		return
	}

	norm := schedule.Normalize(sched.Rooms, sched.Sessions, sched.Speakers)
	rooms, sessions := norm.Rooms, norm.Sessions
	if raw := r.URL.Query().Get("day"); raw != "" {
		day, ok := s.resolveDay(raw, sched)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid day")
			return
		}
		rooms, sessions = schedule.ForDay(rooms, sessions, day)
	}

	mine, myRooms := schedule.Project(sessions, rooms, selected)
	if len(mine) == 0 {
		writeError(w, http.StatusNotFound, "no selected sessions to export")
		return
	}

	body, err := export.ICS(mine, myRooms, s.cfg.UIDSuffix)
	if err != nil {
		appLog.Error("api export: serialization failed", err)
		writeError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="my-schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
