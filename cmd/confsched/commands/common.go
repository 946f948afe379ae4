package commands

import (
	"context"
	"fmt"
	"time"

	"confsched/internal/config"
	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/schedule"
	"confsched/internal/selection"
	"confsched/internal/source"
)

const dayLayout = "2006-01-02"

// env bundles everything the commands need: config, timezone, grid and the
// loaded schedule with its normalized lookup structures.
type env struct {
	cfg   *config.Config
	loc   *time.Location
	grid  schedule.Grid
	sched model.Schedule
	norm  schedule.NormalizedSchedule
	picks *selection.Store
}

func loadEnv(ctx context.Context) (*env, error) {
	if debugLog {
		appLog.SetLevel(appLog.LevelDebug)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	fetcher := source.NewFetcher(cfg.CacheDir)
	sched, err := source.Load(ctx, fetcher, cfg.ScheduleURL, loc)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:   cfg,
		loc:   loc,
		grid:  cfg.Grid(),
		sched: sched,
		norm:  schedule.Normalize(sched.Rooms, sched.Sessions, sched.Speakers),
		picks: selection.NewStore(cfg.SelectionPath),
	}, nil
}

// resolveDay parses a YYYY-MM-DD day argument, defaulting to the first
// conference day (configured or derived from the schedule).
func (e *env) resolveDay(raw string) (time.Time, error) {
	if raw != "" {
		t, err := time.ParseInLocation(dayLayout, raw, e.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad day %q (want YYYY-MM-DD): %w", raw, err)
		}
		return t, nil
	}

	if len(e.cfg.Days) > 0 {
		t, err := time.ParseInLocation(dayLayout, e.cfg.Days[0].Date, e.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("config days[0].date %q is invalid: %w", e.cfg.Days[0].Date, err)
		}
		return t, nil
	}

	days := schedule.Days(e.sched.Sessions, e.loc)
	if len(days) == 0 {
		return time.Time{}, fmt.Errorf("schedule has no sessions to derive a day from")
	}
	return days[0], nil
}

// sessionByID finds a session in the loaded schedule.
func (e *env) sessionByID(id string) (model.Session, bool) {
	for _, s := range e.sched.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return model.Session{}, false
}
