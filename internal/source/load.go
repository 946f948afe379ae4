package source

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	appLog "confsched/internal/log"
	"confsched/internal/model"
)

// fallbackSchedule is the bundled dataset used when no schedule URL is
// configured or the remote payload cannot be fetched/validated.
//
//go:embed fallback_schedule.json
var fallbackSchedule []byte

// Fallback parses the bundled dataset. The bundle is validated at build
// time by the package tests, so a parse failure here is a packaging bug.
func Fallback(loc *time.Location) (model.Schedule, error) {
	sched, err := Parse(fallbackSchedule, loc)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("source: bundled schedule is invalid: %w", err)
	}
	return sched, nil
}

// Load produces the schedule the rest of the application runs on: fetch the
// remote payload if a URL is configured, parse and validate it, and fall
// back to the bundled dataset on any failure. Load itself never fails unless
// the bundle is broken.
func Load(ctx context.Context, f *Fetcher, url string, loc *time.Location) (model.Schedule, error) {
	if url == "" {
		appLog.Debug("source: no schedule URL configured, using bundled dataset")
		return Fallback(loc)
	}

	res, err := f.Fetch(ctx, url)
	if err != nil {
		appLog.Error("source: schedule fetch failed, using bundled dataset", err, "url", url)
		return Fallback(loc)
	}

	sched, err := Parse(res.Body, loc)
	if err != nil {
		appLog.Error("source: remote schedule invalid, using bundled dataset", err, "url", url)
		return Fallback(loc)
	}

	appLog.Info("source: schedule loaded",
		"url", url,
		"from_cache", res.FromCache,
		"rooms", len(sched.Rooms),
		"sessions", len(sched.Sessions),
		"speakers", len(sched.Speakers),
	)
	return sched, nil
}
