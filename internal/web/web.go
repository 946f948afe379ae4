package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"confsched/internal/config"
	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/schedule"
	"confsched/internal/selection"
	"confsched/internal/source"
)

// Server provides the HTTP API over the schedule engine: day-scoped
// schedules, grid placements with conflict flags, the selection store and
// iCalendar export. Rendering is the client's job; every endpoint returns
// plain data.
type Server struct {
	cfg   *config.Config
	mux   *http.ServeMux
	loc   *time.Location
	grid  schedule.Grid
	picks *selection.Store

	fetcher *source.Fetcher

	// In-memory cache of the loaded schedule so every request does not
	// re-fetch/re-parse the remote payload.
	schedMu    sync.RWMutex
	schedCache *schedCache

	// Cached live position for "today", refreshed once per minute by the
	// cron job started in StartLiveRefresh.
	liveMu    sync.RWMutex
	liveCache *liveCache

	// now is swappable for tests.
	now func() time.Time
}

type schedCache struct {
	sched     model.Schedule
	updatedAt time.Time
}

type liveCache struct {
	day       time.Time
	pos       schedule.NowPosition
	ok        bool
	updatedAt time.Time
}

const scheduleCacheTTL = 5 * time.Minute

// NewServer constructs a Server from config.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		mux:     http.NewServeMux(),
		loc:     resolveLocationOrLocal(cfg.Timezone),
		grid:    cfg.Grid(),
		picks:   selection.NewStore(cfg.SelectionPath),
		fetcher: source.NewFetcher(cfg.CacheDir),
		now:     time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the http.Handler for this server, wrapped in basic auth
// when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// StartLiveRefresh starts the once-per-minute refresh of the cached live
// position and stops it when ctx is canceled. The refresh is the only
// recurring work in the server; everything else is computed per request.
func (s *Server) StartLiveRefresh(ctx context.Context) {
	s.refreshLive()

	c := cron.New()
	_, err := c.AddFunc("* * * * *", s.refreshLive)
	if err != nil {
		appLog.Error("failed to schedule live-position refresh", err)
		return
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
		appLog.Info("live-position refresh stopped")
	}()
}

func (s *Server) refreshLive() {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	pos, ok := schedule.LivePosition(s.grid, today, now)

	s.liveMu.Lock()
	s.liveCache = &liveCache{day: today, pos: pos, ok: ok, updatedAt: now}
	s.liveMu.Unlock()
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="confsched", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/days", s.handleDays)
	s.mux.HandleFunc("/api/schedule", s.handleSchedule)
	s.mux.HandleFunc("/api/grid", s.handleGrid)
	s.mux.HandleFunc("/api/selection", s.handleSelection)
	s.mux.HandleFunc("/api/export.ics", s.handleExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// loadSchedule returns the current schedule, re-fetching at most once per
// scheduleCacheTTL.
func (s *Server) loadSchedule(ctx context.Context) (model.Schedule, error) {
	now := s.now()

	s.schedMu.RLock()
	sc := s.schedCache
	s.schedMu.RUnlock()
	if sc != nil && now.Sub(sc.updatedAt) < scheduleCacheTTL {
		return sc.sched, nil
	}

	sched, err := source.Load(ctx, s.fetcher, s.cfg.ScheduleURL, s.loc)
	if err != nil {
		return model.Schedule{}, err
	}

	s.schedMu.Lock()
	s.schedCache = &schedCache{sched: sched, updatedAt: now}
	s.schedMu.Unlock()
	return sched, nil
}

func resolveLocationOrLocal(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
