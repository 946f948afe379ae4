package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_CachesWithETag(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(`{"rooms":[],"sessions":[],"speakers":[]}`))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	ctx := context.Background()

	first, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Body, second.Body)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetcher_FallsBackToCacheOnServerError(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`payload`))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	ctx := context.Background()

	first, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	require.Equal(t, []byte(`payload`), first.Body)

	fail.Store(true)
	second, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, []byte(`payload`), second.Body)
}

func TestFetcher_EmptyURL(t *testing.T) {
	f := NewFetcher(t.TempDir())
	_, err := f.Fetch(context.Background(), "")
	assert.Error(t, err)
}

func TestLoad_FallsBackToBundleOnBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a schedule"}`))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir())
	sched, err := Load(context.Background(), f, srv.URL, time.UTC)
	require.NoError(t, err)

	// The bundled dataset stands in for the invalid remote payload.
	assert.NotEmpty(t, sched.Sessions)
}

func TestLoad_NoURLUsesBundle(t *testing.T) {
	f := NewFetcher(t.TempDir())
	sched, err := Load(context.Background(), f, "", time.UTC)
	require.NoError(t, err)
	assert.NotEmpty(t, sched.Rooms)
}
