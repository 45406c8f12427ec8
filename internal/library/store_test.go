package library

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"remotetv/internal/domain"
)

type libraryRow struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	TMDBID    string    `json:"tmdb_id"`
	MediaType string    `json:"media_type"`
	ListType  string    `json:"list_type"`
	CreatedAt time.Time `json:"created_at"`
}

// fakeSupabase is a tiny in-memory stand-in for the GoTrue and PostgREST endpoints
type fakeSupabase struct {
	t            *testing.T
	mu           sync.Mutex
	nextID       int
	library      []libraryRow
	progress     []map[string]any
	lastUpsert   map[string]any
	lastQuery    map[string]string
	authHits     int32
	missingTable string
}

func (f *fakeSupabase) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.URL.Path == "/auth/v1/user" {
		atomic.AddInt32(&f.authHits, 1)
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1"}`))
		return
	}

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if table == f.missingTable {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"relation does not exist"}`))
		return
	}

	eq := map[string]string{}
	for k, v := range r.URL.Query() {
		eq[k] = v[0]
	}
	f.lastQuery = eq

	if r.URL.Query().Get("limit") == "0" {
		_, _ = w.Write([]byte(`[]`))
		return
	}

	switch table {
	case tableLibrary:
		f.serveLibrary(w, r, eq)
	case tableProgress:
		f.serveProgress(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func matches(row libraryRow, eq map[string]string) bool {
	fields := map[string]string{
		"id":        strconv.Itoa(row.ID),
		"user_id":   row.UserID,
		"tmdb_id":   row.TMDBID,
		"list_type": row.ListType,
	}
	for k, v := range eq {
		want, ok := strings.CutPrefix(v, "eq.")
		if !ok {
			continue
		}
		if fields[k] != want {
			return false
		}
	}
	return true
}

func (f *fakeSupabase) serveLibrary(w http.ResponseWriter, r *http.Request, eq map[string]string) {
	switch r.Method {
	case http.MethodGet:
		out := []libraryRow{}
		for _, row := range f.library {
			if matches(row, eq) {
				out = append(out, row)
			}
		}
		_ = json.NewEncoder(w).Encode(out)
	case http.MethodDelete:
		kept := f.library[:0]
		for _, row := range f.library {
			if !matches(row, eq) {
				kept = append(kept, row)
			}
		}
		f.library = kept
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		var row libraryRow
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&row))
		f.nextID++
		row.ID = f.nextID
		row.CreatedAt = time.Now()
		f.library = append(f.library, row)
		w.WriteHeader(http.StatusCreated)
	}
}

func (f *fakeSupabase) serveProgress(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.progress)
	case http.MethodPost:
		assert.Equal(f.t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
		var row map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&row))
		f.lastUpsert = row
		w.WriteHeader(http.StatusCreated)
	}
}

func newFakeStore(t *testing.T, token string) (*Supabase, *fakeSupabase) {
	t.Helper()
	fake := &fakeSupabase{t: t}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(srv.Close)
	return NewSupabase(zaptest.NewLogger(t), Options{URL: srv.URL, AnonKey: "anon", AccessToken: token}), fake
}

func TestToggleAddsThenRemoves(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	ctx := context.Background()

	assert.Equal(t, domain.ToggleAdded, s.Toggle(ctx, 42, domain.KindSeries, domain.ListWatchlist))
	require.Len(t, fake.library, 1)
	assert.Equal(t, "tv", fake.library[0].MediaType)
	assert.Equal(t, "42", fake.library[0].TMDBID)

	st := s.Status(ctx, 42)
	assert.True(t, st.InWatchlist)
	assert.False(t, st.InWatchLater)

	assert.Equal(t, domain.ToggleRemoved, s.Toggle(ctx, 42, domain.KindSeries, domain.ListWatchlist))
	assert.Empty(t, fake.library)
	assert.False(t, s.Status(ctx, 42).InWatchlist)
}

func TestToggleWithoutSessionRequiresAuth(t *testing.T) {
	s, fake := newFakeStore(t, "")
	assert.Equal(t, domain.ToggleAuthRequired, s.Toggle(context.Background(), 1, domain.KindMovie, domain.ListWatchLater))
	assert.Empty(t, fake.library)

	rejected, _ := newFakeStore(t, "expired")
	assert.Equal(t, domain.ToggleAuthRequired, rejected.Toggle(context.Background(), 1, domain.KindMovie, domain.ListWatchLater))
}

func TestMissingTableMakesListsUnavailable(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	fake.missingTable = tableLibrary

	assert.Equal(t, domain.ToggleUnavailable, s.Toggle(context.Background(), 1, domain.KindMovie, domain.ListWatchlist))
	assert.Equal(t, domain.LibraryStatus{}, s.Status(context.Background(), 1))
	assert.Nil(t, s.List(context.Background(), domain.ListWatchlist))
}

func TestListReturnsEntriesForList(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	fake.library = []libraryRow{
		{ID: 1, UserID: "u1", TMDBID: "7", MediaType: "movie", ListType: "watch_later"},
		{ID: 2, UserID: "u1", TMDBID: "8", MediaType: "tv", ListType: "watchlist"},
		{ID: 3, UserID: "other", TMDBID: "9", MediaType: "tv", ListType: "watchlist"},
		{ID: 4, UserID: "u1", TMDBID: "not-a-number", MediaType: "tv", ListType: "watchlist"},
	}

	entries := s.List(context.Background(), domain.ListWatchlist)
	require.Len(t, entries, 1)
	assert.Equal(t, 8, entries[0].TMDBID)
	assert.Equal(t, domain.KindSeries, entries[0].Kind)
	assert.Equal(t, "created_at.desc", fake.lastQuery["order"])
}

func TestAuthIsResolvedOncePerTTL(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	for i := 0; i < 5; i++ {
		s.Status(context.Background(), i)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&fake.authHits))

	s.Auth().Invalidate()
	s.Status(context.Background(), 1)
	assert.EqualValues(t, 2, atomic.LoadInt32(&fake.authHits))
}

func TestSaveProgressUpserts(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	total, season, episode := 3000, 2, 5

	s.SaveProgress(context.Background(), domain.Progress{
		TMDBID: 42, Kind: domain.KindSeries, Seconds: 120,
		TotalDuration: &total, Season: &season, Episode: &episode,
	})

	require.NotNil(t, fake.lastUpsert)
	assert.Equal(t, "42", fake.lastUpsert["tmdb_id"])
	assert.Equal(t, "tv", fake.lastUpsert["media_type"])
	assert.EqualValues(t, 120, fake.lastUpsert["progress_seconds"])
	assert.EqualValues(t, 3000, fake.lastUpsert["total_duration"])
	assert.EqualValues(t, 2, fake.lastUpsert["season_number"])
	assert.Equal(t, "user_id,tmdb_id,season_number,episode_number", fake.lastQuery["on_conflict"])
}

func TestContinueWatchingDropsFinished(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	fake.progress = []map[string]any{
		{"tmdb_id": "1", "media_type": "movie", "progress_seconds": 600, "total_duration": 6000},
		{"tmdb_id": "2", "media_type": "movie", "progress_seconds": 5900, "total_duration": 6000},
		{"tmdb_id": "3", "media_type": "tv", "progress_seconds": 90, "total_duration": nil, "season_number": 1, "episode_number": 2},
	}

	rows := s.ContinueWatching(context.Background())
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TMDBID)
	assert.Equal(t, 3, rows[1].TMDBID)
	assert.Equal(t, domain.KindSeries, rows[1].Kind)
	require.NotNil(t, rows[1].Episode)
	assert.Equal(t, 2, *rows[1].Episode)

	assert.Equal(t, "gt.30", fake.lastQuery["progress_seconds"])
	assert.Equal(t, "20", fake.lastQuery["limit"])
}

func TestGetProgressDefaultsToZero(t *testing.T) {
	s, fake := newFakeStore(t, "user-token")
	assert.Zero(t, s.GetProgress(context.Background(), 5, nil, nil))

	fake.progress = []map[string]any{{"tmdb_id": "5", "progress_seconds": 75}}
	season := 1
	assert.Equal(t, 75, s.GetProgress(context.Background(), 5, &season, nil))
	assert.Equal(t, "eq.1", fake.lastQuery["season_number"])
}

func TestUnconfiguredStoreDegrades(t *testing.T) {
	s := NewSupabase(nil, Options{})
	ctx := context.Background()
	assert.Equal(t, domain.ToggleAuthRequired, s.Toggle(ctx, 1, domain.KindMovie, domain.ListWatchlist))
	assert.Nil(t, s.ContinueWatching(ctx))
	s.SaveProgress(ctx, domain.Progress{TMDBID: 1})
}
