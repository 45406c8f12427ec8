// Package library is the personal library backed by Supabase: watchlist,
// watch later and playback progress. Every operation is best effort and
// degrades to a neutral value instead of returning an error.
package library

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks remotetv/internal/library Store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"remotetv/internal/domain"
)

const (
	tableLibrary  = "user_library"
	tableProgress = "watch_progress"

	// progress below this is treated as an accidental start
	minResumeSeconds = 30
	continueLimit    = 20
	// titles watched past this ratio count as finished
	finishedRatio = 0.95
)

// Store is what the UI needs from the personal library
type Store interface {
	Toggle(ctx context.Context, tmdbID int, kind domain.MediaKind, list domain.ListType) domain.ToggleResult
	Status(ctx context.Context, tmdbID int) domain.LibraryStatus
	List(ctx context.Context, list domain.ListType) []domain.LibraryEntry
	SaveProgress(ctx context.Context, p domain.Progress)
	GetProgress(ctx context.Context, tmdbID int, season, episode *int) int
	ContinueWatching(ctx context.Context) []domain.Progress
}

// Options configures a Supabase store
type Options struct {
	URL         string
	AnonKey     string
	AccessToken string
	AuthTTL     time.Duration
	HTTPClient  *http.Client
}

// Supabase implements Store over the PostgREST and GoTrue HTTP APIs
type Supabase struct {
	log   *zap.Logger
	httpc *http.Client
	base  string
	anon  string
	token string
	auth  *AuthCache

	tablesOnce  sync.Once
	hasLibrary  bool
	hasProgress bool
}

// NewSupabase creates a store; an empty URL yields a store that reports
// auth_required and empty lists
func NewSupabase(log *zap.Logger, opts Options) *Supabase {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	s := &Supabase{
		log:   log.Named("library"),
		httpc: opts.HTTPClient,
		base:  strings.TrimRight(opts.URL, "/"),
		anon:  opts.AnonKey,
		token: opts.AccessToken,
	}
	s.auth = NewAuthCache(opts.AuthTTL, s.fetchUserID)
	return s
}

// Auth exposes the session auth cache so sign-in changes can invalidate it
func (s *Supabase) Auth() *AuthCache { return s.auth }

func (s *Supabase) fetchUserID(ctx context.Context) (string, error) {
	if s.base == "" || s.token == "" {
		return "", fmt.Errorf("not signed in")
	}
	var user struct {
		ID string `json:"id"`
	}
	if err := s.do(ctx, http.MethodGet, s.base+"/auth/v1/user", nil, nil, &user); err != nil {
		return "", err
	}
	if user.ID == "" {
		return "", fmt.Errorf("empty user id")
	}
	return user.ID, nil
}

func (s *Supabase) verifyTables(ctx context.Context) {
	s.tablesOnce.Do(func() {
		tableExists := func(table string) bool {
			err := s.rest(ctx, http.MethodGet, table, url.Values{"select": {"id"}, "limit": {"0"}}, nil, nil, nil)
			if err != nil {
				s.log.Warn("table not available", zap.String("table", table), zap.Error(err))
				return false
			}
			return true
		}
		s.hasLibrary = tableExists(tableLibrary)
		s.hasProgress = tableExists(tableProgress)
	})
}

// ready resolves the user and checks that table exists
func (s *Supabase) ready(ctx context.Context, table string) (userID string, ok bool, signedIn bool) {
	userID = s.auth.UserID(ctx)
	if userID == "" {
		return "", false, false
	}
	s.verifyTables(ctx)
	if table == tableLibrary {
		return userID, s.hasLibrary, true
	}
	return userID, s.hasProgress, true
}

func dbType(kind domain.MediaKind) string {
	return kind.TMDBType()
}

func kindFromDB(mediaType string) domain.MediaKind {
	if mediaType == "tv" || mediaType == "series" {
		return domain.KindSeries
	}
	return domain.KindMovie
}

// Toggle adds or removes a title from a list
func (s *Supabase) Toggle(ctx context.Context, tmdbID int, kind domain.MediaKind, list domain.ListType) domain.ToggleResult {
	userID, ok, signedIn := s.ready(ctx, tableLibrary)
	if !signedIn {
		return domain.ToggleAuthRequired
	}
	if !ok {
		return domain.ToggleUnavailable
	}

	var existing []struct {
		ID json.RawMessage `json:"id"`
	}
	err := s.rest(ctx, http.MethodGet, tableLibrary, url.Values{
		"select":    {"id"},
		"user_id":   {"eq." + userID},
		"tmdb_id":   {"eq." + strconv.Itoa(tmdbID)},
		"list_type": {"eq." + string(list)},
		"limit":     {"1"},
	}, nil, nil, &existing)
	if err != nil {
		s.log.Debug("toggle lookup failed", zap.Int("tmdb_id", tmdbID), zap.Error(err))
		return domain.ToggleUnavailable
	}

	if len(existing) > 0 {
		err = s.rest(ctx, http.MethodDelete, tableLibrary, url.Values{"id": {"eq." + strings.Trim(string(existing[0].ID), `"`)}}, nil, nil, nil)
		if err != nil {
			s.log.Debug("toggle delete failed", zap.Int("tmdb_id", tmdbID), zap.Error(err))
			return domain.ToggleUnavailable
		}
		return domain.ToggleRemoved
	}

	row := map[string]any{
		"user_id":    userID,
		"tmdb_id":    strconv.Itoa(tmdbID),
		"media_type": dbType(kind),
		"list_type":  string(list),
	}
	if err := s.rest(ctx, http.MethodPost, tableLibrary, nil, nil, row, nil); err != nil {
		s.log.Debug("toggle insert failed", zap.Int("tmdb_id", tmdbID), zap.Error(err))
		return domain.ToggleUnavailable
	}
	return domain.ToggleAdded
}

// Status reports list membership for a title
func (s *Supabase) Status(ctx context.Context, tmdbID int) domain.LibraryStatus {
	var st domain.LibraryStatus
	userID, ok, _ := s.ready(ctx, tableLibrary)
	if !ok {
		return st
	}

	var rows []struct {
		ListType string `json:"list_type"`
	}
	err := s.rest(ctx, http.MethodGet, tableLibrary, url.Values{
		"select":  {"list_type"},
		"user_id": {"eq." + userID},
		"tmdb_id": {"eq." + strconv.Itoa(tmdbID)},
	}, nil, nil, &rows)
	if err != nil {
		s.log.Debug("status lookup failed", zap.Int("tmdb_id", tmdbID), zap.Error(err))
		return st
	}
	for _, r := range rows {
		switch domain.ListType(r.ListType) {
		case domain.ListWatchlist:
			st.InWatchlist = true
		case domain.ListWatchLater:
			st.InWatchLater = true
		}
	}
	return st
}

// List returns a list newest first
func (s *Supabase) List(ctx context.Context, list domain.ListType) []domain.LibraryEntry {
	userID, ok, _ := s.ready(ctx, tableLibrary)
	if !ok {
		return nil
	}

	var rows []struct {
		TMDBID    string    `json:"tmdb_id"`
		MediaType string    `json:"media_type"`
		CreatedAt time.Time `json:"created_at"`
	}
	err := s.rest(ctx, http.MethodGet, tableLibrary, url.Values{
		"select":    {"tmdb_id,media_type,created_at"},
		"user_id":   {"eq." + userID},
		"list_type": {"eq." + string(list)},
		"order":     {"created_at.desc"},
	}, nil, nil, &rows)
	if err != nil {
		s.log.Debug("list failed", zap.String("list", string(list)), zap.Error(err))
		return nil
	}

	out := make([]domain.LibraryEntry, 0, len(rows))
	for _, r := range rows {
		id, err := strconv.Atoi(r.TMDBID)
		if err != nil {
			continue
		}
		out = append(out, domain.LibraryEntry{TMDBID: id, Kind: kindFromDB(r.MediaType), List: list, CreatedAt: r.CreatedAt})
	}
	return out
}

type progressRow struct {
	TMDBID        string    `json:"tmdb_id"`
	MediaType     string    `json:"media_type"`
	Seconds       int       `json:"progress_seconds"`
	TotalDuration *int      `json:"total_duration"`
	Season        *int      `json:"season_number"`
	Episode       *int      `json:"episode_number"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SaveProgress upserts playback progress; failures are dropped
func (s *Supabase) SaveProgress(ctx context.Context, p domain.Progress) {
	userID, ok, _ := s.ready(ctx, tableProgress)
	if !ok {
		return
	}

	row := map[string]any{
		"user_id":          userID,
		"tmdb_id":          strconv.Itoa(p.TMDBID),
		"media_type":       dbType(p.Kind),
		"progress_seconds": p.Seconds,
		"updated_at":       time.Now().UTC().Format(time.RFC3339),
	}
	if p.TotalDuration != nil && *p.TotalDuration > 0 {
		row["total_duration"] = *p.TotalDuration
	}
	if p.Season != nil {
		row["season_number"] = *p.Season
	}
	if p.Episode != nil {
		row["episode_number"] = *p.Episode
	}

	err := s.rest(ctx, http.MethodPost, tableProgress,
		url.Values{"on_conflict": {"user_id,tmdb_id,season_number,episode_number"}},
		http.Header{"Prefer": {"resolution=merge-duplicates"}},
		row, nil)
	if err != nil {
		s.log.Debug("save progress failed", zap.Int("tmdb_id", p.TMDBID), zap.Error(err))
	}
}

// GetProgress returns watched seconds, 0 when unknown
func (s *Supabase) GetProgress(ctx context.Context, tmdbID int, season, episode *int) int {
	userID, ok, _ := s.ready(ctx, tableProgress)
	if !ok {
		return 0
	}

	q := url.Values{
		"select":  {"progress_seconds"},
		"user_id": {"eq." + userID},
		"tmdb_id": {"eq." + strconv.Itoa(tmdbID)},
		"limit":   {"1"},
	}
	if season != nil {
		q.Set("season_number", "eq."+strconv.Itoa(*season))
	}
	if episode != nil {
		q.Set("episode_number", "eq."+strconv.Itoa(*episode))
	}

	var rows []progressRow
	if err := s.rest(ctx, http.MethodGet, tableProgress, q, nil, nil, &rows); err != nil || len(rows) == 0 {
		return 0
	}
	return rows[0].Seconds
}

// ContinueWatching returns recent unfinished progress, newest first
func (s *Supabase) ContinueWatching(ctx context.Context) []domain.Progress {
	userID, ok, _ := s.ready(ctx, tableProgress)
	if !ok {
		return nil
	}

	var rows []progressRow
	err := s.rest(ctx, http.MethodGet, tableProgress, url.Values{
		"select":           {"tmdb_id,media_type,progress_seconds,total_duration,season_number,episode_number,updated_at"},
		"user_id":          {"eq." + userID},
		"progress_seconds": {"gt." + strconv.Itoa(minResumeSeconds)},
		"order":            {"updated_at.desc"},
		"limit":            {strconv.Itoa(continueLimit)},
	}, nil, nil, &rows)
	if err != nil {
		s.log.Debug("continue watching failed", zap.Error(err))
		return nil
	}

	out := make([]domain.Progress, 0, len(rows))
	for _, r := range rows {
		id, err := strconv.Atoi(r.TMDBID)
		if err != nil {
			continue
		}
		p := domain.Progress{
			TMDBID:        id,
			Kind:          kindFromDB(r.MediaType),
			Seconds:       r.Seconds,
			TotalDuration: r.TotalDuration,
			Season:        r.Season,
			Episode:       r.Episode,
			UpdatedAt:     r.UpdatedAt,
		}
		if p.Ratio() >= finishedRatio {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Supabase) rest(ctx context.Context, method, table string, query url.Values, hdr http.Header, body, out any) error {
	u := s.base + "/rest/v1/" + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return s.do(ctx, method, u, hdr, body, out)
}

func (s *Supabase) do(ctx context.Context, method, u string, hdr http.Header, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.anon)
	bearer := s.token
	if bearer == "" {
		bearer = s.anon
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header[k] = v
	}

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
