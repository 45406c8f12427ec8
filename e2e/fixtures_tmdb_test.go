//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
)

// fakeTMDB serves just enough of the TMDB v3 API for the app to render
type fakeTMDB struct {
	*httptest.Server
	titles []string
}

type fakeResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	MediaType    string  `json:"media_type,omitempty"`
}

// WorkspaceOption tunes the generated config
type WorkspaceOption func(*workspaceConfig)

type workspaceConfig struct {
	titles      []string
	actionModal bool
}

// WithTitles sets the titles every list endpoint returns
func WithTitles(titles ...string) WorkspaceOption {
	return func(c *workspaceConfig) { c.titles = titles }
}

// WithActionModal makes Enter open the action modal
func WithActionModal() WorkspaceOption {
	return func(c *workspaceConfig) { c.actionModal = true }
}

func newFakeTMDB(titles []string) *fakeTMDB {
	f := &fakeTMDB{titles: titles}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

func (f *fakeTMDB) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/img/"):
		http.NotFound(w, r)
	case strings.HasSuffix(path, "/popular"), strings.HasPrefix(path, "/trending/"), path == "/search/multi":
		movie := !strings.HasPrefix(path, "/tv/")
		results := make([]fakeResult, 0, len(f.titles))
		for i, title := range f.titles {
			res := fakeResult{
				ID:           i + 1,
				Overview:     "Overview of " + title,
				VoteAverage:  7.5,
				PosterPath:   fmt.Sprintf("/poster-%d.jpg", i+1),
				BackdropPath: fmt.Sprintf("/backdrop-%d.jpg", i+1),
			}
			if movie {
				res.Title, res.ReleaseDate, res.MediaType = title, "2021-06-01", "movie"
			} else {
				res.ID += 1000
				res.Name, res.FirstAirDate, res.MediaType = title+" (TV)", "2019-01-01", "tv"
			}
			results = append(results, res)
		}
		writeJSON(w, map[string]any{"page": 1, "total_pages": 1, "total_results": len(results), "results": results})
	default:
		writeJSON(w, map[string]any{"genres": []any{}, "runtime": 120, "videos": map[string]any{"results": []any{}}, "images": map[string]any{"logos": []any{}, "backdrops": []any{}}})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// CreateTestWorkspace creates an isolated $HOME with a config pointing at a
// fake TMDB server and returns the config path
func (tf *TUITestFramework) CreateTestWorkspace(opts ...WorkspaceOption) (string, error) {
	cfg := workspaceConfig{titles: []string{"Alpha Centauri", "Blue Harbor", "Crimson Tide", "Dune Walker", "Echo Park", "Frozen Lake"}}
	for _, opt := range opts {
		opt(&cfg)
	}

	workspace, err := os.MkdirTemp("", "remotetv-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = workspace
	tf.tmdb = newFakeTMDB(cfg.titles)

	config := fmt.Sprintf(`version = 1

[tmdb]
base_url = %q
image_base_url = %q
read_token = "e2e"

[ui]
card_width = 24
card_height = 14
images = false
action_modal = %t

[log]
level = "debug"
file = %q
`, tf.tmdb.URL, tf.tmdb.URL+"/img", cfg.actionModal, filepath.Join(workspace, "remotetv.log"))

	path := filepath.Join(workspace, "config.toml")
	if err := os.WriteFile(path, []byte(config), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
