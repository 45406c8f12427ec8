package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MediaKind is the catalog kind of an item
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// TMDBType returns the path segment TMDB uses for this kind
func (k MediaKind) TMDBType() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// MediaItem represents a browsable movie or series.
// The UI never mutates items; they are replaced wholesale when a page reloads.
type MediaItem struct {
	ID          string
	TMDBID      int // 0 when the item is not linked to TMDB
	Title       string
	Kind        MediaKind
	Description string
	Rating      string
	Year        int
	PosterURL   string
	BackdropURL string
	LogoURL     string
	StreamURL   string
	TrailerURL  string
	Genres      []string
	Cast        []string
	Director    string
	Seasons     int
}

// FormatRating renders a numeric vote with one decimal; zero becomes "N/A"
func FormatRating(vote float64) string {
	if vote <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(vote, 'f', 1, 64)
}

func usableImage(url string) bool {
	return len(url) > 5 && !strings.Contains(url, "undefined") && !strings.Contains(url, "null")
}

// Poster returns the best available artwork: poster, then backdrop, then "".
// An empty result means the caller should draw the placeholder.
func (m MediaItem) Poster() string {
	if usableImage(m.PosterURL) {
		return m.PosterURL
	}
	if usableImage(m.BackdropURL) {
		return m.BackdropURL
	}
	return ""
}

// HasArtwork reports whether the item has a poster or backdrop
func (m MediaItem) HasArtwork() bool {
	return m.Poster() != ""
}

// Key identifies the item for deduplication
func (m MediaItem) Key() string {
	if m.TMDBID > 0 {
		return fmt.Sprintf("tmdb-%s-%d", m.Kind, m.TMDBID)
	}
	return fmt.Sprintf("title-%s-%s", m.Kind, strings.ToLower(strings.TrimSpace(m.Title)))
}

// IsValid requires an id, a non-blank title and a known kind
func (m MediaItem) IsValid() bool {
	if m.ID == "" || strings.TrimSpace(m.Title) == "" {
		return false
	}
	return m.Kind == KindMovie || m.Kind == KindSeries
}

// DurationLabel is the short runtime text shown under a title
func (m MediaItem) DurationLabel() string {
	if m.Kind == KindSeries {
		if m.Seasons == 1 {
			return "1 season"
		}
		if m.Seasons > 1 {
			return fmt.Sprintf("%d seasons", m.Seasons)
		}
		return "Series"
	}
	return "Movie"
}

// Quality guesses a quality badge from the stream URL and title
func (m MediaItem) Quality() string {
	s := strings.ToLower(m.StreamURL + " " + m.Title)
	switch {
	case strings.Contains(s, "2160") || strings.Contains(s, "4k") || strings.Contains(s, "uhd"):
		return "4K"
	case strings.Contains(s, "dolby") || strings.Contains(s, "atmos"):
		return "Dolby"
	case strings.Contains(s, "1080") || strings.Contains(s, "fhd"):
		return "FHD"
	case strings.Contains(s, "720"):
		return "HD"
	}
	return ""
}

var seasonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^temporada\s*\d+`),
	regexp.MustCompile(`(?i)^season\s*\d+`),
	regexp.MustCompile(`(?i)^s\d{1,2}$`),
	regexp.MustCompile(`(?i)^t\d{1,2}\s*$`),
	regexp.MustCompile(`(?i)^(\d+)[ªa]\s*temporada`),
	regexp.MustCompile(`(?i)\btemporada\s*\d+$`),
	regexp.MustCompile(`(?i)\bseason\s*\d+$`),
	regexp.MustCompile(`(?i)^temp\s*\d+`),
	regexp.MustCompile(`(?i)^s\d{1,2}\s*e\d+$`),
	regexp.MustCompile(`(?i)^s\d{1,2}\s*·\s*e\d+`),
}

// IsSeasonEntry reports whether a title is a season or episode reference
// rather than standalone content
func IsSeasonEntry(title string) bool {
	title = strings.TrimSpace(title)
	for _, p := range seasonPatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

// Dedupe keeps the first occurrence of each item key
func Dedupe(items []MediaItem) []MediaItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]MediaItem, 0, len(items))
	for _, it := range items {
		k := it.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Sanitize validates, drops season entries and deduplicates a list
func Sanitize(items []MediaItem) []MediaItem {
	valid := make([]MediaItem, 0, len(items))
	for _, it := range items {
		if !it.IsValid() || IsSeasonEntry(it.Title) {
			continue
		}
		if it.Rating == "" {
			it.Rating = "N/A"
		}
		valid = append(valid, it)
	}
	return Dedupe(valid)
}

// ListType names a personal list
type ListType string

const (
	ListWatchlist  ListType = "watchlist"
	ListWatchLater ListType = "watch_later"
)

// ToggleResult is the outcome of a list membership toggle.
// AuthRequired and Unavailable are values, not errors.
type ToggleResult string

const (
	ToggleAdded        ToggleResult = "added"
	ToggleRemoved      ToggleResult = "removed"
	ToggleAuthRequired ToggleResult = "auth_required"
	ToggleUnavailable  ToggleResult = "unavailable"
)

// LibraryStatus is the membership of one title across personal lists
type LibraryStatus struct {
	InWatchlist  bool
	InWatchLater bool
}

// In reports membership in a given list
func (s LibraryStatus) In(list ListType) bool {
	if list == ListWatchLater {
		return s.InWatchLater
	}
	return s.InWatchlist
}

// LibraryEntry is one row of a personal list
type LibraryEntry struct {
	TMDBID    int
	Kind      MediaKind
	List      ListType
	CreatedAt time.Time
}

// Progress is playback progress for a movie or an episode
type Progress struct {
	TMDBID        int
	Kind          MediaKind
	Seconds       int
	TotalDuration *int
	Season        *int
	Episode       *int
	UpdatedAt     time.Time
}

// Ratio returns watched/total, or 0 when the total is unknown
func (p Progress) Ratio() float64 {
	if p.TotalDuration == nil || *p.TotalDuration <= 0 {
		return 0
	}
	return float64(p.Seconds) / float64(*p.TotalDuration)
}
