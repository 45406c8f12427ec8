package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"remotetv/internal/domain"
)

// raw TMDB payloads

type tmdbList struct {
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
	Results      []tmdbResult `json:"results"`
}

type tmdbResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	MediaType    string  `json:"media_type"`
}

type tmdbImage struct {
	FilePath string `json:"file_path"`
	Language string `json:"iso_639_1"`
}

type tmdbVideo struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Language string `json:"iso_639_1"`
}

type tmdbDetails struct {
	tmdbResult
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	NumberOfSeasons int `json:"number_of_seasons"`
	Runtime         int `json:"runtime"`
	Videos          struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	Images struct {
		Logos     []tmdbImage `json:"logos"`
		Backdrops []tmdbImage `json:"backdrops"`
	} `json:"images"`
	Credits struct {
		Cast []struct {
			Name string `json:"name"`
		} `json:"cast"`
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

// kindOf maps a media_type value; fallback is used for typed endpoints
func kindOf(mediaType string, fallback domain.MediaKind) (domain.MediaKind, bool) {
	switch mediaType {
	case "":
		return fallback, fallback != ""
	case "movie":
		return domain.KindMovie, true
	case "tv":
		return domain.KindSeries, true
	}
	return "", false
}

func year(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

func (c *Client) toItem(r tmdbResult, kind domain.MediaKind) domain.MediaItem {
	title := r.Title
	if title == "" {
		title = r.Name
	}
	date := r.ReleaseDate
	if date == "" {
		date = r.FirstAirDate
	}
	return domain.MediaItem{
		ID:          fmt.Sprintf("%s-%d", kind, r.ID),
		TMDBID:      r.ID,
		Title:       title,
		Kind:        kind,
		Description: r.Overview,
		Rating:      domain.FormatRating(r.VoteAverage),
		Year:        year(date),
		PosterURL:   ImageURL(c.imageBase, r.PosterPath, SizeW500),
		BackdropURL: ImageURL(c.imageBase, r.BackdropPath, SizeW1280),
	}
}

func (c *Client) toItems(results []tmdbResult, fallback domain.MediaKind) []domain.MediaItem {
	items := make([]domain.MediaItem, 0, len(results))
	for _, r := range results {
		kind, ok := kindOf(r.MediaType, fallback)
		if !ok || r.ID == 0 {
			continue
		}
		items = append(items, c.toItem(r, kind))
	}
	return domain.Sanitize(items)
}

// pickLogo prefers the configured language, then English, then anything
func pickLogo(logos []tmdbImage, lang string) string {
	lang = strings.SplitN(lang, "-", 2)[0]
	for _, want := range []string{lang, "en"} {
		for _, l := range logos {
			if l.Language == want {
				return l.FilePath
			}
		}
	}
	if len(logos) > 0 {
		return logos[0].FilePath
	}
	return ""
}

func pickTrailer(videos []tmdbVideo, lang string) string {
	lang = strings.SplitN(lang, "-", 2)[0]
	var fallback string
	for _, v := range videos {
		if v.Type != "Trailer" || v.Site != "YouTube" {
			continue
		}
		if v.Language == lang {
			return v.Key
		}
		if fallback == "" {
			fallback = v.Key
		}
	}
	return fallback
}
