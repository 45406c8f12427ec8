// Package catalog is the read-only TMDB client. Responses are cached per
// session, requests are throttled and transient failures retried.
package catalog

//go:generate mockgen -destination=mocks/mock_provider.go -package=mocks remotetv/internal/catalog Provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"remotetv/internal/domain"
)

var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrUnauthorized = errors.New("catalog: unauthorized")
	ErrNoToken      = errors.New("catalog: no read token configured")
)

// StatusError is returned for unexpected HTTP statuses
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status %d for %s", e.Code, e.URL)
}

// Page is one page of a paginated list
type Page struct {
	Items      []domain.MediaItem
	Page       int
	TotalPages int
}

// HasMore reports whether a following page exists
func (p Page) HasMore() bool {
	return p.Page < p.TotalPages
}

// Artwork is the secondary media a card shows once active
type Artwork struct {
	BackdropURL string
	LogoURL     string
}

// Provider is what the UI needs from the catalog
type Provider interface {
	Popular(ctx context.Context, kind domain.MediaKind, page int) (Page, error)
	Trending(ctx context.Context, page int) (Page, error)
	Search(ctx context.Context, query string) ([]domain.MediaItem, error)
	Details(ctx context.Context, tmdbID int, kind domain.MediaKind) (domain.MediaItem, error)
	Artwork(ctx context.Context, tmdbID int, kind domain.MediaKind) (Artwork, error)
	FindByTitle(ctx context.Context, title string, kind domain.MediaKind) (domain.MediaItem, error)
}

// Options configures a Client
type Options struct {
	BaseURL      string
	ImageBaseURL string
	ReadToken    string
	Language     string
	RequestsPerS float64
	Attempts     uint
	RetryDelay   time.Duration
	HTTPClient   *http.Client
}

// Client talks to the TMDB v3 REST API
type Client struct {
	log       *zap.Logger
	httpc     *http.Client
	baseURL   string
	imageBase string
	token     string
	language  string
	limiter   *rate.Limiter
	cache     *ResponseCache
	attempts  uint
	delay     time.Duration
}

// NewClient builds a client sharing the given session cache
func NewClient(log *zap.Logger, cache *ResponseCache, opts Options) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = NewResponseCache(0, 0)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = time.Second
	}
	if opts.Language == "" {
		opts.Language = "en-US"
	}
	limit := rate.Inf
	if opts.RequestsPerS > 0 {
		limit = rate.Limit(opts.RequestsPerS)
	}
	return &Client{
		log:       log.Named("catalog"),
		httpc:     opts.HTTPClient,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		imageBase: opts.ImageBaseURL,
		token:     opts.ReadToken,
		language:  opts.Language,
		limiter:   rate.NewLimiter(limit, 1),
		cache:     cache,
		attempts:  opts.Attempts,
		delay:     opts.RetryDelay,
	}
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnauthorized) &&
		!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// get fetches path+query, serving from the session cache when possible
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.token == "" {
		return ErrNoToken
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("language", c.language)
	u := c.baseURL + path + "?" + query.Encode()

	if body, ok := c.cache.Get(u); ok {
		return json.Unmarshal(body, out)
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) { return c.fetch(ctx, u) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.RetryIf(retryable),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * c.delay
		}),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug("retrying request", zap.Uint("attempt", n+1), zap.String("path", path), zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	c.cache.Set(u, body)
	return nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{Code: resp.StatusCode, URL: u}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

func (c *Client) list(ctx context.Context, path string, query url.Values, page int, kind domain.MediaKind) (Page, error) {
	if page < 1 {
		page = 1
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("page", strconv.Itoa(page))

	var raw tmdbList
	if err := c.get(ctx, path, query, &raw); err != nil {
		return Page{}, err
	}
	return Page{
		Items:      c.toItems(raw.Results, kind),
		Page:       raw.Page,
		TotalPages: raw.TotalPages,
	}, nil
}

// Popular lists popular movies or series
func (c *Client) Popular(ctx context.Context, kind domain.MediaKind, page int) (Page, error) {
	return c.list(ctx, "/"+kind.TMDBType()+"/popular", nil, page, kind)
}

// Trending lists this week's trending titles of both kinds
func (c *Client) Trending(ctx context.Context, page int) (Page, error) {
	return c.list(ctx, "/trending/all/week", nil, page, "")
}

// Search runs a multi search; people and other result types are dropped
func (c *Client) Search(ctx context.Context, query string) ([]domain.MediaItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	p, err := c.list(ctx, "/search/multi", url.Values{
		"query":         {query},
		"include_adult": {"false"},
	}, 1, "")
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// FindByTitle returns the first search hit of the given kind
func (c *Client) FindByTitle(ctx context.Context, title string, kind domain.MediaKind) (domain.MediaItem, error) {
	items, err := c.Search(ctx, title)
	if err != nil {
		return domain.MediaItem{}, err
	}
	for _, it := range items {
		if it.Kind == kind {
			return it, nil
		}
	}
	return domain.MediaItem{}, ErrNotFound
}

func (c *Client) details(ctx context.Context, tmdbID int, kind domain.MediaKind) (tmdbDetails, error) {
	var d tmdbDetails
	err := c.get(ctx, fmt.Sprintf("/%s/%d", kind.TMDBType(), tmdbID), url.Values{
		"append_to_response":     {"videos,images,credits"},
		"include_image_language": {strings.SplitN(c.language, "-", 2)[0] + ",en,null"},
	}, &d)
	return d, err
}

// Details returns the full item including cast, genres, logo and trailer
func (c *Client) Details(ctx context.Context, tmdbID int, kind domain.MediaKind) (domain.MediaItem, error) {
	d, err := c.details(ctx, tmdbID, kind)
	if err != nil {
		return domain.MediaItem{}, err
	}

	item := c.toItem(d.tmdbResult, kind)
	for _, g := range d.Genres {
		item.Genres = append(item.Genres, g.Name)
	}
	for i, p := range d.Credits.Cast {
		if i == 10 {
			break
		}
		item.Cast = append(item.Cast, p.Name)
	}
	for _, p := range d.Credits.Crew {
		if p.Job == "Director" {
			item.Director = p.Name
			break
		}
	}
	item.Seasons = d.NumberOfSeasons
	item.LogoURL = ImageURL(c.imageBase, pickLogo(d.Images.Logos, c.language), SizeW500)
	if key := pickTrailer(d.Videos.Results, c.language); key != "" {
		item.TrailerURL = "https://www.youtube.com/watch?v=" + key
	}
	return item, nil
}

// Artwork returns the alternate backdrop and title logo for a card
func (c *Client) Artwork(ctx context.Context, tmdbID int, kind domain.MediaKind) (Artwork, error) {
	d, err := c.details(ctx, tmdbID, kind)
	if err != nil {
		return Artwork{}, err
	}
	art := Artwork{
		BackdropURL: ImageURL(c.imageBase, d.BackdropPath, SizeW1280),
		LogoURL:     ImageURL(c.imageBase, pickLogo(d.Images.Logos, c.language), SizeW500),
	}
	// prefer a textless backdrop when one exists
	for _, b := range d.Images.Backdrops {
		if b.Language == "" {
			art.BackdropURL = ImageURL(c.imageBase, b.FilePath, SizeW1280)
			break
		}
	}
	return art, nil
}
