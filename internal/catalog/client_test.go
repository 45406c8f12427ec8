package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"remotetv/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(zaptest.NewLogger(t), NewResponseCache(10, time.Minute), Options{
		BaseURL:      srv.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		ReadToken:    "token",
		RetryDelay:   time.Millisecond,
	})
	return c, &hits
}

const popularMovies = `{"page":1,"total_pages":3,"results":[
 {"id":1,"title":"Arrival","overview":"Linguist","vote_average":7.9,"release_date":"2016-11-10","poster_path":"/a.jpg","backdrop_path":"/ab.jpg"},
 {"id":2,"title":"Heat","vote_average":0,"release_date":"1995-12-15","poster_path":"/h.jpg"},
 {"id":1,"title":"Arrival","poster_path":"/a.jpg"}
]}`

func TestPopularMapsAndDedupes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/popular", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(popularMovies))
	})

	page, err := c.Popular(context.Background(), domain.KindMovie, 2)
	require.NoError(t, err)
	assert.True(t, page.HasMore())
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "movie-1", first.ID)
	assert.Equal(t, 1, first.TMDBID)
	assert.Equal(t, "7.9", first.Rating)
	assert.Equal(t, 2016, first.Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/a.jpg", first.PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/ab.jpg", first.BackdropURL)
	assert.Equal(t, "N/A", page.Items[1].Rating)
}

func TestResponsesAreCachedPerSession(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(popularMovies))
	})

	for i := 0; i < 3; i++ {
		_, err := c.Popular(context.Background(), domain.KindMovie, 1)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(popularMovies))
	})

	page, err := c.Popular(context.Background(), domain.KindMovie, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestNotFoundIsNotRetried(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Details(context.Background(), 99, domain.KindMovie)
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestMissingTokenFailsFast(t *testing.T) {
	c := NewClient(nil, nil, Options{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Trending(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoToken)
}

func TestSearchKeepsOnlyMoviesAndSeries(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "dark", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"page":1,"total_pages":1,"results":[
			{"id":5,"name":"Dark","media_type":"tv","first_air_date":"2017-12-01"},
			{"id":6,"name":"Someone","media_type":"person"},
			{"id":7,"title":"Dark City","media_type":"movie"}
		]}`))
	})

	items, err := c.Search(context.Background(), "  dark ")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, domain.KindSeries, items[0].Kind)
	assert.Equal(t, "series-5", items[0].ID)
	assert.Equal(t, domain.KindMovie, items[1].Kind)

	found, err := c.FindByTitle(context.Background(), "dark", domain.KindMovie)
	require.NoError(t, err)
	assert.Equal(t, 7, found.TMDBID)

	none, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDetailsAndArtwork(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/42", r.URL.Path)
		assert.Equal(t, "videos,images,credits", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{
			"id":42,"name":"Severance","overview":"Work","vote_average":8.4,"first_air_date":"2022-02-18",
			"backdrop_path":"/bd.jpg","number_of_seasons":2,
			"genres":[{"name":"Drama"},{"name":"Mystery"}],
			"videos":{"results":[{"key":"teaser","site":"YouTube","type":"Teaser"},{"key":"tr1","site":"YouTube","type":"Trailer","iso_639_1":"en"}]},
			"images":{"logos":[{"file_path":"/fr.png","iso_639_1":"fr"},{"file_path":"/en.png","iso_639_1":"en"}],
			          "backdrops":[{"file_path":"/txt.jpg","iso_639_1":"en"},{"file_path":"/clean.jpg","iso_639_1":null}]},
			"credits":{"cast":[{"name":"Adam Scott"}],"crew":[{"name":"Ben Stiller","job":"Director"}]}
		}`))
	})

	item, err := c.Details(context.Background(), 42, domain.KindSeries)
	require.NoError(t, err)
	assert.Equal(t, "Severance", item.Title)
	assert.Equal(t, []string{"Drama", "Mystery"}, item.Genres)
	assert.Equal(t, []string{"Adam Scott"}, item.Cast)
	assert.Equal(t, "Ben Stiller", item.Director)
	assert.Equal(t, 2, item.Seasons)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/en.png", item.LogoURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=tr1", item.TrailerURL)

	art, err := c.Artwork(context.Background(), 42, domain.KindSeries)
	require.NoError(t, err)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/clean.jpg", art.BackdropURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/en.png", art.LogoURL)
}

func TestImageURL(t *testing.T) {
	base := "https://image.tmdb.org/t/p/"
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/poster.png", ImageURL(base, "/poster.png", SizeW780))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/x.png", ImageURL(base, "x.png", SizeOriginal))
	assert.Equal(t, "", ImageURL(base, "", SizeW500))
	assert.Equal(t, "https://cdn.example/x.png", ImageURL(base, "https://cdn.example/x.png", SizeW500))
}

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://image.tmdb.org/t/p/w500/a.jpg", "https://image.tmdb.org/t/p/w92/a.jpg", true},
		{"https://image.tmdb.org/t/p/original/a.jpg", "https://image.tmdb.org/t/p/w92/a.jpg", true},
		{"https://image.tmdb.org/t/p/w1280/b/a.jpg", "https://image.tmdb.org/t/p/w92/b/a.jpg", true},
		{"https://cdn.example/w500/a.jpg", "", false},
		{"https://image.tmdb.org/logo.png", "", false},
	}
	for _, tt := range tests {
		got, ok := PreviewURL(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResponseCacheEvictsWhenFull(t *testing.T) {
	c := NewResponseCache(2, time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3"))

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
}
