package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	"remotetv/internal/domain"
	"remotetv/internal/library"
	"remotetv/internal/ui/grid"
)

// Page is one top-level screen
type Page int

const (
	PageHome Page = iota
	PageMovies
	PageSeries
	PageMyList
	PageSearch
	pageCount
)

func (p Page) String() string {
	switch p {
	case PageMovies:
		return "Movies"
	case PageSeries:
		return "Series"
	case PageMyList:
		return "My list"
	case PageSearch:
		return "Search"
	}
	return "Home"
}

const loadTimeout = 20 * time.Second

// gridPage is a grid plus the paging state its owner keeps
type gridPage struct {
	grid    *grid.Grid
	number  int
	hasMore bool
	more    bool // a next page is loading
	loaded  bool
	stale   bool
}

// loader issues every catalog and library read the pages need
type loader struct {
	log     *zap.Logger
	catalog catalog.Provider
	library library.Store
}

// home fetches all home rows concurrently. A failing row is just empty.
func (l *loader) home() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		var trending, movies, series, watching, mine []domain.MediaItem
		var progress map[string]domain.Progress
		var wg conc.WaitGroup
		wg.Go(func() { trending = l.page("trending", func() (catalog.Page, error) { return l.catalog.Trending(ctx, 1) }) })
		wg.Go(func() {
			movies = l.page("movies", func() (catalog.Page, error) { return l.catalog.Popular(ctx, domain.KindMovie, 1) })
		})
		wg.Go(func() {
			series = l.page("series", func() (catalog.Page, error) { return l.catalog.Popular(ctx, domain.KindSeries, 1) })
		})
		wg.Go(func() {
			watching, progress = library.HydrateProgress(ctx, l.log, l.catalog, l.library.ContinueWatching(ctx))
		})
		wg.Go(func() {
			mine = library.Hydrate(ctx, l.log, l.catalog, l.library.List(ctx, domain.ListWatchlist))
		})
		wg.Wait()

		return homeLoadedMsg{
			rows: []rowData{
				{title: "Trending", items: trending},
				{title: "Popular movies", items: movies},
				{title: "Popular series", items: series},
				{title: "Continue watching", items: watching},
				{title: "My list", items: mine},
			},
			progress: progress,
		}
	}
}

func (l *loader) page(name string, fetch func() (catalog.Page, error)) []domain.MediaItem {
	p, err := fetch()
	if err != nil {
		l.log.Warn("home row failed", zap.String("row", name), zap.Error(err))
		return nil
	}
	return p.Items
}

// popular fetches one page of a catalog-backed grid
func (l *loader) popular(page Page, kind domain.MediaKind, number int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		p, err := l.catalog.Popular(ctx, kind, number)
		if err != nil {
			return gridPageMsg{page: page, number: number, err: err}
		}
		return gridPageMsg{page: page, number: number, items: domain.Sanitize(p.Items), hasMore: p.HasMore()}
	}
}

// myList hydrates both personal lists into one grid
func (l *loader) myList() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		entries := append(l.library.List(ctx, domain.ListWatchlist), l.library.List(ctx, domain.ListWatchLater)...)
		items := library.Hydrate(ctx, l.log, l.catalog, entries)
		return gridPageMsg{page: PageMyList, number: 1, items: items}
	}
}

func (l *loader) search(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		items, err := l.catalog.Search(ctx, query)
		return searchResultsMsg{query: query, items: domain.Sanitize(items), err: err}
	}
}

func (l *loader) toggle(item domain.MediaItem, list domain.ListType) domain.ToggleResult {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return l.library.Toggle(ctx, item.TMDBID, item.Kind, list)
}

func (l *loader) saveProgress(p domain.Progress) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	l.library.SaveProgress(ctx, p)
}

func (l *loader) progress(item domain.MediaItem) int {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return l.library.GetProgress(ctx, item.TMDBID, nil, nil)
}
