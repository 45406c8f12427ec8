package ui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	catalogmocks "remotetv/internal/catalog/mocks"
	"remotetv/internal/config"
	"remotetv/internal/domain"
	librarymocks "remotetv/internal/library/mocks"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/input/modes"
	"remotetv/internal/ui/modal"
)

func withActionModal(cfg *config.Config) { cfg.UI.ActionModal = true }

func testItems(prefix string, n int) []domain.MediaItem {
	out := make([]domain.MediaItem, n)
	for i := range out {
		out[i] = domain.MediaItem{
			ID:        fmt.Sprintf("%s-%d", prefix, i+1),
			TMDBID:    i + 1,
			Title:     fmt.Sprintf("%s %d", prefix, i+1),
			Kind:      domain.KindMovie,
			PosterURL: fmt.Sprintf("https://img.example/%s-%d.jpg", prefix, i+1),
		}
	}
	return out
}

func newTestModel(t *testing.T, opts ...func(*config.Config)) *Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.UI.DPadDebounce = 0
	cfg.UI.Images = false
	for _, opt := range opts {
		opt(cfg)
	}
	m := NewModel(Deps{Config: cfg})
	m.Update(tea.WindowSizeMsg{Width: 130, Height: 40})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadHome(m *Model) {
	m.Update(homeLoadedMsg{rows: []rowData{
		{title: "Trending", items: testItems("trend", 6)},
		{title: "Popular movies", items: nil},
		{title: "Popular series", items: testItems("series", 3)},
	}})
}

func TestHomeLoadFocusesFirstCard(t *testing.T) {
	m := newTestModel(t)
	loadHome(m)

	c := m.home.Row(0).Cards().At(0)
	require.NotNil(t, c)
	assert.Equal(t, card.Active, c.State)

	view := m.View()
	assert.Contains(t, view, "Trending")
	assert.Contains(t, view, "Popular series")
	assert.NotContains(t, view, "Popular movies", "empty rows are not rendered")
}

func TestArrowKeysMoveFocusBetweenCards(t *testing.T) {
	m := newTestModel(t)
	loadHome(m)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, card.Collapsed, m.home.Row(0).Cards().At(0).State)
	assert.Equal(t, card.Active, m.home.Row(0).Cards().At(1).State)

	// the empty row is skipped
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	node, ok := m.nav.Focused()
	require.True(t, ok)
	assert.Equal(t, 2, node.Row)
}

func TestEnterOpensButtonsAndUpLeavesThem(t *testing.T) {
	m := newTestModel(t)
	loadHome(m)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	c := m.home.Row(2).Cards().At(0)
	require.NotNil(t, c)
	assert.Equal(t, card.ButtonMode, c.State)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	node, _ := m.nav.Focused()
	assert.Equal(t, 0, node.Row, "Up leaves button mode and moves to the row above")
}

func TestModalListToggleSticksToCard(t *testing.T) {
	m := newTestModel(t, withActionModal)
	loadHome(m)
	c := m.home.Row(0).Cards().At(0)
	require.NotNil(t, c)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.modal)
	assert.False(t, m.modal.InList)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.True(t, m.modal.InList)
	assert.True(t, c.Status.InWatchlist)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.modal)
	assert.False(t, m.input.Captured(modal.OwnerName))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.modal)
	assert.True(t, m.modal.InList, "reopening shows the toggled state")
}

func TestModalListToggleRevertsOnSignInRequired(t *testing.T) {
	m := newTestModel(t, withActionModal)
	loadHome(m)
	c := m.home.Row(0).Cards().At(0)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.modal.InList)

	m.Update(card.Toggled{Token: c.Token, List: domain.ListWatchlist, Result: domain.ToggleAuthRequired})
	assert.False(t, c.Status.InWatchlist)
	assert.False(t, m.modal.InList)
	assert.Equal(t, "Sign in to use your lists", m.status)
}

func TestModalPlayClosesModal(t *testing.T) {
	m := newTestModel(t, withActionModal)
	loadHome(m)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.modal)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Nil(t, m.modal)
	assert.False(t, m.input.Captured(modal.OwnerName))

	// arrows move between cards again
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, card.Active, m.home.Row(0).Cards().At(1).State)
}

func TestPageSwitchLoadsGrid(t *testing.T) {
	m := newTestModel(t)
	loadHome(m)

	_, cmd := m.Update(runes("]"))
	assert.NotNil(t, cmd)
	assert.Equal(t, PageMovies, m.page)
	gp := m.grids[PageMovies]
	assert.True(t, gp.grid.Loading())

	m.Update(gridPageMsg{page: PageMovies, number: 1, items: testItems("movie", 8), hasMore: true})
	assert.False(t, gp.grid.Loading())
	assert.Equal(t, 8, gp.grid.Len())
	assert.Equal(t, 0, gp.grid.Focused())
	assert.Contains(t, m.View(), "8 titles")

	m.Update(runes("["))
	assert.Equal(t, PageHome, m.page)
}

func TestPageSwitchRestoresFocus(t *testing.T) {
	m := newTestModel(t)
	loadHome(m)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})

	m.Update(runes("]"))
	m.Update(runes("["))

	node, ok := m.nav.Focused()
	require.True(t, ok)
	assert.Equal(t, 0, node.Row)
	assert.Equal(t, 2, node.Col)
}

func TestAppendedPageDropsDuplicates(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("]"))
	m.Update(gridPageMsg{page: PageMovies, number: 1, items: testItems("movie", 8), hasMore: true})

	next := append(testItems("movie", 8)[6:], domain.MediaItem{
		ID: "movie-99", TMDBID: 99, Title: "Movie 99", Kind: domain.KindMovie, PosterURL: "https://img.example/99.jpg",
	})
	m.Update(gridPageMsg{page: PageMovies, number: 2, items: next, hasMore: false})

	gp := m.grids[PageMovies]
	assert.Equal(t, 9, gp.grid.Len())
	assert.Equal(t, 2, gp.number)
	assert.False(t, gp.grid.Pagination().HasMore)
}

func TestGridPageErrorSetsStatus(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("]"))
	m.Update(gridPageMsg{page: PageMovies, number: 1, err: errors.New("boom")})

	assert.False(t, m.grids[PageMovies].grid.Loading())
	assert.Equal(t, "Could not load movies", m.status)
}

func TestSearchCapturesKeys(t *testing.T) {
	m := newTestModel(t)
	m.Update(runes("/"))
	require.Equal(t, PageSearch, m.page)
	require.True(t, m.input.Captured(modes.SearchOwner))

	_, cmd := m.Update(runes("q"))
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit, "q is typed into the search field")
	}
	assert.Equal(t, "q", m.searchInput.Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, "q", m.query)
	assert.False(t, m.input.Captured(modes.SearchOwner))
	assert.True(t, m.grids[PageSearch].grid.Loading())
}

func TestStaleSearchResultsAreDropped(t *testing.T) {
	m := newTestModel(t)
	m.query = "dune"
	m.Update(searchResultsMsg{query: "old", items: testItems("old", 3)})
	assert.Zero(t, m.grids[PageSearch].grid.Len())

	m.Update(searchResultsMsg{query: "dune", items: testItems("dune", 2)})
	assert.Equal(t, 2, m.grids[PageSearch].grid.Len())
}

func TestLibraryChangeMarksListsStale(t *testing.T) {
	m := newTestModel(t)

	m.Update(EventMsg{Event: domain.LibraryChangedEvent{TMDBID: 1, Result: domain.ToggleAuthRequired}})
	assert.False(t, m.grids[PageMyList].stale)
	assert.False(t, m.homeStale)

	m.Update(EventMsg{Event: domain.LibraryChangedEvent{TMDBID: 1, Result: domain.ToggleAdded}})
	assert.True(t, m.grids[PageMyList].stale)
	assert.True(t, m.homeStale)
}

func TestStatusClearsOnlyLatest(t *testing.T) {
	m := newTestModel(t)
	m.setStatus("first", m.styles.Status)
	m.setStatus("second", m.styles.Status)

	m.Update(statusClearMsg{seq: m.statusSeq - 1})
	assert.Equal(t, "second", m.status)

	m.Update(statusClearMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlayWithoutPlayerRecordsStart(t *testing.T) {
	m := newTestModel(t)
	item := testItems("movie", 1)[0]

	msg := m.play(item)()
	played, ok := msg.(playedMsg)
	require.True(t, ok)
	assert.ErrorIs(t, played.err, ErrNoPlayer)
}

func TestLoaderHomeToleratesFailingRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := catalogmocks.NewMockProvider(ctrl)
	store := librarymocks.NewMockStore(ctrl)

	provider.EXPECT().Trending(gomock.Any(), 1).Return(catalog.Page{Items: testItems("trend", 2), Page: 1, TotalPages: 1}, nil)
	provider.EXPECT().Popular(gomock.Any(), domain.KindMovie, 1).Return(catalog.Page{}, errors.New("rate limited"))
	provider.EXPECT().Popular(gomock.Any(), domain.KindSeries, 1).Return(catalog.Page{Items: testItems("series", 1), Page: 1, TotalPages: 3}, nil)
	store.EXPECT().ContinueWatching(gomock.Any()).Return(nil)
	store.EXPECT().List(gomock.Any(), domain.ListWatchlist).Return(nil)

	l := &loader{log: zap.NewNop(), catalog: provider, library: store}
	msg, ok := l.home()().(homeLoadedMsg)
	require.True(t, ok)
	require.Len(t, msg.rows, 5)
	assert.Len(t, msg.rows[0].items, 2)
	assert.Empty(t, msg.rows[1].items)
	assert.Len(t, msg.rows[2].items, 1)
	assert.Empty(t, msg.rows[3].items)
}

func TestLoaderPopularReportsHasMore(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := catalogmocks.NewMockProvider(ctrl)
	provider.EXPECT().Popular(gomock.Any(), domain.KindSeries, 2).Return(catalog.Page{Items: testItems("series", 3), Page: 2, TotalPages: 5}, nil)

	l := &loader{log: zap.NewNop(), catalog: provider}
	msg, ok := l.popular(PageSeries, domain.KindSeries, 2)().(gridPageMsg)
	require.True(t, ok)
	assert.Equal(t, PageSeries, msg.page)
	assert.Equal(t, 2, msg.number)
	assert.True(t, msg.hasMore)
	assert.Len(t, msg.items, 3)
}
