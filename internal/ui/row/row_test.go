package row

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotetv/internal/domain"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/views"
)

func items(n int) []domain.MediaItem {
	out := make([]domain.MediaItem, n)
	for i := range out {
		out[i] = domain.MediaItem{
			ID: fmt.Sprintf("movie-%d", i+1), TMDBID: i + 1, Title: fmt.Sprintf("Title %d", i+1),
			Kind: domain.KindMovie, PosterURL: fmt.Sprintf("https://image.tmdb.org/t/p/w500/%d.jpg", i+1),
		}
	}
	return out
}

func TestFirstRowsAreVisibleImmediately(t *testing.T) {
	for i := 0; i < 6; i++ {
		r := New(i, "row", items(3), card.Options{})
		assert.Equal(t, i < EagerRows, r.Visible(), "row %d", i)
	}
}

func TestRowBecomesVisibleNearViewport(t *testing.T) {
	r := New(7, "row", items(3), card.Options{})
	assert.False(t, r.CheckVisible(200, 215, 0, 40, DefaultMargin))
	assert.True(t, r.CheckVisible(90, 105, 0, 40, DefaultMargin))
	// latched even after scrolling away
	assert.True(t, r.CheckVisible(900, 915, 0, 40, DefaultMargin))
}

func TestFocusMakesRowVisible(t *testing.T) {
	r := New(9, "row", items(3), card.Options{})
	r.Focus(0)
	assert.True(t, r.Visible())
}

func TestSliceGrowsAtTheEnd(t *testing.T) {
	r := New(0, "row", items(25), card.Options{})
	require.Equal(t, InitialSlice, r.Len())

	assert.False(t, r.Focus(5))
	assert.True(t, r.Focus(9))
	assert.Equal(t, 20, r.Len())
	assert.True(t, r.Focus(19))
	assert.Equal(t, 25, r.Len(), "never beyond the item count")
	assert.False(t, r.Focus(24))
	assert.Equal(t, 25, r.Len())
}

func TestDuplicatesAndArtlessItemsAreDropped(t *testing.T) {
	in := items(3)
	in = append(in, in[0], domain.MediaItem{ID: "x", Title: "No art", Kind: domain.KindMovie})
	r := New(0, "row", in, card.Options{})
	assert.Len(t, r.Items(), 3)

	empty := New(0, "row", []domain.MediaItem{{ID: "x", Title: "No art", Kind: domain.KindMovie}}, card.Options{})
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Height(14))
	assert.Empty(t, empty.View(views.NewCardRenderer(views.NewStyles(), 24, 14), views.NewStyles(), 2))
}

func TestSyncMountsOnlyOnScreenCards(t *testing.T) {
	r := New(0, "row", items(25), card.Options{})
	r.Sync(4)
	assert.Equal(t, 4, r.Cards().Len())
	assert.NotNil(t, r.Cards().At(0))

	r.Focus(6)
	r.Sync(4)
	assert.Equal(t, 4, r.Cards().Len())
	assert.NotNil(t, r.Cards().At(6))
	assert.Nil(t, r.Cards().At(0))

	hidden := New(8, "row", items(5), card.Options{})
	hidden.Sync(4)
	assert.Zero(t, hidden.Cards().Len())
}

func TestHitTest(t *testing.T) {
	r := New(0, "row", items(10), card.Options{})
	r.Sync(4)
	i, ok := r.HitTest(27, 24, 2)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = r.HitTest(25, 24, 2)
	assert.False(t, ok)
	_, ok = r.HitTest(26*5, 24, 2)
	assert.False(t, ok, "past the mounted cards")
}

func TestFit(t *testing.T) {
	assert.Equal(t, 5, Fit(130, 24, 2))
	assert.Equal(t, 1, Fit(10, 24, 2))
	assert.Equal(t, 1, Fit(10, 0, 0))
}
