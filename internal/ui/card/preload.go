package card

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	"remotetv/internal/domain"
	"remotetv/internal/library"
)

const preloadTimeout = 10 * time.Second

// Preloader fetches a card's secondary media: the alternate backdrop, the
// title logo and the personal list status.
type Preloader struct {
	log     *zap.Logger
	catalog catalog.Provider
	store   library.Store
}

func NewPreloader(log *zap.Logger, provider catalog.Provider, store library.Store) *Preloader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preloader{log: log, catalog: provider, store: store}
}

// Cmd runs the preload off the update loop. The result carries the mount
// token so a card that unmounted meanwhile simply never sees it.
func (p *Preloader) Cmd(token uuid.UUID, item domain.MediaItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
		defer cancel()
		return p.Load(ctx, token, item)
	}
}

// Load resolves the tmdb id by title when it is unknown, then fetches
// artwork and list status concurrently. Failures come back in Err and
// the card keeps its poster and plain title.
func (p *Preloader) Load(ctx context.Context, token uuid.UUID, item domain.MediaItem) Preloaded {
	res := Preloaded{Token: token}
	id := item.TMDBID
	if id == 0 && item.Title != "" {
		found, err := p.catalog.FindByTitle(ctx, item.Title, item.Kind)
		if err != nil {
			p.log.Debug("preload title lookup failed", zap.String("title", item.Title), zap.Error(err))
			res.Err = err
			return res
		}
		id = found.TMDBID
	}
	if id == 0 {
		res.Err = catalog.ErrNotFound
		return res
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		art, err := p.catalog.Artwork(ctx, id, item.Kind)
		if err != nil {
			p.log.Debug("preload artwork failed", zap.Int("tmdb_id", id), zap.Error(err))
			res.Err = err
			return
		}
		res.Art = art
	})
	if p.store != nil {
		wg.Go(func() {
			res.Status = p.store.Status(ctx, id)
		})
	}
	wg.Wait()
	return res
}
