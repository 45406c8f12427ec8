package library

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"remotetv/internal/catalog"
	"remotetv/internal/domain"
)

const hydrateWorkers = 6

// Hydrate resolves library entries into catalog items, keeping entry order.
// Entries the catalog cannot resolve are dropped.
func Hydrate(ctx context.Context, log *zap.Logger, provider catalog.Provider, entries []domain.LibraryEntry) []domain.MediaItem {
	if len(entries) == 0 {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	resolved := make([]*domain.MediaItem, len(entries))
	p := pool.New().WithMaxGoroutines(hydrateWorkers).WithContext(ctx)
	for i, e := range entries {
		p.Go(func(ctx context.Context) error {
			item, err := provider.Details(ctx, e.TMDBID, e.Kind)
			if err != nil {
				log.Debug("hydrate failed", zap.Int("tmdb_id", e.TMDBID), zap.Error(err))
				return nil
			}
			resolved[i] = &item
			return nil
		})
	}
	_ = p.Wait()

	items := make([]domain.MediaItem, 0, len(entries))
	for _, it := range resolved {
		if it != nil {
			items = append(items, *it)
		}
	}
	return domain.Dedupe(items)
}

// HydrateProgress resolves continue-watching rows into items paired with progress
func HydrateProgress(ctx context.Context, log *zap.Logger, provider catalog.Provider, rows []domain.Progress) ([]domain.MediaItem, map[string]domain.Progress) {
	entries := make([]domain.LibraryEntry, len(rows))
	for i, r := range rows {
		entries[i] = domain.LibraryEntry{TMDBID: r.TMDBID, Kind: r.Kind}
	}
	items := Hydrate(ctx, log, provider, entries)

	byKey := make(map[string]domain.Progress, len(rows))
	for _, r := range rows {
		k := domain.MediaItem{TMDBID: r.TMDBID, Kind: r.Kind}.Key()
		if _, ok := byKey[k]; !ok {
			byKey[k] = r
		}
	}
	progress := make(map[string]domain.Progress, len(items))
	for _, it := range items {
		if p, ok := byKey[it.Key()]; ok {
			progress[it.ID] = p
		}
	}
	return items, progress
}
