package card

import (
	"github.com/google/uuid"

	"remotetv/internal/domain"
)

// Set holds the cards currently mounted by a grid or row, keyed by item
// index. Cards leaving the mounted range are dropped with their state.
type Set struct {
	opts  Options
	cards map[int]*Model
}

func NewSet(opts Options) *Set {
	return &Set{opts: opts, cards: make(map[int]*Model)}
}

func (s *Set) Options() Options { return s.opts }

// Sync mounts the given indices and unmounts everything else. A card whose
// index now holds a different item is remounted.
func (s *Set) Sync(indices []int, item func(int) domain.MediaItem) (mounted, unmounted int) {
	keep := make(map[int]bool, len(indices))
	for _, i := range indices {
		keep[i] = true
		it := item(i)
		if c, ok := s.cards[i]; ok && c.Item.Key() == it.Key() {
			continue
		}
		s.cards[i] = New(it, s.opts)
		mounted++
	}
	for i := range s.cards {
		if !keep[i] {
			delete(s.cards, i)
			unmounted++
		}
	}
	return mounted, unmounted
}

// Clear unmounts every card
func (s *Set) Clear() {
	s.cards = make(map[int]*Model)
}

func (s *Set) At(i int) *Model {
	return s.cards[i]
}

func (s *Set) Len() int {
	return len(s.cards)
}

// ByToken finds the card for a mount token; nil means it was unmounted
func (s *Set) ByToken(token uuid.UUID) *Model {
	for _, c := range s.cards {
		if c.Token == token {
			return c
		}
	}
	return nil
}

// ByImage finds the card owning an image instance
func (s *Set) ByImage(id uuid.UUID) *Model {
	for _, c := range s.cards {
		if c.Poster.ID == id || (c.HasBackdrop && c.Backdrop.ID == id) {
			return c
		}
	}
	return nil
}

// Each visits mounted cards in no particular order
func (s *Set) Each(fn func(i int, c *Model)) {
	for i, c := range s.cards {
		fn(i, c)
	}
}
