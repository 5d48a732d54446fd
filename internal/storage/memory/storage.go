package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	summaries map[model.GameID]*model.GameSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		summaries: make(map[model.GameID]*model.GameSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *summary
	s.summaries[summary.ID] = &clone
	return nil
}

func (s *Storage) GetSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	clone := *summary
	return &clone, nil
}

func (s *Storage) DeleteSummary(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.summaries, id)
	return nil
}

func (s *Storage) ListSummaries(ctx context.Context) ([]*model.GameSummary, error) {
	result := s.snapshot()
	slices.SortStableFunc(result, func(a, b *model.GameSummary) int {
		if c := a.EndedAt.Compare(b.EndedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (s *Storage) TopSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error) {
	result := s.snapshot()
	slices.SortStableFunc(result, func(a, b *model.GameSummary) int {
		if c := cmp.Compare(b.Stats.Score, a.Stats.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Stats.Lines, a.Stats.Lines); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// snapshot copies every summary under the read lock
func (s *Storage) snapshot() []*model.GameSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.GameSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		clone := *summary
		result = append(result, &clone)
	}
	return result
}
