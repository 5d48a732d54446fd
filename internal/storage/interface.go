package storage

import (
	"context"

	"github.com/mcoot/blockdrop/internal/model"
)

// Storage defines the interface for recording finished games.
// Records live for the lifetime of the process only.
type Storage interface {
	// Summary operations
	SaveSummary(ctx context.Context, summary *model.GameSummary) error
	GetSummary(ctx context.Context, id model.GameID) (*model.GameSummary, error)
	DeleteSummary(ctx context.Context, id model.GameID) error

	// ListSummaries returns every summary ordered by end time, oldest first
	ListSummaries(ctx context.Context) ([]*model.GameSummary, error)

	// TopSummaries returns up to limit summaries ordered by score, highest first
	TopSummaries(ctx context.Context, limit int) ([]*model.GameSummary, error)
}
