package out

import (
	"context"

	"passby/internal/modules/archive/domain"
)

// Store persists the full archive list, most-recent-first. The JSON store is
// the source of truth; the projector is derived.
type Store interface {
	Load(ctx context.Context) ([]domain.Archived, error)
	Save(ctx context.Context, archives []domain.Archived) error
}

// IndexProjector maintains the queryable projection of archive summaries.
type IndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, summary domain.Summary) error
	Remove(ctx context.Context, id string) error
}
