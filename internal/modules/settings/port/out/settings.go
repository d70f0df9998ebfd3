package out

import (
	"context"

	"passby/internal/modules/settings/domain"
)

// Store persists settings. Load on a missing or corrupt file reports an
// error; the usecase falls back to defaults.
type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
