package store

import (
	"context"
	"errors"

	"attendease/gym-app/internal/domain"
)

// --- Error Definitions ---
var (
	ErrLoadFailed = errors.New("failed to load snapshot")
	ErrSaveFailed = errors.New("failed to save snapshot")
)

// SnapshotStore persists the dataset as one opaque aggregate. There are no
// partial writes and no versioning: Save replaces whatever is stored, so
// concurrent writers are resolved by last-write-wins.
type SnapshotStore interface {
	Load(ctx context.Context) (*domain.AppData, error)
	Save(ctx context.Context, data *domain.AppData) (*domain.AppData, error)
}
