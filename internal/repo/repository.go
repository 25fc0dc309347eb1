package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/deusexludus/internal/domain"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Ports (interfaces); memory, postgres and sqlite adapters implement them.
type ActorStore interface {
	// Add assigns ID and timestamps when unset.
	Add(ctx context.Context, a *domain.Actor) error
	Get(ctx context.Context, id domain.ActorID) (*domain.Actor, error)
	List(ctx context.Context) ([]*domain.Actor, error)
	// Update replaces the stored document and bumps UpdatedAt.
	Update(ctx context.Context, a *domain.Actor) error
	Delete(ctx context.Context, id domain.ActorID) error
}

type CheckStore interface {
	// Append assigns the record ID.
	Append(ctx context.Context, r *domain.CheckRecord) error
	// ListByActor returns newest first; limit <= 0 means no limit.
	ListByActor(ctx context.Context, id domain.ActorID, limit int) ([]domain.CheckRecord, error)
}

// Store is what the API needs from a backend.
type Store interface {
	ActorStore
	CheckStore
	Close() error
}
