package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/repo"
)

type Store struct {
	mu     sync.RWMutex
	actors map[domain.ActorID]*domain.Actor
	checks []domain.CheckRecord
	nextID int64
}

func New() *Store {
	return &Store{
		actors: make(map[domain.ActorID]*domain.Actor),
		checks: make([]domain.CheckRecord, 0, 128),
	}
}

func (m *Store) Close() error { return nil }

func (m *Store) Add(ctx context.Context, a *domain.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		a.ID = domain.NewActorID()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	cp, err := clone(a)
	if err != nil {
		return err
	}
	m.actors[a.ID] = cp
	return nil
}

func (m *Store) Get(ctx context.Context, id domain.ActorID) (*domain.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.actors[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return clone(a)
}

func (m *Store) List(ctx context.Context) ([]*domain.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Actor, 0, len(m.actors))
	for _, a := range m.actors {
		cp, err := clone(a)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Store) Update(ctx context.Context, a *domain.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.actors[a.ID]; !ok {
		return repo.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	cp, err := clone(a)
	if err != nil {
		return err
	}
	m.actors[a.ID] = cp
	return nil
}

func (m *Store) Delete(ctx context.Context, id domain.ActorID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.actors[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.actors, id)
	kept := m.checks[:0]
	for _, c := range m.checks {
		if c.ActorID != id {
			kept = append(kept, c)
		}
	}
	m.checks = kept
	return nil
}

func (m *Store) Append(ctx context.Context, r *domain.CheckRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	if r.RolledAt.IsZero() {
		r.RolledAt = time.Now().UTC()
	}
	m.checks = append(m.checks, *r)
	return nil
}

func (m *Store) ListByActor(ctx context.Context, id domain.ActorID, limit int) ([]domain.CheckRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.CheckRecord{}
	for i := len(m.checks) - 1; i >= 0; i-- {
		if m.checks[i].ActorID != id {
			continue
		}
		out = append(out, m.checks[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// clone deep-copies through JSON so callers never share maps or slices
// with the store.
func clone(a *domain.Actor) (*domain.Actor, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	var out domain.Actor
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var _ repo.Store = (*Store)(nil)
