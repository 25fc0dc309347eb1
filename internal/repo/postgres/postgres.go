package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/repo"
)

var _ repo.Store = (*Store)(nil)

// Schema is applied by Migrate; every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS actors (
  id         TEXT PRIMARY KEY,
  type       TEXT NOT NULL,
  name       TEXT NOT NULL,
  doc        JSONB NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS checks (
  id            BIGSERIAL PRIMARY KEY,
  actor_id      TEXT NOT NULL REFERENCES actors(id) ON DELETE CASCADE,
  skill         TEXT NOT NULL,
  roll          INTEGER NOT NULL,
  target_number INTEGER NOT NULL,
  outcome       TEXT NOT NULL,
  margin        INTEGER NOT NULL,
  degree        INTEGER NOT NULL,
  defaulted     BOOLEAN NOT NULL DEFAULT false,
  rolled_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checks_actor_time ON checks (actor_id, rolled_at DESC, id DESC);
`

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	s.log.Info("postgres_migrated")
	return nil
}

func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// ---- ActorStore ----

func (s *Store) Add(ctx context.Context, a *domain.Actor) error {
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
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode actor: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO actors (id, type, name, doc, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(a.ID), string(a.Type), a.Name, doc, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.ActorID) (*domain.Actor, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM actors WHERE id = $1`, string(id)).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return decodeActor(doc)
}

func (s *Store) List(ctx context.Context) ([]*domain.Actor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc
		   FROM actors
		  ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var out []*domain.Actor
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan actor: %w", err)
		}
		a, err := decodeActor(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, a *domain.Actor) error {
	a.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode actor: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE actors SET type = $2, name = $3, doc = $4, updated_at = $5 WHERE id = $1`,
		string(a.ID), string(a.Type), a.Name, doc, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id domain.ActorID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM actors WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete actor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ---- CheckStore ----

func (s *Store) Append(ctx context.Context, r *domain.CheckRecord) error {
	if r.RolledAt.IsZero() {
		r.RolledAt = time.Now().UTC()
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO checks
		   (actor_id, skill, roll, target_number, outcome, margin, degree, defaulted, rolled_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		string(r.ActorID), r.Skill, r.Roll, r.TargetNumber, r.Outcome.String(),
		r.Margin, r.Degree, r.Defaulted, r.RolledAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

func (s *Store) ListByActor(ctx context.Context, id domain.ActorID, limit int) ([]domain.CheckRecord, error) {
	q := `SELECT id, skill, roll, target_number, outcome, margin, degree, defaulted, rolled_at
	        FROM checks
	       WHERE actor_id = $1
	       ORDER BY rolled_at DESC, id DESC`
	args := []any{string(id)}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	out := []domain.CheckRecord{}
	for rows.Next() {
		var (
			r       domain.CheckRecord
			outcome string
		)
		if err := rows.Scan(&r.ID, &r.Skill, &r.Roll, &r.TargetNumber, &outcome,
			&r.Margin, &r.Degree, &r.Defaulted, &r.RolledAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		if err := r.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		r.ActorID = id
		out = append(out, r)
	}
	return out, rows.Err()
}

func decodeActor(doc []byte) (*domain.Actor, error) {
	var a domain.Actor
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("decode actor: %w", err)
	}
	return &a, nil
}
