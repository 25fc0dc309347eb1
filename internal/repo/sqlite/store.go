// Package sqlite provides a single-file SQLite backend for tables that run
// without a Postgres server.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/deusexludus/internal/domain"
	"github.com/hamed0406/deusexludus/internal/repo"
	"github.com/hamed0406/deusexludus/internal/repo/sqlite/migrations"
)

var _ repo.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens the database at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// one writer keeps SQLite from returning SQLITE_BUSY under load
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
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
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO actors (id, type, name, doc, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(a.ID), string(a.Type), a.Name, string(doc), toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.ActorID) (*domain.Actor, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM actors WHERE id = ?`, string(id)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	return decodeActor(doc)
}

func (s *Store) List(ctx context.Context) ([]*domain.Actor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM actors ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list actors: %w", err)
	}
	defer rows.Close()

	var out []*domain.Actor
	for rows.Next() {
		var doc string
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
	res, err := s.db.ExecContext(ctx,
		`UPDATE actors SET type = ?, name = ?, doc = ?, updated_at = ? WHERE id = ?`,
		string(a.Type), a.Name, string(doc), toMillis(a.UpdatedAt), string(a.ID),
	)
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	return requireRow(res)
}

func (s *Store) Delete(ctx context.Context, id domain.ActorID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM actors WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete actor: %w", err)
	}
	return requireRow(res)
}

// ---- CheckStore ----

func (s *Store) Append(ctx context.Context, r *domain.CheckRecord) error {
	if r.RolledAt.IsZero() {
		r.RolledAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO checks (actor_id, skill, roll, target_number, outcome, margin, degree, defaulted, rolled_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.ActorID), r.Skill, r.Roll, r.TargetNumber, r.Outcome.String(),
		r.Margin, r.Degree, r.Defaulted, toMillis(r.RolledAt),
	)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("check id: %w", err)
	}
	r.ID = id
	return nil
}

func (s *Store) ListByActor(ctx context.Context, id domain.ActorID, limit int) ([]domain.CheckRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, skill, roll, target_number, outcome, margin, degree, defaulted, rolled_at
		   FROM checks
		  WHERE actor_id = ?
		  ORDER BY rolled_at DESC, id DESC
		  LIMIT ?`, string(id), limit)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	out := []domain.CheckRecord{}
	for rows.Next() {
		var (
			r        domain.CheckRecord
			outcome  string
			rolledAt int64
		)
		if err := rows.Scan(&r.ID, &r.Skill, &r.Roll, &r.TargetNumber, &outcome,
			&r.Margin, &r.Degree, &r.Defaulted, &rolledAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		if err := r.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		r.ActorID = id
		r.RolledAt = fromMillis(rolledAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func decodeActor(doc string) (*domain.Actor, error) {
	var a domain.Actor
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return nil, fmt.Errorf("decode actor: %w", err)
	}
	return &a, nil
}
