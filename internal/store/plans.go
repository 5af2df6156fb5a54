package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ivlev/scene2video/internal/engine"
)

// Entry summarizes a stored plan.
type Entry struct {
	Key         string    `json:"key"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Version     string    `json:"version"`
	TotalFrames int       `json:"totalFrames"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Put stores a plan under its key and output size. Plans are deterministic,
// so a second write for the same key is ignored.
func (s *Store) Put(ctx context.Context, plan *engine.Plan) error {
	if plan == nil || plan.Key == "" {
		return fmt.Errorf("put plan: missing key")
	}
	if plan.Timeline == nil {
		return fmt.Errorf("put plan %s: missing timeline", plan.Key)
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("put plan: %w", err)
	}

	tl := plan.Timeline
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plans (key, width, height, version, total_frames, plan, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key, width, height) DO NOTHING
	`,
		plan.Key,
		tl.Width,
		tl.Height,
		tl.Version,
		tl.TotalFrames,
		string(data),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("put plan: %w", err)
	}
	return nil
}

// Get loads the plan stored for key at the given output size.
// Returns ErrNotFound if there is none.
func (s *Store) Get(ctx context.Context, key string, width, height int) (*engine.Plan, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT plan FROM plans
		WHERE key = ? AND width = ? AND height = ?
	`, key, width, height).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	var plan engine.Plan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", key, err)
	}
	return &plan, nil
}

// List returns stored plans, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, width, height, version, total_frames, created_at
		FROM plans
		ORDER BY created_at DESC, key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.Key, &e.Width, &e.Height, &e.Version, &e.TotalFrames, &created); err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return entries, nil
}

// Delete removes every stored size of key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// Prune removes plans stored at or before the given time and returns how
// many were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE created_at <= ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune plans: %w", err)
	}
	return n, nil
}
