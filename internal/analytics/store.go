// Package analytics records privacy-conscious visit counts and tag filter
// popularity in SQLite. Raw client addresses are never stored.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/albertaizhang/portfolio/internal/analytics/migrations"
	_ "modernc.org/sqlite"
)

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// TagCount is how often a tag was picked in the project filter.
type TagCount struct {
	Tag          string    `json:"tag"`
	Selections   int64     `json:"selections"`
	LastSelected time.Time `json:"last_selected"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TotalSelections  int64      `json:"total_selections"`
	TopTags          []TagCount `json:"top_tags"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// Store is a SQLite-backed analytics store. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordVisit stores a page view. The caller hashes the address.
func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		hashedIP, userAgent, path, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordTagSelection bumps the counter for tag.
func (s *Store) RecordTagSelection(ctx context.Context, tag string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO tag_selections (tag, selections, last_selected_at) VALUES (?, 1, ?)
ON CONFLICT(tag) DO UPDATE SET
    selections = selections + 1,
    last_selected_at = excluded.last_selected_at`,
		tag, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record tag selection: %w", err)
	}
	return nil
}

// RecentVisits returns the newest visits first.
func (s *Store) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hashed_ip, user_agent, path, visited_at
FROM visitors
ORDER BY visited_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := make([]Visit, 0)
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.Timestamp = time.UnixMilli(at).UTC()
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// TopTags returns the most selected tags, ties broken by tag name.
func (s *Store) TopTags(ctx context.Context, limit int) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT tag, selections, last_selected_at
FROM tag_selections
ORDER BY selections DESC, tag ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]TagCount, 0)
	for rows.Next() {
		var tc TagCount
		var at int64
		if err := rows.Scan(&tc.Tag, &tc.Selections, &at); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tc.LastSelected = time.UnixMilli(at).UTC()
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

// Stats gathers the dashboard summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		query string
		args  []any
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM visitors", nil, &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", nil, &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", []any{startOfDay.UnixMilli()}, &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE visited_at >= ?", []any{weekAgo.UnixMilli()}, &stats.VisitorsThisWeek},
		{"SELECT COALESCE(SUM(selections), 0) FROM tag_selections", nil, &stats.TotalSelections},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("query stats: %w", err)
		}
	}

	var err error
	if stats.TopTags, err = s.TopTags(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisits(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

// Cleanup deletes visits older than retention and reports how many went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention).UnixMilli()
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return n, nil
}
