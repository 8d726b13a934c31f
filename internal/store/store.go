// Package store persists bench run summaries in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"raypick/internal/perf"
)

// Run is one recorded bench run.
type Run struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	Ticks     int
	Summary   perf.Summary
}

type Store struct {
	db *sql.DB
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	ticks INTEGER NOT NULL,
	frame_avg_ns INTEGER NOT NULL,
	frame_max_ns INTEGER NOT NULL,
	frame_p95_ns INTEGER NOT NULL,
	fps REAL NOT NULL,
	raycast_avg_ns INTEGER NOT NULL,
	raycast_max_ns INTEGER NOT NULL,
	hits INTEGER NOT NULL,
	misses INTEGER NOT NULL,
	hit_rate REAL NOT NULL,
	invalidations INTEGER NOT NULL
);
`

// Open creates or migrates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}

	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate run db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records a run and returns its id.
func (s *Store) Save(ctx context.Context, r Run) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	sum := r.Summary
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (name, created_at, ticks, frame_avg_ns, frame_max_ns, frame_p95_ns, fps,
			raycast_avg_ns, raycast_max_ns, hits, misses, hit_rate, invalidations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.CreatedAt.UnixNano(), r.Ticks,
		int64(sum.FrameAvg), int64(sum.FrameMax), int64(sum.FrameP95), sum.FPS,
		int64(sum.RaycastAvg), int64(sum.RaycastMax),
		int64(sum.Hits), int64(sum.Misses), sum.HitRate, int64(sum.Invalidations),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, ticks, frame_avg_ns, frame_max_ns, frame_p95_ns, fps,
			raycast_avg_ns, raycast_max_ns, hits, misses, hit_rate, invalidations
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                            Run
			createdAt                    int64
			frameAvg, frameMax, frameP95 int64
			raycastAvg, raycastMax       int64
			hits, misses, invalidations  int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &createdAt, &r.Ticks,
			&frameAvg, &frameMax, &frameP95, &r.Summary.FPS,
			&raycastAvg, &raycastMax, &hits, &misses, &r.Summary.HitRate, &invalidations); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdAt)
		r.Summary.FrameAvg = time.Duration(frameAvg)
		r.Summary.FrameMax = time.Duration(frameMax)
		r.Summary.FrameP95 = time.Duration(frameP95)
		r.Summary.RaycastAvg = time.Duration(raycastAvg)
		r.Summary.RaycastMax = time.Duration(raycastMax)
		r.Summary.Hits = uint64(hits)
		r.Summary.Misses = uint64(misses)
		r.Summary.Invalidations = uint64(invalidations)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
