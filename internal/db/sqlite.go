package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/hiresense/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id            TEXT PRIMARY KEY,
	career_goal   TEXT NOT NULL,
	source        TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	response      TEXT NOT NULL,
	created_at    TEXT NOT NULL
)`

// fixed width so created_at sorts lexically
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps analysis history in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() {
	_ = s.db.Close()
}

// Save stores a successful analysis. Saving the same ID twice replaces the first copy.
func (s *SQLiteStore) Save(ctx context.Context, req types.AnalysisRequest, resp types.AnalysisResponse) error {
	r, err := toRow(req, resp)
	if err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analyses (id, career_goal, source, overall_score, response, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.id.String(), r.careerGoal, r.source, r.overallScore, string(jsonBytes), r.createdAt.UTC().Format(sqliteTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", r.id, err)
	}
	return nil
}

// Get retrieves a stored analysis by ID
func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (*types.AnalysisResponse, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT response FROM analyses WHERE id = ?`, id.String()).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var resp types.AnalysisResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &resp, nil
}

// List returns the most recent analyses, newest first
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, career_goal, source, overall_score, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT ?`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []Summary{}
	for rows.Next() {
		var (
			sum       Summary
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &sum.CareerGoal, &sum.Source, &sum.OverallScore, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid analysis id %q: %w", id, err)
		}
		if sum.CreatedAt, err = time.Parse(sqliteTimeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return summaries, nil
}
