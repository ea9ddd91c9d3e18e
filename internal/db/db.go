package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/hiresense/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS analyses (
	id            UUID PRIMARY KEY,
	career_goal   TEXT NOT NULL,
	source        TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	response      JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and creates the schema
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Save stores a successful analysis. Saving the same ID twice replaces the first copy.
func (db *DB) Save(ctx context.Context, req types.AnalysisRequest, resp types.AnalysisResponse) error {
	r, err := toRow(req, resp)
	if err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, career_goal, source, overall_score, response, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET career_goal = $2, source = $3, overall_score = $4, response = $5`,
		r.id, r.careerGoal, r.source, r.overallScore, jsonBytes, r.createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", r.id, err)
	}
	return nil
}

// Get retrieves a stored analysis by ID
func (db *DB) Get(ctx context.Context, id uuid.UUID) (*types.AnalysisResponse, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT response FROM analyses WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var resp types.AnalysisResponse
	if err := json.Unmarshal(content, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &resp, nil
}

// List returns the most recent analyses, newest first
func (db *DB) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, career_goal, source, overall_score, created_at
		 FROM analyses ORDER BY created_at DESC LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CareerGoal, &s.Source, &s.OverallScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return summaries, nil
}
