// Package db provides persistence for completed analyses.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiresense/internal/config"
	"github.com/jonathan/hiresense/internal/types"
)

// ErrNotFound is returned when no analysis exists for an ID
var ErrNotFound = errors.New("analysis not found")

// DefaultListLimit and MaxListLimit bound List
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Store saves and retrieves analysis responses
type Store interface {
	Save(ctx context.Context, req types.AnalysisRequest, resp types.AnalysisResponse) error
	Get(ctx context.Context, id uuid.UUID) (*types.AnalysisResponse, error)
	List(ctx context.Context, limit int) ([]Summary, error)
	Close()
}

// Summary is one row of the analysis history
type Summary struct {
	ID           uuid.UUID `json:"id"`
	CareerGoal   string    `json:"career_goal"`
	Source       string    `json:"source"`
	OverallScore int       `json:"overall_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open connects to the store named by a database URL (postgres://... or sqlite://path)
func Open(ctx context.Context, databaseURL string) (Store, error) {
	driver, dsn, err := config.ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		return Connect(ctx, dsn)
	case config.DriverSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// row is the flattened form written by both stores
type row struct {
	id           uuid.UUID
	careerGoal   string
	source       string
	overallScore int
	createdAt    time.Time
}

func toRow(req types.AnalysisRequest, resp types.AnalysisResponse) (row, error) {
	if !resp.Success || resp.Data == nil {
		return row{}, fmt.Errorf("only successful analyses are stored")
	}
	if resp.ID == uuid.Nil {
		return row{}, fmt.Errorf("analysis has no id")
	}

	createdAt := resp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return row{
		id:           resp.ID,
		careerGoal:   req.CareerGoal,
		source:       resp.Source,
		overallScore: resp.Data.CareerReadiness.OverallScore,
		createdAt:    createdAt,
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
