package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/songzhibin97/tokenlens/internal/models"

	_ "github.com/lib/pq"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(connStr string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}

	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// SaveAssessment implements AssessmentStore interface
func (s *PostgresStorage) SaveAssessment(ctx context.Context, a *models.CompositeRiskAssessment) error {
	factors, err := json.Marshal(a.Factors)
	if err != nil {
		return fmt.Errorf("failed to encode factors: %w", err)
	}
	recommendations, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}

	query := `
        INSERT INTO assessments (
            token_address, intent, overall_score, risk_level, sellability,
            confidence, source, fallback_used, factors, recommendations,
            evaluated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
        )
    `

	_, err = s.db.ExecContext(ctx, query,
		a.TokenAddress,
		string(a.Intent),
		a.OverallScore,
		string(a.RiskLevel),
		string(a.Sellability),
		a.Confidence,
		a.Source,
		a.FallbackUsed,
		factors,
		recommendations,
		a.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// RecentAssessments implements AssessmentStore interface
func (s *PostgresStorage) RecentAssessments(ctx context.Context, tokenAddress string, limit int) ([]models.CompositeRiskAssessment, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
        SELECT token_address, intent, overall_score, risk_level, sellability,
               confidence, source, fallback_used, factors, recommendations,
               evaluated_at
        FROM assessments
        WHERE token_address = $1
        ORDER BY evaluated_at DESC
        LIMIT $2
    `

	rows, err := s.db.QueryContext(ctx, query, tokenAddress, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var out []models.CompositeRiskAssessment
	for rows.Next() {
		var (
			a               models.CompositeRiskAssessment
			intent          string
			level           string
			sellability     string
			factors         []byte
			recommendations []byte
		)
		if err := rows.Scan(
			&a.TokenAddress, &intent, &a.OverallScore, &level, &sellability,
			&a.Confidence, &a.Source, &a.FallbackUsed, &factors,
			&recommendations, &a.EvaluatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		a.Intent = models.AnalysisIntent(intent)
		a.RiskLevel = models.RiskLevel(level)
		a.Sellability = models.SellabilityVerdict(sellability)
		if err := json.Unmarshal(factors, &a.Factors); err != nil {
			return nil, fmt.Errorf("failed to decode factors: %w", err)
		}
		if err := json.Unmarshal(recommendations, &a.Recommendations); err != nil {
			return nil, fmt.Errorf("failed to decode recommendations: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// SaveUsageSnapshot implements AssessmentStore interface
func (s *PostgresStorage) SaveUsageSnapshot(ctx context.Context, at time.Time, counts map[string]int) error {
	encoded, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}

	query := `INSERT INTO usage_snapshots (taken_at, counts) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, at, encoded); err != nil {
		return fmt.Errorf("failed to save usage snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStorage) initTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS assessments (
            id SERIAL PRIMARY KEY,
            token_address TEXT NOT NULL,
            intent TEXT NOT NULL,
            overall_score DOUBLE PRECISION NOT NULL,
            risk_level TEXT NOT NULL,
            sellability TEXT,
            confidence DOUBLE PRECISION NOT NULL,
            source TEXT NOT NULL,
            fallback_used BOOLEAN NOT NULL,
            factors JSONB NOT NULL,
            recommendations JSONB NOT NULL,
            evaluated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_assessments_token
            ON assessments (token_address, evaluated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS usage_snapshots (
            id SERIAL PRIMARY KEY,
            taken_at TIMESTAMPTZ NOT NULL,
            counts JSONB NOT NULL
        )`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
