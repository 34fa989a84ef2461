package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"facebook-scorer/internal/models"
)

// Repository persists score history in Postgres. The service runs without
// it; history is only kept when DATABASE_URL is configured.
type Repository struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: hosted connection poolers (PgBouncer in Transaction mode)
	// do not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the scores table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			fayda_number text NOT NULL,
			username text NOT NULL,
			score integer NOT NULL,
			risk_level text NOT NULL,
			tier text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now(),
			UNIQUE (fayda_number, username)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create scores table: %w", err)
	}
	return nil
}

// SaveScore inserts a score record or refreshes the existing one for the
// same (fayda_number, username) pair.
func (r *Repository) SaveScore(ctx context.Context, record *models.ScoreRecord) (*models.ScoreRecord, error) {
	query := `
		INSERT INTO scores (fayda_number, username, score, risk_level, tier)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (fayda_number, username)
		DO UPDATE SET score = EXCLUDED.score, risk_level = EXCLUDED.risk_level, tier = EXCLUDED.tier, updated_at = now()
		RETURNING id, fayda_number, username, score, risk_level, tier, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, record.FaydaNumber, record.Username, record.Score, record.RiskLevel, record.Tier).
		Scan(&record.ID, &record.FaydaNumber, &record.Username, &record.Score, &record.RiskLevel, &record.Tier, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	return record, nil
}

// RecentScores returns the most recently updated score records.
func (r *Repository) RecentScores(ctx context.Context, limit int) ([]models.ScoreRecord, error) {
	query := `
		SELECT id, fayda_number, username, score, risk_level, tier, created_at, updated_at
		FROM scores ORDER BY updated_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent scores: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var rec models.ScoreRecord
		if err := rows.Scan(&rec.ID, &rec.FaydaNumber, &rec.Username, &rec.Score, &rec.RiskLevel, &rec.Tier, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read score records: %w", err)
	}

	return records, nil
}
