// Package postgres persists matched storms so report history survives across runs.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/couchcryptid/hurdat2-report-service/internal/report"
)

// Store writes matched storms to Postgres. It implements pipeline.ReportSink.
// Upserts are keyed by (storm_id, region), so re-running the same criteria
// is idempotent.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS matched_storms (
	storm_id         TEXT        NOT NULL,
	region           TEXT        NOT NULL,
	name             TEXT        NOT NULL,
	year             INT         NOT NULL,
	landfall_date    TIMESTAMPTZ NOT NULL,
	peak_wind_kt     INT         NOT NULL,
	peak_pressure_mb INT,
	PRIMARY KEY (storm_id, region)
)`

const insertSQL = `
INSERT INTO matched_storms (storm_id, region, name, year, landfall_date, peak_wind_kt, peak_pressure_mb)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (storm_id, region) DO UPDATE SET
	landfall_date    = EXCLUDED.landfall_date,
	peak_wind_kt     = EXCLUDED.peak_wind_kt,
	peak_pressure_mb = EXCLUDED.peak_pressure_mb`

// NewStore connects to Postgres and ensures the schema exists.
func NewStore(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create matched_storms table: %w", err)
	}
	return &Store{pool: pool, logger: logger}, nil
}

func (s *Store) Name() string { return "postgres" }

// Publish upserts every matched storm from the report.
func (s *Store) Publish(ctx context.Context, rep report.Report) error {
	for _, storm := range rep.Storms {
		_, err := s.pool.Exec(ctx, insertSQL,
			storm.ID,
			rep.Criteria.Region,
			storm.Name,
			storm.Year,
			storm.LandfallDate,
			storm.PeakWindKt,
			storm.PeakPressureMb,
		)
		if err != nil {
			return fmt.Errorf("upsert storm %s: %w", storm.ID, err)
		}
	}
	s.logger.Debug("report persisted", "storms", len(rep.Storms))
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}
