package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/repo"
)

var _ repo.ObservationStore = (*Store)(nil)

// Store persists observations in PostgreSQL so histories survive process
// restarts. It implements the same append/read contract as the in-memory
// store; the aggregation layer does not care which one it reads from.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the observations table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS observations (
    id            BIGSERIAL PRIMARY KEY,
    endpoint_name TEXT NOT NULL,
    success       BOOLEAN NOT NULL,
    http_status   INTEGER,
    latency_ms    DOUBLE PRECISION,
    body_bytes    BIGINT,
    error_kind    TEXT NOT NULL DEFAULT '',
    checked_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS observations_endpoint_checked_at
    ON observations (endpoint_name, checked_at)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, obs domain.Observation) error {
	if obs.CheckedAt.IsZero() {
		obs.CheckedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO observations
		   (endpoint_name, success, http_status, latency_ms, body_bytes, error_kind, checked_at)
		 VALUES
		   ($1, $2, $3, $4, $5, $6, $7)`,
		obs.EndpointName, obs.Success, obs.HTTPStatus, obs.LatencyMS, obs.BodyBytes,
		string(obs.ErrorKind), obs.CheckedAt,
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

func (s *Store) HistoryFor(ctx context.Context, endpointName string) (domain.History, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT success, http_status, latency_ms, body_bytes, error_kind, checked_at
		   FROM observations
		  WHERE endpoint_name = $1
		  ORDER BY checked_at ASC, id ASC`, endpointName)
	if err != nil {
		return nil, fmt.Errorf("history for %q: %w", endpointName, err)
	}
	defer rows.Close()

	var out domain.History
	for rows.Next() {
		var (
			success   bool
			httpNull  sql.NullInt32
			latNull   sql.NullFloat64
			bodyNull  sql.NullInt64
			errorKind string
			checkedAt time.Time
		)
		if err := rows.Scan(&success, &httpNull, &latNull, &bodyNull, &errorKind, &checkedAt); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}

		obs := domain.Observation{
			EndpointName: endpointName,
			Success:      success,
			ErrorKind:    domain.ErrorKind(errorKind),
			CheckedAt:    checkedAt,
		}
		if httpNull.Valid {
			v := int(httpNull.Int32)
			obs.HTTPStatus = &v
		}
		if latNull.Valid {
			v := latNull.Float64
			obs.LatencyMS = &v
		}
		if bodyNull.Valid {
			v := bodyNull.Int64
			obs.BodyBytes = &v
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}
