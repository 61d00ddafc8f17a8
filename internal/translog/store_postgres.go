package translog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"integrationhub/pkg/platform/sentinel"
)

const selectColumns = `id, auth_type, caller_id, service, endpoint,
	COALESCE(request_payload, ''), COALESCE(response_data, ''),
	status, COALESCE(duration_ms, 0), created_at`

// PostgresStore persists entries in api_transaction_logs.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, e *Entry) error {
	if e.AuthType == "" {
		e.AuthType = DefaultAuthType
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
	createdAt := any(nil)
	if !e.CreatedAt.IsZero() {
		createdAt = e.CreatedAt
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO api_transaction_logs
			(auth_type, caller_id, service, endpoint, request_payload, response_data, status, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, COALESCE($9, now()))
		RETURNING id, created_at
	`, e.AuthType, e.CallerID, e.Service, e.Endpoint, e.RequestPayload, e.ResponseData,
		string(e.Status), e.DurationMs, createdAt).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction log: %w", err)
	}
	return nil
}

// List returns matching entries newest first, capped at ListLimit.
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM api_transaction_logs`
	var args []any
	switch {
	case f.CallerID != "":
		query += ` WHERE caller_id = $1`
		args = append(args, f.CallerID)
	case f.Service != "":
		query += ` WHERE service = $1`
		args = append(args, f.Service)
	case f.Status != "":
		query += ` WHERE status = $1`
		args = append(args, string(f.Status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT %d`, ListLimit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transaction logs: %w", err)
	}
	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scan transaction logs: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM api_transaction_logs WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction log: %w", err)
	}
	e, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction log: %w", err)
	}
	return &e, nil
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var (
		e      Entry
		status string
	)
	err := row.Scan(&e.ID, &e.AuthType, &e.CallerID, &e.Service, &e.Endpoint,
		&e.RequestPayload, &e.ResponseData, &status, &e.DurationMs, &e.CreatedAt)
	e.Status = Status(status)
	return e, err
}
