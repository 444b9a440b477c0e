// Package postgres is a pgx-backed Store implementation for package
// sharetoken, using SQL UPDATE ... RETURNING as the compare-and-set
// primitive spec §5 requires between ValidateAndIncrement and Revoke.
//
// Grounded on the teacher's fortuna-stack sibling repository's
// repository/storage pattern: a thin struct wrapping a *pgxpool.Pool,
// one method per operation, errors translated at the package boundary
// rather than leaking pgx-specific sentinel values to callers.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"incomeverify/models"
	"incomeverify/sharetoken"
)

const schema = `
CREATE TABLE IF NOT EXISTS share_tokens (
	token            TEXT PRIMARY KEY,
	report_id        TEXT NOT NULL,
	borrower_id      TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL,
	expires_at       TIMESTAMPTZ NOT NULL,
	revoked          BOOLEAN NOT NULL DEFAULT FALSE,
	access_count     BIGINT NOT NULL DEFAULT 0,
	last_accessed_at TIMESTAMPTZ,
	last_accessed_ip TEXT
);`

// Store persists ShareTokens in Postgres via pgx.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-connected pool. Callers own the pool's lifecycle.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the share_tokens table if it does not already
// exist. Intended for local development and test setup; production
// deployments are expected to manage migrations externally.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Create(ctx context.Context, token models.ShareToken) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO share_tokens (token, report_id, borrower_id, created_at, expires_at, revoked, access_count)
		VALUES ($1, $2, $3, $4, $5, FALSE, 0)`,
		token.Token, token.ReportID, token.BorrowerID, token.CreatedAt, token.ExpiresAt,
	)
	if isUniqueViolation(err) {
		return sharetoken.ErrTokenCollision
	}
	return err
}

func (s *Store) Get(ctx context.Context, token string) (models.ShareToken, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT token, report_id, borrower_id, created_at, expires_at, revoked, access_count, last_accessed_at, last_accessed_ip
		FROM share_tokens WHERE token = $1`, token)
	return scanToken(row)
}

// ValidateAndIncrement performs the CAS in a single statement: the UPDATE
// only touches the row, and therefore only returns a row, when revoked is
// currently false and expires_at is still in the future. Postgres's
// row-level locking during the UPDATE gives this statement the per-token
// serializability spec §5 requires against a concurrent Revoke.
func (s *Store) ValidateAndIncrement(ctx context.Context, token, ip string, now time.Time) (models.ShareToken, bool, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE share_tokens
		SET access_count = access_count + 1,
		    last_accessed_at = $2,
		    last_accessed_ip = $3
		WHERE token = $1 AND revoked = FALSE AND expires_at > $2
		RETURNING token, report_id, borrower_id, created_at, expires_at, revoked, access_count, last_accessed_at, last_accessed_ip`,
		token, now, ip,
	)
	t, err := scanToken(row)
	if errors.Is(err, sharetoken.ErrTokenNotFound) {
		existing, getErr := s.Get(ctx, token)
		if getErr != nil {
			return models.ShareToken{}, false, getErr
		}
		return existing, false, nil
	}
	if err != nil {
		return models.ShareToken{}, false, err
	}
	return t, true, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE share_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sharetoken.ErrTokenNotFound
	}
	return nil
}

type row interface {
	Scan(dest ...any) error
}

func scanToken(r row) (models.ShareToken, error) {
	var t models.ShareToken
	var lastIP *string // last_accessed_ip is NULL until the first granted access
	err := r.Scan(&t.Token, &t.ReportID, &t.BorrowerID, &t.CreatedAt, &t.ExpiresAt, &t.Revoked, &t.AccessCount, &t.LastAccessedAt, &lastIP)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ShareToken{}, sharetoken.ErrTokenNotFound
	}
	if lastIP != nil {
		t.LastAccessedIP = *lastIP
	}
	return t, err
}

// isUniqueViolation checks for Postgres SQLSTATE 23505 (unique_violation)
// without importing pgconn directly.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	type pgError interface {
		SQLState() string
	}
	var pgErr pgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
