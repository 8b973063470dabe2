package pair

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"peopledesk/internal/buddy/models"
	"peopledesk/pkg/platform/sentinel"
)

// DBTX abstracts *sql.DB and *sql.Tx so the same store runs standalone or
// inside a coordinator transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists pairs in the buddy_pairs table.
//
// Schema backstop for the uniqueness invariants:
//
//	UNIQUE (buddy_id, buddee_id)  -- no duplicate pair
//	UNIQUE (buddee_id)            -- a buddee belongs to one buddy
//
// The service re-checks these before inserting for friendly error messages;
// the indexes close the race between concurrent pairing requests.
type Postgres struct {
	q DBTX
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{q: db}
}

// NewPostgresTx binds the store to an open transaction.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{q: tx}
}

func (s *Postgres) Create(ctx context.Context, pairs []*models.Pair) error {
	query := `
		INSERT INTO buddy_pairs (buddy_id, buddee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, p := range pairs {
		err := s.q.QueryRowContext(ctx, query, p.BuddyID, p.BuddeeID, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("create pair: %w", err)
		}
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id int64) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM buddy_pairs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pair: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pair rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Pair, error) {
	query := `
		SELECT id, buddy_id, buddee_id, created_at, updated_at
		FROM buddy_pairs
		WHERE id = $1
	`
	p, err := scanPair(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find pair: %w", err)
	}
	return p, nil
}

func (s *Postgres) FindByBuddyIDs(ctx context.Context, buddyIDs []int64) ([]*models.Pair, error) {
	query := `
		SELECT id, buddy_id, buddee_id, created_at, updated_at
		FROM buddy_pairs
		WHERE buddy_id = ANY($1)
		ORDER BY id ASC
	`
	rows, err := s.q.QueryContext(ctx, query, pq.Array(buddyIDs))
	if err != nil {
		return nil, fmt.Errorf("find pairs by buddies: %w", err)
	}
	defer rows.Close()

	var out []*models.Pair
	for rows.Next() {
		var p models.Pair
		if err := rows.Scan(&p.ID, &p.BuddyID, &p.BuddeeID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairs: %w", err)
	}
	return out, nil
}

func (s *Postgres) FindByBuddeeID(ctx context.Context, buddeeID int64) (*models.Pair, error) {
	query := `
		SELECT id, buddy_id, buddee_id, created_at, updated_at
		FROM buddy_pairs
		WHERE buddee_id = $1
	`
	p, err := scanPair(s.q.QueryRowContext(ctx, query, buddeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find pair by buddee: %w", err)
	}
	return p, nil
}

func (s *Postgres) Exists(ctx context.Context, buddyID, buddeeID int64) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM buddy_pairs WHERE buddy_id = $1 AND buddee_id = $2)`,
		buddyID, buddeeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pair exists: %w", err)
	}
	return exists, nil
}

// isUniqueViolation matches postgres error 23505 (unique_violation) as
// surfaced by the pgx stdlib driver every handle in this project is opened
// with.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type pairRow interface {
	Scan(dest ...any) error
}

func scanPair(row pairRow) (*models.Pair, error) {
	var p models.Pair
	if err := row.Scan(&p.ID, &p.BuddyID, &p.BuddeeID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
