package touchpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

// Postgres persists touchpoints in the buddy_touchpoints table. Rows are
// never hard-deleted; the deleted flag is flipped by the pairing lifecycle.
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

const touchpointColumns = `id, buddy_id, buddee_id, note, visible, status, deleted, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, tp *models.Touchpoint) error {
	query := `
		INSERT INTO buddy_touchpoints (buddy_id, buddee_id, note, visible, status, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $7)
		RETURNING id
	`
	err := s.q.QueryRowContext(ctx, query,
		tp.BuddyID, tp.BuddeeID, tp.Note, tp.Visible, string(tp.Status), tp.CreatedAt, tp.UpdatedAt,
	).Scan(&tp.ID)
	if err != nil {
		return fmt.Errorf("create touchpoint: %w", err)
	}
	return nil
}

// UpdateDraft atomically patches a live draft, optionally submitting it.
// The conditional UPDATE is the whole precondition check: a missing,
// deleted, or already-submitted row yields sentinel.ErrNotFound. This keeps
// the check-and-edit race-free without an extra read.
func (s *Postgres) UpdateDraft(ctx context.Context, id int64, patch models.DraftPatch, submit bool, now time.Time) (*models.Touchpoint, error) {
	status := string(models.StatusDraft)
	if submit {
		status = string(models.StatusSubmitted)
	}
	query := `
		UPDATE buddy_touchpoints
		SET note = COALESCE($2, note),
		    visible = $3,
		    status = $4,
		    updated_at = $5
		WHERE id = $1
		  AND status = 'DRAFT'
		  AND NOT deleted
		RETURNING ` + touchpointColumns
	tp, err := scanTouchpoint(s.q.QueryRowContext(ctx, query, id, patch.Note, patch.Visible, status, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("update draft touchpoint: %w", err)
	}
	return tp, nil
}

func (s *Postgres) ListForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	query := `
		SELECT ` + touchpointColumns + `
		FROM buddy_touchpoints
		WHERE buddy_id = $1 AND buddee_id = $2 AND NOT deleted
		ORDER BY updated_at DESC, id DESC
	`
	return s.list(ctx, query, buddyID, buddeeID)
}

func (s *Postgres) ListVisibleForBuddee(ctx context.Context, buddeeID int64) ([]*models.Touchpoint, error) {
	query := `
		SELECT ` + touchpointColumns + `
		FROM buddy_touchpoints
		WHERE buddee_id = $1 AND visible AND status = 'SUBMITTED' AND NOT deleted
		ORDER BY updated_at DESC, id DESC
	`
	return s.list(ctx, query, buddeeID)
}

// ListAllForPair includes deleted rows. Audit accessor only.
func (s *Postgres) ListAllForPair(ctx context.Context, buddyID, buddeeID int64) ([]*models.Touchpoint, error) {
	query := `
		SELECT ` + touchpointColumns + `
		FROM buddy_touchpoints
		WHERE buddy_id = $1 AND buddee_id = $2
		ORDER BY updated_at DESC, id DESC
	`
	return s.list(ctx, query, buddyID, buddeeID)
}

func (s *Postgres) SetDeletedForPair(ctx context.Context, buddyID, buddeeID int64, deleted bool) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE buddy_touchpoints SET deleted = $3 WHERE buddy_id = $1 AND buddee_id = $2`,
		buddyID, buddeeID, deleted,
	)
	if err != nil {
		return fmt.Errorf("set deleted for pair: %w", err)
	}
	return nil
}

func (s *Postgres) list(ctx context.Context, query string, args ...any) ([]*models.Touchpoint, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list touchpoints: %w", err)
	}
	defer rows.Close()

	var out []*models.Touchpoint
	for rows.Next() {
		var tp models.Touchpoint
		var status string
		if err := rows.Scan(&tp.ID, &tp.BuddyID, &tp.BuddeeID, &tp.Note, &tp.Visible, &status, &tp.Deleted, &tp.CreatedAt, &tp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan touchpoint: %w", err)
		}
		tp.Status = models.TouchpointStatus(status)
		out = append(out, &tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate touchpoints: %w", err)
	}
	return out, nil
}

type touchpointRow interface {
	Scan(dest ...any) error
}

func scanTouchpoint(row touchpointRow) (*models.Touchpoint, error) {
	var tp models.Touchpoint
	var status string
	if err := row.Scan(&tp.ID, &tp.BuddyID, &tp.BuddeeID, &tp.Note, &tp.Visible, &status, &tp.Deleted, &tp.CreatedAt, &tp.UpdatedAt); err != nil {
		return nil, err
	}
	tp.Status = models.TouchpointStatus(status)
	return &tp, nil
}
