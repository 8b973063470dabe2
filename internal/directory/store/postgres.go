package store

import (
	"context"
	"database/sql"
	"fmt"

	"peopledesk/internal/directory/models"
	"peopledesk/pkg/platform/sentinel"
)

// Postgres reads profiles from the HR platform's users table.
// This store is pure I/O; eligibility rules belong in the consuming service.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) FindByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := `
		SELECT id, first_name, last_name, email, position, is_buddy
		FROM users
		WHERE id = $1
	`
	var p models.Profile
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Position, &p.IsBuddy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &p, nil
}

func (s *Postgres) ListBuddies(ctx context.Context) ([]models.Profile, error) {
	query := `
		SELECT id, first_name, last_name, email, position, is_buddy
		FROM users
		WHERE is_buddy
		ORDER BY first_name || ' ' || last_name ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list buddies: %w", err)
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Position, &p.IsBuddy); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buddies: %w", err)
	}
	return out, nil
}
