package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"regdash/domain/intake"
	"regdash/ports"
)

// registrationRepository implements the RegistrationRepository interface
type registrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *sqlx.DB) ports.RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create inserts a new registration into the database
func (r *registrationRepository) Create(ctx context.Context, reg *intake.Registration) error {
	query := `INSERT INTO registrations (id, name, email, team, event, college, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		reg.ID, reg.Name, reg.Email, reg.Team, reg.Event, reg.College, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// Total counts all stored registrations
func (r *registrationRepository) Total(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return total, nil
}

// CountByTeam returns team-grouped registration totals, largest first
func (r *registrationRepository) CountByTeam(ctx context.Context) ([]intake.TeamCount, error) {
	query := `SELECT team, COUNT(*) AS count
		FROM registrations
		GROUP BY team
		ORDER BY count DESC, team ASC
		LIMIT 50`

	var counts []intake.TeamCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to group registrations by team: %w", err)
	}
	return counts, nil
}
