package ports

import (
	"context"

	"regdash/domain/intake"
)

// RegistrationRepository is the durable intake sink, independent of the
// spreadsheet.
type RegistrationRepository interface {
	// Create persists one registration.
	Create(ctx context.Context, reg *intake.Registration) error

	// Total counts all stored registrations.
	Total(ctx context.Context) (int, error)

	// CountByTeam returns team-grouped totals for the legacy stats view.
	CountByTeam(ctx context.Context) ([]intake.TeamCount, error)
}
