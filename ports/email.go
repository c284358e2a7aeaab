package ports

import (
	"context"

	"regdash/domain/intake"
)

// EmailSender delivers registration confirmation emails. Delivery failures
// never fail the registration that triggered them.
type EmailSender interface {
	SendConfirmation(ctx context.Context, reg *intake.Registration) error
}
