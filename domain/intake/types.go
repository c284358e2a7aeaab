package intake

import (
	"time"

	"regdash/domain/core"
)

// DefaultFieldValue fills any registration field the caller left blank.
const DefaultFieldValue = "Unknown"

// Registration is one durable intake record, independent of the spreadsheet.
type Registration struct {
	ID        core.ID   `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Team      string    `json:"team" db:"team"`
	Event     string    `json:"event" db:"event"`
	College   string    `json:"college" db:"college"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// New builds a Registration from raw request fields, substituting
// DefaultFieldValue for anything blank.
func New(name, email, team, event, college string) *Registration {
	return &Registration{
		ID:        core.NewID(),
		Name:      orDefault(name),
		Email:     orDefault(email),
		Team:      orDefault(team),
		Event:     orDefault(event),
		College:   orDefault(college),
		CreatedAt: time.Now(),
	}
}

// TeamCount is one bucket of the legacy team-grouped totals.
type TeamCount struct {
	Team  string `json:"_id" db:"team"`
	Count int    `json:"count" db:"count"`
}

func orDefault(v string) string {
	if v == "" {
		return DefaultFieldValue
	}
	return v
}
