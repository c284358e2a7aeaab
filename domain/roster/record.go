package roster

import (
	"fmt"
	"strings"
)

// Placeholder values substituted when a role is absent or its cell is blank.
// Participant fields and team leader fields deliberately default differently.
const (
	PlaceholderMissing     = "N/A"
	PlaceholderNoLeader    = "Not Assigned"
	titleSeparator         = " - "
	UnknownEventBucketName = "Unknown Event"
)

// IntakeHeader is the fixed header row of the intake tab.
var IntakeHeader = []string{"Name", "Email", "Team", "Event", "College", "Timestamp"}

// ParticipantRecord is the canonical registration entity produced from one
// spreadsheet row. Immutable once constructed; each aggregation cycle
// replaces the whole collection.
type ParticipantRecord struct {
	// ID is "<sheetTitle>-<rowPosition>" with a 1-based data-row position,
	// stable across reads of unchanged sheet content. It is the key used
	// for row deletion.
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Team      string `json:"team"`
	College   string `json:"college"`
	Timestamp string `json:"timestamp"`

	// Event is the display event name derived from the sheet/tab title,
	// never from row data.
	Event string `json:"event"`

	TeamLeader      string `json:"teamLeader"`
	TeamLeaderEmail string `json:"teamLeaderEmail"`

	// Sheet is the tab title this record came from. EventType is the text
	// before the first " - " in the title, if any. EventMeta captures the
	// row's own event cell; it is metadata only and never authoritative.
	Sheet     string `json:"sheet"`
	EventType string `json:"eventType"`
	EventMeta string `json:"eventMeta"`

	Payment string `json:"payment,omitempty"`

	// Raw preserves the original row verbatim for show-every-column views.
	Raw []string `json:"raw"`
}

// SplitTitle derives (eventType, displayName) from a sheet/tab title.
// "Workshop - MindTrace - AI in Cybersecurity" yields eventType "Workshop"
// and display name "MindTrace - AI in Cybersecurity"; a title without the
// separator is the display name itself.
func SplitTitle(title string) (eventType, displayName string) {
	if idx := strings.Index(title, titleSeparator); idx >= 0 {
		return title[:idx], title[idx+len(titleSeparator):]
	}
	return "", title
}

// NormalizeRow converts one raw data row plus inferred column indices into a
// ParticipantRecord. pos is the 1-based position of the row within the
// sheet's data rows (header excluded).
func NormalizeRow(row []string, cols ColumnIndexMap, sheetTitle string, pos int) ParticipantRecord {
	pick := func(role Role) string {
		idx, ok := cols.Index(role)
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	eventType, displayName := SplitTitle(sheetTitle)

	raw := make([]string, len(row))
	copy(raw, row)

	return ParticipantRecord{
		ID:              fmt.Sprintf("%s-%d", sheetTitle, pos),
		Name:            orDefault(pick(RoleName), PlaceholderMissing),
		Email:           orDefault(pick(RoleEmail), PlaceholderMissing),
		Team:            orDefault(pick(RoleTeam), PlaceholderMissing),
		College:         orDefault(pick(RoleCollege), PlaceholderMissing),
		Timestamp:       pick(RoleTimestamp),
		Event:           displayName,
		TeamLeader:      orDefault(pick(RoleTeamLeaderName), PlaceholderNoLeader),
		TeamLeaderEmail: pick(RoleTeamLeaderEmail),
		Sheet:           sheetTitle,
		EventType:       eventType,
		EventMeta:       pick(RoleEvent),
		Payment:         pick(RolePayment),
		Raw:             raw,
	}
}

// EventBucket returns the grouping key for statistics: the trimmed event
// name, or the unknown-event bucket when blank.
func (r ParticipantRecord) EventBucket() string {
	name := strings.TrimSpace(r.Event)
	if name == "" {
		return UnknownEventBucketName
	}
	return name
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
