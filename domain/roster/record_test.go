package roster

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		title     string
		eventType string
		display   string
	}{
		{"Event - PIXORA", "Event", "PIXORA"},
		{"Workshop - MindTrace - AI in Cybersecurity", "Workshop", "MindTrace - AI in Cybersecurity"},
		{"PIXORA", "", "PIXORA"},
		{"Some-Thing", "", "Some-Thing"}, // hyphen without spaces is not a separator
	}

	for _, tt := range tests {
		eventType, display := SplitTitle(tt.title)
		assert.Equal(t, tt.eventType, eventType, tt.title)
		assert.Equal(t, tt.display, display, tt.title)
	}
}

func TestNormalizeRowDerivesEventFromSheetTitle(t *testing.T) {
	headers := []string{"Timestamp", "Name", "Email", "College"}
	cols := InferColumns(headers, DefaultInferenceConfig())

	rows := [][]string{
		{"1/2/2026 10:00:00", "Ada", "ada@example.com", "MIT"},
		{"1/2/2026 10:05:00", "Grace", "grace@example.com", "Yale"},
		{"1/2/2026 10:10:00", "Alan", "alan@example.com", "Cambridge"},
	}

	for i, row := range rows {
		rec := NormalizeRow(row, cols, "Event - PIXORA", i+1)
		assert.Equal(t, "PIXORA", rec.Event)
		assert.Equal(t, "Event", rec.EventType)
		assert.Equal(t, fmt.Sprintf("Event - PIXORA-%d", i+1), rec.ID)
	}
}

func TestNormalizeRowDefaults(t *testing.T) {
	headers := []string{"Timestamp", "Name", "Email", "Team", "College"}
	cols := InferColumns(headers, DefaultInferenceConfig())

	rec := NormalizeRow([]string{"", "  ", ""}, cols, "Quiz Night", 1)

	assert.Equal(t, PlaceholderMissing, rec.Name)
	assert.Equal(t, PlaceholderMissing, rec.Email)
	assert.Equal(t, PlaceholderMissing, rec.Team)
	assert.Equal(t, PlaceholderMissing, rec.College)
	assert.Equal(t, "", rec.Timestamp)
	assert.Equal(t, PlaceholderNoLeader, rec.TeamLeader)
	assert.Equal(t, "", rec.TeamLeaderEmail)
	assert.Equal(t, "Quiz Night", rec.Event)
	assert.Equal(t, "", rec.EventType)
}

func TestNormalizeRowIgnoresRowEventCell(t *testing.T) {
	headers := []string{"Name", "Event"}
	cols := InferColumns(headers, DefaultInferenceConfig())

	rec := NormalizeRow([]string{"Ada", "Some Other Event"}, cols, "Event - PIXORA", 1)

	assert.Equal(t, "PIXORA", rec.Event, "tab title is authoritative")
	assert.Equal(t, "Some Other Event", rec.EventMeta)
}

func TestNormalizeRowPreservesRawRowVerbatim(t *testing.T) {
	headers := []string{"Timestamp", "Name"}
	cols := InferColumns(headers, DefaultInferenceConfig())

	row := []string{"  1/2/2026 10:00:00 ", "Ada", "extra", ""}
	rec := NormalizeRow(row, cols, "Event - PIXORA", 1)

	assert.Equal(t, row, rec.Raw)

	// Mutating the source row must not affect the record.
	row[1] = "changed"
	assert.Equal(t, "Ada", rec.Raw[1])
}

func TestNormalizeRowAllRolesAbsent(t *testing.T) {
	cols := InferColumns(nil, DefaultInferenceConfig())

	rec := NormalizeRow([]string{"a", "b"}, cols, "Event - PIXORA", 4)

	assert.Equal(t, "PIXORA", rec.Event)
	assert.Equal(t, "Event - PIXORA-4", rec.ID)
	assert.Equal(t, PlaceholderMissing, rec.Name)
	assert.Equal(t, []string{"a", "b"}, rec.Raw)
}

func TestEventBucket(t *testing.T) {
	assert.Equal(t, "PIXORA", ParticipantRecord{Event: " PIXORA "}.EventBucket())
	assert.Equal(t, UnknownEventBucketName, ParticipantRecord{Event: "   "}.EventBucket())
	assert.Equal(t, UnknownEventBucketName, ParticipantRecord{}.EventBucket())
}
