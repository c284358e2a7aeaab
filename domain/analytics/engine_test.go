package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regdash/domain/roster"
)

func eventRecords(event string, n int) []roster.ParticipantRecord {
	recs := make([]roster.ParticipantRecord, n)
	for i := range recs {
		recs[i] = roster.ParticipantRecord{
			ID:    fmt.Sprintf("%s-%d", event, i+1),
			Name:  fmt.Sprintf("P%d", i+1),
			Email: fmt.Sprintf("p%d@example.com", i+1),
			Event: event,
		}
	}
	return recs
}

func TestComputeGroupingInvariant(t *testing.T) {
	records := append(eventRecords("PIXORA", 3), eventRecords("Hackathon", 5)...)
	records = append(records, eventRecords("Quiz", 2)...)

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	assert.Equal(t, 10, report.TotalParticipants)

	sum := 0
	seen := map[string]int{}
	for _, es := range report.Events {
		sum += es.Count
		seen[es.Name]++
	}
	assert.Equal(t, len(records), sum, "per-event counts must sum to total")
	for name, n := range seen {
		assert.Equal(t, 1, n, "event %s must appear in exactly one bucket", name)
	}
	assert.Len(t, report.Events, 3)
}

func TestComputeBlankEventGroupsUnderUnknown(t *testing.T) {
	records := []roster.ParticipantRecord{
		{Event: "  "},
		{Event: ""},
		{Event: "PIXORA"},
	}

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	counts := map[string]int{}
	for _, es := range report.Events {
		counts[es.Name] = es.Count
	}
	assert.Equal(t, 2, counts[roster.UnknownEventBucketName])
	assert.Equal(t, 1, counts["PIXORA"])
}

func TestComputeDefaultSortIsCountDescending(t *testing.T) {
	records := append(eventRecords("Small", 2), eventRecords("Big", 7)...)
	records = append(records, eventRecords("Mid", 4)...)

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	require.Len(t, report.Events, 3)
	assert.Equal(t, "Big", report.Events[0].Name)
	assert.Equal(t, "Mid", report.Events[1].Name)
	assert.Equal(t, "Small", report.Events[2].Name)
}

func TestScoreAndCapacitySort(t *testing.T) {
	// Blockchain has no keyword entry (default 100); Hackathon matches the
	// hackathon keyword (300). 150/300 = 0.50 beats 40/100 = 0.40.
	records := append(eventRecords("Blockchain", 40), eventRecords("Hackathon", 150)...)

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	byName := map[string]EventStats{}
	for _, es := range report.Events {
		byName[es.Name] = es
	}
	assert.Equal(t, "40/100", byName["Blockchain"].Score)
	assert.Equal(t, "150/300", byName["Hackathon"].Score)

	SortByScore(report.Events)
	assert.Equal(t, "Hackathon", report.Events[0].Name, "higher ratio sorts first")
	assert.Equal(t, "Blockchain", report.Events[1].Name)
}

func TestLimitTableResolutionOrder(t *testing.T) {
	table := NewLimitTable(
		map[string]int{"Mega Hackathon": 500},
		[]KeywordLimit{{Keyword: "hackathon", Multiplier: 300}},
		100,
	)

	assert.Equal(t, 500, table.Multiplier("mega hackathon"), "exact match first")
	assert.Equal(t, 300, table.Multiplier("Night Hackathon"), "keyword fallback")
	assert.Equal(t, 100, table.Multiplier("PIXORA"), "default multiplier")
}

func TestComputeGrowthAgainstPreviousSnapshot(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 2, 0, 0, time.UTC)
	prev := &Snapshot{
		TakenAt: now.Add(-2 * time.Minute),
		Counts:  map[string]int{"PIXORA": 5},
	}

	records := append(eventRecords("PIXORA", 8), eventRecords("Fresh", 3)...)
	report := NewEngine(DefaultLimits()).Compute(records, prev, now)

	byName := map[string]EventStats{}
	for _, es := range report.Events {
		byName[es.Name] = es
	}

	assert.Equal(t, 3, byName["PIXORA"].Growth)
	assert.InDelta(t, 1.5, byName["PIXORA"].GrowthRate, 1e-9)

	// Events new in this cycle have implicit old count 0.
	assert.Equal(t, 3, byName["Fresh"].Growth)
	assert.InDelta(t, 1.5, byName["Fresh"].GrowthRate, 1e-9)

	assert.Equal(t, map[string]int{"PIXORA": 8, "Fresh": 3}, report.Snapshot.Counts)
	assert.Equal(t, now, report.Snapshot.TakenAt)
}

func TestComputeFirstCycleHasNoGrowth(t *testing.T) {
	report := NewEngine(DefaultLimits()).Compute(eventRecords("PIXORA", 4), nil, time.Now())

	assert.Equal(t, 0, report.Events[0].Growth)
	assert.Equal(t, 0.0, report.Events[0].GrowthRate)
}

func TestRegistrationPaceTrend(t *testing.T) {
	records := eventRecords("PIXORA", 3)
	records[0].Timestamp = "1/2/2026 10:00:00"
	records[1].Timestamp = "1/2/2026 10:01:00"
	records[2].Timestamp = "1/2/2026 10:02:00"

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	require.Len(t, report.Events, 1)
	assert.InDelta(t, 1.0, report.Events[0].Pace, 1e-9, "one registration per minute")
}

func TestRegistrationPaceNeedsTwoTimestamps(t *testing.T) {
	records := eventRecords("PIXORA", 3)
	records[0].Timestamp = "1/2/2026 10:00:00"
	records[1].Timestamp = "not a time"

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	assert.Equal(t, 0.0, report.Events[0].Pace)
}

func TestComputeSummary(t *testing.T) {
	records := append(eventRecords("A", 2), eventRecords("B", 4)...)

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	assert.Equal(t, 2, report.Summary.EventCount)
	assert.InDelta(t, 3.0, report.Summary.MeanCount, 1e-9)
	assert.InDelta(t, 3.0, report.Summary.MedianCount, 1e-9)
	assert.InDelta(t, 1.0, report.Summary.StdDevCount, 1e-9)
}

func TestParticipantDetailFallbacks(t *testing.T) {
	records := []roster.ParticipantRecord{{
		Name:  "Ada",
		Email: "ada@example.com",
		Event: "PIXORA",
	}}

	report := NewEngine(DefaultLimits()).Compute(records, nil, time.Now())

	require.Len(t, report.EventDetails["PIXORA"], 1)
	detail := report.EventDetails["PIXORA"][0]
	assert.Equal(t, "Ada", detail.TeamLeader, "leader falls back to participant name")
	assert.Equal(t, "ada@example.com", detail.TeamLeaderEmail)
}

func TestComputeEmptyInput(t *testing.T) {
	report := NewEngine(DefaultLimits()).Compute(nil, nil, time.Now())

	assert.Equal(t, 0, report.TotalParticipants)
	assert.Empty(t, report.Events)
	assert.Equal(t, 0, report.Summary.EventCount)
}
