package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"regdash/domain/roster"
)

// ParticipantDetail is the per-event participant listing exposed by the
// analytics endpoint.
type ParticipantDetail struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	College         string `json:"college"`
	Team            string `json:"team"`
	Timestamp       string `json:"timestamp"`
	TeamLeader      string `json:"teamLeader"`
	TeamLeaderEmail string `json:"teamLeaderEmail"`
}

// EventStats is the derived, per-event statistics bucket. Recomputed fully
// on every aggregation cycle and never persisted.
type EventStats struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Multiplier int    `json:"multiplier"`
	// Score is "<count>/<multiplier>" for the capacity-ratio display.
	Score string `json:"score"`
	// Growth and GrowthRate compare against the previous snapshot; both are
	// zero on the first cycle and for events with no change.
	Growth     int     `json:"growth"`
	GrowthRate float64 `json:"growthRate"`
	// Pace is the least-squares registrations-per-minute trend fitted over
	// the event's parseable row timestamps; zero when indeterminate.
	Pace         float64             `json:"pace"`
	Participants []ParticipantDetail `json:"participants"`
}

// Ratio is the score value used by the capacity sort.
func (s EventStats) Ratio() float64 {
	if s.Multiplier <= 0 {
		return 0
	}
	return float64(s.Count) / float64(s.Multiplier)
}

// Snapshot captures per-event counts at one point in time so the next cycle
// can compute growth. Lost on process restart by design.
type Snapshot struct {
	TakenAt time.Time
	Counts  map[string]int
}

// Summary aggregates the per-event counts into distribution statistics for
// the dashboard header.
type Summary struct {
	EventCount  int     `json:"eventCount"`
	MeanCount   float64 `json:"meanCount"`
	MedianCount float64 `json:"medianCount"`
	StdDevCount float64 `json:"stdDevCount"`
}

// Report is the full output of one statistics pass.
type Report struct {
	TotalParticipants int
	Events            []EventStats
	EventDetails      map[string][]ParticipantDetail
	Summary           Summary
	Snapshot          Snapshot
}

// Engine groups participant records by event and derives statistics. It
// performs no IO: the output is a pure function of its inputs plus the
// static limit table.
type Engine struct {
	limits LimitTable
}

// NewEngine creates a statistics engine over the given capacity table.
func NewEngine(limits LimitTable) *Engine {
	return &Engine{limits: limits}
}

// Compute builds a Report from the flat record collection. prev may be nil
// (first cycle); now stamps the report's snapshot and anchors the growth
// window.
func (e *Engine) Compute(records []roster.ParticipantRecord, prev *Snapshot, now time.Time) *Report {
	grouped := make(map[string][]roster.ParticipantRecord)
	for _, rec := range records {
		bucket := rec.EventBucket()
		grouped[bucket] = append(grouped[bucket], rec)
	}

	var elapsedMinutes float64
	if prev != nil {
		elapsedMinutes = now.Sub(prev.TakenAt).Minutes()
	}

	events := make([]EventStats, 0, len(grouped))
	details := make(map[string][]ParticipantDetail, len(grouped))
	counts := make(map[string]int, len(grouped))

	for name, recs := range grouped {
		mult := e.limits.Multiplier(name)
		es := EventStats{
			Name:         name,
			Count:        len(recs),
			Multiplier:   mult,
			Score:        fmt.Sprintf("%d/%d", len(recs), mult),
			Pace:         registrationPace(recs),
			Participants: detailList(recs),
		}
		if prev != nil {
			es.Growth = es.Count - prev.Counts[name]
			if elapsedMinutes > 0 {
				es.GrowthRate = round1(float64(es.Growth) / elapsedMinutes)
			}
		}
		events = append(events, es)
		details[name] = es.Participants
		counts[name] = es.Count
	}

	SortByCount(events)

	return &Report{
		TotalParticipants: len(records),
		Events:            events,
		EventDetails:      details,
		Summary:           summarize(events),
		Snapshot:          Snapshot{TakenAt: now, Counts: counts},
	}
}

// SortByCount orders events by participant count descending; ties break on
// name ascending so output is deterministic.
func SortByCount(events []EventStats) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Count != events[j].Count {
			return events[i].Count > events[j].Count
		}
		return events[i].Name < events[j].Name
	})
}

// SortByScore orders events by capacity ratio descending (higher ratio
// ranks first), with count descending then name ascending as tie-breaks.
func SortByScore(events []EventStats) {
	sort.SliceStable(events, func(i, j int) bool {
		ri, rj := events[i].Ratio(), events[j].Ratio()
		if ri != rj {
			return ri > rj
		}
		if events[i].Count != events[j].Count {
			return events[i].Count > events[j].Count
		}
		return events[i].Name < events[j].Name
	})
}

func detailList(recs []roster.ParticipantRecord) []ParticipantDetail {
	out := make([]ParticipantDetail, 0, len(recs))
	for _, rec := range recs {
		d := ParticipantDetail{
			Name:            rec.Name,
			Email:           rec.Email,
			College:         rec.College,
			Team:            rec.Team,
			Timestamp:       rec.Timestamp,
			TeamLeader:      rec.TeamLeader,
			TeamLeaderEmail: rec.TeamLeaderEmail,
		}
		if d.TeamLeader == "" {
			d.TeamLeader = rec.Name
		}
		if d.TeamLeaderEmail == "" {
			d.TeamLeaderEmail = rec.Email
		}
		out = append(out, d)
	}
	return out
}

// timestampLayouts covers the formats seen in form-fed sheets plus RFC3339.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"02/01/2006 15:04:05",
}

// registrationPace fits cumulative registrations against time and returns
// the slope in registrations per minute. Needs at least two rows with
// parseable, non-identical timestamps.
func registrationPace(recs []roster.ParticipantRecord) float64 {
	times := make([]time.Time, 0, len(recs))
	for _, rec := range recs {
		if ts, ok := parseTimestamp(rec.Timestamp); ok {
			times = append(times, ts)
		}
	}
	if len(times) < 2 {
		return 0
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	origin := times[0]
	xs := make([]float64, len(times))
	ys := make([]float64, len(times))
	for i, t := range times {
		xs[i] = t.Sub(origin).Minutes()
		ys[i] = float64(i + 1)
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0
	}
	return math.Round(beta*100) / 100
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func summarize(events []EventStats) Summary {
	s := Summary{EventCount: len(events)}
	if len(events) == 0 {
		return s
	}
	counts := make([]float64, len(events))
	for i, es := range events {
		counts[i] = float64(es.Count)
	}
	if mean, err := stats.Mean(counts); err == nil {
		s.MeanCount = round1(mean)
	}
	if median, err := stats.Median(counts); err == nil {
		s.MedianCount = round1(median)
	}
	if sd, err := stats.StandardDeviation(counts); err == nil {
		s.StdDevCount = round1(sd)
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
