package mockdata

import (
	"fmt"
	"sync"
	"time"

	"regdash/domain/intake"
	"regdash/domain/roster"
)

// Store holds the in-memory demo dataset used whenever both backing stores
// are unreachable. It also absorbs intake writes that the durable store
// rejected, so the legacy stats view keeps moving in demo mode.
type Store struct {
	mu     sync.Mutex
	counts []intake.TeamCount
}

// NewStore seeds the store with the demo teams.
func NewStore() *Store {
	return &Store{
		counts: []intake.TeamCount{
			{Team: "Team A", Count: 12},
			{Team: "Team B", Count: 8},
			{Team: "Team C", Count: 15},
			{Team: "Team D", Count: 10},
		},
	}
}

// Increment records one registration against a team, adding the team when
// it is new.
func (s *Store) Increment(team string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.counts {
		if s.counts[i].Team == team {
			s.counts[i].Count++
			return
		}
	}
	s.counts = append(s.counts, intake.TeamCount{Team: team, Count: 1})
}

// Counts returns a copy of the team-grouped totals.
func (s *Store) Counts() []intake.TeamCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]intake.TeamCount, len(s.counts))
	copy(out, s.counts)
	return out
}

// Total sums all team counts.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, tc := range s.counts {
		total += tc.Count
	}
	return total
}

// Records synthesizes one participant record per counted registration so the
// dashboard has something to render in demo mode. The team name doubles as
// the event name, mirroring the team-keyed demo dataset.
func (s *Store) Records() []roster.ParticipantRecord {
	counts := s.Counts()
	now := time.Now().Format("1/2/2006 15:04:05")

	var records []roster.ParticipantRecord
	for _, tc := range counts {
		for i := 1; i <= tc.Count; i++ {
			name := fmt.Sprintf("%s Member %d", tc.Team, i)
			rec := roster.ParticipantRecord{
				ID:         fmt.Sprintf("%s-%d", tc.Team, i),
				Name:       name,
				Email:      "user@example.com",
				Team:       tc.Team,
				Event:      tc.Team,
				College:    intake.DefaultFieldValue,
				Timestamp:  now,
				TeamLeader: roster.PlaceholderNoLeader,
				Sheet:      tc.Team,
				Raw:        []string{name, "user@example.com", tc.Team, tc.Team, intake.DefaultFieldValue, now},
			}
			records = append(records, rec)
		}
	}
	return records
}
