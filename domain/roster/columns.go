package roster

import (
	"regexp"
	"strings"
)

// Role identifies the semantic meaning of a spreadsheet column.
type Role string

const (
	RoleTimestamp       Role = "timestamp"
	RoleName            Role = "name"
	RoleEmail           Role = "email"
	RoleTeam            Role = "team"
	RoleCollege         Role = "college"
	RoleEvent           Role = "event"
	RoleTeamLeaderName  Role = "teamLeaderName"
	RoleTeamLeaderEmail Role = "teamLeaderEmail"
	RolePayment         Role = "payment"
)

// Absent marks a role with no matching column in the header row.
const Absent = -1

// ColumnIndexMap maps semantic roles to 0-based column positions. Built once
// per sheet from its header row and never mutated afterwards. A missing key
// or an Absent value both mean the role has no column; every consumer must
// handle absence rather than fail.
type ColumnIndexMap map[Role]int

// Index returns the column position for a role and whether it is present.
func (m ColumnIndexMap) Index(role Role) (int, bool) {
	idx, ok := m[role]
	if !ok || idx == Absent {
		return Absent, false
	}
	return idx, true
}

// Rule binds a role to a header pattern. Rules are evaluated in order, one
// role per rule, so new header conventions can be added without touching the
// matching algorithm.
type Rule struct {
	Role    Role
	Pattern *regexp.Regexp
}

// DefaultRules is the ordered rule list for direct role detection. Team
// leader roles and payment are resolved separately because they use
// preference lists and overrides rather than a single pattern.
var DefaultRules = []Rule{
	{RoleTimestamp, regexp.MustCompile(`timestamp|submitted`)},
	{RoleName, regexp.MustCompile(`\bname\b|full\s*name`)},
	{RoleEmail, regexp.MustCompile(`email|mail`)},
	{RoleTeam, regexp.MustCompile(`team|group`)},
	{RoleCollege, regexp.MustCompile(`college|institution|school|university`)},
	{RoleEvent, regexp.MustCompile(`event`)},
}

// leaderNameCandidates is the ordered preference list for the team leader
// name column; first substring match wins. Headers containing "email" are
// never name candidates.
var leaderNameCandidates = []string{
	"team leader name",
	"leader name",
	"captain name",
	"participant name",
	"full name",
	"name",
}

var (
	leaderFallbackPattern = regexp.MustCompile(`leader|captain|head|coordinator|contact`)
	// leaderEmailPattern intentionally overlaps the general email pattern:
	// on sheets with a single email column, teamLeaderEmail aliases email.
	// Known limitation carried over from the upstream sheet conventions.
	leaderEmailPattern = regexp.MustCompile(`leader.*email|\bemail\b|mail`)
	paymentPattern     = regexp.MustCompile(`payment|paid|fees|fee|transaction|txn|amount`)
)

// InferenceConfig tunes header inference. PaymentColumn pins the payment
// column to a fixed 0-based index; Absent enables pattern detection.
type InferenceConfig struct {
	PaymentColumn int
}

// DefaultInferenceConfig returns the configuration used when nothing is
// overridden.
func DefaultInferenceConfig() InferenceConfig {
	return InferenceConfig{PaymentColumn: Absent}
}

// InferColumns builds a ColumnIndexMap from a raw header row. Matching is
// case-insensitive and order-independent; roles with no matching header are
// simply absent. An empty or missing header row yields a map with every role
// absent.
func InferColumns(headers []string, cfg InferenceConfig) ColumnIndexMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := make(ColumnIndexMap, len(DefaultRules)+3)

	for _, rule := range DefaultRules {
		cols[rule.Role] = indexOf(normalized, rule.Pattern)
	}

	cols[RoleTeamLeaderName] = inferTeamLeaderName(normalized)
	cols[RoleTeamLeaderEmail] = inferTeamLeaderEmail(normalized)
	cols[RolePayment] = inferPayment(normalized, cfg)

	return cols
}

func indexOf(headers []string, pattern *regexp.Regexp) int {
	for i, h := range headers {
		if h == "" {
			continue
		}
		if pattern.MatchString(h) {
			return i
		}
	}
	return Absent
}

// inferTeamLeaderName prefers explicit name-shaped headers over generic
// leader-like ones, so "Team Leader Name" beats a plain "Name" column.
func inferTeamLeaderName(headers []string) int {
	for _, cand := range leaderNameCandidates {
		for i, h := range headers {
			if strings.Contains(h, cand) && !strings.Contains(h, "email") {
				return i
			}
		}
	}
	for i, h := range headers {
		if leaderFallbackPattern.MatchString(h) && !strings.Contains(h, "email") {
			return i
		}
	}
	return Absent
}

func inferTeamLeaderEmail(headers []string) int {
	for i, h := range headers {
		if strings.Contains(h, "team leader email") || leaderEmailPattern.MatchString(h) {
			return i
		}
	}
	return Absent
}

func inferPayment(headers []string, cfg InferenceConfig) int {
	if cfg.PaymentColumn >= 0 {
		return cfg.PaymentColumn
	}
	return indexOf(headers, paymentPattern)
}
