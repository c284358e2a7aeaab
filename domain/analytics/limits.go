package analytics

import "strings"

// DefaultMultiplier is the capacity denominator for events with no explicit
// or keyword-matched entry.
const DefaultMultiplier = 100

// KeywordLimit maps a substring of an event name to a capacity multiplier.
type KeywordLimit struct {
	Keyword    string
	Multiplier int
}

// LimitTable is a static mapping from event names to capacity multipliers.
// It only feeds the score/ratio display; it never caps registrations.
type LimitTable struct {
	exact    map[string]int
	keywords []KeywordLimit
	def      int
}

// NewLimitTable builds a table with explicit per-event entries, an ordered
// keyword fallback list, and a default multiplier.
func NewLimitTable(exact map[string]int, keywords []KeywordLimit, def int) LimitTable {
	normalized := make(map[string]int, len(exact))
	for name, mult := range exact {
		normalized[normalizeEventName(name)] = mult
	}
	if def <= 0 {
		def = DefaultMultiplier
	}
	return LimitTable{exact: normalized, keywords: keywords, def: def}
}

// DefaultLimits carries the known special-event capacities; everything else
// falls through to DefaultMultiplier.
func DefaultLimits() LimitTable {
	return NewLimitTable(nil, []KeywordLimit{
		{Keyword: "hackathon", Multiplier: 300},
		{Keyword: "ideathon", Multiplier: 200},
		{Keyword: "workshop", Multiplier: 150},
	}, DefaultMultiplier)
}

// Multiplier resolves an event's capacity: exact match first, then keyword
// substring fallback, else the default.
func (t LimitTable) Multiplier(event string) int {
	name := normalizeEventName(event)
	if mult, ok := t.exact[name]; ok && mult > 0 {
		return mult
	}
	for _, kw := range t.keywords {
		if strings.Contains(name, kw.Keyword) && kw.Multiplier > 0 {
			return kw.Multiplier
		}
	}
	return t.def
}

func normalizeEventName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
