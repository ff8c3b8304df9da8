package classify

import "strings"

// Priority is the three-level urgency classification of an email.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Priorities lists every level, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Keyword tiers for priority scoring. These are matched by plain
// substring containment, each keyword counting at most once, and are an
// independent set from the category patterns above: an email can match
// the INVOICES pattern without hitting any high-tier keyword.
var (
	highKeywords   = []string{"urgente", "scadenza", "fattura", "pagamento", "cliente", "ordine", "preventivo"}
	mediumKeywords = []string{"vinitaly", "rocketbook", "progetto", "appuntamento"}
	lowKeywords    = []string{"newsletter", "promo", "marketing"}
)

const (
	highWeight   = 3
	mediumWeight = 2
	lowWeight    = -1

	highThreshold   = 3
	mediumThreshold = 1
)

// Prioritize scores the combined subject, sender and body text against
// the keyword tiers and maps the score to a priority level.
func Prioritize(subject, from, body string) Priority {
	text := Blob(subject, from, body)

	score := 0
	for _, kw := range highKeywords {
		if strings.Contains(text, kw) {
			score += highWeight
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(text, kw) {
			score += mediumWeight
		}
	}
	for _, kw := range lowKeywords {
		if strings.Contains(text, kw) {
			score += lowWeight
		}
	}

	switch {
	case score >= highThreshold:
		return PriorityHigh
	case score >= mediumThreshold:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
