package classify

import (
	"regexp"
	"strings"
)

// Category is a topical label attached to an email. Labels are not
// mutually exclusive; a single email may carry any subset of them.
type Category string

const (
	CategoryVinitaly   Category = "VINITALY"
	CategoryRocketbook Category = "ROCKETBOOK"
	CategoryInvoices   Category = "INVOICES"
	CategoryClients    Category = "CLIENTS"
	CategoryNewsletter Category = "NEWSLETTER"
	CategoryUrgent     Category = "URGENT"
)

// Categories lists every label in detection order. The order of labels
// on a categorized email always follows this sequence.
var Categories = []Category{
	CategoryVinitaly,
	CategoryRocketbook,
	CategoryInvoices,
	CategoryClients,
	CategoryNewsletter,
	CategoryUrgent,
}

// One pattern per category, tested independently. These keyword sets are
// deliberately not shared with the priority tiers in priority.go.
var patterns = map[Category]*regexp.Regexp{
	CategoryVinitaly:   regexp.MustCompile(`(?i)vinitaly|veronafiere|wine.*fair|expo.*vino|stand.*vinitaly|biglietto.*vinitaly`),
	CategoryRocketbook: regexp.MustCompile(`(?i)rocketbook|smart.*notebook|cloud.*notebook|scan.*rocketbook`),
	CategoryInvoices:   regexp.MustCompile(`(?i)fattura|invoice|payment|pagamento|ricevuta|receipt|bolletta|bill|fattura.*elettronica|sdi`),
	CategoryClients:    regexp.MustCompile(`(?i)cliente|client|ordine|order|preventivo|quote|progetto|project|commessa|lavorazione`),
	CategoryNewsletter: regexp.MustCompile(`(?i)newsletter|unsubscribe|promo|offerta|marketing|noreply|no-reply|mailing.*list`),
	CategoryUrgent:     regexp.MustCompile(`(?i)urgente|urgent|asap|immediately|immediatamente|importante|important|scadenza|deadline|oggi|today|entro.*domani`),
}

// Blob builds the lowercase text every matcher runs against.
func Blob(subject, from, body string) string {
	return strings.ToLower(subject + " " + from + " " + body)
}

// Categorize returns every category whose pattern matches the combined
// subject, sender and body text. All patterns are tried; the result may
// be empty or contain up to all six labels.
func Categorize(subject, from, body string) []Category {
	text := Blob(subject, from, body)

	var cats []Category
	for _, c := range Categories {
		if patterns[c].MatchString(text) {
			cats = append(cats, c)
		}
	}
	return cats
}

// Contains reports whether the label list carries the given category.
func Contains(cats []Category, c Category) bool {
	for _, cat := range cats {
		if cat == c {
			return true
		}
	}
	return false
}
