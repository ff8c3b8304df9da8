// Package report folds a batch of emails into an inbox report:
// per-category counts, priority buckets, suggested reply drafts and
// follow-up action lists.
package report

import (
	"time"

	"github.com/mailbrief/mailbrief/internal/classify"
	"github.com/mailbrief/mailbrief/internal/draft"
	"github.com/mailbrief/mailbrief/internal/email"
)

// CategorizedEmail is one processed email with its derived labels.
type CategorizedEmail struct {
	email.Record
	Categories     []classify.Category `json:"categories"`
	Priority       classify.Priority   `json:"priority"`
	Snippet        string              `json:"snippet"`
	SuggestedDraft *draft.Draft        `json:"suggestedDraft,omitempty"`
}

// DraftEntry is the summary-level view of a suggested draft. Draft
// points at the same value as the email's SuggestedDraft.
type DraftEntry struct {
	ID       string            `json:"id"`
	Subject  string            `json:"subject"`
	Category classify.Category `json:"category"`
	Draft    *draft.Draft      `json:"draft"`
}

// ByPriority partitions every email into exactly one bucket.
type ByPriority struct {
	High   []*CategorizedEmail `json:"HIGH"`
	Medium []*CategorizedEmail `json:"MEDIUM"`
	Low    []*CategorizedEmail `json:"LOW"`
}

// Summary holds the aggregate counters and cross-cutting views.
type Summary struct {
	Total      int                       `json:"total"`
	Categories map[classify.Category]int `json:"categories"`
	Urgent     []*CategorizedEmail       `json:"urgent"`
	Drafts     []DraftEntry              `json:"drafts"`
	ByPriority ByPriority                `json:"byPriority"`
}

// Actions groups emails by suggested follow-up. The buckets are not
// exclusive of each other: an email in ToReply may also sit in ToReview.
type Actions struct {
	ToReply   []*CategorizedEmail `json:"toReply"`
	ToArchive []*CategorizedEmail `json:"toArchive"`
	ToReview  []*CategorizedEmail `json:"toReview"`
}

// Report is the full result of one analysis run.
type Report struct {
	Timestamp   string              `json:"timestamp"`
	GeneratedAt string              `json:"generatedAt"`
	Account     string              `json:"account"`
	Summary     Summary             `json:"summary"`
	Details     []*CategorizedEmail `json:"details"`
	Actions     Actions             `json:"actions"`
}

// replyOrder is the precedence used to pick the draft template. It is a
// distinct sequence from the detection order in classify.Categories and
// must stay that way.
var replyOrder = []classify.Category{
	classify.CategoryVinitaly,
	classify.CategoryClients,
	classify.CategoryInvoices,
	classify.CategoryRocketbook,
}

// Builder turns email batches into Reports.
type Builder struct {
	account string
	drafts  *draft.Generator
	loc     *time.Location
}

// NewBuilder creates a Builder for the given mailbox account. The sender
// name is used to sign suggested drafts.
func NewBuilder(account, senderName string) *Builder {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		loc = time.UTC
	}
	return &Builder{
		account: account,
		drafts:  draft.NewGenerator(senderName),
		loc:     loc,
	}
}

// Build processes the batch in a single pass, in input order. Two calls
// on the same input produce identical reports apart from the timestamp
// fields.
func (b *Builder) Build(emails []email.Record) *Report {
	now := time.Now()
	r := &Report{
		Timestamp:   now.UTC().Format(time.RFC3339),
		GeneratedAt: now.In(b.loc).Format("02/01/2006, 15:04:05"),
		Account:     b.account,
		Summary: Summary{
			Total:      len(emails),
			Categories: map[classify.Category]int{},
			Urgent:     []*CategorizedEmail{},
			Drafts:     []DraftEntry{},
			ByPriority: ByPriority{
				High:   []*CategorizedEmail{},
				Medium: []*CategorizedEmail{},
				Low:    []*CategorizedEmail{},
			},
		},
		Details: []*CategorizedEmail{},
		Actions: Actions{
			ToReply:   []*CategorizedEmail{},
			ToArchive: []*CategorizedEmail{},
			ToReview:  []*CategorizedEmail{},
		},
	}

	for _, rec := range emails {
		cats := classify.Categorize(rec.Subject, rec.From, rec.Body)
		prio := classify.Prioritize(rec.Subject, rec.From, rec.Body)

		for _, c := range cats {
			r.Summary.Categories[c]++
		}

		e := &CategorizedEmail{
			Record:     rec,
			Categories: cats,
			Priority:   prio,
			Snippet:    rec.Snippet(),
		}

		// Suggest a reply for the first draft-eligible category, unless
		// the email also looks like a newsletter.
		if main, ok := mainCategory(cats); ok && !classify.Contains(cats, classify.CategoryNewsletter) {
			d := b.drafts.Generate(rec.Subject, main)
			e.SuggestedDraft = &d
			r.Summary.Drafts = append(r.Summary.Drafts, DraftEntry{
				ID:       rec.ID,
				Subject:  rec.Subject,
				Category: main,
				Draft:    e.SuggestedDraft,
			})
			r.Actions.ToReply = append(r.Actions.ToReply, e)
		}

		if classify.Contains(cats, classify.CategoryUrgent) || prio == classify.PriorityHigh {
			r.Summary.Urgent = append(r.Summary.Urgent, e)
		}

		switch prio {
		case classify.PriorityHigh:
			r.Summary.ByPriority.High = append(r.Summary.ByPriority.High, e)
		case classify.PriorityMedium:
			r.Summary.ByPriority.Medium = append(r.Summary.ByPriority.Medium, e)
		default:
			r.Summary.ByPriority.Low = append(r.Summary.ByPriority.Low, e)
		}

		if classify.Contains(cats, classify.CategoryNewsletter) && prio == classify.PriorityLow {
			r.Actions.ToArchive = append(r.Actions.ToArchive, e)
		} else if classify.Contains(cats, classify.CategoryInvoices) {
			r.Actions.ToReview = append(r.Actions.ToReview, e)
		}

		r.Details = append(r.Details, e)
	}

	return r
}

// mainCategory returns the first category, in reply precedence order,
// that the email carries.
func mainCategory(cats []classify.Category) (classify.Category, bool) {
	for _, c := range replyOrder {
		if classify.Contains(cats, c) {
			return c, true
		}
	}
	return "", false
}

// CategoryCount is one entry of the rendered category tally.
type CategoryCount struct {
	Category classify.Category
	Count    int
}

// CategoryTally returns the non-zero category counters in detection
// order, so rendering stays byte-stable.
func (r *Report) CategoryTally() []CategoryCount {
	var tally []CategoryCount
	for _, c := range classify.Categories {
		if n := r.Summary.Categories[c]; n > 0 {
			tally = append(tally, CategoryCount{Category: c, Count: n})
		}
	}
	return tally
}
