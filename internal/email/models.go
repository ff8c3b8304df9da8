package email

// Address represents an email address with optional name
type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// String returns the formatted address
func (a Address) String() string {
	if a.Name != "" {
		return a.Name + " <" + a.Address + ">"
	}
	return a.Address
}

// Record is a single inbound email as supplied by the caller.
// Date is carried through for display only and never interpreted.
type Record struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Body    string `json:"body,omitempty"`
}

// snippetLength is the number of characters of body kept for display.
const snippetLength = 200

// Snippet returns the first part of the body with an ellipsis marker, or
// an empty string when the record has no body. Counted in runes so
// accented text is never cut mid-character.
func (r Record) Snippet() string {
	if r.Body == "" {
		return ""
	}
	runes := []rune(r.Body)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes) + "..."
}
