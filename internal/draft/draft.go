// Package draft produces canned reply suggestions for categorized email.
package draft

import (
	"github.com/mailbrief/mailbrief/internal/classify"
)

// Draft is a suggested reply.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Generator builds category-specific reply drafts signed with the
// configured sender name.
type Generator struct {
	senderName string
}

// NewGenerator creates a Generator. The sender name is a fixed
// configuration value, never derived from the email being answered.
func NewGenerator(senderName string) *Generator {
	return &Generator{senderName: senderName}
}

// Body templates keyed by category. Categories without a dedicated
// template fall back to the default salutation.
var bodies = map[classify.Category]string{
	classify.CategoryVinitaly:   "Gentile Team Vinitaly,\n\nGrazie per la vostra comunicazione riguardante l'evento.\n\nResto a disposizione per ulteriori informazioni.\n\nCordiali saluti,\n",
	classify.CategoryClients:    "Gentile Cliente,\n\nGrazie per averci contattato. Ho preso nota della sua richiesta e le risponderò nel dettaglio al più presto.\n\nResto a disposizione per qualsiasi chiarimento.\n\nCordiali saluti,\n",
	classify.CategoryInvoices:   "Gentile Ufficio Amministrazione,\n\nGrazie per l'invio della documentazione. Procederò con la verifica e le eventuali azioni necessarie.\n\nCordiali saluti,\n",
	classify.CategoryRocketbook: "Gentile Supporto Rocketbook,\n\nGrazie per il vostro messaggio.\n\nCordiali saluti,\n",
}

const defaultBody = "Gentile Mittente,\n\nGrazie per la vostra email.\n\nCordiali saluti,\n"

// Generate returns the canned reply for the given category, with the
// subject prefixed and the sender name appended to the closing.
func (g *Generator) Generate(subject string, category classify.Category) Draft {
	body, ok := bodies[category]
	if !ok {
		body = defaultBody
	}
	return Draft{
		Subject: "Re: " + subject,
		Body:    body + g.senderName,
	}
}
