package assistant

import (
	"time"

	"github.com/mailbrief/mailbrief/internal/email"
)

// DemoEmails returns the sample batch used by the triggered run when no
// real mailbox feed is wired up.
func DemoEmails() []email.Record {
	now := time.Now().UTC().Format(time.RFC3339)

	return []email.Record{
		{
			ID:      "1",
			Subject: "Conferma partecipazione Vinitaly 2025 - Stand VeronaFiere",
			From:    "eventi@veronafiere.it",
			Date:    now,
			Body:    "Buongiorno, confermiamo la sua partecipazione a Vinitaly 2025.",
		},
		{
			ID:      "2",
			Subject: "Rocketbook: Nuove funzionalità disponibili",
			From:    "support@getrocketbook.com",
			Date:    now,
			Body:    "Scopri le nuove funzionalità di Rocketbook.",
		},
		{
			ID:      "3",
			Subject: "Fattura Elettronica n. 2025/042 - Scadenza pagamento",
			From:    "fatture@fornitore.it",
			Date:    now,
			Body:    "In allegato la fattura elettronica con scadenza.",
		},
		{
			ID:      "4",
			Subject: "Richiesta preventivo per nuovo progetto",
			From:    "cliente@azienda.com",
			Date:    now,
			Body:    "Buongiorno, vorremmo ricevere un preventivo.",
		},
		{
			ID:      "5",
			Subject: "Newsletter settimanale - Offerte speciali",
			From:    "newsletter@negozio.com",
			Date:    now,
			Body:    "Scopri le nostre offerte speciali!",
		},
	}
}
