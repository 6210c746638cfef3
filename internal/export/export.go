// Package export renders transaction collections into the document formats
// the dashboard offers for download: CSV, spreadsheet, PDF, plain tables,
// and a statistics chart. Formatting targets the dashboard's French locale.
package export

import (
	"fmt"
	"time"

	"github.com/ldurand/paydash/backend/internal/domain"
)

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04:05"
)

var fullHeaders = []string{
	"ID",
	"Date",
	"Heure",
	"Client",
	"Email",
	"Type",
	"Montant",
	"Devise",
	"Statut",
	"Méthode de paiement",
	"Description",
	"Référence",
}

var compactHeaders = []string{
	"ID",
	"Date",
	"Client",
	"Type",
	"Montant",
	"Statut",
	"Méthode",
	"Référence",
}

func fullRow(tx domain.Transaction) []string {
	return []string{
		tx.ID,
		tx.Date.Format(dateLayout),
		tx.Date.Format(timeLayout),
		tx.Customer.Name,
		tx.Customer.Email,
		tx.Type.Label(),
		fmt.Sprintf("%.2f", tx.Amount),
		tx.Currency,
		tx.Status.Label(),
		tx.PaymentMethod,
		tx.Description,
		tx.Reference,
	}
}

func compactRow(tx domain.Transaction) []string {
	return []string{
		tx.ID,
		tx.Date.Format(dateLayout),
		tx.Customer.Name,
		tx.Type.Label(),
		fmt.Sprintf("%.2f %s", tx.Amount, tx.Currency),
		tx.Status.Label(),
		tx.PaymentMethod,
		tx.Reference,
	}
}

func exportDate(now time.Time) string {
	return now.Format(dateLayout)
}
