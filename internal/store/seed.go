package store

import (
	"time"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// SeedTransactions returns the built-in demo dataset used when no external
// dataset or graph backend is configured.
func SeedTransactions() []domain.Transaction {
	return []domain.Transaction{
		{
			ID:            "TXN-001",
			Date:          time.Date(2025, 10, 28, 10, 30, 0, 0, time.UTC),
			Amount:        1250.50,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCompleted,
			Description:   "Payment for web development services",
			Customer:      domain.Customer{Name: "Jean Dupont", Email: "jean.dupont@example.com"},
			PaymentMethod: "Carte de crédit",
			Reference:     "REF-2025-001",
		},
		{
			ID:            "TXN-002",
			Date:          time.Date(2025, 10, 28, 14, 15, 0, 0, time.UTC),
			Amount:        3500.00,
			Currency:      "EUR",
			Type:          domain.TypeTransfer,
			Status:        domain.StatusPending,
			Description:   "Transfer to vendor account",
			Customer:      domain.Customer{Name: "Marie Martin", Email: "marie.martin@example.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-002",
		},
		{
			ID:            "TXN-003",
			Date:          time.Date(2025, 10, 27, 9, 45, 0, 0, time.UTC),
			Amount:        450.75,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCompleted,
			Description:   "Monthly subscription payment",
			Customer:      domain.Customer{Name: "Pierre Bernard", Email: "pierre.bernard@example.com"},
			PaymentMethod: "PayPal",
			Reference:     "REF-2025-003",
		},
		{
			ID:            "TXN-004",
			Date:          time.Date(2025, 10, 27, 16, 20, 0, 0, time.UTC),
			Amount:        125.00,
			Currency:      "EUR",
			Type:          domain.TypeRefund,
			Status:        domain.StatusCompleted,
			Description:   "Refund for cancelled order",
			Customer:      domain.Customer{Name: "Sophie Laurent", Email: "sophie.laurent@example.com"},
			PaymentMethod: "Carte de crédit",
			Reference:     "REF-2025-004",
		},
		{
			ID:            "TXN-005",
			Date:          time.Date(2025, 10, 26, 11, 0, 0, 0, time.UTC),
			Amount:        2800.00,
			Currency:      "EUR",
			Type:          domain.TypeDeposit,
			Status:        domain.StatusCompleted,
			Description:   "Initial deposit",
			Customer:      domain.Customer{Name: "Luc Moreau", Email: "luc.moreau@example.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-005",
		},
		{
			ID:            "TXN-006",
			Date:          time.Date(2025, 10, 26, 13, 30, 0, 0, time.UTC),
			Amount:        950.25,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusFailed,
			Description:   "Payment attempt - insufficient funds",
			Customer:      domain.Customer{Name: "Claire Petit", Email: "claire.petit@example.com"},
			PaymentMethod: "Carte de crédit",
			Reference:     "REF-2025-006",
		},
		{
			ID:            "TXN-007",
			Date:          time.Date(2025, 10, 25, 15, 45, 0, 0, time.UTC),
			Amount:        5200.00,
			Currency:      "EUR",
			Type:          domain.TypeTransfer,
			Status:        domain.StatusCompleted,
			Description:   "Large transfer for business expenses",
			Customer:      domain.Customer{Name: "Thomas Roux", Email: "thomas.roux@example.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-007",
		},
		{
			ID:            "TXN-008",
			Date:          time.Date(2025, 10, 25, 10, 15, 0, 0, time.UTC),
			Amount:        320.50,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCancelled,
			Description:   "Cancelled by customer",
			Customer:      domain.Customer{Name: "Isabelle Dubois", Email: "isabelle.dubois@example.com"},
			PaymentMethod: "PayPal",
			Reference:     "REF-2025-008",
		},
		{
			ID:            "TXN-009",
			Date:          time.Date(2025, 10, 24, 12, 0, 0, 0, time.UTC),
			Amount:        1500.00,
			Currency:      "EUR",
			Type:          domain.TypeWithdrawal,
			Status:        domain.StatusCompleted,
			Description:   "Cash withdrawal",
			Customer:      domain.Customer{Name: "Antoine Simon", Email: "antoine.simon@example.com"},
			PaymentMethod: "ATM",
			Reference:     "REF-2025-009",
		},
		{
			ID:            "TXN-010",
			Date:          time.Date(2025, 10, 24, 8, 30, 0, 0, time.UTC),
			Amount:        675.80,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCompleted,
			Description:   "E-commerce purchase",
			Customer:      domain.Customer{Name: "Camille Leroy", Email: "camille.leroy@example.com"},
			PaymentMethod: "Carte de crédit",
			Reference:     "REF-2025-010",
		},
		{
			ID:            "TXN-011",
			Date:          time.Date(2025, 10, 23, 14, 20, 0, 0, time.UTC),
			Amount:        2100.00,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusPending,
			Description:   "Consulting services payment",
			Customer:      domain.Customer{Name: "Nicolas Garnier", Email: "nicolas.garnier@example.com"},
			PaymentMethod: "Virement bancaire",
			Reference:     "REF-2025-011",
		},
		{
			ID:            "TXN-012",
			Date:          time.Date(2025, 10, 23, 11, 45, 0, 0, time.UTC),
			Amount:        890.00,
			Currency:      "EUR",
			Type:          domain.TypePayment,
			Status:        domain.StatusCompleted,
			Description:   "Software license renewal",
			Customer:      domain.Customer{Name: "Julie Girard", Email: "julie.girard@example.com"},
			PaymentMethod: "Carte de crédit",
			Reference:     "REF-2025-012",
		},
	}
}
