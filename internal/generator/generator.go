package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// Dataset contains the generated transactions.
type Dataset struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// Generator produces synthetic transactions shaped like the dashboard's demo
// data. Generation is deterministic for a fixed seed.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = DefaultConfig().NumTransactions
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultConfig().Currency
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

var (
	firstNames = []string{
		"Jean", "Marie", "Pierre", "Sophie", "Luc", "Claire", "Thomas",
		"Isabelle", "Antoine", "Camille", "Nicolas", "Julie", "Paul", "Élise",
	}
	lastNames = []string{
		"Dupont", "Martin", "Bernard", "Laurent", "Moreau", "Petit", "Roux",
		"Dubois", "Simon", "Leroy", "Garnier", "Girard", "Lefèvre", "Mercier",
	}
	paymentMethods = []string{
		"Carte de crédit", "Virement bancaire", "PayPal", "ATM",
	}
	transactionTypes = []domain.TransactionType{
		domain.TypePayment, domain.TypeRefund, domain.TypeTransfer,
		domain.TypeWithdrawal, domain.TypeDeposit,
	}
	descriptionsByType = map[domain.TransactionType][]string{
		domain.TypePayment: {
			"Payment for web development services",
			"Monthly subscription payment",
			"E-commerce purchase",
			"Consulting services payment",
			"Software license renewal",
		},
		domain.TypeRefund: {
			"Refund for cancelled order",
			"Refund for returned goods",
		},
		domain.TypeTransfer: {
			"Transfer to vendor account",
			"Large transfer for business expenses",
		},
		domain.TypeWithdrawal: {
			"Cash withdrawal",
		},
		domain.TypeDeposit: {
			"Initial deposit",
			"Account top-up",
		},
	}
)

// Generate synthesises transactions. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	now := time.Now().UTC().Truncate(time.Minute)
	year := now.Year()

	transactions := make([]domain.Transaction, g.cfg.NumTransactions)
	for i := 0; i < g.cfg.NumTransactions; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		txType := transactionTypes[g.rand.Intn(len(transactionTypes))]
		descriptions := descriptionsByType[txType]
		firstName := firstNames[g.rand.Intn(len(firstNames))]
		lastName := lastNames[g.rand.Intn(len(lastNames))]

		transactions[i] = domain.Transaction{
			ID:          fmt.Sprintf("TXN-%03d", i+1),
			Date:        now.Add(-time.Duration(g.rand.Intn(90*24*60)) * time.Minute),
			Amount:      float64(g.rand.Intn(500000)+1000) / 100,
			Currency:    g.cfg.Currency,
			Type:        txType,
			Status:      g.randomStatus(),
			Description: descriptions[g.rand.Intn(len(descriptions))],
			Customer: domain.Customer{
				Name:  firstName + " " + lastName,
				Email: emailFor(firstName, lastName),
			},
			PaymentMethod: paymentMethods[g.rand.Intn(len(paymentMethods))],
			Reference:     fmt.Sprintf("REF-%d-%03d", year, i+1),
		}
	}

	return Dataset{Transactions: transactions}, nil
}

// randomStatus skews toward completed records so aggregate views look like
// real traffic rather than uniform noise.
func (g *Generator) randomStatus() domain.TransactionStatus {
	switch roll := g.rand.Float64(); {
	case roll < 0.6:
		return domain.StatusCompleted
	case roll < 0.8:
		return domain.StatusPending
	case roll < 0.92:
		return domain.StatusFailed
	default:
		return domain.StatusCancelled
	}
}

func emailFor(firstName, lastName string) string {
	normalize := func(s string) string {
		replacer := strings.NewReplacer("é", "e", "è", "e", "ê", "e", "ï", "i", "ç", "c")
		return replacer.Replace(strings.ToLower(s))
	}
	return fmt.Sprintf("%s.%s@example.com", normalize(firstName), normalize(lastName))
}
