package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ldurand/paydash/backend/internal/domain"
	"github.com/ldurand/paydash/backend/internal/graph"
)

// GraphSource serves the transaction source contract from a Bolt-compatible
// graph database. It exists so the mock in-memory source and a real backend
// stay interchangeable without touching the filter or aggregation logic.
type GraphSource struct {
	client graph.Client
}

// NewGraphSource wraps the provided graph client.
func NewGraphSource(client graph.Client) *GraphSource {
	return &GraphSource{client: client}
}

const listTransactionsCypher = `
MATCH (t:Transaction)
RETURN t.id AS id,
       t.date AS date,
       t.amount AS amount,
       t.currency AS currency,
       t.type AS type,
       t.status AS status,
       t.description AS description,
       t.customerName AS customerName,
       t.customerEmail AS customerEmail,
       t.paymentMethod AS paymentMethod,
       t.reference AS reference
ORDER BY t.date DESC
`

const getTransactionByIDCypher = `
MATCH (t:Transaction {id: $id})
RETURN t.id AS id,
       t.date AS date,
       t.amount AS amount,
       t.currency AS currency,
       t.type AS type,
       t.status AS status,
       t.description AS description,
       t.customerName AS customerName,
       t.customerEmail AS customerEmail,
       t.paymentMethod AS paymentMethod,
       t.reference AS reference
LIMIT 1
`

const getTransactionByReferenceCypher = `
MATCH (t:Transaction {reference: $reference})
RETURN t.id AS id,
       t.date AS date,
       t.amount AS amount,
       t.currency AS currency,
       t.type AS type,
       t.status AS status,
       t.description AS description,
       t.customerName AS customerName,
       t.customerEmail AS customerEmail,
       t.paymentMethod AS paymentMethod,
       t.reference AS reference
LIMIT 1
`

const upsertTransactionCypher = `
MERGE (t:Transaction {id: $id})
SET t += $props
`

// List returns every stored transaction.
func (s *GraphSource) List(ctx context.Context) ([]domain.Transaction, error) {
	res, err := s.client.ExecuteRead(ctx, listTransactionsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	transactions := make([]domain.Transaction, 0, len(res.Records))
	for _, rec := range res.Records {
		transactions = append(transactions, recordToTransaction(rec))
	}
	return transactions, nil
}

// GetByID returns the transaction with the given ID, or nil when absent.
func (s *GraphSource) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if id == "" {
		return nil, errors.New("transaction id is required")
	}

	res, err := s.client.ExecuteRead(ctx, getTransactionByIDCypher, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	if len(res.Records) == 0 {
		return nil, nil
	}

	tx := recordToTransaction(res.Records[0])
	return &tx, nil
}

// GetByReference returns the transaction with the given external reference,
// or nil when absent.
func (s *GraphSource) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	if reference == "" {
		return nil, errors.New("transaction reference is required")
	}

	res, err := s.client.ExecuteRead(ctx, getTransactionByReferenceCypher, map[string]any{"reference": reference})
	if err != nil {
		return nil, fmt.Errorf("get transaction by reference %s: %w", reference, err)
	}
	if len(res.Records) == 0 {
		return nil, nil
	}

	tx := recordToTransaction(res.Records[0])
	return &tx, nil
}

// Upsert writes a transaction node. Used by the ingest tooling only; the
// serving path never mutates the store.
func (s *GraphSource) Upsert(ctx context.Context, tx domain.Transaction) error {
	if tx.ID == "" {
		return errors.New("transaction id is required")
	}
	if !tx.Type.Valid() {
		return fmt.Errorf("transaction %s: unknown type %q", tx.ID, tx.Type)
	}
	if !tx.Status.Valid() {
		return fmt.Errorf("transaction %s: unknown status %q", tx.ID, tx.Status)
	}

	params := map[string]any{
		"id": tx.ID,
		"props": map[string]any{
			"id":            tx.ID,
			"date":          tx.Date.UTC().Format(time.RFC3339),
			"amount":        tx.Amount,
			"currency":      tx.Currency,
			"type":          string(tx.Type),
			"status":        string(tx.Status),
			"description":   tx.Description,
			"customerName":  tx.Customer.Name,
			"customerEmail": tx.Customer.Email,
			"paymentMethod": tx.PaymentMethod,
			"reference":     tx.Reference,
		},
	}

	if _, err := s.client.ExecuteWrite(ctx, upsertTransactionCypher, params); err != nil {
		return fmt.Errorf("upsert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Probe verifies graph connectivity for health checks.
func (s *GraphSource) Probe(ctx context.Context) error {
	return s.client.VerifyConnectivity(ctx)
}

// Close releases the underlying driver.
func (s *GraphSource) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

func recordToTransaction(rec graph.Record) domain.Transaction {
	return domain.Transaction{
		ID:          toString(rec["id"]),
		Date:        toTime(rec["date"]),
		Amount:      toFloat64(rec["amount"]),
		Currency:    toString(rec["currency"]),
		Type:        domain.TransactionType(toString(rec["type"])),
		Status:      domain.TransactionStatus(toString(rec["status"])),
		Description: toString(rec["description"]),
		Customer: domain.Customer{
			Name:  toString(rec["customerName"]),
			Email: toString(rec["customerEmail"]),
		},
		PaymentMethod: toString(rec["paymentMethod"]),
		Reference:     toString(rec["reference"]),
	}
}

func toString(val any) string {
	if val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func toTime(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
	}
	return time.Time{}
}
