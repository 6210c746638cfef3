package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// MemorySource serves the dashboard from an in-memory collection. The
// collection is populated once at construction and read-only afterwards;
// every read hands back a fresh slice so callers never share mutable state.
type MemorySource struct {
	transactions []domain.Transaction
}

// NewMemorySource builds a source from the provided records, enforcing the
// store invariants: valid enum values and unique IDs and references.
func NewMemorySource(transactions []domain.Transaction) (*MemorySource, error) {
	seenIDs := make(map[string]struct{}, len(transactions))
	seenRefs := make(map[string]struct{}, len(transactions))

	for _, tx := range transactions {
		if tx.ID == "" {
			return nil, fmt.Errorf("transaction with reference %q has no ID", tx.Reference)
		}
		if !tx.Type.Valid() {
			return nil, fmt.Errorf("transaction %s: unknown type %q", tx.ID, tx.Type)
		}
		if !tx.Status.Valid() {
			return nil, fmt.Errorf("transaction %s: unknown status %q", tx.ID, tx.Status)
		}
		if _, dup := seenIDs[tx.ID]; dup {
			return nil, fmt.Errorf("duplicate transaction ID %s", tx.ID)
		}
		seenIDs[tx.ID] = struct{}{}
		if tx.Reference != "" {
			if _, dup := seenRefs[tx.Reference]; dup {
				return nil, fmt.Errorf("duplicate transaction reference %s", tx.Reference)
			}
			seenRefs[tx.Reference] = struct{}{}
		}
	}

	records := make([]domain.Transaction, len(transactions))
	copy(records, transactions)
	return &MemorySource{transactions: records}, nil
}

// NewMemorySourceFromFile loads a JSON dataset produced by the datagen tool.
func NewMemorySourceFromFile(path string) (*MemorySource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var dataset struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return NewMemorySource(dataset.Transactions)
}

// List returns every record in original order.
func (s *MemorySource) List(context.Context) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// GetByID returns the first record with a matching ID, or nil when absent.
func (s *MemorySource) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	for _, tx := range s.transactions {
		if tx.ID == id {
			found := tx
			return &found, nil
		}
	}
	return nil, nil
}

// GetByReference returns the first record with a matching external reference,
// or nil when absent. References back detail views reached through shareable
// URLs, so they are looked up independently of IDs.
func (s *MemorySource) GetByReference(_ context.Context, reference string) (*domain.Transaction, error) {
	for _, tx := range s.transactions {
		if tx.Reference == reference {
			found := tx
			return &found, nil
		}
	}
	return nil, nil
}

// Probe implements the health contract; an in-memory source is always ready.
func (s *MemorySource) Probe(context.Context) error {
	return nil
}

// Close satisfies the source contract; nothing to release.
func (s *MemorySource) Close(context.Context) error {
	return nil
}
