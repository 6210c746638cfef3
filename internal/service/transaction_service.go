package service

import (
	"context"
	"fmt"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// TransactionSource is the data-source contract required by the service. The
// in-memory mock and the graph-backed source are interchangeable behind it.
type TransactionSource interface {
	List(ctx context.Context) ([]domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
}

// TransactionService answers the dashboard's queries: filtered listings,
// single-record lookups, and aggregate statistics. It performs no writes.
type TransactionService struct {
	source TransactionSource
}

// NewTransactionService constructs a TransactionService over the given source.
func NewTransactionService(source TransactionSource) *TransactionService {
	return &TransactionService{source: source}
}

// List returns the transactions matching the filter, in store order. A nil
// filter returns every record.
func (s *TransactionService) List(ctx context.Context, filter *TransactionFilter) ([]domain.Transaction, error) {
	all, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return ApplyFilter(all, filter), nil
}

// Get returns the transaction with the given ID, or nil when no record
// matches. Absence is a valid outcome, not an error.
func (s *TransactionService) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.source.GetByID(ctx, id)
}

// GetByReference returns the transaction carrying the given external
// reference, or nil when no record matches. Detail views reached through
// shareable URLs key off the reference rather than the internal ID.
func (s *TransactionService) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	return s.source.GetByReference(ctx, reference)
}

// Stats aggregates over the full unfiltered collection. CANCELLED records
// contribute to Total only; TotalAmount covers the COMPLETED subset.
func (s *TransactionService) Stats(ctx context.Context) (domain.Stats, error) {
	all, err := s.source.List(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("load transactions for stats: %w", err)
	}

	stats := domain.Stats{Total: len(all)}
	for _, tx := range all {
		switch tx.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusCompleted:
			stats.Completed++
			stats.TotalAmount += tx.Amount
		case domain.StatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}
