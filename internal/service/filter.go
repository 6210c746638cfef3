package service

import (
	"strings"
	"time"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// TransactionFilter is a transient query value. A zero field means "no
// constraint on this dimension"; present fields combine conjunctively.
type TransactionFilter struct {
	Status     domain.TransactionStatus
	Type       domain.TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchTerm string
}

// IsZero reports whether the filter constrains nothing.
func (f TransactionFilter) IsZero() bool {
	return f.Status == "" && f.Type == "" && f.DateFrom == nil && f.DateTo == nil && f.SearchTerm == ""
}

// ApplyFilter evaluates the filter over the collection, returning a new slice
// that references the same immutable records. The input is never mutated and
// original order is preserved. A nil filter returns a copy of everything.
// An inverted date range simply matches nothing; it is not an error.
func ApplyFilter(all []domain.Transaction, filter *TransactionFilter) []domain.Transaction {
	if filter == nil {
		out := make([]domain.Transaction, len(all))
		copy(out, all)
		return out
	}

	term := strings.ToLower(filter.SearchTerm)
	out := make([]domain.Transaction, 0, len(all))
	for _, tx := range all {
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.DateFrom != nil && tx.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && tx.Date.After(*filter.DateTo) {
			continue
		}
		if term != "" && !matchesTerm(tx, term) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// matchesTerm reports whether any searchable field contains the lowercased
// term: ID, description, customer name, customer email, or reference.
func matchesTerm(tx domain.Transaction, term string) bool {
	fields := [...]string{
		tx.ID,
		tx.Description,
		tx.Customer.Name,
		tx.Customer.Email,
		tx.Reference,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
