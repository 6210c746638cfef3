package domain

import "time"

// TransactionType is the closed set of supported transaction kinds.
type TransactionType string

const (
	TypePayment    TransactionType = "PAYMENT"
	TypeRefund     TransactionType = "REFUND"
	TypeTransfer   TransactionType = "TRANSFER"
	TypeWithdrawal TransactionType = "WITHDRAWAL"
	TypeDeposit    TransactionType = "DEPOSIT"
)

// TransactionStatus is the closed set of transaction lifecycle states.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Valid reports whether the type belongs to the closed enumeration.
func (t TransactionType) Valid() bool {
	switch t {
	case TypePayment, TypeRefund, TypeTransfer, TypeWithdrawal, TypeDeposit:
		return true
	}
	return false
}

// Valid reports whether the status belongs to the closed enumeration.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Customer is the embedded counterparty of a transaction. It has no identity
// or lifecycle of its own.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Transaction models a single transaction record. Records are immutable once
// the store is populated; ID and Reference are each unique within a store.
// Amount is interpreted together with Currency; no cross-currency arithmetic
// is performed anywhere.
type Transaction struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	Customer      Customer          `json:"customer"`
	PaymentMethod string            `json:"paymentMethod"`
	Reference     string            `json:"reference"`
}

// Stats summarises a transaction collection. CANCELLED records count toward
// Total but carry no dedicated field; TotalAmount sums COMPLETED amounts only,
// across currencies without conversion.
type Stats struct {
	Total       int     `json:"total"`
	Pending     int     `json:"pending"`
	Completed   int     `json:"completed"`
	Failed      int     `json:"failed"`
	TotalAmount float64 `json:"totalAmount"`
}
