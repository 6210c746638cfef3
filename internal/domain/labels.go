package domain

// Display labels for the dashboard's French locale. Each enumeration has a
// single lookup table owned here so exports and views cannot drift apart.

var statusLabels = map[TransactionStatus]string{
	StatusCompleted: "Complétée",
	StatusPending:   "En attente",
	StatusFailed:    "Échouée",
	StatusCancelled: "Annulée",
}

var typeLabels = map[TransactionType]string{
	TypePayment:    "Paiement",
	TypeRefund:     "Remboursement",
	TypeTransfer:   "Transfert",
	TypeWithdrawal: "Retrait",
	TypeDeposit:    "Dépôt",
}

// Label returns the human-readable status label, falling back to the raw
// enum value for anything outside the closed set.
func (s TransactionStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Label returns the human-readable type label, falling back to the raw enum
// value for anything outside the closed set.
func (t TransactionType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}
