package models

// TransactionType tells whether money left (DEBIT) or entered (CREDIT) an account.
// Amounts are always stored positive; the sign is implied by the type.
type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusScheduled TransactionStatus = "scheduled"
)

// Transaction represents a single bank movement
type Transaction struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	AmountRial  int64             `json:"amountRial"` // Always positive, see Type
	Type        TransactionType   `json:"type"`
	Date        string            `json:"date"` // Local calendar date, e.g. 1402/09/13
	Category    string            `json:"category"`
	BankID      string            `json:"bankId,omitempty"` // Weak reference to BankAccount.ID
	Status      TransactionStatus `json:"status,omitempty"`
}

// SignedAmount returns the amount with its direction applied (credits positive)
func (t Transaction) SignedAmount() int64 {
	if t.Type == TransactionDebit {
		return -t.AmountRial
	}
	return t.AmountRial
}
