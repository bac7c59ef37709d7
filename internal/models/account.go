package models

// BankAccount holds the position of one bank account in Rial.
// Optional amounts (incoming cheques, pending Paya outflows) are plain int64 fields that
// default to 0, so they can always take part in sums.
type BankAccount struct {
	ID                  string `json:"id"`
	BankName            string `json:"bankName"`
	LogoColor           string `json:"logoColor"`
	AccountNumber       string `json:"accountNumber"`
	BalanceRial         int64  `json:"balanceRial"` // Ledger balance
	BlockedRial         int64  `json:"blockedRial"`
	IncomingCheques     int64  `json:"incomingCheques"`
	PendingPayaOutflows int64  `json:"pendingPayaOutflows"`
}

// AccountOption customizes a BankAccount built by NewBankAccount
type AccountOption func(*BankAccount)

// WithIncomingCheques sets the cleared-but-not-booked cheque amount
func WithIncomingCheques(amount int64) AccountOption {
	return func(a *BankAccount) {
		a.IncomingCheques = amount
	}
}

// WithPendingPayaOutflows sets the amount of pending outgoing Paya instructions
func WithPendingPayaOutflows(amount int64) AccountOption {
	return func(a *BankAccount) {
		a.PendingPayaOutflows = amount
	}
}

// WithLogoColor sets the display color used by the dashboard
func WithLogoColor(color string) AccountOption {
	return func(a *BankAccount) {
		a.LogoColor = color
	}
}

// NewBankAccount creates an account with every optional amount defaulted to 0
func NewBankAccount(id, bankName, accountNumber string, balance, blocked int64, opts ...AccountOption) BankAccount {
	acc := BankAccount{
		ID:            id,
		BankName:      bankName,
		AccountNumber: accountNumber,
		BalanceRial:   balance,
		BlockedRial:   blocked,
	}
	for _, opt := range opts {
		opt(&acc)
	}
	return acc
}
