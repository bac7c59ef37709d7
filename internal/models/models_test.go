package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBankAccount_DefaultsOptionalAmounts(t *testing.T) {
	acc := NewBankAccount("1", "Mellat", "4423", 100, 10)

	assert.Equal(t, int64(0), acc.IncomingCheques)
	assert.Equal(t, int64(0), acc.PendingPayaOutflows)
	assert.Empty(t, acc.LogoColor)
}

func TestNewBankAccount_Options(t *testing.T) {
	acc := NewBankAccount("1", "Mellat", "4423", 100, 10,
		WithIncomingCheques(5),
		WithPendingPayaOutflows(7),
		WithLogoColor("bg-red-600"))

	assert.Equal(t, int64(5), acc.IncomingCheques)
	assert.Equal(t, int64(7), acc.PendingPayaOutflows)
	assert.Equal(t, "bg-red-600", acc.LogoColor)
}

func TestTransaction_SignedAmount(t *testing.T) {
	debit := Transaction{AmountRial: 500, Type: TransactionDebit}
	credit := Transaction{AmountRial: 500, Type: TransactionCredit}

	assert.Equal(t, int64(-500), debit.SignedAmount())
	assert.Equal(t, int64(500), credit.SignedAmount())
}

func TestParseCurrencyMode(t *testing.T) {
	assert.Equal(t, CurrencyToman, ParseCurrencyMode("TOMAN"))
	assert.Equal(t, CurrencyRial, ParseCurrencyMode("RIAL"))
	assert.Equal(t, CurrencyRial, ParseCurrencyMode(""))
	assert.Equal(t, CurrencyRial, ParseCurrencyMode("toman"))
}
