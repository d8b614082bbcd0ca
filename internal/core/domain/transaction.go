package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction record is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is a single balance movement recorded on one account.
// Records are created by the transfer engine and never mutated afterwards.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // UUID
	AccountID       string          `json:"accountID"`       // IBAN of the owning account
	Amount          decimal.Decimal `json:"amount"`          // Positive value; Precise decimal type
	TransactionType TransactionType `json:"transactionType"` // DEBIT or CREDIT
	CreatedAt       time.Time       `json:"createdAt"`
}
