package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferSvcFacade moves money between accounts and records the resulting transactions.
type TransferSvcFacade interface {
	// CreditAccount deposits amount into the account identified by iban.
	CreditAccount(ctx context.Context, iban string, amount decimal.Decimal) error

	// TransferMoney moves amount from fromIBAN to toIBAN after enforcing the transfer rules.
	TransferMoney(ctx context.Context, amount decimal.Decimal, fromIBAN, toIBAN string) error

	// GetTransactionHistory returns the transaction records of an account.
	GetTransactionHistory(ctx context.Context, iban string) ([]domain.Transaction, error)
}
