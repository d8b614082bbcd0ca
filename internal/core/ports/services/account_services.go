package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a working copy of the account identified by iban.
	GetAccountByID(ctx context.Context, iban string) (*domain.Account, error)

	// GetAccountBalance returns the current balance of an account.
	GetAccountBalance(ctx context.Context, iban string) (decimal.Decimal, error)

	// FilterAccountsByKinds returns all accounts whose kind is in kinds, in no particular order.
	FilterAccountsByKinds(ctx context.Context, kinds []domain.AccountKind) ([]domain.Account, error)

	// GetTransactionHistory returns the transaction records of an account.
	GetTransactionHistory(ctx context.Context, iban string) ([]domain.Transaction, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new account of the given kind and returns its IBAN.
	// Savings accounts are opened together with their reference checking account.
	CreateAccount(ctx context.Context, kind domain.AccountKind) (string, error)

	// SaveAccount persists a working copy of an account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// ResetLedger removes every account. Administrative use only.
	ResetLedger(ctx context.Context) error
}

// AccountLockSvc defines the lock state transitions of an account.
type AccountLockSvc interface {
	// LockAccount moves an unlocked account to the locked state.
	LockAccount(ctx context.Context, iban string) error

	// UnlockAccount moves a locked account back to the unlocked state.
	UnlockAccount(ctx context.Context, iban string) error
}

// LedgerSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountLockSvc
}
