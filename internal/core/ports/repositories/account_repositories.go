package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Every returned account is a copy owned by the caller.
type AccountReader interface {
	// FindAccountByID retrieves an account by its IBAN.
	// It returns apperrors.ErrNotFound when no such account is stored.
	FindAccountByID(ctx context.Context, iban string) (*domain.Account, error)

	// FindAccountsByKinds retrieves all accounts whose kind is in kinds, in no particular order.
	FindAccountsByKinds(ctx context.Context, kinds []domain.AccountKind) ([]domain.Account, error)

	// AccountExists reports whether an account with the given IBAN is stored.
	AccountExists(ctx context.Context, iban string) (bool, error)

	// ListAllAccounts returns every stored account keyed by IBAN.
	ListAllAccounts(ctx context.Context) (map[string]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount inserts or replaces the account and returns its IBAN.
	SaveAccount(ctx context.Context, account domain.Account) (string, error)

	// DeleteAllAccounts removes every stored account.
	DeleteAllAccounts(ctx context.Context) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
