package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

// accountRepository keeps accounts in a map guarded by a read/write mutex.
// Accounts are copied on the way in and on the way out, so no caller ever
// shares memory with the stored value.
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewAccountRepository creates an empty in-memory account store.
func NewAccountRepository() portsrepo.AccountRepositoryFacade {
	return &accountRepository{
		accounts: make(map[string]domain.Account),
	}
}

// Ensure accountRepository implements the AccountRepositoryFacade interface
var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

// FindAccountByID retrieves an account by its IBAN.
func (r *accountRepository) FindAccountByID(ctx context.Context, iban string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[iban]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", iban, apperrors.ErrNotFound)
	}
	cp := acc.Clone()
	return &cp, nil
}

// FindAccountsByKinds retrieves all accounts whose kind is in kinds.
func (r *accountRepository) FindAccountsByKinds(ctx context.Context, kinds []domain.AccountKind) ([]domain.Account, error) {
	wanted := make(map[domain.AccountKind]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, acc := range r.accounts {
		if _, ok := wanted[acc.Kind]; ok {
			out = append(out, acc.Clone())
		}
	}
	return out, nil
}

// AccountExists reports whether an account with the given IBAN is stored.
func (r *accountRepository) AccountExists(ctx context.Context, iban string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accounts[iban]
	return ok, nil
}

// ListAllAccounts returns a snapshot of every stored account keyed by IBAN.
func (r *accountRepository) ListAllAccounts(ctx context.Context) (map[string]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.Account, len(r.accounts))
	for iban, acc := range r.accounts {
		out[iban] = acc.Clone()
	}
	return out, nil
}

// SaveAccount inserts or replaces an account.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) (string, error) {
	if account.IBAN == "" {
		return "", fmt.Errorf("account without IBAN: %w", apperrors.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[account.IBAN] = account.Clone()
	return account.IBAN, nil
}

// DeleteAllAccounts removes every stored account.
func (r *accountRepository) DeleteAllAccounts(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]domain.Account)
	return nil
}
