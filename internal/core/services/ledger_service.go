package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/clock"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
)

// IDGenerator produces candidate account identifiers.
type IDGenerator interface {
	Generate() (string, error)
}

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ids         IDGenerator
	clock       clock.Clock
	locker      *AccountLocker
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*ledgerService)

// WithClock sets the time source used for audit timestamps
func WithClock(c clock.Clock) LedgerOption {
	return func(s *ledgerService) {
		s.clock = c
	}
}

// WithIDGenerator sets the account identifier generator
func WithIDGenerator(g IDGenerator) LedgerOption {
	return func(s *ledgerService) {
		s.ids = g
	}
}

// WithAccountLocker shares a per-account locker with other services
func WithAccountLocker(l *AccountLocker) LedgerOption {
	return func(s *ledgerService) {
		s.locker = l
	}
}

// NewLedgerService creates a ledger service backed by repo.
// Without options it uses the UTC system clock, a DE IBAN generator and its own locker.
func NewLedgerService(repo portsrepo.AccountRepositoryFacade, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		accountRepo: repo,
		clock:       clock.UTC(),
		locker:      NewAccountLocker(),
	}

	for _, option := range options {
		option(svc)
	}

	if svc.ids == nil {
		gen, err := utils.NewIBANGenerator(utils.DefaultIBANCountryCode, utils.DefaultIBANBankCode)
		if err != nil {
			// the defaults are constants and always valid
			panic(err)
		}
		svc.ids = gen
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateAccount(ctx context.Context, kind domain.AccountKind) (string, error) {
	if !kind.IsValid() {
		err := fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, kind)
		s.LogWarn(ctx, err, "Rejected account creation", slog.String("account_kind", string(kind)))
		return "", err
	}

	var reference *string
	if kind.RequiresReference() {
		checkingIBAN, err := s.openAccount(ctx, domain.CheckingAccount, nil)
		if err != nil {
			return "", err
		}
		reference = &checkingIBAN
	}

	return s.openAccount(ctx, kind, reference)
}

func (s *ledgerService) openAccount(ctx context.Context, kind domain.AccountKind, reference *string) (string, error) {
	iban, err := s.nextIBAN(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate IBAN", slog.String("account_kind", string(kind)))
		return "", err
	}

	now := s.clock.Now()
	account := domain.Account{
		IBAN:               iban,
		Balance:            decimal.Zero,
		Kind:               kind,
		ReferenceAccountID: reference,
		AuditFields:        domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if _, err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save new account", slog.String("iban", iban))
		return "", fmt.Errorf("failed to save account %s: %w", iban, err)
	}

	attrs := []any{slog.String("iban", iban), slog.String("account_kind", string(kind))}
	if reference != nil {
		attrs = append(attrs, slog.String("reference_iban", *reference))
	}
	s.LogInfo(ctx, "Account created", attrs...)
	return iban, nil
}

// nextIBAN draws candidates until one is not already stored. Collisions are
// vanishingly rare, so the loop has no attempt limit.
func (s *ledgerService) nextIBAN(ctx context.Context) (string, error) {
	for {
		candidate, err := s.ids.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate IBAN: %w", err)
		}
		exists, err := s.accountRepo.AccountExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check IBAN %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		s.LogDebug(ctx, "Generated IBAN already taken, retrying", slog.String("iban", candidate))
	}
}

func (s *ledgerService) GetAccountByID(ctx context.Context, iban string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, iban)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w, iban=%s", apperrors.ErrAccountNotFound, iban)
		}
		s.LogError(ctx, err, "Failed to load account", slog.String("iban", iban))
		return nil, fmt.Errorf("failed to load account %s: %w", iban, err)
	}
	return account, nil
}

func (s *ledgerService) GetAccountBalance(ctx context.Context, iban string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, iban)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (s *ledgerService) FilterAccountsByKinds(ctx context.Context, kinds []domain.AccountKind) ([]domain.Account, error) {
	if len(kinds) == 0 {
		return []domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByKinds(ctx, kinds)
	if err != nil {
		s.LogError(ctx, err, "Failed to filter accounts")
		return nil, fmt.Errorf("failed to filter accounts: %w", err)
	}
	return accounts, nil
}

func (s *ledgerService) GetTransactionHistory(ctx context.Context, iban string) ([]domain.Transaction, error) {
	account, err := s.GetAccountByID(ctx, iban)
	if err != nil {
		return nil, err
	}
	if account.Transactions == nil {
		return []domain.Transaction{}, nil
	}
	return account.Transactions, nil
}

func (s *ledgerService) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("iban", account.IBAN))
		return fmt.Errorf("failed to save account %s: %w", account.IBAN, err)
	}
	return nil
}

func (s *ledgerService) LockAccount(ctx context.Context, iban string) error {
	return s.setLocked(ctx, iban, true)
}

func (s *ledgerService) UnlockAccount(ctx context.Context, iban string) error {
	return s.setLocked(ctx, iban, false)
}

func (s *ledgerService) setLocked(ctx context.Context, iban string, locked bool) error {
	unlock := s.locker.Lock(iban)
	defer unlock()

	account, err := s.GetAccountByID(ctx, iban)
	if err != nil {
		return err
	}

	switch {
	case locked && account.IsLocked:
		err = fmt.Errorf("%w, iban=%s", apperrors.ErrAccountAlreadyLocked, iban)
	case !locked && !account.IsLocked:
		err = fmt.Errorf("%w, iban=%s", apperrors.ErrAccountNotLocked, iban)
	}
	if err != nil {
		s.LogWarn(ctx, err, "Rejected lock state change", slog.String("iban", iban), slog.Bool("lock", locked))
		return err
	}

	account.IsLocked = locked
	if err := s.SaveAccount(ctx, *account); err != nil {
		return err
	}

	s.LogInfo(ctx, "Account lock state changed", slog.String("iban", iban), slog.Bool("locked", locked))
	return nil
}

func (s *ledgerService) accountLocker() *AccountLocker {
	return s.locker
}

func (s *ledgerService) ResetLedger(ctx context.Context) error {
	release := s.locker.LockAll()
	defer release()

	if err := s.accountRepo.DeleteAllAccounts(ctx); err != nil {
		s.LogError(ctx, err, "Failed to reset ledger")
		return fmt.Errorf("failed to reset ledger: %w", err)
	}
	s.LogInfo(ctx, "Ledger reset, all accounts removed")
	return nil
}
