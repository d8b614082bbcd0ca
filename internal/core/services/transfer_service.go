package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transferService is the only writer of balances and transaction records.
// All store access goes through the ledger service.
type transferService struct {
	BaseService
	ledger portssvc.LedgerSvcFacade
	clock  clock.Clock
	locker *AccountLocker
	newID  func() string
}

// TransferOption is a functional option for configuring the transfer service
type TransferOption func(*transferService)

// WithTransferClock sets the time source used for transaction records
func WithTransferClock(c clock.Clock) TransferOption {
	return func(s *transferService) {
		s.clock = c
	}
}

// WithTransferLocker shares a per-account locker with the ledger service
func WithTransferLocker(l *AccountLocker) TransferOption {
	return func(s *transferService) {
		s.locker = l
	}
}

// WithTransactionIDFunc overrides how transaction IDs are generated
func WithTransactionIDFunc(f func() string) TransferOption {
	return func(s *transferService) {
		s.newID = f
	}
}

// lockerSharer is implemented by ledger services that can hand out their
// per-account locker.
type lockerSharer interface {
	accountLocker() *AccountLocker
}

// NewTransferService creates a transfer service on top of a ledger service.
// Unless WithTransferLocker is given it uses the ledger's own locker, so
// deposits and transfers serialize with lock state changes.
func NewTransferService(ledger portssvc.LedgerSvcFacade, options ...TransferOption) portssvc.TransferSvcFacade {
	svc := &transferService{
		ledger: ledger,
		clock:  clock.UTC(),
		newID:  uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	if svc.locker == nil {
		if ls, ok := ledger.(lockerSharer); ok {
			svc.locker = ls.accountLocker()
		} else {
			svc.locker = NewAccountLocker()
		}
	}

	return svc
}

// Ensure transferService implements the TransferSvcFacade interface
var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) CreditAccount(ctx context.Context, iban string, amount decimal.Decimal) error {
	unlock := s.locker.Lock(iban)
	defer unlock()

	account, err := s.ledger.GetAccountByID(ctx, iban)
	if err != nil {
		return err
	}
	if account.IsLocked {
		err := fmt.Errorf("%w, iban=%s", apperrors.ErrBankAccountLocked, iban)
		s.LogWarn(ctx, err, "Rejected deposit", slog.String("iban", iban))
		return err
	}

	s.apply(account, amount, domain.Credit)
	if err := s.ledger.SaveAccount(ctx, *account); err != nil {
		return err
	}

	s.LogInfo(ctx, "Account credited",
		slog.String("iban", iban),
		slog.String("amount", amount.String()),
		slog.String("balance", account.Balance.String()))
	return nil
}

func (s *transferService) TransferMoney(ctx context.Context, amount decimal.Decimal, fromIBAN, toIBAN string) error {
	unlock := s.locker.Lock(fromIBAN, toIBAN)
	defer unlock()

	from, err := s.ledger.GetAccountByID(ctx, fromIBAN)
	if err != nil {
		return err
	}
	to := from
	if toIBAN != fromIBAN {
		if to, err = s.ledger.GetAccountByID(ctx, toIBAN); err != nil {
			return err
		}
	}

	if err := validateTransfer(from, to, amount); err != nil {
		s.LogWarn(ctx, err, "Rejected transfer",
			slog.String("from_iban", fromIBAN),
			slog.String("to_iban", toIBAN),
			slog.String("amount", amount.String()))
		return err
	}

	snapshot := from.Clone()

	s.apply(from, amount, domain.Debit)
	if err := s.ledger.SaveAccount(ctx, *from); err != nil {
		return err
	}

	s.apply(to, amount, domain.Credit)
	if err := s.ledger.SaveAccount(ctx, *to); err != nil {
		return s.compensate(ctx, snapshot, toIBAN, err)
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_iban", fromIBAN),
		slog.String("to_iban", toIBAN),
		slog.String("amount", amount.String()))
	return nil
}

// validateTransfer applies the transfer rules in their fixed order.
func validateTransfer(from, to *domain.Account, amount decimal.Decimal) error {
	if !from.Kind.Withdrawable() {
		return fmt.Errorf("%w, iban=%s", apperrors.ErrWithdrawalNotSupported, from.IBAN)
	}
	if from.IsLocked {
		return fmt.Errorf("%w, iban=%s", apperrors.ErrBankAccountLocked, from.IBAN)
	}
	if to.IsLocked {
		return fmt.Errorf("%w, iban=%s", apperrors.ErrBankAccountLocked, to.IBAN)
	}
	if from.Balance.LessThan(amount) {
		return fmt.Errorf("%w, iban=%s", apperrors.ErrInsufficientBalance, from.IBAN)
	}
	if ref, ok := from.ReferenceAccount(); ok &&
		from.Kind.TransferTarget() == domain.TransferToReference && to.IBAN != ref {
		return fmt.Errorf("%w, iban=%s", apperrors.ErrUnsupportedTransfer, from.IBAN)
	}
	return nil
}

// compensate restores the pre-debit state of the source account after the
// credit half of a transfer could not be persisted.
func (s *transferService) compensate(ctx context.Context, snapshot domain.Account, toIBAN string, cause error) error {
	err := fmt.Errorf("%w: credit to %s failed: %w", apperrors.ErrTransferIncomplete, toIBAN, cause)

	if restoreErr := s.ledger.SaveAccount(ctx, snapshot); restoreErr != nil {
		err = errors.Join(err, fmt.Errorf("restoring %s failed: %w", snapshot.IBAN, restoreErr))
		s.LogError(ctx, err, "Transfer left unbalanced",
			slog.String("from_iban", snapshot.IBAN),
			slog.String("to_iban", toIBAN))
		return err
	}

	s.LogError(ctx, err, "Transfer rolled back",
		slog.String("from_iban", snapshot.IBAN),
		slog.String("to_iban", toIBAN))
	return err
}

func (s *transferService) apply(account *domain.Account, amount decimal.Decimal, txType domain.TransactionType) {
	now := s.clock.Now()
	if txType == domain.Debit {
		account.Balance = account.Balance.Sub(amount)
	} else {
		account.Balance = account.Balance.Add(amount)
	}
	account.Transactions = append(account.Transactions, domain.Transaction{
		TransactionID:   s.newID(),
		AccountID:       account.IBAN,
		Amount:          amount,
		TransactionType: txType,
		CreatedAt:       now,
	})
	account.LastUpdatedAt = now
}

func (s *transferService) GetTransactionHistory(ctx context.Context, iban string) ([]domain.Transaction, error) {
	return s.ledger.GetTransactionHistory(ctx, iban)
}
