package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/adapters/database/memory"
	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	repo   portsrepo.AccountRepositoryFacade
	clock  *clock.Fixed
	ids    *scriptedIDs
	ledger portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = memory.NewAccountRepository()
	suite.clock = clock.NewFixed(testEpoch)
	suite.ids = &scriptedIDs{}
	suite.ledger = NewLedgerService(suite.repo, WithClock(suite.clock), WithIDGenerator(suite.ids))
}

func (suite *LedgerServiceTestSuite) count() int {
	all, err := suite.repo.ListAllAccounts(suite.ctx)
	suite.Require().NoError(err)
	return len(all)
}

func (suite *LedgerServiceTestSuite) TestCreateAccountStartsEmptyAndUnlocked() {
	for _, kind := range domain.AllAccountKinds {
		iban, err := suite.ledger.CreateAccount(suite.ctx, kind)
		suite.Require().NoError(err)

		acc, err := suite.ledger.GetAccountByID(suite.ctx, iban)
		suite.Require().NoError(err)
		suite.Equal(kind, acc.Kind)
		suite.True(decimal.Zero.Equal(acc.Balance))
		suite.False(acc.IsLocked)
		suite.Empty(acc.Transactions)
		suite.Equal(testEpoch, acc.CreatedAt)
		suite.Equal(testEpoch, acc.LastUpdatedAt)
	}
}

func (suite *LedgerServiceTestSuite) TestCreateSavingsAlsoCreatesReferenceChecking() {
	iban, err := suite.ledger.CreateAccount(suite.ctx, domain.SavingsAccount)
	suite.Require().NoError(err)
	suite.Equal(2, suite.count())

	savings, err := suite.ledger.GetAccountByID(suite.ctx, iban)
	suite.Require().NoError(err)
	ref, ok := savings.ReferenceAccount()
	suite.Require().True(ok)
	suite.NotEqual(iban, ref)

	checking, err := suite.ledger.GetAccountByID(suite.ctx, ref)
	suite.Require().NoError(err)
	suite.Equal(domain.CheckingAccount, checking.Kind)
	suite.Nil(checking.ReferenceAccountID)
	suite.True(decimal.Zero.Equal(checking.Balance))
}

func (suite *LedgerServiceTestSuite) TestCreateCheckingAndLoanHaveNoCompanion() {
	for _, kind := range []domain.AccountKind{domain.CheckingAccount, domain.PrivateLoanAccount} {
		before := suite.count()
		iban, err := suite.ledger.CreateAccount(suite.ctx, kind)
		suite.Require().NoError(err)
		suite.Equal(before+1, suite.count())

		acc, err := suite.ledger.GetAccountByID(suite.ctx, iban)
		suite.Require().NoError(err)
		_, ok := acc.ReferenceAccount()
		suite.False(ok)
	}
}

func (suite *LedgerServiceTestSuite) TestCreateAccountRetriesTakenIBAN() {
	first, err := suite.ledger.CreateAccount(suite.ctx, domain.CheckingAccount)
	suite.Require().NoError(err)

	suite.ids.queued = []string{first, first}
	second, err := suite.ledger.CreateAccount(suite.ctx, domain.CheckingAccount)
	suite.Require().NoError(err)

	suite.NotEqual(first, second)
	suite.Equal(4, suite.ids.Calls())
	suite.Equal(2, suite.count())
}

func (suite *LedgerServiceTestSuite) TestCreateAccountUnknownKind() {
	_, err := suite.ledger.CreateAccount(suite.ctx, domain.AccountKind("BROKERAGE"))
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.count())
}

func (suite *LedgerServiceTestSuite) TestLockStateMachine() {
	iban, err := suite.ledger.CreateAccount(suite.ctx, domain.CheckingAccount)
	suite.Require().NoError(err)

	suite.ErrorIs(suite.ledger.UnlockAccount(suite.ctx, iban), apperrors.ErrAccountNotLocked)

	suite.clock.Advance(time.Minute)
	suite.Require().NoError(suite.ledger.LockAccount(suite.ctx, iban))
	suite.ErrorIs(suite.ledger.LockAccount(suite.ctx, iban), apperrors.ErrAccountAlreadyLocked)

	acc, err := suite.ledger.GetAccountByID(suite.ctx, iban)
	suite.Require().NoError(err)
	suite.True(acc.IsLocked)
	suite.Equal(testEpoch, acc.CreatedAt)
	suite.Equal(testEpoch, acc.LastUpdatedAt, "locking only flips the flag")

	// a locked account stays readable
	_, err = suite.ledger.GetAccountBalance(suite.ctx, iban)
	suite.NoError(err)
	_, err = suite.ledger.GetTransactionHistory(suite.ctx, iban)
	suite.NoError(err)

	suite.Require().NoError(suite.ledger.UnlockAccount(suite.ctx, iban))
	suite.ErrorIs(suite.ledger.UnlockAccount(suite.ctx, iban), apperrors.ErrAccountNotLocked)

	acc, err = suite.ledger.GetAccountByID(suite.ctx, iban)
	suite.Require().NoError(err)
	suite.False(acc.IsLocked)
	suite.Equal(testEpoch, acc.LastUpdatedAt, "unlocking only flips the flag")
}

func (suite *LedgerServiceTestSuite) TestMissingAccount() {
	const missing = "DE00000000000000000000"

	_, err := suite.ledger.GetAccountBalance(suite.ctx, missing)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.ErrorIs(suite.ledger.LockAccount(suite.ctx, missing), apperrors.ErrAccountNotFound)
	suite.ErrorIs(suite.ledger.UnlockAccount(suite.ctx, missing), apperrors.ErrAccountNotFound)
	_, err = suite.ledger.GetTransactionHistory(suite.ctx, missing)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.Contains(err.Error(), missing)
}

func (suite *LedgerServiceTestSuite) TestFilterAccountsByKinds() {
	_, err := suite.ledger.CreateAccount(suite.ctx, domain.SavingsAccount)
	suite.Require().NoError(err)
	_, err = suite.ledger.CreateAccount(suite.ctx, domain.PrivateLoanAccount)
	suite.Require().NoError(err)

	checking, err := suite.ledger.FilterAccountsByKinds(suite.ctx, []domain.AccountKind{domain.CheckingAccount})
	suite.Require().NoError(err)
	suite.Len(checking, 1)

	all, err := suite.ledger.FilterAccountsByKinds(suite.ctx, domain.AllAccountKinds)
	suite.Require().NoError(err)
	suite.Len(all, 3)

	none, err := suite.ledger.FilterAccountsByKinds(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *LedgerServiceTestSuite) TestHistoryOfNewAccountIsEmptyNotNil() {
	iban, err := suite.ledger.CreateAccount(suite.ctx, domain.CheckingAccount)
	suite.Require().NoError(err)

	history, err := suite.ledger.GetTransactionHistory(suite.ctx, iban)
	suite.Require().NoError(err)
	suite.NotNil(history)
	suite.Empty(history)
}

func (suite *LedgerServiceTestSuite) TestResetLedger() {
	_, err := suite.ledger.CreateAccount(suite.ctx, domain.SavingsAccount)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.ResetLedger(suite.ctx))
	suite.Zero(suite.count())
}

func (suite *LedgerServiceTestSuite) TestResetLedgerWaitsForAccountHolders() {
	iban, err := suite.ledger.CreateAccount(suite.ctx, domain.CheckingAccount)
	suite.Require().NoError(err)

	unlock := suite.ledger.(*ledgerService).locker.Lock(iban)

	done := make(chan error, 1)
	go func() {
		done <- suite.ledger.ResetLedger(suite.ctx)
	}()

	select {
	case <-done:
		suite.FailNow("reset ran while an account was held")
	case <-time.After(50 * time.Millisecond):
	}
	suite.Equal(1, suite.count())

	unlock()
	select {
	case err := <-done:
		suite.NoError(err)
	case <-time.After(time.Second):
		suite.FailNow("reset did not run after the account was released")
	}
	suite.Zero(suite.count())
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestLedgerServiceStoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("store unavailable")

	t.Run("save failure on create", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("AccountExists", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("SaveAccount", mock.Anything, mock.Anything).Return("", boom)

		ledger := NewLedgerService(repo, WithIDGenerator(&scriptedIDs{}))
		_, err := ledger.CreateAccount(ctx, domain.SavingsAccount)

		require.ErrorIs(t, err, boom)
		// the savings account is never attempted once its checking account failed
		repo.AssertNumberOfCalls(t, "SaveAccount", 1)
	})

	t.Run("lookup failure is not reported as not found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindAccountByID", mock.Anything, "DE01").Return(nil, boom)

		ledger := NewLedgerService(repo)
		_, err := ledger.GetAccountBalance(ctx, "DE01")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, apperrors.ErrAccountNotFound)
	})

	t.Run("save failure on lock", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindAccountByID", mock.Anything, "DE01").Return(domain.Account{IBAN: "DE01", Kind: domain.CheckingAccount}, nil)
		repo.On("SaveAccount", mock.Anything, ibanIs("DE01")).Return("", boom)

		ledger := NewLedgerService(repo)
		assert.ErrorIs(t, ledger.LockAccount(ctx, "DE01"), boom)
		repo.AssertExpectations(t)
	})
}
