package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountKind_Capabilities(t *testing.T) {
	tests := []struct {
		name              string
		kind              domain.AccountKind
		withdrawable      bool
		target            domain.TransferTarget
		requiresReference bool
	}{
		{
			name:         "checking account",
			kind:         domain.CheckingAccount,
			withdrawable: true,
			target:       domain.TransferToAny,
		},
		{
			name:              "savings account",
			kind:              domain.SavingsAccount,
			withdrawable:      true,
			target:            domain.TransferToReference,
			requiresReference: true,
		},
		{
			name:         "private loan account",
			kind:         domain.PrivateLoanAccount,
			withdrawable: false,
			target:       domain.TransferToNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.kind.IsValid())
			assert.Equal(t, tt.withdrawable, tt.kind.Withdrawable())
			assert.Equal(t, tt.target, tt.kind.TransferTarget())
			assert.Equal(t, tt.requiresReference, tt.kind.RequiresReference())
		})
	}
}

func TestAccountKind_Unknown(t *testing.T) {
	unknown := domain.AccountKind("BROKERAGE_ACCOUNT")
	assert.False(t, unknown.IsValid())
	assert.False(t, unknown.Withdrawable())
	assert.Equal(t, domain.TransferToNone, unknown.TransferTarget())
}

func TestParseAccountKind(t *testing.T) {
	for _, k := range domain.AllAccountKinds {
		parsed, err := domain.ParseAccountKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := domain.ParseAccountKind("savings")
	assert.Error(t, err)
}

func TestAccount_ReferenceAccount(t *testing.T) {
	acc := domain.Account{IBAN: "DE00123451230000000001", Kind: domain.CheckingAccount}
	_, ok := acc.ReferenceAccount()
	assert.False(t, ok)

	ref := "DE00123451230000000002"
	acc.ReferenceAccountID = &ref
	got, ok := acc.ReferenceAccount()
	assert.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestAccount_CloneIsDeep(t *testing.T) {
	ref := "DE00123451230000000002"
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	original := domain.Account{
		IBAN:               "DE00123451230000000001",
		Balance:            decimal.NewFromInt(10),
		Kind:               domain.SavingsAccount,
		ReferenceAccountID: &ref,
		AuditFields:        domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		Transactions: []domain.Transaction{
			{TransactionID: "t1", Amount: decimal.NewFromInt(10), TransactionType: domain.Credit, CreatedAt: now},
		},
	}

	cp := original.Clone()
	*cp.ReferenceAccountID = "changed"
	cp.Transactions[0].Amount = decimal.NewFromInt(99)
	cp.Transactions = append(cp.Transactions, domain.Transaction{TransactionID: "t2"})
	cp.IsLocked = true

	assert.Equal(t, ref, *original.ReferenceAccountID)
	assert.True(t, decimal.NewFromInt(10).Equal(original.Transactions[0].Amount))
	assert.Len(t, original.Transactions, 1)
	assert.False(t, original.IsLocked)
}
