package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

var testEpoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// scriptedIDs returns the queued candidates first, then a numbered sequence.
type scriptedIDs struct {
	mu     sync.Mutex
	queued []string
	next   int
	calls  int
}

func (g *scriptedIDs) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.queued) > 0 {
		id := g.queued[0]
		g.queued = g.queued[1:]
		return id, nil
	}
	g.next++
	return fmt.Sprintf("DE00123451230%09d", g.next), nil
}

func (g *scriptedIDs) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// MockAccountRepository is a mock implementation of AccountRepositoryFacade
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, iban string) (*domain.Account, error) {
	args := m.Called(ctx, iban)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	acc := args.Get(0).(domain.Account).Clone()
	return &acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByKinds(ctx context.Context, kinds []domain.AccountKind) ([]domain.Account, error) {
	args := m.Called(ctx, kinds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AccountExists(ctx context.Context, iban string) (bool, error) {
	args := m.Called(ctx, iban)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ListAllAccounts(ctx context.Context) (map[string]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (string, error) {
	args := m.Called(ctx, account)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAllAccounts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func ibanIs(iban string) any {
	return mock.MatchedBy(func(a domain.Account) bool { return a.IBAN == iban })
}
