package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// SeedPlan lists the accounts opened at startup.
type SeedPlan struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// SeedAccount describes one account to open. ReferenceDeposit only applies
// to kinds opened together with a reference checking account.
type SeedAccount struct {
	Kind             domain.AccountKind `yaml:"kind"`
	InitialDeposit   string             `yaml:"initialDeposit"`
	ReferenceDeposit string             `yaml:"referenceDeposit"`
}

// DefaultSeedPlan opens a savings account with its checking account and a
// private loan account, each holding 1000.00.
func DefaultSeedPlan() SeedPlan {
	return SeedPlan{Accounts: []SeedAccount{
		{Kind: domain.SavingsAccount, InitialDeposit: "1000.00", ReferenceDeposit: "1000.00"},
		{Kind: domain.PrivateLoanAccount, InitialDeposit: "1000.00"},
	}}
}

// LoadSeedPlan reads a YAML seed plan from path.
func LoadSeedPlan(path string) (SeedPlan, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedPlan{}, fmt.Errorf("failed to read seed plan %s: %w", path, err)
	}
	return ParseSeedPlan(raw)
}

// ParseSeedPlan decodes and validates a YAML seed plan.
func ParseSeedPlan(raw []byte) (SeedPlan, error) {
	var plan SeedPlan
	if err := yaml.Unmarshal(raw, &plan); err != nil {
		return SeedPlan{}, fmt.Errorf("failed to decode seed plan: %w", err)
	}
	for i, acc := range plan.Accounts {
		if !acc.Kind.IsValid() {
			return SeedPlan{}, fmt.Errorf("seed plan entry %d: unknown account kind %q", i, acc.Kind)
		}
		if _, err := parseDeposit(acc.InitialDeposit); err != nil {
			return SeedPlan{}, fmt.Errorf("seed plan entry %d: %w", i, err)
		}
		if _, err := parseDeposit(acc.ReferenceDeposit); err != nil {
			return SeedPlan{}, fmt.Errorf("seed plan entry %d: %w", i, err)
		}
	}
	return plan, nil
}

func parseDeposit(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid deposit %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative deposit %q", s)
	}
	return d, nil
}

// seeder opens the accounts of a seed plan through the engines, so every
// seeded balance is backed by a CREDIT record.
type seeder struct {
	BaseService
	ledger   portssvc.LedgerSvcFacade
	transfer portssvc.TransferSvcFacade
	plan     SeedPlan
}

// NewSeeder creates a seeder for plan.
func NewSeeder(ledger portssvc.LedgerSvcFacade, transfer portssvc.TransferSvcFacade, plan SeedPlan) portssvc.SeederSvc {
	return &seeder{ledger: ledger, transfer: transfer, plan: plan}
}

var _ portssvc.SeederSvc = (*seeder)(nil)

func (s *seeder) Seed(ctx context.Context) error {
	for _, entry := range s.plan.Accounts {
		iban, err := s.ledger.CreateAccount(ctx, entry.Kind)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", entry.Kind, err)
		}
		if err := s.deposit(ctx, iban, entry.InitialDeposit); err != nil {
			return err
		}

		account, err := s.ledger.GetAccountByID(ctx, iban)
		if err != nil {
			return err
		}
		if ref, ok := account.ReferenceAccount(); ok {
			if err := s.deposit(ctx, ref, entry.ReferenceDeposit); err != nil {
				return err
			}
			s.LogInfo(ctx, "Seeded account", slog.String("iban", ref), slog.String("account_kind", string(domain.CheckingAccount)))
		}
		s.LogInfo(ctx, "Seeded account", slog.String("iban", iban), slog.String("account_kind", string(entry.Kind)))
	}
	return nil
}

func (s *seeder) deposit(ctx context.Context, iban, amount string) error {
	d, err := parseDeposit(amount)
	if err != nil {
		return err
	}
	if d.IsZero() {
		return nil
	}
	if err := s.transfer.CreditAccount(ctx, iban, d); err != nil {
		return fmt.Errorf("failed to seed deposit into %s: %w", iban, err)
	}
	return nil
}
