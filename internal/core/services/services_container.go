package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/platform/clock"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	ibans, err := utils.NewIBANGenerator(cfg.IBANCountryCode, cfg.IBANBankCode)
	if err != nil {
		return nil, fmt.Errorf("invalid IBAN configuration: %w", err)
	}

	plan := DefaultSeedPlan()
	if cfg.BootstrapFile != "" {
		if plan, err = LoadSeedPlan(cfg.BootstrapFile); err != nil {
			return nil, err
		}
	}

	// one locker for both engines: lock changes, deposits and transfers on an account are serialized
	utc := clock.UTC()
	locker := NewAccountLocker()

	container := &portssvc.ServiceContainer{}
	container.Ledger = NewLedgerService(
		repos.AccountRepo,
		WithClock(utc),
		WithIDGenerator(ibans),
		WithAccountLocker(locker),
	)
	container.Transfer = NewTransferService(
		container.Ledger,
		WithTransferClock(utc),
		WithTransferLocker(locker),
	)
	container.Seeder = NewSeeder(container.Ledger, container.Transfer, plan)

	return container, nil
}
