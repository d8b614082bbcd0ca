package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Ledger   LedgerSvcFacade
	Transfer TransferSvcFacade
	Seeder   SeederSvc
}

// SeederSvc populates an empty ledger with demo accounts at startup.
type SeederSvc interface {
	Seed(ctx context.Context) error
}
