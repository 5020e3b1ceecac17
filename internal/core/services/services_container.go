package services

import (
	portsrepo "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(store portsrepo.DocumentStore) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger: NewLedgerService(store),
		Wbs:    NewWbsService(store),
		Bots:   NewBotsService(store),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
	_ portssvc.WbsSvcFacade    = (*wbsService)(nil)
	_ portssvc.BotsSvcFacade   = (*botsService)(nil)
)
