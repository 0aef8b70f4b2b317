package services

import (
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Group service first since most other services depend on its authorizer
	container.User = NewUserService(repos.UserRepo)
	container.Group = NewGroupService(repos.GroupRepo, repos.UserRepo)

	groupAuthorizer := container.Group.(portssvc.GroupAuthorizerSvc)

	container.Expense = NewExpenseService(repos.ExpenseRepo, groupAuthorizer)
	container.Settlement = NewSettlementService(repos.SettlementRepo, groupAuthorizer)
	container.Ledger = NewLedgerService(repos.ExpenseRepo, repos.SettlementRepo, groupAuthorizer)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
