package app

import (
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/modules/accounts"
	"github.com/rabie-karouia/EasyDinar/internal/modules/branches"
	"github.com/rabie-karouia/EasyDinar/internal/modules/exchange"
	"github.com/rabie-karouia/EasyDinar/internal/modules/loan"
	"github.com/rabie-karouia/EasyDinar/internal/modules/security"
	"github.com/rabie-karouia/EasyDinar/internal/modules/transactions"
)

// NewModules creates and returns the list of all active modules for the application,
// one per dashboard section, in sidebar order.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		accounts.New(accountsDeps(deps)),
		transactions.New(transactionsDeps(deps)),
		loan.New(loanDeps(deps)),
		branches.New(branchesDeps(deps)),
		exchange.New(exchangeDeps(deps)),
		security.New(securityDeps(deps)),
	}
}
