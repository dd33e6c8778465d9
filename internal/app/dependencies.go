package app

import (
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/geo"
	"github.com/rabie-karouia/EasyDinar/internal/modules/accounts"
	"github.com/rabie-karouia/EasyDinar/internal/modules/branches"
	"github.com/rabie-karouia/EasyDinar/internal/modules/exchange"
	"github.com/rabie-karouia/EasyDinar/internal/modules/loan"
	"github.com/rabie-karouia/EasyDinar/internal/modules/security"
	"github.com/rabie-karouia/EasyDinar/internal/modules/transactions"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the server to wire up the modules.
type Dependencies struct {
	Bank     *bankapi.Client
	Geo      geo.Locator
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

func accountsDeps(deps Dependencies) accounts.Dependencies {
	return accounts.Dependencies{API: deps.Bank, Renderer: deps.Renderer, Activity: deps.Activity}
}

func transactionsDeps(deps Dependencies) transactions.Dependencies {
	return transactions.Dependencies{API: deps.Bank, Renderer: deps.Renderer, Activity: deps.Activity}
}

func loanDeps(deps Dependencies) loan.Dependencies {
	return loan.Dependencies{API: deps.Bank, Renderer: deps.Renderer, Activity: deps.Activity}
}

func branchesDeps(deps Dependencies) branches.Dependencies {
	return branches.Dependencies{
		API:      deps.Bank,
		Locator:  deps.Geo,
		Renderer: deps.Renderer,
	}
}

func exchangeDeps(deps Dependencies) exchange.Dependencies {
	return exchange.Dependencies{API: deps.Bank, Renderer: deps.Renderer, Activity: deps.Activity}
}

func securityDeps(deps Dependencies) security.Dependencies {
	return security.Dependencies{API: deps.Bank, Renderer: deps.Renderer, Activity: deps.Activity}
}
