// Package accounts is the "My Accounts" section: listing the client's accounts and
// opening new ones.
package accounts

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
)

// API is the part of the bank API this section uses.
type API interface {
	ListAccounts(ctx context.Context, token string) ([]bankapi.Account, error)
	CreateAccount(ctx context.Context, token string, req bankapi.NewAccount) (*bankapi.Account, error)
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

// AccountsModule implements module.Module for the accounts section.
type AccountsModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *AccountsModule {
	return &AccountsModule{handler: NewHandler(deps.API, deps.Renderer, deps.Activity)}
}

// Name returns the module name, which is also its dashboard section.
func (m *AccountsModule) Name() string {
	return string(dashboard.Accounts)
}

// Register publishes the section view.
func (m *AccountsModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Accounts), dashboard.View(m.handler))
	return nil
}

// Boot mounts the section's routes under /dashboard/accounts.
func (m *AccountsModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting AccountsModule: Setting up routes...")
	requireSession := middleware.RequireSession()
	g.GET("/list", m.handler.List, requireSession)
	g.POST("", m.handler.Create, requireSession)
	return nil
}
