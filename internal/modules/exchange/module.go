// Package exchange is the Currency Exchange section.
package exchange

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/shopspring/decimal"
)

// API is the part of the bank API this section uses.
type API interface {
	ExchangeRate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

// ExchangeModule implements module.Module for the exchange section.
type ExchangeModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *ExchangeModule {
	return &ExchangeModule{handler: NewHandler(deps.API, deps.Renderer, deps.Activity)}
}

// Name returns the module name, which is also its dashboard section.
func (m *ExchangeModule) Name() string {
	return string(dashboard.Exchange)
}

// Register publishes the section view.
func (m *ExchangeModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Exchange), dashboard.View(m.handler))
	return nil
}

// Boot mounts the section's routes under /dashboard/exchange. Rates are public.
func (m *ExchangeModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting ExchangeModule: Setting up routes...")
	g.POST("/convert", m.handler.Convert)
	g.POST("/swap", m.handler.Swap)
	return nil
}
