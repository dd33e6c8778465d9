// Package branches is the branch and ATM map shown under the "bills" dashboard section.
package branches

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/geo"
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
)

// API is the part of the bank API this section uses.
type API interface {
	ListLocations(ctx context.Context) ([]bankapi.Location, error)
	NearbyLocations(ctx context.Context, lat, lon float64, radius string) ([]bankapi.Location, error)
}

// DefaultRadius is the nearby search radius used when the configuration has none.
const DefaultRadius = "2"

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Locator  geo.Locator
	Renderer rendering.Renderer
}

// BranchesModule implements module.Module for the map section.
type BranchesModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *BranchesModule {
	return &BranchesModule{handler: NewHandler(deps.API, deps.Locator, deps.Renderer, DefaultRadius)}
}

// Name returns the module name, which is also its dashboard section.
func (m *BranchesModule) Name() string {
	return string(dashboard.Bills)
}

// Register publishes the section view.
func (m *BranchesModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Bills), dashboard.View(m.handler))
	return nil
}

// Boot mounts the section's routes under /dashboard/bills. Branch data is public.
func (m *BranchesModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting BranchesModule: Setting up routes...")
	if cfg := reg.Config(); cfg != nil && cfg.GetNearbyRadius() != "" {
		m.handler.radius = cfg.GetNearbyRadius()
	}
	g.GET("/nearby", m.handler.Nearby)
	g.GET("/all", m.handler.All)
	return nil
}
