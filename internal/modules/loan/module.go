// Package loan is the Loan Eligibility section.
package loan

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
)

// API is the part of the bank API this section uses.
type API interface {
	CheckLoanEligibility(ctx context.Context, token string, req bankapi.LoanRequest) (*bankapi.LoanEligibility, error)
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

// LoanModule implements module.Module for the loan section.
type LoanModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *LoanModule {
	return &LoanModule{handler: NewHandler(deps.API, deps.Renderer, deps.Activity)}
}

// Name returns the module name, which is also its dashboard section.
func (m *LoanModule) Name() string {
	return string(dashboard.Loan)
}

// Register publishes the section view.
func (m *LoanModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Loan), dashboard.View(m.handler))
	return nil
}

// Boot mounts the section's routes under /dashboard/loan. Scoring does not need a
// session; the bearer token is sent along when there is one.
func (m *LoanModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting LoanModule: Setting up routes...")
	g.POST("/check", m.handler.Check)
	return nil
}
