// Package security is the Security Center: two-factor setup by SMS.
package security

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
	SendVerification(ctx context.Context, token, phone string) (*bankapi.VerificationResult, error)
	VerifyCode(ctx context.Context, token, phone, code string) (*bankapi.VerificationResult, error)
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

// SecurityModule implements module.Module for the security section.
type SecurityModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *SecurityModule {
	return &SecurityModule{handler: NewHandler(deps.API, deps.Renderer, deps.Activity)}
}

// Name returns the module name, which is also its dashboard section.
func (m *SecurityModule) Name() string {
	return string(dashboard.Security)
}

// Register publishes the section view.
func (m *SecurityModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Security), dashboard.View(m.handler))
	return nil
}

// Boot mounts the wizard's routes under /dashboard/security.
func (m *SecurityModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting SecurityModule: Setting up routes...")
	requireSession := middleware.RequireSession()
	g.POST("/two-factor", m.handler.OpenTwoFactor, requireSession)
	g.POST("/method", m.handler.ChooseMethod, requireSession)
	g.POST("/send", m.handler.Send, requireSession)
	g.POST("/verify", m.handler.Verify, requireSession)
	g.POST("/back", m.handler.Back, requireSession)
	return nil
}
