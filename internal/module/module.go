package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
)

// Module is a self-contained dashboard feature.
type Module interface {
	// Name returns a unique identifier for the module. It is also the path segment
	// the module's routes are mounted under.
	Name() string

	// Register is called during startup to publish the module's services in the registry.
	Register(reg *registry.Registry) error

	// Boot is called after every module has registered. Routes are added to router here.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown is called during graceful application shutdown.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op implementations for Module methods.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}
