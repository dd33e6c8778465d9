package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/app"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/config"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/geo"
	"github.com/rabie-karouia/EasyDinar/internal/handlers"
	"github.com/rabie-karouia/EasyDinar/internal/metrics"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/module"
	"github.com/rabie-karouia/EasyDinar/internal/pubsub"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/session"
)

const serviceName = "easydinar-web"

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	store            session.Storage
	authHandler      *handlers.AuthHandler
	dashboardHandler *dashboard.Handler
	modules          []module.Module
	registry         *registry.Registry

	bridge         *pubsub.WatermillBridge
	stopAudit      context.CancelFunc
	tracingCleanup func()
}

// New creates a new Server instance wired to the bank API described by cfg.
func New(cfg config.Provider) (*Server, error) {
	tracer, cleanup, err := pubsub.SetupOTel(context.Background(), pubsub.TracingConfig{
		Enabled:     cfg.GetTracingEnabled(),
		ServiceName: serviceName,
		ZipkinURL:   cfg.GetTracingZipkinURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}

	bridge := pubsub.NewWatermillBridgeWithTracer(tracer)
	auditCtx, stopAudit := context.WithCancel(context.Background())
	if err := activity.NewAudit(slog.Default()).Start(auditCtx, bridge); err != nil {
		stopAudit()
		cleanup()
		return nil, fmt.Errorf("starting activity audit: %w", err)
	}
	recorder := activity.NewRecorder(bridge)

	bank := bankapi.New(cfg.GetBackendURL(), cfg.GetBackendTimeout())
	var locator geo.Locator
	if cfg.GetGeoURL() != "" {
		locator = geo.NewIPInfo(cfg.GetGeoURL(), cfg.GetGeoToken(), cfg.GetBackendTimeout())
	}
	renderer := rendering.NewUniversalRenderer()
	store := session.NewCookieStorage()

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger)
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(metrics.EchoMiddleware())
	secure := strings.HasPrefix(cfg.GetAppBaseURL(), "https://")
	e.Use(echosession.Middleware(session.NewCookieStore(cfg.GetSessionSecret(), secure)))
	setupErrorHandling(e)

	reg := registry.New(cfg)
	modules := app.NewModules(app.Dependencies{
		Bank:     bank,
		Geo:      locator,
		Renderer: renderer,
		Activity: recorder,
	})
	for _, m := range modules {
		if err := m.Register(reg); err != nil {
			stopAudit()
			cleanup()
			return nil, fmt.Errorf("registering module %s: %w", m.Name(), err)
		}
	}

	return &Server{
		E:                e,
		Cfg:              cfg,
		store:            store,
		authHandler:      handlers.NewAuthHandler(bank, store, recorder, renderer),
		dashboardHandler: dashboard.NewHandler(renderer, dashboard.ViewsFrom(reg)...),
		modules:          modules,
		registry:         reg,
		bridge:           bridge,
		stopAudit:        stopAudit,
		tracingCleanup:   cleanup,
	}, nil
}

// setupErrorHandling logs unhandled errors with a stack trace and answers 500.
// echo.HTTPErrors keep their status and message.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed || errors.Is(err, context.Canceled) {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= http.StatusInternalServerError {
				middleware.FromContext(c.Request().Context()).Error("HTTP error", "status", he.Code, "error", he.Error())
			}
			e.DefaultHTTPErrorHandler(he, c)
			return
		}

		middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(echo.NewHTTPError(http.StatusInternalServerError), c)
	}
}
