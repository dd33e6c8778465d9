// Package transactions is the Transactions section: the filtered ledger, deposits,
// withdrawals and hosted payments.
package transactions

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
	ListTransactions(ctx context.Context, token string, f bankapi.TransactionFilter) ([]bankapi.Transaction, error)
	Deposit(ctx context.Context, token, amount, accountNumber string) (*bankapi.MovementResult, error)
	Withdraw(ctx context.Context, token, amount, accountNumber string) (*bankapi.MovementResult, error)
	GeneratePayment(ctx context.Context, token string, req bankapi.PaymentRequest) (*bankapi.Payment, error)
	CheckPayment(ctx context.Context, token, paymentToken string) (*bankapi.PaymentStatus, error)
}

// Dependencies holds the services the module requires.
type Dependencies struct {
	API      API
	Renderer rendering.Renderer
	Activity *activity.Recorder
}

// TransactionsModule implements module.Module for the transactions section.
type TransactionsModule struct {
	module.BaseModule
	handler *Handler
}

// New creates the module.
func New(deps Dependencies) *TransactionsModule {
	return &TransactionsModule{handler: NewHandler(deps.API, deps.Renderer, deps.Activity)}
}

// Name returns the module name, which is also its dashboard section.
func (m *TransactionsModule) Name() string {
	return string(dashboard.Transactions)
}

// Register publishes the section view.
func (m *TransactionsModule) Register(reg *registry.Registry) error {
	registry.Set(reg, dashboard.ViewKey(dashboard.Transactions), dashboard.View(m.handler))
	return nil
}

// Boot mounts the section's routes under /dashboard/transactions.
func (m *TransactionsModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Debug("Booting TransactionsModule: Setting up routes...")
	requireSession := middleware.RequireSession()
	g.GET("/list", m.handler.List, requireSession)
	g.POST("/deposit", m.handler.Deposit, requireSession)
	g.POST("/withdraw", m.handler.Withdraw, requireSession)
	g.POST("/payment", m.handler.Payment, requireSession)
	g.GET("/payment-status", m.handler.PaymentStatus, requireSession)
	return nil
}
