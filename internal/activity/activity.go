// Package activity records what signed-in clients do (sign-ins, deposits, 2FA setup, ...)
// as events on the in-process bus. An audit subscriber turns them into log lines and metrics.
package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/pubsub"
)

// Kinds of recorded activity.
const (
	KindSignUp          = "signup"
	KindSignIn          = "signin"
	KindLogout          = "logout"
	KindPasswordRecover = "password_recovery"
	KindPasswordReset   = "password_reset"
	KindAccountCreated  = "account_created"
	KindDeposit         = "deposit"
	KindWithdraw        = "withdraw"
	KindPayment         = "payment"
	KindLoanCheck       = "loan_check"
	KindExchange        = "exchange"
	KindVerification    = "verification_sent"
	KindTwoFactor       = "two_factor_enabled"
)

// Outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Event is one recorded action.
type Event struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Outcome string    `json:"outcome"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Topic carries every activity event.
var Topic = pubsub.NewEvent[Event]("activity.events")

// Recorder publishes activity events. A nil *Recorder records nothing.
type Recorder struct {
	pub pubsub.Publisher
	now func() time.Time
}

// NewRecorder creates a recorder publishing to pub.
func NewRecorder(pub pubsub.Publisher) *Recorder {
	return &Recorder{pub: pub, now: time.Now}
}

// Record publishes an event for the current request. err decides the outcome and,
// when set, becomes the detail. Publishing failures are logged and never reach the caller.
func (r *Recorder) Record(c echo.Context, cin, kind string, err error) {
	if r == nil || r.pub == nil {
		return
	}

	ev := Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Outcome: OutcomeOK,
		At:      r.now().UTC(),
	}
	if err != nil {
		ev.Outcome = OutcomeFailed
		ev.Detail = err.Error()
	}

	meta := map[string]string{
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}
	// The event outlives the request.
	ctx := context.WithoutCancel(c.Request().Context())
	if perr := pubsub.Publish(ctx, r.pub, Topic, cin, meta, ev); perr != nil {
		slog.Error("Failed to publish activity event", "kind", kind, "error", perr)
	}
}
