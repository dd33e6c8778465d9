package transactions

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/validation"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
)

// Movement kinds.
const (
	KindDeposit  = "deposit"
	KindWithdraw = "withdraw"
)

// OpenPaymentEvent is raised in the browser with {"url": ...} once a payment link exists.
const OpenPaymentEvent = "open-payment"

const (
	msgListFailed     = "Failed to fetch transactions."
	msgPaymentFailed  = "Failed to generate payment."
	msgNoPaymentURL   = "Payment URL not found in response."
	msgStatusFailed   = "Failed to check payment status."
	msgMissingPayment = "Enter the payment token to check."
)

// Handler serves the transactions section.
type Handler struct {
	api      API
	renderer rendering.Renderer
	activity *activity.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(api API, renderer rendering.Renderer, rec *activity.Recorder) *Handler {
	return &Handler{api: api, renderer: renderer, activity: rec}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Transactions }
func (h *Handler) Title() string              { return "Recent Transactions" }

// Render is the initial section view. The unfiltered list is fetched on mount.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	if middleware.Token(c) == "" {
		return components.LoginRequired(), nil
	}
	txs, err := h.fetch(c, bankapi.TransactionFilter{})
	return Layout(
		FilterForm(view.NewFormState()),
		ListPanel(txs, listMessage(err), false),
		MovementForm(KindDeposit, view.NewFormState(), ""),
		MovementForm(KindWithdraw, view.NewFormState(), ""),
		PaymentForm(view.NewFormState(), nil),
		StatusForm("", nil, ""),
	), nil
}

// List handles GET /dashboard/transactions/list with the filter form's values.
func (h *Handler) List(c echo.Context) error {
	form := view.BindForm(c, filterFields...)
	if errs := validation.TransactionFilterRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, ListPanel(nil, errs["date_of_transaction"], false))
	}

	txs, err := h.fetch(c, filterFrom(form))
	if err != nil {
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), ListPanel(nil, listMessage(err), false))
	}
	return h.renderer.RenderPage(c, http.StatusOK, ListPanel(txs, "", false))
}

// Deposit handles POST /dashboard/transactions/deposit.
func (h *Handler) Deposit(c echo.Context) error {
	return h.movement(c, KindDeposit)
}

// Withdraw handles POST /dashboard/transactions/withdraw.
func (h *Handler) Withdraw(c echo.Context) error {
	return h.movement(c, KindWithdraw)
}

// movement posts a deposit or withdrawal and, on success, re-fetches the list with
// the filters currently on the page.
func (h *Handler) movement(c echo.Context, kind string) error {
	form := view.BindForm(c, validation.MovementRules.Fields()...)
	if errs := validation.MovementRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, MovementForm(kind, form.WithErrors(errs), ""))
	}

	ctx := c.Request().Context()
	token := middleware.Token(c)
	amount, account := form.Value("amount"), form.Value("account_number")

	var (
		res *bankapi.MovementResult
		err error
	)
	activityKind := activity.KindDeposit
	if kind == KindDeposit {
		res, err = h.api.Deposit(ctx, token, amount, account)
	} else {
		activityKind = activity.KindWithdraw
		res, err = h.api.Withdraw(ctx, token, amount, account)
	}
	h.activity.Record(c, middleware.CIN(c), activityKind, err)
	if err != nil {
		form.Message = bankapi.UserMessage(err, "Failed to "+kind+".")
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), MovementForm(kind, form, ""))
	}

	filter := filterFrom(view.BindForm(c, filterFields...))
	txs, err := h.fetch(c, filter)
	return h.renderer.RenderPage(c, http.StatusOK, cmp.Group{
		MovementForm(kind, view.NewFormState(), res.Message),
		ListPanel(txs, listMessage(err), true),
	})
}

// Payment handles POST /dashboard/transactions/payment. The browser opens the
// returned link in a new tab.
func (h *Handler) Payment(c echo.Context) error {
	form := view.BindForm(c, validation.PaymentRules.Fields()...)
	if errs := validation.PaymentRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, PaymentForm(form.WithErrors(errs), nil))
	}

	payment, err := h.api.GeneratePayment(c.Request().Context(), middleware.Token(c), bankapi.PaymentRequest{
		Amount:    form.Value("amount"),
		Email:     form.Value("email"),
		FirstName: form.Value("first_name"),
		LastName:  form.Value("last_name"),
	})
	h.activity.Record(c, middleware.CIN(c), activity.KindPayment, err)
	if err != nil {
		if errors.Is(err, bankapi.ErrNoPaymentURL) {
			form.Message = msgNoPaymentURL
		} else {
			form.Message = bankapi.UserMessage(err, msgPaymentFailed)
		}
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), PaymentForm(form, nil))
	}

	if err := rendering.Trigger(c, OpenPaymentEvent, map[string]string{"url": payment.PaymentURL}); err != nil {
		return err
	}
	return h.renderer.RenderPage(c, http.StatusOK, PaymentForm(form, payment))
}

// PaymentStatus handles GET /dashboard/transactions/payment-status?token=.
func (h *Handler) PaymentStatus(c echo.Context) error {
	paymentToken := strings.TrimSpace(c.QueryParam("token"))
	if paymentToken == "" {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, StatusForm("", nil, msgMissingPayment))
	}

	status, err := h.api.CheckPayment(c.Request().Context(), middleware.Token(c), paymentToken)
	if err != nil {
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), StatusForm(paymentToken, nil, bankapi.UserMessage(err, msgStatusFailed)))
	}
	return h.renderer.RenderPage(c, http.StatusOK, StatusForm(paymentToken, status, ""))
}

func (h *Handler) fetch(c echo.Context, f bankapi.TransactionFilter) ([]bankapi.Transaction, error) {
	txs, err := h.api.ListTransactions(c.Request().Context(), middleware.Token(c), f)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Listing transactions failed", "error", err)
		return nil, err
	}
	return txs, nil
}

func listMessage(err error) string {
	if err == nil {
		return ""
	}
	return bankapi.UserMessage(err, msgListFailed)
}

// Filter inputs are prefixed so they do not collide with the movement forms'
// account_number when included in their requests.
var filterFields = []string{"filter_cin", "filter_account", "date_of_transaction"}

func filterFrom(fs view.FormState) bankapi.TransactionFilter {
	return bankapi.TransactionFilter{
		CIN:               fs.Value("filter_cin"),
		AccountNumber:     fs.Value("filter_account"),
		DateOfTransaction: fs.Value("date_of_transaction"),
	}
}

// PaymentToken extracts the payment token from a hosted payment URL, i.e. its last
// path segment.
func PaymentToken(paymentURL string) string {
	u, err := url.Parse(paymentURL)
	if err != nil {
		return ""
	}
	base := path.Base(strings.TrimRight(u.Path, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return base
}
