package accounts

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/validation"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	"github.com/shopspring/decimal"
	cmp "maragu.dev/gomponents"
)

const (
	msgCreated       = "Account created successfully!"
	msgCreateFailed  = "Failed to create account."
	msgListFailed    = "Failed to fetch accounts."
	defaultAccountTy = "checking"
)

// Handler serves the accounts section.
type Handler struct {
	api      API
	renderer rendering.Renderer
	activity *activity.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(api API, renderer rendering.Renderer, rec *activity.Recorder) *Handler {
	return &Handler{api: api, renderer: renderer, activity: rec}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Accounts }
func (h *Handler) Title() string              { return "My Accounts" }

// Render is the initial section view. Accounts are only fetched when asked for.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	if middleware.Token(c) == "" {
		return components.LoginRequired(), nil
	}
	return Layout(ListPanel(nil, "", false), CreateForm(newAccountForm(middleware.CIN(c)), "")), nil
}

// List handles GET /dashboard/accounts/list.
func (h *Handler) List(c echo.Context) error {
	accounts, err := h.api.ListAccounts(c.Request().Context(), middleware.Token(c))
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Listing accounts failed", "error", err)
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), ListPanel(nil, bankapi.UserMessage(err, msgListFailed), false))
	}
	return h.renderer.RenderPage(c, http.StatusOK, ListPanel(accounts, "", true))
}

// Create handles POST /dashboard/accounts. On success the response carries the new
// row out of band so it is appended to the list already on the page.
func (h *Handler) Create(c echo.Context) error {
	form := view.BindForm(c, validation.AccountRules.Fields()...)
	if errs := validation.AccountRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, CreateForm(form.WithErrors(errs), ""))
	}

	cin := form.Value("CIN")
	acct, err := h.api.CreateAccount(c.Request().Context(), middleware.Token(c), bankapi.NewAccount{
		CIN:         cin,
		AccountType: form.Value("account_type"),
		Balance:     jsonNumber(form.Value("balance")),
	})
	h.activity.Record(c, cin, activity.KindAccountCreated, err)
	if err != nil {
		form.Message = bankapi.UserMessage(err, msgCreateFailed)
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), CreateForm(form, ""))
	}

	return h.renderer.RenderPage(c, http.StatusOK, cmp.Group{
		CreateForm(newAccountForm(cin), msgCreated),
		AppendRow(*acct),
	})
}

// jsonNumber rewrites a validated decimal in canonical form, so inputs such as ".5" or
// "007" become valid JSON number literals.
func jsonNumber(v string) json.Number {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return json.Number(v)
	}
	return json.Number(d.String())
}

func newAccountForm(cin string) view.FormState {
	fs := view.NewFormState()
	fs.Values["CIN"] = cin
	fs.Values["account_type"] = defaultAccountTy
	fs.Values["balance"] = "0"
	return fs
}
