package loan

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
	"github.com/shopspring/decimal"
	cmp "maragu.dev/gomponents"
)

const msgCheckFailed = "Failed to fetch loan eligibility. Please try again later."

// Handler serves the loan section.
type Handler struct {
	api      API
	renderer rendering.Renderer
	activity *activity.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(api API, renderer rendering.Renderer, rec *activity.Recorder) *Handler {
	return &Handler{api: api, renderer: renderer, activity: rec}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Loan }
func (h *Handler) Title() string              { return "Loan Eligibility & Simulation" }

// Render is the empty questionnaire.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	return Panel(defaultForm(), nil), nil
}

// Check handles POST /dashboard/loan/check.
func (h *Handler) Check(c echo.Context) error {
	form := view.BindForm(c, validation.LoanRules.Fields()...)
	if errs := validation.LoanRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, Panel(form.WithErrors(errs), nil))
	}

	res, err := h.api.CheckLoanEligibility(c.Request().Context(), middleware.Token(c), bankapi.LoanRequest{
		Income:           number(form.Value("income")),
		Debt:             number(form.Value("debt")),
		Savings:          number(form.Value("savings")),
		EmploymentStatus: form.Value("employment_status"),
	})
	h.activity.Record(c, middleware.CIN(c), activity.KindLoanCheck, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Loan eligibility check failed", "error", err)
		form.Message = bankapi.UserMessage(err, msgCheckFailed)
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), Panel(form, nil))
	}
	return h.renderer.RenderPage(c, http.StatusOK, Panel(form, res))
}

// number normalises an already validated decimal into a JSON number.
func number(v string) json.Number {
	return json.Number(decimal.RequireFromString(v).String())
}

func defaultForm() view.FormState {
	fs := view.NewFormState()
	fs.Values["employment_status"] = "employed"
	return fs
}
