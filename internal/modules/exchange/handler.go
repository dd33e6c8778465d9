package exchange

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/validation"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	cmp "maragu.dev/gomponents"
)

const (
	msgRateFailed    = "Failed to fetch exchange rate."
	msgUnsupported   = "Select a currency from the list."
	msgInvalidAmount = "Please enter a valid amount."
)

// Handler serves the exchange section.
type Handler struct {
	api      API
	renderer rendering.Renderer
	activity *activity.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(api API, renderer rendering.Renderer, rec *activity.Recorder) *Handler {
	return &Handler{api: api, renderer: renderer, activity: rec}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Exchange }
func (h *Handler) Title() string              { return "Currency Exchange" }

// Render is the empty converter.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	return Panel(NewConverter(), ""), nil
}

// Convert handles POST /dashboard/exchange/convert.
func (h *Handler) Convert(c echo.Context) error {
	form := view.BindForm(c, validation.ExchangeRules.Fields()...)
	conv := converterFrom(form)

	if errs := validation.ExchangeRules.Validate(form.Values); len(errs) > 0 {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, Panel(conv, firstError(errs)))
	}
	if !Supported(conv.From) || !Supported(conv.To) {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, Panel(conv, msgUnsupported))
	}

	rate, err := h.api.ExchangeRate(c.Request().Context(), conv.From, conv.To)
	h.activity.Record(c, middleware.CIN(c), activity.KindExchange, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Exchange rate lookup failed",
			"from", conv.From, "to", conv.To, "error", err)
		return h.renderer.RenderPage(c, bankapi.ResponseStatus(err), Panel(conv, bankapi.UserMessage(err, msgRateFailed)))
	}

	if err := conv.Convert(rate); err != nil {
		return h.renderer.RenderPage(c, http.StatusUnprocessableEntity, Panel(conv, msgInvalidAmount))
	}
	return h.renderer.RenderPage(c, http.StatusOK, Panel(conv, ""))
}

// Swap handles POST /dashboard/exchange/swap.
func (h *Handler) Swap(c echo.Context) error {
	conv := converterFrom(view.BindForm(c, validation.ExchangeRules.Fields()...))
	conv.Swap()
	return h.renderer.RenderPage(c, http.StatusOK, Panel(conv, ""))
}

func converterFrom(fs view.FormState) Converter {
	conv := NewConverter()
	conv.Amount = fs.Value("amount")
	if v := fs.Value("from_currency"); v != "" {
		conv.From = v
	}
	if v := fs.Value("to_currency"); v != "" {
		conv.To = v
	}
	return conv
}

// firstError picks the message to show in rule order.
func firstError(errs map[string]string) string {
	for _, f := range validation.ExchangeRules.Fields() {
		if msg, ok := errs[f]; ok {
			return msg
		}
	}
	return ""
}
