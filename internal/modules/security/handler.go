package security

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/validation"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
)

const (
	msgSendRejected   = "Failed to send verification code."
	msgSendFailed     = "An error occurred while sending the verification code."
	msgInvalidCode    = "Invalid verification code. Please try again."
	msgVerifyFailed   = "An error occurred while verifying the code. Please try again."
	msgIncompleteCode = "Enter the 6-digit code"
)

// Handler serves the security section.
type Handler struct {
	api      API
	renderer rendering.Renderer
	activity *activity.Recorder
}

// NewHandler creates a new Handler.
func NewHandler(api API, renderer rendering.Renderer, rec *activity.Recorder) *Handler {
	return &Handler{api: api, renderer: renderer, activity: rec}
}

func (h *Handler) Section() dashboard.Section { return dashboard.Security }
func (h *Handler) Title() string              { return "Security Center" }

// Render shows the security options overview.
func (h *Handler) Render(c echo.Context) (cmp.Node, error) {
	if middleware.Token(c) == "" {
		return components.LoginRequired(), nil
	}
	return Panel(NewWizard()), nil
}

// OpenTwoFactor handles POST /dashboard/security/two-factor.
func (h *Handler) OpenTwoFactor(c echo.Context) error {
	w := wizardFrom(c)
	w.OpenTwoFactor()
	return h.render(c, http.StatusOK, w)
}

// ChooseMethod handles POST /dashboard/security/method.
func (h *Handler) ChooseMethod(c echo.Context) error {
	w := wizardFrom(c)
	if err := w.ChooseSMS(); err != nil {
		return h.render(c, http.StatusConflict, NewWizard())
	}
	return h.render(c, http.StatusOK, w)
}

// Send handles POST /dashboard/security/send with phone_number.
func (h *Handler) Send(c echo.Context) error {
	w := wizardFrom(c)
	if w.Step != StepPhone {
		return h.render(c, http.StatusConflict, NewWizard())
	}
	if errs := validation.PhoneRules.Validate(map[string]string{"phone_number": w.Phone}); len(errs) > 0 {
		w.Fail(errs["phone_number"])
		return h.render(c, http.StatusUnprocessableEntity, w)
	}

	_, err := h.api.SendVerification(c.Request().Context(), middleware.Token(c), w.Phone)
	h.activity.Record(c, middleware.CIN(c), activity.KindVerification, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Sending verification code failed", "error", err)
		w.Fail(failureMessage(err, msgSendRejected, msgSendFailed))
		return h.render(c, failureStatus(err), w)
	}

	_ = w.CodeSent()
	return h.render(c, http.StatusOK, w)
}

// Verify handles POST /dashboard/security/verify with phone_number and code.
func (h *Handler) Verify(c echo.Context) error {
	w := wizardFrom(c)
	if w.Step != StepCode {
		return h.render(c, http.StatusConflict, NewWizard())
	}
	code := w.Code.String()
	if errs := validation.CodeRules.Validate(map[string]string{"code": code}); len(errs) > 0 || !w.Code.Complete() {
		w.Fail(msgIncompleteCode)
		return h.render(c, http.StatusUnprocessableEntity, w)
	}

	_, err := h.api.VerifyCode(c.Request().Context(), middleware.Token(c), w.Phone, code)
	h.activity.Record(c, middleware.CIN(c), activity.KindTwoFactor, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Verifying code failed", "error", err)
		w.Fail(failureMessage(err, msgInvalidCode, msgVerifyFailed))
		return h.render(c, failureStatus(err), w)
	}

	_ = w.Verified()
	return h.render(c, http.StatusOK, w)
}

// Back handles POST /dashboard/security/back.
func (h *Handler) Back(c echo.Context) error {
	w := wizardFrom(c)
	w.Back()
	return h.render(c, http.StatusOK, w)
}

func (h *Handler) render(c echo.Context, status int, w Wizard) error {
	return h.renderer.RenderPage(c, status, Panel(w))
}

func wizardFrom(c echo.Context) Wizard {
	return ParseWizard(c.FormValue("view"), c.FormValue("step"), strings.TrimSpace(c.FormValue("phone_number")), c.FormValue("code"))
}

// failureMessage prefers the backend's own words. rejected is the fallback when the
// backend answered but refused, unreachable when it could not be asked at all.
func failureMessage(err error, rejected, unreachable string) string {
	if bankapi.StatusCode(err) == 0 {
		return bankapi.UserMessage(err, unreachable)
	}
	return bankapi.UserMessage(err, rejected)
}

// failureStatus maps a 2xx answer carrying "success": false to 422.
func failureStatus(err error) int {
	if code := bankapi.StatusCode(err); code >= 200 && code < 300 {
		return http.StatusUnprocessableEntity
	}
	return bankapi.ResponseStatus(err)
}
