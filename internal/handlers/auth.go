package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/activity"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/session"
	"github.com/rabie-karouia/EasyDinar/internal/validation"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/dto/auth"
	"github.com/rabie-karouia/EasyDinar/web/src/templates/layouts"
	"github.com/rabie-karouia/EasyDinar/web/src/templates/pages"
	cmp "maragu.dev/gomponents"
)

const (
	msgRecoverySent    = "Password reset link has been sent to your email."
	msgRecoveryFailed  = "Failed to send reset link."
	msgPasswordUpdated = "Password updated successfully!"
	msgResetFailed     = "Failed to update password. Please try again."
	msgMissingToken    = "This reset link is invalid or incomplete. Request a new one."
	msgLoggedOut       = "You have been logged out."
)

// AuthAPI is the part of the bank API the auth pages talk to.
type AuthAPI interface {
	SignUp(ctx context.Context, req bankapi.SignUpRequest) (*bankapi.SignUpResult, error)
	Login(ctx context.Context, clientIdentifier, password string) (*bankapi.Session, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// AuthHandler serves the sign-up, sign-in, password recovery and logout flows.
type AuthHandler struct {
	api      AuthAPI
	store    session.Storage
	activity *activity.Recorder
	renderer rendering.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api AuthAPI, store session.Storage, rec *activity.Recorder, renderer rendering.Renderer) *AuthHandler {
	return &AuthHandler{
		api:      api,
		store:    store,
		activity: rec,
		renderer: renderer,
	}
}

// Home renders the landing page with both auth forms (GET /).
func (h *AuthHandler) Home(c echo.Context) error {
	return h.renderAuthPage(c, http.StatusOK, auth.AuthPageData{
		SignUp: auth.SignUpData{Form: view.NewFormState()},
		SignIn: auth.SignInData{Form: view.NewFormState()},
	})
}

// SignUpPost creates a client on the backend (POST /signup).
func (h *AuthHandler) SignUpPost(c echo.Context) error {
	form := view.BindForm(c, validation.SignUpRules.Fields()...)
	data := auth.AuthPageData{SignIn: auth.SignInData{Form: view.NewFormState()}}

	if errs := validation.SignUpRules.Validate(form.Values); len(errs) > 0 {
		data.SignUp.Form = form.WithErrors(errs)
		return h.renderAuthPage(c, http.StatusUnprocessableEntity, data)
	}

	res, err := h.api.SignUp(c.Request().Context(), bankapi.SignUpRequest{
		FirstName:   form.Value("first_name"),
		LastName:    form.Value("last_name"),
		CIN:         form.Value("CIN"),
		PhoneNumber: form.Value("phone_number"),
		Address:     form.Value("address"),
		Email:       form.Value("email"),
		Password:    form.Value("password"),
	})
	h.activity.Record(c, form.Value("CIN"), activity.KindSignUp, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Sign-up failed", "error", err)
		form.Message = signUpFailure(err)
		data.SignUp.Form = form
		return h.renderAuthPage(c, bankapi.ResponseStatus(err), data)
	}

	data.SignUp = auth.SignUpData{Form: view.NewFormState(), ClientIdentifier: res.ClientIdentifier}
	return h.renderAuthPage(c, http.StatusOK, data)
}

// signUpFailure shows the raw backend payload, which carries per-field details.
func signUpFailure(err error) string {
	var apiErr *bankapi.APIError
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		return "Error: " + apiErr.Body
	}
	return "Error: " + bankapi.UserMessage(err, bankapi.GenericMessage)
}

// SignInPost exchanges credentials for a session (POST /signin).
func (h *AuthHandler) SignInPost(c echo.Context) error {
	form := view.BindForm(c, validation.SignInRules.Fields()...)
	data := auth.AuthPageData{SignUp: auth.SignUpData{Form: view.NewFormState()}}

	if errs := validation.SignInRules.Validate(form.Values); len(errs) > 0 {
		data.SignIn.Form = form.WithErrors(errs)
		return h.renderAuthPage(c, http.StatusUnprocessableEntity, data)
	}

	sess, err := h.api.Login(c.Request().Context(), form.Value("client_identifier"), form.Value("password"))
	if err != nil {
		h.activity.Record(c, "", activity.KindSignIn, err)
		middleware.FromContext(c.Request().Context()).Info("Sign-in rejected", "error", err)
		form.Message = "Error: " + bankapi.UserMessage(err, "Invalid credentials")
		data.SignIn.Form = form
		return h.renderAuthPage(c, bankapi.ResponseStatus(err), data)
	}

	if err := h.store.SetAuth(c, sess.AccessToken, sess.CIN); err != nil {
		return err
	}
	h.activity.Record(c, sess.CIN, activity.KindSignIn, nil)
	return rendering.Redirect(c, "/dashboard")
}

// PasswordRecoveryGet renders the reset-link request page.
func (h *AuthHandler) PasswordRecoveryGet(c echo.Context) error {
	return h.render(c, http.StatusOK, "Reset Password",
		pages.PasswordRecoveryPage(auth.PasswordRecoveryData{Form: view.NewFormState()}))
}

// PasswordRecoveryPost asks the backend to email a reset link.
func (h *AuthHandler) PasswordRecoveryPost(c echo.Context) error {
	form := view.BindForm(c, validation.ResetRequestRules.Fields()...)
	data := auth.PasswordRecoveryData{}

	if errs := validation.ResetRequestRules.Validate(form.Values); len(errs) > 0 {
		data.Form = form.WithErrors(errs)
		return h.render(c, http.StatusUnprocessableEntity, "Reset Password", pages.PasswordRecoveryPage(data))
	}

	err := h.api.RequestPasswordReset(c.Request().Context(), form.Value("email"))
	h.activity.Record(c, "", activity.KindPasswordRecover, err)
	if err != nil {
		form.Message = bankapi.UserMessage(err, msgRecoveryFailed)
		data.Form = form
		return h.render(c, bankapi.ResponseStatus(err), "Reset Password", pages.PasswordRecoveryPage(data))
	}

	data.Form = view.NewFormState()
	data.Success = msgRecoverySent
	return h.render(c, http.StatusOK, "Reset Password", pages.PasswordRecoveryPage(data))
}

// ResetPasswordGet renders the new-password form for the token in the reset link.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	data := auth.ResetPasswordData{Token: c.QueryParam("token"), Form: view.NewFormState()}
	if data.Token == "" {
		data.Form.Message = msgMissingToken
	}
	return h.render(c, http.StatusOK, "New Password", pages.ResetPasswordPage(data))
}

// ResetPasswordPost sets the new password.
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	form := view.BindForm(c, validation.ResetPasswordRules.Fields()...)
	data := auth.ResetPasswordData{Token: c.QueryParam("token")}

	if data.Token == "" {
		data.Form = view.NewFormState()
		data.Form.Message = msgMissingToken
		return h.render(c, http.StatusBadRequest, "New Password", pages.ResetPasswordPage(data))
	}
	if errs := validation.ResetPasswordRules.Validate(form.Values); len(errs) > 0 {
		data.Form = form.WithErrors(errs)
		return h.render(c, http.StatusUnprocessableEntity, "New Password", pages.ResetPasswordPage(data))
	}

	err := h.api.ResetPassword(c.Request().Context(), data.Token, form.Value("password"))
	h.activity.Record(c, "", activity.KindPasswordReset, err)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Warn("Password reset failed", "error", err)
		data.Form = form.Reset()
		data.Form.Message = msgResetFailed
		return h.render(c, bankapi.ResponseStatus(err), "New Password", pages.ResetPasswordPage(data))
	}

	data.Form = view.NewFormState()
	data.Success = msgPasswordUpdated
	return h.render(c, http.StatusOK, "New Password", pages.ResetPasswordPage(data))
}

// Logout revokes the session on the backend and always clears it locally.
// Without a token it redirects straight away.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, err := h.store.Token(c)
	if err != nil {
		if !errors.Is(err, session.ErrNoToken) {
			middleware.FromContext(c.Request().Context()).Error("Failed to read session", "error", err)
		}
		return rendering.Redirect(c, "/")
	}

	cin := h.store.CIN(c)
	logoutErr := h.api.Logout(c.Request().Context(), token)
	if logoutErr != nil {
		middleware.FromContext(c.Request().Context()).Warn("Backend logout failed", "error", logoutErr)
	}
	if err := h.store.Clear(c); err != nil {
		return err
	}
	h.activity.Record(c, cin, activity.KindLogout, logoutErr)
	view.SetFlashSuccess(c, msgLoggedOut)
	return rendering.Redirect(c, "/")
}

func (h *AuthHandler) renderAuthPage(c echo.Context, status int, data auth.AuthPageData) error {
	return h.render(c, status, "Welcome", pages.AuthPage(data))
}

func (h *AuthHandler) render(c echo.Context, status int, title string, content cmp.Node) error {
	page := layouts.Base(title, view.GetFlashData(c), view.AdaptGomponentToTempl(content))
	return h.renderer.RenderPage(c, status, page)
}
