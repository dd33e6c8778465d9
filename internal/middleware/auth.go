package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/session"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
)

const (
	tokenContextKey = "session_token"
	cinContextKey   = "session_cin"
)

const msgSessionExpired = "Your session has expired. Please sign in again."

// LoadSession copies the stored bearer token and CIN onto the echo context when present.
// Requests without a session pass through untouched; a dropped expired token leaves an
// error flash for the page being rendered.
func LoadSession(store session.Storage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := store.Token(c)
			switch {
			case err == nil:
				c.Set(tokenContextKey, token)
				c.Set(cinContextKey, store.CIN(c))
			case errors.Is(err, session.ErrTokenExpired):
				view.SetFlashError(c, msgSessionExpired)
			case !errors.Is(err, session.ErrNoToken):
				FromContext(c.Request().Context()).Error("Failed to read session", "error", err)
			}
			return next(c)
		}
	}
}

// RequireSession answers requests without a session token with the "must be logged in"
// notice and never calls next. It must run after LoadSession.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Token(c) == "" {
				return rendering.NewUniversalRenderer().RenderPage(c, http.StatusUnauthorized, components.LoginRequired())
			}
			return next(c)
		}
	}
}

// Token returns the bearer token loaded by LoadSession, or "".
func Token(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}

// CIN returns the client's CIN loaded by LoadSession, or "".
func CIN(c echo.Context) string {
	cin, _ := c.Get(cinContextKey).(string)
	return cin
}
