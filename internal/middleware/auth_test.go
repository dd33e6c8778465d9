package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/session"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/stretchr/testify/assert"
)

type stubStorage struct {
	token string
	cin   string
	err   error
}

func (s *stubStorage) Token(echo.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.token == "" {
		return "", session.ErrNoToken
	}
	return s.token, nil
}
func (s *stubStorage) CIN(echo.Context) string                  { return s.cin }
func (s *stubStorage) SetAuth(_ echo.Context, t, c string) error { s.token, s.cin = t, c; return nil }
func (s *stubStorage) Section(echo.Context) string              { return "" }
func (s *stubStorage) SetSection(echo.Context, string) error    { return nil }
func (s *stubStorage) Clear(echo.Context) error                 { s.token, s.cin = "", ""; return nil }

func TestSessionMiddleware(t *testing.T) {
	newServer := func(store session.Storage) *echo.Echo {
		e := echo.New()
		g := e.Group("/dashboard/accounts", LoadSession(store), RequireSession())
		g.GET("/list", func(c echo.Context) error {
			return c.String(http.StatusOK, Token(c)+"|"+CIN(c))
		})
		return e
	}

	t.Run("token and cin reach the handler", func(t *testing.T) {
		e := newServer(&stubStorage{token: "abc", cin: "123"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/accounts/list", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc|123", rec.Body.String())
	})

	t.Run("missing token renders the login notice", func(t *testing.T) {
		e := newServer(&stubStorage{})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/accounts/list", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "You must be logged in")
		assert.Contains(t, rec.Body.String(), `href="/"`)
	})

	t.Run("htmx requests get the notice as a fragment", func(t *testing.T) {
		e := newServer(&stubStorage{})
		req := httptest.NewRequest(http.MethodGet, "/dashboard/accounts/list", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "You must be logged in")
		assert.NotContains(t, rec.Body.String(), "<html")
	})
}

func TestLoadSessionFlashesExpiredToken(t *testing.T) {
	newServer := func(store session.Storage) *echo.Echo {
		e := echo.New()
		e.Use(echosession.Middleware(session.NewCookieStore("test-secret-test-secret", false)))
		e.GET("/dashboard", func(c echo.Context) error {
			return c.String(http.StatusOK, Token(c)+"|"+strings.Join(view.GetFlashData(c).Error, ","))
		}, LoadSession(store))
		return e
	}

	t.Run("expired", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(&stubStorage{err: session.ErrTokenExpired}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "|Your session has expired. Please sign in again.", rec.Body.String())
	})

	t.Run("never signed in", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newServer(&stubStorage{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		assert.Equal(t, "|", rec.Body.String())
	})
}
