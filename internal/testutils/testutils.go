package testutils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/config"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/session"
	cmp "maragu.dev/gomponents"
)

// ConfigForTests sets a test environment and returns a valid config.Provider.
// A .env.test file at the project root, when present, overrides the defaults.
func ConfigForTests(t *testing.T) config.Provider {
	t.Helper()

	env := map[string]string{
		"SESSION_SECRET": "a-very-secret-key-for-testing-!",
		"BACKEND_URL":    "http://127.0.0.1:1",
		"GEO_URL":        "http://127.0.0.1:1",
		"LOG_LEVEL":      "error",
	}
	if root, ok := projectRoot(); ok {
		if fileEnv, err := godotenv.Read(filepath.Join(root, ".env.test")); err == nil {
			for k, v := range fileEnv {
				env[k] = v
			}
		}
	}
	for key, value := range env {
		t.Setenv(key, value)
	}

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("failed to build test config: %v", err)
	}
	return cfg
}

func projectRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}

// MemStorage is an in-memory session.Storage.
type MemStorage struct {
	AuthToken     string
	ClientCIN     string
	ActiveSection string
	Cleared       bool
}

// Signed returns a storage holding a session for token and cin.
func Signed(token, cin string) *MemStorage {
	return &MemStorage{AuthToken: token, ClientCIN: cin}
}

func (m *MemStorage) Token(echo.Context) (string, error) {
	if m.AuthToken == "" {
		return "", session.ErrNoToken
	}
	return m.AuthToken, nil
}

func (m *MemStorage) CIN(echo.Context) string { return m.ClientCIN }

func (m *MemStorage) SetAuth(_ echo.Context, token, cin string) error {
	m.AuthToken, m.ClientCIN = token, cin
	return nil
}

func (m *MemStorage) Section(echo.Context) string { return m.ActiveSection }

func (m *MemStorage) SetSection(_ echo.Context, s string) error {
	m.ActiveSection = s
	return nil
}

func (m *MemStorage) Clear(echo.Context) error {
	*m = MemStorage{Cleared: true}
	return nil
}

// SectionServer returns an echo instance with the session loaded from store and a group
// mounted at prefix, handed to mount for route registration.
func SectionServer(store session.Storage, prefix string, mount func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	e.Use(middleware.LoadSession(store))
	mount(e.Group(prefix))
	return e
}

// Viewer is anything that renders a dashboard section view.
type Viewer interface {
	Render(c echo.Context) (cmp.Node, error)
}

// ViewHandler serves v's initial render as a plain page, for mounting in tests.
func ViewHandler(v Viewer) echo.HandlerFunc {
	return func(c echo.Context) error {
		node, err := v.Render(c)
		if err != nil {
			return err
		}
		return rendering.NewUniversalRenderer().RenderPage(c, http.StatusOK, node)
	}
}

// Request describes a test request.
type Request struct {
	Method string
	Target string
	Form   url.Values
	HTMX   bool
}

// Do serves r against e and returns the recorded response.
func Do(e *echo.Echo, r Request) *httptest.ResponseRecorder {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var req *http.Request
	if r.Form != nil {
		req = httptest.NewRequest(method, r.Target, strings.NewReader(r.Form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, r.Target, nil)
	}
	if r.HTMX {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// RenderNode renders n to a string.
func RenderNode(t *testing.T, n cmp.Node) string {
	t.Helper()
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		t.Fatalf("render node: %v", err)
	}
	return b.String()
}
