package dashboard

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/web/src/templates/layouts"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// View is a section's initial render inside the main content area.
type View interface {
	Section() Section
	Title() string
	Render(c echo.Context) (cmp.Node, error)
}

// ViewKey is the registry key under which the module owning sec publishes its View.
func ViewKey(sec Section) registry.Key[View] {
	return registry.Key[View]("dashboard.view." + string(sec))
}

// ViewsFrom collects the registered section views.
func ViewsFrom(reg *registry.Registry) []View {
	var views []View
	for _, sec := range Sections {
		if v, ok := registry.Get(reg, ViewKey(sec)); ok {
			views = append(views, v)
		}
	}
	return views
}

// Handler serves the dashboard page and section switching.
type Handler struct {
	views    map[Section]View
	renderer rendering.Renderer
}

// NewHandler creates a Handler rendering the given views.
func NewHandler(renderer rendering.Renderer, views ...View) *Handler {
	h := &Handler{views: make(map[Section]View, len(views)), renderer: renderer}
	for _, v := range views {
		h.views[v.Section()] = v
	}
	return h
}

// Page handles GET /dashboard. Opening the dashboard always starts at the default section.
func (h *Handler) Page(c echo.Context) error {
	st, err := FromContext(c.Request().Context())
	if err != nil {
		return err
	}
	st.Reset()
	return h.renderPage(c, st)
}

// SetSection handles POST /dashboard/section/:section.
func (h *Handler) SetSection(c echo.Context) error {
	st, err := FromContext(c.Request().Context())
	if err != nil {
		return err
	}
	sec, err := ParseSection(c.Param("section"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Unknown section")
	}
	if err := st.SetActive(sec); err != nil {
		return err
	}

	if rendering.IsHTMX(c) {
		shell, err := h.shell(c, st)
		if err != nil {
			return err
		}
		return h.renderer.RenderPage(c, http.StatusOK, shell)
	}
	return h.renderPage(c, st)
}

// MainContent renders the view of the active section and nothing else.
func (h *Handler) MainContent(c echo.Context, st *State) (title string, content cmp.Node, err error) {
	v, ok := h.views[st.Active()]
	if !ok {
		return "Dashboard", g.P(g.Class("text-gray-600"), cmp.Text("This section is not available.")), nil
	}
	content, err = v.Render(c)
	if err != nil {
		return "", nil, fmt.Errorf("render %s section: %w", st.Active(), err)
	}
	return v.Title(), g.Div(g.ID("section-"+string(st.Active())), content), nil
}

func (h *Handler) shell(c echo.Context, st *State) (cmp.Node, error) {
	title, content, err := h.MainContent(c, st)
	if err != nil {
		return nil, err
	}
	return Shell(st.Active(), title, content), nil
}

func (h *Handler) renderPage(c echo.Context, st *State) error {
	shell, err := h.shell(c, st)
	if err != nil {
		return err
	}
	page := layouts.Base("Dashboard", view.GetFlashData(c), view.AdaptGomponentToTempl(shell))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}
