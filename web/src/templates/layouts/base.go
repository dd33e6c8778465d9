package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

const (
	htmxSrc       = "https://unpkg.com/htmx.org@2.0.3"
	tailwindSrc   = "https://cdn.tailwindcss.com"
	leafletCSSSrc = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	leafletJSSrc  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"

	// Section fragments answer validation and backend failures with 4xx/5xx and still
	// expect to be swapped in.
	htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`
)

// Base wraps page content in the HTML document shared by every page.
func Base(title string, flashes view.FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Document(title, flashes, view.AdaptTemplToGomponentCtx(ctx, content)).Render(w)
	})
}

// Document is the gomponents form of Base.
func Document(title string, flashes view.FlashData, content cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.Meta(g.Name("htmx-config"), g.Content(htmxConfig)),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Script(g.Src(tailwindSrc)),
				g.Link(g.Rel("stylesheet"), g.Href(leafletCSSSrc)),
				g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
				g.Script(g.Src(leafletJSSrc), g.Defer()),
				g.Script(g.Src("/static/app.js"), g.Defer()),
			),
			g.Body(
				g.Class("min-h-screen bg-gradient-to-br from-blue-50 to-indigo-100"),
				Flashes(flashes),
				content,
			),
		),
	)
}

// Flashes renders the one-shot messages at the top of the page.
func Flashes(f view.FlashData) cmp.Node {
	if len(f.Success) == 0 && len(f.Error) == 0 {
		return nil
	}
	return g.Div(
		g.ID("flashes"),
		g.Class("max-w-3xl mx-auto pt-4 px-4"),
		cmp.Map(f.Success, func(msg string) cmp.Node {
			return g.Div(g.Class("mb-2 rounded-md bg-green-50 p-3 text-sm text-green-700"), cmp.Text(msg))
		}),
		cmp.Map(f.Error, func(msg string) cmp.Node {
			return g.Div(g.Class("mb-2 rounded-md bg-red-50 p-3 text-sm text-red-700"), cmp.Text(msg))
		}),
	)
}
