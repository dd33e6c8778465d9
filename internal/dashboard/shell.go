package dashboard

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Item is one sidebar entry. It carries the Section it activates, so highlighting is a
// plain comparison with the active section.
type Item struct {
	Label   string
	Icon    string
	Section Section
}

// Items is the sidebar menu in display order.
var Items = []Item{
	{Label: "My Accounts", Icon: "💳", Section: Accounts},
	{Label: "Transactions", Icon: "↔", Section: Transactions},
	{Label: "Loan Eligibility", Icon: "🏦", Section: Loan},
	{Label: "Find Branch/ATM", Icon: "📍", Section: Bills},
	{Label: "Currency Exchange", Icon: "💱", Section: Exchange},
	{Label: "Security Center", Icon: "🛡", Section: Security},
}

const shellID = "dashboard-shell"

// NavItem renders a sidebar entry that activates item.Section when clicked.
func NavItem(item Item, active Section) cmp.Node {
	selected := item.Section == active
	classes := "nav-item w-full flex items-center gap-3 px-4 py-2 rounded-md text-sm font-medium "
	if selected {
		classes += "bg-indigo-50 text-indigo-700"
	} else {
		classes += "text-gray-600 hover:bg-gray-50"
	}
	action := "/dashboard/section/" + string(item.Section)

	return g.Form(
		g.Method("post"),
		g.Action(action),
		hx.Post(action),
		hx.Target("#"+shellID),
		hx.Swap("outerHTML"),
		g.Button(
			g.Type("submit"),
			g.Class(classes),
			cmp.If(selected, cmp.Attr("aria-current", "page")),
			g.Span(cmp.Text(item.Icon)),
			g.Span(cmp.Text(item.Label)),
		),
	)
}

// Sidebar renders the navigation menu and the logout control.
func Sidebar(active Section) cmp.Node {
	return g.Aside(
		g.Class("w-64 bg-white shadow-md flex flex-col"),
		g.Div(g.Class("p-6 text-2xl font-bold text-indigo-700"), cmp.Text("EasyDinar")),
		g.Nav(
			g.Class("flex-1 px-2 space-y-1"),
			cmp.Map(Items, func(item Item) cmp.Node { return NavItem(item, active) }),
		),
		g.Form(
			g.Method("post"),
			g.Action("/logout"),
			g.Class("p-4 border-t"),
			g.Button(
				g.Type("submit"),
				g.Class("w-full flex items-center gap-3 px-4 py-2 rounded-md text-sm font-medium text-red-600 hover:bg-red-50"),
				cmp.Text("Logout"),
			),
		),
	)
}

// Shell is the dashboard frame: sidebar plus main content. It is also the fragment
// swapped in when the section changes.
func Shell(active Section, title string, content cmp.Node) cmp.Node {
	return g.Div(
		g.ID(shellID),
		g.Class("flex min-h-screen"),
		Sidebar(active),
		g.Main(
			g.ID("main-content"),
			g.Class("flex-1 p-8"),
			cmp.Attr("data-section", string(active)),
			g.H1(g.Class("text-2xl font-bold text-gray-900 mb-6"), cmp.Text(title)),
			content,
		),
	)
}
