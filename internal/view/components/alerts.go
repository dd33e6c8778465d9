package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ErrorMessage renders a red inline message, or nothing when msg is empty.
func ErrorMessage(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.Div(g.Class("mb-4 rounded-md bg-red-50 p-3 text-sm text-red-700"), cmp.Attr("role", "alert"), cmp.Text(msg))
}

// SuccessMessage renders a green inline message, or nothing when msg is empty.
func SuccessMessage(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.Div(g.Class("mb-4 rounded-md bg-green-50 p-3 text-sm text-green-700"), cmp.Attr("role", "status"), cmp.Text(msg))
}

// LoginRequired is shown in place of an authenticated view when no session token exists.
func LoginRequired() cmp.Node {
	return g.Div(
		g.Class("rounded-md bg-yellow-50 p-4 text-sm text-yellow-800"),
		cmp.Attr("role", "alert"),
		cmp.Text("You must be logged in to view this page. "),
		g.A(g.Href("/"), g.Class("font-medium underline"), cmp.Text("Sign in")),
	)
}

// SubmitButton renders the primary submit button of a form.
func SubmitButton(label string) cmp.Node {
	return g.Button(
		g.Type("submit"),
		g.Class("w-full flex justify-center py-2 px-4 border border-transparent rounded-md shadow-sm text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700"),
		cmp.Text(label),
	)
}

// Card wraps children in the white panel used by every section.
func Card(title string, children ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("bg-white rounded-xl shadow p-6 mb-6"),
		cmp.If(title != "", g.H3(g.Class("text-lg font-semibold text-gray-900 mb-4"), cmp.Text(title))),
		cmp.Group(children),
	)
}
