// Package components holds the small building blocks shared by every page.
package components

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// InputProps describes a labeled input. The component keeps no state: value and
// error come from the caller on every render.
type InputProps struct {
	Label string
	Name  string
	Type  string
	Value string
	Error string
	// Icon is rendered at the trailing edge of the input when set.
	Icon  cmp.Node
	Attrs []cmp.Node
}

// FormInput renders a labeled input with an optional trailing icon and an error line.
func FormInput(p InputProps) cmp.Node {
	typ := p.Type
	if typ == "" {
		typ = "text"
	}
	border := "border-gray-300"
	if p.Error != "" {
		border = "border-red-300"
	}

	return g.Div(
		g.Label(
			g.For(p.Name),
			g.Class("block text-sm font-medium text-gray-700"),
			cmp.Text(p.Label),
		),
		g.Div(
			g.Class("mt-1 relative"),
			g.Input(
				g.Type(typ),
				g.Name(p.Name),
				g.ID(p.Name),
				cmp.If(typ != "password", g.Value(p.Value)),
				g.Class("appearance-none block w-full px-3 py-2 border rounded-md shadow-sm placeholder-gray-400 focus:outline-none focus:ring-indigo-500 focus:border-indigo-500 "+border),
				cmp.Group(p.Attrs),
			),
			cmp.If(p.Icon != nil, g.Div(g.Class("absolute right-3 top-2 text-gray-400"), p.Icon)),
		),
		FieldError(p.Error),
	)
}

// FieldError renders the error line under a field, or nothing when msg is empty.
func FieldError(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.P(g.Class("mt-1 text-sm text-red-600"), cmp.Text(msg))
}

// SelectOption is one choice of a Select.
type SelectOption struct {
	Value string
	Label string
}

// Select renders a labeled drop-down with the option equal to value selected.
func Select(label, name, value, errMsg string, options []SelectOption) cmp.Node {
	return g.Div(
		g.Label(g.For(name), g.Class("block text-sm font-medium text-gray-700"), cmp.Text(label)),
		g.Select(
			g.Name(name),
			g.ID(name),
			g.Class("mt-1 block w-full px-3 py-2 border border-gray-300 rounded-md shadow-sm"),
			cmp.Map(options, func(o SelectOption) cmp.Node {
				return g.Option(g.Value(o.Value), cmp.If(o.Value == value, g.Selected()), cmp.Text(o.Label))
			}),
		),
		FieldError(errMsg),
	)
}

// Hidden renders a hidden input.
func Hidden(name, value string) cmp.Node {
	return g.Input(g.Type("hidden"), g.Name(name), g.Value(value))
}
