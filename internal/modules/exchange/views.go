package exchange

import (
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const panelID = "exchange-panel"

// Panel renders the converter form with its error or result line.
func Panel(conv Converter, errMsg string) cmp.Node {
	return g.Form(
		g.ID(panelID),
		hx.Post("/dashboard/exchange/convert"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		g.Class("space-y-6"),
		g.H2(g.Class("text-2xl font-bold text-gray-800"), cmp.Text("Currency Exchange")),
		g.Div(
			g.Class("bg-white p-6 rounded-lg shadow-md grid gap-6"),
			components.FormInput(components.InputProps{
				Label: "Amount", Name: "amount", Type: "number", Value: conv.Amount,
				Attrs: []cmp.Node{g.Placeholder("Enter amount"), cmp.Attr("step", "any")},
			}),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-3 gap-4 items-end"),
				currencySelect("From", "from_currency", conv.From),
				g.Button(
					g.Type("button"),
					g.Class("self-end p-2 text-indigo-600 hover:text-indigo-700"),
					cmp.Attr("aria-label", "Swap currencies"),
					hx.Post("/dashboard/exchange/swap"),
					hx.Target("#"+panelID),
					hx.Swap("outerHTML"),
					cmp.Text("⇄"),
				),
				currencySelect("To", "to_currency", conv.To),
			),
			g.Button(
				g.Type("submit"),
				g.Class("w-full bg-indigo-600 text-white py-2 rounded-md hover:bg-indigo-700 transition-colors"),
				cmp.Text("Convert"),
			),
			cmp.If(errMsg != "", g.P(g.Class("text-red-500 text-sm mt-4"), cmp.Text(errMsg))),
			cmp.If(conv.Converted != nil, g.P(g.ID("exchange-result"), g.Class("text-green-600 text-lg mt-4"), cmp.Text(conv.Result()))),
		),
	)
}

func currencySelect(label, name, value string) cmp.Node {
	options := make([]components.SelectOption, 0, len(Currencies))
	for _, c := range Currencies {
		options = append(options, components.SelectOption{Value: c.Code, Label: c.Code + " - " + c.Name})
	}
	return components.Select(label, name, value, "", options)
}
