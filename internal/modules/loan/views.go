package loan

import (
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const panelID = "loan-panel"

var employmentStatuses = []components.SelectOption{
	{Value: "employed", Label: "Employed"},
	{Value: "self-employed", Label: "Self-Employed"},
	{Value: "unemployed", Label: "Unemployed"},
}

// Panel renders the questionnaire and, when res is set, the verdict below it.
func Panel(f view.FormState, res *bankapi.LoanEligibility) cmp.Node {
	return g.Div(
		g.ID(panelID),
		g.Class("bg-white rounded-xl shadow-md overflow-hidden"),
		g.Form(
			hx.Post("/dashboard/loan/check"),
			hx.Target("#"+panelID),
			hx.Swap("outerHTML"),
			g.Class("p-6 space-y-6"),
			g.Div(
				g.Class("grid grid-cols-1 md:grid-cols-2 gap-6"),
				amountInput("Monthly Income", "income", "Enter your monthly income", f),
				amountInput("Monthly Debt", "debt", "Enter your monthly debt", f),
				amountInput("Total Savings", "savings", "Enter your total savings", f),
				components.Select("Employment Status", "employment_status", f.Value("employment_status"), f.Error("employment_status"), employmentStatuses),
			),
			components.SubmitButton("Calculate Eligibility"),
		),
		cmp.If(f.Message != "", g.Div(g.Class("p-6 bg-red-50 border-t text-red-600"), g.P(cmp.Text(f.Message)))),
		cmp.Iff(res != nil, func() cmp.Node { return Result(res) }),
	)
}

func amountInput(label, name, placeholder string, f view.FormState) cmp.Node {
	return components.FormInput(components.InputProps{
		Label: label, Name: name, Type: "number",
		Value: f.Value(name), Error: f.Error(name),
		Attrs: []cmp.Node{g.Placeholder(placeholder), cmp.Attr("step", "any")},
	})
}

// Result renders the backend's verdict with the per-bank simulator links.
func Result(res *bankapi.LoanEligibility) cmp.Node {
	return g.Div(
		g.ID("loan-result"),
		g.Class("p-6 bg-gray-50 border-t"),
		g.H2(g.Class("text-lg font-semibold mb-2"), cmp.Text("Eligibility Results")),
		g.P(g.Strong(cmp.Text("Score: ")), cmp.Text(res.Score.String())),
		g.P(g.Strong(cmp.Text("Status: ")), cmp.Text(res.LoanEligibility)),
		g.P(g.Strong(cmp.Text("Recommendations: ")), cmp.Text(string(res.Recommendations))),
		cmp.If(len(res.LoanLinks) > 0, cmp.Group{
			g.H3(g.Class("text-md font-semibold mt-4"), cmp.Text("Here are some handy loan simulator links for each bank to help you get accurate estimates:")),
			g.Ul(g.Class("list-disc pl-5 space-y-2"), cmp.Map(res.LoanLinks, linkItem)),
		}),
	)
}

func linkItem(l bankapi.LoanLink) cmp.Node {
	return g.Li(
		g.Strong(cmp.Text(l.Bank)),
		g.Br(),
		externalLink(l.URL, "text-blue-500 hover:underline", "Loan Simulator"),
		cmp.If(l.SimulatorURL != "", externalLink(l.SimulatorURL, "ml-4 text-purple-500 hover:underline", "Simulate Your Loan")),
	)
}

func externalLink(href, class, label string) cmp.Node {
	return g.A(g.Href(href), g.Target("_blank"), g.Rel("noopener noreferrer"), g.Class(class), cmp.Text(label))
}
