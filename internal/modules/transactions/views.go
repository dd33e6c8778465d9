package transactions

import (
	"net/url"

	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/view"
	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	listPanelID = "tx-list-panel"
	filterID    = "tx-filter"
	paymentID   = "tx-payment"
	statusID    = "tx-payment-status"
)

var titleCase = cases.Title(language.English)

// Layout places the forms next to the transaction list.
func Layout(filter, list, deposit, withdraw, payment, status cmp.Node) cmp.Node {
	return g.Div(
		g.Class("space-y-6"),
		filter,
		list,
		g.Div(g.Class("grid gap-6 lg:grid-cols-2"), deposit, withdraw),
		g.Div(g.Class("grid gap-6 lg:grid-cols-2"), payment, status),
	)
}

// FilterForm narrows the list. Empty fields are not sent to the backend.
func FilterForm(f view.FormState) cmp.Node {
	return g.Form(
		g.ID(filterID),
		hx.Get("/dashboard/transactions/list"),
		hx.Target("#"+listPanelID),
		hx.Swap("outerHTML"),
		components.Card("Filter",
			g.Div(
				g.Class("grid gap-4 md:grid-cols-4 items-end"),
				components.FormInput(components.InputProps{Label: "CIN", Name: "filter_cin", Value: f.Value("filter_cin")}),
				components.FormInput(components.InputProps{Label: "Account Number", Name: "filter_account", Value: f.Value("filter_account")}),
				components.FormInput(components.InputProps{
					Label: "Date", Name: "date_of_transaction", Type: "date",
					Value: f.Value("date_of_transaction"), Error: f.Error("date_of_transaction"),
				}),
				components.SubmitButton("Apply"),
			),
		),
	)
}

// ListPanel renders the transactions. With oob set it replaces the panel already on
// the page from a response aimed at another target.
func ListPanel(txs []bankapi.Transaction, errMsg string, oob bool) cmp.Node {
	var body cmp.Node
	switch {
	case errMsg != "":
		body = g.P(g.Class("p-4 text-red-500"), cmp.Text(errMsg))
	case len(txs) == 0:
		body = g.P(g.Class("p-4"), cmp.Text("No transactions available"))
	default:
		body = cmp.Map(txs, Row)
	}
	return g.Div(
		g.ID(listPanelID),
		g.Class("bg-white rounded-lg shadow-md"),
		cmp.If(oob, hx.SwapOOB("true")),
		body,
	)
}

// Row renders one transaction, credits in green and debits in red.
func Row(t bankapi.Transaction) cmp.Node {
	arrow, color, sign := "↗", "text-red-600", "-"
	if t.IsDeposit() {
		arrow, color, sign = "↙", "text-green-600", "+"
	}
	return g.Div(
		g.Class("p-4 border-b last:border-b-0 flex items-center justify-between"),
		g.Div(
			g.Class("flex items-center space-x-4"),
			g.Span(g.Class("text-xl "+color), cmp.Text(arrow)),
			g.Div(
				g.P(g.Class("font-medium"), cmp.Text(titleCase.String(t.Type)+" · "+t.AccountNumber)),
				g.P(g.Class("text-sm text-gray-500"), cmp.Text(t.Date())),
			),
		),
		g.P(g.Class("font-semibold "+color), cmp.Text(sign+t.Amount.StringFixed(2)+" TND")),
	)
}

// MovementForm renders the deposit or withdraw form. It sends the filter inputs along
// so the refreshed list keeps them.
func MovementForm(kind string, f view.FormState, success string) cmp.Node {
	title, button := "Deposit", "bg-green-600"
	if kind == KindWithdraw {
		title, button = "Withdraw", "bg-red-600"
	}
	return g.Form(
		g.ID("tx-"+kind),
		hx.Post("/dashboard/transactions/"+kind),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		hx.Include("#"+filterID),
		components.Card(title,
			components.SuccessMessage(success),
			components.ErrorMessage(f.Message),
			g.Div(
				g.Class("space-y-4"),
				components.FormInput(components.InputProps{
					Label: "Account Number", Name: "account_number",
					Value: f.Value("account_number"), Error: f.Error("account_number"),
				}),
				components.FormInput(components.InputProps{
					Label: "Amount", Name: "amount", Type: "number",
					Value: f.Value("amount"), Error: f.Error("amount"),
					Attrs: []cmp.Node{cmp.Attr("step", "0.01")},
				}),
				g.Button(g.Type("submit"), g.Class(button+" text-white px-4 py-2 rounded-md"), cmp.Text(title)),
			),
		),
	)
}

// PaymentForm renders the payment form, plus the link to the hosted payment page once
// one has been generated.
func PaymentForm(f view.FormState, p *bankapi.Payment) cmp.Node {
	return g.Form(
		g.ID(paymentID),
		hx.Post("/dashboard/transactions/payment"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		components.Card("Make a Payment",
			components.ErrorMessage(f.Message),
			cmp.Iff(p != nil, func() cmp.Node { return paymentLink(p) }),
			g.Div(
				g.Class("space-y-4"),
				components.FormInput(components.InputProps{
					Label: "Amount", Name: "amount", Type: "number",
					Value: f.Value("amount"), Error: f.Error("amount"),
					Attrs: []cmp.Node{cmp.Attr("step", "0.01")},
				}),
				components.FormInput(components.InputProps{Label: "Email", Name: "email", Type: "email", Value: f.Value("email"), Error: f.Error("email")}),
				components.FormInput(components.InputProps{Label: "First Name", Name: "first_name", Value: f.Value("first_name"), Error: f.Error("first_name")}),
				components.FormInput(components.InputProps{Label: "Last Name", Name: "last_name", Value: f.Value("last_name"), Error: f.Error("last_name")}),
				g.Button(g.Type("submit"), g.Class("bg-blue-600 text-white px-4 py-2 rounded-md"), cmp.Text("Make Payment")),
			),
		),
	)
}

func paymentLink(p *bankapi.Payment) cmp.Node {
	token := PaymentToken(p.PaymentURL)
	return g.Div(
		g.Class("mb-4 rounded-md bg-blue-50 p-3 text-sm text-blue-800 space-y-2"),
		cmp.If(p.Message != "", g.P(cmp.Text(p.Message))),
		g.A(
			g.Href(p.PaymentURL),
			g.Target("_blank"),
			g.Rel("noopener"),
			g.Class("font-medium underline"),
			cmp.Text("Open the payment page"),
		),
		cmp.If(token != "", g.Button(
			g.Type("button"),
			g.Class("ml-4 underline"),
			hx.Get("/dashboard/transactions/payment-status?"+url.Values{"token": {token}}.Encode()),
			hx.Target("#"+statusID),
			hx.Swap("outerHTML"),
			cmp.Text("Check status"),
		)),
	)
}

// StatusForm looks up a payment by token and shows the result.
func StatusForm(token string, st *bankapi.PaymentStatus, errMsg string) cmp.Node {
	return g.Form(
		g.ID(statusID),
		hx.Get("/dashboard/transactions/payment-status"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		components.Card("Payment Status",
			components.ErrorMessage(errMsg),
			cmp.Iff(st != nil, func() cmp.Node { return statusDetails(st) }),
			g.Div(
				g.Class("space-y-4"),
				components.FormInput(components.InputProps{Label: "Payment Token", Name: "token", Value: token}),
				components.SubmitButton("Check Payment"),
			),
		),
	)
}

func statusDetails(st *bankapi.PaymentStatus) cmp.Node {
	label, classes := "Pending", "bg-yellow-50 text-yellow-800"
	if st.Status {
		label, classes = "Paid", "bg-green-50 text-green-700"
	}
	return g.Div(
		g.Class("mb-4 rounded-md p-3 text-sm "+classes),
		g.P(g.Class("font-semibold"), cmp.Text(label)),
		cmp.If(st.Message != "", g.P(cmp.Text(st.Message))),
	)
}
