package accounts

import (
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
	listID  = "account-list"
	panelID = "account-list-panel"
	formID  = "account-form"
)

var titleCase = cases.Title(language.English)

var accountTypes = []components.SelectOption{
	{Value: "checking", Label: "Checking"},
	{Value: "savings", Label: "Savings"},
}

// Layout lays out the list panel next to the creation form.
func Layout(list, form cmp.Node) cmp.Node {
	return g.Div(g.Class("grid gap-6 lg:grid-cols-2"), list, form)
}

// ListPanel renders the account list. loaded distinguishes "not fetched yet" from an empty result.
func ListPanel(accounts []bankapi.Account, errMsg string, loaded bool) cmp.Node {
	return g.Div(
		g.ID(panelID),
		components.Card("Your Accounts",
			g.Button(
				g.Type("button"),
				g.Class("mb-4 py-2 px-4 rounded-md text-sm font-medium text-white bg-indigo-600 hover:bg-indigo-700"),
				hx.Get("/dashboard/accounts/list"),
				hx.Target("#"+panelID),
				hx.Swap("outerHTML"),
				cmp.Text("View Accounts"),
			),
			components.ErrorMessage(errMsg),
			cmp.If(loaded && len(accounts) == 0, g.P(g.Class("text-sm text-gray-500"), cmp.Text("No accounts yet."))),
			g.Ul(
				g.ID(listID),
				g.Class("divide-y divide-gray-100"),
				cmp.Map(accounts, Row),
			),
		),
	)
}

// Row renders one account.
func Row(a bankapi.Account) cmp.Node {
	return g.Li(
		g.Class("py-3 flex justify-between"),
		g.Div(
			g.P(g.Class("font-medium text-gray-900"), cmp.Text(TypeLabel(a.AccountType))),
			g.P(g.Class("text-sm text-gray-500"), cmp.Text(a.AccountNumber)),
		),
		g.P(g.Class("font-semibold text-gray-900"), cmp.Text(FormatBalance(a))),
	)
}

// AppendRow carries a new row out of band to the end of the account list.
func AppendRow(a bankapi.Account) cmp.Node {
	return g.Div(hx.SwapOOB("beforeend:#"+listID), Row(a))
}

// TypeLabel capitalises the account type for display.
func TypeLabel(accountType string) string {
	return titleCase.String(accountType)
}

// FormatBalance shows the balance with two decimals in dinars.
func FormatBalance(a bankapi.Account) string {
	return a.Balance.StringFixed(2) + " TND"
}

// CreateForm renders the account creation form.
func CreateForm(f view.FormState, success string) cmp.Node {
	return g.Form(
		g.ID(formID),
		hx.Post("/dashboard/accounts"),
		hx.Target("this"),
		hx.Swap("outerHTML"),
		components.Card("Open a New Account",
			components.SuccessMessage(success),
			components.ErrorMessage(f.Message),
			g.Div(
				g.Class("space-y-4"),
				components.FormInput(components.InputProps{Label: "CIN", Name: "CIN", Value: f.Value("CIN"), Error: f.Error("CIN")}),
				components.Select("Account Type", "account_type", f.Value("account_type"), f.Error("account_type"), accountTypes),
				components.FormInput(components.InputProps{
					Label: "Initial Balance (TND)", Name: "balance", Type: "number",
					Value: f.Value("balance"), Error: f.Error("balance"),
					Attrs: []cmp.Node{cmp.Attr("step", "0.01"), cmp.Attr("min", "0")},
				}),
				components.SubmitButton("Create Account"),
			),
		),
	)
}
