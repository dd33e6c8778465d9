package security

import (
	"strconv"

	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const panelID = "security-panel"

// Panel renders the security center in the wizard's current state.
func Panel(w Wizard) cmp.Node {
	return g.Div(
		g.ID(panelID),
		g.Class("space-y-8"),
		g.Div(
			g.Class("flex items-center justify-between"),
			g.H2(g.Class("text-2xl font-bold text-gray-800"), cmp.Text("Security Center")),
			g.Span(g.Class("text-sm text-gray-600"), cmp.Text("🛡 Enhanced Security")),
		),
		g.Div(g.Class("bg-white rounded-lg shadow-md p-6"), content(w)),
	)
}

func content(w Wizard) cmp.Node {
	if w.View != ViewTwoFactor {
		return mainOptions(w)
	}
	switch w.Step {
	case StepPhone:
		return phoneStep(w)
	case StepCode:
		return codeStep(w)
	case StepSuccess:
		return successStep(w)
	default:
		return methodStep(w)
	}
}

// stepForm posts the wizard state to action and swaps the whole panel.
func stepForm(action string, w Wizard, children ...cmp.Node) cmp.Node {
	return g.Form(
		hx.Post("/dashboard/security/"+action),
		hx.Target("#"+panelID),
		hx.Swap("outerHTML"),
		g.Class("space-y-6"),
		components.Hidden("view", string(w.View)),
		components.Hidden("step", string(w.Step)),
		cmp.Group(children),
	)
}

func mainOptions(w Wizard) cmp.Node {
	return stepForm("two-factor", w,
		g.H3(g.Class("text-xl font-semibold text-gray-800"), cmp.Text("Security Options")),
		methodCard("🛡", "2-Factor Authentication", "Add an extra layer of security to your account", false),
	)
}

func methodStep(w Wizard) cmp.Node {
	return g.Div(
		g.Class("space-y-6"),
		backButton(w),
		stepForm("method", w,
			g.H3(g.Class("text-xl font-semibold text-gray-800"), cmp.Text("Choose 2FA Method")),
			methodCard("📱", "SMS Authentication", "Receive a code via text message", true),
		),
	)
}

func phoneStep(w Wizard) cmp.Node {
	return stepForm("send", w,
		g.Div(
			g.Class("space-y-4"),
			g.H3(g.Class("text-xl font-semibold text-gray-800"), cmp.Text("Enter Your Phone Number")),
			g.P(g.Class("text-gray-600"), cmp.Text("We'll send a verification code to this number.")),
			g.Input(
				g.Type("tel"),
				g.Name("phone_number"),
				g.Value(w.Phone),
				g.Placeholder("e.g., +216XXXXXXXX"),
				g.Required(),
				g.Class("w-full px-4 py-2 border border-gray-300 rounded-md focus:ring-2 focus:ring-blue-500 focus:border-blue-500"),
			),
		),
		errorLine(w.Error),
		primaryButton("submit", "Send Code"),
	)
}

func codeStep(w Wizard) cmp.Node {
	fields := make([]cmp.Node, 0, CodeLength)
	for i := range CodeLength {
		fields = append(fields, codeField(i, w.Code[i]))
	}
	return stepForm("verify", w,
		components.Hidden("phone_number", w.Phone),
		components.Hidden("code", w.Code.String()),
		g.Div(
			g.Class("space-y-4"),
			g.H3(g.Class("text-xl font-semibold text-gray-800"), cmp.Text("Enter Verification Code")),
			g.P(g.Class("text-gray-600"), cmp.Text("Enter the 6-digit code sent to your phone.")),
		),
		g.Div(g.Class("flex justify-center space-x-3"), cmp.Group(fields)),
		errorLine(w.Error),
		primaryButton("submit", "Verify Code"),
	)
}

// codeField is one digit box. The browser script moves focus to data-next after a
// digit and keeps the hidden code input in sync.
func codeField(i int, digit string) cmp.Node {
	next := NextFocus(i)
	return g.Input(
		g.Type("text"),
		g.ID("code-"+strconv.Itoa(i)),
		g.MaxLength("1"),
		cmp.Attr("inputmode", "numeric"),
		cmp.Attr("autocomplete", "one-time-code"),
		cmp.Attr("aria-label", "Digit "+strconv.Itoa(i+1)),
		g.Value(digit),
		g.Data("code-index", strconv.Itoa(i)),
		cmp.If(next != i, g.Data("next", strconv.Itoa(next))),
		g.Class("w-12 h-12 text-center text-xl font-semibold border-2 rounded-lg focus:border-indigo-500 focus:ring focus:ring-indigo-200"),
	)
}

func successStep(w Wizard) cmp.Node {
	return g.Div(
		g.Class("text-center space-y-4"),
		g.Div(g.Class("flex justify-center text-5xl text-green-500"), cmp.Text("✔")),
		g.H3(g.Class("text-xl font-semibold text-gray-800"), cmp.Text("2FA Successfully Enabled")),
		g.P(g.Class("text-gray-600"), cmp.Text("Your account is now more secure with two-factor authentication.")),
		stepForm("back", w, primaryButton("submit", "Back to Security Options")),
	)
}

func backButton(w Wizard) cmp.Node {
	return stepForm("back", w,
		g.Button(
			g.Type("submit"),
			g.Class("text-indigo-600 hover:text-indigo-800 flex items-center space-x-2"),
			g.Span(cmp.Text("Back to Security Options")),
		),
	)
}

func methodCard(icon, title, description string, selected bool) cmp.Node {
	border, text := "border-gray-200 hover:border-indigo-200 hover:bg-gray-50", "text-gray-800"
	if selected {
		border, text = "border-indigo-500 bg-indigo-50", "text-indigo-900"
	}
	return g.Button(
		g.Type("submit"),
		g.Class("w-full p-6 rounded-lg border-2 text-left transition-all "+border),
		g.Div(cmp.Text(icon)),
		g.H4(g.Class("mt-4 font-semibold "+text), cmp.Text(title)),
		g.P(g.Class("mt-2 text-sm text-gray-600"), cmp.Text(description)),
	)
}

func errorLine(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.Div(g.Class("flex items-center space-x-2 text-red-600"), cmp.Attr("role", "alert"), g.Span(cmp.Text(msg)))
}

func primaryButton(typ, label string) cmp.Node {
	return g.Button(
		g.Type(typ),
		g.Class("w-full px-6 py-2 bg-indigo-600 text-white rounded-lg hover:bg-indigo-700 focus:outline-none focus:ring-2 focus:ring-indigo-500"),
		cmp.Text(label),
	)
}
