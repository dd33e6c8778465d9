package pages

import (
	"net/url"

	"github.com/rabie-karouia/EasyDinar/internal/view/components"
	"github.com/rabie-karouia/EasyDinar/internal/view/dto/auth"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// AuthPage is the landing page: account creation next to sign-in.
func AuthPage(d auth.AuthPageData) cmp.Node {
	return g.Main(
		g.Class("py-12 px-4 sm:px-6 lg:px-8 grid gap-8 md:grid-cols-2 max-w-5xl mx-auto"),
		SignUpForm(d.SignUp),
		SignInForm(d.SignIn),
	)
}

func panel(title, subtitle string, children ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("max-w-md w-full mx-auto bg-white rounded-xl shadow-lg p-8"),
		g.Div(
			g.Class("text-center mb-8"),
			g.H2(g.Class("text-3xl font-bold text-gray-900"), cmp.Text(title)),
			g.P(g.Class("mt-2 text-sm text-gray-600"), cmp.Text(subtitle)),
		),
		cmp.Group(children),
	)
}

// SignUpForm renders the account creation form, or the issued identifier after success.
func SignUpForm(d auth.SignUpData) cmp.Node {
	f := d.Form
	return panel("Create Account", "Join us today and get started",
		g.ID("signup"),
		cmp.If(d.ClientIdentifier != "", components.SuccessMessage(
			"Your account has been successfully created! Your unique client identifier is "+
				d.ClientIdentifier+
				". Please use this identifier along with your password to log in to your account. Make sure to store it safely!",
		)),
		components.ErrorMessage(f.Message),
		g.Form(
			g.Method("post"),
			g.Action("/signup"),
			g.Class("space-y-6"),
			components.FormInput(components.InputProps{Label: "First Name", Name: "first_name", Value: f.Value("first_name"), Error: f.Error("first_name")}),
			components.FormInput(components.InputProps{Label: "Last Name", Name: "last_name", Value: f.Value("last_name"), Error: f.Error("last_name")}),
			components.FormInput(components.InputProps{Label: "CIN", Name: "CIN", Value: f.Value("CIN"), Error: f.Error("CIN")}),
			components.FormInput(components.InputProps{Label: "Phone Number", Name: "phone_number", Value: f.Value("phone_number"), Error: f.Error("phone_number")}),
			components.FormInput(components.InputProps{Label: "Address", Name: "address", Value: f.Value("address"), Error: f.Error("address")}),
			components.FormInput(components.InputProps{Label: "Email", Name: "email", Type: "email", Value: f.Value("email"), Error: f.Error("email")}),
			components.FormInput(components.InputProps{Label: "Password", Name: "password", Type: "password", Error: f.Error("password")}),
			components.SubmitButton("Sign Up"),
		),
	)
}

// SignInForm renders the credentials form. Entered values survive a failed attempt.
func SignInForm(d auth.SignInData) cmp.Node {
	f := d.Form
	return panel("Welcome Back", "Sign in to your account",
		g.ID("signin"),
		components.ErrorMessage(f.Message),
		g.Form(
			g.Method("post"),
			g.Action("/signin"),
			g.Class("space-y-6"),
			components.FormInput(components.InputProps{
				Label: "Client Identifier", Name: "client_identifier",
				Value: f.Value("client_identifier"), Error: f.Error("client_identifier"),
				Icon: cmp.Text("💳"),
			}),
			components.FormInput(components.InputProps{
				Label: "Password", Name: "password", Type: "password",
				Error: f.Error("password"),
				Icon:  cmp.Text("🔒"),
			}),
			g.Div(
				g.Class("flex flex-col space-y-4"),
				components.SubmitButton("Sign In"),
				g.A(g.Href("/password-recovery"), g.Class("text-center text-sm text-indigo-600 hover:text-indigo-500"), cmp.Text("Forgot your password?")),
			),
		),
	)
}

// PasswordRecoveryPage asks for the email a reset link is sent to.
func PasswordRecoveryPage(d auth.PasswordRecoveryData) cmp.Node {
	f := d.Form
	return g.Main(
		g.Class("py-12 px-4"),
		panel("Reset Password", "Enter your email address and we'll send you instructions to reset your password.",
			components.SuccessMessage(d.Success),
			components.ErrorMessage(f.Message),
			g.Form(
				g.Method("post"),
				g.Action("/password-recovery"),
				g.Class("space-y-6"),
				components.FormInput(components.InputProps{
					Label: "Email Address", Name: "email", Type: "email",
					Value: f.Value("email"), Error: f.Error("email"),
					Icon:  cmp.Text("✉"),
					Attrs: []cmp.Node{g.Placeholder("Enter your email")},
				}),
				g.Div(
					g.Class("flex gap-3"),
					components.SubmitButton("Send Reset Link"),
					g.A(g.Href("/"), g.Class("w-full text-center py-2 px-4 border border-gray-300 rounded-md text-sm text-gray-700"), cmp.Text("Cancel")),
				),
			),
		),
	)
}

// ResetPasswordPage collects the new password for the one-time token from the URL.
func ResetPasswordPage(d auth.ResetPasswordData) cmp.Node {
	f := d.Form
	return g.Main(
		g.Class("py-12 px-4"),
		panel("Set a New Password", "Choose a password of at least 8 characters.",
			components.SuccessMessage(d.Success),
			components.ErrorMessage(f.Message),
			g.Form(
				g.Method("post"),
				g.Action("/reset-password?"+url.Values{"token": {d.Token}}.Encode()),
				g.Class("space-y-6"),
				components.FormInput(components.InputProps{Label: "New Password", Name: "password", Type: "password", Error: f.Error("password")}),
				components.FormInput(components.InputProps{Label: "Confirm New Password", Name: "confirm_password", Type: "password", Error: f.Error("confirm_password")}),
				components.SubmitButton("Reset Password"),
			),
			cmp.If(d.Success != "", g.A(g.Href("/"), g.Class("mt-4 block text-center text-sm text-indigo-600"), cmp.Text("Back to sign in"))),
		),
	)
}
