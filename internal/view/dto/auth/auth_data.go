package auth

import "github.com/rabie-karouia/EasyDinar/internal/view"

// AuthPageData is the view model for "/", which shows the sign-up and sign-in forms side by side.
type AuthPageData struct {
	SignUp SignUpData
	SignIn SignInData
}

// SignUpData carries the sign-up form and, after success, the issued login identifier.
type SignUpData struct {
	Form             view.FormState
	ClientIdentifier string
}

// SignInData carries the sign-in form. Form.Message holds the backend error, if any.
type SignInData struct {
	Form view.FormState
}

// PasswordRecoveryData is used by the password-recovery page.
type PasswordRecoveryData struct {
	Form    view.FormState
	Success string
}

// ResetPasswordData carries the one-time token from the URL along with the form.
type ResetPasswordData struct {
	Token   string
	Form    view.FormState
	Success string
}
