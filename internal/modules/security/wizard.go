package security

import (
	"errors"
	"strings"
)

// View is the security page currently shown.
type View string

const (
	ViewMain      View = "main"
	ViewTwoFactor View = "2fa"
)

// Step is a stage of the two-factor setup.
type Step string

const (
	StepMethod  Step = "method"
	StepPhone   Step = "phone"
	StepCode    Step = "code"
	StepSuccess Step = "success"
)

// ErrStepOrder is returned when a transition is attempted from the wrong step.
var ErrStepOrder = errors.New("security: step out of order")

// Wizard is the two-factor setup flow. It only lives in the rendered page, so a
// reload starts over.
type Wizard struct {
	View  View
	Step  Step
	Phone string
	Code  CodeInput
	Error string
}

// NewWizard returns the wizard at the security options overview.
func NewWizard() Wizard {
	return Wizard{View: ViewMain, Step: StepMethod}
}

// ParseWizard rebuilds a wizard from the hidden fields of the page. Unknown values
// fall back to the start.
func ParseWizard(view, step, phone, code string) Wizard {
	w := NewWizard()
	if View(view) == ViewTwoFactor {
		w.View = ViewTwoFactor
	}
	switch s := Step(step); s {
	case StepPhone, StepCode, StepSuccess:
		w.Step = s
	}
	w.Phone = phone
	w.Code = ParseCode(code)
	return w
}

// OpenTwoFactor leaves the overview for the method choice.
func (w *Wizard) OpenTwoFactor() {
	w.View = ViewTwoFactor
	w.Step = StepMethod
	w.Error = ""
}

// ChooseSMS selects SMS, the only method, and asks for the phone number.
func (w *Wizard) ChooseSMS() error {
	if w.View != ViewTwoFactor || w.Step != StepMethod {
		return ErrStepOrder
	}
	w.Step = StepPhone
	w.Error = ""
	return nil
}

// CodeSent moves from the phone step to code entry.
func (w *Wizard) CodeSent() error {
	if w.Step != StepPhone {
		return ErrStepOrder
	}
	w.Step = StepCode
	w.Code = CodeInput{}
	w.Error = ""
	return nil
}

// Verified completes the setup.
func (w *Wizard) Verified() error {
	if w.Step != StepCode {
		return ErrStepOrder
	}
	w.Step = StepSuccess
	w.Error = ""
	return nil
}

// Fail keeps the current step and shows msg.
func (w *Wizard) Fail(msg string) {
	w.Error = msg
}

// Back returns to the security options with an empty code.
func (w *Wizard) Back() {
	*w = NewWizard()
}

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

// CodeInput is the six single-digit code fields.
type CodeInput [CodeLength]string

// Enter sets field i to v. Only "" or a single digit is accepted; anything else leaves
// the field unchanged and reports false. next is the field that receives focus.
func (ci *CodeInput) Enter(i int, v string) (next int, ok bool) {
	if i < 0 || i >= CodeLength {
		return i, false
	}
	if v != "" && (len(v) != 1 || v[0] < '0' || v[0] > '9') {
		return i, false
	}
	ci[i] = v
	if v != "" {
		return NextFocus(i), true
	}
	return i, true
}

// NextFocus is the field focused after a digit is typed into field i.
func NextFocus(i int) int {
	if i < CodeLength-1 {
		return i + 1
	}
	return i
}

// String joins the fields.
func (ci CodeInput) String() string {
	return strings.Join(ci[:], "")
}

// Complete reports whether every field holds a digit.
func (ci CodeInput) Complete() bool {
	for _, d := range ci {
		if d == "" {
			return false
		}
	}
	return true
}

// ParseCode spreads code over the fields, dropping anything that is not a digit.
func ParseCode(code string) CodeInput {
	var ci CodeInput
	i := 0
	for _, r := range code {
		if i == CodeLength {
			break
		}
		if _, ok := ci.Enter(i, string(r)); ok {
			i++
		}
	}
	return ci
}
