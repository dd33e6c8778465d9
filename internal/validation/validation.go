// Package validation holds the client-side form rules. Every form in the application
// validates through a RuleSet so the messages and formats live in one place.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	cinPattern   = regexp.MustCompile(`^[01]\d{7}$`)
	phonePattern = regexp.MustCompile(`^[1-9]\d{7}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	register(v, "notblank", func(s string) bool { return strings.TrimSpace(s) != "" })
	register(v, "cin", cinPattern.MatchString)
	register(v, "phone", phonePattern.MatchString)
	register(v, "code6", codePattern.MatchString)
	register(v, "decimal", func(s string) bool {
		_, err := decimal.NewFromString(strings.TrimSpace(s))
		return err == nil
	})
	register(v, "positive", func(s string) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		return err == nil && d.IsPositive()
	})
	register(v, "nonnegative", func(s string) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		return err == nil && !d.IsNegative()
	})
	register(v, "iso4217", func(s string) bool {
		_, err := currency.ParseISO(s)
		return err == nil
	})
	return v
}

func register(v *validator.Validate, tag string, fn func(string) bool) {
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
}

// ValidateClientID returns an empty string when the trimmed value is non-empty.
func ValidateClientID(value string) string {
	return clientIDRule.Check(value, nil)
}

// ValidatePassword returns an empty string when the value has at least 8 characters.
func ValidatePassword(value string) string {
	return passwordRule.Check(value, nil)
}
