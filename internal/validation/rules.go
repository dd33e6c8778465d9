package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Rule describes how one form field is validated.
// Tags is a go-playground/validator tag list; Messages maps a failing tag to the
// message shown beside the field.
type Rule struct {
	Field        string
	Tags         string
	Messages     map[string]string
	MatchField   string // when set, the value must equal values[MatchField]
	MatchMessage string
}

// Check returns the error message for value, or "" when it passes.
// values is only consulted for MatchField and may be nil otherwise.
func (r Rule) Check(value string, values map[string]string) string {
	if r.Tags != "" {
		if err := validate.Var(value, r.Tags); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				if msg, ok := r.Messages[verrs[0].Tag()]; ok {
					return msg
				}
			}
			return "Invalid value"
		}
	}
	if r.MatchField != "" && value != values[r.MatchField] {
		return r.MatchMessage
	}
	return ""
}

// RuleSet is an ordered collection of field rules applied by a single evaluator.
type RuleSet []Rule

// Validate checks every rule against values and returns the failing fields.
// A nil or empty map means the form is valid.
func (rs RuleSet) Validate(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, r := range rs {
		if msg := r.Check(values[r.Field], values); msg != "" {
			errs[r.Field] = msg
		}
	}
	return errs
}

// Fields returns the field names covered by the set, in order.
func (rs RuleSet) Fields() []string {
	fields := make([]string, 0, len(rs))
	for _, r := range rs {
		fields = append(fields, r.Field)
	}
	return fields
}

var (
	clientIDRule = Rule{
		Field:    "client_identifier",
		Tags:     "notblank",
		Messages: map[string]string{"notblank": "Client identifier is required"},
	}

	passwordRule = Rule{
		Field: "password",
		Tags:  "required,min=8",
		Messages: map[string]string{
			"required": "Password is required",
			"min":      "Password must be at least 8 characters",
		},
	}

	emailRule = Rule{
		Field: "email",
		Tags:  "notblank,email",
		Messages: map[string]string{
			"notblank": "Email is required",
			"email":    "Invalid email format",
		},
	}

	cinRule = Rule{
		Field: "CIN",
		Tags:  "notblank,cin",
		Messages: map[string]string{
			"notblank": "CIN is required",
			"cin":      "Invalid CIN format",
		},
	}

	phoneRule = Rule{
		Field: "phone_number",
		Tags:  "notblank,phone",
		Messages: map[string]string{
			"notblank": "Phone number is required",
			"phone":    "Invalid phone number",
		},
	}
)

func requiredRule(field, message string) Rule {
	return Rule{Field: field, Tags: "notblank", Messages: map[string]string{"notblank": message}}
}

func amountRule(field string) Rule {
	return Rule{
		Field: field,
		Tags:  "notblank,positive",
		Messages: map[string]string{
			"notblank": "Amount is required",
			"positive": "Please enter a valid amount.",
		},
	}
}

// Rule sets for each form in the application.
var (
	SignUpRules = RuleSet{
		requiredRule("first_name", "First name is required"),
		requiredRule("last_name", "Last name is required"),
		cinRule,
		phoneRule,
		requiredRule("address", "Address is required"),
		emailRule,
		passwordRule,
	}

	SignInRules = RuleSet{clientIDRule, passwordRule}

	ResetRequestRules = RuleSet{emailRule}

	ResetPasswordRules = RuleSet{
		passwordRule,
		{
			Field:        "confirm_password",
			Tags:         "required",
			Messages:     map[string]string{"required": "Please confirm your password"},
			MatchField:   "password",
			MatchMessage: "Passwords do not match",
		},
	}

	AccountRules = RuleSet{
		cinRule,
		{
			Field:    "account_type",
			Tags:     "oneof=checking savings",
			Messages: map[string]string{"oneof": "Account type must be checking or savings"},
		},
		{
			Field: "balance",
			Tags:  "notblank,nonnegative",
			Messages: map[string]string{
				"notblank":    "Initial balance is required",
				"nonnegative": "Initial balance must be zero or more",
			},
		},
	}

	TransactionFilterRules = RuleSet{
		{
			Field:    "date_of_transaction",
			Tags:     "omitempty,datetime=2006-01-02",
			Messages: map[string]string{"datetime": "Date must be in YYYY-MM-DD format"},
		},
	}

	// MovementRules covers both deposits and withdrawals.
	MovementRules = RuleSet{
		amountRule("amount"),
		requiredRule("account_number", "Account number is required"),
	}

	PaymentRules = RuleSet{
		amountRule("amount"),
		emailRule,
		requiredRule("first_name", "First name is required"),
		requiredRule("last_name", "Last name is required"),
	}

	LoanRules = RuleSet{
		decimalRule("income", "Monthly income"),
		decimalRule("debt", "Monthly debt"),
		decimalRule("savings", "Total savings"),
		{
			Field:    "employment_status",
			Tags:     "oneof=employed self-employed unemployed",
			Messages: map[string]string{"oneof": "Select an employment status"},
		},
	}

	ExchangeRules = RuleSet{
		amountRule("amount"),
		currencyRule("from_currency"),
		currencyRule("to_currency"),
	}

	PhoneRules = RuleSet{
		requiredRule("phone_number", "Phone number is required"),
	}

	CodeRules = RuleSet{
		{
			Field:    "code",
			Tags:     "code6",
			Messages: map[string]string{"code6": "Enter the 6-digit code"},
		},
	}
)

func decimalRule(field, label string) Rule {
	return Rule{
		Field: field,
		Tags:  "notblank,decimal",
		Messages: map[string]string{
			"notblank": label + " is required",
			"decimal":  label + " must be a number",
		},
	}
}

func currencyRule(field string) Rule {
	return Rule{
		Field:    field,
		Tags:     "iso4217",
		Messages: map[string]string{"iso4217": "Unknown currency"},
	}
}
