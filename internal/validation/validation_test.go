package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty is required", "", "Password is required"},
		{"one char is too short", "a", "Password must be at least 8 characters"},
		{"seven chars is too short", "1234567", "Password must be at least 8 characters"},
		{"spaces count toward length", "        ", ""},
		{"eight chars passes", "12345678", ""},
		{"long passes", strings.Repeat("x", 64), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.value))
		})
	}
}

func TestValidatePassword_RequiredOnlyWhenEmpty(t *testing.T) {
	for n := 1; n < 8; n++ {
		got := ValidatePassword(strings.Repeat("p", n))
		assert.NotEqual(t, "Password is required", got, "length %d", n)
		assert.NotEmpty(t, got, "length %d", n)
	}
}

func TestValidateClientID(t *testing.T) {
	assert.Equal(t, "Client identifier is required", ValidateClientID(""))
	assert.Equal(t, "Client identifier is required", ValidateClientID("   \t"))
	assert.Equal(t, "", ValidateClientID("AB12CD34"))
	assert.Equal(t, "", ValidateClientID("  x  "))
}

func TestSignUpRules(t *testing.T) {
	valid := map[string]string{
		"first_name":   "Amira",
		"last_name":    "Ben Salah",
		"CIN":          "01234567",
		"phone_number": "22123456",
		"address":      "Tunis",
		"email":        "amira@example.com",
		"password":     "Str0ng!pass",
	}

	t.Run("valid form has no errors", func(t *testing.T) {
		assert.Empty(t, SignUpRules.Validate(valid))
	})

	t.Run("cin format", func(t *testing.T) {
		for _, cin := range []string{"21234567", "0123456", "012345678", "0123456a"} {
			values := clone(valid)
			values["CIN"] = cin
			errs := SignUpRules.Validate(values)
			assert.Equal(t, "Invalid CIN format", errs["CIN"], "cin %q", cin)
			assert.Len(t, errs, 1)
		}
	})

	t.Run("blank fields are required", func(t *testing.T) {
		values := clone(valid)
		values["first_name"] = "  "
		values["CIN"] = ""
		errs := SignUpRules.Validate(values)
		assert.Equal(t, "First name is required", errs["first_name"])
		assert.Equal(t, "CIN is required", errs["CIN"])
	})

	t.Run("phone and email formats", func(t *testing.T) {
		values := clone(valid)
		values["phone_number"] = "02123456"
		values["email"] = "not-an-email"
		errs := SignUpRules.Validate(values)
		assert.Equal(t, "Invalid phone number", errs["phone_number"])
		assert.Equal(t, "Invalid email format", errs["email"])
	})
}

func TestResetPasswordRules(t *testing.T) {
	errs := ResetPasswordRules.Validate(map[string]string{"password": "password123", "confirm_password": "password124"})
	assert.Equal(t, map[string]string{"confirm_password": "Passwords do not match"}, errs)

	errs = ResetPasswordRules.Validate(map[string]string{"password": "short", "confirm_password": ""})
	assert.Equal(t, "Password must be at least 8 characters", errs["password"])
	assert.Equal(t, "Please confirm your password", errs["confirm_password"])

	assert.Empty(t, ResetPasswordRules.Validate(map[string]string{"password": "password123", "confirm_password": "password123"}))
}

func TestAmountAndCurrencyRules(t *testing.T) {
	errs := ExchangeRules.Validate(map[string]string{"amount": "0", "from_currency": "USD", "to_currency": "XYZ"})
	assert.Equal(t, "Please enter a valid amount.", errs["amount"])
	assert.Equal(t, "Unknown currency", errs["to_currency"])
	assert.NotContains(t, errs, "from_currency")

	assert.Empty(t, MovementRules.Validate(map[string]string{"amount": "12.50", "account_number": "ACC1"}))

	errs = AccountRules.Validate(map[string]string{"CIN": "11234567", "account_type": "gold", "balance": "-1"})
	assert.Contains(t, errs, "account_type")
	assert.Equal(t, "Initial balance must be zero or more", errs["balance"])
}

func TestTransactionFilterRules(t *testing.T) {
	assert.Empty(t, TransactionFilterRules.Validate(map[string]string{}))
	assert.Empty(t, TransactionFilterRules.Validate(map[string]string{"date_of_transaction": "2024-05-01"}))
	assert.Equal(t, "Date must be in YYYY-MM-DD format",
		TransactionFilterRules.Validate(map[string]string{"date_of_transaction": "01/05/2024"})["date_of_transaction"])
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
