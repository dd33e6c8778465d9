package bankapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SignUpRequest is the profile posted to /users/.
type SignUpRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CIN         string `json:"CIN"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// SignUpResult carries the backend-issued login identifier.
type SignUpResult struct {
	ClientIdentifier string `json:"client_identifier"`
}

// Session is what a successful login yields.
type Session struct {
	AccessToken string
	CIN         string
}

// Account is a bank account owned by the signed-in client.
type Account struct {
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

// NewAccount is the account creation payload.
type NewAccount struct {
	CIN         string      `json:"CIN"`
	AccountType string      `json:"account_type"`
	Balance     json.Number `json:"balance"`
}

// Transaction is one ledger entry.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Timestamp     string          `json:"timestamp"`
}

// IsDeposit reports whether the entry credits the account.
func (t Transaction) IsDeposit() bool {
	return strings.EqualFold(t.Type, "deposit")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date returns the transaction date as YYYY-MM-DD, or the raw timestamp when it
// cannot be parsed.
func (t Transaction) Date() string {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, t.Timestamp); err == nil {
			return ts.Format("2006-01-02")
		}
	}
	return t.Timestamp
}

// TransactionFilter narrows ListTransactions. Empty fields are not sent.
type TransactionFilter struct {
	CIN               string
	AccountNumber     string
	DateOfTransaction string
}

// MovementResult is returned by deposits and withdrawals.
type MovementResult struct {
	Message       string          `json:"message"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	AccountNumber string          `json:"account_number"`
}

// PaymentRequest is sent to /generate-payment.
type PaymentRequest struct {
	Amount    string
	Email     string
	FirstName string
	LastName  string
}

// Payment is a generated hosted-payment link.
type Payment struct {
	Message    string `json:"message"`
	PaymentURL string `json:"payment_url"`
}

// PaymentStatus is the result of /check-payment.
type PaymentStatus struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"payment_details"`
}

// LoanRequest is the loan-eligibility questionnaire.
type LoanRequest struct {
	Income           json.Number `json:"income"`
	Debt             json.Number `json:"debt"`
	Savings          json.Number `json:"savings"`
	EmploymentStatus string      `json:"employment_status"`
}

// LoanLink points at a bank's external loan simulator.
type LoanLink struct {
	Bank         string `json:"bank"`
	URL          string `json:"url"`
	SimulatorURL string `json:"simulateur_url,omitempty"`
}

// LoanEligibility is the backend's verdict.
type LoanEligibility struct {
	Score           decimal.Decimal `json:"score"`
	LoanEligibility string          `json:"loan_eligibility"`
	Recommendations Text            `json:"recommendations"`
	LoanLinks       []LoanLink      `json:"loan_links"`
}

// Text is free text that the backend may send as a string or a list of strings.
type Text string

// UnmarshalJSON accepts a string, a list of strings, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = Text(strings.Join(list, " "))
	return nil
}

// Location is a branch or ATM.
type Location struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Address   string   `json:"address"`
	Hours     string   `json:"hours,omitempty"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Distance  *float64 `json:"distance,omitempty"`
}

// IsBranch reports whether the location is a branch rather than an ATM.
func (l Location) IsBranch() bool {
	return strings.EqualFold(l.Type, "branch")
}

// VerificationResult is returned by the 2FA endpoints.
type VerificationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
