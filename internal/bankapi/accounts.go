package bankapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoPaymentURL is returned when /generate-payment succeeds without a link.
var ErrNoPaymentURL = errors.New("payment url not found in response")

// ListAccounts returns the accounts of the client identified by token.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]Account, error) {
	var out []Account
	err := c.doJSON(ctx, call{method: http.MethodGet, path: "/accounts/", token: token}, &out)
	return out, err
}

// CreateAccount opens an account and returns it.
func (c *Client) CreateAccount(ctx context.Context, token string, req NewAccount) (*Account, error) {
	cl, err := jsonCall(http.MethodPost, "/accounts/", token, req)
	if err != nil {
		return nil, err
	}
	var out struct {
		Account Account `json:"account"`
		Message string  `json:"message"`
	}
	if err := c.doJSON(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

// ListTransactions returns transactions matching every non-empty filter field.
func (c *Client) ListTransactions(ctx context.Context, token string, f TransactionFilter) ([]Transaction, error) {
	q := url.Values{}
	setIf(q, "cin", f.CIN)
	setIf(q, "account_number", f.AccountNumber)
	setIf(q, "date_of_transaction", f.DateOfTransaction)

	var out []Transaction
	err := c.doJSON(ctx, call{method: http.MethodGet, path: "/transactions", query: q, token: token}, &out)
	return out, err
}

// Deposit credits amount to accountNumber.
func (c *Client) Deposit(ctx context.Context, token, amount, accountNumber string) (*MovementResult, error) {
	return c.movement(ctx, "/deposit", token, amount, accountNumber)
}

// Withdraw debits amount from accountNumber.
func (c *Client) Withdraw(ctx context.Context, token, amount, accountNumber string) (*MovementResult, error) {
	return c.movement(ctx, "/withdraw", token, amount, accountNumber)
}

func (c *Client) movement(ctx context.Context, path, token, amount, accountNumber string) (*MovementResult, error) {
	var out MovementResult
	err := c.doJSON(ctx, call{
		method: http.MethodPost,
		path:   path,
		query: url.Values{
			"amount":         {strings.TrimSpace(amount)},
			"account_number": {strings.TrimSpace(accountNumber)},
		},
		token: token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePayment creates a hosted payment and returns its URL.
func (c *Client) GeneratePayment(ctx context.Context, token string, req PaymentRequest) (*Payment, error) {
	var out Payment
	err := c.doJSON(ctx, call{
		method: http.MethodPost,
		path:   "/generate-payment",
		query: url.Values{
			"amount":     {strings.TrimSpace(req.Amount)},
			"email":      {req.Email},
			"first_name": {req.FirstName},
			"last_name":  {req.LastName},
		},
		token: token,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.PaymentURL == "" {
		return nil, ErrNoPaymentURL
	}
	return &out, nil
}

// CheckPayment reports the status of a generated payment.
func (c *Client) CheckPayment(ctx context.Context, token, paymentToken string) (*PaymentStatus, error) {
	var out PaymentStatus
	err := c.doJSON(ctx, call{
		method: http.MethodGet,
		path:   "/check-payment",
		query:  url.Values{"token": {paymentToken}},
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func setIf(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}
