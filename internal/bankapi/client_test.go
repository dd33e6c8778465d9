package bankapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *bankapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return bankapi.New(srv.URL, 5*time.Second)
}

func TestLogin(t *testing.T) {
	t.Run("sends credentials as query parameters and reads nested cin", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, "AB12CD34", r.URL.Query().Get("client_identifier"))
			assert.Equal(t, "password123", r.URL.Query().Get("password"))
			_, _ = io.WriteString(w, `{"access_token":"tok","message":"Login successful","user":{"cin":"01234567"}}`)
		})

		sess, err := client.Login(context.Background(), "AB12CD34", "password123")
		require.NoError(t, err)
		assert.Equal(t, "tok", sess.AccessToken)
		assert.Equal(t, "01234567", sess.CIN)
	})

	t.Run("top-level cin wins", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"access_token":"abc","cin":"123","user":{"cin":"999"}}`)
		})

		sess, err := client.Login(context.Background(), "id", "password123")
		require.NoError(t, err)
		assert.Equal(t, "123", sess.CIN)
	})

	t.Run("non-2xx surfaces the backend detail", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Invalid credentials"}`)
		})

		sess, err := client.Login(context.Background(), "id", "password123")
		assert.Nil(t, sess)
		var apiErr *bankapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Invalid credentials", bankapi.UserMessage(err, "fallback"))
	})
}

func TestAPIErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","CIN"],"msg":"bad"}]}`)
	})

	_, err := client.SignUp(context.Background(), bankapi.SignUpRequest{})
	var apiErr *bankapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.JSONEq(t, `[{"loc":["body","CIN"],"msg":"bad"}]`, apiErr.Detail)
	assert.Contains(t, apiErr.Body, `"detail"`)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := bankapi.New(srv.URL, time.Second)

	_, err := client.ListLocations(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, bankapi.ErrTransport))
	assert.Equal(t, bankapi.GenericMessage, bankapi.UserMessage(err, "fallback"))
}

func TestCancelledContextIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListLocations(ctx)
	assert.ErrorIs(t, err, bankapi.ErrTransport)
}

func TestListTransactionsOmitsEmptyFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "ACC-1", q.Get("account_number"))
		assert.False(t, q.Has("cin"))
		assert.False(t, q.Has("date_of_transaction"))
		_, _ = io.WriteString(w, `[{"id":7,"account_number":"ACC-1","type":"deposit","amount":12.5,"timestamp":"2024-05-01T10:20:30"}]`)
	})

	txs, err := client.ListTransactions(context.Background(), "tok", bankapi.TransactionFilter{AccountNumber: "ACC-1"})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].IsDeposit())
	assert.Equal(t, "2024-05-01", txs[0].Date())
	assert.True(t, decimal.RequireFromString("12.5").Equal(txs[0].Amount))
}

func TestDepositUsesQueryParameters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deposit", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("amount"))
		assert.Equal(t, "ACC-1", r.URL.Query().Get("account_number"))
		_, _ = io.WriteString(w, `{"message":"50.0 TND deposited successfully","new_balance":150}`)
	})

	res, err := client.Deposit(context.Background(), "tok", " 50 ", "ACC-1")
	require.NoError(t, err)
	assert.Equal(t, "50.0 TND deposited successfully", res.Message)
}

func TestGeneratePaymentWithoutURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":true}`)
	})

	_, err := client.GeneratePayment(context.Background(), "tok", bankapi.PaymentRequest{Amount: "10"})
	assert.ErrorIs(t, err, bankapi.ErrNoPaymentURL)
}

func TestCreateAccountUnwrapsAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "01234567", body["CIN"])
		assert.Equal(t, "savings", body["account_type"])
		assert.EqualValues(t, 100.5, body["balance"])
		_, _ = io.WriteString(w, `{"account":{"account_number":"ACC-9","account_type":"savings","balance":100.5},"message":"Account successfully created."}`)
	})

	acc, err := client.CreateAccount(context.Background(), "tok", bankapi.NewAccount{CIN: "01234567", AccountType: "savings", Balance: "100.5"})
	require.NoError(t, err)
	assert.Equal(t, "ACC-9", acc.AccountNumber)
}

func TestVerifyCodeReportedFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "+21622123456", r.PostForm.Get("phone_number"))
		assert.Equal(t, "123456", r.PostForm.Get("code"))
		_, _ = io.WriteString(w, `{"success":false,"message":"Invalid verification code."}`)
	})

	_, err := client.VerifyCode(context.Background(), "tok", "+21622123456", "123456")
	assert.Equal(t, "Invalid verification code.", bankapi.UserMessage(err, "fallback"))
}

func TestExchangeRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("base_currency"))
		assert.Equal(t, "EUR", r.URL.Query().Get("target_currency"))
		_, _ = io.WriteString(w, `{"base_currency":"USD","target_currency":"EUR","rate":0.92}`)
	})

	rate, err := client.ExchangeRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String())
}

func TestLoanEligibilityRecommendationsList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"score":72,"loan_eligibility":"Eligible","recommendations":["Reduce debt","Save more"],"loan_links":[{"bank":"BIAT","url":"https://biat.example"}]}`)
	})

	res, err := client.CheckLoanEligibility(context.Background(), "", bankapi.LoanRequest{Income: "1000", Debt: "100", Savings: "500", EmploymentStatus: "employed"})
	require.NoError(t, err)
	assert.Equal(t, bankapi.Text("Reduce debt Save more"), res.Recommendations)
	require.Len(t, res.LoanLinks, 1)
	assert.Equal(t, "BIAT", res.LoanLinks[0].Bank)
}
