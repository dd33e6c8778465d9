package transactions

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/bankapi"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/registry"
	"github.com/rabie-karouia/EasyDinar/internal/rendering"
	"github.com/rabie-karouia/EasyDinar/internal/session"
	"github.com/rabie-karouia/EasyDinar/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movement struct {
	kind, amount, account string
}

type fakeAPI struct {
	txs        []bankapi.Transaction
	listErr    error
	moveErr    error
	payment    *bankapi.Payment
	paymentErr error
	status     *bankapi.PaymentStatus

	filters   []bankapi.TransactionFilter
	movements []movement
	payments  []bankapi.PaymentRequest
	checked   []string
}

func (f *fakeAPI) ListTransactions(_ context.Context, _ string, filter bankapi.TransactionFilter) ([]bankapi.Transaction, error) {
	f.filters = append(f.filters, filter)
	return f.txs, f.listErr
}

func (f *fakeAPI) Deposit(_ context.Context, _, amount, account string) (*bankapi.MovementResult, error) {
	f.movements = append(f.movements, movement{"deposit", amount, account})
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	return &bankapi.MovementResult{Message: "Deposit successful"}, nil
}

func (f *fakeAPI) Withdraw(_ context.Context, _, amount, account string) (*bankapi.MovementResult, error) {
	f.movements = append(f.movements, movement{"withdraw", amount, account})
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	return &bankapi.MovementResult{Message: "Withdrawal successful"}, nil
}

func (f *fakeAPI) GeneratePayment(_ context.Context, _ string, req bankapi.PaymentRequest) (*bankapi.Payment, error) {
	f.payments = append(f.payments, req)
	return f.payment, f.paymentErr
}

func (f *fakeAPI) CheckPayment(_ context.Context, _, paymentToken string) (*bankapi.PaymentStatus, error) {
	f.checked = append(f.checked, paymentToken)
	return f.status, nil
}

func newServer(t *testing.T, api API, store session.Storage) *echo.Echo {
	t.Helper()
	m := New(Dependencies{API: api, Renderer: rendering.NewUniversalRenderer()})
	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))

	return testutils.SectionServer(store, "/dashboard/transactions", func(g *echo.Group) {
		g.GET("/view", testutils.ViewHandler(registry.MustGet(reg, dashboard.ViewKey(dashboard.Transactions))))
		require.NoError(t, m.Boot(context.Background(), g, reg))
	})
}

func sampleTxs() []bankapi.Transaction {
	return []bankapi.Transaction{
		{ID: 1, AccountNumber: "TN001", Type: "deposit", Amount: decimal.RequireFromString("150"), Timestamp: "2024-12-01T10:30:00"},
		{ID: 2, AccountNumber: "TN001", Type: "withdraw", Amount: decimal.RequireFromString("20.5"), Timestamp: "2024-12-02T09:00:00"},
	}
}

func TestViewFetchesOnMount(t *testing.T) {
	api := &fakeAPI{txs: sampleTxs()}
	e := newServer(t, api, testutils.Signed("tok", "01234567"))

	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/view"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.filters, 1)
	assert.Equal(t, bankapi.TransactionFilter{}, api.filters[0])
	body := rec.Body.String()
	assert.Contains(t, body, "+150.00 TND")
	assert.Contains(t, body, "-20.50 TND")
	assert.Contains(t, body, "2024-12-01")
}

func TestViewWithoutSessionMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, &testutils.MemStorage{})

	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/view"})

	assert.Contains(t, rec.Body.String(), "You must be logged in")
	assert.Empty(t, api.filters)
}

func TestListFilters(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	q := url.Values{"filter_cin": {" 01234567 "}, "filter_account": {""}, "date_of_transaction": {"2024-12-01"}}
	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/list?" + q.Encode(), HTMX: true})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.filters, 1)
	assert.Equal(t, bankapi.TransactionFilter{CIN: "01234567", DateOfTransaction: "2024-12-01"}, api.filters[0])
	assert.Contains(t, rec.Body.String(), "No transactions available")
}

func TestListFailureStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
		msg  string
	}{
		"backend 404 passes through": {&bankapi.APIError{StatusCode: http.StatusNotFound, Detail: "No transactions yet."}, http.StatusNotFound, "No transactions yet."},
		"unreachable backend":        {bankapi.ErrTransport, http.StatusBadGateway, bankapi.GenericMessage},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			api := &fakeAPI{listErr: tc.err}
			e := newServer(t, api, testutils.Signed("tok", ""))

			rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/list", HTMX: true})

			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.msg)
		})
	}
}

func TestListRejectsBadDate(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/list?date_of_transaction=01/12/2024", HTMX: true})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Date must be in YYYY-MM-DD format")
	assert.Empty(t, api.filters)
}

func TestDepositRefetchesList(t *testing.T) {
	api := &fakeAPI{txs: sampleTxs()}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{
		Method: http.MethodPost,
		Target: "/dashboard/transactions/deposit",
		Form:   url.Values{"amount": {"150"}, "account_number": {"TN001"}, "filter_account": {"TN001"}},
		HTMX:   true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []movement{{"deposit", "150", "TN001"}}, api.movements)
	require.Len(t, api.filters, 1, "the list is fetched again")
	assert.Equal(t, "TN001", api.filters[0].AccountNumber)

	body := rec.Body.String()
	assert.Contains(t, body, "Deposit successful")
	assert.Contains(t, body, `id="tx-list-panel"`)
	assert.Contains(t, body, `hx-swap-oob="true"`)
}

func TestWithdrawValidation(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{
		Method: http.MethodPost,
		Target: "/dashboard/transactions/withdraw",
		Form:   url.Values{"amount": {"0"}, "account_number": {""}},
		HTMX:   true,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a valid amount.")
	assert.Contains(t, rec.Body.String(), "Account number is required")
	assert.Empty(t, api.movements)
}

func TestWithdrawFailureSkipsRefetch(t *testing.T) {
	api := &fakeAPI{moveErr: &bankapi.APIError{StatusCode: http.StatusBadRequest, Detail: "Insufficient funds"}}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{
		Method: http.MethodPost,
		Target: "/dashboard/transactions/withdraw",
		Form:   url.Values{"amount": {"9000"}, "account_number": {"TN001"}},
		HTMX:   true,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient funds")
	assert.Empty(t, api.filters)
}

func TestPaymentOpensLink(t *testing.T) {
	api := &fakeAPI{payment: &bankapi.Payment{
		Message:    "Payment created",
		PaymentURL: "https://sandbox.paymee.tn/gateway/8f2c1d",
	}}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{
		Method: http.MethodPost,
		Target: "/dashboard/transactions/payment",
		Form:   url.Values{"amount": {"25"}, "email": {"amira@example.com"}, "first_name": {"Amira"}, "last_name": {"Ben Salah"}},
		HTMX:   true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, api.payments, 1)
	assert.Equal(t, bankapi.PaymentRequest{Amount: "25", Email: "amira@example.com", FirstName: "Amira", LastName: "Ben Salah"}, api.payments[0])
	assert.JSONEq(t, `{"open-payment":{"url":"https://sandbox.paymee.tn/gateway/8f2c1d"}}`, rec.Header().Get("HX-Trigger"))
	assert.Contains(t, rec.Body.String(), `target="_blank"`)
	assert.Contains(t, rec.Body.String(), "payment-status?token=8f2c1d")
}

func TestPaymentWithoutURL(t *testing.T) {
	api := &fakeAPI{paymentErr: bankapi.ErrNoPaymentURL}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{
		Method: http.MethodPost,
		Target: "/dashboard/transactions/payment",
		Form:   url.Values{"amount": {"25"}, "email": {"amira@example.com"}, "first_name": {"Amira"}, "last_name": {"Ben Salah"}},
		HTMX:   true,
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment URL not found in response.")
	assert.Empty(t, rec.Header().Get("HX-Trigger"))
}

func TestPaymentStatus(t *testing.T) {
	api := &fakeAPI{status: &bankapi.PaymentStatus{Status: true, Message: "Payment completed"}}
	e := newServer(t, api, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/transactions/payment-status?token=8f2c1d", HTMX: true})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"8f2c1d"}, api.checked)
	assert.Contains(t, rec.Body.String(), "Paid")
	assert.Contains(t, rec.Body.String(), "Payment completed")
}

func TestPaymentToken(t *testing.T) {
	assert.Equal(t, "abc123", PaymentToken("https://sandbox.paymee.tn/gateway/abc123"))
	assert.Equal(t, "abc123", PaymentToken("https://sandbox.paymee.tn/gateway/abc123/"))
	assert.Empty(t, PaymentToken("https://sandbox.paymee.tn"))
}
