package bankapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// CheckLoanEligibility scores the questionnaire. The endpoint does not require
// authentication; token is attached when present.
func (c *Client) CheckLoanEligibility(ctx context.Context, token string, req LoanRequest) (*LoanEligibility, error) {
	cl, err := jsonCall(http.MethodPost, "/loan-eligibility", token, req)
	if err != nil {
		return nil, err
	}
	var out LoanEligibility
	if err := c.doJSON(ctx, cl, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLocations returns every branch and ATM.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var out []Location
	err := c.doJSON(ctx, call{method: http.MethodGet, path: "/branches-atms"}, &out)
	return out, err
}

// NearbyLocations returns branches and ATMs within radius of the coordinates.
// radius is passed through untouched; the backend decides its unit.
func (c *Client) NearbyLocations(ctx context.Context, lat, lon float64, radius string) ([]Location, error) {
	var out []Location
	err := c.doJSON(ctx, call{
		method: http.MethodGet,
		path:   "/branches-atms/nearby",
		query: url.Values{
			"latitude":  {strconv.FormatFloat(lat, 'f', -1, 64)},
			"longitude": {strconv.FormatFloat(lon, 'f', -1, 64)},
			"radius":    {radius},
		},
	}, &out)
	return out, err
}

// ExchangeRate returns how many units of target one unit of base buys.
func (c *Client) ExchangeRate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	body, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/exchange-rate/",
		query: url.Values{
			"base_currency":   {base},
			"target_currency": {target},
		},
	})
	if err != nil {
		return decimal.Zero, err
	}
	rate := gjson.GetBytes(body, "rate")
	if !rate.Exists() {
		return decimal.Zero, newAPIError(http.StatusOK, body)
	}
	return decimal.NewFromString(rate.String())
}

// SendVerification texts a 2FA code to phone.
func (c *Client) SendVerification(ctx context.Context, token, phone string) (*VerificationResult, error) {
	return c.verification(ctx, "/send-verification", token, url.Values{"phone_number": {phone}})
}

// VerifyCode confirms the code sent to phone and enables 2FA.
func (c *Client) VerifyCode(ctx context.Context, token, phone, code string) (*VerificationResult, error) {
	return c.verification(ctx, "/verify-code", token, url.Values{
		"phone_number": {phone},
		"code":         {code},
	})
}

// verification treats a 2xx answer carrying "success": false as a failure.
func (c *Client) verification(ctx context.Context, path, token string, form url.Values) (*VerificationResult, error) {
	body, err := c.do(ctx, formCall(path, token, form))
	if err != nil {
		return nil, err
	}
	res := &VerificationResult{
		Success: true,
		Message: gjson.GetBytes(body, "message").String(),
	}
	if s := gjson.GetBytes(body, "success"); s.Exists() && !s.Bool() {
		return nil, newAPIError(http.StatusOK, body)
	}
	return res, nil
}
