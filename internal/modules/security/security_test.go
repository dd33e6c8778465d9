package security

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeInputEnter(t *testing.T) {
	t.Run("a digit moves focus to the next field", func(t *testing.T) {
		var ci CodeInput
		for i := 0; i < CodeLength-1; i++ {
			next, ok := ci.Enter(i, "7")
			require.True(t, ok)
			assert.Equal(t, i+1, next)
		}
	})

	t.Run("the last field keeps focus", func(t *testing.T) {
		var ci CodeInput
		next, ok := ci.Enter(5, "1")
		require.True(t, ok)
		assert.Equal(t, 5, next)
	})

	t.Run("non-digits are rejected and the field is unchanged", func(t *testing.T) {
		ci := CodeInput{"1", "2"}
		for _, v := range []string{"a", "12", " ", "-", "٣"} {
			next, ok := ci.Enter(1, v)
			assert.False(t, ok, v)
			assert.Equal(t, 1, next)
			assert.Equal(t, "2", ci[1])
		}
	})

	t.Run("clearing a field keeps focus", func(t *testing.T) {
		ci := CodeInput{"1", "2"}
		next, ok := ci.Enter(1, "")
		require.True(t, ok)
		assert.Equal(t, 1, next)
		assert.Empty(t, ci[1])
	})

	t.Run("out of range index", func(t *testing.T) {
		var ci CodeInput
		_, ok := ci.Enter(6, "1")
		assert.False(t, ok)
	})
}

func TestParseCode(t *testing.T) {
	ci := ParseCode("12a3456789")
	assert.Equal(t, "123456", ci.String())
	assert.True(t, ci.Complete())
	assert.False(t, ParseCode("123").Complete())
}

func TestWizardIsLinear(t *testing.T) {
	w := NewWizard()
	assert.ErrorIs(t, w.ChooseSMS(), ErrStepOrder)

	w.OpenTwoFactor()
	assert.ErrorIs(t, w.CodeSent(), ErrStepOrder)
	require.NoError(t, w.ChooseSMS())
	assert.ErrorIs(t, w.Verified(), ErrStepOrder)
	require.NoError(t, w.CodeSent())
	require.NoError(t, w.Verified())
	assert.Equal(t, StepSuccess, w.Step)

	w.Code = ParseCode("123456")
	w.Back()
	assert.Equal(t, NewWizard(), w)
}

type verifyCall struct{ phone, code string }

type fakeAPI struct {
	sendErr   error
	verifyErr error
	sent      []string
	verified  []verifyCall
	token     string
}

func (f *fakeAPI) SendVerification(_ context.Context, token, phone string) (*bankapi.VerificationResult, error) {
	f.token = token
	f.sent = append(f.sent, phone)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &bankapi.VerificationResult{Success: true, Message: "Code sent"}, nil
}

func (f *fakeAPI) VerifyCode(_ context.Context, _, phone, code string) (*bankapi.VerificationResult, error) {
	f.verified = append(f.verified, verifyCall{phone, code})
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &bankapi.VerificationResult{Success: true}, nil
}

func newServer(t *testing.T, api API, store session.Storage) *echo.Echo {
	t.Helper()
	m := New(Dependencies{API: api, Renderer: rendering.NewUniversalRenderer()})
	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))

	return testutils.SectionServer(store, "/dashboard/security", func(g *echo.Group) {
		g.GET("/view", testutils.ViewHandler(registry.MustGet(reg, dashboard.ViewKey(dashboard.Security))))
		require.NoError(t, m.Boot(context.Background(), g, reg))
	})
}

type result struct {
	code int
	body string
}

func post(e *echo.Echo, action string, form url.Values) result {
	rec := testutils.Do(e, testutils.Request{Method: http.MethodPost, Target: "/dashboard/security/" + action, Form: form, HTMX: true})
	return result{code: rec.Code, body: rec.Body.String()}
}

func TestViewStartsAtOptions(t *testing.T) {
	e := newServer(t, &fakeAPI{}, testutils.Signed("tok", ""))

	rec := testutils.Do(e, testutils.Request{Target: "/dashboard/security/view"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Security Options")
	assert.Contains(t, rec.Body.String(), `hx-post="/dashboard/security/two-factor"`)
}

func TestWizardRoutes(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", "01234567"))

	res := post(e, "two-factor", url.Values{"view": {"main"}, "step": {"method"}})
	require.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.body, "Choose 2FA Method")

	res = post(e, "method", url.Values{"view": {"2fa"}, "step": {"method"}})
	require.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.body, "Enter Your Phone Number")

	res = post(e, "send", url.Values{"view": {"2fa"}, "step": {"phone"}, "phone_number": {" +21620123456 "}})
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, []string{"+21620123456"}, api.sent)
	assert.Equal(t, "tok", api.token)
	assert.Contains(t, res.body, "Enter Verification Code")
	assert.Contains(t, res.body, `data-code-index="0" data-next="1"`)
	assert.Contains(t, res.body, `data-code-index="5" class=`, "the last field has no next focus")

	res = post(e, "verify", url.Values{"view": {"2fa"}, "step": {"code"}, "phone_number": {"+21620123456"}, "code": {"123456"}})
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, []verifyCall{{"+21620123456", "123456"}}, api.verified)
	assert.Contains(t, res.body, "2FA Successfully Enabled")

	res = post(e, "back", url.Values{"view": {"2fa"}, "step": {"success"}})
	require.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.body, "Security Options")
}

func TestSendFailureStaysOnPhoneStep(t *testing.T) {
	api := &fakeAPI{sendErr: &bankapi.APIError{StatusCode: http.StatusBadRequest, Detail: "2FA is already enabled"}}
	e := newServer(t, api, testutils.Signed("tok", ""))

	res := post(e, "send", url.Values{"view": {"2fa"}, "step": {"phone"}, "phone_number": {"+21620123456"}})

	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Contains(t, res.body, "2FA is already enabled")
	assert.Contains(t, res.body, "Enter Your Phone Number")
	assert.Contains(t, res.body, `value="+21620123456"`)
}

func TestSendRequiresPhone(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	res := post(e, "send", url.Values{"view": {"2fa"}, "step": {"phone"}, "phone_number": {"  "}})

	assert.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.body, "Phone number is required")
	assert.Empty(t, api.sent)
}

func TestVerifySuccessFalseIsFailure(t *testing.T) {
	api := &fakeAPI{verifyErr: &bankapi.APIError{StatusCode: http.StatusOK, Detail: "Code expired"}}
	e := newServer(t, api, testutils.Signed("tok", ""))

	res := post(e, "verify", url.Values{"view": {"2fa"}, "step": {"code"}, "phone_number": {"+21620123456"}, "code": {"123456"}})

	assert.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.body, "Code expired")
	assert.Contains(t, res.body, "Enter Verification Code")
	assert.NotContains(t, res.body, "2FA Successfully Enabled")
}

func TestVerifyIncompleteCode(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	res := post(e, "verify", url.Values{"view": {"2fa"}, "step": {"code"}, "phone_number": {"+21620123456"}, "code": {"123"}})

	assert.Equal(t, http.StatusUnprocessableEntity, res.code)
	assert.Contains(t, res.body, "Enter the 6-digit code")
	assert.Empty(t, api.verified)
}

func TestOutOfOrderStepRestarts(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, testutils.Signed("tok", ""))

	res := post(e, "verify", url.Values{"view": {"2fa"}, "step": {"phone"}, "code": {"123456"}})

	assert.Equal(t, http.StatusConflict, res.code)
	assert.Contains(t, res.body, "Security Options")
	assert.Empty(t, api.verified)
}

func TestRoutesRequireSession(t *testing.T) {
	api := &fakeAPI{}
	e := newServer(t, api, &testutils.MemStorage{})

	res := post(e, "send", url.Values{"view": {"2fa"}, "step": {"phone"}, "phone_number": {"+21620123456"}})

	assert.Equal(t, http.StatusUnauthorized, res.code)
	assert.Contains(t, res.body, "You must be logged in")
	assert.Empty(t, api.sent)
}
