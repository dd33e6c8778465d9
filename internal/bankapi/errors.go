package bankapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrTransport marks failures where no usable response came back from the backend
// (connection refused, timeout, cancelled context).
var ErrTransport = errors.New("bank api unreachable")

// GenericMessage is shown to the user for transport failures.
const GenericMessage = "An unexpected error occurred"

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Detail is the backend's `detail` (or `message`) field. Non-string details are kept
	// in their JSON form.
	Detail string
	// Body is the raw response payload.
	Body string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bank api: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("bank api: status %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Detail:     detailFrom(body),
		Body:       string(body),
	}
}

func detailFrom(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"detail", "message"} {
		res := gjson.GetBytes(body, key)
		if !res.Exists() {
			continue
		}
		if res.Type == gjson.String {
			return res.String()
		}
		return res.Raw
	}
	return ""
}

// UserMessage turns err into the text shown to the user: the backend detail for API
// errors, GenericMessage for transport errors, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	case errors.Is(err, ErrTransport):
		return GenericMessage
	default:
		return fallback
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ResponseStatus is the status a page answers with after err: backend 4xx statuses are
// passed through, anything else is a bad gateway.
func ResponseStatus(err error) int {
	if code := StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}
