// Package session keeps the signed-in client's bearer token, CIN and dashboard section
// in a signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Name is the cookie session holding authentication state.
const Name = "easydinar-session"

const (
	keyToken   = "token"
	keyCIN     = "cin"
	keySection = "section"
)

// ErrNoToken is returned when no usable bearer token is stored.
var ErrNoToken = errors.New("no session token")

// ErrTokenExpired is returned, once, when an expired token is dropped. It matches ErrNoToken.
var ErrTokenExpired = fmt.Errorf("%w: token expired", ErrNoToken)

// Storage is the per-client persistent storage used by handlers.
type Storage interface {
	// Token returns the stored bearer token, or ErrNoToken.
	Token(c echo.Context) (string, error)
	CIN(c echo.Context) string
	// SetAuth stores token and cin together.
	SetAuth(c echo.Context, token, cin string) error
	Section(c echo.Context) string
	SetSection(c echo.Context, section string) error
	// Clear removes token, cin and section.
	Clear(c echo.Context) error
}

// NewCookieStore builds the gorilla store used by echo-contrib's session middleware.
func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// CookieStorage implements Storage on the request's cookie session.
// It requires echo-contrib's session.Middleware.
type CookieStorage struct {
	now func() time.Time
}

// NewCookieStorage creates a CookieStorage.
func NewCookieStorage() *CookieStorage {
	return &CookieStorage{now: time.Now}
}

func (s *CookieStorage) get(c echo.Context) (*sessions.Session, error) {
	sess, err := session.Get(Name, c)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *CookieStorage) save(c echo.Context, sess *sessions.Session) error {
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Token returns the stored token. A JWT whose exp is in the past is removed and
// reported as ErrTokenExpired; tokens that are not JWTs are returned as they are.
func (s *CookieStorage) Token(c echo.Context) (string, error) {
	sess, err := s.get(c)
	if err != nil {
		return "", ErrNoToken
	}
	token, _ := sess.Values[keyToken].(string)
	if token == "" {
		return "", ErrNoToken
	}
	if Expired(token, s.now()) {
		delete(sess.Values, keyToken)
		delete(sess.Values, keyCIN)
		if err := s.save(c, sess); err != nil {
			return "", err
		}
		return "", ErrTokenExpired
	}
	return token, nil
}

func (s *CookieStorage) CIN(c echo.Context) string {
	sess, err := s.get(c)
	if err != nil {
		return ""
	}
	cin, _ := sess.Values[keyCIN].(string)
	return cin
}

func (s *CookieStorage) SetAuth(c echo.Context, token, cin string) error {
	sess, err := s.get(c)
	if err != nil {
		return err
	}
	sess.Values[keyToken] = token
	sess.Values[keyCIN] = cin
	return s.save(c, sess)
}

func (s *CookieStorage) Section(c echo.Context) string {
	sess, err := s.get(c)
	if err != nil {
		return ""
	}
	section, _ := sess.Values[keySection].(string)
	return section
}

func (s *CookieStorage) SetSection(c echo.Context, section string) error {
	sess, err := s.get(c)
	if err != nil {
		return err
	}
	if current, _ := sess.Values[keySection].(string); current == section {
		return nil
	}
	sess.Values[keySection] = section
	return s.save(c, sess)
}

func (s *CookieStorage) Clear(c echo.Context) error {
	sess, err := s.get(c)
	if err != nil {
		return err
	}
	delete(sess.Values, keyToken)
	delete(sess.Values, keyCIN)
	delete(sess.Values, keySection)
	return s.save(c, sess)
}

// Expired reports whether token is a JWT whose exp claim is before now.
// The signature is not checked; the backend remains the authority on validity.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
