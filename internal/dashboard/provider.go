package dashboard

import (
	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/internal/session"
)

// Provider attaches a State to every request below it. The state starts from the
// section stored in the session and writes each change back before the response is rendered.
func Provider(store session.Storage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := NewState(Section(store.Section(c)))
			st.onChange = func(sec Section) {
				if err := store.SetSection(c, string(sec)); err != nil {
					middleware.FromContext(c.Request().Context()).Error("Failed to persist dashboard section", "section", sec, "error", err)
				}
			}

			c.SetRequest(c.Request().WithContext(WithState(c.Request().Context(), st)))
			return next(c)
		}
	}
}
