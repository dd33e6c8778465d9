package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rabie-karouia/EasyDinar/internal/dashboard"
	"github.com/rabie-karouia/EasyDinar/internal/metrics"
	"github.com/rabie-karouia/EasyDinar/internal/middleware"
	"github.com/rabie-karouia/EasyDinar/web"
)

// RegisterRoutes sets up all the application routes and boots every module under
// /dashboard/<name>.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.E.GET("/metrics", metrics.EchoHandler())

	rateLimiter := middleware.RateLimiter(s.Cfg.GetRateLimitPerMinute())

	s.E.GET("/", s.authHandler.Home)
	s.E.POST("/signup", s.authHandler.SignUpPost, rateLimiter)
	s.E.POST("/signin", s.authHandler.SignInPost, rateLimiter)

	s.E.GET("/password-recovery", s.authHandler.PasswordRecoveryGet)
	s.E.POST("/password-recovery", s.authHandler.PasswordRecoveryPost, rateLimiter)

	s.E.GET("/reset-password", s.authHandler.ResetPasswordGet)
	s.E.POST("/reset-password", s.authHandler.ResetPasswordPost)
	s.E.POST("/logout", s.authHandler.Logout)

	dash := s.E.Group("/dashboard", middleware.LoadSession(s.store), dashboard.Provider(s.store))
	dash.GET("", s.dashboardHandler.Page)
	dash.POST("/section/:section", s.dashboardHandler.SetSection)

	for _, m := range s.modules {
		if err := m.Boot(ctx, dash.Group("/"+m.Name()), s.registry); err != nil {
			return fmt.Errorf("booting module %s: %w", m.Name(), err)
		}
	}
	return nil
}
