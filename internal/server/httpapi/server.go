// Package httpapi exposes the credential lifecycle over HTTP/JSON for the
// front-end: registration, login, and token-gated account resolution, plus
// health and Prometheus metrics endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuskit/campusauth/internal/logging"
	"github.com/campuskit/campusauth/internal/server/auth"
	"github.com/campuskit/campusauth/internal/server/models"
	"github.com/campuskit/campusauth/internal/server/services"
)

// AccountAuthenticator is the slice of AccountService the HTTP layer needs.
type AccountAuthenticator interface {
	Register(ctx context.Context, email, password, role string) (*services.AuthResult, error)
	Authenticate(ctx context.Context, email, password, role string) (*services.AuthResult, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
}

type Server struct {
	address  string
	echo     *echo.Echo
	accounts AccountAuthenticator
	issuer   *auth.Issuer
	logger   logging.Logger
	metrics  *Metrics
}

func NewServer(address string, accounts AccountAuthenticator, issuer *auth.Issuer, logger logging.Logger) *Server {
	s := &Server{
		address:  address,
		echo:     echo.New(),
		accounts: accounts,
		issuer:   issuer,
		logger:   logger.With("module", "http_server"),
		metrics:  NewMetrics(),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(echomw.Recover())
	s.echo.Use(s.metrics.Middleware())

	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/auth/me", s.handleMe, s.requireToken)
	api.GET("/health", s.handleHealth)

	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
