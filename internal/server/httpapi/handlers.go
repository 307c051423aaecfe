package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuskit/campusauth/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) handleRegister(c echo.Context) error {
	req := new(credentialsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: "invalid_input", Error: "invalid request body"})
	}

	result, err := s.accounts.Register(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		s.metrics.AuthAttempt("register", outcomeOf(err))
		return s.writeError(c, err)
	}

	s.metrics.AuthAttempt("register", "success")
	return c.JSON(http.StatusCreated, result)
}

func (s *Server) handleLogin(c echo.Context) error {
	req := new(credentialsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Code: "invalid_input", Error: "invalid request body"})
	}

	result, err := s.accounts.Authenticate(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		s.metrics.AuthAttempt("login", outcomeOf(err))
		return s.writeError(c, err)
	}

	s.metrics.AuthAttempt("login", "success")
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleMe(c echo.Context) error {
	accountID := c.Get(accountIDContextKey).(string)

	account, err := s.accounts.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Valid token for an account that no longer exists.
			return c.JSON(http.StatusUnauthorized, errorResponse{Code: "invalid_credentials", Error: "invalid credentials"})
		}
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps the service error taxonomy to transport responses.
// NotFoundForRole and InvalidPassword deliberately share one body so the
// response does not reveal whether an email is registered.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Code: "invalid_input", Error: err.Error()})
	case errors.Is(err, common.ErrDuplicateEmail):
		return c.JSON(http.StatusConflict, errorResponse{Code: "email_taken", Error: "email already registered"})
	case errors.Is(err, common.ErrNotFoundForRole), errors.Is(err, common.ErrInvalidPassword):
		return c.JSON(http.StatusUnauthorized, errorResponse{Code: "invalid_credentials", Error: "invalid credentials"})
	case errors.Is(err, common.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Code: "store_unavailable", Error: "service temporarily unavailable"})
	default:
		s.logger.Error(c.Request().Context(), "unhandled error", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Code: "internal", Error: "internal error"})
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, common.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, common.ErrNotFoundForRole), errors.Is(err, common.ErrInvalidPassword):
		return "invalid_credentials"
	case errors.Is(err, common.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
