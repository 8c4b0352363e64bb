package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/api/metrics"
	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// LoginLimiter throttles authentication attempts per key (email). A nil
// limiter disables throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthHandler exposes login and registration.
type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
	logger      zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, logger: logger}
}

// Login authenticates a user and returns a signed session token.
//
// @Summary      Login with email plus password (admins) or referral code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if h.limiter != nil {
		ok, err := h.limiter.Allow(c.Request().Context(), req.Email)
		if err != nil {
			// A broken limiter must not lock everyone out; the attempt
			// still has to pass real credential checks.
			h.logger.Error().Err(err).Msg("login limiter unavailable")
		} else if !ok {
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
		}
	}

	token, identity, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:        req.Email,
		Password:     req.Password,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginFailureLabel(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: identity})
}

// Register submits a new account for administrator approval.
//
// @Summary      Register a new account (starts Pending)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}); err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Registration request submitted successfully. Please wait for admin approval.",
	})
}

func loginFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountPending):
		return "account_pending"
	case errors.Is(err, domain.ErrAccountRejected):
		return "account_rejected"
	case errors.Is(err, domain.ErrReferralCodeRequired):
		return "referral_code_required"
	case errors.Is(err, domain.ErrReferralExpired):
		return "referral_expired"
	case errors.Is(err, domain.ErrNoPasswordConfigured):
		return "no_password"
	default:
		return "error"
	}
}
