package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/housewarrior/housewarrior/internal/api/metrics"
	"github.com/housewarrior/housewarrior/internal/core/domain"
	"github.com/housewarrior/housewarrior/internal/core/ports"
	"github.com/housewarrior/housewarrior/internal/core/service"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	ctx := service.WithRequestID(c.Request().Context(), requestID(c))
	res, err := h.authService.Register(ctx, ports.RegisterInput{
		FullName:          req.FullName,
		Email:             req.Email,
		Password:          req.Password,
		ContactNumber:     req.ContactNumber,
		Address:           req.Address,
		Role:              req.Role,
		ServiceCategories: req.ServiceCategories,
		Bio:               req.Bio,
		Interests:         req.Interests,
		Description:       req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, errorResponse{Message: "User with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Error during registration",
			Error:   err.Error(),
		})
	}

	metrics.RegistrationsTotal.WithLabelValues(res.User.Role).Inc()

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "Registration successful",
		Token:   res.Token,
		User:    res.User,
	})
}

// Login authenticates a user and returns a fresh JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	ctx := service.WithRequestID(c.Request().Context(), requestID(c))
	res, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Error during login",
			Error:   err.Error(),
		})
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
