package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/housewarrior/housewarrior/internal/core/ports"
)

// ProfileHandler serves authenticated profile reads. These routes sit behind
// the JWT middleware: whatever state the client restored optimistically, the
// token is re-validated server-side before anything is returned.
type ProfileHandler struct {
	authService ports.AuthService
}

func NewProfileHandler(authService ports.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// Me returns the profile of the authenticated user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	user, err := h.authService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{Success: true, User: user})
}

// Housewives lists service-provider profiles for browsing customers.
//
// @Summary      List housewife profiles
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  directoryResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /housewives [get]
func (h *ProfileHandler) Housewives(c echo.Context) error {
	users, err := h.authService.Housewives(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, directoryResponse{Success: true, Users: users})
}
