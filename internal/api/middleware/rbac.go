package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type forbiddenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RBAC restricts a route to the given roles. Must run after Auth so the role
// claim is present in context.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, forbiddenResponse{Message: "forbidden"})
			}
			return next(c)
		}
	}
}
