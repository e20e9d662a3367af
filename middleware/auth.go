package middleware

import (
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
)

// RequireAuth authenticates the request from its Bearer access token and
// stores the resolved user in the echo context. The user record is loaded on
// every request so deactivations and role changes take effect immediately.
func RequireAuth(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := extractBearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authentication credentials were not provided",
				})
			}

			claims, err := services.ParseToken(cfg.JWTSecret, tokenString, services.TokenTypeAccess)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid or expired token",
				})
			}

			var user models.User
			if err := db.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error": "Invalid or expired token",
					})
				}
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Failed to resolve user",
				})
			}

			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Account is inactive",
				})
			}

			c.Set(ContextKeyUser, &user)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin users. Used on the user management routes
// where both reads and writes are admin only.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil || !user.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Admin privileges required",
				})
			}
			return next(c)
		}
	}
}

// RequireAdminForWrites lets any authenticated user read but restricts
// mutating methods to admins. Used on the standard resources.
func RequireAdminForWrites() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			user := GetCurrentUser(c)
			if user == nil || !user.IsAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Admin privileges required for write operations",
				})
			}
			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractBearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.ErrUnauthorized
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", echo.ErrUnauthorized
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", echo.ErrUnauthorized
	}
	return token, nil
}
