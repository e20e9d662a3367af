package handlers

import (
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/middleware"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func init() {
	// Generate a real dummy hash at startup to ensure consistent timing
	hash, _ := services.HashPassword("dummy_password_for_timing_mitigation")
	if hash != "" {
		globalDummyHash = hash
	}
}

// Package level variable to hold the dummy hash
var globalDummyHash string = "$2a$10$X7.G.t8./.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t.t" // Fallback

// appConfig is wired once at startup. Handlers must never re-read the
// environment per request: a lazily loaded config would mint a fresh JWT
// secret in development and sign tokens the auth middleware cannot verify.
var appConfig *config.Config

// SetConfig hands the loaded configuration to the handlers package
func SetConfig(cfg *config.Config) {
	appConfig = cfg
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// LoginHandler validates credentials and issues an access/refresh token pair
func LoginHandler(c echo.Context) error {
	cfg := appConfig

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Username and password are required",
		})
	}

	var user models.User
	err := db.DB.Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		// Timing attack mitigation: always run a bcrypt comparison so the
		// response time does not reveal whether the account exists
		services.VerifyPassword(globalDummyHash, req.Password)
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid username or password",
		})
	}

	if !services.VerifyPassword(user.Password, req.Password) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid username or password",
		})
	}

	if !user.IsActive {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Account is inactive",
		})
	}

	access, err := services.GenerateAccessToken(cfg.JWTSecret, user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to issue token",
		})
	}
	refresh, err := services.GenerateRefreshToken(cfg.JWTSecret, user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to issue token",
		})
	}

	now := time.Now()
	user.LastLoginAt = &now
	db.DB.Model(&user).Update("last_login_at", now)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"access":  access,
		"refresh": refresh,
		"user":    serializeUser(&user),
	})
}

// RefreshHandler exchanges a valid refresh token for a new access token
func RefreshHandler(c echo.Context) error {
	cfg := appConfig

	var req refreshRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Refresh) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Refresh token is required",
		})
	}

	claims, err := services.ParseToken(cfg.JWTSecret, req.Refresh, services.TokenTypeRefresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid or expired refresh token",
		})
	}

	// Re-read the user so revoked accounts cannot refresh
	var user models.User
	if err := db.DB.First(&user, "id = ?", claims.UserID).Error; err != nil || !user.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid or expired refresh token",
		})
	}

	access, err := services.GenerateAccessToken(cfg.JWTSecret, user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to issue token",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"access": access,
	})
}

// CurrentUserHandler returns the authenticated user's public profile
func CurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Not authenticated",
		})
	}
	return c.JSON(http.StatusOK, serializeUser(user))
}
