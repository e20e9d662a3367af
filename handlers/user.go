package handlers

import (
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	IsAdmin  *bool  `json:"is_admin"`
	IsActive *bool  `json:"is_active"`
}

// GetUsersHandler returns all manageable users (admin only). Protected system
// accounts are excluded from every operation of this resource.
func GetUsersHandler(c echo.Context) error {
	var users []models.User
	if err := db.DB.Where("is_protected = ?", false).Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch users",
		})
	}
	return c.JSON(http.StatusOK, serializeUsers(users))
}

// GetUserHandler returns a single user by ID (admin only)
func GetUserHandler(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := db.DB.Where("is_protected = ?", false).First(&user, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
		})
	}
	return c.JSON(http.StatusOK, serializeUser(&user))
}

// CreateUserHandler creates a new user (admin only)
func CreateUserHandler(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Username is required",
		})
	}
	if len(req.Password) < 4 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Password must be at least 4 characters",
		})
	}

	// Validate username uniqueness
	var count int64
	if err := db.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to validate username",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Username already exists",
		})
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to hash password",
		})
	}

	isAdmin := req.IsAdmin != nil && *req.IsAdmin
	user := &models.User{
		Username: req.Username,
		Password: hashedPassword,
		Email:    strings.TrimSpace(req.Email),
		IsAdmin:  isAdmin,
		IsStaff:  isAdmin, // Admins are staff too
		IsActive: true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create user",
		})
	}

	// Send welcome email asynchronously when the account has an inbox
	if user.Email != "" {
		services.SendEmailAsync(appConfig, services.BuildWelcomeEmail(user.Email, user.Username))
	}

	return c.JSON(http.StatusCreated, serializeUser(user))
}

// UpdateUserHandler updates an existing user (admin only)
func UpdateUserHandler(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := db.DB.Where("is_protected = ?", false).First(&user, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
		})
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Username != "" {
		newUsername := strings.TrimSpace(req.Username)
		if newUsername != user.Username {
			var count int64
			if err := db.DB.Model(&models.User{}).Where("username = ? AND id <> ?", newUsername, user.ID).Count(&count).Error; err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Failed to validate username",
				})
			}
			if count > 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "Username already exists",
				})
			}
			user.Username = newUsername
		}
	}

	if req.Password != "" {
		if len(req.Password) < 4 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Password must be at least 4 characters",
			})
		}
		hashedPassword, err := services.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to hash password",
			})
		}
		user.Password = hashedPassword
	}

	if req.Email != "" {
		user.Email = strings.TrimSpace(req.Email)
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
		user.IsStaff = *req.IsAdmin
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update user",
		})
	}

	return c.JSON(http.StatusOK, serializeUser(&user))
}

// DeleteUserHandler deletes a user (admin only)
func DeleteUserHandler(c echo.Context) error {
	id := c.Param("id")
	var user models.User
	if err := db.DB.Where("is_protected = ?", false).First(&user, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "User not found",
		})
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete user",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
