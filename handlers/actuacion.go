package handlers

import (
	"expedientes_app_go/db"
	"expedientes_app_go/middleware"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type actuacionRequest struct {
	Caso        string  `json:"caso"`
	Fecha       *string `json:"fecha"`
	Descripcion *string `json:"descripcion"`
	Tipo        *string `json:"tipo"`
}

// GetActuacionesHandler lists actuaciones, optionally filtered by caso
func GetActuacionesHandler(c echo.Context) error {
	query := db.DB.Preload("CreatedBy")

	if casoID := c.QueryParam("caso"); casoID != "" {
		query = query.Where("caso_id = ?", casoID)
	}

	var actuaciones []models.CaseActuacion
	if err := query.Find(&actuaciones).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch actuaciones",
		})
	}

	return c.JSON(http.StatusOK, serializeActuaciones(actuaciones))
}

// GetActuacionHandler returns a single actuacion
func GetActuacionHandler(c echo.Context) error {
	id := c.Param("id")
	var actuacion models.CaseActuacion
	if err := db.DB.Preload("CreatedBy").First(&actuacion, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Actuacion not found",
		})
	}
	return c.JSON(http.StatusOK, serializeActuacion(&actuacion))
}

// CreateActuacionHandler creates an actuacion on the case named in the body
func CreateActuacionHandler(c echo.Context) error {
	var req actuacionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Caso == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Caso is required",
		})
	}
	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", req.Caso).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Caso does not exist",
		})
	}

	return createActuacionFromRequest(c, &req, lawCase.ID)
}

// createActuacion binds and creates an actuacion bound to the given case.
// Used by the case add_actuacion action, where the case comes from the route.
func createActuacion(c echo.Context, casoID string) error {
	var req actuacionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	return createActuacionFromRequest(c, &req, casoID)
}

func createActuacionFromRequest(c echo.Context, req *actuacionRequest, casoID string) error {
	currentUser := middleware.GetCurrentUser(c)

	if req.Fecha == nil || *req.Fecha == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Fecha is required",
		})
	}
	if _, err := time.Parse("2006-01-02", *req.Fecha); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "fecha must be a valid date (YYYY-MM-DD)",
		})
	}
	if req.Descripcion == nil || strings.TrimSpace(*req.Descripcion) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Descripcion is required",
		})
	}

	actuacion := &models.CaseActuacion{
		CasoID:      casoID,
		Fecha:       *req.Fecha,
		Descripcion: services.SanitizeText(*req.Descripcion),
		Tipo:        strValue(req.Tipo),
		CreatedByID: currentUser.ID,
	}

	if err := db.DB.Create(actuacion).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create actuacion",
		})
	}

	actuacion.CreatedBy = currentUser
	return c.JSON(http.StatusCreated, serializeActuacion(actuacion))
}

// UpdateActuacionHandler updates an actuacion. created_by is immutable.
func UpdateActuacionHandler(c echo.Context) error {
	id := c.Param("id")
	var actuacion models.CaseActuacion
	if err := db.DB.Preload("CreatedBy").First(&actuacion, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Actuacion not found",
		})
	}

	var req actuacionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Fecha != nil {
		if _, err := time.Parse("2006-01-02", *req.Fecha); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "fecha must be a valid date (YYYY-MM-DD)",
			})
		}
		actuacion.Fecha = *req.Fecha
	}
	if req.Descripcion != nil {
		descripcion := services.SanitizeText(*req.Descripcion)
		if descripcion == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Descripcion cannot be empty",
			})
		}
		actuacion.Descripcion = descripcion
	}
	if req.Tipo != nil {
		actuacion.Tipo = *req.Tipo
	}

	if err := db.DB.Save(&actuacion).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update actuacion",
		})
	}

	return c.JSON(http.StatusOK, serializeActuacion(&actuacion))
}

// DeleteActuacionHandler deletes an actuacion
func DeleteActuacionHandler(c echo.Context) error {
	id := c.Param("id")
	var actuacion models.CaseActuacion
	if err := db.DB.First(&actuacion, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Actuacion not found",
		})
	}

	if err := db.DB.Delete(&actuacion).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete actuacion",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
