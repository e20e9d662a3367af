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

type alertaRequest struct {
	Caso             string  `json:"caso"`
	Titulo           *string `json:"titulo"`
	Resumen          *string `json:"resumen"`
	Hora             *string `json:"hora"`
	FechaVencimiento *string `json:"fecha_vencimiento"`
	Prioridad        *string `json:"prioridad"`
}

// GetAlertasHandler lists alertas, optionally filtered by caso and cumplida
func GetAlertasHandler(c echo.Context) error {
	query := db.DB.Preload("CreatedBy").Preload("CompletedBy")

	if casoID := c.QueryParam("caso"); casoID != "" {
		query = query.Where("caso_id = ?", casoID)
	}
	if c.QueryParams().Has("cumplida") {
		// "true" (case-insensitive) means completed; any other present value,
		// the empty string included, means not
		query = query.Where("cumplida = ?", strings.EqualFold(c.QueryParam("cumplida"), "true"))
	}

	var alertas []models.CaseAlerta
	if err := query.Find(&alertas).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch alertas",
		})
	}

	return c.JSON(http.StatusOK, serializeAlertas(alertas))
}

// GetAlertaHandler returns a single alerta
func GetAlertaHandler(c echo.Context) error {
	id := c.Param("id")
	var alerta models.CaseAlerta
	if err := db.DB.Preload("CreatedBy").Preload("CompletedBy").First(&alerta, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Alerta not found",
		})
	}
	return c.JSON(http.StatusOK, serializeAlerta(&alerta))
}

// CreateAlertaHandler creates an alerta on the case named in the body
func CreateAlertaHandler(c echo.Context) error {
	var req alertaRequest
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

	return createAlertaFromRequest(c, &req, &lawCase)
}

// createAlerta binds and creates an alerta bound to the given case.
// Used by the case add_alerta action, where the case comes from the route.
func createAlerta(c echo.Context, casoID string) error {
	var req alertaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", casoID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return createAlertaFromRequest(c, &req, &lawCase)
}

func createAlertaFromRequest(c echo.Context, req *alertaRequest, lawCase *models.LawCase) error {
	currentUser := middleware.GetCurrentUser(c)

	if req.Titulo == nil || strings.TrimSpace(*req.Titulo) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Titulo is required",
		})
	}
	if req.FechaVencimiento == nil || *req.FechaVencimiento == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Fecha de vencimiento is required",
		})
	}
	if _, err := time.Parse("2006-01-02", *req.FechaVencimiento); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "fecha_vencimiento must be a valid date (YYYY-MM-DD)",
		})
	}
	if req.Hora != nil && *req.Hora != "" {
		if _, err := time.Parse("15:04", *req.Hora); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "hora must be a valid time (HH:MM)",
			})
		}
	}

	prioridad := models.AlertaPrioridadMedia
	if req.Prioridad != nil && *req.Prioridad != "" {
		if !models.IsValidPrioridad(*req.Prioridad) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid prioridad. Must be one of: ALTA, MEDIA, BAJA",
			})
		}
		prioridad = *req.Prioridad
	}

	alerta := &models.CaseAlerta{
		CasoID:           lawCase.ID,
		Titulo:           services.SanitizeText(*req.Titulo),
		Resumen:          services.SanitizeText(strValue(req.Resumen)),
		Hora:             strValue(req.Hora),
		FechaVencimiento: *req.FechaVencimiento,
		Prioridad:        prioridad,
		CreatedByID:      currentUser.ID,
	}

	if err := db.DB.Create(alerta).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create alerta",
		})
	}

	// High priority deadlines notify the firm inbox
	if alerta.Prioridad == models.AlertaPrioridadAlta && appConfig.AlertNotifyEmail != "" {
		email := services.BuildAlertaEmail(appConfig.AlertNotifyEmail, alerta.Titulo, alerta.FechaVencimiento, lawCase.CodigoInterno)
		services.SendEmailAsync(appConfig, email)
	}

	alerta.CreatedBy = currentUser
	return c.JSON(http.StatusCreated, serializeAlerta(alerta))
}

// UpdateAlertaHandler updates an alerta. created_by, completed_by and
// completed_at are managed by the server and cannot be set here.
func UpdateAlertaHandler(c echo.Context) error {
	id := c.Param("id")
	var alerta models.CaseAlerta
	if err := db.DB.Preload("CreatedBy").Preload("CompletedBy").First(&alerta, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Alerta not found",
		})
	}

	var req alertaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Titulo != nil {
		titulo := services.SanitizeText(*req.Titulo)
		if titulo == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Titulo cannot be empty",
			})
		}
		alerta.Titulo = titulo
	}
	if req.Resumen != nil {
		alerta.Resumen = services.SanitizeText(*req.Resumen)
	}
	if req.Hora != nil {
		if *req.Hora != "" {
			if _, err := time.Parse("15:04", *req.Hora); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "hora must be a valid time (HH:MM)",
				})
			}
		}
		alerta.Hora = *req.Hora
	}
	if req.FechaVencimiento != nil {
		if _, err := time.Parse("2006-01-02", *req.FechaVencimiento); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "fecha_vencimiento must be a valid date (YYYY-MM-DD)",
			})
		}
		alerta.FechaVencimiento = *req.FechaVencimiento
	}
	if req.Prioridad != nil {
		if !models.IsValidPrioridad(*req.Prioridad) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid prioridad. Must be one of: ALTA, MEDIA, BAJA",
			})
		}
		alerta.Prioridad = *req.Prioridad
	}

	if err := db.DB.Save(&alerta).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update alerta",
		})
	}

	return c.JSON(http.StatusOK, serializeAlerta(&alerta))
}

// ToggleCumplidaHandler flips cumplida. Completing stamps completed_by and
// completed_at together; reopening clears them together.
func ToggleCumplidaHandler(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)
	id := c.Param("id")

	var alerta models.CaseAlerta
	if err := db.DB.Preload("CreatedBy").First(&alerta, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Alerta not found",
		})
	}

	alerta.Cumplida = !alerta.Cumplida
	if alerta.Cumplida {
		now := time.Now()
		alerta.CompletedByID = &currentUser.ID
		alerta.CompletedAt = &now
		alerta.CompletedBy = currentUser
	} else {
		alerta.CompletedByID = nil
		alerta.CompletedAt = nil
		alerta.CompletedBy = nil
	}

	// Save with Select so clearing the completion fields writes NULLs
	if err := db.DB.Model(&alerta).Select("cumplida", "completed_by_id", "completed_at").
		Updates(map[string]interface{}{
			"cumplida":        alerta.Cumplida,
			"completed_by_id": alerta.CompletedByID,
			"completed_at":    alerta.CompletedAt,
		}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update alerta",
		})
	}

	return c.JSON(http.StatusOK, serializeAlerta(&alerta))
}

// DeleteAlertaHandler deletes an alerta
func DeleteAlertaHandler(c echo.Context) error {
	id := c.Param("id")
	var alerta models.CaseAlerta
	if err := db.DB.First(&alerta, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Alerta not found",
		})
	}

	if err := db.DB.Delete(&alerta).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete alerta",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
