package handlers

import (
	"expedientes_app_go/db"
	"expedientes_app_go/middleware"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type notaRequest struct {
	Caso      string  `json:"caso"`
	Titulo    *string `json:"titulo"`
	Contenido *string `json:"contenido"`
	Etiqueta  *string `json:"etiqueta"`
}

// GetNotasHandler lists notas, optionally filtered by caso
func GetNotasHandler(c echo.Context) error {
	query := db.DB.Preload("CreatedBy")

	if casoID := c.QueryParam("caso"); casoID != "" {
		query = query.Where("caso_id = ?", casoID)
	}

	var notas []models.CaseNote
	if err := query.Find(&notas).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch notas",
		})
	}

	return c.JSON(http.StatusOK, serializeNotas(notas))
}

// GetNotaHandler returns a single nota
func GetNotaHandler(c echo.Context) error {
	id := c.Param("id")
	var nota models.CaseNote
	if err := db.DB.Preload("CreatedBy").First(&nota, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Nota not found",
		})
	}
	return c.JSON(http.StatusOK, serializeNota(&nota))
}

// CreateNotaHandler creates a nota on the case named in the body
func CreateNotaHandler(c echo.Context) error {
	var req notaRequest
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

	return createNotaFromRequest(c, &req, lawCase.ID)
}

// createNota binds and creates a nota bound to the given case.
// Used by the case add_note action, where the case comes from the route.
func createNota(c echo.Context, casoID string) error {
	var req notaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	return createNotaFromRequest(c, &req, casoID)
}

func createNotaFromRequest(c echo.Context, req *notaRequest, casoID string) error {
	currentUser := middleware.GetCurrentUser(c)

	if req.Titulo == nil || strings.TrimSpace(*req.Titulo) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Titulo is required",
		})
	}

	nota := &models.CaseNote{
		CasoID:      casoID,
		Titulo:      services.SanitizeText(*req.Titulo),
		Contenido:   services.SanitizeText(strValue(req.Contenido)),
		Etiqueta:    strValue(req.Etiqueta),
		CreatedByID: currentUser.ID,
	}

	if err := db.DB.Create(nota).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create nota",
		})
	}

	nota.CreatedBy = currentUser
	return c.JSON(http.StatusCreated, serializeNota(nota))
}

// UpdateNotaHandler updates a nota. created_by is immutable.
func UpdateNotaHandler(c echo.Context) error {
	id := c.Param("id")
	var nota models.CaseNote
	if err := db.DB.Preload("CreatedBy").First(&nota, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Nota not found",
		})
	}

	var req notaRequest
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
		nota.Titulo = titulo
	}
	if req.Contenido != nil {
		nota.Contenido = services.SanitizeText(*req.Contenido)
	}
	if req.Etiqueta != nil {
		nota.Etiqueta = *req.Etiqueta
	}

	if err := db.DB.Save(&nota).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update nota",
		})
	}

	return c.JSON(http.StatusOK, serializeNota(&nota))
}

// DeleteNotaHandler deletes a nota
func DeleteNotaHandler(c echo.Context) error {
	id := c.Param("id")
	var nota models.CaseNote
	if err := db.DB.First(&nota, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Nota not found",
		})
	}

	if err := db.DB.Delete(&nota).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete nota",
		})
	}

	return c.NoContent(http.StatusNoContent)
}
