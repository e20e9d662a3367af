package handlers

import (
	"expedientes_app_go/db"
	"expedientes_app_go/middleware"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type caseRequest struct {
	Caratula           *string `json:"caratula"`
	NroExpediente      *string `json:"nro_expediente"`
	Juzgado            *string `json:"juzgado"`
	Fuero              *string `json:"fuero"`
	Estado             *string `json:"estado"`
	AbogadoResponsable *string `json:"abogado_responsable"`
	ClienteNombre      *string `json:"cliente_nombre"`
	ClienteDNI         *string `json:"cliente_dni"`
	Contraparte        *string `json:"contraparte"`
	FechaInicio        *string `json:"fecha_inicio"`
}

// caseFilterQuery applies the list filters shared by the list and export
// endpoints: free-text search across carátula, client, expediente number and
// internal code, plus exact estado match.
func caseFilterQuery(c echo.Context) *gorm.DB {
	query := db.DB.Model(&models.LawCase{})

	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			db.DB.Where("caratula LIKE ?", like).
				Or("cliente_nombre LIKE ?", like).
				Or("nro_expediente LIKE ?", like).
				Or("codigo_interno LIKE ?", like),
		)
	}

	if estado := c.QueryParam("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	return query
}

// GetCasesHandler returns the case list (reduced projection) with filters
func GetCasesHandler(c echo.Context) error {
	var cases []models.LawCase
	if err := caseFilterQuery(c).
		Preload("CreatedBy").
		Preload("LastModifiedBy").
		Find(&cases).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	return c.JSON(http.StatusOK, serializeCaseLists(cases))
}

// GetCaseHandler returns the full case projection with nested children
func GetCaseHandler(c echo.Context) error {
	id := c.Param("id")

	var lawCase models.LawCase
	if err := db.DB.
		Preload("CreatedBy").
		Preload("LastModifiedBy").
		Preload("Actuaciones.CreatedBy").
		Preload("Alertas.CreatedBy").
		Preload("Alertas.CompletedBy").
		Preload("Notas.CreatedBy").
		First(&lawCase, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}

	return c.JSON(http.StatusOK, serializeCaseDetail(&lawCase))
}

// CreateCaseHandler creates a case with a server-assigned internal code
func CreateCaseHandler(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)

	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Caratula == nil || strings.TrimSpace(*req.Caratula) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Caratula is required",
		})
	}

	estado := models.CaseStatusOpen
	if req.Estado != nil && *req.Estado != "" {
		if !models.IsValidCaseStatus(*req.Estado) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid estado. Must be one of: OPEN, IN_PROGRESS, PAUSED, CLOSED",
			})
		}
		estado = *req.Estado
	}

	if req.FechaInicio != nil && *req.FechaInicio != "" {
		if _, err := time.Parse("2006-01-02", *req.FechaInicio); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "fecha_inicio must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	lawCase := &models.LawCase{
		Caratula:           services.SanitizeText(*req.Caratula),
		NroExpediente:      strValue(req.NroExpediente),
		Juzgado:            strValue(req.Juzgado),
		Fuero:              strValue(req.Fuero),
		Estado:             estado,
		AbogadoResponsable: strValue(req.AbogadoResponsable),
		ClienteNombre:      strValue(req.ClienteNombre),
		ClienteDNI:         strValue(req.ClienteDNI),
		Contraparte:        services.SanitizeText(strValue(req.Contraparte)),
		FechaInicio:        strValue(req.FechaInicio),
		CreatedByID:        currentUser.ID,
		LastModifiedByID:   currentUser.ID,
	}

	// The unique index on codigo_interno is the backstop against two
	// concurrent creates deriving the same sequence; regenerate and retry on
	// constraint violation.
	const maxCreateRetries = 3
	var createErr error
	for i := 0; i < maxCreateRetries; i++ {
		code, err := services.EnsureUniqueCaseCode(db.DB)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to generate case code",
			})
		}
		lawCase.CodigoInterno = code

		createErr = db.DB.Create(lawCase).Error
		if createErr == nil {
			break
		}
		if !isCodeCollision(createErr) {
			break
		}
	}
	if createErr != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create case",
		})
	}

	lawCase.CreatedBy = currentUser
	lawCase.LastModifiedBy = currentUser
	return c.JSON(http.StatusCreated, serializeCaseDetail(lawCase))
}

// UpdateCaseHandler updates a case. codigo_interno, created_at and created_by
// are immutable; last_modified_by is always overwritten to the acting user.
func UpdateCaseHandler(c echo.Context) error {
	currentUser := middleware.GetCurrentUser(c)
	id := c.Param("id")

	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}

	var req caseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Estado != nil {
		if !models.IsValidCaseStatus(*req.Estado) {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Invalid estado. Must be one of: OPEN, IN_PROGRESS, PAUSED, CLOSED",
			})
		}
		lawCase.Estado = *req.Estado
	}
	if req.FechaInicio != nil {
		if *req.FechaInicio != "" {
			if _, err := time.Parse("2006-01-02", *req.FechaInicio); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{
					"error": "fecha_inicio must be a valid date (YYYY-MM-DD)",
				})
			}
		}
		lawCase.FechaInicio = *req.FechaInicio
	}
	if req.Caratula != nil {
		caratula := services.SanitizeText(*req.Caratula)
		if caratula == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Caratula cannot be empty",
			})
		}
		lawCase.Caratula = caratula
	}
	if req.NroExpediente != nil {
		lawCase.NroExpediente = *req.NroExpediente
	}
	if req.Juzgado != nil {
		lawCase.Juzgado = *req.Juzgado
	}
	if req.Fuero != nil {
		lawCase.Fuero = *req.Fuero
	}
	if req.AbogadoResponsable != nil {
		lawCase.AbogadoResponsable = *req.AbogadoResponsable
	}
	if req.ClienteNombre != nil {
		lawCase.ClienteNombre = *req.ClienteNombre
	}
	if req.ClienteDNI != nil {
		lawCase.ClienteDNI = *req.ClienteDNI
	}
	if req.Contraparte != nil {
		lawCase.Contraparte = services.SanitizeText(*req.Contraparte)
	}

	lawCase.LastModifiedByID = currentUser.ID

	if err := db.DB.Save(&lawCase).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to update case",
		})
	}

	// Reload with relations for the response
	db.DB.Preload("CreatedBy").Preload("LastModifiedBy").
		Preload("Actuaciones.CreatedBy").
		Preload("Alertas.CreatedBy").Preload("Alertas.CompletedBy").
		Preload("Notas.CreatedBy").
		First(&lawCase, "id = ?", lawCase.ID)

	return c.JSON(http.StatusOK, serializeCaseDetail(&lawCase))
}

// DeleteCaseHandler deletes a case and its dependent records in one
// transaction so no orphaned children remain.
func DeleteCaseHandler(c echo.Context) error {
	id := c.Param("id")

	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("caso_id = ?", lawCase.ID).Delete(&models.CaseActuacion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("caso_id = ?", lawCase.ID).Delete(&models.CaseAlerta{}).Error; err != nil {
			return err
		}
		if err := tx.Where("caso_id = ?", lawCase.ID).Delete(&models.CaseNote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lawCase).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to delete case",
		})
	}

	return c.NoContent(http.StatusNoContent)
}

// AddActuacionHandler creates an actuacion pre-bound to the case
func AddActuacionHandler(c echo.Context) error {
	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return createActuacion(c, lawCase.ID)
}

// AddAlertaHandler creates an alerta pre-bound to the case
func AddAlertaHandler(c echo.Context) error {
	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return createAlerta(c, lawCase.ID)
}

// AddNotaHandler creates a nota pre-bound to the case
func AddNotaHandler(c echo.Context) error {
	var lawCase models.LawCase
	if err := db.DB.First(&lawCase, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Case not found",
		})
	}
	return createNota(c, lawCase.ID)
}

// ExportCasesHandler streams the filtered case list as an Excel workbook
func ExportCasesHandler(c echo.Context) error {
	var cases []models.LawCase
	if err := caseFilterQuery(c).Find(&cases).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch cases",
		})
	}

	buf, err := services.ExportCasesToExcel(cases)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to build export",
		})
	}

	filename := fmt.Sprintf("expedientes_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isCodeCollision reports whether err is the unique-index violation on
// codigo_interno. Only that violation is worth retrying with a fresh
// sequence; any other constraint failure is a real error.
func isCodeCollision(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: law_cases.codigo_interno")
}
