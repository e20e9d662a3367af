package handlers

import (
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns case counts per status, the five most recently
// updated cases and every alert in the system. The alert list is not
// paginated; this endpoint serves small firm-sized datasets.
func DashboardHandler(c echo.Context) error {
	countByStatus := func(estado string) (int64, error) {
		var count int64
		err := db.DB.Model(&models.LawCase{}).Where("estado = ?", estado).Count(&count).Error
		return count, err
	}

	var total int64
	if err := db.DB.Model(&models.LawCase{}).Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to compute stats",
		})
	}

	stats := map[string]int64{"total_cases": total}
	for estado, key := range map[string]string{
		models.CaseStatusOpen:       "open_cases",
		models.CaseStatusInProgress: "in_progress_cases",
		models.CaseStatusPaused:     "paused_cases",
		models.CaseStatusClosed:     "closed_cases",
	} {
		count, err := countByStatus(estado)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Failed to compute stats",
			})
		}
		stats[key] = count
	}

	var recentCases []models.LawCase
	if err := db.DB.
		Preload("CreatedBy").
		Preload("LastModifiedBy").
		Order("updated_at DESC").
		Limit(5).
		Find(&recentCases).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch recent cases",
		})
	}

	var alertas []models.CaseAlerta
	if err := db.DB.
		Preload("CreatedBy").
		Preload("CompletedBy").
		Find(&alertas).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to fetch alertas",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats":        stats,
		"recent_cases": serializeCaseLists(recentCases),
		"alertas":      serializeAlertas(alertas),
	})
}
