package handlers

import (
	"encoding/json"
	"expedientes_app_go/models"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateActuacionHandler(t *testing.T) {
	database := setupTestDB(t)
	admin := createTestUser(t, database, "admin", true)
	lawCase := createTestCase(t, database, "ENT-0001-2024-JLCA", "Pérez c/ Gómez", admin)

	t.Run("Success", func(t *testing.T) {
		body := `{"caso":"` + lawCase.ID + `","fecha":"2024-03-01","descripcion":"Se presentó la demanda","tipo":"ESCRITO"}`
		_, c, rec := setupEcho(http.MethodPost, "/actuaciones/", strings.NewReader(body))
		c.Set("user", admin)

		err := CreateActuacionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ActuacionResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, lawCase.ID, resp.Caso)
		assert.Equal(t, "2024-03-01", resp.Fecha)
		assert.Equal(t, admin.ID, resp.CreatedBy)
	})

	t.Run("Missing caso", func(t *testing.T) {
		body := `{"fecha":"2024-03-01","descripcion":"x"}`
		_, c, rec := setupEcho(http.MethodPost, "/actuaciones/", strings.NewReader(body))
		c.Set("user", admin)

		err := CreateActuacionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid fecha", func(t *testing.T) {
		body := `{"caso":"` + lawCase.ID + `","fecha":"01/03/2024","descripcion":"x"}`
		_, c, rec := setupEcho(http.MethodPost, "/actuaciones/", strings.NewReader(body))
		c.Set("user", admin)

		err := CreateActuacionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing descripcion", func(t *testing.T) {
		body := `{"caso":"` + lawCase.ID + `","fecha":"2024-03-01"}`
		_, c, rec := setupEcho(http.MethodPost, "/actuaciones/", strings.NewReader(body))
		c.Set("user", admin)

		err := CreateActuacionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetActuacionesHandlerCasoFilter(t *testing.T) {
	database := setupTestDB(t)
	admin := createTestUser(t, database, "admin", true)
	case1 := createTestCase(t, database, "ENT-0001-2024-JLCA", "Pérez c/ Gómez", admin)
	case2 := createTestCase(t, database, "ENT-0002-2024-JLCA", "Rodríguez s/ sucesión", admin)

	assert.NoError(t, database.Create(&models.CaseActuacion{CasoID: case1.ID, Fecha: "2024-03-01", Descripcion: "Demanda", CreatedByID: admin.ID}).Error)
	assert.NoError(t, database.Create(&models.CaseActuacion{CasoID: case2.ID, Fecha: "2024-03-02", Descripcion: "Cédula", CreatedByID: admin.ID}).Error)

	_, c, rec := setupEcho(http.MethodGet, "/actuaciones/?caso="+case1.ID, nil)
	c.Set("user", admin)

	err := GetActuacionesHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []ActuacionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, case1.ID, resp[0].Caso)
}

func TestUpdateActuacionHandler(t *testing.T) {
	database := setupTestDB(t)
	admin := createTestUser(t, database, "admin", true)
	other := createTestUser(t, database, "otro", true)
	lawCase := createTestCase(t, database, "ENT-0001-2024-JLCA", "Pérez c/ Gómez", admin)

	actuacion := &models.CaseActuacion{CasoID: lawCase.ID, Fecha: "2024-03-01", Descripcion: "Demanda", CreatedByID: admin.ID}
	assert.NoError(t, database.Create(actuacion).Error)

	body := `{"descripcion":"Demanda ampliada","tipo":"ESCRITO"}`
	_, c, rec := setupEcho(http.MethodPatch, "/actuaciones/"+actuacion.ID+"/", strings.NewReader(body))
	c.SetParamNames("id")
	c.SetParamValues(actuacion.ID)
	c.Set("user", other)

	err := UpdateActuacionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stored models.CaseActuacion
	assert.NoError(t, database.First(&stored, "id = ?", actuacion.ID).Error)
	assert.Equal(t, "Demanda ampliada", stored.Descripcion)
	// Authorship never changes on update
	assert.Equal(t, admin.ID, stored.CreatedByID)
}

func TestDeleteActuacionHandler(t *testing.T) {
	database := setupTestDB(t)
	admin := createTestUser(t, database, "admin", true)
	lawCase := createTestCase(t, database, "ENT-0001-2024-JLCA", "Pérez c/ Gómez", admin)

	actuacion := &models.CaseActuacion{CasoID: lawCase.ID, Fecha: "2024-03-01", Descripcion: "Demanda", CreatedByID: admin.ID}
	assert.NoError(t, database.Create(actuacion).Error)

	_, c, rec := setupEcho(http.MethodDelete, "/actuaciones/"+actuacion.ID+"/", nil)
	c.SetParamNames("id")
	c.SetParamValues(actuacion.ID)
	c.Set("user", admin)

	err := DeleteActuacionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	t.Run("Deleting again returns 404", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodDelete, "/actuaciones/"+actuacion.ID+"/", nil)
		c.SetParamNames("id")
		c.SetParamValues(actuacion.ID)
		c.Set("user", admin)

		err := DeleteActuacionHandler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
