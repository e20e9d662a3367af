package handlers

import (
	"expedientes_app_go/models"
	"time"
)

// Response shapes for the JSON API. List endpoints use the reduced case
// projection; detail endpoints include the nested child collections.

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

type ActuacionResponse struct {
	ID                string    `json:"id"`
	Caso              string    `json:"caso"`
	Fecha             string    `json:"fecha"`
	Descripcion       string    `json:"descripcion"`
	Tipo              string    `json:"tipo"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	CreatedByUsername string    `json:"created_by_username"`
}

type AlertaResponse struct {
	ID                  string     `json:"id"`
	Caso                string     `json:"caso"`
	Titulo              string     `json:"titulo"`
	Resumen             string     `json:"resumen"`
	Hora                string     `json:"hora"`
	FechaVencimiento    string     `json:"fecha_vencimiento"`
	Cumplida            bool       `json:"cumplida"`
	Prioridad           string     `json:"prioridad"`
	CreatedAt           time.Time  `json:"created_at"`
	CreatedBy           string     `json:"created_by"`
	CreatedByUsername   string     `json:"created_by_username"`
	CompletedBy         *string    `json:"completed_by"`
	CompletedByUsername string     `json:"completed_by_username,omitempty"`
	CompletedAt         *time.Time `json:"completed_at"`
}

type NotaResponse struct {
	ID                string    `json:"id"`
	Caso              string    `json:"caso"`
	Titulo            string    `json:"titulo"`
	Contenido         string    `json:"contenido"`
	Etiqueta          string    `json:"etiqueta"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	CreatedByUsername string    `json:"created_by_username"`
}

type CaseListResponse struct {
	ID                     string    `json:"id"`
	CodigoInterno          string    `json:"codigo_interno"`
	Caratula               string    `json:"caratula"`
	NroExpediente          string    `json:"nro_expediente"`
	Juzgado                string    `json:"juzgado"`
	Fuero                  string    `json:"fuero"`
	Estado                 string    `json:"estado"`
	ClienteNombre          string    `json:"cliente_nombre"`
	AbogadoResponsable     string    `json:"abogado_responsable"`
	FechaInicio            string    `json:"fecha_inicio"`
	UpdatedAt              time.Time `json:"updated_at"`
	CreatedByUsername      string    `json:"created_by_username"`
	LastModifiedByUsername string    `json:"last_modified_by_username"`
}

type CaseDetailResponse struct {
	ID                     string              `json:"id"`
	CodigoInterno          string              `json:"codigo_interno"`
	Caratula               string              `json:"caratula"`
	NroExpediente          string              `json:"nro_expediente"`
	Juzgado                string              `json:"juzgado"`
	Fuero                  string              `json:"fuero"`
	Estado                 string              `json:"estado"`
	AbogadoResponsable     string              `json:"abogado_responsable"`
	ClienteNombre          string              `json:"cliente_nombre"`
	ClienteDNI             string              `json:"cliente_dni"`
	Contraparte            string              `json:"contraparte"`
	FechaInicio            string              `json:"fecha_inicio"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
	CreatedBy              string              `json:"created_by"`
	LastModifiedBy         string              `json:"last_modified_by"`
	CreatedByUsername      string              `json:"created_by_username"`
	LastModifiedByUsername string              `json:"last_modified_by_username"`
	Actuaciones            []ActuacionResponse `json:"actuaciones"`
	Alertas                []AlertaResponse    `json:"alertas"`
	Notas                  []NotaResponse      `json:"notas"`
}

func serializeUser(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		IsStaff:  u.IsStaff,
	}
}

func serializeUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, serializeUser(&users[i]))
	}
	return out
}

func username(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}

func serializeActuacion(a *models.CaseActuacion) ActuacionResponse {
	return ActuacionResponse{
		ID:                a.ID,
		Caso:              a.CasoID,
		Fecha:             a.Fecha,
		Descripcion:       a.Descripcion,
		Tipo:              a.Tipo,
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedByID,
		CreatedByUsername: username(a.CreatedBy),
	}
}

func serializeActuaciones(items []models.CaseActuacion) []ActuacionResponse {
	out := make([]ActuacionResponse, 0, len(items))
	for i := range items {
		out = append(out, serializeActuacion(&items[i]))
	}
	return out
}

func serializeAlerta(a *models.CaseAlerta) AlertaResponse {
	return AlertaResponse{
		ID:                  a.ID,
		Caso:                a.CasoID,
		Titulo:              a.Titulo,
		Resumen:             a.Resumen,
		Hora:                a.Hora,
		FechaVencimiento:    a.FechaVencimiento,
		Cumplida:            a.Cumplida,
		Prioridad:           a.Prioridad,
		CreatedAt:           a.CreatedAt,
		CreatedBy:           a.CreatedByID,
		CreatedByUsername:   username(a.CreatedBy),
		CompletedBy:         a.CompletedByID,
		CompletedByUsername: username(a.CompletedBy),
		CompletedAt:         a.CompletedAt,
	}
}

func serializeAlertas(items []models.CaseAlerta) []AlertaResponse {
	out := make([]AlertaResponse, 0, len(items))
	for i := range items {
		out = append(out, serializeAlerta(&items[i]))
	}
	return out
}

func serializeNota(n *models.CaseNote) NotaResponse {
	return NotaResponse{
		ID:                n.ID,
		Caso:              n.CasoID,
		Titulo:            n.Titulo,
		Contenido:         n.Contenido,
		Etiqueta:          n.Etiqueta,
		CreatedAt:         n.CreatedAt,
		CreatedBy:         n.CreatedByID,
		CreatedByUsername: username(n.CreatedBy),
	}
}

func serializeNotas(items []models.CaseNote) []NotaResponse {
	out := make([]NotaResponse, 0, len(items))
	for i := range items {
		out = append(out, serializeNota(&items[i]))
	}
	return out
}

func serializeCaseList(lc *models.LawCase) CaseListResponse {
	return CaseListResponse{
		ID:                     lc.ID,
		CodigoInterno:          lc.CodigoInterno,
		Caratula:               lc.Caratula,
		NroExpediente:          lc.NroExpediente,
		Juzgado:                lc.Juzgado,
		Fuero:                  lc.Fuero,
		Estado:                 lc.Estado,
		ClienteNombre:          lc.ClienteNombre,
		AbogadoResponsable:     lc.AbogadoResponsable,
		FechaInicio:            lc.FechaInicio,
		UpdatedAt:              lc.UpdatedAt,
		CreatedByUsername:      username(lc.CreatedBy),
		LastModifiedByUsername: username(lc.LastModifiedBy),
	}
}

func serializeCaseLists(cases []models.LawCase) []CaseListResponse {
	out := make([]CaseListResponse, 0, len(cases))
	for i := range cases {
		out = append(out, serializeCaseList(&cases[i]))
	}
	return out
}

func serializeCaseDetail(lc *models.LawCase) CaseDetailResponse {
	return CaseDetailResponse{
		ID:                     lc.ID,
		CodigoInterno:          lc.CodigoInterno,
		Caratula:               lc.Caratula,
		NroExpediente:          lc.NroExpediente,
		Juzgado:                lc.Juzgado,
		Fuero:                  lc.Fuero,
		Estado:                 lc.Estado,
		AbogadoResponsable:     lc.AbogadoResponsable,
		ClienteNombre:          lc.ClienteNombre,
		ClienteDNI:             lc.ClienteDNI,
		Contraparte:            lc.Contraparte,
		FechaInicio:            lc.FechaInicio,
		CreatedAt:              lc.CreatedAt,
		UpdatedAt:              lc.UpdatedAt,
		CreatedBy:              lc.CreatedByID,
		LastModifiedBy:         lc.LastModifiedByID,
		CreatedByUsername:      username(lc.CreatedBy),
		LastModifiedByUsername: username(lc.LastModifiedBy),
		Actuaciones:            serializeActuaciones(lc.Actuaciones),
		Alertas:                serializeAlertas(lc.Alertas),
		Notas:                  serializeNotas(lc.Notas),
	}
}
