package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case status constants
const (
	CaseStatusOpen       = "OPEN"
	CaseStatusInProgress = "IN_PROGRESS"
	CaseStatusPaused     = "PAUSED"
	CaseStatusClosed     = "CLOSED"
)

// LawCase represents a legal case file (expediente)
type LawCase struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Case identification
	CodigoInterno string `gorm:"not null;uniqueIndex" json:"codigo_interno"` // Immutable once assigned
	Caratula      string `gorm:"not null" json:"caratula"`
	NroExpediente string `json:"nro_expediente"`
	Juzgado       string `json:"juzgado"`
	Fuero         string `json:"fuero"`

	// Status and parties
	Estado             string `gorm:"not null;default:OPEN;index" json:"estado"`
	AbogadoResponsable string `json:"abogado_responsable"`
	ClienteNombre      string `json:"cliente_nombre"`
	ClienteDNI         string `gorm:"column:cliente_dni" json:"cliente_dni"`
	Contraparte        string `json:"contraparte"`
	FechaInicio        string `json:"fecha_inicio"` // YYYY-MM-DD

	// Audit
	CreatedByID      string `gorm:"type:uuid;index" json:"created_by"`
	LastModifiedByID string `gorm:"type:uuid" json:"last_modified_by"`

	// Relationships
	CreatedBy      *User           `gorm:"foreignKey:CreatedByID" json:"-"`
	LastModifiedBy *User           `gorm:"foreignKey:LastModifiedByID" json:"-"`
	Actuaciones    []CaseActuacion `gorm:"foreignKey:CasoID" json:"-"`
	Alertas        []CaseAlerta    `gorm:"foreignKey:CasoID" json:"-"`
	Notas          []CaseNote      `gorm:"foreignKey:CasoID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (lc *LawCase) BeforeCreate(tx *gorm.DB) error {
	if lc.ID == "" {
		lc.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LawCase model
func (LawCase) TableName() string {
	return "law_cases"
}

// IsOpen checks if the case is open
func (lc *LawCase) IsOpen() bool {
	return lc.Estado == CaseStatusOpen
}

// IsClosed checks if the case is closed
func (lc *LawCase) IsClosed() bool {
	return lc.Estado == CaseStatusClosed
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(estado string) bool {
	validStatuses := []string{
		CaseStatusOpen,
		CaseStatusInProgress,
		CaseStatusPaused,
		CaseStatusClosed,
	}
	for _, s := range validStatuses {
		if s == estado {
			return true
		}
	}
	return false
}
