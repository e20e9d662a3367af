package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alert priority constants
const (
	AlertaPrioridadAlta  = "ALTA"
	AlertaPrioridadMedia = "MEDIA"
	AlertaPrioridadBaja  = "BAJA"
)

// CaseAlerta is a deadline/reminder attached to a case
type CaseAlerta struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CasoID string `gorm:"type:uuid;not null;index" json:"caso"`

	Titulo           string `gorm:"not null" json:"titulo"`
	Resumen          string `gorm:"type:text" json:"resumen"`
	Hora             string `json:"hora"`                              // HH:MM, optional
	FechaVencimiento string `gorm:"not null" json:"fecha_vencimiento"` // YYYY-MM-DD
	Cumplida         bool   `gorm:"not null;default:false;index" json:"cumplida"`
	Prioridad        string `gorm:"not null;default:MEDIA" json:"prioridad"`

	CreatedByID string `gorm:"type:uuid;index" json:"created_by"`

	// Set together when Cumplida flips to true, cleared together on false
	CompletedByID *string    `gorm:"type:uuid" json:"completed_by"`
	CompletedAt   *time.Time `json:"completed_at"`

	// Relationships
	Caso        *LawCase `gorm:"foreignKey:CasoID" json:"-"`
	CreatedBy   *User    `gorm:"foreignKey:CreatedByID" json:"-"`
	CompletedBy *User    `gorm:"foreignKey:CompletedByID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (a *CaseAlerta) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseAlerta model
func (CaseAlerta) TableName() string {
	return "case_alertas"
}

// IsValidPrioridad checks if the priority is valid
func IsValidPrioridad(prioridad string) bool {
	return prioridad == AlertaPrioridadAlta ||
		prioridad == AlertaPrioridadMedia ||
		prioridad == AlertaPrioridadBaja
}
