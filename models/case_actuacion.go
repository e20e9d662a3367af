package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseActuacion is a dated procedural entry within a case
type CaseActuacion struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CasoID string `gorm:"type:uuid;not null;index" json:"caso"`

	Fecha       string `gorm:"not null" json:"fecha"` // YYYY-MM-DD
	Descripcion string `gorm:"type:text;not null" json:"descripcion"`
	Tipo        string `json:"tipo"`

	// Immutable after creation
	CreatedByID string `gorm:"type:uuid;index" json:"created_by"`

	// Relationships
	Caso      *LawCase `gorm:"foreignKey:CasoID" json:"-"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (a *CaseActuacion) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseActuacion model
func (CaseActuacion) TableName() string {
	return "case_actuaciones"
}
