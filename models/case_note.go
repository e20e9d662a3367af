package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseNote is a free-text annotation on a case
type CaseNote struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CasoID string `gorm:"type:uuid;not null;index" json:"caso"`

	Titulo    string `gorm:"not null" json:"titulo"`
	Contenido string `gorm:"type:text" json:"contenido"`
	Etiqueta  string `json:"etiqueta"`

	// Immutable after creation
	CreatedByID string `gorm:"type:uuid;index" json:"created_by"`

	// Relationships
	Caso      *LawCase `gorm:"foreignKey:CasoID" json:"-"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"-"`
}

// BeforeCreate hook to generate UUID
func (n *CaseNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for CaseNote model
func (CaseNote) TableName() string {
	return "case_notes"
}
