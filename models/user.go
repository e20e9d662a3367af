package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `gorm:"not null;default:false" json:"is_admin"`
	IsStaff  bool   `gorm:"not null;default:false" json:"is_staff"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	// Protected marks system accounts (the seeded admin) that the user
	// management endpoints must never list, edit or delete.
	IsProtected bool `gorm:"not null;default:false" json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
