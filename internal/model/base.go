package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard audit trails
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Soft delete support

	// Audit user tracking
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
	DeletedBy string `json:"-"`
}

// BeforeCreate generates the UUID unless the caller already assigned one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Actor is the authenticated identity performing an operation. It is threaded
// explicitly from the transport layer into services.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

// AuditName is the value recorded in CreatedBy/UpdatedBy columns.
func (a Actor) AuditName() string {
	if a.UserID == uuid.Nil {
		return "system"
	}
	return a.UserID.String()
}
