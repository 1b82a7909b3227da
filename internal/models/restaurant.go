package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant is the tenant root. Subdomain and CustomDomain are unique among
// non-deleted rows (partial indexes created in db.NewDB).
type Restaurant struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	Name    *string `gorm:"size:255" json:"name"`
	Address JSONB   `json:"address"`
	Phones  JSONB   `json:"phones"`
	Emails  JSONB   `json:"emails"`
	Hours   JSONB   `json:"hours"`

	CoverImageID *string `gorm:"type:uuid" json:"cover_image_id"`
	CoverImage   *Image  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"cover_image,omitempty"`

	Subdomain    *string `gorm:"size:63" json:"subdomain"`
	CustomDomain *string `gorm:"size:255" json:"custom_domain"`

	Menus []Menu `json:"menus,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (r *Restaurant) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
