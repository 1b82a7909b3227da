package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Menu struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;index;not null" json:"restaurant_id"`

	Title       *string `gorm:"size:255" json:"title"`
	Slug        *string `gorm:"size:100" json:"slug"`
	Position    int     `gorm:"not null;default:0" json:"position"`
	Description *string `gorm:"type:text" json:"description"`

	Sections []Section `json:"sections,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (m *Menu) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type Section struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	MenuID       string `gorm:"type:uuid;index;not null" json:"menu_id"`

	Title       *string `gorm:"size:255" json:"title"`
	Position    int     `gorm:"not null;default:0" json:"position"`
	Description *string `gorm:"type:text" json:"description"`

	Items []MenuItem `json:"items,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (s *Section) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type MenuItem struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;index;not null" json:"restaurant_id"`
	MenuID       string `gorm:"type:uuid;index;not null" json:"menu_id"`
	SectionID    string `gorm:"type:uuid;index;not null" json:"section_id"`

	Title       *string  `gorm:"size:255" json:"title"`
	Price       *float64 `gorm:"type:numeric(10,2)" json:"price"`
	Description *string  `gorm:"type:text" json:"description"`
	Position    int      `gorm:"not null;default:0" json:"position"`

	ImageID *string `gorm:"type:uuid" json:"image_id"`
	Image   *Image  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"image,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (i *MenuItem) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
