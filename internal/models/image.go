package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Image struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID string `gorm:"type:uuid;index;not null" json:"restaurant_id"`

	URL             string  `gorm:"type:text;not null" json:"url"`
	BlurPlaceholder *string `gorm:"type:text" json:"blur_placeholder"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	AccentColor     *string `gorm:"size:16" json:"accent_color"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Image) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
