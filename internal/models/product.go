package models

import "time"

// MediaItem wraps a single image reference (a data URL or a blob URL).
type MediaItem struct {
	Image string `json:"image"`
}

// Product represents a product in the catalog.
type Product struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string      `json:"name" gorm:"type:varchar(255)"`
	Price       *float64    `json:"price,omitempty"`
	Description string      `json:"description,omitempty"`
	CategoryID  string      `json:"category_id,omitempty" gorm:"index;type:varchar(36)"`
	MainMedia   *MediaItem  `json:"main_media,omitempty" gorm:"serializer:json"`
	MediaItems  []MediaItem `json:"media_items,omitempty" gorm:"serializer:json"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
	UpdatedAt   time.Time   `json:"updated_at,omitzero"`
}

// Category groups products. Categories are read-only from the admin surface.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name,omitempty" gorm:"type:varchar(100)"`
	DisplayName string    `json:"display_name,omitempty" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Label returns the most human friendly name available for the category.
func (c Category) Label() string {
	switch {
	case c.DisplayName != "":
		return c.DisplayName
	case c.Name != "":
		return c.Name
	default:
		return c.ID
	}
}
