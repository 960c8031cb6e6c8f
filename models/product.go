package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Image       string    `json:"image"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	Reviews     int       `gorm:"default:0" json:"reviews"`
	Badge       string    `json:"badge,omitempty"` // display-only merchandising tag, e.g. "Sale", "New"
	Stock       int       `gorm:"default:0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`

	// Filled by joins, never written.
	CategoryName string `gorm:"->;-:migration" json:"category_name,omitempty"`
}
