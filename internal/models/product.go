package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item.
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Name             string         `gorm:"type:varchar(200);not null;index" json:"name"`
	Category         string         `gorm:"type:varchar(50);not null;index" json:"category"`
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	DiscountPrice    *Money         `gorm:"type:decimal(20,2)" json:"discount_price,omitempty"` // nil when not on sale; must be below Price when set
	Stock            int            `gorm:"not null;default:0" json:"stock"`
	Description      string         `gorm:"type:text" json:"description"`
	Colors           StringArray    `gorm:"type:json" json:"colors"`
	BunchesAvailable IntArray       `gorm:"type:json" json:"bunches_available"`
	AdditionalInfo   JSON           `gorm:"type:json" json:"additional_info"`
	ImageURL         string         `gorm:"type:varchar(500)" json:"image_url"`
	Rating           float64        `gorm:"not null;default:0" json:"rating"`
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the discount price when set, otherwise the list price.
func (p Product) EffectivePrice() Money {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
