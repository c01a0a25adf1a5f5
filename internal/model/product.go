package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item owned by exactly one vendor.
type Product struct {
	ID          string  `gorm:"type:varchar(36);primaryKey"`
	VendorID    string  `gorm:"type:varchar(36);not null;index"`
	Name        string  `gorm:"type:varchar(200);not null"`
	Description string  `gorm:"type:text"`
	Category    string  `gorm:"type:varchar(100);not null;index"`
	BasePrice   float64 `gorm:"type:decimal(10,2);not null"`
	ImageURL    string  `gorm:"type:varchar(500)"`
	Available   bool    `gorm:"not null;default:true"`
	Skus        []Sku   `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FinalPrice is the effective unit price for a variant of this product.
func (p *Product) FinalPrice(sku *Sku) float64 {
	if sku != nil {
		return p.BasePrice + sku.PriceAdjustment
	}
	return p.BasePrice
}

// Sku is a size/color variant with its own inventory count.
type Sku struct {
	ID              string  `gorm:"type:varchar(36);primaryKey"`
	ProductID       string  `gorm:"type:varchar(36);not null;index"`
	Size            string  `gorm:"type:varchar(20);not null"`
	Color           string  `gorm:"type:varchar(50);not null"`
	Inventory       int     `gorm:"not null;default:0"`
	PriceAdjustment float64 `gorm:"type:decimal(10,2);default:0"`
}

func (Sku) TableName() string {
	return "skus"
}

func (s *Sku) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsAvailable reports whether the variant can be purchased: stock on hand
// and the parent product still listed.
func (s *Sku) IsAvailable(product *Product) bool {
	return s.Inventory > 0 && product != nil && product.Available
}
