package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is a mutable collection of SKU lines for one customer. A customer
// may accumulate several carts; the most recently created one is active.
type Cart struct {
	ID         string     `gorm:"type:varchar(36);primaryKey"`
	CustomerID string     `gorm:"type:varchar(36);not null;index"`
	Items      []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem links one SKU to a cart. One row per distinct SKU.
type CartItem struct {
	ID       string `gorm:"type:varchar(36);primaryKey"`
	CartID   string `gorm:"type:varchar(36);not null;index;uniqueIndex:uni_cart_sku"`
	SkuID    string `gorm:"type:varchar(36);not null;index;uniqueIndex:uni_cart_sku"`
	Quantity int    `gorm:"not null;default:1"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
