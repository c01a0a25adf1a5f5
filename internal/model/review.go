package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one rating+comment per (customer, product) pair, enforced by
// the composite unique index.
type Review struct {
	ID         string `gorm:"type:varchar(36);primaryKey"`
	CustomerID string `gorm:"type:varchar(36);not null;index;uniqueIndex:uni_customer_product"`
	ProductID  string `gorm:"type:varchar(36);not null;index;uniqueIndex:uni_customer_product"`
	Rating     int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
