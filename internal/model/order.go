package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatuses is the closed set accepted by status updates.
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusPaid:       true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// Order is immutable once created: its items carry price snapshots taken
// at checkout, independent of later catalog edits.
type Order struct {
	ID            string         `gorm:"type:varchar(36);primaryKey"`
	CustomerID    string         `gorm:"type:varchar(36);not null;index"`
	Status        string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	TotalAmount   float64        `gorm:"type:decimal(10,2);not null;default:0"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID"`
	PaymentRecord *PaymentRecord `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is one priced line. UnitPrice and LineTotal are frozen at
// order-creation time.
type OrderItem struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	OrderID   string  `gorm:"type:varchar(36);not null;index"`
	ProductID string  `gorm:"type:varchar(36);not null;index"`
	SkuID     string  `gorm:"type:varchar(36);not null;index"`
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"type:decimal(10,2);not null"`
	LineTotal float64 `gorm:"type:decimal(10,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// PaymentRecord is the one-to-one payment stub attached to an order. The
// unique index on OrderID is what blocks double payment.
type PaymentRecord struct {
	ID            string  `gorm:"type:varchar(36);primaryKey"`
	OrderID       string  `gorm:"type:varchar(36);uniqueIndex;not null"`
	Amount        float64 `gorm:"type:decimal(10,2);not null"`
	Method        string  `gorm:"type:varchar(50);not null"`
	TransactionID string  `gorm:"type:varchar(200);index"`
	Timestamp     time.Time
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
