package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User is the shared identity row for customers, vendors and admins,
// discriminated by Role. Vendor-only fields live in VendorProfile so
// non-vendor rows carry no dead columns.
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;index"`
	Approved     bool   `gorm:"not null;default:true"`
	Suspended    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the password. The clear text is never kept.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifies a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// VendorProfile holds the vendor-specific attributes, joined to users by id.
type VendorProfile struct {
	UserID       string `gorm:"type:varchar(36);primaryKey"`
	BusinessName string `gorm:"type:varchar(200)"`
	TaxID        string `gorm:"type:varchar(50)"`
}

func (VendorProfile) TableName() string {
	return "vendor_profiles"
}

// Address is a customer shipping address. Orders do not snapshot it, so
// deleting an address never touches order history.
type Address struct {
	ID      string `gorm:"type:varchar(36);primaryKey"`
	UserID  string `gorm:"type:varchar(36);not null;index"`
	Name    string `gorm:"type:varchar(100);not null"`
	Line1   string `gorm:"type:varchar(200);not null"`
	Line2   string `gorm:"type:varchar(200)"`
	City    string `gorm:"type:varchar(100);not null"`
	State   string `gorm:"type:varchar(100);not null"`
	Zip     string `gorm:"type:varchar(20);not null"`
	Country string `gorm:"type:varchar(100);not null"`
}

func (Address) TableName() string {
	return "addresses"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
