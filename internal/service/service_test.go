package service

import (
	"testing"

	"clothing-mall/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.VendorProfile{}, &model.Address{},
		&model.Product{}, &model.Sku{},
		&model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.PaymentRecord{},
		&model.Review{},
	))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user, err := NewAuthService(db).RegisterCustomer("Test Customer", email, "secret-password")
	require.NoError(t, err)
	return user
}

func createApprovedVendor(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	vendor, err := NewAuthService(db).RegisterVendor("Test Vendor", email, "secret-password", "Acme Threads", "TAX-1")
	require.NoError(t, err)
	vendor, err = NewAdminService(db).ApproveVendor(vendor.ID)
	require.NoError(t, err)
	return vendor
}

// createProductWithSku seeds one available product with a single variant.
func createProductWithSku(t *testing.T, db *gorm.DB, vendorID string, basePrice, adjustment float64, inventory int) (*model.Product, *model.Sku) {
	t.Helper()
	catalog := NewCatalogService(db)
	product, err := catalog.CreateProduct(vendorID, "Denim Jacket", "classic fit", "jackets", basePrice, true, "")
	require.NoError(t, err)
	sku, err := catalog.AddSku(product.ID, "M", "blue", inventory, adjustment)
	require.NoError(t, err)
	return product, sku
}
