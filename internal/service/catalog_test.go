package service

import (
	"testing"

	"clothing-mall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndUpdateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	vendor := createApprovedVendor(t, db, "bob@example.com")

	product, err := svc.CreateProduct(vendor.ID, "Wool Coat", "winter weight", "coats", 120.0, true, "")
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)

	newName := "Wool Overcoat"
	newPrice := 130.0
	updated, err := svc.UpdateProduct(product.ID, ProductUpdate{Name: &newName, BasePrice: &newPrice})
	require.NoError(t, err)

	loaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wool Overcoat", loaded.Name)
	assert.InDelta(t, 130.0, loaded.BasePrice, 1e-9)
	assert.Equal(t, updated.ID, loaded.ID)

	_, err = svc.UpdateProduct("no-such-product", ProductUpdate{Name: &newName})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEffectivePrice(t *testing.T) {
	db := newTestDB(t)
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, sku := createProductWithSku(t, db, vendor.ID, 100.0, -7.5, 3)

	assert.InDelta(t, 92.5, product.FinalPrice(sku), 1e-9)
}

func TestSkuLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, sku := createProductWithSku(t, db, vendor.ID, 100.0, 0, 3)

	_, err := svc.AddSku("no-such-product", "L", "red", 1, 0)
	assert.ErrorIs(t, err, ErrNotFound)

	newInventory := 8
	updated, err := svc.UpdateSku(sku.ID, SkuUpdate{Inventory: &newInventory})
	require.NoError(t, err)
	got, err := svc.GetSku(updated.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Inventory)

	require.NoError(t, svc.DeleteSku(sku.ID))
	assert.ErrorIs(t, svc.DeleteSku(sku.ID), ErrNotFound)

	loaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Skus)
}

func TestListAvailableWithStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	vendor := createApprovedVendor(t, db, "bob@example.com")

	inStock, _ := createProductWithSku(t, db, vendor.ID, 50.0, 0, 5)
	createProductWithSku(t, db, vendor.ID, 50.0, 0, 0) // sold out
	hidden, hiddenSku := createProductWithSku(t, db, vendor.ID, 50.0, 0, 5)
	unavailable := false
	_, err := svc.UpdateProduct(hidden.ID, ProductUpdate{Available: &unavailable})
	require.NoError(t, err)
	_ = hiddenSku

	products, err := svc.ListAvailableWithStock()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, inStock.ID, products[0].ID)
}

func TestListByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	vendor := createApprovedVendor(t, db, "bob@example.com")

	_, err := svc.CreateProduct(vendor.ID, "Wool Coat", "", "coats", 120.0, true, "")
	require.NoError(t, err)
	hidden, err := svc.CreateProduct(vendor.ID, "Old Coat", "", "coats", 80.0, false, "")
	require.NoError(t, err)
	_, err = svc.CreateProduct(vendor.ID, "Silk Scarf", "", "accessories", 25.0, true, "")
	require.NoError(t, err)

	coats, err := svc.ListByCategory("coats", true)
	require.NoError(t, err)
	assert.Len(t, coats, 1)

	allCoats, err := svc.ListByCategory("coats", false)
	require.NoError(t, err)
	assert.Len(t, allCoats, 2)

	mine, err := svc.ListVendorProducts(vendor.ID, false)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
	_ = hidden
}

func TestDeleteProductCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	carts := NewCartService(db)
	reviews := NewReviewService(db)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, sku := createProductWithSku(t, db, vendor.ID, 50.0, 0, 5)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 1)
	require.NoError(t, err)
	_, err = reviews.AddReview(customer.ID, product.ID, 5, "great")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))
	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Sku{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.CartItem{}).Where("sku_id = ?", sku.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.Review{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}
