package service

import (
	"context"
	"testing"

	"clothing-mall/internal/event"
	"clothing-mall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []event.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev event.OrderEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func TestCreateFromCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	pub := &recordingPublisher{}
	orders := NewOrderService(db, pub)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	_, sku := createProductWithSku(t, db, vendor.ID, 40.0, 2.5, 5)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 2)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.InDelta(t, 85.0, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 42.5, order.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 85.0, order.Items[0].LineTotal, 1e-9)

	var left model.Sku
	require.NoError(t, db.First(&left, "id = ?", sku.ID).Error)
	assert.Equal(t, 3, left.Inventory)

	cleared, err := carts.GetCart(cart.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "created", pub.events[0].Type)
	assert.Equal(t, order.ID, pub.events[0].OrderID)
}

func TestCreateFromEmptyCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)

	_, err = orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateFromCartRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	_, okSku := createProductWithSku(t, db, vendor.ID, 20.0, 0, 10)
	_, lowSku := createProductWithSku(t, db, vendor.ID, 30.0, 0, 5)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, okSku.ID, 4)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, lowSku.ID, 5)
	require.NoError(t, err)

	// make the second line oversell after it entered the cart
	require.NoError(t, db.Model(&model.Sku{}).Where("id = ?", lowSku.ID).Update("inventory", 3).Error)

	_, err = orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	// nothing persists and no stock moved, including the line that succeeded
	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&count).Error)
	assert.Zero(t, count)

	var s model.Sku
	require.NoError(t, db.First(&s, "id = ?", okSku.ID).Error)
	assert.Equal(t, 10, s.Inventory)

	// the cart keeps its lines on failure
	loaded, err := carts.GetCart(cart.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
}

func TestCreateFromCartUnavailableProduct(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	catalog := NewCatalogService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, sku := createProductWithSku(t, db, vendor.ID, 20.0, 0, 10)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 1)
	require.NoError(t, err)

	unavailable := false
	_, err = catalog.UpdateProduct(product.ID, ProductUpdate{Available: &unavailable})
	require.NoError(t, err)

	_, err = orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestOrderTotalSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	catalog := NewCatalogService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	product, sku := createProductWithSku(t, db, vendor.ID, 40.0, 0, 10)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 2)
	require.NoError(t, err)

	order, err := orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	// a later catalog price change must not rewrite the order
	newPrice := 99.0
	_, err = catalog.UpdateProduct(product.ID, ProductUpdate{BasePrice: &newPrice})
	require.NoError(t, err)

	reloaded, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, reloaded.TotalAmount, 1e-9)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 40.0, reloaded.Items[0].UnitPrice, 1e-9)
}

func TestAttachPayment(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	pub := &recordingPublisher{}
	orders := NewOrderService(db, pub)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	_, sku := createProductWithSku(t, db, vendor.ID, 40.0, 0, 10)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 2)
	require.NoError(t, err)
	order, err := orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	_, err = orders.AttachPayment(context.Background(), order.ID, order.TotalAmount+0.01, "card", "tx-1")
	assert.ErrorIs(t, err, ErrAmountMismatch)

	record, err := orders.AttachPayment(context.Background(), order.ID, order.TotalAmount, "card", "tx-1")
	require.NoError(t, err)
	assert.Equal(t, order.ID, record.OrderID)

	paid, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentRecord)
	assert.Equal(t, "tx-1", paid.PaymentRecord.TransactionID)

	// one payment per order
	_, err = orders.AttachPayment(context.Background(), order.ID, order.TotalAmount, "card", "tx-2")
	assert.Error(t, err)

	require.Len(t, pub.events, 2)
	assert.Equal(t, "paid", pub.events[1].Type)

	_, err = orders.AttachPayment(context.Background(), "no-such-order", 10, "card", "tx-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")
	vendor := createApprovedVendor(t, db, "bob@example.com")
	_, sku := createProductWithSku(t, db, vendor.ID, 40.0, 0, 10)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, sku.ID, 1)
	require.NoError(t, err)
	order, err := orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, orders.UpdateStatus(context.Background(), order.ID, "teleported"), ErrInvalidStatus)
	assert.ErrorIs(t, orders.UpdateStatus(context.Background(), "no-such-order", model.OrderStatusShipped), ErrNotFound)

	require.NoError(t, orders.UpdateStatus(context.Background(), order.ID, model.OrderStatusShipped))
	reloaded, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, reloaded.Status)
}

func TestListForVendor(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, nil)
	customer := createCustomer(t, db, "alice@example.com")
	vendorA := createApprovedVendor(t, db, "bob@example.com")
	vendorB := createApprovedVendor(t, db, "carol@example.com")
	_, skuA := createProductWithSku(t, db, vendorA.ID, 20.0, 0, 10)
	_, skuB := createProductWithSku(t, db, vendorB.ID, 30.0, 0, 10)

	cart, err := carts.GetOrCreateActiveCart(customer.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(cart.ID, skuA.ID, 1)
	require.NoError(t, err)
	order, err := orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	_, err = carts.AddItem(cart.ID, skuB.ID, 1)
	require.NoError(t, err)
	_, err = orders.CreateFromCart(context.Background(), customer.ID, cart.ID)
	require.NoError(t, err)

	forA, err := orders.ListForVendor(context.Background(), vendorA.ID)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, order.ID, forA[0].ID)

	forB, err := orders.ListForVendor(context.Background(), vendorB.ID)
	require.NoError(t, err)
	assert.Len(t, forB, 1)

	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := orders.ListForCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
