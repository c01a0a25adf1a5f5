package service

import (
	"testing"

	"clothing-mall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListVendors(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)
	admin := NewAdminService(db)

	createCustomer(t, db, "alice@example.com")
	pending, err := auth.RegisterVendor("Bob", "bob@example.com", "secret-password", "Bob's Boots", "")
	require.NoError(t, err)
	createApprovedVendor(t, db, "carol@example.com")

	vendors, err := admin.ListVendors(false)
	require.NoError(t, err)
	assert.Len(t, vendors, 2)

	awaiting, err := admin.ListVendors(true)
	require.NoError(t, err)
	require.Len(t, awaiting, 1)
	assert.Equal(t, pending.ID, awaiting[0].ID)

	users, err := admin.ListUsers()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestApproveVendor(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)
	admin := NewAdminService(db)

	vendor, err := auth.RegisterVendor("Bob", "bob@example.com", "secret-password", "Bob's Boots", "")
	require.NoError(t, err)

	approved, err := admin.ApproveVendor(vendor.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	// approval also lifts suspension
	_, err = admin.SuspendAccount(vendor.ID)
	require.NoError(t, err)
	approved, err = admin.ApproveVendor(vendor.ID)
	require.NoError(t, err)
	assert.False(t, approved.Suspended)

	_, err = admin.ApproveVendor("no-such-vendor")
	assert.ErrorIs(t, err, ErrNotFound)

	// customers are not approvable
	customer := createCustomer(t, db, "alice@example.com")
	_, err = admin.ApproveVendor(customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuspendReactivate(t *testing.T) {
	db := newTestDB(t)
	admin := NewAdminService(db)
	customer := createCustomer(t, db, "alice@example.com")

	suspended, err := admin.SuspendAccount(customer.ID)
	require.NoError(t, err)
	assert.True(t, suspended.Suspended)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", customer.ID).Error)
	assert.True(t, stored.Suspended)

	active, err := admin.ReactivateAccount(customer.ID)
	require.NoError(t, err)
	assert.False(t, active.Suspended)

	_, err = admin.SuspendAccount("no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}
