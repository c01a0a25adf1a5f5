package service

import (
	"errors"
	"fmt"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// CustomerService covers profile updates and address book management.
// Addresses are not snapshotted onto orders; deleting one never touches
// order history.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// UpdateProfile changes name and/or email, re-checking email uniqueness.
func (s *CustomerService) UpdateProfile(customerID string, name, email *string) (*model.User, error) {
	var user model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup user: %w", err)
		}

		updates := make(map[string]interface{})
		if name != nil {
			updates["name"] = *name
		}
		if email != nil && *email != user.Email {
			var cnt int64
			if err := tx.Model(&model.User{}).Where("email = ?", *email).Count(&cnt).Error; err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if cnt > 0 {
				return ErrDuplicateEmail
			}
			updates["email"] = *email
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddAddress stores a new shipping address for the customer.
func (s *CustomerService) AddAddress(customerID string, addr model.Address) (*model.Address, error) {
	addr.ID = ""
	addr.UserID = customerID
	if err := s.db.Create(&addr).Error; err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &addr, nil
}

// ListAddresses returns the customer's address book.
func (s *CustomerService) ListAddresses(customerID string) ([]model.Address, error) {
	var addresses []model.Address
	if err := s.db.Where("user_id = ?", customerID).Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// DeleteAddress removes one address owned by the customer.
func (s *CustomerService) DeleteAddress(customerID, addressID string) error {
	res := s.db.Where("user_id = ?", customerID).Delete(&model.Address{}, "id = ?", addressID)
	if res.Error != nil {
		return fmt.Errorf("delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetVendorProfile loads the vendor-specific fields for an account.
func (s *CustomerService) GetVendorProfile(vendorID string) (*model.VendorProfile, error) {
	var profile model.VendorProfile
	if err := s.db.First(&profile, "user_id = ?", vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup vendor profile: %w", err)
	}
	return &profile, nil
}
