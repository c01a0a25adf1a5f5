package service

import (
	"errors"
	"fmt"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// AdminService covers account moderation: vendor approval and the
// suspend/reactivate toggle. Suspension is orthogonal to approval.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListVendors returns vendor accounts, optionally only those awaiting
// approval.
func (s *AdminService) ListVendors(pendingOnly bool) ([]model.User, error) {
	query := s.db.Where("role = ?", model.RoleVendor)
	if pendingOnly {
		query = query.Where("approved = ?", false)
	}

	var vendors []model.User
	if err := query.Order("created_at DESC").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

// ApproveVendor moves an unapproved vendor to approved and lifts any
// suspension in the same step.
func (s *AdminService) ApproveVendor(vendorID string) (*model.User, error) {
	var vendor model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ?", model.RoleVendor).First(&vendor, "id = ?", vendorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup vendor: %w", err)
		}

		updates := map[string]interface{}{"approved": true, "suspended": false}
		if err := tx.Model(&vendor).Updates(updates).Error; err != nil {
			return fmt.Errorf("approve vendor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// SuspendAccount blocks an account from authenticating.
func (s *AdminService) SuspendAccount(userID string) (*model.User, error) {
	return s.setSuspended(userID, true)
}

// ReactivateAccount lifts a suspension.
func (s *AdminService) ReactivateAccount(userID string) (*model.User, error) {
	return s.setSuspended(userID, false)
}

func (s *AdminService) setSuspended(userID string, suspended bool) (*model.User, error) {
	var user model.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup user: %w", err)
		}
		if err := tx.Model(&user).Update("suspended", suspended).Error; err != nil {
			return fmt.Errorf("update suspension: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
