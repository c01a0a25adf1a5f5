package service

import (
	"errors"
	"fmt"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// AuthService implements registration, authentication and the account
// approval/suspension state machine.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// RegisterCustomer creates a customer account. Customers are approved
// immediately.
func (s *AuthService) RegisterCustomer(name, email, password string) (*model.User, error) {
	user := &model.User{
		Name:     name,
		Email:    email,
		Role:     model.RoleCustomer,
		Approved: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.createUnique(user, nil); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterVendor creates a vendor account plus its profile row. Vendors
// start unapproved and cannot log in until an admin approves them.
func (s *AuthService) RegisterVendor(name, email, password, businessName, taxID string) (*model.User, error) {
	user := &model.User{
		Name:     name,
		Email:    email,
		Role:     model.RoleVendor,
		Approved: false,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &model.VendorProfile{
		BusinessName: businessName,
		TaxID:        taxID,
	}
	if err := s.createUnique(user, profile); err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterAdmin creates an administrator account, approved by default.
func (s *AuthService) RegisterAdmin(name, email, password string) (*model.User, error) {
	user := &model.User{
		Name:     name,
		Email:    email,
		Role:     model.RoleAdmin,
		Approved: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.createUnique(user, nil); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) createUnique(user *model.User, profile *model.VendorProfile) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&cnt).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if cnt > 0 {
			return ErrDuplicateEmail
		}

		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if profile != nil {
			profile.UserID = user.ID
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("create vendor profile: %w", err)
			}
		}
		return nil
	})
}

// Authenticate verifies email/password. It never distinguishes an unknown
// email from a wrong password.
func (s *AuthService) Authenticate(email, password string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Login enforces the state machine gates on an already-authenticated user:
// suspended accounts are rejected, unapproved vendors are rejected.
func (s *AuthService) Login(user *model.User) error {
	if user.Suspended {
		return ErrAccountSuspended
	}
	if user.Role == model.RoleVendor && !user.Approved {
		return ErrPendingApproval
	}
	return nil
}

// ChangePassword verifies the old password before setting the new one.
func (s *AuthService) ChangePassword(userID, oldPassword, newPassword string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup user: %w", err)
		}

		if !user.CheckPassword(oldPassword) {
			return ErrInvalidCredentials
		}
		if err := user.SetPassword(newPassword); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if err := tx.Model(&user).Update("password_hash", user.PasswordHash).Error; err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		return nil
	})
}

// GetUser loads an account by id.
func (s *AuthService) GetUser(id string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
