package service

import (
	"errors"
	"fmt"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// CartService manages per-customer carts. Totals are computed from live
// catalog prices, not snapshots, so the displayed total can drift from the
// amount eventually charged at checkout.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreateActiveCart returns the customer's most recently created cart,
// creating an empty one if none exists. Historical carts are left alone.
func (s *CartService) GetOrCreateActiveCart(customerID string) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Preload("Items").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup cart: %w", err)
	}

	cart = model.Cart{CustomerID: customerID}
	if err := s.db.Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return &cart, nil
}

// AddItem adds quantity of a SKU to the cart. If a line for that SKU
// already exists the quantities are summed; only the incremental amount is
// validated against inventory, so the summed line can exceed stock. That
// matches the storefront's checkout-time enforcement, where the real check
// happens.
func (s *CartService) AddItem(cartID, skuID string, quantity int) (*model.CartItem, error) {
	var item *model.CartItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sku model.Sku
		if err := tx.First(&sku, "id = ?", skuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup sku: %w", err)
		}

		var product model.Product
		if err := tx.First(&product, "id = ?", sku.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup product: %w", err)
		}

		if !sku.IsAvailable(&product) {
			return ErrUnavailable
		}
		if sku.Inventory < quantity {
			return ErrInsufficientInventory
		}

		var existing model.CartItem
		err := tx.Where("cart_id = ? AND sku_id = ?", cartID, skuID).First(&existing).Error
		switch {
		case err == nil:
			existing.Quantity += quantity
			if err := tx.Model(&existing).Update("quantity", existing.Quantity).Error; err != nil {
				return fmt.Errorf("update cart item: %w", err)
			}
			item = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created := model.CartItem{CartID: cartID, SkuID: skuID, Quantity: quantity}
			if err := tx.Create(&created).Error; err != nil {
				return fmt.Errorf("create cart item: %w", err)
			}
			item = &created
		default:
			return fmt.Errorf("lookup cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity overwrites a line's quantity. Zero or negative removes
// the line; otherwise the new quantity is validated against current stock.
func (s *CartService) UpdateQuantity(cartID, skuID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(cartID, skuID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		if err := tx.Where("cart_id = ? AND sku_id = ?", cartID, skuID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup cart item: %w", err)
		}

		var sku model.Sku
		if err := tx.First(&sku, "id = ?", skuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup sku: %w", err)
		}
		if sku.Inventory < quantity {
			return ErrInsufficientInventory
		}

		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		return nil
	})
}

// RemoveItem deletes one line unconditionally.
func (s *CartService) RemoveItem(cartID, skuID string) error {
	res := s.db.Where("cart_id = ? AND sku_id = ?", cartID, skuID).Delete(&model.CartItem{})
	if res.Error != nil {
		return fmt.Errorf("remove cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes every line in the cart.
func (s *CartService) Clear(cartID string) error {
	if err := s.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// TotalPrice sums (base_price + price_adjustment) * quantity over the
// cart's lines at current catalog prices. Lines whose SKU or product has
// disappeared contribute nothing.
func (s *CartService) TotalPrice(cartID string) (float64, error) {
	var items []model.CartItem
	if err := s.db.Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
		return 0, fmt.Errorf("load cart items: %w", err)
	}

	var total float64
	for _, item := range items {
		var sku model.Sku
		if err := s.db.First(&sku, "id = ?", item.SkuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, fmt.Errorf("lookup sku: %w", err)
		}
		var product model.Product
		if err := s.db.First(&product, "id = ?", sku.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, fmt.Errorf("lookup product: %w", err)
		}
		total += product.FinalPrice(&sku) * float64(item.Quantity)
	}
	return total, nil
}

// GetCart loads a cart with its lines.
func (s *CartService) GetCart(cartID string) (*model.Cart, error) {
	var cart model.Cart
	if err := s.db.Preload("Items").First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup cart: %w", err)
	}
	return &cart, nil
}
