package service

import (
	"errors"
	"fmt"

	"clothing-mall/internal/model"

	"gorm.io/gorm"
)

// CatalogService manages vendor product listings and their SKU variants.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ProductUpdate carries optional field changes; nil leaves a field alone.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	BasePrice   *float64
	Available   *bool
	ImageURL    *string
}

// SkuUpdate carries optional SKU field changes.
type SkuUpdate struct {
	Size            *string
	Color           *string
	Inventory       *int
	PriceAdjustment *float64
}

// CreateProduct lists a new product under the vendor.
func (s *CatalogService) CreateProduct(vendorID, name, description, category string, basePrice float64, available bool, imageURL string) (*model.Product, error) {
	product := &model.Product{
		VendorID:    vendorID,
		Name:        name,
		Description: description,
		Category:    category,
		BasePrice:   basePrice,
		Available:   available,
		ImageURL:    imageURL,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies the non-nil fields.
func (s *CatalogService) UpdateProduct(productID string, upd ProductUpdate) (*model.Product, error) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	updates := make(map[string]interface{})
	if upd.Name != nil {
		updates["name"] = *upd.Name
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Category != nil {
		updates["category"] = *upd.Category
	}
	if upd.BasePrice != nil {
		updates["base_price"] = *upd.BasePrice
	}
	if upd.Available != nil {
		updates["available"] = *upd.Available
	}
	if upd.ImageURL != nil {
		updates["image_url"] = *upd.ImageURL
	}
	if len(updates) == 0 {
		return &product, nil
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product together with its SKUs, any cart lines
// referencing those SKUs, and its reviews. Historical order items keep
// their product and SKU ids as price-snapshot references and are never
// touched.
func (s *CatalogService) DeleteProduct(productID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup product: %w", err)
		}

		var skuIDs []string
		if err := tx.Model(&model.Sku{}).Where("product_id = ?", productID).Pluck("id", &skuIDs).Error; err != nil {
			return fmt.Errorf("list skus: %w", err)
		}
		if len(skuIDs) > 0 {
			if err := tx.Where("sku_id IN ?", skuIDs).Delete(&model.CartItem{}).Error; err != nil {
				return fmt.Errorf("delete cart items: %w", err)
			}
			if err := tx.Where("product_id = ?", productID).Delete(&model.Sku{}).Error; err != nil {
				return fmt.Errorf("delete skus: %w", err)
			}
		}
		if err := tx.Where("product_id = ?", productID).Delete(&model.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

// AddSku adds a variant to a product.
func (s *CatalogService) AddSku(productID, size, color string, inventory int, priceAdjustment float64) (*model.Sku, error) {
	var product model.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	sku := &model.Sku{
		ProductID:       productID,
		Size:            size,
		Color:           color,
		Inventory:       inventory,
		PriceAdjustment: priceAdjustment,
	}
	if err := s.db.Create(sku).Error; err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}
	return sku, nil
}

// UpdateSku applies the non-nil fields.
func (s *CatalogService) UpdateSku(skuID string, upd SkuUpdate) (*model.Sku, error) {
	var sku model.Sku
	if err := s.db.First(&sku, "id = ?", skuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup sku: %w", err)
	}

	updates := make(map[string]interface{})
	if upd.Size != nil {
		updates["size"] = *upd.Size
	}
	if upd.Color != nil {
		updates["color"] = *upd.Color
	}
	if upd.Inventory != nil {
		updates["inventory"] = *upd.Inventory
	}
	if upd.PriceAdjustment != nil {
		updates["price_adjustment"] = *upd.PriceAdjustment
	}
	if len(updates) == 0 {
		return &sku, nil
	}

	if err := s.db.Model(&sku).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update sku: %w", err)
	}
	return &sku, nil
}

// DeleteSku removes a single variant and any cart lines holding it.
func (s *CatalogService) DeleteSku(skuID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Sku{}, "id = ?", skuID)
		if res.Error != nil {
			return fmt.Errorf("delete sku: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("sku_id = ?", skuID).Delete(&model.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart items: %w", err)
		}
		return nil
	})
}

// GetProduct loads one product with its variants.
func (s *CatalogService) GetProduct(productID string) (*model.Product, error) {
	var product model.Product
	if err := s.db.Preload("Skus").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	return &product, nil
}

// GetSku loads one variant.
func (s *CatalogService) GetSku(skuID string) (*model.Sku, error) {
	var sku model.Sku
	if err := s.db.First(&sku, "id = ?", skuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup sku: %w", err)
	}
	return &sku, nil
}

// ListByCategory lists products in a category, optionally only available
// ones.
func (s *CatalogService) ListByCategory(category string, onlyAvailable bool) ([]model.Product, error) {
	query := s.db.Where("category = ?", category)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	var products []model.Product
	if err := query.Preload("Skus").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListAvailableWithStock returns products that are available and have at
// least one SKU with inventory on hand. This feeds the customer-facing
// catalog.
func (s *CatalogService) ListAvailableWithStock() ([]model.Product, error) {
	var products []model.Product
	err := s.db.
		Where("available = ?", true).
		Where("id IN (?)", s.db.Model(&model.Sku{}).Select("product_id").Where("inventory > 0")).
		Preload("Skus").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list available products: %w", err)
	}
	return products, nil
}

// ListVendorProducts lists one vendor's products, newest first.
func (s *CatalogService) ListVendorProducts(vendorID string, onlyAvailable bool) ([]model.Product, error) {
	query := s.db.Where("vendor_id = ?", vendorID)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	var products []model.Product
	if err := query.Order("created_at DESC").Preload("Skus").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	return products, nil
}
