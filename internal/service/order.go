package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clothing-mall/internal/event"
	"clothing-mall/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// OrderEventPublisher is the outbound notification hook. Nil disables
// publishing; events are best effort and never fail the operation.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev event.OrderEvent) error
}

// OrderService owns the cart-to-order conversion, payment attachment and
// status transitions. Order creation is the only multi-entity transaction
// in the system.
type OrderService struct {
	db        *gorm.DB
	publisher OrderEventPublisher
}

func NewOrderService(db *gorm.DB, publisher OrderEventPublisher) *OrderService {
	return &OrderService{db: db, publisher: publisher}
}

// CreateFromCart converts a cart into a priced order. The order header,
// its items and the inventory decrements commit as one unit: on any line
// failure nothing persists and no stock moves. Inventory is reserved with
// a guarded conditional UPDATE so two concurrent checkouts cannot both
// take the last unit. The cart is cleared afterwards in a separate unit
// of work.
func (s *OrderService) CreateFromCart(ctx context.Context, customerID, cartID string) (*model.Order, error) {
	tracer := otel.Tracer("clothing-mall/order")
	ctx, span := tracer.Start(ctx, "order.create_from_cart")
	defer span.End()

	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []model.CartItem
		if err := tx.Where("cart_id = ?", cartID).Find(&lines).Error; err != nil {
			return fmt.Errorf("load cart items: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		// Header first so items can reference the order id.
		order = model.Order{
			CustomerID:  customerID,
			Status:      model.OrderStatusPending,
			TotalAmount: 0,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		var total float64
		for _, line := range lines {
			var sku model.Sku
			if err := tx.First(&sku, "id = ?", line.SkuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidLine
				}
				return fmt.Errorf("lookup sku: %w", err)
			}
			var product model.Product
			if err := tx.First(&product, "id = ?", sku.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidLine
				}
				return fmt.Errorf("lookup product: %w", err)
			}

			if !product.Available {
				return ErrProductUnavailable
			}
			if sku.Inventory < line.Quantity {
				return ErrInsufficientInventory
			}

			unitPrice := product.FinalPrice(&sku)
			lineTotal := unitPrice * float64(line.Quantity)

			item := model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				SkuID:     sku.ID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			order.Items = append(order.Items, item)

			// Stock reservation. The inventory >= ? guard makes the
			// decrement atomic under concurrent checkouts.
			res := tx.Model(&model.Sku{}).
				Where("id = ? AND inventory >= ?", sku.ID, line.Quantity).
				UpdateColumn("inventory", gorm.Expr("inventory - ?", line.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement inventory: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientInventory
			}

			total += lineTotal
		}

		order.TotalAmount = total
		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return fmt.Errorf("update order total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Float64("order.total", order.TotalAmount),
	)

	// Separate unit of work. A crash between the commit above and this
	// delete leaves stale cart lines behind; the order itself is safe.
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		log.Printf("order %s created but cart %s not cleared: %v", order.ID, cartID, err)
	}

	s.publish(ctx, &order, "created")
	return &order, nil
}

// AttachPayment records the one-to-one payment stub. Amount must equal the
// order total exactly. The status moves to paid unconditionally; a second
// attach fails on the payment record's order uniqueness.
func (s *OrderService) AttachPayment(ctx context.Context, orderID string, amount float64, method, transactionID string) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	var order model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lookup order: %w", err)
		}

		if amount != order.TotalAmount {
			return ErrAmountMismatch
		}

		record = model.PaymentRecord{
			OrderID:       orderID,
			Amount:        amount,
			Method:        method,
			TransactionID: transactionID,
			Timestamp:     time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("create payment record: %w", err)
		}

		if err := tx.Model(&order).Update("status", model.OrderStatusPaid).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = model.OrderStatusPaid
	s.publish(ctx, &order, "paid")
	return &record, nil
}

// UpdateStatus sets the order status, restricted to the enumerated set.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	if !model.ValidOrderStatuses[newStatus] {
		return ErrInvalidStatus
	}

	res := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", newStatus)
	if res.Error != nil {
		return fmt.Errorf("update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads one order with its items and payment record.
func (s *OrderService) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("PaymentRecord").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup order: %w", err)
	}
	return &order, nil
}

// ListForCustomer returns the customer's orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first. Admin oversight only.
func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListForVendor returns orders containing at least one of the vendor's
// products, newest first.
func (s *OrderService) ListForVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	var productIDs []string
	err := s.db.WithContext(ctx).Model(&model.Product{}).
		Where("vendor_id = ?", vendorID).
		Pluck("id", &productIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	if len(productIDs) == 0 {
		return nil, nil
	}

	var orderIDs []string
	err = s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Distinct("order_id").
		Where("product_id IN ?", productIDs).
		Pluck("order_id", &orderIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list vendor order ids: %w", err)
	}
	if len(orderIDs) == 0 {
		return nil, nil
	}

	var orders []model.Order
	err = s.db.WithContext(ctx).
		Where("id IN ?", orderIDs).
		Order("created_at DESC").
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list vendor orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) publish(ctx context.Context, order *model.Order, eventType string) {
	if s.publisher == nil {
		return
	}
	ev := event.OrderEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Type:       eventType,
		Status:     order.Status,
		Total:      order.TotalAmount,
		Occurred:   time.Now().UTC(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, ev); err != nil {
		log.Printf("publish order event %s for %s: %v", eventType, order.ID, err)
	}
}
