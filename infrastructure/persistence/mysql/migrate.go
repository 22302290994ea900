package mysql

import (
	"fmt"

	"commerce/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persistence object.
// Intended for development; production schemas are managed by migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&po.OrderPO{},
		&po.OrderItemPO{},
		&po.CouponPO{},
		&po.ProductPO{},
		&po.PaymentPO{},
		&po.ShippingPO{},
		&po.OutboxEventPO{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}
