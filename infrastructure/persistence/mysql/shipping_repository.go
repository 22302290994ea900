package mysql

import (
	"context"
	"errors"

	"commerce/domain/shipping"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingRepository is the MySQL/GORM shipment store.
type ShippingRepository struct {
	db *gorm.DB
}

func NewShippingRepository(db *gorm.DB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

func (r *ShippingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ShippingRepository) NextIdentity() string {
	return uuid.New().String()
}

// Save persists the shipment under the optimistic lock.
func (r *ShippingRepository) Save(ctx context.Context, s *shipping.Shipping) error {
	row := po.FromShippingDomain(s)
	db := r.getDB(ctx)

	if s.IsNew() {
		row.Version = s.Version() + 1
		if err := db.Create(row).Error; err != nil {
			return err
		}
	} else {
		loadedVersion := s.Version()
		row.Version = loadedVersion + 1
		result := db.Model(&po.ShippingPO{}).
			Where("id = ? AND version = ?", s.ID(), loadedVersion).
			Select("*").Omit("id", "created_at").
			Updates(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shipping.NewConcurrentModificationError(s.ID())
		}
	}

	s.IncrementVersionForSave()
	return nil
}

func (r *ShippingRepository) FindByID(ctx context.Context, id string) (*shipping.Shipping, error) {
	var row po.ShippingPO
	result := r.getDB(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shipping.NewShippingNotFoundError(id)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

func (r *ShippingRepository) FindByOrderID(ctx context.Context, orderID string) (*shipping.Shipping, error) {
	var row po.ShippingPO
	result := r.getDB(ctx).First(&row, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shipping.NewShippingNotFoundError(orderID)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

func (r *ShippingRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipping.Shipping, error) {
	var row po.ShippingPO
	result := r.getDB(ctx).First(&row, "tracking_number = ?", trackingNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shipping.NewShippingNotFoundError(trackingNumber)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

var _ shipping.Repository = (*ShippingRepository)(nil)
