package mysql

import (
	"context"
	"errors"
	"time"

	"commerce/domain/order"
	"commerce/domain/shared"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"
	"commerce/infrastructure/persistence/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the MySQL/GORM order store. It persists the aggregate
// only; events go through the outbox, never from here. GORM associations
// are prohibited so the aggregate boundary stays in domain code.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if present, otherwise the
// default handle.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) NextIdentity() string {
	return uuid.New().String()
}

// Save persists the order and replaces its item rows. Updates carry the
// optimistic lock: the WHERE clause matches the loaded version, and zero
// affected rows means another transaction won.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o, orderPO, itemPOs)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o, orderPO, itemPOs)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order, orderPO *po.OrderPO, itemPOs []po.OrderItemPO) error {
	if o.IsNew() {
		orderPO.Version = o.Version() + 1
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
	} else {
		loadedVersion := o.Version()
		orderPO.Version = loadedVersion + 1
		// Select("*") forces zero values (cleared discounts, empty
		// coupon ID) to be written.
		result := tx.Model(&po.OrderPO{}).
			Where("id = ? AND version = ?", o.ID(), loadedVersion).
			Select("*").Omit("id", "created_at").
			Updates(orderPO)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.NewConcurrentModificationError(o.ID())
		}
	}

	// Item rows are replaced wholesale: delete then insert.
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ? AND deleted_at IS NULL", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	return r.loadItems(db, &orderPO)
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "order_number = ? AND deleted_at IS NULL", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(number)
		}
		return nil, result.Error
	}

	return r.loadItems(db, &orderPO)
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ? AND deleted_at IS NULL", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		o, err := r.loadItems(db, &orderPOs[i])
		if err != nil {
			return nil, err
		}
		orders[i] = o
	}
	return orders, nil
}

// FindBySpecification queries orders through a translated specification.
// Specifications the translator cannot express are evaluated in memory
// over the user-scoped result set.
func (r *OrderRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	db := r.getDB(ctx)
	translator := specification.NewOrderTranslator()

	scope := translator.Translate(spec)
	if scope != nil {
		var orderPOs []po.OrderPO
		if err := scope(db.Where("deleted_at IS NULL")).
			Order("created_at DESC").
			Find(&orderPOs).Error; err != nil {
			return nil, err
		}
		orders := make([]*order.Order, len(orderPOs))
		for i := range orderPOs {
			o, err := r.loadItems(db, &orderPOs[i])
			if err != nil {
				return nil, err
			}
			orders[i] = o
		}
		return orders, nil
	}

	// Fallback: load and filter in memory.
	var orderPOs []po.OrderPO
	if err := db.Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}
	var orders []*order.Order
	for i := range orderPOs {
		o, err := r.loadItems(db, &orderPOs[i])
		if err != nil {
			return nil, err
		}
		if spec == nil || spec.IsSatisfiedBy(ctx, o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// Remove soft deletes the order. Business history stays queryable.
func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	now := time.Now()
	result := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(id)
	}
	return nil
}

// loadItems queries item rows by hand; Preload would blur the aggregate
// boundary.
func (r *OrderRepository) loadItems(db *gorm.DB, orderPO *po.OrderPO) (*order.Order, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderPO.ID).Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

var _ order.Repository = (*OrderRepository)(nil)
