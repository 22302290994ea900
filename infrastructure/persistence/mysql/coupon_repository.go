package mysql

import (
	"context"
	"errors"

	"commerce/domain/order"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CouponRepository is the MySQL/GORM coupon store. Coupons carry no
// version column; usage burn happens inside the order transaction, so the
// order's lock covers it.
type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CouponRepository) Save(ctx context.Context, c *order.Coupon) error {
	row := po.FromCouponDomain(c)
	return r.getDB(ctx).
		Select("*").Omit("created_at").
		Save(row).Error
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*order.Coupon, error) {
	var row po.CouponPO
	result := r.getDB(ctx).First(&row, "code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewCouponNotFoundError(code)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

var _ order.CouponRepository = (*CouponRepository)(nil)
