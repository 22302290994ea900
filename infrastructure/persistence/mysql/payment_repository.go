package mysql

import (
	"context"
	"errors"

	"commerce/domain/payment"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRepository is the MySQL/GORM payment store.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PaymentRepository) NextIdentity() string {
	return uuid.New().String()
}

// Save persists the payment under the optimistic lock.
func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	row := po.FromPaymentDomain(p)
	db := r.getDB(ctx)

	if p.IsNew() {
		row.Version = p.Version() + 1
		if err := db.Create(row).Error; err != nil {
			return err
		}
	} else {
		loadedVersion := p.Version()
		row.Version = loadedVersion + 1
		result := db.Model(&po.PaymentPO{}).
			Where("id = ? AND version = ?", p.ID(), loadedVersion).
			Select("*").Omit("id", "created_at").
			Updates(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return payment.NewConcurrentModificationError(p.ID())
		}
	}

	p.IncrementVersionForSave()
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	var row po.PaymentPO
	result := r.getDB(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payment.NewPaymentNotFoundError(id)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	var row po.PaymentPO
	result := r.getDB(ctx).First(&row, "order_id = ?", orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, payment.NewPaymentNotFoundError(orderID)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
