package mysql

import (
	"context"
	"errors"

	"commerce/domain/product"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository is the MySQL/GORM product store.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProductRepository) NextIdentity() string {
	return uuid.New().String()
}

// Save persists the product under the optimistic lock. Stock adjustments
// race with order placement, so a lost version check surfaces as a
// concurrent modification error and the unit of work retries.
func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	row := po.FromProductDomain(p)
	db := r.getDB(ctx)

	if p.IsNew() {
		row.Version = p.Version() + 1
		if err := db.Create(row).Error; err != nil {
			return err
		}
	} else {
		loadedVersion := p.Version()
		row.Version = loadedVersion + 1
		// Select("*") forces zero values (inactive flag, zero stock,
		// cleared discount) to be written.
		result := db.Model(&po.ProductPO{}).
			Where("id = ? AND version = ?", p.ID(), loadedVersion).
			Select("*").Omit("id", "created_at").
			Updates(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return product.NewConcurrentModificationError(p.ID())
		}
	}

	p.IncrementVersionForSave()
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var row po.ProductPO
	result := r.getDB(ctx).First(&row, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var row po.ProductPO
	result := r.getDB(ctx).First(&row, "sku = ?", sku)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, product.NewProductNotFoundError(sku)
		}
		return nil, result.Error
	}
	return row.ToDomain(), nil
}

var _ product.Repository = (*ProductRepository)(nil)
