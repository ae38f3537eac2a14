package repository

import (
	"context"
	"errors"

	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// DecrementStockClamped subtracts qty from the product's stock, never
// below zero, and returns the stock after the decrement. The row is
// locked so concurrent decrements serialize.
func (r *InventoryGormRepository) DecrementStockClamped(ctx context.Context, productID int64, qty int64) (int64, error) {
	var newStock int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Product
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", productID).
			First(&p).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if findErr != nil {
			return findErr
		}

		res := tx.Model(&model.Product{}).
			Where("id = ?", productID).
			Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", qty))
		if res.Error != nil {
			return res.Error
		}

		newStock = p.Stock - qty
		if newStock < 0 {
			newStock = 0
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return newStock, nil
}

func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Create(&adj).Error
}
