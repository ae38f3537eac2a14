package repository

import (
	"context"

	"loja/internal/domain/model"
)

type InventoryRepository interface {
	// Decrement clamped at zero: stock never goes negative, even when an
	// order oversold. Returns the stock after the decrement.
	DecrementStockClamped(ctx context.Context, productID int64, qty int64) (int64, error)

	// Restock (cancellations, manual adjustment).
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error
}
