package repository

import (
	"context"

	"loja/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// Row-locked read; the paid-flag check and flip in confirm_payment
	// must happen under this lock.
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	FindByIdempotencyKey(ctx context.Context, customerID int64, key string) (model.Order, bool, error)
	MarkPaid(ctx context.Context, orderID int64, gatewayRef string) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
