package repository

import (
	"context"

	"loja/internal/domain/model"
)

type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Sort       string
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]model.Category, error)
}
