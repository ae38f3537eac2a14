package usecase

import (
	"context"
	"net/http"
	"strings"

	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"github.com/shopspring/decimal"
)

// CategoryCache is the in-process cache in front of the category table.
// Only this usecase talks to it.
type CategoryCache interface {
	Get(ctx context.Context) ([]model.Category, bool)
	Set(ctx context.Context, categories []model.Category)
	Invalidate(ctx context.Context)
}

type ProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	cache        CategoryCache
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	cache CategoryCache,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Sort       string
}

type ProductOutput struct {
	ID               int64            `json:"id"`
	CategoryID       int64            `json:"category_id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotional_price,omitempty"`
	CurrentPrice     decimal.Decimal  `json:"current_price"`
	InStock          bool             `json:"in_stock"`
	IsFeatured       bool             `json:"is_featured"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	switch in.Sort {
	case "", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}

	return ProductListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (ProductOutput, error) {
	if productID <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return toProductOutput(p), nil
}

// ListCategories serves from the TTL cache and falls back to the
// database on a miss, refilling the cache.
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	if cached, ok := u.cache.Get(ctx); ok {
		return cached, nil
	}

	categories, err := u.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.cache.Set(ctx, categories)
	return categories, nil
}

// InvalidateCategories drops the cached list after a category change.
func (u *ProductUsecase) InvalidateCategories(ctx context.Context) {
	u.cache.Invalidate(ctx)
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:               p.ID,
		CategoryID:       p.CategoryID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		PromotionalPrice: p.PromotionalPrice,
		CurrentPrice:     p.CurrentPrice(),
		InStock:          p.InStock(),
		IsFeatured:       p.IsFeatured,
	}
}
