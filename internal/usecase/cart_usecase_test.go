package usecase_test

import (
	"context"
	"testing"

	"loja/internal/domain/model"
	"loja/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	return usecase.NewCartUsecase(cartRepo, itemRepo, productRepo), cartRepo, itemRepo, productRepo
}

func TestCartUsecase_AddToCart_NewLine_SnapshotsCurrentPrice(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	promo := mustDecimal(t, "8.00")
	product := model.Product{
		ID:               7,
		Name:             "Coffee",
		Price:            mustDecimal(t, "10.00"),
		PromotionalPrice: &promo,
		Stock:            5,
		IsActive:         true,
	}

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10, CustomerID: 1}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).Return(product, nil)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(10), int64(7)).Return(model.CartItem{}, false, nil)

	itemRepo.On("Create", mock.Anything, mock.MatchedBy(func(it *model.CartItem) bool {
		return it.CartID == 10 && it.ProductID == 7 && it.Quantity == 2 &&
			it.UnitPriceSnapshot.Equal(promo)
	})).Return(nil)

	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 7, Quantity: 2, UnitPriceSnapshot: promo},
	}, nil)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.TotalItems)
	assert.True(t, out.TotalCost.Equal(mustDecimal(t, "16.00")))

	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_MergesAndClampsToStock(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	price := mustDecimal(t, "10.00")
	product := model.Product{ID: 7, Name: "Coffee", Price: price, Stock: 4, IsActive: true}

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).Return(product, nil)

	// 3 already in the cart; adding 5 more clamps the line to stock (4)
	itemRepo.On("FindByCartAndProduct", mock.Anything, int64(10), int64(7)).
		Return(model.CartItem{ID: 5, CartID: 10, ProductID: 7, Quantity: 3, UnitPriceSnapshot: price}, true, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, int64(5), int64(4)).Return(nil)

	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 5, CartID: 10, ProductID: 7, Quantity: 4, UnitPriceSnapshot: price},
	}, nil)

	out, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), out.TotalItems)

	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_ZeroStockRefused(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Price: mustDecimal(t, "10.00"), Stock: 0, IsActive: true}, nil)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 1})
	assertErrContains(t, err, "out of stock")
}

func TestCartUsecase_AddToCart_InactiveProductRefused(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, _, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Price: mustDecimal(t, "10.00"), Stock: 3, IsActive: false}, nil)

	_, err := uc.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 1})
	assertErrContains(t, err, "invalid product")
}

func TestCartUsecase_UpdateCartItem_ZeroQuantityRemovesLine(t *testing.T) {
	ctx := context.Background()
	uc, _, itemRepo, _ := newCartUsecase()

	itemRepo.On("IsOwnedByCustomer", mock.Anything, int64(5), int64(1)).Return(true, nil)
	itemRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.CartItem{ID: 5, CartID: 10, ProductID: 7, Quantity: 3}, nil)
	itemRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.UpdateCartItem(ctx, 1, 5, usecase.UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.TotalItems)

	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_UpdateCartItem_OverStockRejected(t *testing.T) {
	ctx := context.Background()
	uc, _, itemRepo, productRepo := newCartUsecase()

	itemRepo.On("IsOwnedByCustomer", mock.Anything, int64(5), int64(1)).Return(true, nil)
	itemRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.CartItem{ID: 5, CartID: 10, ProductID: 7, Quantity: 2}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Price: mustDecimal(t, "10.00"), Stock: 3, IsActive: true}, nil)

	_, err := uc.UpdateCartItem(ctx, 1, 5, usecase.UpdateCartItemInput{Quantity: 4})
	assertErrContains(t, err, "insufficient stock")

	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_NotOwned(t *testing.T) {
	ctx := context.Background()
	uc, _, itemRepo, _ := newCartUsecase()

	itemRepo.On("IsOwnedByCustomer", mock.Anything, int64(5), int64(1)).Return(false, nil)

	_, err := uc.UpdateCartItem(ctx, 1, 5, usecase.UpdateCartItemInput{Quantity: 1})
	assertErrContains(t, err, "not found")
}

func TestCartUsecase_Totals_ComputedFromLines(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, productRepo := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)

	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 7, Quantity: 2, UnitPriceSnapshot: mustDecimal(t, "10.00")},
		{ID: 2, CartID: 10, ProductID: 8, Quantity: 1, UnitPriceSnapshot: mustDecimal(t, "5.00")},
	}, nil)
	productRepo.On("FindByID", mock.Anything, int64(7)).
		Return(model.Product{ID: 7, Name: "Coffee", IsActive: true}, nil)
	productRepo.On("FindByID", mock.Anything, int64(8)).
		Return(model.Product{ID: 8, Name: "Filter", IsActive: true}, nil)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalItems)
	assert.True(t, out.TotalCost.Equal(mustDecimal(t, "25.00")), "got %s", out.TotalCost)
	assert.Len(t, out.Items, 2)
}

func TestCartUsecase_ClearCart_EmptiesLines(t *testing.T) {
	ctx := context.Background()
	uc, cartRepo, itemRepo, _ := newCartUsecase()

	cartRepo.On("GetOrCreateActiveByCustomerID", mock.Anything, int64(1)).Return(model.Cart{ID: 10}, nil)
	cartRepo.On("Clear", mock.Anything, int64(10)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, int64(10)).Return([]model.CartItem{}, nil)

	out, err := uc.ClearCart(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.TotalCost.IsZero())

	cartRepo.AssertExpectations(t)
}
