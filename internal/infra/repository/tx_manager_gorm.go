package repository

import (
	"context"

	repo "loja/internal/repository"

	"gorm.io/gorm"
)

// GormTransactionManager runs usecase work inside one database
// transaction, handing the callback repositories bound to the tx.
type GormTransactionManager struct {
	db *gorm.DB
}

func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

func (m *GormTransactionManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTxRepos(tx))
	})
}

type txReposGorm struct {
	customers  *CustomerGormRepository
	profiles   *ProfileGormRepository
	orders     *OrderGormRepository
	orderItems *OrderItemGormRepository
	carts      *CartGormRepository
	inventory  *InventoryGormRepository
	products   *ProductGormRepository
	payments   *PaymentGormRepository
	boletos    *BoletoGormRepository
	pixCharges *PixChargeGormRepository
}

func newTxRepos(tx *gorm.DB) repo.TxRepos {
	return &txReposGorm{
		customers:  NewCustomerGormRepository(tx),
		profiles:   NewProfileGormRepository(tx),
		orders:     NewOrderGormRepository(tx),
		orderItems: NewOrderItemGormRepository(tx),
		carts:      NewCartGormRepository(tx),
		inventory:  NewInventoryGormRepository(tx),
		products:   NewProductGormRepository(tx),
		payments:   NewPaymentGormRepository(tx),
		boletos:    NewBoletoGormRepository(tx),
		pixCharges: NewPixChargeGormRepository(tx),
	}
}

func (r *txReposGorm) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposGorm) Profiles() repo.ProfileRepository     { return r.profiles }
func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository   { return r.carts }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Payments() repo.PaymentRepository     { return r.payments }
func (r *txReposGorm) Boletos() repo.BoletoRepository       { return r.boletos }
func (r *txReposGorm) PixCharges() repo.PixChargeRepository { return r.pixCharges }
