package repository

import "context"

// Repositories available inside one transaction.
type TxRepos interface {
	Customers() CustomerRepository
	Profiles() ProfileRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Products() ProductRepository
	Payments() PaymentRepository
	Boletos() BoletoRepository
	PixCharges() PixChargeRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
