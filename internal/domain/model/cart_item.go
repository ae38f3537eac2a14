package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a cart. UnitPriceSnapshot is the price at the
// moment the product was added, insulated from later price changes.
// One line per (cart, product): adding the same product again merges
// quantity instead of creating a second line.
type CartItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID            int64           `gorm:"not null;index:idx_cart_product,unique" json:"cart_id"`
	ProductID         int64           `gorm:"not null;index:idx_cart_product,unique" json:"product_id"`
	Quantity          int64           `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	CreatedAt         time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPriceSnapshot.Mul(decimal.NewFromInt(i.Quantity))
}
