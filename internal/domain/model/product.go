package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID       int64            `gorm:"not null;index" json:"category_id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description"`
	Price            decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"price"`
	PromotionalPrice *decimal.Decimal `gorm:"type:numeric(10,2)" json:"promotional_price,omitempty"`
	Stock            int64            `gorm:"not null" json:"stock"`
	MinimumStock     int64            `gorm:"not null;default:0" json:"minimum_stock"`
	IsActive         bool             `gorm:"not null;default:false" json:"is_active"`
	IsFeatured       bool             `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt        time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

// CurrentPrice is the price a cart line snapshots at add time: the
// promotional price when it is set and lower than the base price.
func (p Product) CurrentPrice() decimal.Decimal {
	if p.PromotionalPrice != nil && p.PromotionalPrice.LessThan(p.Price) {
		return *p.PromotionalPrice
	}
	return p.Price
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) LowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinimumStock
}
