package model

import "time"

// Order is the immutable snapshot a cart turns into at checkout. Buyer
// contact and address are copied in; lines live in order_items. Paid
// flips true exactly once, when a payment attempt is approved.
type Order struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     int64     `gorm:"not null;index" json:"customer_id"`
	FirstName      string    `gorm:"type:varchar(60);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(60);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(254);not null" json:"email"`
	Address        string    `gorm:"type:varchar(250);not null" json:"address"`
	PostalCode     string    `gorm:"type:varchar(20);not null" json:"postal_code"`
	City           string    `gorm:"type:varchar(100);not null" json:"city"`
	Paid           bool      `gorm:"not null;default:false" json:"paid"`
	GatewayRef     string    `gorm:"type:varchar(255)" json:"gateway_ref,omitempty"`
	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
