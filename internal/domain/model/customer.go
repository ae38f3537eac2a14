package model

import "time"

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "PF"
	CustomerTypeBusiness   CustomerType = "PJ"
)

// Customer is the login account. The tax profile (PF or PJ) lives in a
// separate table keyed by the customer id.
type Customer struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;not null" json:"-"`
	Type         CustomerType `gorm:"type:varchar(2);not null" json:"type"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
