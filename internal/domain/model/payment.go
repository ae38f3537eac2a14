package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodBoleto PaymentMethod = "boleto"
	PaymentMethodPix    PaymentMethod = "pix"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusApproved   PaymentStatus = "APPROVED"
	PaymentStatusDeclined   PaymentStatus = "DECLINED"
	PaymentStatusCanceled   PaymentStatus = "CANCELED"
)

// Payment is one attempt to pay an order. At most one attempt is active
// (pending/processing) per order; approved is terminal.
type Payment struct {
	ID               string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID          int64           `gorm:"not null;index" json:"order_id"`
	CustomerID       int64           `gorm:"not null;index" json:"customer_id"`
	Method           PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status           PaymentStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	GatewaySessionID string          `gorm:"type:varchar(255)" json:"gateway_session_id,omitempty"`
	TransactionID    string          `gorm:"type:varchar(255);uniqueIndex" json:"transaction_id,omitempty"`
	ErrorMessage     string          `gorm:"type:text" json:"error_message,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (p Payment) IsActive() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusProcessing
}

type BoletoStatus string

const (
	BoletoStatusIssued   BoletoStatus = "ISSUED"
	BoletoStatusPaid     BoletoStatus = "PAID"
	BoletoStatusExpired  BoletoStatus = "EXPIRED"
	BoletoStatusCanceled BoletoStatus = "CANCELED"
)

// Boleto stores the generated bank-slip numbers for a boleto payment.
// The barcode/line are display strings, not a verified banking format.
type Boleto struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID    string          `gorm:"type:uuid;not null;uniqueIndex" json:"payment_id"`
	OrderID      int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	Barcode      string          `gorm:"type:varchar(47);uniqueIndex;not null" json:"barcode"`
	TypeableLine string          `gorm:"type:varchar(54);uniqueIndex;not null" json:"typeable_line"`
	Number       string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	Bank         string          `gorm:"type:varchar(50);not null" json:"bank"`
	Agency       string          `gorm:"type:varchar(10);not null" json:"agency"`
	Account      string          `gorm:"type:varchar(20);not null" json:"account"`
	Amount       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	DueDate      time.Time       `gorm:"not null" json:"due_date"`
	Status       BoletoStatus    `gorm:"type:varchar(20);not null" json:"status"`
	PayerName    string          `gorm:"type:varchar(255);not null" json:"payer_name"`
	PayerTaxID   string          `gorm:"type:varchar(20)" json:"payer_tax_id,omitempty"`
	IssuedAt     time.Time       `gorm:"not null;autoCreateTime" json:"issued_at"`
}

type PixStatus string

const (
	PixStatusPending  PixStatus = "PENDING"
	PixStatusReceived PixStatus = "RECEIVED"
	PixStatusExpired  PixStatus = "EXPIRED"
	PixStatusCanceled PixStatus = "CANCELED"
)

// PixCharge stores the generated PIX payload for a pix payment.
type PixCharge struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	PaymentID      string          `gorm:"type:uuid;not null;uniqueIndex" json:"payment_id"`
	OrderID        int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	Payload        string          `gorm:"type:text;not null" json:"payload"`
	Key            string          `gorm:"type:varchar(255);not null" json:"key"`
	Amount         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"final_amount"`
	Status         PixStatus       `gorm:"type:varchar(20);not null" json:"status"`
	ExpiresAt      time.Time       `gorm:"not null" json:"expires_at"`
	ReceivedAt     *time.Time      `json:"received_at,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (p PixCharge) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
