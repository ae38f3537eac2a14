package repository

import (
	"context"
	"time"

	"loja/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	// The single pending/processing attempt for an order, when one exists.
	FindActiveByOrderID(ctx context.Context, orderID int64) (model.Payment, bool, error)
	FindBySessionID(ctx context.Context, sessionID string) (model.Payment, bool, error)
	UpdateStatus(ctx context.Context, id string, status model.PaymentStatus, errorMessage string) error
	MarkApproved(ctx context.Context, id string, paidAt time.Time) error
}

type BoletoRepository interface {
	Create(ctx context.Context, b *model.Boleto) error
	FindByID(ctx context.Context, id string) (model.Boleto, error)
	FindByPaymentID(ctx context.Context, paymentID string) (model.Boleto, error)
	UpdateStatus(ctx context.Context, id string, status model.BoletoStatus) error
}

type PixChargeRepository interface {
	Create(ctx context.Context, p *model.PixCharge) error
	FindByPaymentID(ctx context.Context, paymentID string) (model.PixCharge, error)
	UpdateStatus(ctx context.Context, id string, status model.PixStatus) error
}
