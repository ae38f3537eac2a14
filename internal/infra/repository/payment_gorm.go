package repository

import (
	"context"
	"errors"
	"time"

	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) FindActiveByOrderID(ctx context.Context, orderID int64) (model.Payment, bool, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID,
			[]model.PaymentStatus{model.PaymentStatusPending, model.PaymentStatusProcessing}).
		Order("created_at desc").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentGormRepository) FindBySessionID(ctx context.Context, sessionID string) (model.Payment, bool, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Where("gateway_session_id = ?", sessionID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, false, nil
	}
	if err != nil {
		return model.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentGormRepository) UpdateStatus(ctx context.Context, id string, status model.PaymentStatus, errorMessage string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errorMessage,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaymentGormRepository) MarkApproved(ctx context.Context, id string, paidAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.PaymentStatusApproved,
			"paid_at": paidAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type BoletoGormRepository struct {
	db *gorm.DB
}

func NewBoletoGormRepository(db *gorm.DB) *BoletoGormRepository {
	return &BoletoGormRepository{db: db}
}

func (r *BoletoGormRepository) Create(ctx context.Context, b *model.Boleto) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BoletoGormRepository) FindByID(ctx context.Context, id string) (model.Boleto, error) {
	var b model.Boleto
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Boleto{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Boleto{}, err
	}
	return b, nil
}

func (r *BoletoGormRepository) FindByPaymentID(ctx context.Context, paymentID string) (model.Boleto, error) {
	var b model.Boleto
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Boleto{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Boleto{}, err
	}
	return b, nil
}

func (r *BoletoGormRepository) UpdateStatus(ctx context.Context, id string, status model.BoletoStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Boleto{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type PixChargeGormRepository struct {
	db *gorm.DB
}

func NewPixChargeGormRepository(db *gorm.DB) *PixChargeGormRepository {
	return &PixChargeGormRepository{db: db}
}

func (r *PixChargeGormRepository) Create(ctx context.Context, p *model.PixCharge) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PixChargeGormRepository) FindByPaymentID(ctx context.Context, paymentID string) (model.PixCharge, error) {
	var p model.PixCharge
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PixCharge{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PixCharge{}, err
	}
	return p, nil
}

func (r *PixChargeGormRepository) UpdateStatus(ctx context.Context, id string, status model.PixStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.PixCharge{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
