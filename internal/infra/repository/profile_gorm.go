package repository

import (
	"context"
	"errors"

	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"gorm.io/gorm"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) CreateIndividual(ctx context.Context, p *model.IndividualProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProfileGormRepository) CreateBusiness(ctx context.Context, p *model.BusinessProfile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByCustomer resolves the tagged union once, by the customer's type.
// A missing profile row is reported through the found flag.
func (r *ProfileGormRepository) FindByCustomer(ctx context.Context, customer model.Customer) (model.Profile, bool, error) {
	switch customer.Type {
	case model.CustomerTypeIndividual:
		var p model.IndividualProfile
		err := r.db.WithContext(ctx).Where("customer_id = ?", customer.ID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Profile{}, false, nil
		}
		if err != nil {
			return model.Profile{}, false, err
		}
		return model.Profile{Kind: model.CustomerTypeIndividual, Individual: &p}, true, nil

	case model.CustomerTypeBusiness:
		var p model.BusinessProfile
		err := r.db.WithContext(ctx).Where("customer_id = ?", customer.ID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Profile{}, false, nil
		}
		if err != nil {
			return model.Profile{}, false, err
		}
		return model.Profile{Kind: model.CustomerTypeBusiness, Business: &p}, true, nil

	default:
		return model.Profile{}, false, nil
	}
}
