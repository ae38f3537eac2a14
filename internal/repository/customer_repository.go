package repository

import (
	"context"
	"time"

	"loja/internal/domain/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, bool, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// ProfileRepository persists the PF/PJ profile attached to a customer.
// Lookups return an explicit found flag; a customer without a profile is
// a legal state, not an error.
type ProfileRepository interface {
	CreateIndividual(ctx context.Context, p *model.IndividualProfile) error
	CreateBusiness(ctx context.Context, p *model.BusinessProfile) error
	FindByCustomer(ctx context.Context, customer model.Customer) (model.Profile, bool, error)
}
