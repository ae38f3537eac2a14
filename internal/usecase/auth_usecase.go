package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"loja/internal/config"
	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 15 * time.Minute

type AuthUsecase struct {
	cfg       config.Config
	customers repo.CustomerRepository
	profiles  repo.ProfileRepository
}

func NewAuthUsecase(cfg config.Config, customers repo.CustomerRepository, profiles repo.ProfileRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, customers: customers, profiles: profiles}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CustomerDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `json:"is_active"`
}

type LoginOutput struct {
	Customer    CustomerDTO `json:"customer"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"`
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	customer, found, err := u.customers.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if !customer.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	_ = u.customers.UpdateLastLogin(ctx, customer.ID, time.Now())

	token, expiresIn, err := u.issueAccessToken(customer)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	dto, err := u.toCustomerDTO(ctx, customer)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoginOutput{
		Customer:    dto,
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, customerID int64) (CustomerDTO, error) {
	if customerID <= 0 {
		return CustomerDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	customer, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return CustomerDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !customer.IsActive {
		return CustomerDTO{}, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	dto, err := u.toCustomerDTO(ctx, customer)
	if err != nil {
		return CustomerDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return dto, nil
}

func (u *AuthUsecase) toCustomerDTO(ctx context.Context, c model.Customer) (CustomerDTO, error) {
	dto := CustomerDTO{
		ID:       c.ID,
		Email:    c.Email,
		Type:     string(c.Type),
		IsActive: c.IsActive,
	}

	profile, found, err := u.profiles.FindByCustomer(ctx, c)
	if err != nil {
		return CustomerDTO{}, err
	}
	if found {
		dto.Name = profile.DisplayName()
	}
	return dto, nil
}

func (u *AuthUsecase) issueAccessToken(c model.Customer) (string, int, error) {
	now := time.Now()
	exp := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  c.ID,
		"type": string(c.Type),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}

	return signed, int(accessTokenTTL.Seconds()), nil
}
