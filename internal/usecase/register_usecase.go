package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"loja/internal/domain/model"
	repo "loja/internal/repository"
	"loja/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUsecase creates the customer account and its PF or PJ profile
// in one transaction. All document fields run through the validators
// first; failures are collected and reported together.
type RegisterUsecase struct {
	tx repo.TransactionManager
}

func NewRegisterUsecase(tx repo.TransactionManager) *RegisterUsecase {
	return &RegisterUsecase{tx: tx}
}

type RegisterAddressInput struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

type RegisterInput struct {
	Type     string `json:"type"` // PF or PJ
	Email    string `json:"email"`
	Password string `json:"password"`

	// PF fields
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	RG        string `json:"rg"`

	// PJ fields
	CNPJ              string `json:"cnpj"`
	LegalName         string `json:"legal_name"`
	TradeName         string `json:"trade_name"`
	OpeningDate       string `json:"opening_date"` // YYYY-MM-DD
	StateRegistration string `json:"state_registration"`
	Website           string `json:"website"`

	PrimaryPhone   string               `json:"primary_phone"`
	SecondaryPhone string               `json:"secondary_phone"`
	Address        RegisterAddressInput `json:"address"`
}

type RegisterOutput struct {
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
	Type       string `json:"type"`
}

func (u *RegisterUsecase) Register(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	kind := model.CustomerType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if kind != model.CustomerTypeIndividual && kind != model.CustomerTypeBusiness {
		return RegisterOutput{}, NewHTTPError(http.StatusBadRequest, "type must be PF or PJ")
	}

	problems := u.validate(kind, in)
	if len(problems) > 0 {
		return RegisterOutput{}, NewHTTPError(http.StatusBadRequest, strings.Join(problems, "; "))
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	address := model.ProfileAddress{
		PostalCode: strings.TrimSpace(in.Address.PostalCode),
		Street:     strings.TrimSpace(in.Address.Street),
		Number:     strings.TrimSpace(in.Address.Number),
		Complement: strings.TrimSpace(in.Address.Complement),
		District:   strings.TrimSpace(in.Address.District),
		City:       strings.TrimSpace(in.Address.City),
		State:      strings.ToUpper(strings.TrimSpace(in.Address.State)),
		Country:    strings.TrimSpace(in.Address.Country),
	}

	var out RegisterOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		customer := model.Customer{
			Email:        email,
			PasswordHash: string(pwHash),
			Type:         kind,
			IsActive:     true,
		}
		if err := r.Customers().Create(ctx, &customer); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return NewHTTPError(http.StatusConflict, "email already registered")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch kind {
		case model.CustomerTypeIndividual:
			birth, _ := time.Parse("2006-01-02", in.BirthDate)
			doc, _, _ := validator.ParseTaxID(in.CPF)
			p := model.IndividualProfile{
				CustomerID:     customer.ID,
				Name:           strings.TrimSpace(in.Name),
				CPF:            doc.Digits,
				BirthDate:      birth,
				RG:             strings.TrimSpace(in.RG),
				Email:          email,
				PrimaryPhone:   strings.TrimSpace(in.PrimaryPhone),
				SecondaryPhone: strings.TrimSpace(in.SecondaryPhone),
				ProfileAddress: address,
			}
			if err := r.Profiles().CreateIndividual(ctx, &p); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return NewHTTPError(http.StatusConflict, "CPF already registered")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

		case model.CustomerTypeBusiness:
			opening, _ := time.Parse("2006-01-02", in.OpeningDate)
			doc, _, _ := validator.ParseTaxID(in.CNPJ)
			p := model.BusinessProfile{
				CustomerID:        customer.ID,
				CNPJ:              doc.Digits,
				LegalName:         strings.TrimSpace(in.LegalName),
				TradeName:         strings.TrimSpace(in.TradeName),
				OpeningDate:       opening,
				StateRegistration: strings.TrimSpace(in.StateRegistration),
				Email:             email,
				PrimaryPhone:      strings.TrimSpace(in.PrimaryPhone),
				SecondaryPhone:    strings.TrimSpace(in.SecondaryPhone),
				Website:           strings.TrimSpace(in.Website),
				ProfileAddress:    address,
			}
			if err := r.Profiles().CreateBusiness(ctx, &p); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return NewHTTPError(http.StatusConflict, "CNPJ already registered")
				}
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = RegisterOutput{
			CustomerID: customer.ID,
			Email:      email,
			Type:       string(kind),
		}
		return nil
	})

	if err != nil {
		return RegisterOutput{}, err
	}
	return out, nil
}

// validate collects every field problem so the caller sees them all at
// once instead of fixing one per request.
func (u *RegisterUsecase) validate(kind model.CustomerType, in RegisterInput) []string {
	var problems []string

	if ok, msg := validator.ValidateEmail(strings.TrimSpace(in.Email)); !ok {
		problems = append(problems, msg)
	}
	if len(in.Password) < 8 {
		problems = append(problems, "password must be at least 8 characters")
	}

	switch kind {
	case model.CustomerTypeIndividual:
		if strings.TrimSpace(in.Name) == "" {
			problems = append(problems, "name is required")
		}
		if ok, msg := validator.ValidateCPF(in.CPF); !ok {
			problems = append(problems, msg)
		}
		if ok, msg := validator.ValidatePastDate(in.BirthDate, "birth date"); !ok {
			problems = append(problems, msg)
		}

	case model.CustomerTypeBusiness:
		if strings.TrimSpace(in.LegalName) == "" {
			problems = append(problems, "legal name is required")
		}
		if ok, msg := validator.ValidateCNPJ(in.CNPJ); !ok {
			problems = append(problems, msg)
		}
		if ok, msg := validator.ValidatePastDate(in.OpeningDate, "opening date"); !ok {
			problems = append(problems, msg)
		}
	}

	if ok, msg := validator.ValidatePhone(in.PrimaryPhone); !ok {
		problems = append(problems, msg)
	}
	if in.SecondaryPhone != "" {
		if ok, msg := validator.ValidatePhone(in.SecondaryPhone); !ok {
			problems = append(problems, msg)
		}
	}
	if ok, msg := validator.ValidatePostalCode(in.Address.PostalCode); !ok {
		problems = append(problems, msg)
	}

	return problems
}
