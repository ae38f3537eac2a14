package model

import "time"

// Postal address fields shared by both profile kinds.
type ProfileAddress struct {
	PostalCode string `gorm:"type:varchar(9);not null" json:"postal_code"`
	Street     string `gorm:"type:varchar(150);not null" json:"street"`
	Number     string `gorm:"type:varchar(10);not null" json:"number"`
	Complement string `gorm:"type:varchar(50)" json:"complement,omitempty"`
	District   string `gorm:"type:varchar(80);not null" json:"district"`
	City       string `gorm:"type:varchar(100);not null" json:"city"`
	State      string `gorm:"type:varchar(2);not null" json:"state"`
	Country    string `gorm:"type:varchar(50);not null" json:"country"`
}

// IndividualProfile holds the PF (pessoa física) data. CPF is stored as
// the bare 11-digit string after validation.
type IndividualProfile struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID     int64      `gorm:"not null;uniqueIndex" json:"customer_id"`
	Name           string     `gorm:"type:varchar(150);not null" json:"name"`
	CPF            string     `gorm:"type:varchar(11);uniqueIndex;not null" json:"cpf"`
	BirthDate      time.Time  `gorm:"not null" json:"birth_date"`
	RG             string     `gorm:"type:varchar(20)" json:"rg,omitempty"`
	Email          string     `gorm:"type:varchar(50);not null" json:"email"`
	PrimaryPhone   string     `gorm:"type:varchar(15);not null" json:"primary_phone"`
	SecondaryPhone string     `gorm:"type:varchar(15)" json:"secondary_phone,omitempty"`
	ProfileAddress `gorm:"embedded"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// BusinessProfile holds the PJ (pessoa jurídica) data. CNPJ is stored as
// the bare 14-digit string after validation.
type BusinessProfile struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID        int64      `gorm:"not null;uniqueIndex" json:"customer_id"`
	CNPJ              string     `gorm:"type:varchar(14);uniqueIndex;not null" json:"cnpj"`
	LegalName         string     `gorm:"type:varchar(150);not null" json:"legal_name"`
	TradeName         string     `gorm:"type:varchar(150)" json:"trade_name,omitempty"`
	OpeningDate       time.Time  `gorm:"not null" json:"opening_date"`
	StateRegistration string     `gorm:"type:varchar(20)" json:"state_registration,omitempty"`
	Email             string     `gorm:"type:varchar(50);not null" json:"email"`
	PrimaryPhone      string     `gorm:"type:varchar(15);not null" json:"primary_phone"`
	SecondaryPhone    string     `gorm:"type:varchar(15)" json:"secondary_phone,omitempty"`
	Website           string     `gorm:"type:varchar(300)" json:"website,omitempty"`
	ProfileAddress    `gorm:"embedded"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Profile is the tagged union resolved once at account lookup: exactly one
// of Individual/Business is set, matching Kind.
type Profile struct {
	Kind       CustomerType
	Individual *IndividualProfile
	Business   *BusinessProfile
}

// TaxID returns the bare digit string of whichever document the profile
// carries, for boleto payer data.
func (p Profile) TaxID() string {
	switch p.Kind {
	case CustomerTypeIndividual:
		if p.Individual != nil {
			return p.Individual.CPF
		}
	case CustomerTypeBusiness:
		if p.Business != nil {
			return p.Business.CNPJ
		}
	}
	return ""
}

// DisplayName returns the person name or the legal name.
func (p Profile) DisplayName() string {
	switch p.Kind {
	case CustomerTypeIndividual:
		if p.Individual != nil {
			return p.Individual.Name
		}
	case CustomerTypeBusiness:
		if p.Business != nil {
			return p.Business.LegalName
		}
	}
	return ""
}
