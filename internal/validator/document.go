// Package validator holds the document and format validators used at
// registration time. Every validator is a pure function with the same
// contract: (valid bool, message string). Malformed input is a normal
// validation failure, never an error or panic.
package validator

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCPF checks an 11-digit individual tax id. Formatting
// punctuation (dots and hyphen) is stripped before checking.
func ValidateCPF(raw string) (bool, string) {
	digits := stripPunctuation(raw, ".-")

	if len(digits) != 11 {
		return false, "CPF must contain 11 digits"
	}
	if !allDigits(digits) {
		return false, "CPF must contain only numbers"
	}
	if allSame(digits) {
		return false, "invalid CPF (all digits identical)"
	}

	// First check digit: weights 10..2 over digits[0..8].
	if expectedDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false, "invalid CPF (check digit mismatch)"
	}
	// Second check digit: weights 11..2 over digits[0..9].
	if expectedDigit(digits[:10], 11) != int(digits[10]-'0') {
		return false, "invalid CPF (check digit mismatch)"
	}

	return true, "valid CPF"
}

// ValidateCNPJ checks a 14-digit business tax id. The check-digit weights
// cycle 2..9 from the rightmost digit of each prefix.
func ValidateCNPJ(raw string) (bool, string) {
	digits := stripPunctuation(raw, "./-")

	if len(digits) != 14 {
		return false, "CNPJ must contain 14 digits"
	}
	if !allDigits(digits) {
		return false, "CNPJ must contain only numbers"
	}
	if allSame(digits) {
		return false, "invalid CNPJ (all digits identical)"
	}

	if expectedDigitCyclic(digits[:12]) != int(digits[12]-'0') {
		return false, "invalid CNPJ (check digit mismatch)"
	}
	if expectedDigitCyclic(digits[:13]) != int(digits[13]-'0') {
		return false, "invalid CNPJ (check digit mismatch)"
	}

	return true, "valid CNPJ"
}

// ValidateEmail does a shape check only; deliverability is not our
// problem.
func ValidateEmail(raw string) (bool, string) {
	if !emailPattern.MatchString(raw) {
		return false, "invalid email"
	}
	return true, "valid email"
}

// ValidatePhone accepts 10 or 11 digits (landline or mobile with area
// code) after stripping the usual punctuation.
func ValidatePhone(raw string) (bool, string) {
	digits := stripPunctuation(raw, "()- ")

	if !allDigits(digits) || digits == "" {
		return false, "phone must contain only numbers"
	}
	if len(digits) < 10 || len(digits) > 11 {
		return false, "phone must have 10 or 11 digits"
	}
	return true, "valid phone"
}

// ValidatePostalCode checks a CEP: exactly 8 digits after stripping the
// optional hyphen.
func ValidatePostalCode(raw string) (bool, string) {
	digits := stripPunctuation(raw, "-")

	if !allDigits(digits) || digits == "" {
		return false, "postal code must contain only numbers"
	}
	if len(digits) != 8 {
		return false, "postal code must contain 8 digits"
	}
	return true, "valid postal code"
}

// ValidatePastDate parses a YYYY-MM-DD date that must be strictly before
// today. field names the date in the message ("birth date", etc).
func ValidatePastDate(raw string, field string) (bool, string) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return false, field + " is invalid"
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !d.Before(today) {
		return false, field + " cannot be in the future"
	}
	return true, field + " is valid"
}

type TaxIDKind string

const (
	TaxIDIndividual TaxIDKind = "CPF"
	TaxIDBusiness   TaxIDKind = "CNPJ"
)

// TaxID is a validated tax document: the bare digit string plus which
// kind it is. Digits never carries separators.
type TaxID struct {
	Kind   TaxIDKind
	Digits string
}

// ParseTaxID strips punctuation, picks CPF or CNPJ by digit count and
// validates. The returned message mirrors the underlying validator's.
func ParseTaxID(raw string) (TaxID, bool, string) {
	digits := stripPunctuation(raw, "./-")

	switch len(digits) {
	case 11:
		if ok, msg := ValidateCPF(digits); !ok {
			return TaxID{}, false, msg
		}
		return TaxID{Kind: TaxIDIndividual, Digits: digits}, true, "valid CPF"
	case 14:
		if ok, msg := ValidateCNPJ(digits); !ok {
			return TaxID{}, false, msg
		}
		return TaxID{Kind: TaxIDBusiness, Digits: digits}, true, "valid CNPJ"
	default:
		return TaxID{}, false, "tax id must contain 11 or 14 digits"
	}
}

// expectedDigit computes a modulo-11 check digit with descending weights
// starting at firstWeight over the given digit prefix.
func expectedDigit(digits string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// expectedDigitCyclic computes the CNPJ check digit: weights cycle
// 2,3,...,9 starting from the rightmost digit.
func expectedDigitCyclic(digits string) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func stripPunctuation(s string, cutset string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(cutset, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
