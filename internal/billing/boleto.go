// Package billing generates the display artifacts for boleto and PIX
// payments: bank-slip numbers, PIX payloads and transaction ids. The
// output is display formatting, not a bank-validated wire format; the
// only guarantee is that formatted strings strip back to the digits they
// were built from.
package billing

import (
	"fmt"
	"strings"
	"time"
)

// BoletoConfig carries the issuing bank data printed on every slip.
type BoletoConfig struct {
	BankCode string // 3 digits
	BankName string
	Agency   string // 4 digits
	Account  string // 11 digits
	DueDays  int
}

// BoletoNumbers is the generated barcode/line/number triple.
type BoletoNumbers struct {
	Barcode      string
	TypeableLine string
	Number       string
}

type BoletoGenerator struct {
	cfg BoletoConfig
}

func NewBoletoGenerator(cfg BoletoConfig) *BoletoGenerator {
	if cfg.DueDays <= 0 {
		cfg.DueDays = 7
	}
	return &BoletoGenerator{cfg: cfg}
}

// Generate builds the slip numbers for a sequential boleto number.
// Barcode layout: bank(3) + check digit(1) + filler(5) + agency(4) +
// account(11) + sequential(8).
func (g *BoletoGenerator) Generate(sequential int64) BoletoNumbers {
	number := fmt.Sprintf("%08d", sequential)

	dv := checkDigitMod11(g.cfg.BankCode + g.cfg.Agency + g.cfg.Account + number)

	barcode := g.cfg.BankCode + dv + "00000" + g.cfg.Agency + g.cfg.Account + number

	// Typeable line fields mirror slices of the barcode data.
	field1 := g.cfg.BankCode + "." + g.cfg.Agency + g.cfg.Account[0:2]
	field2 := g.cfg.Account[2:7] + "." + number[0:4]
	field3 := number[4:8] + "." + g.cfg.BankCode

	return BoletoNumbers{
		Barcode:      barcode,
		TypeableLine: field1 + " " + field2 + " " + field3,
		Number:       g.cfg.BankCode + "." + number + "." + g.cfg.Agency,
	}
}

// DueDate is now plus the configured number of days.
func (g *BoletoGenerator) DueDate(now time.Time) time.Time {
	return now.AddDate(0, 0, g.cfg.DueDays)
}

func (g *BoletoGenerator) BankName() string { return g.cfg.BankName }
func (g *BoletoGenerator) Agency() string   { return g.cfg.Agency }
func (g *BoletoGenerator) Account() string  { return g.cfg.Account }

// FormatBarcode groups the barcode digits for display. Stripping the
// punctuation recovers the original barcode.
func FormatBarcode(code string) string {
	var groups []string
	for i := 0; i < len(code); i += 5 {
		end := i + 5
		if end > len(code) {
			end = len(code)
		}
		groups = append(groups, code[i:end])
	}
	return strings.Join(groups, ".")
}

// StripFormatting removes the display punctuation from a barcode or
// typeable line, leaving only digits.
func StripFormatting(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkDigitMod11 is the slip check digit: weights 2,3,4,... from the
// rightmost digit, remainder mod 11 mapped to a single digit.
func checkDigitMod11(digits string) string {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
	}
	switch r := sum % 11; r {
	case 0:
		return "0"
	case 1:
		return "1"
	default:
		return fmt.Sprintf("%d", 11-r)
	}
}
