package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PixConfig describes the receiving side of every PIX charge.
type PixConfig struct {
	Key          string // static receiving key; empty means a random key per charge
	MerchantName string
	MerchantCity string
	Expiry       time.Duration
}

type PixGenerator struct {
	cfg PixConfig
}

func NewPixGenerator(cfg PixConfig) *PixGenerator {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 15 * time.Minute
	}
	if cfg.MerchantName == "" {
		cfg.MerchantName = "LOJA"
	}
	if cfg.MerchantCity == "" {
		cfg.MerchantCity = "SAO PAULO"
	}
	return &PixGenerator{cfg: cfg}
}

// Key returns the configured receiving key, or a fresh random (uuid)
// key when none is configured.
func (g *PixGenerator) Key() string {
	if g.cfg.Key != "" {
		return g.cfg.Key
	}
	return uuid.NewString()
}

// Payload assembles the EMV-style TLV string a PIX QR code encodes. The
// amount is always rendered with two fraction digits.
func (g *PixGenerator) Payload(key string, amount decimal.Decimal, txid string) string {
	if txid == "" {
		txid = "***"
	}

	merchantAccount := tlv("00", "br.gov.bcb.pix") + tlv("01", key)

	var b strings.Builder
	b.WriteString(tlv("00", "01"))              // payload format indicator
	b.WriteString(tlv("26", merchantAccount))   // merchant account info
	b.WriteString(tlv("52", "0000"))            // merchant category code
	b.WriteString(tlv("53", "986"))             // currency BRL
	b.WriteString(tlv("54", amount.StringFixed(2)))
	b.WriteString(tlv("58", "BR"))
	b.WriteString(tlv("59", g.cfg.MerchantName))
	b.WriteString(tlv("60", g.cfg.MerchantCity))
	b.WriteString(tlv("62", tlv("05", txid)))
	b.WriteString("6304") // CRC tag + length, value appended below

	payload := b.String()
	return payload + fmt.Sprintf("%04X", crc16(payload))
}

// ExpiresAt is now plus the configured charge lifetime.
func (g *PixGenerator) ExpiresAt(now time.Time) time.Time {
	return now.Add(g.cfg.Expiry)
}

// AmountField extracts the transaction amount (tag 54) back out of a
// payload. Used to check a charge against what its QR encodes.
func AmountField(payload string) (string, bool) {
	for i := 0; i+4 <= len(payload); {
		tag := payload[i : i+2]
		length := 0
		if _, err := fmt.Sscanf(payload[i+2:i+4], "%02d", &length); err != nil {
			return "", false
		}
		if i+4+length > len(payload) {
			return "", false
		}
		if tag == "54" {
			return payload[i+4 : i+4+length], true
		}
		i += 4 + length
	}
	return "", false
}

func tlv(tag string, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// crc16 is CRC-16/CCITT-FALSE, the checksum PIX payloads end with.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for b := 0; b < 8; b++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
