package billing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTransactionID mints the correlation id stored on a payment: 20
// uppercase hex chars, unique per call.
func NewTransactionID() string {
	sum := sha256.Sum256([]byte(time.Now().Format(time.RFC3339Nano) + uuid.NewString()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:20]
}
