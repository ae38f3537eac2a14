package usecase

import (
	"context"
	"net/http"
	"time"

	"loja/internal/billing"
	"loja/internal/domain/model"
	repo "loja/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutGateway is the external card processor. Only the session
// handshake and the webhook signature check cross this boundary.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, orderID int64, amount decimal.Decimal, customerEmail string) (sessionID string, err error)
	VerifyWebhook(body []byte, signature string) (WebhookEvent, error)
}

type WebhookEvent struct {
	Type          string
	SessionID     string
	TransactionID string
}

const webhookEventCheckoutCompleted = "checkout.completed"

type PaymentUsecase struct {
	tx       repo.TransactionManager
	payments repo.PaymentRepository
	gateway  CheckoutGateway
	boleto   *billing.BoletoGenerator
	pix      *billing.PixGenerator

	// percent discount applied to pix charges; zero disables it
	pixDiscountPercent decimal.Decimal

	newID func() string
	now   func() time.Time
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	payments repo.PaymentRepository,
	gateway CheckoutGateway,
	boleto *billing.BoletoGenerator,
	pix *billing.PixGenerator,
	pixDiscountPercent decimal.Decimal,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:                 tx,
		payments:           payments,
		gateway:            gateway,
		boleto:             boleto,
		pix:                pix,
		pixDiscountPercent: pixDiscountPercent,
		newID:              uuid.NewString,
		now:                time.Now,
	}
}

type BoletoOutput struct {
	Barcode      string          `json:"barcode"`
	TypeableLine string          `json:"typeable_line"`
	Number       string          `json:"number"`
	Bank         string          `json:"bank"`
	Agency       string          `json:"agency"`
	Account      string          `json:"account"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	PayerName    string          `json:"payer_name"`
}

type PixOutput struct {
	Payload        string          `json:"payload"`
	Key            string          `json:"key"`
	Amount         decimal.Decimal `json:"amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

type PaymentOutput struct {
	ID               string          `json:"id"`
	OrderID          int64           `json:"order_id"`
	Method           string          `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	GatewaySessionID string          `json:"gateway_session_id,omitempty"`
	TransactionID    string          `json:"transaction_id,omitempty"`
	Boleto           *BoletoOutput   `json:"boleto,omitempty"`
	Pix              *PixOutput      `json:"pix,omitempty"`
}

// StartPayment opens a payment attempt for an order. One active attempt
// per order; a new one is allowed only after the previous attempt was
// declined or canceled.
func (u *PaymentUsecase) StartPayment(ctx context.Context, customerID int64, orderID int64, method string) (PaymentOutput, error) {
	if customerID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	m := model.PaymentMethod(method)
	switch m {
	case model.PaymentMethodCard, model.PaymentMethodBoleto, model.PaymentMethodPix:
	default:
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.CustomerID != customerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if order.Paid {
			return NewHTTPError(http.StatusBadRequest, "order already paid")
		}

		if _, found, err := r.Payments().FindActiveByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else if found {
			return NewHTTPError(http.StatusConflict, "payment already in progress")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		amount := orderTotal(items)

		payment := model.Payment{
			ID:            u.newID(),
			OrderID:       orderID,
			CustomerID:    customerID,
			Method:        m,
			Amount:        amount,
			Status:        model.PaymentStatusPending,
			TransactionID: billing.NewTransactionID(),
		}

		out = PaymentOutput{
			ID:            payment.ID,
			OrderID:       orderID,
			Method:        string(m),
			TransactionID: payment.TransactionID,
		}

		switch m {
		case model.PaymentMethodCard:
			sessionID, err := u.gateway.CreateSession(ctx, orderID, amount, order.Email)
			if err != nil {
				return NewHTTPError(http.StatusBadGateway, "gateway error")
			}
			payment.GatewaySessionID = sessionID
			payment.Status = model.PaymentStatusProcessing
			out.GatewaySessionID = sessionID

		case model.PaymentMethodBoleto:
			b, err := u.issueBoleto(ctx, r, order, payment.ID, amount)
			if err != nil {
				return err
			}
			out.Boleto = b

		case model.PaymentMethodPix:
			p, err := u.issuePixCharge(ctx, r, order, &payment, amount)
			if err != nil {
				return err
			}
			out.Pix = p
		}

		if err := r.Payments().Create(ctx, &payment); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out.Amount = payment.Amount
		out.Status = string(payment.Status)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

func (u *PaymentUsecase) issueBoleto(ctx context.Context, r repo.TxRepos, order model.Order, paymentID string, amount decimal.Decimal) (*BoletoOutput, error) {
	payerName := order.FirstName + " " + order.LastName
	payerTaxID := ""

	customer, err := r.Customers().FindByID(ctx, order.CustomerID)
	if err == nil {
		if profile, found, err := r.Profiles().FindByCustomer(ctx, customer); err == nil && found {
			payerTaxID = profile.TaxID()
			if name := profile.DisplayName(); name != "" {
				payerName = name
			}
		}
	}

	numbers := u.boleto.Generate(order.ID)
	due := u.boleto.DueDate(u.now())

	b := model.Boleto{
		ID:           u.newID(),
		PaymentID:    paymentID,
		OrderID:      order.ID,
		Barcode:      numbers.Barcode,
		TypeableLine: numbers.TypeableLine,
		Number:       numbers.Number,
		Bank:         u.boleto.BankName(),
		Agency:       u.boleto.Agency(),
		Account:      u.boleto.Account(),
		Amount:       amount,
		DueDate:      due,
		Status:       model.BoletoStatusIssued,
		PayerName:    payerName,
		PayerTaxID:   payerTaxID,
	}

	if err := r.Boletos().Create(ctx, &b); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &BoletoOutput{
		Barcode:      b.Barcode,
		TypeableLine: b.TypeableLine,
		Number:       b.Number,
		Bank:         b.Bank,
		Agency:       b.Agency,
		Account:      b.Account,
		Amount:       b.Amount,
		DueDate:      b.DueDate,
		PayerName:    b.PayerName,
	}, nil
}

func (u *PaymentUsecase) issuePixCharge(ctx context.Context, r repo.TxRepos, order model.Order, payment *model.Payment, amount decimal.Decimal) (*PixOutput, error) {
	discount := decimal.Zero
	if u.pixDiscountPercent.IsPositive() {
		discount = amount.Mul(u.pixDiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
	}
	finalAmount := amount.Sub(discount)

	key := u.pix.Key()
	payload := u.pix.Payload(key, finalAmount, payment.TransactionID)

	charge := model.PixCharge{
		ID:             u.newID(),
		PaymentID:      payment.ID,
		OrderID:        order.ID,
		Payload:        payload,
		Key:            key,
		Amount:         amount,
		DiscountAmount: discount,
		FinalAmount:    finalAmount,
		Status:         model.PixStatusPending,
		ExpiresAt:      u.pix.ExpiresAt(u.now()),
	}

	if err := r.PixCharges().Create(ctx, &charge); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// the payment collects the discounted amount
	payment.Amount = finalAmount

	return &PixOutput{
		Payload:        charge.Payload,
		Key:            charge.Key,
		Amount:         charge.Amount,
		DiscountAmount: charge.DiscountAmount,
		FinalAmount:    charge.FinalAmount,
		ExpiresAt:      charge.ExpiresAt,
	}, nil
}

// ConfirmPayment settles an attempt. It is idempotent: the paid-flag
// check, the flip, and the stock decrement all happen under a row lock
// on the order, and a second confirmation of an already paid order is
// absorbed without touching stock again.
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, paymentID string, gatewayRef string) error {
	if paymentID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		payment, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order, err := r.Orders().FindByIDForUpdate(ctx, payment.OrderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// duplicate delivery: already settled, nothing more to do
		if order.Paid || payment.Status == model.PaymentStatusApproved {
			return nil
		}
		if payment.Status == model.PaymentStatusCanceled || payment.Status == model.PaymentStatusDeclined {
			return NewHTTPError(http.StatusConflict, "payment is not active")
		}

		if err := r.Orders().MarkPaid(ctx, order.ID, gatewayRef); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Payments().MarkApproved(ctx, payment.ID, u.now()); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderID := order.ID
		for _, it := range items {
			if _, err := r.Inventory().DecrementStockClamped(ctx, it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			adj := model.InventoryAdjustment{
				ProductID: it.ProductID,
				OrderID:   &orderID,
				Delta:     -it.Quantity,
				Reason:    "order paid",
			}
			if err := r.Inventory().CreateAdjustment(ctx, adj); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		switch payment.Method {
		case model.PaymentMethodBoleto:
			if b, err := r.Boletos().FindByPaymentID(ctx, payment.ID); err == nil {
				if err := r.Boletos().UpdateStatus(ctx, b.ID, model.BoletoStatusPaid); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		case model.PaymentMethodPix:
			if charge, err := r.PixCharges().FindByPaymentID(ctx, payment.ID); err == nil {
				if err := r.PixCharges().UpdateStatus(ctx, charge.ID, model.PixStatusReceived); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		return nil
	})
}

// ConfirmBySessionID funnels the card completion flow (webhook or
// redirect) into ConfirmPayment.
func (u *PaymentUsecase) ConfirmBySessionID(ctx context.Context, sessionID string, transactionRef string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	payment, found, err := u.payments.FindBySessionID(ctx, sessionID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.ConfirmPayment(ctx, payment.ID, transactionRef)
}

// HandleWebhook verifies the gateway signature and settles the session
// the event refers to. At-least-once delivery is expected; duplicates
// fall through ConfirmPayment's idempotency.
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	event, err := u.gateway.VerifyWebhook(body, signature)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	if event.Type != webhookEventCheckoutCompleted {
		return nil
	}

	return u.ConfirmBySessionID(ctx, event.SessionID, event.TransactionID)
}

// CancelPayment voids an active attempt. Stock is untouched and the
// order stays payable through a new attempt.
func (u *PaymentUsecase) CancelPayment(ctx context.Context, customerID int64, paymentID string) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		payment, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if payment.CustomerID != customerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		switch payment.Status {
		case model.PaymentStatusApproved:
			return NewHTTPError(http.StatusBadRequest, "payment already approved")
		case model.PaymentStatusCanceled:
			return nil
		}

		if err := r.Payments().UpdateStatus(ctx, payment.ID, model.PaymentStatusCanceled, ""); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch payment.Method {
		case model.PaymentMethodBoleto:
			if b, err := r.Boletos().FindByPaymentID(ctx, payment.ID); err == nil {
				if err := r.Boletos().UpdateStatus(ctx, b.ID, model.BoletoStatusCanceled); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		case model.PaymentMethodPix:
			if charge, err := r.PixCharges().FindByPaymentID(ctx, payment.ID); err == nil {
				if err := r.PixCharges().UpdateStatus(ctx, charge.ID, model.PixStatusCanceled); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		return nil
	})
}

// GetPayment returns one attempt with its boleto or pix artifacts.
func (u *PaymentUsecase) GetPayment(ctx context.Context, customerID int64, paymentID string) (PaymentOutput, error) {
	if customerID <= 0 {
		return PaymentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if paymentID == "" {
		return PaymentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		payment, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if payment.CustomerID != customerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		out = PaymentOutput{
			ID:               payment.ID,
			OrderID:          payment.OrderID,
			Method:           string(payment.Method),
			Amount:           payment.Amount,
			Status:           string(payment.Status),
			GatewaySessionID: payment.GatewaySessionID,
			TransactionID:    payment.TransactionID,
		}

		switch payment.Method {
		case model.PaymentMethodBoleto:
			if b, err := r.Boletos().FindByPaymentID(ctx, payment.ID); err == nil {
				out.Boleto = &BoletoOutput{
					Barcode:      b.Barcode,
					TypeableLine: b.TypeableLine,
					Number:       b.Number,
					Bank:         b.Bank,
					Agency:       b.Agency,
					Account:      b.Account,
					Amount:       b.Amount,
					DueDate:      b.DueDate,
					PayerName:    b.PayerName,
				}
			}
		case model.PaymentMethodPix:
			if charge, err := r.PixCharges().FindByPaymentID(ctx, payment.ID); err == nil {
				out.Pix = &PixOutput{
					Payload:        charge.Payload,
					Key:            charge.Key,
					Amount:         charge.Amount,
					DiscountAmount: charge.DiscountAmount,
					FinalAmount:    charge.FinalAmount,
					ExpiresAt:      charge.ExpiresAt,
				}
			}
		}

		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}
