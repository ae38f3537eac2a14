package usecase_test

import (
	"context"
	"testing"

	"loja/internal/billing"
	"loja/internal/domain/model"
	"loja/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPaymentUsecase(repos *txReposStub) (*usecase.PaymentUsecase, *PaymentRepoMock, *GatewayMock) {
	payments := new(PaymentRepoMock)
	gw := new(GatewayMock)

	boletoGen := billing.NewBoletoGenerator(billing.BoletoConfig{
		BankCode: "001",
		BankName: "Banco do Brasil",
		Agency:   "0001",
		Account:  "00123456789",
		DueDays:  7,
	})
	pixGen := billing.NewPixGenerator(billing.PixConfig{
		Key:          "loja@example.com",
		MerchantName: "LOJA",
		MerchantCity: "SAO PAULO",
	})

	uc := usecase.NewPaymentUsecase(&txManagerStub{repos: repos}, payments, gw, boletoGen, pixGen, decimal.Zero)
	return uc, payments, gw
}

func TestPaymentUsecase_ConfirmPayment_DoubleConfirmDecrementsOnce(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	payment := model.Payment{
		ID:         "pay-1",
		OrderID:    42,
		CustomerID: 1,
		Method:     model.PaymentMethodCard,
		Status:     model.PaymentStatusProcessing,
	}
	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(payment, nil)

	// first confirmation sees the order unpaid, the second sees it paid
	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1, Paid: false}, nil).Once()
	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1, Paid: true}, nil)

	repos.orders.On("MarkPaid", mock.Anything, int64(42), "tx-abc").Return(nil)
	repos.payments.On("MarkApproved", mock.Anything, "pay-1", mock.Anything).Return(nil)

	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, Quantity: 2, UnitPriceSnapshot: mustDecimal(t, "10.00")},
	}, nil)

	repos.inventory.On("DecrementStockClamped", mock.Anything, int64(7), int64(2)).Return(int64(3), nil)
	repos.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(adj model.InventoryAdjustment) bool {
		return adj.ProductID == 7 && adj.Delta == -2 && adj.OrderID != nil && *adj.OrderID == 42
	})).Return(nil)

	assert.NoError(t, uc.ConfirmPayment(ctx, "pay-1", "tx-abc"))
	assert.NoError(t, uc.ConfirmPayment(ctx, "pay-1", "tx-abc"))

	repos.inventory.AssertNumberOfCalls(t, "DecrementStockClamped", 1)
	repos.orders.AssertNumberOfCalls(t, "MarkPaid", 1)
	repos.payments.AssertNumberOfCalls(t, "MarkApproved", 1)
}

func TestPaymentUsecase_ConfirmPayment_StockClampsAtZero(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(model.Payment{
		ID: "pay-1", OrderID: 42, CustomerID: 1,
		Method: model.PaymentMethodCard, Status: model.PaymentStatusProcessing,
	}, nil)
	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1}, nil)
	repos.orders.On("MarkPaid", mock.Anything, int64(42), "").Return(nil)
	repos.payments.On("MarkApproved", mock.Anything, "pay-1", mock.Anything).Return(nil)

	// the order oversold: 5 wanted, the repository clamps at zero
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, Quantity: 5, UnitPriceSnapshot: mustDecimal(t, "10.00")},
	}, nil)
	repos.inventory.On("DecrementStockClamped", mock.Anything, int64(7), int64(5)).Return(int64(0), nil)
	repos.inventory.On("CreateAdjustment", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, uc.ConfirmPayment(ctx, "pay-1", ""))

	repos.inventory.AssertExpectations(t)
}

func TestPaymentUsecase_ConfirmPayment_CanceledAttemptRejected(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(model.Payment{
		ID: "pay-1", OrderID: 42, Method: model.PaymentMethodCard,
		Status: model.PaymentStatusCanceled,
	}, nil)
	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, Paid: false}, nil)

	err := uc.ConfirmPayment(ctx, "pay-1", "")
	assertErrContains(t, err, "not active")

	repos.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CancelPayment_OrderStaysPayable(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(model.Payment{
		ID: "pay-1", OrderID: 42, CustomerID: 1,
		Method: model.PaymentMethodCard, Status: model.PaymentStatusProcessing,
	}, nil)
	repos.payments.On("UpdateStatus", mock.Anything, "pay-1", model.PaymentStatusCanceled, "").Return(nil)

	assert.NoError(t, uc.CancelPayment(ctx, 1, "pay-1"))

	repos.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	repos.inventory.AssertNotCalled(t, "DecrementStockClamped", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CancelPayment_ApprovedCannotBeCanceled(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(model.Payment{
		ID: "pay-1", OrderID: 42, CustomerID: 1,
		Method: model.PaymentMethodCard, Status: model.PaymentStatusApproved,
	}, nil)

	err := uc.CancelPayment(ctx, 1, "pay-1")
	assertErrContains(t, err, "already approved")
}

func TestPaymentUsecase_StartPayment_Boleto(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, CustomerID: 1, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com",
	}, nil)
	repos.payments.On("FindActiveByOrderID", mock.Anything, int64(42)).
		Return(model.Payment{}, false, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, Quantity: 2, UnitPriceSnapshot: mustDecimal(t, "10.00")},
		{OrderID: 42, ProductID: 8, Quantity: 1, UnitPriceSnapshot: mustDecimal(t, "5.00")},
	}, nil)

	repos.customers.On("FindByID", mock.Anything, int64(1)).
		Return(model.Customer{ID: 1, Type: model.CustomerTypeIndividual}, nil)
	repos.profiles.On("FindByCustomer", mock.Anything, mock.Anything).Return(model.Profile{
		Kind:       model.CustomerTypeIndividual,
		Individual: &model.IndividualProfile{Name: "Ana Maria Silva", CPF: "11144477735"},
	}, true, nil)

	repos.boletos.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Boleto) bool {
		return b.OrderID == 42 && b.PayerName == "Ana Maria Silva" && b.PayerTaxID == "11144477735" &&
			b.Status == model.BoletoStatusIssued && b.Amount.Equal(mustDecimal(t, "25.00"))
	})).Return(nil)
	repos.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
		return p.OrderID == 42 && p.Method == model.PaymentMethodBoleto &&
			p.Status == model.PaymentStatusPending && p.Amount.Equal(mustDecimal(t, "25.00"))
	})).Return(nil)

	out, err := uc.StartPayment(ctx, 1, 42, "boleto")
	assert.NoError(t, err)
	assert.NotNil(t, out.Boleto)
	assert.Equal(t, "001", out.Boleto.Barcode[:3])

	// the typeable line strips back to digits, bank code first
	stripped := billing.StripFormatting(out.Boleto.TypeableLine)
	assert.Equal(t, "001", stripped[:3])

	repos.boletos.AssertExpectations(t)
	repos.payments.AssertExpectations(t)
}

func TestPaymentUsecase_StartPayment_Pix_PayloadEmbedsAmount(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).Return(model.Order{
		ID: 42, CustomerID: 1, Email: "ana@example.com",
	}, nil)
	repos.payments.On("FindActiveByOrderID", mock.Anything, int64(42)).
		Return(model.Payment{}, false, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, Quantity: 2, UnitPriceSnapshot: mustDecimal(t, "10.00")},
		{OrderID: 42, ProductID: 8, Quantity: 1, UnitPriceSnapshot: mustDecimal(t, "5.00")},
	}, nil)
	repos.pixCharges.On("Create", mock.Anything, mock.MatchedBy(func(p *model.PixCharge) bool {
		return p.OrderID == 42 && p.Status == model.PixStatusPending &&
			p.FinalAmount.Equal(mustDecimal(t, "25.00"))
	})).Return(nil)
	repos.payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := uc.StartPayment(ctx, 1, 42, "pix")
	assert.NoError(t, err)
	assert.NotNil(t, out.Pix)

	got, ok := billing.AmountField(out.Pix.Payload)
	assert.True(t, ok)
	assert.Equal(t, "25.00", got)
}

func TestPaymentUsecase_StartPayment_SecondActiveAttemptRejected(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1}, nil)
	repos.payments.On("FindActiveByOrderID", mock.Anything, int64(42)).
		Return(model.Payment{ID: "pay-0", Status: model.PaymentStatusPending}, true, nil)

	_, err := uc.StartPayment(ctx, 1, 42, "pix")
	assertErrContains(t, err, "already in progress")
}

func TestPaymentUsecase_StartPayment_PaidOrderRejected(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, _ := newPaymentUsecase(repos)

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1, Paid: true}, nil)

	_, err := uc.StartPayment(ctx, 1, 42, "card")
	assertErrContains(t, err, "already paid")
}

func TestPaymentUsecase_HandleWebhook_BadSignature(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, _, gw := newPaymentUsecase(repos)

	gw.On("VerifyWebhook", []byte(`{}`), "bad").
		Return(usecase.WebhookEvent{}, assert.AnError)

	err := uc.HandleWebhook(ctx, []byte(`{}`), "bad")
	assertErrContains(t, err, "invalid signature")
}

func TestPaymentUsecase_HandleWebhook_DuplicateDeliveryDecrementsOnce(t *testing.T) {
	ctx := context.Background()
	repos := newTxReposStub()
	uc, payments, gw := newPaymentUsecase(repos)

	body := []byte(`{"type":"checkout.completed","session_id":"cs_1"}`)
	gw.On("VerifyWebhook", body, "sig").Return(usecase.WebhookEvent{
		Type:      "checkout.completed",
		SessionID: "cs_1",
	}, nil)

	payment := model.Payment{
		ID: "pay-1", OrderID: 42, CustomerID: 1,
		Method: model.PaymentMethodCard, Status: model.PaymentStatusProcessing,
		GatewaySessionID: "cs_1",
	}
	payments.On("FindBySessionID", mock.Anything, "cs_1").Return(payment, true, nil)
	repos.payments.On("FindByID", mock.Anything, "pay-1").Return(payment, nil)

	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1, Paid: false}, nil).Once()
	repos.orders.On("FindByIDForUpdate", mock.Anything, int64(42)).
		Return(model.Order{ID: 42, CustomerID: 1, Paid: true}, nil)

	repos.orders.On("MarkPaid", mock.Anything, int64(42), "").Return(nil)
	repos.payments.On("MarkApproved", mock.Anything, "pay-1", mock.Anything).Return(nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{
		{OrderID: 42, ProductID: 7, Quantity: 2, UnitPriceSnapshot: mustDecimal(t, "10.00")},
	}, nil)
	repos.inventory.On("DecrementStockClamped", mock.Anything, int64(7), int64(2)).Return(int64(3), nil)
	repos.inventory.On("CreateAdjustment", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, uc.HandleWebhook(ctx, body, "sig"))
	assert.NoError(t, uc.HandleWebhook(ctx, body, "sig"))

	repos.inventory.AssertNumberOfCalls(t, "DecrementStockClamped", 1)
}
