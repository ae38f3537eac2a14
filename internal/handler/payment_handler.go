package handler

import (
	"io"
	"net/http"

	"loja/internal/config"
	"loja/internal/middleware"
	"loja/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type StartPaymentRequest struct {
	OrderID int64 `json:"order_id"`
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	// gateway-facing, no Bearer auth; the webhook is signature-checked
	e.POST("/payments/webhook", h.webhook)
	e.GET("/payments/completed", h.completed)

	g := e.Group("/payments")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/:method", h.start)
	g.GET("/:id", h.get)
	g.POST("/:id/cancel", h.cancel)
}

func (h *PaymentHandler) start(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	method := c.Param("method")

	var req StartPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.StartPayment(c.Request().Context(), customerID, req.OrderID, method)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *PaymentHandler) get(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetPayment(c.Request().Context(), customerID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) cancel(c echo.Context) error {
	customerID, ok := getCustomerIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.CancelPayment(c.Request().Context(), customerID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "canceled"})
}

// webhook receives the gateway's signed event. Delivery is
// at-least-once; duplicates are absorbed downstream.
func (h *PaymentHandler) webhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	signature := c.Request().Header.Get("Gateway-Signature")

	if err := h.uc.HandleWebhook(c.Request().Context(), body, signature); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// completed is the browser-redirect side of the card flow. The session
// id comes back as a query parameter.
func (h *PaymentHandler) completed(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing session_id"})
	}

	if err := h.uc.ConfirmBySessionID(c.Request().Context(), sessionID, c.QueryParam("ref")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "paid"})
}
