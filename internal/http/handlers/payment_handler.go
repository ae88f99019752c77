package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler создаёт хэндлер платежей.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// GetPayment обрабатывает GET /payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	paymentID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.payments.GetPayment(c.Request.Context(), actor, paymentID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// PayNow обрабатывает POST /payments/:id/pay: оплата и выпуск средств.
func (h *PaymentHandler) PayNow(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	paymentID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	payment, err := h.payments.PayNow(c.Request.Context(), actor, paymentID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListTransactions обрабатывает GET /payments/transactions.
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	limit, offset := pageParams(c)

	payments, err := h.payments.ListTransactions(c.Request.Context(), actor, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": payments})
}
