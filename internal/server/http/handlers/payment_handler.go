package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gigmarket/internal/adapter/gateway"
	"github.com/polkiloo/gigmarket/internal/server/http/dto"
)

const maxWebhookBody = 1 << 20

// PaymentHandler manages checkout and gateway callback endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initiate handles POST /api/payments.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	checkout, err := h.facade.InitiatePayment(c.Request.Context(), CurrentIdentity(c), req.ProjectID, req.BidID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutResponse{
		PaymentID: checkout.PaymentID,
		SessionID: checkout.SessionID,
		URL:       checkout.URL,
		Mock:      checkout.Mock,
	})
}

// Get handles GET /api/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.facade.Payment(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// Webhook handles POST /api/payments/webhook. The signature covers the exact
// bytes sent, so the body is read raw.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}

	outcome, err := h.facade.ReconcilePayment(c.Request.Context(), gateway.Callback{
		Body:   body,
		Header: c.Request.Header.Clone(),
		Query:  c.Request.URL.Query(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WebhookResponse{Received: true, Outcome: string(outcome)})
}
