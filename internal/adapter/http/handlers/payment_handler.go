package handlers

import (
	"bytes"
	"ebd_gestao/internal/adapter/http/dto/request"
	"ebd_gestao/internal/adapter/http/dto/response"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidNotificationPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// PaymentHandler handles provider payment notifications and payment lookups.
type PaymentHandler struct {
	usecase  usecase.IPaymentUseCase
	mockMode bool
	log      *zap.Logger
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, mockMode bool, log *zap.Logger) *PaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentHandler{usecase: uc, mockMode: mockMode, log: log}
}

// ReceiveNotification godoc
// @Summary      Mercado Pago webhook
// @Description  Accepts `type`/`data.id` in the body or the query string. Non-payment topics are acknowledged and ignored.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payload  body      request.PaymentNotificationRequest  false  "Notification"
// @Success      200      {object}  response.NotificationAckResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /payments/notifications [post]
func (h *PaymentHandler) ReceiveNotification(c *gin.Context) {
	payload, err := readNotification(c)
	if err != nil {
		if h.mockMode {
			h.log.Warn("[payment][handler] payload invalid in mock mode; fallback to query string", zap.Error(err))
			payload = request.PaymentNotificationRequest{}
		} else {
			h.log.Warn("[payment][handler] invalid notification payload", zap.Error(err))
			c.JSON(errInvalidNotificationPayload.HTTPStatus, errInvalidNotificationPayload.ToHTTPError())
			return
		}
	}

	q := request.NotificationQuery{
		DataID: c.Query("data.id"),
		ID:     c.Query("id"),
		Type:   c.Query("type"),
		Topic:  c.Query("topic"),
	}
	if !payload.IsPayment(q) {
		h.log.Info("[payment][handler] notification ignored", zap.String("type", payload.Type), zap.String("query_type", q.Type))
		c.JSON(http.StatusOK, response.NotificationAckResponse{Received: true, Ignored: true})
		return
	}

	paymentID := payload.ResolvePaymentID(q)
	if paymentID == "" {
		h.log.Warn("[payment][handler] notification without payment id")
		c.JSON(errInvalidNotificationPayload.HTTPStatus, errInvalidNotificationPayload.ToHTTPError())
		return
	}

	h.log.Info("[payment][handler] notification start", zap.String("payment_id", paymentID))
	payment, err := h.usecase.HandleNotification(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, usecase.ErrPaymentWithoutReference) {
			h.log.Info("[payment][handler] payment without proposal reference; ignored", zap.String("payment_id", paymentID))
			c.JSON(http.StatusOK, response.NotificationAckResponse{Received: true, Ignored: true, PaymentID: paymentID})
			return
		}
		h.log.Error("[payment][handler] notification failed", zap.String("payment_id", paymentID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	h.log.Info("[payment][handler] notification success", zap.String("payment_id", payment.ID), zap.String("proposal_id", payment.ProposalID), zap.String("status", string(payment.Status)))

	res := response.FromBillingPayment(payment)
	c.JSON(http.StatusOK, response.NotificationAckResponse{Received: true, PaymentID: payment.ID, Payment: &res})
}

// GetPayment godoc
// @Summary      Get a recorded payment
// @Tags         payments
// @Produce      json
// @Param        payment_id  path      string  true  "Provider payment ID"
// @Success      200         {object}  response.BillingPaymentResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /payments/{payment_id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBillingPayment(payment))
}

// ListProposalPayments godoc
// @Summary      Payments recorded for a proposal
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Proposal ID"
// @Success      200  {array}   response.BillingPaymentResponse
// @Router       /proposals/{id}/payments [get]
func (h *PaymentHandler) ListProposalPayments(c *gin.Context) {
	proposalID := c.Param("id")
	payments, err := h.usecase.ListByProposalID(c.Request.Context(), proposalID)
	if err != nil {
		h.log.Error("[payment][handler] list by proposal failed", zap.String("proposal_id", proposalID), zap.Error(err))
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

func readNotification(c *gin.Context) (request.PaymentNotificationRequest, error) {
	var payload request.PaymentNotificationRequest
	raw, err := c.GetRawData()
	if err != nil {
		return payload, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, nil
	}
	if !json.Valid(raw) {
		return payload, errors.New("request body is not valid json")
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return request.PaymentNotificationRequest{}, err
	}
	return payload, nil
}

func mapPaymentError(err error) *pkg.AppError {
	var te *entities.TransitionError
	switch {
	case errors.Is(err, usecase.ErrInvalidProviderPaymentID), errors.Is(err, usecase.ErrInvalidProposalID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotFound), errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.As(err, &te):
		return pkg.NewDomainError("INVALID_STATUS_TRANSITION", "Proposal cannot be marked as paid in its current status", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
