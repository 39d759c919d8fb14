package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"ebd_gestao/internal/adapter/http/dto/response"
	"ebd_gestao/internal/adapter/http/handlers/mocks"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPaymentRouter(h *PaymentHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments/notifications", h.ReceiveNotification)
	r.GET("/v1/payments/:payment_id", h.GetPayment)
	r.GET("/v1/proposals/:id/payments", h.ListProposalPayments)
	return r
}

func TestPaymentHandler_ReceiveNotification(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications", "{", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid json in mock mode uses query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, true, nil))

		uc.EXPECT().HandleNotification(gomock.Any(), "77").Return(entities.BillingPayment{ID: "77", ProposalID: "prop-1", Status: entities.PaymentStatusPaid}, nil)

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications?type=payment&data.id=77", "{", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("other topic acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications?topic=merchant_order&id=5", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body response.NotificationAckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || !body.Ignored {
			t.Fatalf("expected ignored ack, got %s", w.Body.String())
		}
	})

	t.Run("missing payment id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications", `{"type":"payment"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("paid notification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().HandleNotification(gomock.Any(), "123456").Return(entities.BillingPayment{
			ID:         "123456",
			ProposalID: "prop-1",
			Status:     entities.PaymentStatusPaid,
			RawStatus:  "approved",
			Date:       time.Now().UTC(),
		}, nil)

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications", `{"action":"payment.updated","type":"payment","data":{"id":123456}}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		var body response.NotificationAckResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Payment == nil || body.Payment.ProposalID != "prop-1" || body.Payment.Status != "paid" {
			t.Fatalf("unexpected ack %+v", body)
		}
	})

	t.Run("payment without reference is acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().HandleNotification(gomock.Any(), "9").Return(entities.BillingPayment{}, usecase.ErrPaymentWithoutReference)

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications?data.id=9", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("transient failure asks for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().HandleNotification(gomock.Any(), "9").Return(entities.BillingPayment{}, errors.New("timeout"))

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications?data.id=9", "", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().HandleNotification(gomock.Any(), "9").Return(entities.BillingPayment{}, usecase.ErrPaymentGatewayUnauthorized)

		w := doRequest(r, http.MethodPost, "/v1/payments/notifications?id=9&topic=payment", "", nil)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestPaymentHandler_Lookups(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("payment not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.BillingPayment{}, usecase.ErrBillingPaymentNotFound)

		w := doRequest(r, http.MethodGet, "/v1/payments/missing", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("payments of a proposal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPaymentUseCase(ctrl)
		r := newPaymentRouter(NewPaymentHandler(uc, false, nil))

		uc.EXPECT().ListByProposalID(gomock.Any(), "prop-1").Return([]entities.BillingPayment{{ID: "1"}, {ID: "2"}}, nil)

		w := doRequest(r, http.MethodGet, "/v1/proposals/prop-1/payments", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []response.BillingPaymentResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
			t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
		}
	})
}
