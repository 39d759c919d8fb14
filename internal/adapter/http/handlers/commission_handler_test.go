package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"ebd_gestao/internal/adapter/http/dto/response"
	"ebd_gestao/internal/adapter/http/handlers/mocks"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newCommissionRouter(h *CommissionHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/commissions/orders/:order_id/approve", h.ApproveCommission)
	r.POST("/v1/commissions/approve-batch", h.ApproveCommissionBatch)
	return r
}

func TestCommissionHandler_ApproveCommission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"not found", usecase.ErrOrderNotFound, http.StatusNotFound},
		{"not paid", usecase.ErrOrderNotPayable, http.StatusConflict},
		{"already approved", usecase.ErrCommissionAlreadySettled, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockICommissionUseCase(ctrl)
			r := newCommissionRouter(NewCommissionHandler(uc))

			uc.EXPECT().Approve(gomock.Any(), gomock.Any(), "order-1").Return(entities.CommissionParcela{}, tc.err)

			w := doRequest(r, http.MethodPost, "/v1/commissions/orders/order-1/approve", "", nil)
			if w.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, w.Code)
			}
		})
	}

	t.Run("approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICommissionUseCase(ctrl)
		r := newCommissionRouter(NewCommissionHandler(uc))

		uc.EXPECT().
			Approve(gomock.Any(), entities.Actor{ID: "fin-1", Role: entities.RoleFinanceiro}, "order-1").
			Return(entities.CommissionParcela{ID: "order-1#1", OrderID: "order-1", CommissionValue: 12.53}, nil)

		w := doRequest(r, http.MethodPost, "/v1/commissions/orders/order-1/approve", "", map[string]string{
			HeaderActorID:   "fin-1",
			HeaderActorRole: "financeiro",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body entities.CommissionParcela
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.CommissionValue != 12.53 {
			t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
		}
	})
}

func TestCommissionHandler_ApproveCommissionBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICommissionUseCase(ctrl)
		r := newCommissionRouter(NewCommissionHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/commissions/approve-batch", `{"order_ids":[]}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICommissionUseCase(ctrl)
		r := newCommissionRouter(NewCommissionHandler(uc))

		parcela := entities.CommissionParcela{ID: "o1#1"}
		uc.EXPECT().ApproveBatch(gomock.Any(), gomock.Any(), []string{"o1", "o2"}).Return([]entities.CommissionBatchResult{
			{OrderID: "o1", Parcela: &parcela},
			{OrderID: "o2", Skipped: true},
		}, nil)

		w := doRequest(r, http.MethodPost, "/v1/commissions/approve-batch", `{"order_ids":["o1","o2"]}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body response.CommissionBatchResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Approved != 1 || body.Skipped != 1 || body.Failed != 0 {
			t.Fatalf("unexpected summary %+v", body)
		}
	})
}
