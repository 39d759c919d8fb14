package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ebd_gestao/internal/adapter/http/handlers/mocks"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

const validProposalBody = `{"client":{"id":"cli-1","name":"Igreja Central"},"seller_id":"seller-1","items":[{"variant_id":"v1","title":"Revista","quantity":2,"unit_price":25}]}`

func newProposalRouter(h *ProposalHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/proposals", h.CreateProposal)
	r.GET("/v1/proposals", h.ListProposals)
	r.GET("/v1/proposals/:id", h.GetProposal)
	r.PUT("/v1/proposals/:id", h.EditProposal)
	r.DELETE("/v1/proposals/:id", h.DeleteProposal)
	r.POST("/v1/proposals/:id/payment", h.GeneratePayment)
	r.POST("/v1/proposals/:id/financial-approval", h.ApproveFinancial)
	r.POST("/v1/proposals/:id/cancel", h.CancelProposal)
	r.GET("/v1/public/proposals/:token", h.GetPublicProposal)
	r.POST("/v1/public/proposals/:token/accept", h.AcceptPublicProposal)
	return r
}

func doRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeHTTPError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestProposalHandler_CreateProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, "https://loja.example"))

		w := doRequest(r, http.MethodPost, "/v1/proposals", "{", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, "https://loja.example"))

		w := doRequest(r, http.MethodPost, "/v1/proposals", `{"seller_id":"seller-1","items":[]}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeHTTPError(t, w).Code; got != "INVALID_PROPOSAL_INPUT" {
			t.Fatalf("unexpected code %s", got)
		}
	})

	t.Run("success with warning and actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, "https://loja.example"))

		uc.EXPECT().
			Create(gomock.Any(), entities.Actor{ID: "u-1", Role: entities.RoleVendedor}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.Actor, in usecase.ProposalInput) (usecase.ProposalResult, error) {
				if in.SellerID != "seller-1" || len(in.Items) != 1 || in.Items[0].Quantity != 2 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return usecase.ProposalResult{
					Proposal: entities.Proposal{ID: "prop-1", Token: "tok-1", Status: entities.ProposalStatusPendente, Total: 50},
					Warning:  "frete estimado",
				}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/proposals", validProposalBody, map[string]string{
			HeaderActorID:   "u-1",
			HeaderActorRole: " Vendedor ",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
		}

		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json response: %v", err)
		}
		if body["public_url"] != "https://loja.example/proposta/tok-1" || body["warning"] != "frete estimado" {
			t.Fatalf("unexpected response: %v", body)
		}
	})

	t.Run("usecase returns mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, "https://loja.example"))

		uc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.ProposalResult{}, usecase.ErrInvalidDiscount)

		w := doRequest(r, http.MethodPost, "/v1/proposals", validProposalBody, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeHTTPError(t, w).Code; got != "INVALID_DISCOUNT" {
			t.Fatalf("unexpected code %s", got)
		}
	})
}

func TestProposalHandler_ListProposals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		w := doRequest(r, http.MethodGet, "/v1/proposals?status=whatever", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("filters are forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().
			List(gomock.Any(), entities.ProposalFilter{SellerID: "seller-1", Status: entities.ProposalStatusAceita}).
			Return([]entities.Proposal{{ID: "p1"}, {ID: "p2"}}, nil)

		w := doRequest(r, http.MethodGet, "/v1/proposals?seller_id=seller-1&status=proposta_aceita", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
			t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
		}
	})
}

func TestProposalHandler_GetProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIProposalUseCase(ctrl)
	r := newProposalRouter(NewProposalHandler(uc, ""))

	uc.EXPECT().Get(gomock.Any(), "missing").Return(entities.Proposal{}, usecase.ErrProposalNotFound)

	w := doRequest(r, http.MethodGet, "/v1/proposals/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if got := decodeHTTPError(t, w).Code; got != "PROPOSAL_NOT_FOUND" {
		t.Fatalf("unexpected code %s", got)
	}
}

func TestProposalHandler_EditProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIProposalUseCase(ctrl)
	r := newProposalRouter(NewProposalHandler(uc, ""))

	uc.EXPECT().Edit(gomock.Any(), gomock.Any(), "prop-1", gomock.Any()).Return(usecase.ProposalResult{}, usecase.ErrProposalNotEditable)

	w := doRequest(r, http.MethodPut, "/v1/proposals/prop-1", validProposalBody, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestProposalHandler_DeleteProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().Delete(gomock.Any(), entities.Actor{Role: entities.RoleVendedor}, "prop-1").Return(usecase.ErrForbidden)

		w := doRequest(r, http.MethodDelete, "/v1/proposals/prop-1", "", map[string]string{HeaderActorRole: "vendedor"})
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().Delete(gomock.Any(), gomock.Any(), "prop-1").Return(nil)

		w := doRequest(r, http.MethodDelete, "/v1/proposals/prop-1", "", map[string]string{HeaderActorRole: "gerente"})
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})
}

func TestProposalHandler_GeneratePayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing mode", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/payment", `{}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("remote failure shows provider message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		rce := &usecase.RemoteCallError{Procedure: "create-external-order", Message: "CPF inválido", Err: errors.New("400")}
		uc.EXPECT().GeneratePayment(gomock.Any(), gomock.Any(), "prop-1", entities.PaymentModePix).Return(usecase.ProposalResult{}, rce)

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/payment", `{"mode":"pix"}`, nil)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
		if got := decodeHTTPError(t, w).Message; got != "CPF inválido" {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("transition not allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		te := &entities.TransitionError{From: entities.ProposalStatusPendente, Event: entities.ProposalEventGeneratePayment}
		uc.EXPECT().GeneratePayment(gomock.Any(), gomock.Any(), "prop-1", entities.PaymentModeBoleto).Return(usecase.ProposalResult{}, te)

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/payment", `{"mode":"BOLETO"}`, nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestProposalHandler_ApproveFinancial(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().
			ApproveFinancial(gomock.Any(), gomock.Any(), "prop-1", (*int)(nil)).
			Return(entities.Proposal{ID: "prop-1", Status: entities.ProposalStatusFaturado}, nil)

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/financial-approval", "", map[string]string{HeaderActorRole: "financeiro"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"status":"FATURADO"`) {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("term override", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().
			ApproveFinancial(gomock.Any(), gomock.Any(), "prop-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.Actor, _ string, term *int) (entities.Proposal, error) {
				if term == nil || *term != 60 {
					t.Fatalf("expected term 60, got %v", term)
				}
				return entities.Proposal{ID: "prop-1"}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/financial-approval", `{"invoicing_term":60}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/financial-approval", `{"invoicing_term":"x"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestProposalHandler_CancelProposal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIProposalUseCase(ctrl)
	r := newProposalRouter(NewProposalHandler(uc, ""))

	uc.EXPECT().Cancel(gomock.Any(), gomock.Any(), "prop-1").Return(entities.Proposal{}, usecase.ErrProposalStatusChanged)

	w := doRequest(r, http.MethodPost, "/v1/proposals/prop-1/cancel", "", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestProposalHandler_PublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("public view hides the token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, "https://loja.example"))

		uc.EXPECT().GetByToken(gomock.Any(), "tok-1").Return(entities.Proposal{ID: "prop-1", Token: "tok-1", SellerID: "seller-1", Status: entities.ProposalStatusPendente}, nil)

		w := doRequest(r, http.MethodGet, "/v1/public/proposals/tok-1", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "tok-1") || strings.Contains(w.Body.String(), "seller-1") {
			t.Fatalf("public response leaks internals: %s", w.Body.String())
		}
	})

	t.Run("accept with empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().Accept(gomock.Any(), "tok-1", (*int)(nil)).Return(entities.Proposal{ID: "prop-1", Status: entities.ProposalStatusAceita}, nil)

		w := doRequest(r, http.MethodPost, "/v1/public/proposals/tok-1/accept", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("accept with stale token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIProposalUseCase(ctrl)
		r := newProposalRouter(NewProposalHandler(uc, ""))

		uc.EXPECT().Accept(gomock.Any(), "old", gomock.Any()).Return(entities.Proposal{}, usecase.ErrProposalNotFound)

		w := doRequest(r, http.MethodPost, "/v1/public/proposals/old/accept", `{"invoicing_term":30}`, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
