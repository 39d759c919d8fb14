package remote

import (
	"context"
	"ebd_gestao/internal/config"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.FunctionsConfig{URL: srv.URL + "/functions/v1/", Key: "secret", Timeout: time.Second}, nil)
}

func TestClient_Invoke(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		c := NewClient(config.FunctionsConfig{}, nil)
		if err := c.Invoke(context.Background(), "x", map[string]any{}, nil); !errors.Is(err, ErrFunctionsNotConfigured) {
			t.Fatalf("expected ErrFunctionsNotConfigured, got %v", err)
		}
	})

	t.Run("sends bearer key and decodes", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/functions/v1/echo" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer secret" {
				t.Errorf("missing bearer key")
			}
			_, _ = w.Write([]byte(`{"value":42}`))
		})

		var out struct {
			Value int `json:"value"`
		}
		if err := c.Invoke(context.Background(), "echo", map[string]any{"a": 1}, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Value != 42 {
			t.Fatalf("expected 42, got %d", out.Value)
		}
	})

	t.Run("non-2xx keeps body for message extraction", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"CPF/CNPJ do cliente inválido"}`))
		})

		err := c.Invoke(context.Background(), FunctionCreateExternalOrder, map[string]any{}, nil)
		var fe *FunctionError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FunctionError, got %v", err)
		}
		if fe.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", fe.StatusCode)
		}
		if got := usecase.ExtractRemoteMessage(err); got != "CPF/CNPJ do cliente inválido" {
			t.Fatalf("unexpected extracted message %q", got)
		}
	})

	t.Run("success false is an error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"Estoque insuficiente"}`))
		})

		err := c.Invoke(context.Background(), FunctionCreateExternalOrder, map[string]any{}, nil)
		if err == nil {
			t.Fatalf("expected error")
		}
		if got := usecase.ExtractRemoteMessage(err); got != "Estoque insuficiente" {
			t.Fatalf("unexpected extracted message %q", got)
		}
	})
}

func TestOrderGateway_CreateOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got entities.ExternalOrderRequest
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode request: %v", err)
			}
			_, _ = w.Write([]byte(`{"success":true,"order_id":"ERP-1","payment_url":"https://pay.example/1"}`))
		})
		term := 30
		res, err := NewOrderGateway(c).CreateOrder(context.Background(), entities.ExternalOrderRequest{
			ProposalID:    "prop-1",
			PaymentMode:   entities.PaymentModeFaturamento,
			InvoicingTerm: &term,
			Items:         []entities.ExternalOrderItem{{Description: "Revista", Quantity: 2, UnitPrice: 90, ReferencePrice: 100}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OrderID != "ERP-1" || res.PaymentURL != "https://pay.example/1" {
			t.Fatalf("unexpected result: %+v", res)
		}
		if got.PaymentMode != entities.PaymentModeFaturamento || got.InvoicingTerm == nil || *got.InvoicingTerm != 30 {
			t.Fatalf("unexpected request sent: %+v", got)
		}
		if got.Items[0].ReferencePrice != 100 {
			t.Fatalf("expected reference price to be sent")
		}
	})

	t.Run("numeric bling id", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"bling_order_id":123456}`))
		})
		res, err := NewOrderGateway(c).CreateOrder(context.Background(), entities.ExternalOrderRequest{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.OrderID != "123456" {
			t.Fatalf("expected 123456, got %s", res.OrderID)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true}`))
		})
		if _, err := NewOrderGateway(c).CreateOrder(context.Background(), entities.ExternalOrderRequest{}); !errors.Is(err, ErrOrderWithoutID) {
			t.Fatalf("expected ErrOrderWithoutID, got %v", err)
		}
	})
}

func TestShippingQuoter_Quote(t *testing.T) {
	t.Run("number and string prices", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"pac":{"price":27.5,"days":6},"sedex":{"price":"45,10","days":2}}`))
		})
		q, err := NewShippingQuoter(c).Quote(context.Background(), "01001000", []entities.CartItem{{Quantity: 3}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.PAC == nil || q.PAC.Price != 27.5 || q.PAC.Days != 6 {
			t.Fatalf("unexpected pac: %+v", q.PAC)
		}
		if q.SEDEX == nil || q.SEDEX.Price != 45.10 {
			t.Fatalf("unexpected sedex: %+v", q.SEDEX)
		}
	})

	t.Run("missing carrier", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"pac":{"price":27.5,"days":6}}`))
		})
		q, err := NewShippingQuoter(c).Quote(context.Background(), "01001000", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.SEDEX != nil {
			t.Fatalf("expected no sedex rate")
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		if _, err := NewShippingQuoter(c).Quote(context.Background(), "01001000", nil); err == nil {
			t.Fatalf("expected error")
		}
	})
}
