package payments

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"errors"
	"strings"
	"testing"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		_, err := NewMercadoPagoGateway(MercadoPagoOptions{}, nil)
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("mock mode needs no token", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(MercadoPagoOptions{Mock: true}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g == nil {
			t.Fatalf("expected gateway")
		}
	})
}

func TestMercadoPagoGateway_Mock(t *testing.T) {
	g, err := NewMercadoPagoGateway(MercadoPagoOptions{Mock: true}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("payment link", func(t *testing.T) {
		link, err := g.CreatePaymentLink(context.Background(), entities.PaymentLinkRequest{ProposalID: "prop-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(link, "/prop-1") {
			t.Fatalf("unexpected link: %s", link)
		}
	})

	t.Run("payment read", func(t *testing.T) {
		p, err := g.GetPayment(context.Background(), "123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "123" || entities.CanonicalPaymentStatus(p.Status) != entities.PaymentStatusPaid {
			t.Fatalf("unexpected payment: %+v", p)
		}
		if len(p.Raw) == 0 {
			t.Fatalf("expected raw payload")
		}
	})
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.CreatePaymentLink(context.Background(), entities.PaymentLinkRequest{}); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
	if _, err := g.GetPayment(context.Background(), "1"); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}
