package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/domain/entities"
	mock_interfaces "ebd_gestao/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// confirmRecorder stands in for the proposal use case; only ConfirmPayment is used.
type confirmRecorder struct {
	IProposalUseCase
	confirmed []string
	err       error
}

func (c *confirmRecorder) ConfirmPayment(_ context.Context, id string) (entities.Proposal, error) {
	c.confirmed = append(c.confirmed, id)
	return entities.Proposal{ID: id, Status: entities.ProposalStatusPago}, c.err
}

func TestPaymentUseCase_HandleNotification(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC))

	t.Run("empty id", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil, clk, nil)
		_, err := uc.HandleNotification(context.Background(), " ")
		if !errors.Is(err, ErrInvalidProviderPaymentID) {
			t.Fatalf("expected ErrInvalidProviderPaymentID, got %v", err)
		}
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.ProviderPayment{}, errors.New(`{"status":401,"error":"unauthorized"}`))
		uc := NewPaymentUseCase(nil, gateway, nil, clk, nil)

		_, err := uc.HandleNotification(context.Background(), "123")
		if !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("payment without reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.ProviderPayment{ID: "123", Status: "approved"}, nil)
		uc := NewPaymentUseCase(nil, gateway, nil, clk, nil)

		_, err := uc.HandleNotification(context.Background(), "123")
		if !errors.Is(err, ErrPaymentWithoutReference) {
			t.Fatalf("expected ErrPaymentWithoutReference, got %v", err)
		}
	})

	t.Run("pending payment is recorded without confirming", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		proposals := &confirmRecorder{}
		uc := NewPaymentUseCase(repo, gateway, proposals, clk, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.ProviderPayment{ID: "123", Status: "in_process", ExternalReference: "p-1", Amount: 90}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
			if p.Status != entities.PaymentStatusPending || p.RawStatus != "in_process" {
				t.Fatalf("unexpected status %s/%s", p.Status, p.RawStatus)
			}
			return p, nil
		})

		if _, err := uc.HandleNotification(context.Background(), "123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(proposals.confirmed) != 0 {
			t.Fatalf("expected no confirmation, got %v", proposals.confirmed)
		}
	})

	t.Run("approved payment confirms the proposal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		proposals := &confirmRecorder{}
		uc := NewPaymentUseCase(repo, gateway, proposals, clk, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.ProviderPayment{
			ID:                "123",
			Status:            "approved",
			ExternalReference: "p-1",
			Amount:            90.004,
			Raw:               []byte(`{"id":123,"status":"approved"}`),
		}, nil).Times(2)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
			if p.Amount != 90 || p.MPPayload["status"] != "approved" {
				t.Fatalf("unexpected payment %+v", p)
			}
			return p, nil
		}).Times(2)

		for i := 0; i < 2; i++ {
			got, err := uc.HandleNotification(context.Background(), "123")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != entities.PaymentStatusPaid {
				t.Fatalf("expected paid, got %s", got.Status)
			}
		}
		if len(proposals.confirmed) != 2 || proposals.confirmed[0] != "p-1" {
			t.Fatalf("expected confirmations for p-1, got %v", proposals.confirmed)
		}
	})

	t.Run("confirmation failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		proposals := &confirmRecorder{err: ErrProposalNotFound}
		uc := NewPaymentUseCase(repo, gateway, proposals, clk, nil)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.ProviderPayment{ID: "123", Status: "approved", ExternalReference: "p-9"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
			return p, nil
		})

		_, err := uc.HandleNotification(context.Background(), "123")
		if !errors.Is(err, ErrProposalNotFound) {
			t.Fatalf("expected ErrProposalNotFound, got %v", err)
		}
	})
}

func TestPaymentUseCase_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIBillingPaymentRepository(ctrl)
	uc := NewPaymentUseCase(repo, nil, nil, nil, nil)

	repo.EXPECT().GetByID(gomock.Any(), "999").Return(entities.BillingPayment{}, nil)
	_, err := uc.GetByID(context.Background(), "999")
	if !errors.Is(err, ErrBillingPaymentNotFound) {
		t.Fatalf("expected ErrBillingPaymentNotFound, got %v", err)
	}
}
