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

func TestShippingUseCase_Resolve(t *testing.T) {
	// Friday, so business-day estimates skip the weekend.
	clk := clock.NewFakeClock(time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC))
	policy := entities.DefaultShippingPolicy()
	items := []entities.CartItem{{Quantity: 3}}

	t.Run("without cep only free and pickup are offered", func(t *testing.T) {
		uc := NewShippingUseCase(nil, policy, clk, nil)
		q, err := uc.Resolve(context.Background(), nil, items, 250)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(q.Options) != 2 || q.Options[0].Type != entities.ShippingMethodFree || q.Options[1].Type != entities.ShippingMethodPickup {
			t.Fatalf("unexpected options %+v", q.Options)
		}
		if q.Selected == nil || q.Selected.Type != entities.ShippingMethodFree {
			t.Fatalf("expected free selected, got %+v", q.Selected)
		}
	})

	t.Run("just below the threshold is not free", func(t *testing.T) {
		uc := NewShippingUseCase(nil, policy, clk, nil)
		q, err := uc.Resolve(context.Background(), nil, items, 199.89)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := q.Find(entities.ShippingMethodFree); ok {
			t.Fatalf("expected no free shipping, got %+v", q.Options)
		}
	})

	t.Run("carrier quote with normalized cep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		quoter := mock_interfaces.NewMockIShippingQuoter(ctrl)
		quoter.EXPECT().Quote(gomock.Any(), "01310100", items).Return(entities.CarrierQuote{
			PAC:   &entities.CarrierRate{Price: 22.456, Days: 3},
			SEDEX: &entities.CarrierRate{Price: 41.2},
		}, nil)
		uc := NewShippingUseCase(quoter, policy, clk, nil)

		cep := "01310-100"
		q, err := uc.Resolve(context.Background(), &cep, items, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pac, ok := q.Find(entities.ShippingMethodStandard)
		if !ok || pac.Cost != 22.46 || pac.BusinessDays != 3 {
			t.Fatalf("unexpected pac %+v", pac)
		}
		if want := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC); !pac.EstimatedDate.Equal(want) {
			t.Fatalf("expected eta %v, got %v", want, pac.EstimatedDate)
		}
		sedex, _ := q.Find(entities.ShippingMethodExpress)
		if sedex.BusinessDays != policy.SEDEXDays {
			t.Fatalf("expected default sedex days, got %d", sedex.BusinessDays)
		}
		if q.Selected.Type != entities.ShippingMethodStandard {
			t.Fatalf("expected pac selected, got %s", q.Selected.Type)
		}
	})

	t.Run("quote failure falls back to the fixed table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		quoter := mock_interfaces.NewMockIShippingQuoter(ctrl)
		quoter.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.CarrierQuote{}, errors.New("correios down"))
		uc := NewShippingUseCase(quoter, policy, clk, nil)

		cep := "70000000"
		q, err := uc.Resolve(context.Background(), &cep, items, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Warning == "" {
			t.Fatalf("expected fallback warning")
		}
		pac, _ := q.Find(entities.ShippingMethodStandard)
		if pac.Cost != policy.FallbackPAC {
			t.Fatalf("expected fallback pac, got %v", pac.Cost)
		}
	})
}

func TestShippingUseCase_Manual(t *testing.T) {
	uc := NewShippingUseCase(nil, entities.DefaultShippingPolicy(), nil, nil)

	t.Run("forbidden role", func(t *testing.T) {
		_, err := uc.Manual(entities.Actor{Role: entities.RoleFinanceiro}, entities.ManualShipping{Carrier: "X", Cost: 10})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("negative cost", func(t *testing.T) {
		_, err := uc.Manual(entities.Actor{Role: entities.RoleVendedor}, entities.ManualShipping{Carrier: "X", Cost: -1})
		if !errors.Is(err, ErrInvalidManualShipping) {
			t.Fatalf("expected ErrInvalidManualShipping, got %v", err)
		}
	})

	t.Run("replaces every option", func(t *testing.T) {
		q, err := uc.Manual(entities.Actor{Role: entities.RoleVendedor}, entities.ManualShipping{Carrier: " Braspress ", Cost: 35.555, LeadTime: "7 dias"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !q.Manual || len(q.Options) != 1 || q.Selected.Label != "Braspress" || q.Selected.Cost != 35.56 {
			t.Fatalf("unexpected manual quote %+v", q)
		}
	})
}
