package entities

import "testing"

func TestComputeTotals(t *testing.T) {
	items := []ProposalItem{
		{VariantID: "v1", Quantity: 3, UnitPrice: 10},
		{VariantID: "v2", Quantity: 2, UnitPrice: 19.90},
	}

	t.Run("applies discount then shipping", func(t *testing.T) {
		got := ComputeTotals(items, 10, 15)
		if got.Subtotal != 69.8 || got.Discounted != 62.82 || got.Total != 77.82 {
			t.Fatalf("unexpected totals %+v", got)
		}
	})

	t.Run("two items with discount and shipping", func(t *testing.T) {
		got := ComputeTotals([]ProposalItem{
			{VariantID: "v1", Quantity: 2, UnitPrice: 100},
			{VariantID: "v2", Quantity: 1, UnitPrice: 50},
		}, 10, 20)
		if got.Subtotal != 250 || got.Discounted != 225 || got.Total != 245 {
			t.Fatalf("expected 250/225/245, got %+v", got)
		}
	})

	t.Run("no discount no shipping", func(t *testing.T) {
		got := ComputeTotals(items, 0, 0)
		if got.Total != 69.8 || got.Discounted != 69.8 {
			t.Fatalf("unexpected totals %+v", got)
		}
	})

	t.Run("full discount keeps shipping", func(t *testing.T) {
		got := ComputeTotals(items, 100, 29.90)
		if got.Discounted != 0 || got.Total != 29.9 {
			t.Fatalf("unexpected totals %+v", got)
		}
	})

	t.Run("recomputation is stable", func(t *testing.T) {
		p := Proposal{Items: items, DiscountPercent: 7.5, Shipping: ProposalShipping{Cost: 12.34}}
		p.ApplyTotals()
		first := p.Total
		p.ApplyTotals()
		if p.Total != first {
			t.Fatalf("total drifted from %v to %v", first, p.Total)
		}
	})
}

func TestMoneyHelpers(t *testing.T) {
	if got := RoundCents(1.005); got != 1.01 {
		t.Fatalf("expected 1.01, got %v", got)
	}
	if got := Percentage(300, 20); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	if got := DiscountedUnitPrice(19.90, 10); got != 17.91 {
		t.Fatalf("expected 17.91, got %v", got)
	}
	for _, p := range []float64{0, 12.5, 100} {
		if !ValidDiscount(p) {
			t.Fatalf("%v should be a valid discount", p)
		}
	}
	for _, p := range []float64{-0.01, 100.01} {
		if ValidDiscount(p) {
			t.Fatalf("%v should be rejected", p)
		}
	}
}

func TestValidInvoicingTerm(t *testing.T) {
	for _, d := range []int{30, 60, 90} {
		if !ValidInvoicingTerm(d) {
			t.Fatalf("%d should be accepted", d)
		}
	}
	for _, d := range []int{0, 15, 45, 120} {
		if ValidInvoicingTerm(d) {
			t.Fatalf("%d should be rejected", d)
		}
	}
}
