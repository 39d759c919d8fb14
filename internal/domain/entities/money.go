package entities

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProposalTotals holds the stage-by-stage amounts of a proposal.
type ProposalTotals struct {
	Subtotal   float64 `json:"subtotal"`
	Discounted float64 `json:"discounted"`
	Total      float64 `json:"total"`
}

// ComputeTotals applies total = round(round(round(Σ price*qty) * (1-d/100)) + shipping).
// Every stage is rounded to cents so repeated recomputation never drifts.
func ComputeTotals(items []ProposalItem, discountPercent, shippingCost float64) ProposalTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal = subtotal.Round(2)

	discounted := ApplyDiscount(subtotal, discountPercent)
	total := discounted.Add(decimal.NewFromFloat(shippingCost)).Round(2)

	return ProposalTotals{
		Subtotal:   subtotal.InexactFloat64(),
		Discounted: discounted.InexactFloat64(),
		Total:      total.InexactFloat64(),
	}
}

// ApplyDiscount returns v*(1-percent/100) rounded to cents.
func ApplyDiscount(v decimal.Decimal, percent float64) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromFloat(percent)).Div(hundred)
	return v.Mul(factor).Round(2)
}

// DiscountedUnitPrice is the per-unit price sent to the ERP after discount.
func DiscountedUnitPrice(unitPrice, percent float64) float64 {
	return ApplyDiscount(decimal.NewFromFloat(unitPrice), percent).InexactFloat64()
}

// Percentage returns v*percent/100 rounded to cents.
func Percentage(v, percent float64) float64 {
	return decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(percent)).Div(hundred).Round(2).InexactFloat64()
}

// RoundCents rounds v half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// ValidDiscount reports whether percent lies in [0, 100].
func ValidDiscount(percent float64) bool {
	return percent >= 0 && percent <= 100
}
