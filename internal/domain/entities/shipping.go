package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingOption is a computed, non-persisted shipping choice.
type ShippingOption struct {
	Type          ShippingMethod `json:"type"`
	Label         string         `json:"label"`
	Cost          float64        `json:"cost"`
	BusinessDays  int            `json:"business_days"`
	EstimatedDate *time.Time     `json:"estimated_date,omitempty"`
	Address       string         `json:"address,omitempty"`
	Hours         string         `json:"hours,omitempty"`
	LeadTime      string         `json:"lead_time,omitempty"`
}

// ShippingQuote is the resolver output. Warning is set when the carrier
// quote failed and fallback prices were used.
type ShippingQuote struct {
	Options  []ShippingOption `json:"options"`
	Selected *ShippingOption  `json:"selected,omitempty"`
	Manual   bool             `json:"manual"`
	Warning  string           `json:"warning,omitempty"`
}

// Find returns the option of the given type.
func (q ShippingQuote) Find(t ShippingMethod) (ShippingOption, bool) {
	for _, o := range q.Options {
		if o.Type == t {
			return o, true
		}
	}
	return ShippingOption{}, false
}

// CartItem is the only cart information the carrier quote needs.
type CartItem struct {
	Quantity int `json:"quantity"`
}

// CarrierRate is one carrier tier returned by quote-shipping.
type CarrierRate struct {
	Price float64 `json:"price"`
	Days  int     `json:"days"`
}

// CarrierQuote is the quote-shipping result; nil tiers were not offered.
type CarrierQuote struct {
	PAC   *CarrierRate `json:"pac,omitempty"`
	SEDEX *CarrierRate `json:"sedex,omitempty"`
}

// ManualShipping is an operator-supplied carrier and cost.
type ManualShipping struct {
	Carrier  string  `json:"carrier"`
	Cost     float64 `json:"cost"`
	LeadTime string  `json:"lead_time,omitempty"`
}

// ShippingPolicy holds the configurable shipping constants.
type ShippingPolicy struct {
	FreeThreshold float64
	FreeDays      int
	PACDays       int
	SEDEXDays     int
	FallbackPAC   float64
	FallbackSEDEX float64
	PickupAddress string
	PickupHours   string
}

// DefaultShippingPolicy returns the values in use by the store.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: 199.90,
		FreeDays:      10,
		PACDays:       5,
		SEDEXDays:     2,
		FallbackPAC:   29.90,
		FallbackSEDEX: 49.90,
		PickupAddress: "Retirada na editora",
		PickupHours:   "Seg a Sex, 9h às 17h",
	}
}

// FreeShippingEligible compares in cents so 199.899999 never qualifies.
func (p ShippingPolicy) FreeShippingEligible(subtotal float64) bool {
	return decimal.NewFromFloat(subtotal).Round(2).GreaterThanOrEqual(decimal.NewFromFloat(p.FreeThreshold).Round(2))
}

// AddBusinessDays adds n weekdays to t, skipping Saturdays and Sundays.
func AddBusinessDays(t time.Time, n int) time.Time {
	d := t
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return d
}
