package entities

import "time"

// ShippingMethod is the shipping choice stored on a proposal.
type ShippingMethod string

const (
	ShippingMethodFree     ShippingMethod = "free"
	ShippingMethodStandard ShippingMethod = "pac"
	ShippingMethodExpress  ShippingMethod = "sedex"
	ShippingMethodPickup   ShippingMethod = "pickup"
	ShippingMethodManual   ShippingMethod = "manual"
)

// ProposalItem is one line of a proposal.
//
// Category is captured from the catalog at creation time so representante
// discounts can be resolved later without another catalog lookup.
type ProposalItem struct {
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	SKU       string  `json:"sku,omitempty"`
	Category  string  `json:"category,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ProposalClient identifies who the proposal is addressed to. ID is empty for
// clients that are not registered yet; Name/Document then carry the free text.
type ProposalClient struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	CEP      string `json:"cep,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ProposalShipping is the resolved shipping of a proposal.
type ProposalShipping struct {
	Method   ShippingMethod `json:"method"`
	Carrier  string         `json:"carrier,omitempty"`
	Cost     float64        `json:"cost"`
	LeadTime string         `json:"lead_time,omitempty"`
}

// Proposal (proposta) is a shareable sales offer.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI token-index: token
//   - GSI seller_id-index: seller_id / created_at
//   - GSI status-index: status / created_at
//
// Monetary representation:
//   - Subtotal, Total and every price are float64 in BRL, always rounded to cents
//     through ComputeTotals.
type Proposal struct {
	ID              string           `json:"id"`
	Token           string           `json:"token"`
	Client          ProposalClient   `json:"client"`
	Items           []ProposalItem   `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	DiscountPercent float64          `json:"discount_percent"`
	Shipping        ProposalShipping `json:"shipping"`
	Total           float64          `json:"total"`
	SellerID        string           `json:"seller_id"`
	SellerName      string           `json:"seller_name"`
	Status          ProposalStatus   `json:"status"`
	InvoicingTerm   *int             `json:"invoicing_term,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	PaymentURL      string           `json:"payment_url,omitempty"`
	ExternalOrderID string           `json:"external_order_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	AcceptedAt      *time.Time       `json:"accepted_at,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ApplyTotals recomputes Subtotal and Total from the items, discount and shipping.
func (p *Proposal) ApplyTotals() {
	t := ComputeTotals(p.Items, p.DiscountPercent, p.Shipping.Cost)
	p.Subtotal = t.Subtotal
	p.Total = t.Total
}

// ValidInvoicingTerm reports whether days is one of the accepted faturamento terms.
func ValidInvoicingTerm(days int) bool {
	switch days {
	case 30, 60, 90:
		return true
	}
	return false
}

// ProposalStatusChange describes a conditional status write. Optional fields are
// only written when set. ClearAcceptance removes the accepted_at and
// invoicing_term of a previous acceptance; values set in the same change win.
type ProposalStatusChange struct {
	From            ProposalStatus
	To              ProposalStatus
	AcceptedAt      *time.Time
	InvoicingTerm   *int
	PaymentMethod   string
	PaymentURL      string
	ExternalOrderID string
	Token           string
	ClearAcceptance bool
}

// ProposalFilter narrows proposal listings. Empty fields are ignored.
type ProposalFilter struct {
	SellerID      string
	Status        ProposalStatus
	CreatedBefore *time.Time
}
