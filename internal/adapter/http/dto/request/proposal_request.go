package request

import (
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"errors"
	"strings"
)

var (
	ErrInvalidProposalItems = errors.New("proposal needs at least one item with quantity and price")
)

type ProposalClientRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	CEP      string `json:"cep"`
	Phone    string `json:"phone"`
}

type ProposalItemRequest struct {
	VariantID string  `json:"variant_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	SKU       string  `json:"sku"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price"`
}

type ManualShippingRequest struct {
	Carrier  string  `json:"carrier" binding:"required"`
	Cost     float64 `json:"cost"`
	LeadTime string  `json:"lead_time"`
}

type ShippingSelectionRequest struct {
	Method string                 `json:"method"`
	Manual *ManualShippingRequest `json:"manual"`
}

// ProposalRequest is the payload of proposal creation and edition.
type ProposalRequest struct {
	Client          ProposalClientRequest    `json:"client"`
	SellerID        string                   `json:"seller_id" binding:"required"`
	Items           []ProposalItemRequest    `json:"items" binding:"required,dive"`
	DiscountPercent float64                  `json:"discount_percent"`
	Shipping        ShippingSelectionRequest `json:"shipping"`
}

// ToInput trims the payload and translates it into the use case command.
func (r ProposalRequest) ToInput() (usecase.ProposalInput, error) {
	if len(r.Items) == 0 {
		return usecase.ProposalInput{}, ErrInvalidProposalItems
	}

	items := make([]entities.ProposalItem, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return usecase.ProposalInput{}, ErrInvalidProposalItems
		}
		items = append(items, entities.ProposalItem{
			VariantID: strings.TrimSpace(it.VariantID),
			Title:     strings.TrimSpace(it.Title),
			SKU:       strings.TrimSpace(it.SKU),
			Category:  strings.ToUpper(strings.TrimSpace(it.Category)),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	in := usecase.ProposalInput{
		Client: entities.ProposalClient{
			ID:       strings.TrimSpace(r.Client.ID),
			Name:     strings.TrimSpace(r.Client.Name),
			Document: strings.TrimSpace(r.Client.Document),
			CEP:      strings.TrimSpace(r.Client.CEP),
			Phone:    strings.TrimSpace(r.Client.Phone),
		},
		SellerID:        strings.TrimSpace(r.SellerID),
		Items:           items,
		DiscountPercent: r.DiscountPercent,
		Shipping: usecase.ShippingSelection{
			Method: entities.ShippingMethod(strings.ToLower(strings.TrimSpace(r.Shipping.Method))),
		},
	}
	if m := r.Shipping.Manual; m != nil {
		in.Shipping.Method = entities.ShippingMethodManual
		in.Shipping.Manual = &entities.ManualShipping{
			Carrier:  strings.TrimSpace(m.Carrier),
			Cost:     m.Cost,
			LeadTime: strings.TrimSpace(m.LeadTime),
		}
	}
	return in, nil
}

// AcceptProposalRequest is sent by the client from the public proposal page.
// InvoicingTerm is only meaningful for clients allowed to invoice.
type AcceptProposalRequest struct {
	InvoicingTerm *int `json:"invoicing_term"`
}

type GeneratePaymentRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (r GeneratePaymentRequest) ResolveMode() entities.PaymentMode {
	return entities.PaymentMode(strings.ToUpper(strings.TrimSpace(r.Mode)))
}

type FinancialApprovalRequest struct {
	InvoicingTerm *int `json:"invoicing_term"`
}
