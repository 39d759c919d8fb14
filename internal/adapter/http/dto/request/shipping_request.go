package request

import (
	"ebd_gestao/internal/domain/entities"
)

type ShippingQuoteItemRequest struct {
	Quantity int `json:"quantity"`
}

// ShippingQuoteRequest asks for the options of a destination. A missing CEP
// yields only free shipping (when eligible) and pickup.
type ShippingQuoteRequest struct {
	CEP      *string                    `json:"cep"`
	Items    []ShippingQuoteItemRequest `json:"items"`
	Subtotal float64                    `json:"subtotal"`
}

func (r ShippingQuoteRequest) CartItems() []entities.CartItem {
	out := make([]entities.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Quantity > 0 {
			out = append(out, entities.CartItem{Quantity: it.Quantity})
		}
	}
	return out
}

func (r ManualShippingRequest) ToManual() entities.ManualShipping {
	return entities.ManualShipping{Carrier: r.Carrier, Cost: r.Cost, LeadTime: r.LeadTime}
}
