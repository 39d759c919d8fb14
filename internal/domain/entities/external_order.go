package entities

// PaymentMode is the forma de pagamento sent to the ERP.
type PaymentMode string

const (
	PaymentModeFaturamento PaymentMode = "FATURAMENTO"
	PaymentModePix         PaymentMode = "PIX"
	PaymentModeCartao      PaymentMode = "CARTAO"
	PaymentModeBoleto      PaymentMode = "BOLETO"
)

// ValidImmediatePaymentMode reports whether m is accepted on the standard path.
func ValidImmediatePaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModePix, PaymentModeCartao, PaymentModeBoleto:
		return true
	}
	return false
}

// ExternalOrderItem is a line sent to the create-external-order procedure.
// UnitPrice is already discounted; ReferencePrice is the catalog price.
type ExternalOrderItem struct {
	Description    string  `json:"descricao"`
	SKU            string  `json:"sku,omitempty"`
	Quantity       int     `json:"quantidade"`
	UnitPrice      float64 `json:"valor_unitario"`
	ReferencePrice float64 `json:"preco_referencia"`
}

// ExternalOrderRequest is the input of the create-external-order procedure.
type ExternalOrderRequest struct {
	ProposalID     string              `json:"proposta_id"`
	Client         ProposalClient      `json:"cliente"`
	Items          []ExternalOrderItem `json:"itens"`
	ShippingCost   float64             `json:"valor_frete"`
	ShippingMethod ShippingMethod      `json:"metodo_frete"`
	Carrier        string              `json:"transportadora,omitempty"`
	PaymentMode    PaymentMode         `json:"forma_pagamento"`
	InvoicingTerm  *int                `json:"prazo_faturamento,omitempty"`
	SellerID       string              `json:"vendedor_id"`
	ContactRef     string              `json:"contato,omitempty"`
}

// ExternalOrderResult is the successful output of create-external-order.
type ExternalOrderResult struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url,omitempty"`
}
