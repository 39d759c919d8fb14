package entities

import "time"

// Order is a placed sale (pedido) as seen by commission settlement.
// StatusPagamento keeps the raw upstream value; use PaymentStatus() to compare.
type Order struct {
	ID                   string     `json:"id"`
	ClientID             string     `json:"cliente_id"`
	SellerID             string     `json:"vendedor_id,omitempty"`
	Value                float64    `json:"valor_total"`
	StatusPagamento      string     `json:"status_pagamento"`
	Origin               string     `json:"origem"`
	OrderDate            time.Time  `json:"data_pedido"`
	CommissionApproved   bool       `json:"comissao_aprovada"`
	CommissionApprovedAt *time.Time `json:"comissao_aprovada_em,omitempty"`
	InvoiceURL           string     `json:"nota_fiscal_url,omitempty"`
}

// PaymentStatus returns the canonical payment status of the order.
func (o Order) PaymentStatus() PaymentStatus {
	return CanonicalPaymentStatus(o.StatusPagamento)
}
