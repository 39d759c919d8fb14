package entities

import (
	"encoding/json"
	"time"
)

// BillingPayment is a provider payment recorded against a proposal.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (proposal_id-index): proposal_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider body (JSON) for traceability.
//   - MPPayload is the parsed representation.
type BillingPayment struct {
	ID         string        `json:"id"`
	ProposalID string        `json:"proposal_id"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`
	RawStatus  string        `json:"raw_status"`
	Amount     float64       `json:"amount"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// ProviderPayment is what the payment provider reports for a payment id.
type ProviderPayment struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            float64
	Raw               json.RawMessage
}

// PaymentLinkRequest is the checkout link requested for the standard payment path.
type PaymentLinkRequest struct {
	ProposalID      string
	ExternalOrderID string
	Description     string
	PayerEmail      string
	Items           []ExternalOrderItem
	ShippingCost    float64
}
