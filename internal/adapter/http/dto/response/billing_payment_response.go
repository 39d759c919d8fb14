package response

import (
	"ebd_gestao/internal/domain/entities"
	"time"
)

type BillingPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	ID          string    `json:"id"`
	ProposalID  string    `json:"proposal_id"`
	PaymentDate time.Time `json:"payment_date"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	RawStatus   string    `json:"raw_status"`
	Amount      float64   `json:"amount"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		ProposalID:   p.ProposalID,
		PaymentDate:  p.Date,
		Date:         p.Date,
		Status:       string(p.Status),
		RawStatus:    p.RawStatus,
		Amount:       p.Amount,
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}

func FromBillingPayments(ps []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromBillingPayment(p))
	}
	return out
}

// NotificationAckResponse is returned to the provider. Ignored notifications
// are acknowledged too, otherwise the provider keeps retrying.
type NotificationAckResponse struct {
	Received  bool                    `json:"received"`
	Ignored   bool                    `json:"ignored,omitempty"`
	PaymentID string                  `json:"payment_id,omitempty"`
	Payment   *BillingPaymentResponse `json:"payment,omitempty"`
}
