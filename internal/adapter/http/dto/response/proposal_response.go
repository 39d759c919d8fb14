package response

import (
	"ebd_gestao/internal/domain/entities"
	"strings"
	"time"
)

type ProposalResponse struct {
	ID              string                    `json:"id"`
	Token           string                    `json:"token"`
	PublicURL       string                    `json:"public_url"`
	Client          entities.ProposalClient   `json:"client"`
	Items           []entities.ProposalItem   `json:"items"`
	Subtotal        float64                   `json:"subtotal"`
	DiscountPercent float64                   `json:"discount_percent"`
	Shipping        entities.ProposalShipping `json:"shipping"`
	Total           float64                   `json:"total"`
	SellerID        string                    `json:"seller_id"`
	SellerName      string                    `json:"seller_name"`
	Status          string                    `json:"status"`
	InvoicingTerm   *int                      `json:"invoicing_term,omitempty"`
	PaymentMethod   string                    `json:"payment_method,omitempty"`
	PaymentURL      string                    `json:"payment_url,omitempty"`
	ExternalOrderID string                    `json:"external_order_id,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	AcceptedAt      *time.Time                `json:"accepted_at,omitempty"`
	UpdatedAt       time.Time                 `json:"updated_at"`
	Warning         string                    `json:"warning,omitempty"`
}

// FromProposal maps a proposal; publicBaseURL builds the client-facing link.
func FromProposal(p entities.Proposal, publicBaseURL string) ProposalResponse {
	items := p.Items
	if items == nil {
		items = []entities.ProposalItem{}
	}
	return ProposalResponse{
		ID:              p.ID,
		Token:           p.Token,
		PublicURL:       PublicProposalURL(publicBaseURL, p.Token),
		Client:          p.Client,
		Items:           items,
		Subtotal:        p.Subtotal,
		DiscountPercent: p.DiscountPercent,
		Shipping:        p.Shipping,
		Total:           p.Total,
		SellerID:        p.SellerID,
		SellerName:      p.SellerName,
		Status:          string(p.Status),
		InvoicingTerm:   p.InvoicingTerm,
		PaymentMethod:   p.PaymentMethod,
		PaymentURL:      p.PaymentURL,
		ExternalOrderID: p.ExternalOrderID,
		CreatedAt:       p.CreatedAt,
		AcceptedAt:      p.AcceptedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromProposals(ps []entities.Proposal, publicBaseURL string) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProposal(p, publicBaseURL))
	}
	return out
}

func FromProposalWithWarning(p entities.Proposal, warning, publicBaseURL string) ProposalResponse {
	res := FromProposal(p, publicBaseURL)
	res.Warning = warning
	return res
}

func PublicProposalURL(publicBaseURL, token string) string {
	if token == "" {
		return ""
	}
	return strings.TrimRight(publicBaseURL, "/") + "/proposta/" + token
}

// PublicProposalResponse is what the client sees through the token link. It
// leaves out the token itself and the seller internals.
type PublicProposalResponse struct {
	ID              string                    `json:"id"`
	Client          entities.ProposalClient   `json:"client"`
	Items           []entities.ProposalItem   `json:"items"`
	Subtotal        float64                   `json:"subtotal"`
	DiscountPercent float64                   `json:"discount_percent"`
	Shipping        entities.ProposalShipping `json:"shipping"`
	Total           float64                   `json:"total"`
	SellerName      string                    `json:"seller_name"`
	Status          string                    `json:"status"`
	InvoicingTerm   *int                      `json:"invoicing_term,omitempty"`
	PaymentURL      string                    `json:"payment_url,omitempty"`
	AcceptedAt      *time.Time                `json:"accepted_at,omitempty"`
}

func FromPublicProposal(p entities.Proposal) PublicProposalResponse {
	items := p.Items
	if items == nil {
		items = []entities.ProposalItem{}
	}
	return PublicProposalResponse{
		ID:              p.ID,
		Client:          p.Client,
		Items:           items,
		Subtotal:        p.Subtotal,
		DiscountPercent: p.DiscountPercent,
		Shipping:        p.Shipping,
		Total:           p.Total,
		SellerName:      p.SellerName,
		Status:          string(p.Status),
		InvoicingTerm:   p.InvoicingTerm,
		PaymentURL:      p.PaymentURL,
		AcceptedAt:      p.AcceptedAt,
	}
}
