// Package memory keeps every repository in process memory. It mirrors the
// conditional write semantics of the DynamoDB repositories and backs local
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
)

type ProposalRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Proposal
	now   func() time.Time
}

var _ interfaces.IProposalRepository = (*ProposalRepository)(nil)

func NewProposalRepository() *ProposalRepository {
	return &ProposalRepository{items: make(map[string]entities.Proposal), now: time.Now}
}

func (r *ProposalRepository) Create(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return entities.Proposal{}, interfaces.ErrAlreadyExists
	}
	r.items[p.ID] = cloneProposal(p)
	return cloneProposal(p), nil
}

func (r *ProposalRepository) GetByID(_ context.Context, id string) (entities.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProposal(r.items[id]), nil
}

func (r *ProposalRepository) GetByToken(_ context.Context, token string) (entities.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if token == "" {
		return entities.Proposal{}, nil
	}
	for _, p := range r.items {
		if p.Token == token {
			return cloneProposal(p), nil
		}
	}
	return entities.Proposal{}, nil
}

func (r *ProposalRepository) List(_ context.Context, f entities.ProposalFilter) ([]entities.Proposal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Proposal, 0, len(r.items))
	for _, p := range r.items {
		if f.SellerID != "" && p.SellerID != f.SellerID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.CreatedBefore != nil && !p.CreatedAt.Before(*f.CreatedBefore) {
			continue
		}
		out = append(out, cloneProposal(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProposalRepository) UpdateContent(_ context.Context, p entities.Proposal) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[p.ID]
	if !ok {
		return entities.Proposal{}, nil
	}
	if cur.Status != entities.ProposalStatusPendente {
		return entities.Proposal{}, interfaces.ErrConditionFailed
	}

	cur.Token = p.Token
	cur.Client = p.Client
	cur.Items = append([]entities.ProposalItem(nil), p.Items...)
	cur.Subtotal = p.Subtotal
	cur.DiscountPercent = p.DiscountPercent
	cur.Shipping = p.Shipping
	cur.Total = p.Total
	cur.SellerID = p.SellerID
	cur.SellerName = p.SellerName
	cur.UpdatedAt = p.UpdatedAt
	r.items[p.ID] = cur
	return cloneProposal(cur), nil
}

func (r *ProposalRepository) UpdateStatus(_ context.Context, id string, c entities.ProposalStatusChange) (entities.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok {
		return entities.Proposal{}, nil
	}
	if cur.Status != c.From {
		return entities.Proposal{}, interfaces.ErrConditionFailed
	}

	cur.Status = c.To
	cur.UpdatedAt = r.now().UTC()
	if c.ClearAcceptance {
		cur.AcceptedAt = nil
		cur.InvoicingTerm = nil
	}
	if c.AcceptedAt != nil {
		at := *c.AcceptedAt
		cur.AcceptedAt = &at
	}
	if c.InvoicingTerm != nil {
		term := *c.InvoicingTerm
		cur.InvoicingTerm = &term
	}
	if c.PaymentMethod != "" {
		cur.PaymentMethod = c.PaymentMethod
	}
	if c.PaymentURL != "" {
		cur.PaymentURL = c.PaymentURL
	}
	if c.ExternalOrderID != "" {
		cur.ExternalOrderID = c.ExternalOrderID
	}
	if c.Token != "" {
		cur.Token = c.Token
	}
	r.items[id] = cur
	return cloneProposal(cur), nil
}

func (r *ProposalRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func cloneProposal(p entities.Proposal) entities.Proposal {
	if p.Items != nil {
		p.Items = append([]entities.ProposalItem(nil), p.Items...)
	}
	return p
}
