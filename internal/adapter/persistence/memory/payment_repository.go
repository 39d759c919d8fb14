package memory

import (
	"context"
	"sort"
	"sync"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
)

type BillingPaymentRepository struct {
	mu    sync.RWMutex
	items map[string]entities.BillingPayment
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentRepository)(nil)

func NewBillingPaymentRepository() *BillingPaymentRepository {
	return &BillingPaymentRepository{items: make(map[string]entities.BillingPayment)}
}

func (r *BillingPaymentRepository) Save(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return p, nil
}

func (r *BillingPaymentRepository) GetByID(_ context.Context, id string) (entities.BillingPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id], nil
}

func (r *BillingPaymentRepository) ListByProposalID(_ context.Context, proposalID string) ([]entities.BillingPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.BillingPayment, 0)
	for _, p := range r.items {
		if p.ProposalID == proposalID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
