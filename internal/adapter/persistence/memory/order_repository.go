package memory

import (
	"context"
	"sync"
	"time"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
)

type OrderRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Order
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(seed ...entities.Order) *OrderRepository {
	r := &OrderRepository{items: make(map[string]entities.Order, len(seed))}
	for _, o := range seed {
		r.items[o.ID] = o
	}
	return r
}

// Put stores o as received from the storefront.
func (r *OrderRepository) Put(o entities.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[o.ID] = o
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id], nil
}

func (r *OrderRepository) LatestByClient(_ context.Context, clientID string) (entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest entities.Order
	for _, o := range r.items {
		if o.ClientID != clientID {
			continue
		}
		if latest.ID == "" || o.OrderDate.After(latest.OrderDate) {
			latest = o
		}
	}
	return latest, nil
}

func (r *OrderRepository) MarkCommissionApproved(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok || o.CommissionApproved {
		return interfaces.ErrConditionFailed
	}
	o.CommissionApproved = true
	o.CommissionApprovedAt = &at
	r.items[id] = o
	return nil
}

type CommissionRepository struct {
	mu    sync.RWMutex
	items map[string]entities.CommissionParcela
}

var _ interfaces.ICommissionRepository = (*CommissionRepository)(nil)

func NewCommissionRepository() *CommissionRepository {
	return &CommissionRepository{items: make(map[string]entities.CommissionParcela)}
}

func (r *CommissionRepository) Create(_ context.Context, p entities.CommissionParcela) (entities.CommissionParcela, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; ok {
		return entities.CommissionParcela{}, interfaces.ErrAlreadyExists
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *CommissionRepository) ListByOrderID(_ context.Context, orderID string) ([]entities.CommissionParcela, error) {
	return r.filter(func(p entities.CommissionParcela) bool { return p.OrderID == orderID }), nil
}

func (r *CommissionRepository) ListBySellerID(_ context.Context, sellerID string) ([]entities.CommissionParcela, error) {
	return r.filter(func(p entities.CommissionParcela) bool { return p.SellerID == sellerID }), nil
}

func (r *CommissionRepository) filter(keep func(entities.CommissionParcela) bool) []entities.CommissionParcela {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.CommissionParcela, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
