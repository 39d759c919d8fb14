package memory

import (
	"context"
	"sort"
	"sync"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
)

type SellerRepository struct {
	mu        sync.RWMutex
	sellers   map[string]entities.Seller
	discounts map[string]map[string]entities.CategoryDiscount
}

var _ interfaces.ISellerRepository = (*SellerRepository)(nil)

func NewSellerRepository(seed ...entities.Seller) *SellerRepository {
	r := &SellerRepository{
		sellers:   make(map[string]entities.Seller, len(seed)),
		discounts: make(map[string]map[string]entities.CategoryDiscount),
	}
	for _, s := range seed {
		r.sellers[s.ID] = s
	}
	return r
}

func (r *SellerRepository) Put(s entities.Seller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sellers[s.ID] = s
}

func (r *SellerRepository) GetByID(_ context.Context, id string) (entities.Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sellers[id], nil
}

func (r *SellerRepository) ListCategoryDiscounts(_ context.Context, sellerID string) ([]entities.CategoryDiscount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.CategoryDiscount, 0, len(r.discounts[sellerID]))
	for _, d := range r.discounts[sellerID] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *SellerRepository) UpsertCategoryDiscount(_ context.Context, d entities.CategoryDiscount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.discounts[d.SellerID] == nil {
		r.discounts[d.SellerID] = make(map[string]entities.CategoryDiscount)
	}
	r.discounts[d.SellerID][d.Category] = d
	return nil
}

type ClientRepository struct {
	mu      sync.RWMutex
	clients map[string]entities.Client
}

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository(seed ...entities.Client) *ClientRepository {
	r := &ClientRepository{clients: make(map[string]entities.Client, len(seed))}
	for _, c := range seed {
		r.clients[c.ID] = c
	}
	return r
}

func (r *ClientRepository) Put(c entities.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
}

func (r *ClientRepository) GetByID(_ context.Context, id string) (entities.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.clients[id], nil
}
