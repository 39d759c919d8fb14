package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
)

//go:generate mockgen -source=party_repository_interface.go -destination=mocks/mock_party_repository.go -package=mock_interfaces

// ISellerRepository reads sellers and their per-category discounts.
type ISellerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Seller, error)
	ListCategoryDiscounts(ctx context.Context, sellerID string) ([]entities.CategoryDiscount, error)
	UpsertCategoryDiscount(ctx context.Context, d entities.CategoryDiscount) error
}

// IClientRepository reads registered clients (churches).
type IClientRepository interface {
	GetByID(ctx context.Context, id string) (entities.Client, error)
}
