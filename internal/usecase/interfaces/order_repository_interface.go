package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"time"
)

//go:generate mockgen -source=order_repository_interface.go -destination=mocks/mock_order_repository.go -package=mock_interfaces

// IOrderRepository reads placed orders and records commission approval.
//
// MarkCommissionApproved writes only when the flag is not set yet and reports
// ErrConditionFailed otherwise.
type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	LatestByClient(ctx context.Context, clientID string) (entities.Order, error)
	MarkCommissionApproved(ctx context.Context, id string, at time.Time) error
}

// ICommissionRepository persists commission parcelas.
//
// Create is a conditional insert: a parcela id that already exists yields
// ErrAlreadyExists and nothing is written.
type ICommissionRepository interface {
	Create(ctx context.Context, p entities.CommissionParcela) (entities.CommissionParcela, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.CommissionParcela, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]entities.CommissionParcela, error)
}
