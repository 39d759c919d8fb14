package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
)

//go:generate mockgen -source=billing_payment_repository_interface.go -destination=mocks/mock_billing_payment_repository.go -package=mock_interfaces

// IBillingPaymentRepository abstracts persistence for BillingPayment.
// Save is an upsert: providers notify the same payment more than once.
type IBillingPaymentRepository interface {
	Save(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.BillingPayment, error)
}
