package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
)

//go:generate mockgen -source=payment_gateway_interface.go -destination=mocks/mock_payment_gateway.go -package=mock_interfaces

// IPaymentGateway abstracts the payment provider (Mercado Pago).
//
// The back-office uses it to issue checkout links for the standard payment path
// and to look up payments announced by provider notifications.
type IPaymentGateway interface {
	CreatePaymentLink(ctx context.Context, req entities.PaymentLinkRequest) (string, error)
	GetPayment(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error)
}
