package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
)

//go:generate mockgen -source=remote_procedure_interface.go -destination=mocks/mock_remote_procedure.go -package=mock_interfaces

// IOrderGateway is the create-external-order procedure (ERP order placement).
type IOrderGateway interface {
	CreateOrder(ctx context.Context, req entities.ExternalOrderRequest) (entities.ExternalOrderResult, error)
}

// IShippingQuoter is the quote-shipping procedure.
type IShippingQuoter interface {
	Quote(ctx context.Context, cep string, items []entities.CartItem) (entities.CarrierQuote, error)
}

// IMessageSender is the outbound WhatsApp channel. Callers treat it as
// fire-and-forget.
type IMessageSender interface {
	Send(ctx context.Context, to, body string) error
}

// IChangePublisher pushes change events to live subscribers.
type IChangePublisher interface {
	Publish(ctx context.Context, event entities.ChangeEvent)
}
