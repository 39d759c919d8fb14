package remote

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"errors"
	"strings"
)

const FunctionCreateExternalOrder = "create-external-order"

var ErrOrderWithoutID = errors.New("create-external-order returned no order id")

type createOrderResponse struct {
	Success    bool   `json:"success"`
	OrderID    string `json:"order_id"`
	BlingID    any    `json:"bling_order_id"`
	PaymentURL string `json:"payment_url"`
}

// OrderGateway places ERP orders through the create-external-order function.
type OrderGateway struct {
	client *Client
}

var _ interfaces.IOrderGateway = (*OrderGateway)(nil)

func NewOrderGateway(client *Client) *OrderGateway {
	return &OrderGateway{client: client}
}

func (g *OrderGateway) CreateOrder(ctx context.Context, req entities.ExternalOrderRequest) (entities.ExternalOrderResult, error) {
	var resp createOrderResponse
	if err := g.client.Invoke(ctx, FunctionCreateExternalOrder, req, &resp); err != nil {
		return entities.ExternalOrderResult{}, err
	}

	orderID := strings.TrimSpace(resp.OrderID)
	if orderID == "" && resp.BlingID != nil {
		orderID = strings.TrimSpace(anyToString(resp.BlingID))
	}
	if orderID == "" {
		return entities.ExternalOrderResult{}, ErrOrderWithoutID
	}
	return entities.ExternalOrderResult{OrderID: orderID, PaymentURL: strings.TrimSpace(resp.PaymentURL)}, nil
}
