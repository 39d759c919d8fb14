package remote

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"fmt"
	"strconv"
)

const FunctionQuoteShipping = "quote-shipping"

type quoteShippingRequest struct {
	CEP   string          `json:"cep"`
	Items []quoteCartItem `json:"items"`
}

type quoteCartItem struct {
	Quantity int `json:"quantity"`
}

type carrierRate struct {
	Price any `json:"price"`
	Days  int `json:"days"`
}

type quoteShippingResponse struct {
	PAC   *carrierRate `json:"pac"`
	SEDEX *carrierRate `json:"sedex"`
}

// ShippingQuoter requests carrier prices through the quote-shipping function.
type ShippingQuoter struct {
	client *Client
}

var _ interfaces.IShippingQuoter = (*ShippingQuoter)(nil)

func NewShippingQuoter(client *Client) *ShippingQuoter {
	return &ShippingQuoter{client: client}
}

func (q *ShippingQuoter) Quote(ctx context.Context, cep string, items []entities.CartItem) (entities.CarrierQuote, error) {
	req := quoteShippingRequest{CEP: cep, Items: make([]quoteCartItem, 0, len(items))}
	for _, it := range items {
		req.Items = append(req.Items, quoteCartItem{Quantity: it.Quantity})
	}

	var resp quoteShippingResponse
	if err := q.client.Invoke(ctx, FunctionQuoteShipping, req, &resp); err != nil {
		return entities.CarrierQuote{}, err
	}

	out := entities.CarrierQuote{}
	var err error
	if out.PAC, err = toRate(resp.PAC); err != nil {
		return entities.CarrierQuote{}, fmt.Errorf("pac: %w", err)
	}
	if out.SEDEX, err = toRate(resp.SEDEX); err != nil {
		return entities.CarrierQuote{}, fmt.Errorf("sedex: %w", err)
	}
	return out, nil
}

// toRate accepts the price as a JSON number or a numeric string ("29,90" included).
func toRate(r *carrierRate) (*entities.CarrierRate, error) {
	if r == nil || r.Price == nil {
		return nil, nil
	}
	var price float64
	switch v := r.Price.(type) {
	case float64:
		price = v
	case string:
		p, err := parseDecimalString(v)
		if err != nil {
			return nil, err
		}
		price = p
	default:
		return nil, fmt.Errorf("unexpected price type %T", r.Price)
	}
	if price < 0 {
		return nil, fmt.Errorf("negative price %v", price)
	}
	return &entities.CarrierRate{Price: price, Days: r.Days}, nil
}

func parseDecimalString(s string) (float64, error) {
	b := []byte(s)
	for i := range b {
		if b[i] == ',' {
			b[i] = '.'
		}
	}
	return strconv.ParseFloat(string(b), 64)
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
