package payments

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing mercadopago.access_token")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidMercadoPagoPaymentID = errors.New("invalid mercado pago payment id")

const currencyBRL = "BRL"

// MercadoPagoOptions configures the gateway.
type MercadoPagoOptions struct {
	AccessToken     string
	Mock            bool
	NotificationURL string
	BackURL         string
}

// MercadoPagoGateway issues Checkout Pro links and reads payments.
//
// In mock mode no request leaves the process: links point to a fake checkout
// and every payment reads as approved.
type MercadoPagoGateway struct {
	payments    payment.Client
	preferences preference.Client
	opts        MercadoPagoOptions
	log         *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(opts MercadoPagoOptions, log *zap.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Mock {
		log.Info("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{opts: opts, log: log}, nil
	}

	if strings.TrimSpace(opts.AccessToken) == "" {
		log.Warn("[payment][gateway] missing access token")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(opts.AccessToken)
	if err != nil {
		log.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	log.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		payments:    payment.NewClient(cfg),
		preferences: preference.NewClient(cfg),
		opts:        opts,
		log:         log,
	}, nil
}

// CreatePaymentLink creates a checkout preference whose external_reference is
// the proposal id, so payment notifications can be matched back.
func (g *MercadoPagoGateway) CreatePaymentLink(ctx context.Context, req entities.PaymentLinkRequest) (string, error) {
	if g == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}
	if g.opts.Mock {
		link := fmt.Sprintf("https://mock.mercadopago.local/checkout/%s", req.ProposalID)
		g.log.Info("[payment][gateway] mock link created", zap.String("proposal_id", req.ProposalID))
		return link, nil
	}
	if g.preferences == nil {
		return "", ErrMercadoPagoGatewayNotConfigured
	}

	items := make([]preference.ItemRequest, 0, len(req.Items)+1)
	for i, it := range req.Items {
		id := it.SKU
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		items = append(items, preference.ItemRequest{
			ID:         id,
			Title:      it.Description,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			CurrencyID: currencyBRL,
		})
	}
	if req.ShippingCost > 0 {
		items = append(items, preference.ItemRequest{
			ID:         "frete",
			Title:      "Frete",
			Quantity:   1,
			UnitPrice:  req.ShippingCost,
			CurrencyID: currencyBRL,
		})
	}

	pr := preference.Request{
		Items:             items,
		ExternalReference: req.ProposalID,
		NotificationURL:   g.opts.NotificationURL,
	}
	if req.PayerEmail != "" {
		pr.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}
	if g.opts.BackURL != "" {
		pr.BackURLs = &preference.BackURLsRequest{Success: g.opts.BackURL, Pending: g.opts.BackURL, Failure: g.opts.BackURL}
	}

	resp, err := g.preferences.Create(ctx, pr)
	if err != nil {
		g.log.Warn("[payment][gateway] sdk preference create failed", zap.String("proposal_id", req.ProposalID), zap.Error(err))
		return "", err
	}
	g.log.Info("[payment][gateway] preference created", zap.String("proposal_id", req.ProposalID), zap.String("preference_id", resp.ID))

	if strings.HasPrefix(g.opts.AccessToken, "TEST-") && resp.SandboxInitPoint != "" {
		return resp.SandboxInitPoint, nil
	}
	return resp.InitPoint, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, providerPaymentID string) (entities.ProviderPayment, error) {
	if g == nil {
		return entities.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	providerPaymentID = strings.TrimSpace(providerPaymentID)

	if g.opts.Mock {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		raw, err := json.Marshal(map[string]any{
			"id":            providerPaymentID,
			"status":        "approved",
			"status_detail": "accredited",
			"date_approved": now,
		})
		if err != nil {
			return entities.ProviderPayment{}, err
		}
		g.log.Info("[payment][gateway] mock payment read", zap.String("payment_id", providerPaymentID))
		return entities.ProviderPayment{ID: providerPaymentID, Status: "approved", Raw: raw}, nil
	}
	if g.payments == nil {
		return entities.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return entities.ProviderPayment{}, ErrInvalidMercadoPagoPaymentID
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.log.Warn("[payment][gateway] sdk get failed", zap.String("payment_id", providerPaymentID), zap.Error(err))
		return entities.ProviderPayment{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		g.log.Error("[payment][gateway] response marshal failed", zap.String("payment_id", providerPaymentID), zap.Error(err))
		return entities.ProviderPayment{}, err
	}
	g.log.Info("[payment][gateway] payment read", zap.Int("payment_id", resp.ID), zap.String("status", resp.Status))

	return entities.ProviderPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Amount:            resp.TransactionAmount,
		Raw:               raw,
	}, nil
}
