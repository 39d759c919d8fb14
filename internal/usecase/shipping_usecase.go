package usecase

import (
	"context"
	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=shipping_usecase.go -destination=../adapter/http/handlers/mocks/mock_shipping_usecase.go -package=mocks

var (
	ErrInvalidManualShipping = errors.New("manual shipping requires carrier and a non-negative cost")
	ErrForbidden             = errors.New("operation not allowed for this role")
)

const shippingFallbackWarning = "Não foi possível consultar os Correios; valores de frete estimados pela tabela padrão."

// IShippingUseCase resolves shipping options for a destination and cart.
type IShippingUseCase interface {
	Resolve(ctx context.Context, cep *string, items []entities.CartItem, subtotal float64) (entities.ShippingQuote, error)
	Manual(actor entities.Actor, manual entities.ManualShipping) (entities.ShippingQuote, error)
}

type ShippingUseCase struct {
	quoter interfaces.IShippingQuoter
	policy entities.ShippingPolicy
	clock  clock.Clock
	log    *zap.Logger
}

var _ IShippingUseCase = (*ShippingUseCase)(nil)

func NewShippingUseCase(quoter interfaces.IShippingQuoter, policy entities.ShippingPolicy, clk clock.Clock, log *zap.Logger) *ShippingUseCase {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ShippingUseCase{quoter: quoter, policy: policy, clock: clk, log: log}
}

// Resolve builds the ordered option list.
//
// Without a CEP only free shipping (when eligible) and pickup are offered. With a
// CEP the carrier quote is requested; a failed quote falls back to the fixed table
// and sets Warning instead of failing.
func (u *ShippingUseCase) Resolve(ctx context.Context, cep *string, items []entities.CartItem, subtotal float64) (entities.ShippingQuote, error) {
	today := u.clock.Now()
	quote := entities.ShippingQuote{}

	if normalized := normalizeCEP(cep); normalized != "" {
		carriers, err := u.quote(ctx, normalized, items)
		if err != nil {
			u.log.Warn("[shipping][usecase] carrier quote failed; using fallback table", zap.String("cep", normalized), zap.Error(err))
			quote.Warning = shippingFallbackWarning
			carriers = entities.CarrierQuote{
				PAC:   &entities.CarrierRate{Price: u.policy.FallbackPAC, Days: u.policy.PACDays},
				SEDEX: &entities.CarrierRate{Price: u.policy.FallbackSEDEX, Days: u.policy.SEDEXDays},
			}
		}
		if carriers.PAC != nil {
			quote.Options = append(quote.Options, u.carrierOption(today, entities.ShippingMethodStandard, "PAC", *carriers.PAC, u.policy.PACDays))
		}
		if carriers.SEDEX != nil {
			quote.Options = append(quote.Options, u.carrierOption(today, entities.ShippingMethodExpress, "SEDEX", *carriers.SEDEX, u.policy.SEDEXDays))
		}
	}

	if u.policy.FreeShippingEligible(subtotal) {
		eta := entities.AddBusinessDays(today, u.policy.FreeDays)
		quote.Options = append(quote.Options, entities.ShippingOption{
			Type:          entities.ShippingMethodFree,
			Label:         "Frete grátis",
			Cost:          0,
			BusinessDays:  u.policy.FreeDays,
			EstimatedDate: &eta,
		})
	}

	quote.Options = append(quote.Options, entities.ShippingOption{
		Type:    entities.ShippingMethodPickup,
		Label:   "Retirada",
		Cost:    0,
		Address: u.policy.PickupAddress,
		Hours:   u.policy.PickupHours,
	})

	quote.Selected = defaultShippingSelection(quote.Options)
	return quote, nil
}

func (u *ShippingUseCase) quote(ctx context.Context, cep string, items []entities.CartItem) (entities.CarrierQuote, error) {
	if u.quoter == nil {
		return entities.CarrierQuote{}, errors.New("shipping quoter not configured")
	}
	q, err := u.quoter.Quote(ctx, cep, items)
	if err != nil {
		return entities.CarrierQuote{}, err
	}
	if q.PAC == nil && q.SEDEX == nil {
		return entities.CarrierQuote{}, errors.New("shipping quote returned no carrier")
	}
	return q, nil
}

func (u *ShippingUseCase) carrierOption(today time.Time, t entities.ShippingMethod, label string, rate entities.CarrierRate, defaultDays int) entities.ShippingOption {
	days := rate.Days
	if days <= 0 {
		days = defaultDays
	}
	eta := entities.AddBusinessDays(today, days)
	return entities.ShippingOption{
		Type:          t,
		Label:         label,
		Cost:          entities.RoundCents(rate.Price),
		BusinessDays:  days,
		EstimatedDate: &eta,
	}
}

// Manual replaces every computed option with the operator-supplied carrier.
func (u *ShippingUseCase) Manual(actor entities.Actor, m entities.ManualShipping) (entities.ShippingQuote, error) {
	if !actor.Can(entities.CapabilityManualShipping) {
		return entities.ShippingQuote{}, ErrForbidden
	}
	m.Carrier = strings.TrimSpace(m.Carrier)
	if m.Carrier == "" || m.Cost < 0 {
		return entities.ShippingQuote{}, ErrInvalidManualShipping
	}
	opt := entities.ShippingOption{
		Type:     entities.ShippingMethodManual,
		Label:    m.Carrier,
		Cost:     entities.RoundCents(m.Cost),
		LeadTime: strings.TrimSpace(m.LeadTime),
	}
	return entities.ShippingQuote{Options: []entities.ShippingOption{opt}, Selected: &opt, Manual: true}, nil
}

// defaultShippingSelection prefers free shipping, then PAC, then the cheapest option.
func defaultShippingSelection(options []entities.ShippingOption) *entities.ShippingOption {
	if len(options) == 0 {
		return nil
	}
	for _, preferred := range []entities.ShippingMethod{entities.ShippingMethodFree, entities.ShippingMethodStandard} {
		for i := range options {
			if options[i].Type == preferred {
				sel := options[i]
				return &sel
			}
		}
	}
	cheapest := options[0]
	for _, o := range options[1:] {
		if o.Cost < cheapest.Cost {
			cheapest = o
		}
	}
	return &cheapest
}

func normalizeCEP(cep *string) string {
	if cep == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range *cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
