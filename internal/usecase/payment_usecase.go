package usecase

import (
	"context"
	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

//go:generate mockgen -source=payment_usecase.go -destination=../adapter/http/handlers/mocks/mock_payment_usecase.go -package=mocks

var (
	ErrBillingPaymentNotFound     = errors.New("billing payment not found")
	ErrInvalidProviderPaymentID   = errors.New("invalid provider payment id")
	ErrPaymentWithoutReference    = errors.New("payment has no proposal reference")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayNotFound     = errors.New("payment not found at gateway")
)

// IPaymentUseCase reconciles provider payment notifications with proposals.
type IPaymentUseCase interface {
	HandleNotification(ctx context.Context, providerPaymentID string) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByProposalID(ctx context.Context, proposalID string) ([]entities.BillingPayment, error)
}

type PaymentUseCase struct {
	repo      interfaces.IBillingPaymentRepository
	gateway   interfaces.IPaymentGateway
	proposals IProposalUseCase
	clock     clock.Clock
	log       *zap.Logger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IBillingPaymentRepository, gateway interfaces.IPaymentGateway, proposals IProposalUseCase, clk clock.Clock, log *zap.Logger) *PaymentUseCase {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PaymentUseCase{repo: repo, gateway: gateway, proposals: proposals, clock: clk, log: log}
}

// HandleNotification looks the payment up at the provider, records it and
// confirms the referenced proposal when the payment is paid. Providers deliver
// the same notification more than once; every step is idempotent.
func (u *PaymentUseCase) HandleNotification(ctx context.Context, providerPaymentID string) (entities.BillingPayment, error) {
	providerPaymentID = strings.TrimSpace(providerPaymentID)
	if providerPaymentID == "" {
		return entities.BillingPayment{}, ErrInvalidProviderPaymentID
	}
	if u.gateway == nil {
		u.log.Error("[payment][usecase] gateway not configured", zap.String("payment_id", providerPaymentID))
		return entities.BillingPayment{}, errors.New("payment gateway not configured")
	}

	u.log.Info("[payment][usecase] notification received", zap.String("payment_id", providerPaymentID))
	pp, err := u.gateway.GetPayment(ctx, providerPaymentID)
	if err != nil {
		u.log.Warn("[payment][usecase] gateway lookup failed", zap.String("payment_id", providerPaymentID), zap.Error(err))
		switch {
		case isGatewayUnauthorized(err):
			return entities.BillingPayment{}, ErrPaymentGatewayUnauthorized
		case isGatewayNotFound(err):
			return entities.BillingPayment{}, ErrPaymentGatewayNotFound
		}
		return entities.BillingPayment{}, err
	}

	proposalID := strings.TrimSpace(pp.ExternalReference)
	if proposalID == "" {
		u.log.Warn("[payment][usecase] payment without external_reference", zap.String("payment_id", providerPaymentID))
		return entities.BillingPayment{}, ErrPaymentWithoutReference
	}

	var parsed map[string]interface{}
	if len(pp.Raw) > 0 {
		if err := json.Unmarshal(pp.Raw, &parsed); err != nil {
			u.log.Warn("[payment][usecase] provider payload unmarshal failed", zap.String("payment_id", providerPaymentID), zap.Error(err))
		}
	}

	status := entities.CanonicalPaymentStatus(pp.Status)
	saved, err := u.repo.Save(ctx, entities.BillingPayment{
		ID:           firstNonEmpty(pp.ID, providerPaymentID),
		ProposalID:   proposalID,
		Date:         u.clock.Now().UTC(),
		Status:       status,
		RawStatus:    pp.Status,
		Amount:       entities.RoundCents(pp.Amount),
		MPPayloadRaw: pp.Raw,
		MPPayload:    parsed,
	})
	if err != nil {
		u.log.Error("[payment][usecase] save payment failed", zap.String("payment_id", providerPaymentID), zap.String("proposal_id", proposalID), zap.Error(err))
		return entities.BillingPayment{}, err
	}

	if !status.Paid() {
		u.log.Info("[payment][usecase] payment not paid yet", zap.String("payment_id", saved.ID), zap.String("status", string(status)))
		return saved, nil
	}

	if _, err := u.proposals.ConfirmPayment(ctx, proposalID); err != nil {
		u.log.Error("[payment][usecase] confirm proposal failed", zap.String("payment_id", saved.ID), zap.String("proposal_id", proposalID), zap.Error(err))
		return saved, err
	}
	u.log.Info("[payment][usecase] proposal paid", zap.String("payment_id", saved.ID), zap.String("proposal_id", proposalID))
	return saved, nil
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.BillingPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.BillingPayment{}, ErrInvalidProviderPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.BillingPayment{}, err
	}
	if p.ID == "" {
		return entities.BillingPayment{}, ErrBillingPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) ListByProposalID(ctx context.Context, proposalID string) ([]entities.BillingPayment, error) {
	proposalID = strings.TrimSpace(proposalID)
	if proposalID == "" {
		return nil, ErrInvalidProposalID
	}
	return u.repo.ListByProposalID(ctx, proposalID)
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"not_found\"") || strings.Contains(msg, "\"status\":404")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
