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

//go:generate mockgen -source=commission_usecase.go -destination=../adapter/http/handlers/mocks/mock_commission_usecase.go -package=mocks

var (
	ErrInvalidOrderID           = errors.New("invalid order id")
	ErrOrderNotFound            = errors.New("order not found")
	ErrOrderNotPayable          = errors.New("order payment is not confirmed")
	ErrOrderWithoutSeller       = errors.New("order has no seller")
	ErrCommissionAlreadySettled = errors.New("commission already approved for this order")
)

// ICommissionUseCase settles seller commissions for paid orders.
type ICommissionUseCase interface {
	Approve(ctx context.Context, actor entities.Actor, orderID string) (entities.CommissionParcela, error)
	ApproveBatch(ctx context.Context, actor entities.Actor, orderIDs []string) ([]entities.CommissionBatchResult, error)
}

type CommissionUseCase struct {
	orders      interfaces.IOrderRepository
	commissions interfaces.ICommissionRepository
	sellers     interfaces.ISellerRepository
	clock       clock.Clock
	log         *zap.Logger
}

var _ ICommissionUseCase = (*CommissionUseCase)(nil)

func NewCommissionUseCase(orders interfaces.IOrderRepository, commissions interfaces.ICommissionRepository, sellers interfaces.ISellerRepository, clk clock.Clock, log *zap.Logger) *CommissionUseCase {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CommissionUseCase{orders: orders, commissions: commissions, sellers: sellers, clock: clk, log: log}
}

// Approve creates the single commission parcela of a paid order.
//
// The parcela id is derived from the order id and written with a conditional
// insert, so two approvals racing on the same order produce one parcela; the
// loser gets ErrCommissionAlreadySettled.
func (u *CommissionUseCase) Approve(ctx context.Context, actor entities.Actor, orderID string) (entities.CommissionParcela, error) {
	if !actor.Can(entities.CapabilityApproveCommission) {
		return entities.CommissionParcela{}, ErrForbidden
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.CommissionParcela{}, ErrInvalidOrderID
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		u.log.Error("[commission][usecase] load order failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.CommissionParcela{}, err
	}
	if order.ID == "" {
		return entities.CommissionParcela{}, ErrOrderNotFound
	}
	if order.CommissionApproved {
		return entities.CommissionParcela{}, ErrCommissionAlreadySettled
	}
	if !order.PaymentStatus().Paid() {
		u.log.Info("[commission][usecase] order not paid", zap.String("order_id", orderID), zap.String("status_pagamento", order.StatusPagamento))
		return entities.CommissionParcela{}, ErrOrderNotPayable
	}
	if strings.TrimSpace(order.SellerID) == "" {
		return entities.CommissionParcela{}, ErrOrderWithoutSeller
	}

	percent := entities.DefaultCommissionPercent
	seller, err := u.sellers.GetByID(ctx, order.SellerID)
	if err != nil {
		u.log.Error("[commission][usecase] load seller failed", zap.String("order_id", orderID), zap.String("seller_id", order.SellerID), zap.Error(err))
		return entities.CommissionParcela{}, err
	}
	if seller.ID != "" {
		percent = seller.CommissionPercentOrDefault()
	}

	now := u.clock.Now().UTC()
	parcela := entities.CommissionParcela{
		ID:                entities.ParcelaID(order.ID, 1),
		OrderID:           order.ID,
		SellerID:          order.SellerID,
		ClientID:          order.ClientID,
		Origin:            entities.CommissionOriginOnline,
		NumeroParcela:     1,
		TotalParcelas:     1,
		Value:             entities.RoundCents(order.Value),
		CommissionPercent: percent,
		CommissionValue:   entities.Percentage(order.Value, percent),
		DueDate:           order.OrderDate,
		Status:            entities.ParcelaStatusAguardando,
		CommissionStatus:  entities.CommissionReleased,
		InvoiceURL:        order.InvoiceURL,
		CreatedAt:         now,
	}

	created, err := u.commissions.Create(ctx, parcela)
	if err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			u.log.Info("[commission][usecase] parcela already exists", zap.String("order_id", orderID))
			u.markApproved(ctx, order.ID, now)
			return entities.CommissionParcela{}, ErrCommissionAlreadySettled
		}
		u.log.Error("[commission][usecase] create parcela failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.CommissionParcela{}, err
	}

	u.markApproved(ctx, order.ID, now)

	u.log.Info("[commission][usecase] approved",
		zap.String("order_id", orderID),
		zap.String("seller_id", order.SellerID),
		zap.Float64("commission_value", created.CommissionValue),
		zap.String("actor_id", actor.ID),
	)
	return created, nil
}

// markApproved flags the order once its parcela exists. A failure is only
// logged; the next approval attempt finds the parcela and flags the order again.
func (u *CommissionUseCase) markApproved(ctx context.Context, orderID string, at time.Time) {
	if err := u.orders.MarkCommissionApproved(ctx, orderID, at); err != nil && !errors.Is(err, interfaces.ErrConditionFailed) {
		u.log.Error("[commission][usecase] mark order approved failed", zap.String("order_id", orderID), zap.Error(err))
	}
}

// ApproveBatch approves each order independently. Already settled orders are
// reported as skipped; other failures carry their message and do not stop the batch.
func (u *CommissionUseCase) ApproveBatch(ctx context.Context, actor entities.Actor, orderIDs []string) ([]entities.CommissionBatchResult, error) {
	if !actor.Can(entities.CapabilityApproveCommission) {
		return nil, ErrForbidden
	}

	results := make([]entities.CommissionBatchResult, 0, len(orderIDs))
	seen := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		res := entities.CommissionBatchResult{OrderID: id}
		parcela, err := u.Approve(ctx, actor, id)
		switch {
		case err == nil:
			res.Parcela = &parcela
		case errors.Is(err, ErrCommissionAlreadySettled):
			res.Skipped = true
		default:
			res.Error = err.Error()
		}
		results = append(results, res)
	}
	return results, nil
}
