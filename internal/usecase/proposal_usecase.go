package usecase

import (
	"context"
	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=proposal_usecase.go -destination=../adapter/http/handlers/mocks/mock_proposal_usecase.go -package=mocks

var (
	ErrProposalNotFound          = errors.New("proposal not found")
	ErrInvalidProposalID         = errors.New("invalid proposal id")
	ErrInvalidProposalToken      = errors.New("invalid proposal token")
	ErrInvalidProposalInput      = errors.New("invalid proposal input")
	ErrInvalidDiscount           = errors.New("discount must be between 0 and 100")
	ErrInvalidInvoicingTerm      = errors.New("invoicing term must be 30, 60 or 90 days")
	ErrInvalidPaymentMode        = errors.New("invalid payment mode")
	ErrProposalNotEditable       = errors.New("proposal can only be edited while pending")
	ErrProposalNotDeletable      = errors.New("invoiced or paid proposals cannot be deleted")
	ErrProposalStatusChanged     = errors.New("proposal status changed concurrently")
	ErrShippingOptionUnavailable = errors.New("shipping option unavailable for this destination")
	ErrSellerNotFound            = errors.New("seller not found")
	ErrClientNotFound            = errors.New("client not found")
)

const (
	procedureCreateOrder = "create-external-order"
	paymentLinkWarning   = "Pedido criado, mas o link de pagamento não pôde ser gerado."
)

// IProposalUseCase exposes the proposal lifecycle.
//
// Every status change goes through entities.NextProposalStatus; remote failures
// leave the stored status untouched.
type IProposalUseCase interface {
	Create(ctx context.Context, actor entities.Actor, in ProposalInput) (ProposalResult, error)
	Edit(ctx context.Context, actor entities.Actor, id string, in ProposalInput) (ProposalResult, error)
	Get(ctx context.Context, id string) (entities.Proposal, error)
	GetByToken(ctx context.Context, token string) (entities.Proposal, error)
	List(ctx context.Context, filter entities.ProposalFilter) ([]entities.Proposal, error)
	Accept(ctx context.Context, token string, invoicingTerm *int) (entities.Proposal, error)
	GeneratePayment(ctx context.Context, actor entities.Actor, id string, mode entities.PaymentMode) (ProposalResult, error)
	ApproveFinancial(ctx context.Context, actor entities.Actor, id string, invoicingTerm *int) (entities.Proposal, error)
	RejectFinancial(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error)
	ReturnToPending(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error)
	Cancel(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error)
	Delete(ctx context.Context, actor entities.Actor, id string) error
	ConfirmPayment(ctx context.Context, id string) (entities.Proposal, error)
	ExpireStale(ctx context.Context, ttl time.Duration) (int, error)
}

// ProposalInput is the seller-supplied content of a proposal.
type ProposalInput struct {
	Client          entities.ProposalClient
	SellerID        string
	Items           []entities.ProposalItem
	DiscountPercent float64
	Shipping        ShippingSelection
}

// ShippingSelection picks a resolver option by method (empty = default
// selection) or carries a manual override.
type ShippingSelection struct {
	Method entities.ShippingMethod
	Manual *entities.ManualShipping
}

// ProposalResult carries a proposal plus a non-fatal operator warning.
type ProposalResult struct {
	Proposal entities.Proposal
	Warning  string
}

// ProposalUseCaseDeps groups the collaborators of ProposalUseCase.
type ProposalUseCaseDeps struct {
	Repo          interfaces.IProposalRepository
	Clients       interfaces.IClientRepository
	Sellers       interfaces.ISellerRepository
	Shipping      IShippingUseCase
	Orders        interfaces.IOrderGateway
	Payments      interfaces.IPaymentGateway
	Messages      interfaces.IMessageSender
	Changes       interfaces.IChangePublisher
	Clock         clock.Clock
	Log           *zap.Logger
	PublicBaseURL string
}

type ProposalUseCase struct {
	repo          interfaces.IProposalRepository
	clients       interfaces.IClientRepository
	sellers       interfaces.ISellerRepository
	shipping      IShippingUseCase
	orders        interfaces.IOrderGateway
	payments      interfaces.IPaymentGateway
	messages      interfaces.IMessageSender
	changes       interfaces.IChangePublisher
	clock         clock.Clock
	log           *zap.Logger
	publicBaseURL string
}

var _ IProposalUseCase = (*ProposalUseCase)(nil)

func NewProposalUseCase(d ProposalUseCaseDeps) *ProposalUseCase {
	if d.Clock == nil {
		d.Clock = clock.NewSystem(nil)
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &ProposalUseCase{
		repo:          d.Repo,
		clients:       d.Clients,
		sellers:       d.Sellers,
		shipping:      d.Shipping,
		orders:        d.Orders,
		payments:      d.Payments,
		messages:      d.Messages,
		changes:       d.Changes,
		clock:         d.Clock,
		log:           d.Log,
		publicBaseURL: strings.TrimRight(d.PublicBaseURL, "/"),
	}
}

func (u *ProposalUseCase) Create(ctx context.Context, actor entities.Actor, in ProposalInput) (ProposalResult, error) {
	p, warning, err := u.buildContent(ctx, actor, entities.Proposal{}, in)
	if err != nil {
		u.log.Info("[proposal][usecase] create rejected", zap.String("seller_id", in.SellerID), zap.Error(err))
		return ProposalResult{}, err
	}

	now := u.clock.Now().UTC()
	p.ID = uuid.NewString()
	p.Token = uuid.NewString()
	p.Status = entities.ProposalStatusPendente
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		u.log.Error("[proposal][usecase] create failed", zap.String("proposal_id", p.ID), zap.Error(err))
		return ProposalResult{}, err
	}
	u.log.Info("[proposal][usecase] created", zap.String("proposal_id", created.ID), zap.Float64("total", created.Total))

	u.publish(ctx, created)
	u.sendLink(ctx, created)
	return ProposalResult{Proposal: created, Warning: warning}, nil
}

// Edit rewrites a pending proposal and issues a new token so links shared
// before the edit stop resolving.
func (u *ProposalUseCase) Edit(ctx context.Context, actor entities.Actor, id string, in ProposalInput) (ProposalResult, error) {
	current, err := u.Get(ctx, id)
	if err != nil {
		return ProposalResult{}, err
	}
	if !current.Status.Editable() {
		return ProposalResult{}, ErrProposalNotEditable
	}

	p, warning, err := u.buildContent(ctx, actor, current, in)
	if err != nil {
		u.log.Info("[proposal][usecase] edit rejected", zap.String("proposal_id", current.ID), zap.Error(err))
		return ProposalResult{}, err
	}
	p.Token = uuid.NewString()
	p.UpdatedAt = u.clock.Now().UTC()

	updated, err := u.repo.UpdateContent(ctx, p)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			return ProposalResult{}, ErrProposalNotEditable
		}
		u.log.Error("[proposal][usecase] edit failed", zap.String("proposal_id", p.ID), zap.Error(err))
		return ProposalResult{}, err
	}
	if updated.ID == "" {
		return ProposalResult{}, ErrProposalNotFound
	}
	u.log.Info("[proposal][usecase] edited", zap.String("proposal_id", updated.ID), zap.Float64("total", updated.Total))

	u.publish(ctx, updated)
	u.sendLink(ctx, updated)
	return ProposalResult{Proposal: updated, Warning: warning}, nil
}

// buildContent validates in and fills the content fields of base.
func (u *ProposalUseCase) buildContent(ctx context.Context, actor entities.Actor, base entities.Proposal, in ProposalInput) (entities.Proposal, string, error) {
	if err := validateProposalInput(in); err != nil {
		return entities.Proposal{}, "", err
	}

	client := in.Client
	client.ID = strings.TrimSpace(client.ID)
	if client.ID != "" && u.clients != nil {
		registered, err := u.clients.GetByID(ctx, client.ID)
		if err != nil {
			return entities.Proposal{}, "", err
		}
		if registered.ID == "" {
			return entities.Proposal{}, "", ErrClientNotFound
		}
		client = mergeClient(client, registered)
	}

	seller, err := u.sellers.GetByID(ctx, strings.TrimSpace(in.SellerID))
	if err != nil {
		return entities.Proposal{}, "", err
	}
	if seller.ID == "" {
		return entities.Proposal{}, "", ErrSellerNotFound
	}

	p := base
	p.Client = client
	p.Items = append([]entities.ProposalItem(nil), in.Items...)
	p.DiscountPercent = in.DiscountPercent
	p.SellerID = seller.ID
	p.SellerName = seller.Name

	subtotal := entities.ComputeTotals(p.Items, 0, 0).Subtotal
	shipping, warning, err := u.resolveShipping(ctx, actor, client.CEP, p.Items, subtotal, in.Shipping)
	if err != nil {
		return entities.Proposal{}, "", err
	}
	p.Shipping = shipping
	p.ApplyTotals()
	return p, warning, nil
}

func (u *ProposalUseCase) resolveShipping(ctx context.Context, actor entities.Actor, cep string, items []entities.ProposalItem, subtotal float64, sel ShippingSelection) (entities.ProposalShipping, string, error) {
	if sel.Manual != nil || sel.Method == entities.ShippingMethodManual {
		if sel.Manual == nil {
			return entities.ProposalShipping{}, "", ErrInvalidManualShipping
		}
		q, err := u.shipping.Manual(actor, *sel.Manual)
		if err != nil {
			return entities.ProposalShipping{}, "", err
		}
		return entities.ProposalShipping{
			Method:   entities.ShippingMethodManual,
			Carrier:  q.Selected.Label,
			Cost:     q.Selected.Cost,
			LeadTime: q.Selected.LeadTime,
		}, "", nil
	}

	cart := make([]entities.CartItem, 0, len(items))
	for _, it := range items {
		cart = append(cart, entities.CartItem{Quantity: it.Quantity})
	}
	var cepPtr *string
	if strings.TrimSpace(cep) != "" {
		cepPtr = &cep
	}
	q, err := u.shipping.Resolve(ctx, cepPtr, cart, subtotal)
	if err != nil {
		return entities.ProposalShipping{}, "", err
	}

	var opt entities.ShippingOption
	if sel.Method == "" {
		if q.Selected == nil {
			return entities.ProposalShipping{}, "", ErrShippingOptionUnavailable
		}
		opt = *q.Selected
	} else {
		found, ok := q.Find(sel.Method)
		if !ok {
			return entities.ProposalShipping{}, "", ErrShippingOptionUnavailable
		}
		opt = found
	}

	out := entities.ProposalShipping{Method: opt.Type, Carrier: opt.Label, Cost: opt.Cost}
	if opt.BusinessDays > 0 {
		out.LeadTime = fmt.Sprintf("%d dias úteis", opt.BusinessDays)
	}
	return out, q.Warning, nil
}

func (u *ProposalUseCase) Get(ctx context.Context, id string) (entities.Proposal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Proposal{}, ErrInvalidProposalID
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

// GetByToken resolves the public link. Only the current token resolves.
func (u *ProposalUseCase) GetByToken(ctx context.Context, token string) (entities.Proposal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Proposal{}, ErrInvalidProposalToken
	}
	p, err := u.repo.GetByToken(ctx, token)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.ID == "" || p.Token != token {
		return entities.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *ProposalUseCase) List(ctx context.Context, filter entities.ProposalFilter) ([]entities.Proposal, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidProposalInput
	}
	return u.repo.List(ctx, filter)
}

// Accept is the client-side acceptance through the public token link.
func (u *ProposalUseCase) Accept(ctx context.Context, token string, invoicingTerm *int) (entities.Proposal, error) {
	if invoicingTerm != nil && !entities.ValidInvoicingTerm(*invoicingTerm) {
		return entities.Proposal{}, ErrInvalidInvoicingTerm
	}
	p, err := u.GetByToken(ctx, token)
	if err != nil {
		return entities.Proposal{}, err
	}
	now := u.clock.Now().UTC()
	return u.transition(ctx, p, entities.ProposalEventAccept, entities.ProposalStatusChange{
		AcceptedAt:      &now,
		InvoicingTerm:   invoicingTerm,
		ClearAcceptance: true,
	})
}

// GeneratePayment runs after client acceptance. Billing-eligible clients that
// chose a term go to financial approval; everyone else gets an ERP order and a
// payment link.
func (u *ProposalUseCase) GeneratePayment(ctx context.Context, actor entities.Actor, id string, mode entities.PaymentMode) (ProposalResult, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return ProposalResult{}, err
	}

	eligible, err := u.billingEligible(ctx, p)
	if err != nil {
		return ProposalResult{}, err
	}
	if eligible {
		updated, err := u.transition(ctx, p, entities.ProposalEventRequestInvoicing, entities.ProposalStatusChange{
			PaymentMethod: string(entities.PaymentModeFaturamento),
		})
		if err != nil {
			return ProposalResult{}, err
		}
		u.log.Info("[proposal][usecase] sent to financial approval", zap.String("proposal_id", p.ID), zap.String("actor_id", actor.ID))
		return ProposalResult{Proposal: updated}, nil
	}

	if !entities.ValidImmediatePaymentMode(mode) {
		return ProposalResult{}, ErrInvalidPaymentMode
	}
	if _, err := entities.NextProposalStatus(p.Status, entities.ProposalEventGeneratePayment); err != nil {
		return ProposalResult{}, err
	}

	req, err := u.buildOrderRequest(ctx, p, mode, nil)
	if err != nil {
		return ProposalResult{}, err
	}
	res, err := u.orders.CreateOrder(ctx, req)
	if err != nil {
		rce := newRemoteCallError(procedureCreateOrder, err)
		u.log.Warn("[proposal][usecase] create order failed", zap.String("proposal_id", p.ID), zap.String("message", rce.Message), zap.Error(err))
		return ProposalResult{}, rce
	}

	warning := ""
	paymentURL := res.PaymentURL
	if paymentURL == "" && u.payments != nil {
		link, linkErr := u.payments.CreatePaymentLink(ctx, entities.PaymentLinkRequest{
			ProposalID:      p.ID,
			ExternalOrderID: res.OrderID,
			Description:     fmt.Sprintf("Proposta %s", p.ID),
			Items:           req.Items,
			ShippingCost:    req.ShippingCost,
		})
		if linkErr != nil {
			u.log.Warn("[proposal][usecase] payment link failed", zap.String("proposal_id", p.ID), zap.String("order_id", res.OrderID), zap.Error(linkErr))
			warning = paymentLinkWarning
		}
		paymentURL = link
	}

	updated, err := u.transition(ctx, p, entities.ProposalEventGeneratePayment, entities.ProposalStatusChange{
		PaymentMethod:   string(mode),
		PaymentURL:      paymentURL,
		ExternalOrderID: res.OrderID,
	})
	if err != nil {
		u.log.Error("[proposal][usecase] order placed but status write failed", zap.String("proposal_id", p.ID), zap.String("order_id", res.OrderID), zap.Error(err))
		return ProposalResult{}, err
	}
	u.log.Info("[proposal][usecase] payment generated", zap.String("proposal_id", p.ID), zap.String("order_id", res.OrderID))
	return ProposalResult{Proposal: updated, Warning: warning}, nil
}

// ApproveFinancial records the approval and places the FATURAMENTO order.
// A failed order leaves the proposal in APROVADA_FATURAMENTO; calling again
// retries the order placement.
func (u *ProposalUseCase) ApproveFinancial(ctx context.Context, actor entities.Actor, id string, invoicingTerm *int) (entities.Proposal, error) {
	if !actor.Can(entities.CapabilityFinancialApproval) {
		return entities.Proposal{}, ErrForbidden
	}
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}

	term := invoicingTerm
	if term == nil {
		term = p.InvoicingTerm
	}
	if term == nil || !entities.ValidInvoicingTerm(*term) {
		return entities.Proposal{}, ErrInvalidInvoicingTerm
	}

	switch p.Status {
	case entities.ProposalStatusAguardandoAprovacaoFinanceira:
		p, err = u.transition(ctx, p, entities.ProposalEventApproveFinancial, entities.ProposalStatusChange{InvoicingTerm: term})
		if err != nil {
			return entities.Proposal{}, err
		}
		u.log.Info("[proposal][usecase] financial approval recorded", zap.String("proposal_id", p.ID), zap.String("actor_id", actor.ID))
	case entities.ProposalStatusAprovadaFaturamento:
	default:
		return entities.Proposal{}, &entities.TransitionError{From: p.Status, Event: entities.ProposalEventApproveFinancial}
	}

	req, err := u.buildOrderRequest(ctx, p, entities.PaymentModeFaturamento, term)
	if err != nil {
		return entities.Proposal{}, err
	}
	res, err := u.orders.CreateOrder(ctx, req)
	if err != nil {
		rce := newRemoteCallError(procedureCreateOrder, err)
		u.log.Warn("[proposal][usecase] invoicing order failed", zap.String("proposal_id", p.ID), zap.String("message", rce.Message), zap.Error(err))
		return entities.Proposal{}, rce
	}

	updated, err := u.transition(ctx, p, entities.ProposalEventInvoice, entities.ProposalStatusChange{ExternalOrderID: res.OrderID})
	if err != nil {
		u.log.Error("[proposal][usecase] invoiced but status write failed", zap.String("proposal_id", p.ID), zap.String("order_id", res.OrderID), zap.Error(err))
		return entities.Proposal{}, err
	}
	u.log.Info("[proposal][usecase] invoiced", zap.String("proposal_id", p.ID), zap.String("order_id", res.OrderID), zap.Int("term", *term))
	return updated, nil
}

func (u *ProposalUseCase) RejectFinancial(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error) {
	if !actor.Can(entities.CapabilityFinancialApproval) {
		return entities.Proposal{}, ErrForbidden
	}
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	return u.transition(ctx, p, entities.ProposalEventRejectFinancial, entities.ProposalStatusChange{})
}

// ReturnToPending sends the proposal back to the seller with a fresh token and
// drops the previous acceptance, so the next one chooses the term again.
func (u *ProposalUseCase) ReturnToPending(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	updated, err := u.transition(ctx, p, entities.ProposalEventReturnToPending, entities.ProposalStatusChange{
		Token:           uuid.NewString(),
		ClearAcceptance: true,
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	u.log.Info("[proposal][usecase] returned to pending", zap.String("proposal_id", p.ID), zap.String("actor_id", actor.ID))
	u.sendLink(ctx, updated)
	return updated, nil
}

func (u *ProposalUseCase) Cancel(ctx context.Context, actor entities.Actor, id string) (entities.Proposal, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	updated, err := u.transition(ctx, p, entities.ProposalEventCancel, entities.ProposalStatusChange{})
	if err != nil {
		return entities.Proposal{}, err
	}
	u.log.Info("[proposal][usecase] cancelled", zap.String("proposal_id", p.ID), zap.String("actor_id", actor.ID))
	return updated, nil
}

func (u *ProposalUseCase) Delete(ctx context.Context, actor entities.Actor, id string) error {
	if !actor.Can(entities.CapabilityDeleteProposal) {
		return ErrForbidden
	}
	p, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.Status.Deletable() {
		return ErrProposalNotDeletable
	}
	if err := u.repo.Delete(ctx, p.ID); err != nil {
		u.log.Error("[proposal][usecase] delete failed", zap.String("proposal_id", p.ID), zap.Error(err))
		return err
	}
	u.log.Info("[proposal][usecase] deleted", zap.String("proposal_id", p.ID), zap.String("actor_id", actor.ID))
	if u.changes != nil {
		u.changes.Publish(ctx, entities.ChangeEvent{Entity: entities.ChangeEntityProposal, EntityID: p.ID, Status: "deleted", At: u.clock.Now().UTC()})
	}
	return nil
}

// ConfirmPayment moves a proposal to PAGO. Repeated confirmations are no-ops.
func (u *ProposalUseCase) ConfirmPayment(ctx context.Context, id string) (entities.Proposal, error) {
	p, err := u.Get(ctx, id)
	if err != nil {
		return entities.Proposal{}, err
	}
	if p.Status == entities.ProposalStatusPago {
		return p, nil
	}
	return u.transition(ctx, p, entities.ProposalEventConfirmPayment, entities.ProposalStatusChange{})
}

// ExpireStale expires proposals created more than ttl ago that are still
// waiting on the client.
func (u *ProposalUseCase) ExpireStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := u.clock.Now().UTC().Add(-ttl)
	expired := 0
	for _, st := range entities.ExpirableStatuses() {
		stale, err := u.repo.List(ctx, entities.ProposalFilter{Status: st, CreatedBefore: &cutoff})
		if err != nil {
			return expired, err
		}
		for _, p := range stale {
			if _, err := u.transition(ctx, p, entities.ProposalEventExpire, entities.ProposalStatusChange{}); err != nil {
				u.log.Warn("[proposal][usecase] expire skipped", zap.String("proposal_id", p.ID), zap.Error(err))
				continue
			}
			expired++
		}
	}
	return expired, nil
}

func (u *ProposalUseCase) transition(ctx context.Context, p entities.Proposal, event entities.ProposalEvent, change entities.ProposalStatusChange) (entities.Proposal, error) {
	next, err := entities.NextProposalStatus(p.Status, event)
	if err != nil {
		return entities.Proposal{}, err
	}
	change.From = p.Status
	change.To = next

	updated, err := u.repo.UpdateStatus(ctx, p.ID, change)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			u.log.Warn("[proposal][usecase] status changed concurrently", zap.String("proposal_id", p.ID), zap.String("expected", string(p.Status)))
			return entities.Proposal{}, ErrProposalStatusChanged
		}
		u.log.Error("[proposal][usecase] status write failed", zap.String("proposal_id", p.ID), zap.String("event", string(event)), zap.Error(err))
		return entities.Proposal{}, err
	}
	if updated.ID == "" {
		return entities.Proposal{}, ErrProposalNotFound
	}
	u.log.Info("[proposal][usecase] status changed", zap.String("proposal_id", p.ID), zap.String("from", string(change.From)), zap.String("to", string(next)))
	u.publish(ctx, updated)
	return updated, nil
}

func (u *ProposalUseCase) billingEligible(ctx context.Context, p entities.Proposal) (bool, error) {
	if p.InvoicingTerm == nil || p.Client.ID == "" || u.clients == nil {
		return false, nil
	}
	c, err := u.clients.GetByID(ctx, p.Client.ID)
	if err != nil {
		return false, err
	}
	return c.ID != "" && c.CanInvoice, nil
}

// buildOrderRequest prices the items for the ERP. Representante sellers get
// the per-category discount table instead of the proposal's global discount,
// so the invoiced total may differ from the one shown while editing.
// Categories missing from the table keep the proposal discount.
func (u *ProposalUseCase) buildOrderRequest(ctx context.Context, p entities.Proposal, mode entities.PaymentMode, term *int) (entities.ExternalOrderRequest, error) {
	discountFor := func(entities.ProposalItem) float64 { return p.DiscountPercent }

	seller, err := u.sellers.GetByID(ctx, p.SellerID)
	if err != nil {
		return entities.ExternalOrderRequest{}, err
	}
	if seller.IsRepresentante() {
		discounts, err := u.sellers.ListCategoryDiscounts(ctx, seller.ID)
		if err != nil {
			return entities.ExternalOrderRequest{}, err
		}
		byCategory := make(map[string]float64, len(discounts))
		for _, d := range discounts {
			byCategory[strings.ToUpper(d.Category)] = d.Percent
		}
		discountFor = func(it entities.ProposalItem) float64 {
			if pct, ok := byCategory[strings.ToUpper(it.Category)]; ok {
				return pct
			}
			return p.DiscountPercent
		}
	}

	items := make([]entities.ExternalOrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, entities.ExternalOrderItem{
			Description:    it.Title,
			SKU:            it.SKU,
			Quantity:       it.Quantity,
			UnitPrice:      entities.DiscountedUnitPrice(it.UnitPrice, discountFor(it)),
			ReferencePrice: it.UnitPrice,
		})
	}

	return entities.ExternalOrderRequest{
		ProposalID:     p.ID,
		Client:         p.Client,
		Items:          items,
		ShippingCost:   p.Shipping.Cost,
		ShippingMethod: p.Shipping.Method,
		Carrier:        p.Shipping.Carrier,
		PaymentMode:    mode,
		InvoicingTerm:  term,
		SellerID:       p.SellerID,
		ContactRef:     p.Client.Phone,
	}, nil
}

func (u *ProposalUseCase) publish(ctx context.Context, p entities.Proposal) {
	if u.changes == nil {
		return
	}
	u.changes.Publish(ctx, entities.ChangeEvent{
		Entity:     entities.ChangeEntityProposal,
		EntityID:   p.ID,
		Status:     string(p.Status),
		PaymentURL: p.PaymentURL,
		At:         u.clock.Now().UTC(),
	})
}

// sendLink is fire-and-forget: a failed message never fails the proposal.
func (u *ProposalUseCase) sendLink(ctx context.Context, p entities.Proposal) {
	if u.messages == nil || strings.TrimSpace(p.Client.Phone) == "" {
		return
	}
	body := fmt.Sprintf("Olá, %s! Sua proposta de pedido está disponível em %s", p.Client.Name, u.PublicLink(p))
	if err := u.messages.Send(ctx, p.Client.Phone, body); err != nil {
		u.log.Warn("[proposal][usecase] whatsapp link not sent", zap.String("proposal_id", p.ID), zap.Error(err))
	}
}

// PublicLink is the client-facing URL of the proposal's current token.
func (u *ProposalUseCase) PublicLink(p entities.Proposal) string {
	return fmt.Sprintf("%s/proposta/%s", u.publicBaseURL, p.Token)
}

func validateProposalInput(in ProposalInput) error {
	if strings.TrimSpace(in.SellerID) == "" {
		return ErrInvalidProposalInput
	}
	if strings.TrimSpace(in.Client.ID) == "" && strings.TrimSpace(in.Client.Name) == "" {
		return ErrInvalidProposalInput
	}
	if len(in.Items) == 0 {
		return ErrInvalidProposalInput
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.VariantID) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return ErrInvalidProposalInput
		}
	}
	if !entities.ValidDiscount(in.DiscountPercent) {
		return ErrInvalidDiscount
	}
	if in.Shipping.Manual != nil && (strings.TrimSpace(in.Shipping.Manual.Carrier) == "" || in.Shipping.Manual.Cost < 0) {
		return ErrInvalidManualShipping
	}
	return nil
}

func mergeClient(in entities.ProposalClient, registered entities.Client) entities.ProposalClient {
	out := in
	out.ID = registered.ID
	if strings.TrimSpace(out.Name) == "" {
		out.Name = registered.Name
	}
	if strings.TrimSpace(out.Document) == "" {
		out.Document = registered.Document
	}
	if strings.TrimSpace(out.CEP) == "" {
		out.CEP = registered.CEP
	}
	if strings.TrimSpace(out.Phone) == "" {
		out.Phone = registered.Phone
	}
	return out
}
