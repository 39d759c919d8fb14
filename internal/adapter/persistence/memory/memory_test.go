package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository()
	_, err := repo.Create(ctx, entities.Proposal{ID: "p-1", Token: "tok", SellerID: "s-1", Status: entities.ProposalStatusPendente})
	require.NoError(t, err)

	t.Run("duplicate create is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, entities.Proposal{ID: "p-1"})
		assert.ErrorIs(t, err, interfaces.ErrAlreadyExists)
	})

	t.Run("only one concurrent transition wins", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins, conflicts := 0, 0
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.UpdateStatus(ctx, "p-1", entities.ProposalStatusChange{From: entities.ProposalStatusPendente, To: entities.ProposalStatusAceita})
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					wins++
				} else if assert.ErrorIs(t, err, interfaces.ErrConditionFailed) {
					conflicts++
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
		assert.Equal(t, 9, conflicts)
	})

	t.Run("content cannot change once accepted", func(t *testing.T) {
		_, err := repo.UpdateContent(ctx, entities.Proposal{ID: "p-1", Token: "new"})
		assert.ErrorIs(t, err, interfaces.ErrConditionFailed)
	})

	t.Run("missing proposal yields zero value", func(t *testing.T) {
		p, err := repo.UpdateStatus(ctx, "nope", entities.ProposalStatusChange{From: entities.ProposalStatusPendente, To: entities.ProposalStatusAceita})
		require.NoError(t, err)
		assert.Empty(t, p.ID)
	})
}

func TestProposalRepository_UpdateStatus_ClearAcceptance(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository()
	_, err := repo.Create(ctx, entities.Proposal{ID: "p-1", Token: "tok", Status: entities.ProposalStatusPendente})
	require.NoError(t, err)

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	term := 30
	p, err := repo.UpdateStatus(ctx, "p-1", entities.ProposalStatusChange{
		From: entities.ProposalStatusPendente, To: entities.ProposalStatusAceita, AcceptedAt: &at, InvoicingTerm: &term,
	})
	require.NoError(t, err)
	require.NotNil(t, p.InvoicingTerm)

	p, err = repo.UpdateStatus(ctx, "p-1", entities.ProposalStatusChange{
		From: entities.ProposalStatusAceita, To: entities.ProposalStatusPendente, Token: "tok-2", ClearAcceptance: true,
	})
	require.NoError(t, err)
	assert.Nil(t, p.InvoicingTerm)
	assert.Nil(t, p.AcceptedAt)
	assert.Equal(t, "tok-2", p.Token)

	p, err = repo.UpdateStatus(ctx, "p-1", entities.ProposalStatusChange{
		From: entities.ProposalStatusPendente, To: entities.ProposalStatusAceita, AcceptedAt: &at, ClearAcceptance: true,
	})
	require.NoError(t, err)
	assert.Nil(t, p.InvoicingTerm)
	require.NotNil(t, p.AcceptedAt)
	assert.True(t, p.AcceptedAt.Equal(at))
}

type recordingOrderGateway struct {
	requests []entities.ExternalOrderRequest
}

func (g *recordingOrderGateway) CreateOrder(_ context.Context, req entities.ExternalOrderRequest) (entities.ExternalOrderResult, error) {
	g.requests = append(g.requests, req)
	return entities.ExternalOrderResult{OrderID: "bling-1", PaymentURL: "https://pay.example/1"}, nil
}

func TestProposalFlow_ReacceptWithoutTermSkipsInvoicing(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository()
	orders := &recordingOrderGateway{}
	clk := clock.NewFakeClock(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	uc := usecase.NewProposalUseCase(usecase.ProposalUseCaseDeps{
		Repo:     repo,
		Clients:  NewClientRepository(entities.Client{ID: "c-1", Name: "Igreja Central", CanInvoice: true}),
		Sellers:  NewSellerRepository(entities.Seller{ID: "s-1", Name: "Ana"}),
		Shipping: usecase.NewShippingUseCase(nil, entities.DefaultShippingPolicy(), clk, nil),
		Orders:   orders,
		Clock:    clk,
	})
	seller := entities.Actor{ID: "u-1", Role: entities.RoleVendedor}

	created, err := uc.Create(ctx, seller, usecase.ProposalInput{
		Client:   entities.ProposalClient{ID: "c-1"},
		SellerID: "s-1",
		Items:    []entities.ProposalItem{{VariantID: "v-1", Title: "Revista Adultos", Quantity: 2, UnitPrice: 50}},
	})
	require.NoError(t, err)

	term := 30
	_, err = uc.Accept(ctx, created.Proposal.Token, &term)
	require.NoError(t, err)

	returned, err := uc.ReturnToPending(ctx, seller, created.Proposal.ID)
	require.NoError(t, err)
	assert.Nil(t, returned.InvoicingTerm)

	accepted, err := uc.Accept(ctx, returned.Token, nil)
	require.NoError(t, err)
	assert.Nil(t, accepted.InvoicingTerm)

	res, err := uc.GeneratePayment(ctx, seller, created.Proposal.ID, entities.PaymentModePix)
	require.NoError(t, err)
	assert.Equal(t, entities.ProposalStatusAguardandoPagamento, res.Proposal.Status)
	assert.Nil(t, res.Proposal.InvoicingTerm)
	require.Len(t, orders.requests, 1)
	assert.Equal(t, entities.PaymentModePix, orders.requests[0].PaymentMode)
}

func TestProposalRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewProposalRepository()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, st := range []entities.ProposalStatus{entities.ProposalStatusPendente, entities.ProposalStatusPendente, entities.ProposalStatusPago} {
		_, err := repo.Create(ctx, entities.Proposal{
			ID:        string(rune('a' + i)),
			SellerID:  "s-1",
			Status:    st,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	cutoff := base.Add(30 * time.Minute)
	got, err := repo.List(ctx, entities.ProposalFilter{Status: entities.ProposalStatusPendente, CreatedBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	all, err := repo.List(ctx, entities.ProposalFilter{SellerID: "s-1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
}

func TestOnboardingRepository_MarkConcludedOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewOnboardingRepository()
	at := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.MarkConcluded(ctx, "c-1", entities.OnboardingReward{Percent: 30}, at))
	err := repo.MarkConcluded(ctx, "c-1", entities.OnboardingReward{Percent: 20}, at)
	assert.ErrorIs(t, err, interfaces.ErrConditionFailed)

	require.NoError(t, repo.SaveState(ctx, entities.OnboardingState{ChurchID: "c-1", Mode: entities.OnboardingModeSimplified}))
	s, err := repo.GetState(ctx, "c-1")
	require.NoError(t, err)
	assert.True(t, s.Concluded)
	assert.Equal(t, 30.0, s.DiscountPercent)
	assert.Equal(t, entities.OnboardingModeSimplified, s.Mode)
}

func TestChurchActivityRepository_CountSince(t *testing.T) {
	ctx := context.Background()
	repo := NewChurchActivityRepository()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.AddActivity("c-1", ActivityClass, true, t0)
	repo.AddActivity("c-1", ActivityClass, false, t0.Add(2*time.Hour))
	repo.AddActivity("c-1", ActivityClass, true, t0.Add(3*time.Hour))

	n, err := repo.CountActiveClasses(ctx, "c-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	since := t0.Add(time.Hour)
	n, err = repo.CountActiveClasses(ctx, "c-1", &since)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCommissionApproval_ConcurrentIdempotency(t *testing.T) {
	ctx := context.Background()
	orders := NewOrderRepository(entities.Order{
		ID:              "o-1",
		ClientID:        "c-1",
		SellerID:        "s-1",
		Value:           200,
		StatusPagamento: "Aprovado",
		OrderDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	commissions := NewCommissionRepository()
	pct := 10.0
	sellers := NewSellerRepository(entities.Seller{ID: "s-1", Name: "Ana", CommissionPercent: &pct})
	uc := usecase.NewCommissionUseCase(orders, commissions, sellers, clock.NewFakeClock(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)), nil)
	actor := entities.Actor{ID: "u-1", Role: entities.RoleFinanceiro}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Approve(ctx, actor, "o-1")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, usecase.ErrCommissionAlreadySettled)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	parcelas, err := commissions.ListByOrderID(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, parcelas, 1)
	assert.Equal(t, 20.0, parcelas[0].CommissionValue)

	o, err := orders.GetByID(ctx, "o-1")
	require.NoError(t, err)
	assert.True(t, o.CommissionApproved)
}
