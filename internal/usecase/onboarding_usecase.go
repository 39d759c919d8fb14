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

//go:generate mockgen -source=onboarding_usecase.go -destination=../adapter/http/handlers/mocks/mock_onboarding_usecase.go -package=mocks

var (
	ErrInvalidChurchID            = errors.New("invalid church id")
	ErrInvalidPhase               = errors.New("invalid onboarding phase")
	ErrBirthdayRequired           = errors.New("phase requires the church birthday date")
	ErrBirthdayCouponNotAvailable = errors.New("birthday coupon not available today")
)

// IOnboardingUseCase tracks the per-church onboarding checklist.
type IOnboardingUseCase interface {
	ComputeProgress(ctx context.Context, churchID string) (entities.OnboardingProgress, error)
	MarkPhaseComplete(ctx context.Context, churchID string, phaseID int, extra PhaseCompletion) (entities.OnboardingProgress, error)
	AutoDetectPhases(ctx context.Context, churchID string) ([]int, error)
	BirthdayCoupon(ctx context.Context, churchID string) (BirthdayCouponStatus, error)
	RedeemBirthdayCoupon(ctx context.Context, churchID string) (BirthdayCouponStatus, error)
}

// PhaseCompletion carries the data some phases need when marked by hand.
type PhaseCompletion struct {
	BirthdayDate *time.Time
}

type BirthdayCouponStatus struct {
	ChurchID     string     `json:"church_id"`
	Available    bool       `json:"available"`
	BirthdayDate *time.Time `json:"birthday_date,omitempty"`
	UsedYear     int        `json:"used_year,omitempty"`
}

type OnboardingUseCase struct {
	repo     interfaces.IOnboardingRepository
	activity interfaces.IChurchActivityRepository
	orders   interfaces.IOrderRepository
	clock    clock.Clock
	log      *zap.Logger
}

var _ IOnboardingUseCase = (*OnboardingUseCase)(nil)

func NewOnboardingUseCase(repo interfaces.IOnboardingRepository, activity interfaces.IChurchActivityRepository, orders interfaces.IOrderRepository, clk clock.Clock, log *zap.Logger) *OnboardingUseCase {
	if clk == nil {
		clk = clock.NewSystem(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OnboardingUseCase{repo: repo, activity: activity, orders: orders, clock: clk, log: log}
}

// onboardingSnapshot is everything loaded for one church.
type onboardingSnapshot struct {
	state   entities.OnboardingState
	records []entities.PhaseRecord
	items   []entities.PurchasedItem
	mode    entities.OnboardingMode
}

// ComputeProgress selects the phase set, runs auto-detection and returns the
// checklist. Reaching 100% in complete mode persists the one-time reward.
func (u *OnboardingUseCase) ComputeProgress(ctx context.Context, churchID string) (entities.OnboardingProgress, error) {
	snap, err := u.load(ctx, churchID)
	if err != nil {
		return entities.OnboardingProgress{}, err
	}

	if snap.mode == entities.OnboardingModeComplete && snap.state.Concluded {
		progress := entities.BuildProgress(snap.state.ChurchID, snap.mode, snap.records, snap.state)
		progress.Concluded = true
		return progress, nil
	}

	if _, err := u.detect(ctx, &snap); err != nil {
		return entities.OnboardingProgress{}, err
	}

	progress := entities.BuildProgress(snap.state.ChurchID, snap.mode, snap.records, snap.state)
	if progress.Concluded {
		if err := u.conclude(ctx, &snap, &progress); err != nil {
			return entities.OnboardingProgress{}, err
		}
	}
	return progress, nil
}

// AutoDetectPhases completes the phases whose data now exists and returns
// their ids. It never un-completes a phase.
func (u *OnboardingUseCase) AutoDetectPhases(ctx context.Context, churchID string) ([]int, error) {
	snap, err := u.load(ctx, churchID)
	if err != nil {
		return nil, err
	}
	if snap.mode == entities.OnboardingModeComplete && snap.state.Concluded {
		return nil, nil
	}
	return u.detect(ctx, &snap)
}

func (u *OnboardingUseCase) MarkPhaseComplete(ctx context.Context, churchID string, phaseID int, extra PhaseCompletion) (entities.OnboardingProgress, error) {
	churchID = strings.TrimSpace(churchID)
	if churchID == "" {
		return entities.OnboardingProgress{}, ErrInvalidChurchID
	}
	if phaseID < entities.PhaseAplicarRevista || phaseID > entities.PhaseLancamento {
		return entities.OnboardingProgress{}, ErrInvalidPhase
	}

	now := u.clock.Now().UTC()
	if phaseID == entities.PhaseConfiguracao {
		if extra.BirthdayDate == nil {
			return entities.OnboardingProgress{}, ErrBirthdayRequired
		}
		state, err := u.state(ctx, churchID)
		if err != nil {
			return entities.OnboardingProgress{}, err
		}
		birthday := entities.DateOnly(*extra.BirthdayDate)
		state.BirthdayDate = &birthday
		state.UpdatedAt = now
		if err := u.repo.SaveState(ctx, state); err != nil {
			u.log.Error("[onboarding][usecase] save birthday failed", zap.String("church_id", churchID), zap.Error(err))
			return entities.OnboardingProgress{}, err
		}
	}

	rec := entities.PhaseRecord{ChurchID: churchID, PhaseID: phaseID, Completed: true, CompletedAt: &now, UpdatedAt: now}
	if err := u.repo.UpsertPhase(ctx, rec); err != nil {
		u.log.Error("[onboarding][usecase] mark phase failed", zap.String("church_id", churchID), zap.Int("phase_id", phaseID), zap.Error(err))
		return entities.OnboardingProgress{}, err
	}
	u.log.Info("[onboarding][usecase] phase marked", zap.String("church_id", churchID), zap.Int("phase_id", phaseID))

	return u.ComputeProgress(ctx, churchID)
}

func (u *OnboardingUseCase) BirthdayCoupon(ctx context.Context, churchID string) (BirthdayCouponStatus, error) {
	churchID = strings.TrimSpace(churchID)
	if churchID == "" {
		return BirthdayCouponStatus{}, ErrInvalidChurchID
	}
	state, err := u.state(ctx, churchID)
	if err != nil {
		return BirthdayCouponStatus{}, err
	}
	return BirthdayCouponStatus{
		ChurchID:     churchID,
		Available:    entities.BirthdayCouponAvailable(u.clock.Now(), state.BirthdayDate, state.CouponUsedYear),
		BirthdayDate: state.BirthdayDate,
		UsedYear:     state.CouponUsedYear,
	}, nil
}

// RedeemBirthdayCoupon marks the coupon used for the current calendar year.
func (u *OnboardingUseCase) RedeemBirthdayCoupon(ctx context.Context, churchID string) (BirthdayCouponStatus, error) {
	churchID = strings.TrimSpace(churchID)
	if churchID == "" {
		return BirthdayCouponStatus{}, ErrInvalidChurchID
	}
	state, err := u.state(ctx, churchID)
	if err != nil {
		return BirthdayCouponStatus{}, err
	}
	today := u.clock.Now()
	if !entities.BirthdayCouponAvailable(today, state.BirthdayDate, state.CouponUsedYear) {
		return BirthdayCouponStatus{}, ErrBirthdayCouponNotAvailable
	}

	state.CouponUsedYear = today.Year()
	state.UpdatedAt = today.UTC()
	if err := u.repo.SaveState(ctx, state); err != nil {
		u.log.Error("[onboarding][usecase] redeem coupon failed", zap.String("church_id", churchID), zap.Error(err))
		return BirthdayCouponStatus{}, err
	}
	u.log.Info("[onboarding][usecase] birthday coupon redeemed", zap.String("church_id", churchID), zap.Int("year", state.CouponUsedYear))
	return BirthdayCouponStatus{ChurchID: churchID, Available: false, BirthdayDate: state.BirthdayDate, UsedYear: state.CouponUsedYear}, nil
}

func (u *OnboardingUseCase) state(ctx context.Context, churchID string) (entities.OnboardingState, error) {
	state, err := u.repo.GetState(ctx, churchID)
	if err != nil {
		u.log.Error("[onboarding][usecase] load state failed", zap.String("church_id", churchID), zap.Error(err))
		return entities.OnboardingState{}, err
	}
	if state.ChurchID == "" {
		state = entities.OnboardingState{ChurchID: churchID, Mode: entities.OnboardingModeComplete}
	}
	return state, nil
}

// load reads the church data and settles the phase set. Entering simplified
// mode resets phases 1-5 when phase 1 is still complete from the last cycle.
func (u *OnboardingUseCase) load(ctx context.Context, churchID string) (onboardingSnapshot, error) {
	churchID = strings.TrimSpace(churchID)
	if churchID == "" {
		return onboardingSnapshot{}, ErrInvalidChurchID
	}

	state, err := u.state(ctx, churchID)
	if err != nil {
		return onboardingSnapshot{}, err
	}
	records, err := u.repo.ListPhases(ctx, churchID)
	if err != nil {
		u.log.Error("[onboarding][usecase] load phases failed", zap.String("church_id", churchID), zap.Error(err))
		return onboardingSnapshot{}, err
	}
	items, err := u.activity.ListPurchasedItems(ctx, churchID)
	if err != nil {
		u.log.Error("[onboarding][usecase] load purchased items failed", zap.String("church_id", churchID), zap.Error(err))
		return onboardingSnapshot{}, err
	}

	snap := onboardingSnapshot{state: state, records: records, items: items, mode: entities.OnboardingModeComplete}
	if state.Mode == entities.OnboardingModeSimplified {
		snap.mode = entities.OnboardingModeSimplified
		return snap, nil
	}

	if !phaseCompleted(records, entities.PhaseConfiguracao) || !phaseCompleted(records, entities.PhaseLancamento) || pendingBaseItems(items) == 0 {
		return snap, nil
	}

	now := u.clock.Now().UTC()
	if phaseCompleted(records, entities.PhaseAplicarRevista) {
		resetIDs := []int{entities.PhaseAplicarRevista, entities.PhaseTurmas, entities.PhaseProfessores, entities.PhasePlanejamento, entities.PhaseEscala}
		if err := u.repo.ResetPhases(ctx, churchID, resetIDs, now); err != nil {
			u.log.Error("[onboarding][usecase] reset phases failed", zap.String("church_id", churchID), zap.Error(err))
			return onboardingSnapshot{}, err
		}
		snap.records = resetRecords(records, resetIDs, now)
	}

	snap.state.Mode = entities.OnboardingModeSimplified
	snap.state.CycleStartedAt = &now
	snap.state.UpdatedAt = now
	if err := u.repo.SaveState(ctx, snap.state); err != nil {
		u.log.Error("[onboarding][usecase] save mode failed", zap.String("church_id", churchID), zap.Error(err))
		return onboardingSnapshot{}, err
	}
	snap.mode = entities.OnboardingModeSimplified
	u.log.Info("[onboarding][usecase] entered simplified cycle", zap.String("church_id", churchID))
	return snap, nil
}

// detect evaluates phases 1-5 against church data. In simplified mode phases
// 2-5 only count records created after the current cycle's phase 1 completion.
func (u *OnboardingUseCase) detect(ctx context.Context, snap *onboardingSnapshot) ([]int, error) {
	churchID := snap.state.ChurchID
	now := u.clock.Now().UTC()
	var detected []int

	mark := func(phaseID int, itemRef string) error {
		rec := entities.PhaseRecord{ChurchID: churchID, PhaseID: phaseID, Completed: true, CompletedAt: &now, ItemRef: itemRef, UpdatedAt: now}
		if err := u.repo.UpsertPhase(ctx, rec); err != nil {
			u.log.Error("[onboarding][usecase] auto-complete phase failed", zap.String("church_id", churchID), zap.Int("phase_id", phaseID), zap.Error(err))
			return err
		}
		snap.records = upsertRecord(snap.records, rec)
		detected = append(detected, phaseID)
		return nil
	}

	if !phaseCompleted(snap.records, entities.PhaseAplicarRevista) {
		if ref, ok := appliedItemRef(snap.items); ok {
			if err := mark(entities.PhaseAplicarRevista, ref); err != nil {
				return nil, err
			}
		}
	}

	var since *time.Time
	if snap.mode == entities.OnboardingModeSimplified {
		rec, ok := findRecord(snap.records, entities.PhaseAplicarRevista)
		if !ok || !rec.Completed || rec.CompletedAt == nil {
			return detected, nil
		}
		since = rec.CompletedAt
	}

	counters := []struct {
		phaseID int
		count   func(ctx context.Context, churchID string, since *time.Time) (int, error)
	}{
		{entities.PhaseTurmas, u.activity.CountActiveClasses},
		{entities.PhaseProfessores, u.activity.CountActiveInstructors},
		{entities.PhasePlanejamento, u.activity.CountPlannings},
		{entities.PhaseEscala, u.activity.CountRosters},
	}
	for _, c := range counters {
		if phaseCompleted(snap.records, c.phaseID) {
			continue
		}
		n, err := c.count(ctx, churchID, since)
		if err != nil {
			u.log.Error("[onboarding][usecase] count failed", zap.String("church_id", churchID), zap.Int("phase_id", c.phaseID), zap.Error(err))
			return nil, err
		}
		if n > 0 {
			if err := mark(c.phaseID, ""); err != nil {
				return nil, err
			}
		}
	}

	if len(detected) > 0 {
		u.log.Info("[onboarding][usecase] phases auto-detected", zap.String("church_id", churchID), zap.Ints("phase_ids", detected))
	}
	return detected, nil
}

// conclude persists the end of a cycle. Complete mode grants the reward once;
// a finished simplified cycle returns the church to complete mode.
func (u *OnboardingUseCase) conclude(ctx context.Context, snap *onboardingSnapshot, progress *entities.OnboardingProgress) error {
	churchID := snap.state.ChurchID
	now := u.clock.Now().UTC()

	if snap.mode == entities.OnboardingModeSimplified {
		snap.state.Mode = entities.OnboardingModeComplete
		snap.state.CycleStartedAt = nil
		snap.state.UpdatedAt = now
		if err := u.repo.SaveState(ctx, snap.state); err != nil {
			u.log.Error("[onboarding][usecase] close simplified cycle failed", zap.String("church_id", churchID), zap.Error(err))
			return err
		}
		u.log.Info("[onboarding][usecase] simplified cycle concluded", zap.String("church_id", churchID))
		return nil
	}

	order, err := u.orders.LatestByClient(ctx, churchID)
	if err != nil {
		u.log.Error("[onboarding][usecase] load latest order failed", zap.String("church_id", churchID), zap.Error(err))
		return err
	}
	reward := entities.RewardForOrderValue(order.Value)

	if err := u.repo.MarkConcluded(ctx, churchID, reward, now); err != nil {
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			u.log.Error("[onboarding][usecase] mark concluded failed", zap.String("church_id", churchID), zap.Error(err))
			return err
		}
		stored, err := u.state(ctx, churchID)
		if err != nil {
			return err
		}
		progress.DiscountPercent = stored.DiscountPercent
		progress.DiscountCapValue = stored.DiscountCapValue
		return nil
	}

	progress.DiscountPercent = reward.Percent
	progress.DiscountCapValue = reward.CapValue
	u.log.Info("[onboarding][usecase] concluded",
		zap.String("church_id", churchID),
		zap.String("order_id", order.ID),
		zap.Float64("discount_percent", reward.Percent),
	)
	return nil
}

func findRecord(records []entities.PhaseRecord, phaseID int) (entities.PhaseRecord, bool) {
	for _, r := range records {
		if r.PhaseID == phaseID {
			return r, true
		}
	}
	return entities.PhaseRecord{}, false
}

func phaseCompleted(records []entities.PhaseRecord, phaseID int) bool {
	r, ok := findRecord(records, phaseID)
	return ok && r.Completed
}

func upsertRecord(records []entities.PhaseRecord, rec entities.PhaseRecord) []entities.PhaseRecord {
	for i := range records {
		if records[i].PhaseID == rec.PhaseID {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}

func resetRecords(records []entities.PhaseRecord, ids []int, at time.Time) []entities.PhaseRecord {
	reset := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		reset[id] = struct{}{}
	}
	out := make([]entities.PhaseRecord, 0, len(records))
	for _, r := range records {
		if _, ok := reset[r.PhaseID]; ok {
			r.Completed = false
			r.CompletedAt = nil
			r.ItemRef = ""
			r.UpdatedAt = at
		}
		out = append(out, r)
	}
	return out
}

func pendingBaseItems(items []entities.PurchasedItem) int {
	n := 0
	for _, it := range items {
		if it.IsBase() && !it.Applied {
			n++
		}
	}
	return n
}

// appliedItemRef returns the most recently applied base item when the church
// has applied at least one item and has no base item left to apply.
func appliedItemRef(items []entities.PurchasedItem) (string, bool) {
	if pendingBaseItems(items) > 0 {
		return "", false
	}
	var (
		applied bool
		ref     string
		latest  time.Time
	)
	for _, it := range items {
		if !it.Applied {
			continue
		}
		applied = true
		if !it.IsBase() {
			continue
		}
		at := it.PurchasedAt
		if it.AppliedAt != nil {
			at = *it.AppliedAt
		}
		if ref == "" || at.After(latest) {
			ref, latest = it.ID, at
		}
	}
	return ref, applied
}
