package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
)

type phaseKey struct {
	churchID string
	phaseID  int
}

type OnboardingRepository struct {
	mu     sync.RWMutex
	states map[string]entities.OnboardingState
	phases map[phaseKey]entities.PhaseRecord
}

var _ interfaces.IOnboardingRepository = (*OnboardingRepository)(nil)

func NewOnboardingRepository() *OnboardingRepository {
	return &OnboardingRepository{
		states: make(map[string]entities.OnboardingState),
		phases: make(map[phaseKey]entities.PhaseRecord),
	}
}

func (r *OnboardingRepository) GetState(_ context.Context, churchID string) (entities.OnboardingState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[churchID], nil
}

// SaveState leaves the conclusion fields untouched; only MarkConcluded sets them.
func (r *OnboardingRepository) SaveState(_ context.Context, s entities.OnboardingState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.states[s.ChurchID]
	s.Concluded = cur.Concluded
	s.ConcludedAt = cur.ConcludedAt
	s.DiscountPercent = cur.DiscountPercent
	s.DiscountCapValue = cur.DiscountCapValue
	r.states[s.ChurchID] = s
	return nil
}

func (r *OnboardingRepository) MarkConcluded(_ context.Context, churchID string, reward entities.OnboardingReward, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.states[churchID]
	if s.Concluded {
		return interfaces.ErrConditionFailed
	}
	if s.ChurchID == "" {
		s = entities.OnboardingState{ChurchID: churchID, Mode: entities.OnboardingModeComplete}
	}
	s.Concluded = true
	s.ConcludedAt = &at
	s.DiscountPercent = reward.Percent
	s.DiscountCapValue = reward.CapValue
	s.UpdatedAt = at
	r.states[churchID] = s
	return nil
}

func (r *OnboardingRepository) ListPhases(_ context.Context, churchID string) ([]entities.PhaseRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.PhaseRecord, 0)
	for k, rec := range r.phases {
		if k.churchID == churchID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhaseID < out[j].PhaseID })
	return out, nil
}

func (r *OnboardingRepository) UpsertPhase(_ context.Context, rec entities.PhaseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases[phaseKey{rec.ChurchID, rec.PhaseID}] = rec
	return nil
}

func (r *OnboardingRepository) ResetPhases(_ context.Context, churchID string, phaseIDs []int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range phaseIDs {
		r.phases[phaseKey{churchID, id}] = entities.PhaseRecord{ChurchID: churchID, PhaseID: id, UpdatedAt: at}
	}
	return nil
}

// ActivityKind names the church records counted by onboarding detection.
type ActivityKind string

const (
	ActivityClass      ActivityKind = "turma"
	ActivityInstructor ActivityKind = "professor"
	ActivityPlanning   ActivityKind = "planejamento"
	ActivityRoster     ActivityKind = "escala"
)

type activityRecord struct {
	kind      ActivityKind
	active    bool
	createdAt time.Time
}

type ChurchActivityRepository struct {
	mu       sync.RWMutex
	items    map[string][]entities.PurchasedItem
	activity map[string][]activityRecord
}

var _ interfaces.IChurchActivityRepository = (*ChurchActivityRepository)(nil)

func NewChurchActivityRepository() *ChurchActivityRepository {
	return &ChurchActivityRepository{
		items:    make(map[string][]entities.PurchasedItem),
		activity: make(map[string][]activityRecord),
	}
}

func (r *ChurchActivityRepository) AddPurchasedItem(it entities.PurchasedItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ChurchID] = append(r.items[it.ChurchID], it)
}

// ApplyItem marks a purchased item as applied to the church's EBD.
func (r *ChurchActivityRepository) ApplyItem(churchID, itemID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items[churchID] {
		if r.items[churchID][i].ID == itemID {
			r.items[churchID][i].Applied = true
			r.items[churchID][i].AppliedAt = &at
		}
	}
}

// AddActivity records one church record of kind created at createdAt.
func (r *ChurchActivityRepository) AddActivity(churchID string, kind ActivityKind, active bool, createdAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activity[churchID] = append(r.activity[churchID], activityRecord{kind: kind, active: active, createdAt: createdAt})
}

func (r *ChurchActivityRepository) ListPurchasedItems(_ context.Context, churchID string) ([]entities.PurchasedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entities.PurchasedItem(nil), r.items[churchID]...), nil
}

func (r *ChurchActivityRepository) CountActiveClasses(_ context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(churchID, ActivityClass, true, since), nil
}

func (r *ChurchActivityRepository) CountActiveInstructors(_ context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(churchID, ActivityInstructor, true, since), nil
}

func (r *ChurchActivityRepository) CountPlannings(_ context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(churchID, ActivityPlanning, false, since), nil
}

func (r *ChurchActivityRepository) CountRosters(_ context.Context, churchID string, since *time.Time) (int, error) {
	return r.count(churchID, ActivityRoster, false, since), nil
}

func (r *ChurchActivityRepository) count(churchID string, kind ActivityKind, activeOnly bool, since *time.Time) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.activity[churchID] {
		if a.kind != kind || (activeOnly && !a.active) {
			continue
		}
		if since != nil && !a.createdAt.After(*since) {
			continue
		}
		n++
	}
	return n
}
