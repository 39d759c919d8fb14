package interfaces

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"time"
)

//go:generate mockgen -source=onboarding_repository_interface.go -destination=mocks/mock_onboarding_repository.go -package=mock_interfaces

// IOnboardingRepository persists onboarding state and phase rows.
//
// UpsertPhase is keyed by church_id + phase_id. MarkConcluded writes the reward
// only when the church is not concluded yet and reports ErrConditionFailed otherwise.
type IOnboardingRepository interface {
	GetState(ctx context.Context, churchID string) (entities.OnboardingState, error)
	SaveState(ctx context.Context, s entities.OnboardingState) error
	MarkConcluded(ctx context.Context, churchID string, reward entities.OnboardingReward, at time.Time) error
	ListPhases(ctx context.Context, churchID string) ([]entities.PhaseRecord, error)
	UpsertPhase(ctx context.Context, r entities.PhaseRecord) error
	ResetPhases(ctx context.Context, churchID string, phaseIDs []int, at time.Time) error
}

// IChurchActivityRepository counts the records that satisfy onboarding phases.
// A non-nil since restricts counts to records created strictly after it.
type IChurchActivityRepository interface {
	ListPurchasedItems(ctx context.Context, churchID string) ([]entities.PurchasedItem, error)
	CountActiveClasses(ctx context.Context, churchID string, since *time.Time) (int, error)
	CountActiveInstructors(ctx context.Context, churchID string, since *time.Time) (int, error)
	CountPlannings(ctx context.Context, churchID string, since *time.Time) (int, error)
	CountRosters(ctx context.Context, churchID string, since *time.Time) (int, error)
}
