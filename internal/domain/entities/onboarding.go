package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardingMode selects the phase set in use for a church.
type OnboardingMode string

const (
	OnboardingModeComplete   OnboardingMode = "completo"
	OnboardingModeSimplified OnboardingMode = "simplificado"
)

const (
	PhaseAplicarRevista  = 1
	PhaseTurmas          = 2
	PhaseProfessores     = 3
	PhasePlanejamento    = 4
	PhaseEscala          = 5
	PhaseConfiguracao    = 6
	PhaseLancamento      = 7
	ItemCategoryBase     = "BASE"
	RewardReferenceValue = 300.0
)

// PhaseDefinition is the static part of a phase.
type PhaseDefinition struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var completePhases = []PhaseDefinition{
	{PhaseAplicarRevista, "Aplicar revista", "Aplique a revista BASE adquirida à sua EBD"},
	{PhaseTurmas, "Cadastrar turmas", "Crie ao menos uma turma ativa"},
	{PhaseProfessores, "Cadastrar professores", "Cadastre ao menos um professor ativo"},
	{PhasePlanejamento, "Planejamento", "Monte o planejamento das lições"},
	{PhaseEscala, "Escala", "Monte a escala de professores"},
	{PhaseConfiguracao, "Configurações", "Informe a data de aniversário da igreja"},
	{PhaseLancamento, "Configurar lançamento", "Confirme a configuração de lançamento"},
}

// PhaseSet returns the phase definitions of a mode.
func PhaseSet(mode OnboardingMode) []PhaseDefinition {
	if mode == OnboardingModeSimplified {
		return completePhases[:PhaseEscala]
	}
	return completePhases
}

// OnboardingPhase is a phase with its completion state.
type OnboardingPhase struct {
	PhaseDefinition
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ItemRef     string     `json:"item_ref,omitempty"`
}

// PhaseRecord is the persisted row, keyed by church_id + phase_id.
type PhaseRecord struct {
	ChurchID    string     `json:"church_id"`
	PhaseID     int        `json:"phase_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ItemRef     string     `json:"item_ref,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OnboardingState is the per-church summary record.
type OnboardingState struct {
	ChurchID         string         `json:"church_id"`
	Mode             OnboardingMode `json:"mode"`
	CycleStartedAt   *time.Time     `json:"cycle_started_at,omitempty"`
	BirthdayDate     *time.Time     `json:"birthday_date,omitempty"`
	Concluded        bool           `json:"concluded"`
	ConcludedAt      *time.Time     `json:"concluded_at,omitempty"`
	DiscountPercent  float64        `json:"discount_percent,omitempty"`
	DiscountCapValue *float64       `json:"discount_cap_value,omitempty"`
	CouponUsedYear   int            `json:"coupon_used_year,omitempty"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// OnboardingProgress is the computed checklist returned to the UI.
type OnboardingProgress struct {
	ChurchID         string            `json:"church_id"`
	Mode             OnboardingMode    `json:"mode"`
	Phases           []OnboardingPhase `json:"phases"`
	CompletedCount   int               `json:"completed_count"`
	Percent          int               `json:"percent"`
	Concluded        bool              `json:"concluded"`
	BirthdayDate     *time.Time        `json:"birthday_date,omitempty"`
	DiscountPercent  float64           `json:"discount_percent,omitempty"`
	DiscountCapValue *float64          `json:"discount_cap_value,omitempty"`
}

// Phase returns the phase with the given id.
func (p OnboardingProgress) Phase(id int) (OnboardingPhase, bool) {
	for _, ph := range p.Phases {
		if ph.ID == id {
			return ph, true
		}
	}
	return OnboardingPhase{}, false
}

// BuildProgress merges phase definitions with persisted records.
//
// Complete mode concludes only with all phases done AND a birthday captured;
// simplified mode concludes with all phases done.
func BuildProgress(churchID string, mode OnboardingMode, records []PhaseRecord, state OnboardingState) OnboardingProgress {
	byID := make(map[int]PhaseRecord, len(records))
	for _, r := range records {
		byID[r.PhaseID] = r
	}

	defs := PhaseSet(mode)
	out := OnboardingProgress{
		ChurchID:         churchID,
		Mode:             mode,
		Phases:           make([]OnboardingPhase, 0, len(defs)),
		BirthdayDate:     state.BirthdayDate,
		DiscountPercent:  state.DiscountPercent,
		DiscountCapValue: state.DiscountCapValue,
	}
	for _, d := range defs {
		ph := OnboardingPhase{PhaseDefinition: d}
		if r, ok := byID[d.ID]; ok && r.Completed {
			ph.Completed = true
			ph.CompletedAt = r.CompletedAt
			ph.ItemRef = r.ItemRef
			out.CompletedCount++
		}
		out.Phases = append(out.Phases, ph)
	}
	if len(defs) > 0 {
		out.Percent = out.CompletedCount * 100 / len(defs)
	}

	allDone := out.CompletedCount == len(defs)
	switch mode {
	case OnboardingModeComplete:
		out.Concluded = allDone && state.BirthdayDate != nil
	default:
		out.Concluded = allDone
	}
	return out
}

// OnboardingReward is the one-time discount granted on conclusion.
type OnboardingReward struct {
	Percent  float64
	CapValue *float64
}

// RewardForOrderValue maps the last order value to a discount tier:
// >= 501 -> 30%, 301..500.99 -> 25%, otherwise 20% capped at 20% of 300.
func RewardForOrderValue(v float64) OnboardingReward {
	d := decimal.NewFromFloat(v).Round(2)
	switch {
	case d.GreaterThanOrEqual(decimal.NewFromInt(501)):
		return OnboardingReward{Percent: 30}
	case d.GreaterThanOrEqual(decimal.NewFromInt(301)):
		return OnboardingReward{Percent: 25}
	default:
		capValue := Percentage(RewardReferenceValue, 20)
		return OnboardingReward{Percent: 20, CapValue: &capValue}
	}
}

// DateOnly keeps the calendar day of t as written by the caller, at UTC
// midnight, so no zone conversion can move it to a neighbouring day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BirthdayCouponAvailable reports whether today is the birthday and the coupon
// has not been used in today's calendar year.
func BirthdayCouponAvailable(today time.Time, birthday *time.Time, usedYear int) bool {
	if birthday == nil {
		return false
	}
	if today.Month() != birthday.Month() || today.Day() != birthday.Day() {
		return false
	}
	return usedYear != today.Year()
}

// PurchasedItem is a catalog item bought by a church.
type PurchasedItem struct {
	ID          string     `json:"id"`
	ChurchID    string     `json:"church_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Applied     bool       `json:"applied"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
	PurchasedAt time.Time  `json:"purchased_at"`
}

// IsBase reports whether the item drives the "aplicar revista" phase.
func (i PurchasedItem) IsBase() bool {
	return i.Category == ItemCategoryBase
}
