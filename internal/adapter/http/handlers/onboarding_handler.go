package handlers

import (
	"ebd_gestao/internal/adapter/http/dto/request"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/pkg"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOnboardingPayload = pkg.NewDomainErrorSimple("INVALID_ONBOARDING_INPUT", "Invalid onboarding payload", http.StatusBadRequest)
)

type OnboardingHandler struct {
	usecase usecase.IOnboardingUseCase
}

func NewOnboardingHandler(uc usecase.IOnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{usecase: uc}
}

// GetProgress godoc
// @Summary      Onboarding progress of a church
// @Description  Detects phases completed by existing data before computing the checklist.
// @Tags         onboarding
// @Produce      json
// @Param        church_id  path      string  true  "Church ID"
// @Success      200        {object}  entities.OnboardingProgress
// @Router       /onboarding/{church_id} [get]
func (h *OnboardingHandler) GetProgress(c *gin.Context) {
	progress, err := h.usecase.ComputeProgress(c.Request.Context(), c.Param("church_id"))
	if err != nil {
		appErr := mapOnboardingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, progress)
}

// DetectPhases godoc
// @Summary      Run phase auto-detection
// @Tags         onboarding
// @Produce      json
// @Param        church_id  path      string  true  "Church ID"
// @Success      200        {object}  map[string][]int
// @Router       /onboarding/{church_id}/detect [post]
func (h *OnboardingHandler) DetectPhases(c *gin.Context) {
	detected, err := h.usecase.AutoDetectPhases(c.Request.Context(), c.Param("church_id"))
	if err != nil {
		appErr := mapOnboardingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if detected == nil {
		detected = []int{}
	}

	c.JSON(http.StatusOK, gin.H{"detected": detected})
}

// CompletePhase godoc
// @Summary      Mark an onboarding phase as complete
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        church_id  path      string                        true   "Church ID"
// @Param        phase_id   path      int                           true   "Phase ID"
// @Param        payload    body      request.PhaseCompleteRequest  false  "Birthday date for the configuration phase"
// @Success      200        {object}  entities.OnboardingProgress
// @Failure      400        {object}  pkg.HTTPError
// @Router       /onboarding/{church_id}/phases/{phase_id}/complete [post]
func (h *OnboardingHandler) CompletePhase(c *gin.Context) {
	phaseID, err := strconv.Atoi(c.Param("phase_id"))
	if err != nil {
		c.JSON(errInvalidOnboardingPayload.HTTPStatus, errInvalidOnboardingPayload.ToHTTPError())
		return
	}

	var payload request.PhaseCompleteRequest
	if !bindOptionalJSON(c, &payload) {
		c.JSON(errInvalidOnboardingPayload.HTTPStatus, errInvalidOnboardingPayload.ToHTTPError())
		return
	}
	birthday, err := payload.ResolveBirthday()
	if err != nil {
		c.JSON(errInvalidOnboardingPayload.HTTPStatus, errInvalidOnboardingPayload.ToHTTPError())
		return
	}

	progress, err := h.usecase.MarkPhaseComplete(c.Request.Context(), c.Param("church_id"), phaseID, usecase.PhaseCompletion{BirthdayDate: birthday})
	if err != nil {
		appErr := mapOnboardingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetBirthdayCoupon godoc
// @Summary      Birthday coupon availability
// @Tags         onboarding
// @Produce      json
// @Param        church_id  path      string  true  "Church ID"
// @Success      200        {object}  usecase.BirthdayCouponStatus
// @Router       /onboarding/{church_id}/birthday-coupon [get]
func (h *OnboardingHandler) GetBirthdayCoupon(c *gin.Context) {
	status, err := h.usecase.BirthdayCoupon(c.Request.Context(), c.Param("church_id"))
	if err != nil {
		appErr := mapOnboardingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, status)
}

// RedeemBirthdayCoupon godoc
// @Summary      Redeem the birthday coupon
// @Tags         onboarding
// @Produce      json
// @Param        church_id  path      string  true  "Church ID"
// @Success      200        {object}  usecase.BirthdayCouponStatus
// @Failure      409        {object}  pkg.HTTPError
// @Router       /onboarding/{church_id}/birthday-coupon/redeem [post]
func (h *OnboardingHandler) RedeemBirthdayCoupon(c *gin.Context) {
	status, err := h.usecase.RedeemBirthdayCoupon(c.Request.Context(), c.Param("church_id"))
	if err != nil {
		appErr := mapOnboardingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, status)
}

func mapOnboardingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidChurchID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPhase):
		return pkg.NewDomainErrorSimple("INVALID_PHASE", "Invalid onboarding phase", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBirthdayRequired):
		return pkg.NewDomainErrorSimple("BIRTHDAY_REQUIRED", "Phase requires the church birthday date", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBirthdayCouponNotAvailable):
		return pkg.NewDomainErrorSimple("BIRTHDAY_COUPON_NOT_AVAILABLE", "Birthday coupon not available today", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
