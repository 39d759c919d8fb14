package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"ebd_gestao/internal/adapter/http/handlers/mocks"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newOnboardingRouter(h *OnboardingHandler) *gin.Engine {
	r := gin.New()
	r.GET("/v1/onboarding/:church_id", h.GetProgress)
	r.POST("/v1/onboarding/:church_id/detect", h.DetectPhases)
	r.POST("/v1/onboarding/:church_id/phases/:phase_id/complete", h.CompletePhase)
	r.GET("/v1/onboarding/:church_id/birthday-coupon", h.GetBirthdayCoupon)
	r.POST("/v1/onboarding/:church_id/birthday-coupon/redeem", h.RedeemBirthdayCoupon)
	return r
}

func TestOnboardingHandler_GetProgress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("progress", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().ComputeProgress(gomock.Any(), "church-1").Return(entities.OnboardingProgress{ChurchID: "church-1", Percent: 40}, nil)

		w := doRequest(r, http.MethodGet, "/v1/onboarding/church-1", "", nil)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"percent":40`) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().ComputeProgress(gomock.Any(), "church-1").Return(entities.OnboardingProgress{}, errors.New("ddb down"))

		w := doRequest(r, http.MethodGet, "/v1/onboarding/church-1", "", nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if strings.Contains(w.Body.String(), "ddb down") {
			t.Fatalf("internal cause leaked: %s", w.Body.String())
		}
	})
}

func TestOnboardingHandler_DetectPhases(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIOnboardingUseCase(ctrl)
	r := newOnboardingRouter(NewOnboardingHandler(uc))

	uc.EXPECT().AutoDetectPhases(gomock.Any(), "church-1").Return(nil, nil)

	w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/detect", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"detected":[]`) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestOnboardingHandler_CompletePhase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("non numeric phase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/phases/abc/complete", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid birthday format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/phases/6/complete", `{"birthday_date":"02/03/1985"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("birthday required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().
			MarkPhaseComplete(gomock.Any(), "church-1", entities.PhaseConfiguracao, usecase.PhaseCompletion{}).
			Return(entities.OnboardingProgress{}, usecase.ErrBirthdayRequired)

		w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/phases/6/complete", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeHTTPError(t, w).Code; got != "BIRTHDAY_REQUIRED" {
			t.Fatalf("unexpected code %s", got)
		}
	})

	t.Run("birthday forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().
			MarkPhaseComplete(gomock.Any(), "church-1", entities.PhaseConfiguracao, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ int, extra usecase.PhaseCompletion) (entities.OnboardingProgress, error) {
				want := time.Date(1985, time.March, 2, 0, 0, 0, 0, time.UTC)
				if extra.BirthdayDate == nil || !extra.BirthdayDate.Equal(want) {
					t.Fatalf("unexpected birthday %v", extra.BirthdayDate)
				}
				return entities.OnboardingProgress{ChurchID: "church-1", Concluded: true}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/phases/6/complete", `{"birthday_date":"1985-03-02"}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
		}
	})
}

func TestOnboardingHandler_BirthdayCoupon(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().BirthdayCoupon(gomock.Any(), "church-1").Return(usecase.BirthdayCouponStatus{ChurchID: "church-1", Available: true}, nil)

		w := doRequest(r, http.MethodGet, "/v1/onboarding/church-1/birthday-coupon", "", nil)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"available":true`) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("redeem twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOnboardingUseCase(ctrl)
		r := newOnboardingRouter(NewOnboardingHandler(uc))

		uc.EXPECT().RedeemBirthdayCoupon(gomock.Any(), "church-1").Return(usecase.BirthdayCouponStatus{}, usecase.ErrBirthdayCouponNotAvailable)

		w := doRequest(r, http.MethodPost, "/v1/onboarding/church-1/birthday-coupon/redeem", "", nil)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}
