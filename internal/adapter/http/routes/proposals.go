package routes

import (
	"ebd_gestao/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing        = "/ping"
	PathProposals   = "/proposals"
	PathPublic      = "/public/proposals"
	PathShipping    = "/shipping"
	PathCommissions = "/commissions"
	PathOnboarding  = "/onboarding"
	PathPayments    = "/payments"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addProposalRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler, eventsHandler *handlers.EventsHandler, paymentHandler *handlers.PaymentHandler) {
	proposals := rg.Group(PathProposals)
	{
		proposals.POST("", proposalHandler.CreateProposal)
		proposals.GET("", proposalHandler.ListProposals)
		proposals.GET("/:id", proposalHandler.GetProposal)
		proposals.PUT("/:id", proposalHandler.EditProposal)
		proposals.DELETE("/:id", proposalHandler.DeleteProposal)
		proposals.POST("/:id/payment", proposalHandler.GeneratePayment)
		proposals.POST("/:id/financial-approval", proposalHandler.ApproveFinancial)
		proposals.POST("/:id/financial-rejection", proposalHandler.RejectFinancial)
		proposals.POST("/:id/return", proposalHandler.ReturnToPending)
		proposals.POST("/:id/cancel", proposalHandler.CancelProposal)
		proposals.GET("/:id/events", eventsHandler.StreamProposal)
		proposals.GET("/:id/payments", paymentHandler.ListProposalPayments)
	}
}

// Rotas acessadas pelo cliente através do link público da proposta.
func addPublicRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler) {
	public := rg.Group(PathPublic)
	{
		public.GET("/:token", proposalHandler.GetPublicProposal)
		public.POST("/:token/accept", proposalHandler.AcceptPublicProposal)
	}
}

func addShippingRoutes(rg *gin.RouterGroup, shippingHandler *handlers.ShippingHandler) {
	shipping := rg.Group(PathShipping)
	{
		shipping.POST("/quote", shippingHandler.QuoteShipping)
		shipping.POST("/manual", shippingHandler.ManualShipping)
	}
}

func addCommissionRoutes(rg *gin.RouterGroup, commissionHandler *handlers.CommissionHandler) {
	commissions := rg.Group(PathCommissions)
	{
		commissions.POST("/orders/:order_id/approve", commissionHandler.ApproveCommission)
		commissions.POST("/approve-batch", commissionHandler.ApproveCommissionBatch)
	}
}

func addOnboardingRoutes(rg *gin.RouterGroup, onboardingHandler *handlers.OnboardingHandler) {
	onboarding := rg.Group(PathOnboarding)
	{
		onboarding.GET("/:church_id", onboardingHandler.GetProgress)
		onboarding.POST("/:church_id/detect", onboardingHandler.DetectPhases)
		onboarding.POST("/:church_id/phases/:phase_id/complete", onboardingHandler.CompletePhase)
		onboarding.GET("/:church_id/birthday-coupon", onboardingHandler.GetBirthdayCoupon)
		onboarding.POST("/:church_id/birthday-coupon/redeem", onboardingHandler.RedeemBirthdayCoupon)
	}
}

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		// Webhook do Mercado Pago.
		payments.POST("/notifications", paymentHandler.ReceiveNotification)
		payments.GET("/:payment_id", paymentHandler.GetPayment)
	}
}
