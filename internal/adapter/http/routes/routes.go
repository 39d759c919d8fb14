package routes

import (
	"context"
	_ "ebd_gestao/docs" // This will be auto-generated
	"ebd_gestao/internal/adapter/http/handlers"
	"ebd_gestao/internal/infrastructure/bootstrap"
	"ebd_gestao/internal/infrastructure/logger"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run serves the API until ctx is done, then drains in-flight requests.
func Run(ctx context.Context, app *bootstrap.Container) error {
	router := NewRouter(app)

	go func() {
		if err := app.RunBridge(ctx); err != nil {
			app.Log.Error("[routes] redis change bridge stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(app.Config.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Info("[routes] listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.Log.Info("[routes] shutting down")
	return srv.Shutdown(shutdownCtx)
}

// NewRouter registers middlewares, the swagger endpoint and every /v1 route.
func NewRouter(app *bootstrap.Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, app.Log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, app)
	return router
}

func getRoutes(router *gin.Engine, app *bootstrap.Container) {
	proposalHandler := handlers.NewProposalHandler(app.Proposals, app.Config.Proposal.PublicBaseURL)
	eventsHandler := handlers.NewEventsHandler(app.Proposals, app.Hub, 0, app.Log)
	paymentHandler := handlers.NewPaymentHandler(app.Payments, app.Config.MercadoPago.Mock, app.Log)
	shippingHandler := handlers.NewShippingHandler(app.Shipping)
	commissionHandler := handlers.NewCommissionHandler(app.Commissions)
	onboardingHandler := handlers.NewOnboardingHandler(app.Onboarding)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addProposalRoutes(v1, proposalHandler, eventsHandler, paymentHandler)
	addPublicRoutes(v1, proposalHandler)
	addShippingRoutes(v1, shippingHandler)
	addCommissionRoutes(v1, commissionHandler)
	addOnboardingRoutes(v1, onboardingHandler)
	addPaymentRoutes(v1, paymentHandler)
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(logger.GinMiddleware(log))
	router.Use(logger.Recovery(log))
}
