package main

import (
	"context"
	_ "ebd_gestao/docs"
	"ebd_gestao/internal/adapter/http/routes"
	"ebd_gestao/internal/config"
	"ebd_gestao/internal/infrastructure/bootstrap"
	"ebd_gestao/internal/infrastructure/logger"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           EBD Gestão API
// @version         1.0
// @description     Proposals, shipping, commissions, onboarding and payment notifications backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey ActorRole
// @in header
// @name X-Actor-Role
// @description Role of the caller (vendedor, gerente, financeiro, admin).

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(cfg, zl); err != nil {
		zl.Error("[main] server stopped", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return routes.Run(ctx, app)
}
