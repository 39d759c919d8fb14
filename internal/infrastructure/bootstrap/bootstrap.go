// Package bootstrap wires repositories, gateways and use cases from Config.
// Both the API and the worker start from a Container.
package bootstrap

import (
	"context"
	"ebd_gestao/internal/adapter/persistence/memory"
	"ebd_gestao/internal/adapter/persistence/repository"
	"ebd_gestao/internal/clock"
	"ebd_gestao/internal/config"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/infrastructure/database"
	"ebd_gestao/internal/infrastructure/messaging"
	"ebd_gestao/internal/infrastructure/payments"
	"ebd_gestao/internal/infrastructure/realtime"
	"ebd_gestao/internal/infrastructure/remote"
	"ebd_gestao/internal/usecase"
	"ebd_gestao/internal/usecase/interfaces"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPingTimeout = 3 * time.Second

// Repositories groups the storage ports.
type Repositories struct {
	Proposals   interfaces.IProposalRepository
	Payments    interfaces.IBillingPaymentRepository
	Orders      interfaces.IOrderRepository
	Commissions interfaces.ICommissionRepository
	Sellers     interfaces.ISellerRepository
	Clients     interfaces.IClientRepository
	Onboarding  interfaces.IOnboardingRepository
	Activity    interfaces.IChurchActivityRepository
}

type Container struct {
	Config config.Config
	Log    *zap.Logger
	Clock  clock.Clock
	Repos  Repositories
	Hub    *realtime.Hub

	Shipping    *usecase.ShippingUseCase
	Proposals   *usecase.ProposalUseCase
	Commissions *usecase.CommissionUseCase
	Onboarding  *usecase.OnboardingUseCase
	Payments    *usecase.PaymentUseCase

	bridge *realtime.RedisBridge
	redis  *redis.Client
}

// New builds a Container. Optional integrations (Twilio, Redis, Mercado Pago)
// that are not configured are logged and left out.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	repos, err := NewRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithRepositories(ctx, cfg, repos, log), nil
}

// NewRepositories selects the storage driver.
func NewRepositories(ctx context.Context, cfg config.Config) (Repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return MemoryRepositories(), nil
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.AWS)
		if err != nil {
			return Repositories{}, fmt.Errorf("connect dynamodb: %w", err)
		}
		t := cfg.Tables
		return Repositories{
			Proposals:   repository.NewProposalDynamoRepository(ddb, t.Proposals),
			Payments:    repository.NewBillingPaymentDynamoRepository(ddb, t.Payments),
			Orders:      repository.NewOrderDynamoRepository(ddb, t.Orders),
			Commissions: repository.NewCommissionDynamoRepository(ddb, t.Parcelas),
			Sellers:     repository.NewSellerDynamoRepository(ddb, t.Sellers, t.CategoryDiscounts),
			Clients:     repository.NewClientDynamoRepository(ddb, t.Clients),
			Onboarding:  repository.NewOnboardingDynamoRepository(ddb, t.OnboardingState, t.OnboardingPhases),
			Activity:    repository.NewChurchActivityDynamoRepository(ddb, t),
		}, nil
	default:
		return Repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// MemoryRepositories returns empty in-process stores.
func MemoryRepositories() Repositories {
	return Repositories{
		Proposals:   memory.NewProposalRepository(),
		Payments:    memory.NewBillingPaymentRepository(),
		Orders:      memory.NewOrderRepository(),
		Commissions: memory.NewCommissionRepository(),
		Sellers:     memory.NewSellerRepository(),
		Clients:     memory.NewClientRepository(),
		Onboarding:  memory.NewOnboardingRepository(),
		Activity:    memory.NewChurchActivityRepository(),
	}
}

// NewWithRepositories wires the use cases on top of the given stores.
func NewWithRepositories(ctx context.Context, cfg config.Config, repos Repositories, log *zap.Logger) *Container {
	if log == nil {
		log = zap.NewNop()
	}
	clk := clock.NewSystem(cfg.Location())
	hub := realtime.NewHub(log)

	c := &Container{Config: cfg, Log: log, Clock: clk, Repos: repos, Hub: hub}

	var changes interfaces.IChangePublisher = hub
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("[bootstrap] redis unavailable; change events stay local", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = client.Close()
		} else {
			c.redis = client
			c.bridge = realtime.NewRedisBridge(client, realtime.DefaultChannel, hub, log)
			changes = c.bridge
			log.Info("[bootstrap] redis change bridge enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	var messages interfaces.IMessageSender
	if sender, err := messaging.NewWhatsAppSender(cfg.Twilio, log); err != nil {
		log.Warn("[bootstrap] whatsapp sender not configured", zap.Error(err))
	} else {
		messages = sender
	}

	var paymentGateway interfaces.IPaymentGateway
	mp, err := payments.NewMercadoPagoGateway(payments.MercadoPagoOptions{
		AccessToken:     cfg.MercadoPago.AccessToken,
		Mock:            cfg.MercadoPago.Mock,
		NotificationURL: cfg.MercadoPago.NotificationURL,
		BackURL:         cfg.MercadoPago.BackURL,
	}, log)
	if err != nil {
		log.Warn("[bootstrap] Mercado Pago gateway not configured", zap.Error(err))
	} else {
		paymentGateway = mp
	}

	functions := remote.NewClient(cfg.Functions, log)
	if cfg.Functions.URL == "" {
		log.Warn("[bootstrap] remote functions url not configured; orders will fail and shipping uses the fallback table")
	}

	c.Shipping = usecase.NewShippingUseCase(remote.NewShippingQuoter(functions), ShippingPolicy(cfg.Shipping), clk, log)
	c.Proposals = usecase.NewProposalUseCase(usecase.ProposalUseCaseDeps{
		Repo:          repos.Proposals,
		Clients:       repos.Clients,
		Sellers:       repos.Sellers,
		Shipping:      c.Shipping,
		Orders:        remote.NewOrderGateway(functions),
		Payments:      paymentGateway,
		Messages:      messages,
		Changes:       changes,
		Clock:         clk,
		Log:           log,
		PublicBaseURL: cfg.Proposal.PublicBaseURL,
	})
	c.Commissions = usecase.NewCommissionUseCase(repos.Orders, repos.Commissions, repos.Sellers, clk, log)
	c.Onboarding = usecase.NewOnboardingUseCase(repos.Onboarding, repos.Activity, repos.Orders, clk, log)
	c.Payments = usecase.NewPaymentUseCase(repos.Payments, paymentGateway, c.Proposals, clk, log)
	return c
}

// RunBridge forwards Redis change events to the local hub until ctx is done.
// It returns immediately when Redis is not in use.
func (c *Container) RunBridge(ctx context.Context) error {
	if c.bridge == nil {
		return nil
	}
	if err := c.bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

// ShippingPolicy maps the shipping settings, keeping defaults for zero values.
func ShippingPolicy(cfg config.ShippingConfig) entities.ShippingPolicy {
	p := entities.DefaultShippingPolicy()
	if cfg.FreeThreshold > 0 {
		p.FreeThreshold = cfg.FreeThreshold
	}
	if cfg.FreeDays > 0 {
		p.FreeDays = cfg.FreeDays
	}
	if cfg.PACDays > 0 {
		p.PACDays = cfg.PACDays
	}
	if cfg.SEDEXDays > 0 {
		p.SEDEXDays = cfg.SEDEXDays
	}
	if cfg.FallbackPAC > 0 {
		p.FallbackPAC = cfg.FallbackPAC
	}
	if cfg.FallbackSEDEX > 0 {
		p.FallbackSEDEX = cfg.FallbackSEDEX
	}
	if cfg.PickupAddress != "" {
		p.PickupAddress = cfg.PickupAddress
	}
	if cfg.PickupHours != "" {
		p.PickupHours = cfg.PickupHours
	}
	return p
}
