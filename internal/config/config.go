package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds the service configuration.
//
// Values come from defaults, an optional config.yml and EBD_* environment
// variables, with "." replaced by "_" (EBD_HTTP_PORT, EBD_TABLES_PROPOSALS, ...).
type Config struct {
	HTTPPort int
	LogLevel string

	StorageDriver string
	AWS           AWSConfig
	Tables        TablesConfig

	Functions   FunctionsConfig
	MercadoPago MercadoPagoConfig
	Twilio      TwilioConfig
	RedisAddr   string

	Shipping ShippingConfig
	Proposal ProposalConfig
	Worker   WorkerConfig
	Timezone string
}

type AWSConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type TablesConfig struct {
	Proposals         string
	Payments          string
	Orders            string
	Parcelas          string
	Sellers           string
	CategoryDiscounts string
	Clients           string
	OnboardingState   string
	OnboardingPhases  string
	PurchasedItems    string
	Classes           string
	Instructors       string
	Plannings         string
	Rosters           string
}

type FunctionsConfig struct {
	URL     string
	Key     string
	Timeout time.Duration
}

type MercadoPagoConfig struct {
	AccessToken     string
	Mock            bool
	NotificationURL string
	BackURL         string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

type ShippingConfig struct {
	FreeThreshold float64
	FreeDays      int
	PACDays       int
	SEDEXDays     int
	FallbackPAC   float64
	FallbackSEDEX float64
	PickupAddress string
	PickupHours   string
}

type ProposalConfig struct {
	PublicBaseURL string
	TTL           time.Duration
}

type WorkerConfig struct {
	ExpirySchedule string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("log.level", "info")

	v.SetDefault("storage.driver", StorageDynamoDB)
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.access_key_id", "local")
	v.SetDefault("aws.secret_access_key", "local")

	v.SetDefault("tables.proposals", "ebd_proposals")
	v.SetDefault("tables.payments", "ebd_payments")
	v.SetDefault("tables.orders", "ebd_orders")
	v.SetDefault("tables.parcelas", "ebd_commission_parcelas")
	v.SetDefault("tables.sellers", "ebd_sellers")
	v.SetDefault("tables.category_discounts", "ebd_seller_category_discounts")
	v.SetDefault("tables.clients", "ebd_clients")
	v.SetDefault("tables.onboarding_state", "ebd_onboarding_state")
	v.SetDefault("tables.onboarding_phases", "ebd_onboarding_phases")
	v.SetDefault("tables.purchased_items", "ebd_purchased_items")
	v.SetDefault("tables.classes", "ebd_classes")
	v.SetDefault("tables.instructors", "ebd_instructors")
	v.SetDefault("tables.plannings", "ebd_plannings")
	v.SetDefault("tables.rosters", "ebd_rosters")

	v.SetDefault("functions.url", "")
	v.SetDefault("functions.key", "")
	v.SetDefault("functions.timeout", 15*time.Second)

	v.SetDefault("mercadopago.access_token", "")
	v.SetDefault("mercadopago.mock", false)
	v.SetDefault("mercadopago.notification_url", "")
	v.SetDefault("mercadopago.back_url", "")

	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.from", "")
	v.SetDefault("redis.addr", "")

	v.SetDefault("shipping.free_threshold", 199.90)
	v.SetDefault("shipping.free_days", 10)
	v.SetDefault("shipping.pac_days", 5)
	v.SetDefault("shipping.sedex_days", 2)
	v.SetDefault("shipping.fallback_pac", 29.90)
	v.SetDefault("shipping.fallback_sedex", 49.90)
	v.SetDefault("shipping.pickup_address", "Retirada na editora")
	v.SetDefault("shipping.pickup_hours", "Seg a Sex, 9h às 17h")

	v.SetDefault("proposal.public_base_url", "http://localhost:8080")
	v.SetDefault("proposal.ttl", 168*time.Hour)
	v.SetDefault("worker.expiry_schedule", "@every 1h")
	v.SetDefault("timezone", "America/Sao_Paulo")
}

// Load reads .env (when present), then config.yml from the given search paths,
// then the environment.
func Load(paths ...string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("EBD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:      v.GetInt("http.port"),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
		AWS: AWSConfig{
			Region:          v.GetString("aws.region"),
			Endpoint:        strings.TrimSpace(v.GetString("aws.endpoint")),
			AccessKeyID:     v.GetString("aws.access_key_id"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
		},
		Tables: TablesConfig{
			Proposals:         v.GetString("tables.proposals"),
			Payments:          v.GetString("tables.payments"),
			Orders:            v.GetString("tables.orders"),
			Parcelas:          v.GetString("tables.parcelas"),
			Sellers:           v.GetString("tables.sellers"),
			CategoryDiscounts: v.GetString("tables.category_discounts"),
			Clients:           v.GetString("tables.clients"),
			OnboardingState:   v.GetString("tables.onboarding_state"),
			OnboardingPhases:  v.GetString("tables.onboarding_phases"),
			PurchasedItems:    v.GetString("tables.purchased_items"),
			Classes:           v.GetString("tables.classes"),
			Instructors:       v.GetString("tables.instructors"),
			Plannings:         v.GetString("tables.plannings"),
			Rosters:           v.GetString("tables.rosters"),
		},
		Functions: FunctionsConfig{
			URL:     strings.TrimRight(strings.TrimSpace(v.GetString("functions.url")), "/"),
			Key:     strings.TrimSpace(v.GetString("functions.key")),
			Timeout: v.GetDuration("functions.timeout"),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:     strings.TrimSpace(v.GetString("mercadopago.access_token")),
			Mock:            v.GetBool("mercadopago.mock"),
			NotificationURL: strings.TrimSpace(v.GetString("mercadopago.notification_url")),
			BackURL:         strings.TrimSpace(v.GetString("mercadopago.back_url")),
		},
		Twilio: TwilioConfig{
			AccountSID: strings.TrimSpace(v.GetString("twilio.account_sid")),
			AuthToken:  strings.TrimSpace(v.GetString("twilio.auth_token")),
			From:       strings.TrimSpace(v.GetString("twilio.from")),
		},
		RedisAddr: strings.TrimSpace(v.GetString("redis.addr")),
		Shipping: ShippingConfig{
			FreeThreshold: v.GetFloat64("shipping.free_threshold"),
			FreeDays:      v.GetInt("shipping.free_days"),
			PACDays:       v.GetInt("shipping.pac_days"),
			SEDEXDays:     v.GetInt("shipping.sedex_days"),
			FallbackPAC:   v.GetFloat64("shipping.fallback_pac"),
			FallbackSEDEX: v.GetFloat64("shipping.fallback_sedex"),
			PickupAddress: v.GetString("shipping.pickup_address"),
			PickupHours:   v.GetString("shipping.pickup_hours"),
		},
		Proposal: ProposalConfig{
			PublicBaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("proposal.public_base_url")), "/"),
			TTL:           v.GetDuration("proposal.ttl"),
		},
		Worker: WorkerConfig{
			ExpirySchedule: strings.TrimSpace(v.GetString("worker.expiry_schedule")),
		},
		Timezone: strings.TrimSpace(v.GetString("timezone")),
	}

	switch cfg.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	default:
		return Config{}, fmt.Errorf("unsupported storage.driver %q", cfg.StorageDriver)
	}
	if cfg.HTTPPort <= 0 {
		return Config{}, fmt.Errorf("invalid http.port %d", cfg.HTTPPort)
	}
	if cfg.Proposal.TTL <= 0 {
		return Config{}, fmt.Errorf("invalid proposal.ttl %s", cfg.Proposal.TTL)
	}
	return cfg, nil
}

// Location returns the configured time zone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
