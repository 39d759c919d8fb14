package messaging

import (
	"context"
	"ebd_gestao/internal/config"
	"ebd_gestao/internal/usecase/interfaces"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

var (
	ErrInvalidPhone        = errors.New("invalid whatsapp phone number")
	ErrTwilioNotConfigured = errors.New("twilio whatsapp sender not configured")
)

const defaultCountryCode = "55"

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppSender delivers text messages through the Twilio WhatsApp channel.
type WhatsAppSender struct {
	api  messageCreator
	from string
	log  *zap.Logger
}

var _ interfaces.IMessageSender = (*WhatsAppSender)(nil)

func NewWhatsAppSender(cfg config.TwilioConfig, log *zap.Logger) (*WhatsAppSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, ErrTwilioNotConfigured
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newWhatsAppSender(client.Api, cfg.From, log), nil
}

func newWhatsAppSender(api messageCreator, from string, log *zap.Logger) *WhatsAppSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &WhatsAppSender{api: api, from: from, log: log}
}

func (s *WhatsAppSender) Send(ctx context.Context, to, body string) error {
	if s == nil || s.api == nil {
		return ErrTwilioNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	phone, ok := NormalizePhone(to)
	if !ok {
		return ErrInvalidPhone
	}
	from, _ := NormalizePhone(s.from)
	if from == "" {
		from = s.from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + phone)
	params.SetFrom("whatsapp:" + from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		s.log.Warn("[messaging][twilio] send failed", zap.String("to", maskPhone(phone)), zap.Error(err))
		return err
	}
	if resp != nil && resp.Sid != nil {
		s.log.Info("[messaging][twilio] sent", zap.String("to", maskPhone(phone)), zap.String("sid", *resp.Sid))
	}
	return nil
}

// NormalizePhone returns the E.164 form of a Brazilian number. Numbers without
// a country code (10 or 11 digits) get +55.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 10 || len(digits) == 11:
		digits = defaultCountryCode + digits
	case len(digits) < 10 || len(digits) > 15:
		return "", false
	}
	return "+" + digits, true
}

func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	return strings.Repeat("*", len(p)-4) + p[len(p)-4:]
}
