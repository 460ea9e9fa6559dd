package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// WhatsAppConfig параметры Twilio
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	From       string // номер отправителя в формате E.164
	AdminTo    string // номер администратора в формате E.164
}

// messageCreator отправляет сообщение (реализуется twilio.RestClient.Api)
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// WhatsAppSender короткое сообщение администратору о новых бронированиях и отменах
type WhatsAppSender struct {
	api messageCreator
	cfg WhatsAppConfig
}

// NewWhatsAppSender создает отправителя через Twilio REST API
func NewWhatsAppSender(cfg WhatsAppConfig) *WhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &WhatsAppSender{api: client.Api, cfg: cfg}
}

func (s *WhatsAppSender) Name() string {
	return "whatsapp"
}

// Send отправляет сообщение. Twilio API не принимает контекст,
// поэтому проверяется только отмена до вызова.
func (s *WhatsAppSender) Send(ctx context.Context, ev Event) error {
	body, err := whatsAppBody(ev)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsAppAddress(s.cfg.AdminTo))
	params.SetFrom(whatsAppAddress(s.cfg.From))
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp != nil && resp.ErrorMessage != nil {
		return fmt.Errorf("twilio: %s", *resp.ErrorMessage)
	}
	return nil
}

func whatsAppAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

func whatsAppBody(ev Event) (string, error) {
	switch ev.Type {
	case RKBookingCreated:
		return fmt.Sprintf("🚗 Neue Buchung #%d\nService: %s\nDatum: %s\nName: %s\nTelefon: %s",
			ev.BookingID, ev.ServiceName, ev.When(), ev.CustomerName, ev.CustomerPhone), nil
	case RKBookingCanceled:
		return fmt.Sprintf("❌ Buchung #%d storniert\nService: %s\nDatum: %s\nName: %s",
			ev.BookingID, ev.ServiceName, ev.When(), ev.CustomerName), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}
