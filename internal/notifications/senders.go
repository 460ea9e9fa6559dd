package notifications

import "fmt"

// Channels включённые каналы доставки; nil означает, что канал выключен
type Channels struct {
	Email    *EmailConfig
	WhatsApp *WhatsAppConfig
}

// NewSenders создает отправителей для включённых каналов
func NewSenders(ch Channels) ([]Sender, error) {
	var senders []Sender

	if ch.Email != nil {
		email, err := NewEmailSender(*ch.Email)
		if err != nil {
			return nil, fmt.Errorf("notifications: email sender: %w", err)
		}
		senders = append(senders, email)
	}

	if ch.WhatsApp != nil {
		senders = append(senders, NewWhatsAppSender(*ch.WhatsApp))
	}

	return senders, nil
}
