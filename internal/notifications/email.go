package notifications

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	subjectCustomerConfirmation = "Bestätigung Ihrer Buchung"
	subjectAdminNewBooking      = "Neue Buchung eingegangen"
	subjectAdminCanceled        = "Buchung storniert"
)

// EmailConfig параметры SMTP
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminTo  string // пусто: письма администратору не отправляются
	BaseURL  string // для ссылки отмены: {BaseURL}/cancel/{token}
}

// mailer отправляет готовые письма (реализуется *mail.Client)
type mailer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailSender письмо клиенту с подтверждением и письма администратору
type EmailSender struct {
	client mailer
	cfg    EmailConfig
}

// NewEmailSender создает отправителя поверх SMTP (STARTTLS обязателен)
func NewEmailSender(cfg EmailConfig) (*EmailSender, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("notifications: create smtp client: %w", err)
	}
	return &EmailSender{client: client, cfg: cfg}, nil
}

func (s *EmailSender) Name() string {
	return "email"
}

// Send формирует письма для события и отправляет их за одно SMTP-соединение
func (s *EmailSender) Send(ctx context.Context, ev Event) error {
	emails, err := s.compose(ev)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}

	msgs := make([]*mail.Msg, 0, len(emails))
	for _, e := range emails {
		msg := mail.NewMsg()
		if err := msg.From(s.cfg.From); err != nil {
			return fmt.Errorf("invalid from address %q: %w", s.cfg.From, err)
		}
		if err := msg.To(e.To); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", e.To, err)
		}
		msg.Subject(e.Subject)
		msg.SetBodyString(mail.TypeTextHTML, e.HTML)
		msgs = append(msgs, msg)
	}

	return s.client.DialAndSendWithContext(ctx, msgs...)
}

// email письмо до упаковки в MIME
type email struct {
	To      string
	Subject string
	HTML    string
}

type emailView struct {
	Event
	CancelURL string
}

func (s *EmailSender) compose(ev Event) ([]email, error) {
	view := emailView{
		Event:     ev,
		CancelURL: strings.TrimRight(s.cfg.BaseURL, "/") + "/cancel/" + ev.CancelToken,
	}

	var out []email
	switch ev.Type {
	case RKBookingCreated:
		body, err := render("customer_confirmation.html", view)
		if err != nil {
			return nil, err
		}
		out = append(out, email{To: ev.CustomerEmail, Subject: subjectCustomerConfirmation, HTML: body})

		if s.cfg.AdminTo != "" {
			body, err := render("admin_new_booking.html", view)
			if err != nil {
				return nil, err
			}
			out = append(out, email{To: s.cfg.AdminTo, Subject: subjectAdminNewBooking, HTML: body})
		}

	case RKBookingCanceled:
		if s.cfg.AdminTo != "" {
			body, err := render("admin_canceled.html", view)
			if err != nil {
				return nil, err
			}
			out = append(out, email{To: s.cfg.AdminTo, Subject: subjectAdminCanceled, HTML: body})
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}

	return out, nil
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
