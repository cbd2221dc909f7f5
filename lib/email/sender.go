package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/data"
	"github.com/SIHalev/todo-notes/lib/models"
)

// Sender delivers transactional email messages
type Sender interface {
	Send(ctx context.Context, message models.EmailMessage) error
}

// SendGridClientInterface is the subset of the SendGrid client used by the
// sender
type SendGridClientInterface interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender delivers messages through the SendGrid API. The API key
// is fetched from the secret store on first use and kept for the lifetime
// of the process; a rotated key takes effect only after a restart.
type SendGridSender struct {
	Secrets   data.SecretRepository
	NewClient func(apiKey string) SendGridClientInterface
	Logger    *logrus.Logger

	once   sync.Once
	client SendGridClientInterface
	keyErr error
}

// NewSendGridSender creates a sender backed by the live SendGrid client.
func NewSendGridSender(secrets data.SecretRepository, logger *logrus.Logger) *SendGridSender {
	return &SendGridSender{
		Secrets: secrets,
		NewClient: func(apiKey string) SendGridClientInterface {
			return sendgrid.NewSendClient(apiKey)
		},
		Logger: logger,
	}
}

// Send submits the message to the delivery API.
func (s *SendGridSender) Send(ctx context.Context, message models.EmailMessage) error {
	s.once.Do(func() {
		apiKey, err := s.Secrets.GetSecretField(ctx)
		if err != nil {
			s.keyErr = err
			return
		}
		s.client = s.NewClient(apiKey)
	})
	if s.keyErr != nil {
		return fmt.Errorf("failed to load email delivery credential: %w", s.keyErr)
	}

	from := mail.NewEmail("", message.From)
	to := mail.NewEmail("", message.To)
	sgMail := mail.NewSingleEmail(from, message.Subject, to, message.Text, message.Text)

	response, err := s.client.SendWithContext(ctx, sgMail)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email delivery returned status %d: %s", response.StatusCode, response.Body)
	}

	s.Logger.WithFields(logrus.Fields{
		"to":        message.To,
		"subject":   message.Subject,
		"operation": "Send",
	}).Debug("Email submitted")

	return nil
}
