package mail

import (
	"context"
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/config"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	log "github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
	"time"
)

type deliverer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type Sender struct {
	deliverer   deliverer
	from        string
	companyName string
}

// NewSender creates an SMTP sender that authenticates with the sender address
// and its app passkey over mandatory STARTTLS.
func NewSender(cfg config.MailConfig) (*Sender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Sender),
		gomail.WithPassword(cfg.Passkey),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Sender{deliverer: client, from: cfg.Sender, companyName: cfg.CompanyName}, nil
}

func (s *Sender) Send(ctx context.Context, message models.Message) error {
	msg, err := s.compose(message)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}

	if err = s.deliverer.DialAndSendWithContext(ctx, msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMail).
			Errorf("failed to send %s message to %s: %v", message.Kind, message.Recipient, err)
		return fmt.Errorf("%w: %v", models.ErrNotificationFailed, err)
	}

	log.Infof("%s message sent to %s", message.Kind, message.Recipient)
	return nil
}

func (s *Sender) compose(message models.Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.FromFormat(s.companyName, s.from); err != nil {
		return nil, err
	}
	if err := msg.To(message.Recipient); err != nil {
		return nil, err
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Body)

	return msg, nil
}
