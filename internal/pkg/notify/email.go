package notify

import (
	"Redwatch/internal/api/config"
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email SMTP 邮件推送，默认走隐式 SSL
type Email struct {
	dialer   mailDialer
	sender   string
	receiver string
}

func NewEmail(cfg config.EmailConfig) *Email {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password)
	d.SSL = cfg.SSL
	return &Email{
		dialer:   d,
		sender:   cfg.Sender,
		receiver: cfg.Receiver,
	}
}

func (s *Email) Name() string {
	return "email"
}

func (s *Email) Send(ctx context.Context, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", s.receiver)
	m.SetHeader("Subject", title)
	m.SetBody("text/html", strings.ReplaceAll(body, "\n", "<br>"))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: smtp: %v", ErrDeliveryFailure, err)
	}
	return nil
}
