package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"
)

// SMTPConfig параметры SMTP сервера
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// SMTPSender отправка писем через SMTP (STARTTLS, если сервер поддерживает)
type SMTPSender struct {
	cfg      SMTPConfig
	location *time.Location
	log      Logger
}

// NewSMTPSender создает отправителя через SMTP
func NewSMTPSender(cfg SMTPConfig, location *time.Location, log Logger) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPSender{cfg: cfg, location: location, log: log}
}

// SendConfirmation отправляет подтверждение бронирования
func (s *SMTPSender) SendConfirmation(ctx context.Context, c Confirmation) error {
	to, err := mail.ParseAddress(c.To)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	c.To = to.Address

	msg, err := render(s.cfg.From, s.cfg.FromName, c, s.location)
	if err != nil {
		return fmt.Errorf("%w: render message: %v", ErrSend, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSend, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: handshake: %v", ErrSend, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrSend, err)
		}
	}

	if s.cfg.User != "" {
		if err := client.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSend, err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrSend, err)
	}
	if err := client.Rcpt(c.To); err != nil {
		return fmt.Errorf("%w: RCPT TO: %v", ErrSend, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrSend, err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrSend, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrSend, err)
	}

	if err := client.Quit(); err != nil {
		s.log.Warn("SMTP QUIT failed after successful send: %v", err)
	}

	s.log.Info("Confirmation e-mail sent to %s", c.To)
	return nil
}

// LogSender вместо отправки пишет письмо в лог. Используется, когда SMTP не настроен.
type LogSender struct {
	location *time.Location
	log      Logger
}

// NewLogSender создает отправителя в лог
func NewLogSender(location *time.Location, log Logger) *LogSender {
	return &LogSender{location: location, log: log}
}

// SendConfirmation логирует письмо
func (s *LogSender) SendConfirmation(_ context.Context, c Confirmation) error {
	to, err := mail.ParseAddress(c.To)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	s.log.Info("SMTP not configured, confirmation for %s (%s, %s, quantity=%d): %s",
		to.Address, c.Reservation.Location, FormatWhen(c.Reservation.StartAt, s.location), c.Reservation.Quantity, c.ManageURL())
	return nil
}
