package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/dreschagin/monitoring-engine/internal/application/port"
	"github.com/dreschagin/monitoring-engine/pkg/config"
)

// sendFunc абстрагирует SMTP-доставку для тестов
type sendFunc func(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// Notifier доставляет уведомления по SMTP
type Notifier struct {
	cfg  config.EmailChannelConfig
	send sendFunc
}

// NewNotifier создает email notifier
func NewNotifier(cfg config.EmailChannelConfig) *Notifier {
	return &Notifier{
		cfg:  cfg,
		send: sendMail,
	}
}

// Name возвращает имя канала
func (n *Notifier) Name() string {
	return "email"
}

// Send отправляет письмо всем получателям.
// Тема: "[{severity}] Monitoring Alert: {rule_name}"
func (n *Notifier) Send(ctx context.Context, event port.AlertEvent) error {
	alert := event.Alert

	subject := fmt.Sprintf("[%s] Monitoring Alert: %s", alert.Severity().String(), alert.RuleName())
	if event.Kind == port.AlertEventResolved {
		subject = fmt.Sprintf("[%s] Monitoring Alert Resolved: %s", alert.Severity().String(), alert.RuleName())
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Alert: %s\r\n", alert.RuleName())
	fmt.Fprintf(&body, "Status: %s\r\n", string(event.Kind))
	fmt.Fprintf(&body, "Severity: %s\r\n", alert.Severity().String())
	fmt.Fprintf(&body, "Message: %s\r\n", alert.Message())
	fmt.Fprintf(&body, "Metric: %s\r\n", alert.Metric())
	fmt.Fprintf(&body, "Current value: %.2f\r\n", alert.CurrentValue())
	fmt.Fprintf(&body, "Threshold: %.2f\r\n", alert.ThresholdValue())
	fmt.Fprintf(&body, "Host: %s\r\n", event.Hostname)
	fmt.Fprintf(&body, "Time: %s\r\n", event.Timestamp.Format(time.RFC3339))

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		n.cfg.From,
		strings.Join(n.cfg.Recipients, ", "),
		subject,
		body.String())

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)

	if err := n.send(ctx, addr, auth, n.cfg.From, n.cfg.Recipients, []byte(msg)); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("smtp delivery timed out: %w", ctx.Err())
		}
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}

// sendMail — аналог smtp.SendMail с поддержкой контекста: соединение
// открывается через DialContext, дедлайн контекста переносится на
// соединение, а отмена контекста закрывает его и прерывает обмен
func sendMail(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return err
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}
