package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer delivers report mail through a single SMTP relay. Plain
// connections upgrade via STARTTLS when the server offers it, while
// ImplicitTLS dials TLS directly.
type Mailer struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	To            []string
	Timeout       time.Duration
	ImplicitTLS   bool
	SkipVerifyTLS bool
}

// Send delivers one message to every configured recipient.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if m.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if m.From == "" {
		return fmt.Errorf("smtp from is required")
	}
	if len(m.To) == 0 {
		return fmt.Errorf("smtp to is required")
	}
	port := m.Port
	if port == 0 {
		port = 25
	}

	encoded := mime.QEncoding.Encode("utf-8", subject)
	msg := buildMessage(m.From, m.To, encoded, body)
	addr := fmt.Sprintf("%s:%d", m.Host, port)

	client, err := m.dialSMTP(ctx, addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if m.Username != "" {
		auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.From); err != nil {
		return err
	}
	for _, to := range m.To {
		if err := client.Rcpt(to); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func (m *Mailer) dialSMTP(ctx context.Context, addr string) (*smtp.Client, error) {
	timeout := m.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	tlsConfig := &tls.Config{
		ServerName:         m.Host,
		InsecureSkipVerify: m.SkipVerifyTLS,
	}

	if m.ImplicitTLS {
		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, m.Host)
	}

	conn, err := (&net.Dialer{Timeout: timeout}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	client, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func buildMessage(from string, to []string, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
