package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/models"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig swaps the SMTP settings at runtime.
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// VerifySMTP reports whether the current settings are complete enough to
// attempt a send. It does not dial the server.
func (s *EmailService) VerifySMTP() error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	return nil
}

// ProbeSMTP dials the configured server, completes the handshake and
// disconnects. Nothing is sent.
func (s *EmailService) ProbeSMTP() error {
	if err := s.VerifySMTP(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
		if err != nil {
			return err
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return err
		}
		return client.Quit()
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	if s.cfg.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			client.Close()
			return err
		}
	}
	return client.Quit()
}

// SendWelcomeEmail greets a new customer.
func (s *EmailService) SendWelcomeEmail(toEmail, fullName string) error {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "there"
	}
	subject := "Welcome to Botanical Decor"
	body := fmt.Sprintf(welcomeEmailHTML, html.EscapeString(name))
	return s.sendHTMLEmail(toEmail, subject, body)
}

// OrderStatusEmailInput is the order status notification content.
type OrderStatusEmailInput struct {
	OrderNo string
	Status  string
	Total   models.Money
}

// SendOrderStatusEmail notifies the customer about an order's progress.
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput) error {
	subject := fmt.Sprintf("Your order %s is %s", input.OrderNo, input.Status)
	var body string
	switch input.Status {
	case constants.OrderStatusPending:
		subject = fmt.Sprintf("Order %s confirmed", input.OrderNo)
		body = fmt.Sprintf("Thank you for your order!\n\nOrder number: %s\nTotal: $%s\n\nWe are preparing your flowers and will let you know when they ship.",
			input.OrderNo, input.Total.StringFixed(2))
	case constants.OrderStatusShipped:
		body = fmt.Sprintf("Good news - your order %s is on its way.\n\nTotal: $%s\n\nFresh flowers travel fast; expect delivery shortly.",
			input.OrderNo, input.Total.StringFixed(2))
	case constants.OrderStatusDelivered:
		body = fmt.Sprintf("Your order %s has been delivered.\n\nTotal: $%s\n\nWe hope the bouquet brightens your day. Remember to trim the stems and refresh the water.",
			input.OrderNo, input.Total.StringFixed(2))
	default:
		body = fmt.Sprintf("Your order %s is now %s.\n\nTotal: $%s",
			input.OrderNo, input.Status, input.Total.StringFixed(2))
	}
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPasswordResetEmail delivers a reset code.
func (s *EmailService) SendPasswordResetEmail(toEmail, fullName, code string, ttl time.Duration) error {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "there"
	}
	subject := "Your Botanical Decor password reset code"
	body := fmt.Sprintf("Hi %s,\n\nYour password reset code is: %s\n\nIt expires in %d minutes. If you did not request a reset, you can ignore this email.",
		name, code, int(ttl.Minutes()))
	return s.sendTextEmail(toEmail, subject, body)
}

// SendCustomEmail sends an arbitrary message, used by the SMTP test endpoint.
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Botanical Decor SMTP test"
	}
	body = strings.TrimSpace(body)
	if body == "" {
		body = "This is a test email from Botanical Decor. Your SMTP settings are working."
	}
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	return s.sendEmail(toEmail, subject, body, "text/plain")
}

func (s *EmailService) sendHTMLEmail(toEmail, subject, body string) error {
	return s.sendEmail(toEmail, subject, body, "text/html")
}

func (s *EmailService) sendEmail(toEmail, subject, body, contentType string) error {
	if err := s.VerifySMTP(); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body, contentType)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

const welcomeEmailHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; color: #2f3b2f; background: #f7f5f0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="color: #4a6741; font-size: 24px;">Welcome to Botanical Decor</h1>
    <p>Hi %s,</p>
    <p>Thank you for joining us. From classic roses to seasonal mixed bouquets,
    everything in our shop is cut fresh and arranged by hand.</p>
    <p>Use the code <strong>WELCOME10</strong> at checkout for 10%% off your first
    order, and remember that orders over $100 ship free.</p>
    <p style="margin-top: 32px;">Happy decorating,<br>The Botanical Decor team</p>
  </div>
</body>
</html>`

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body, contentType string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: %s; charset=UTF-8\r\n", contentType))
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
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

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
