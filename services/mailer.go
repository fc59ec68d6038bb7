package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
)

// ErrMailNotConfigured is returned before any network traffic when the transport has no credentials.
var ErrMailNotConfigured = errors.New("email service is not configured")

// Mailer delivers one message per call. Implementations never retry.
type Mailer interface {
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg MailMessage) (*SendResult, error)
}

type MailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

type MailMessage struct {
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []MailAttachment
}

type SendResult struct {
	MessageID string
	Accepted  []string
	Rejected  []string
}

// NewMailer picks the transport named by MAIL_TRANSPORT.
func NewMailer(cfg config.MailConfig) Mailer {
	switch cfg.Transport {
	case config.MailTransportResend:
		log.Println("📧 Mail transport: resend")
		return NewResendClient(cfg.ResendAPIKey, cfg.ResendFrom)
	default:
		log.Printf("📧 Mail transport: smtp (%s:%d)", cfg.SMTPHost, cfg.SMTPPort)
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password)
	}
}

// sanitizeHeader drops CR and LF so user input cannot add headers.
func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}
