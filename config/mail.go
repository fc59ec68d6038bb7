package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	MailTransportSMTP   = "smtp"
	MailTransportResend = "resend"
)

// MailConfig configures the transport that delivers lead notifications to the shop owner.
type MailConfig struct {
	Transport string

	// SMTP relay (Gmail by default)
	User     string
	Password string
	SMTPHost string
	SMTPPort int

	// Resend
	ResendAPIKey string
	ResendFrom   string

	// To is the owner inbox. It defaults to User.
	To          string
	SendTimeout time.Duration
	AttachPDF   bool
}

// LoadMailConfig reads the mail settings from the environment. Missing credentials are not an
// error here: the transport reports itself as unconfigured when a send is attempted.
func LoadMailConfig() MailConfig {
	cfg := MailConfig{
		Transport:    strings.ToLower(getEnv("MAIL_TRANSPORT", MailTransportSMTP)),
		User:         os.Getenv("MAIL_USER"),
		Password:     os.Getenv("MAIL_PWD"),
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     587,
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		ResendFrom:   os.Getenv("RESEND_FROM_EMAIL"),
		To:           os.Getenv("MAIL_TO"),
		SendTimeout:  15 * time.Second,
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.SMTPPort = port
		} else {
			log.Printf("⚠️ invalid SMTP_PORT %q, using %d", v, cfg.SMTPPort)
		}
	}

	if v := os.Getenv("MAIL_SEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SendTimeout = d
		} else {
			log.Printf("⚠️ invalid MAIL_SEND_TIMEOUT %q, using %s", v, cfg.SendTimeout)
		}
	}

	if v := os.Getenv("QUOTE_PDF_ATTACHMENT"); v != "" {
		cfg.AttachPDF, _ = strconv.ParseBool(v)
	}

	if cfg.To == "" {
		cfg.To = cfg.User
	}
	if cfg.ResendFrom == "" {
		cfg.ResendFrom = "Pacific Tide <quotes@pacifictidesaunas.com>"
	}

	return cfg
}
