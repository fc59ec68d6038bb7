package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
)

// QuoteNotifier turns a validated lead into one email to the shop owner.
type QuoteNotifier struct {
	mailer    Mailer
	recorder  QuoteRecorder
	to        string
	timeout   time.Duration
	attachPDF bool
	now       func() time.Time
}

// NewQuoteNotifier wires the transport and, optionally, the audit log. recorder may be nil.
func NewQuoteNotifier(mailer Mailer, cfg config.MailConfig, recorder QuoteRecorder) *QuoteNotifier {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &QuoteNotifier{
		mailer:    mailer,
		recorder:  recorder,
		to:        cfg.To,
		timeout:   timeout,
		attachPDF: cfg.AttachPDF,
		now:       time.Now,
	}
}

// Notify verifies the transport, renders the request and sends it once. The whole exchange runs
// under the notifier's timeout. A failed audit write is logged and does not fail the call.
func (n *QuoteNotifier) Notify(ctx context.Context, req *models.QuoteRequest) (*SendResult, error) {
	if n.to == "" {
		return nil, ErrMailNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.mailer.Verify(ctx); err != nil {
		if errors.Is(err, ErrMailNotConfigured) {
			return nil, err
		}
		log.Printf("[quote] transport verification failed: %v", err)
		return nil, fmt.Errorf("mail transport verification failed: %w", err)
	}

	rendered, err := RenderQuoteEmail(req)
	if err != nil {
		return nil, err
	}

	msg := MailMessage{
		To:      []string{n.to},
		ReplyTo: req.Email,
		Subject: rendered.Subject,
		HTML:    rendered.HTML,
		Text:    rendered.Text,
	}

	if n.attachPDF && rendered.Kind == models.QuoteKindCart {
		now := n.now()
		if content, err := GenerateQuotePDF(req, now); err != nil {
			log.Printf("[quote] sending without PDF: %v", err)
		} else {
			msg.Attachments = append(msg.Attachments, MailAttachment{
				Filename:    QuotePDFFilename(now),
				ContentType: "application/pdf",
				Content:     content,
			})
		}
	}

	result, err := n.mailer.Send(ctx, msg)
	if err != nil {
		log.Printf("[quote] failed to send %s from %s: %v", rendered.Kind, req.Email, err)
		return nil, err
	}
	log.Printf("[quote] %s from %s sent (%s)", rendered.Kind, req.Email, result.MessageID)

	n.record(req, rendered, result)
	return result, nil
}

func (n *QuoteNotifier) record(req *models.QuoteRequest, rendered RenderedEmail, result *SendResult) {
	if n.recorder == nil {
		return
	}
	entry, err := NewQuoteLogEntry(req, rendered.Kind, rendered.Subject, result.MessageID)
	if err != nil {
		log.Printf("[quote] failed to build log entry: %v", err)
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()
	if err := n.recorder.Record(ctx, entry); err != nil {
		log.Printf("[quote] failed to record quote request: %v", err)
	}
}
