package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTPMailer sends through an authenticated SMTP relay with STARTTLS (Gmail by default).
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	now      func() time.Time
}

func NewSMTPMailer(host string, port int, user, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, password: password, now: time.Now}
}

func (m *SMTPMailer) configured() bool {
	return m.user != "" && m.password != ""
}

func (m *SMTPMailer) defaultFrom() string {
	return (&mail.Address{Name: "Pacific Tide", Address: m.user}).String()
}

// Verify connects, upgrades to TLS and authenticates without sending anything.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	if !m.configured() {
		return ErrMailNotConfigured
	}
	c, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Quit()
}

func (m *SMTPMailer) Send(ctx context.Context, msg MailMessage) (*SendResult, error) {
	if !m.configured() {
		return nil, ErrMailNotConfigured
	}
	if msg.From == "" {
		msg.From = m.defaultFrom()
	}

	messageID := m.messageID()
	raw, err := buildMIME(msg, messageID, m.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	c, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.Mail(m.user); err != nil {
		return nil, fmt.Errorf("smtp MAIL FROM failed: %w", err)
	}

	result := &SendResult{MessageID: messageID, Accepted: []string{}, Rejected: []string{}}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			log.Printf("[mail] recipient %s rejected: %v", rcpt, err)
			result.Rejected = append(result.Rejected, rcpt)
			continue
		}
		result.Accepted = append(result.Accepted, rcpt)
	}
	if len(result.Accepted) == 0 {
		return nil, fmt.Errorf("no recipients accepted: %s", strings.Join(result.Rejected, ", "))
	}

	w, err := c.Data()
	if err != nil {
		return nil, fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("smtp server refused message: %w", err)
	}
	if err := c.Quit(); err != nil {
		log.Printf("[mail] QUIT failed after delivery: %v", err)
	}

	log.Printf("[mail] message %s sent to %s", messageID, strings.Join(result.Accepted, ", "))
	return result, nil
}

// connect dials under ctx and returns an authenticated client. The context deadline also bounds
// every later read and write on the connection.
func (m *SMTPMailer) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake failed: %w", err)
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			c.Close()
			return nil, fmt.Errorf("smtp STARTTLS failed: %w", err)
		}
	}

	if err := c.Auth(smtp.PlainAuth("", m.user, m.password, m.host)); err != nil {
		c.Close()
		return nil, fmt.Errorf("smtp authentication failed: %w", err)
	}
	return c, nil
}

func (m *SMTPMailer) messageID() string {
	domain := "pacifictide.local"
	if at := strings.LastIndex(m.user, "@"); at >= 0 {
		domain = m.user[at+1:]
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}

// buildMIME renders msg as an RFC 5322 message: multipart/alternative for text and HTML, wrapped in
// multipart/mixed when there are attachments.
func buildMIME(msg MailMessage, messageID string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	header("From", sanitizeHeader(msg.From))
	header("To", sanitizeHeader(strings.Join(msg.To, ", ")))
	if msg.ReplyTo != "" {
		header("Reply-To", sanitizeHeader(msg.ReplyTo))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", sanitizeHeader(msg.Subject)))
	header("Date", date.Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")

	var body bytes.Buffer
	contentType, err := writeAlternative(&body, msg)
	if err != nil {
		return nil, err
	}

	if len(msg.Attachments) > 0 {
		var mixedBody bytes.Buffer
		mixed := multipart.NewWriter(&mixedBody)

		part, err := mixed.CreatePart(textproto.MIMEHeader{"Content-Type": {contentType}})
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(body.Bytes()); err != nil {
			return nil, err
		}

		for _, a := range msg.Attachments {
			attType := a.ContentType
			if attType == "" {
				attType = "application/octet-stream"
			}
			part, err := mixed.CreatePart(textproto.MIMEHeader{
				"Content-Type":              {attType},
				"Content-Transfer-Encoding": {"base64"},
				"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
			})
			if err != nil {
				return nil, err
			}
			if err := writeBase64Lines(part, a.Content); err != nil {
				return nil, err
			}
		}
		if err := mixed.Close(); err != nil {
			return nil, err
		}
		contentType = "multipart/mixed; boundary=" + mixed.Boundary()
		body = mixedBody
	}

	header("Content-Type", contentType)
	buf.WriteString("\r\n")
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

// writeAlternative writes the text and HTML parts and returns the matching Content-Type.
func writeAlternative(w io.Writer, msg MailMessage) (string, error) {
	alt := multipart.NewWriter(w)

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		pw, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return "", err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := io.WriteString(qp, p.body); err != nil {
			return "", err
		}
		if err := qp.Close(); err != nil {
			return "", err
		}
	}
	return "multipart/alternative; boundary=" + alt.Boundary(), alt.Close()
}

func writeBase64Lines(w io.Writer, content []byte) error {
	encoded := base64.StdEncoding.EncodeToString(content)
	for len(encoded) > 76 {
		if _, err := io.WriteString(w, encoded[:76]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := io.WriteString(w, encoded+"\r\n")
	return err
}
