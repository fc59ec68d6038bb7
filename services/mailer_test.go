package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIME(t *testing.T) {
	date := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	raw, err := buildMIME(MailMessage{
		From:    "Pacific Tide <owner@pacifictide.ca>",
		To:      []string{"owner@pacifictide.ca"},
		ReplyTo: "ada@example.com\r\nBcc: victim@example.com",
		Subject: "Quote Request - Ada",
		Text:    "Name: Ada",
		HTML:    "<p>Ada</p>",
	}, "<abc@pacifictide.ca>", date)
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "Message-ID: <abc@pacifictide.ca>\r\n")
	assert.Contains(t, msg, "Date: Mon, 02 Mar 2026 09:30:00 +0000\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, msg, "text/plain; charset=utf-8")
	assert.Contains(t, msg, "text/html; charset=utf-8")
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "Reply-To: ada@example.com Bcc: victim@example.com\r\n")
}

func TestBuildMIMEWithAttachment(t *testing.T) {
	raw, err := buildMIME(MailMessage{
		From:        "owner@pacifictide.ca",
		To:          []string{"owner@pacifictide.ca"},
		Subject:     "🔥 Quote",
		Text:        "hello",
		Attachments: []MailAttachment{{Filename: "quote.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")}},
	}, "<id@x>", time.Now())
	require.NoError(t, err)

	msg := string(raw)
	assert.Contains(t, msg, "Content-Type: multipart/mixed; boundary=")
	assert.Contains(t, msg, `attachment; filename=quote.pdf`)
	assert.Contains(t, msg, "JVBERi0xLjM=")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
}

func TestSMTPMailerNotConfigured(t *testing.T) {
	m := NewSMTPMailer("smtp.gmail.com", 587, "", "")
	assert.ErrorIs(t, m.Verify(context.Background()), ErrMailNotConfigured)
	_, err := m.Send(context.Background(), MailMessage{})
	assert.ErrorIs(t, err, ErrMailNotConfigured)
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "a b", sanitizeHeader("a\r\nb"))
	assert.Equal(t, "plain", sanitizeHeader("plain"))
}

func TestResendClientSend(t *testing.T) {
	var got resendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	c := NewResendClient("re_test", "Pacific Tide <quotes@pacifictide.ca>")
	c.endpoint = srv.URL

	require.NoError(t, c.Verify(context.Background()))
	result, err := c.Send(context.Background(), MailMessage{
		To:          []string{"owner@pacifictide.ca"},
		ReplyTo:     "ada@example.com",
		Subject:     "Quote\nRequest",
		HTML:        "<p>hi</p>",
		Attachments: []MailAttachment{{Filename: "q.pdf", Content: []byte("%PDF")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "msg_123", result.MessageID)
	assert.Equal(t, []string{"owner@pacifictide.ca"}, result.Accepted)
	assert.Empty(t, result.Rejected)
	assert.Equal(t, "Pacific Tide <quotes@pacifictide.ca>", got.From)
	assert.Equal(t, "Quote Request", got.Subject)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "JVBERg==", got.Attachments[0].Content)
}

func TestResendClientErrors(t *testing.T) {
	c := NewResendClient("", "")
	assert.ErrorIs(t, c.Verify(context.Background()), ErrMailNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	c = NewResendClient("re_test", "bad")
	c.endpoint = srv.URL
	_, err := c.Send(context.Background(), MailMessage{To: []string{"owner@pacifictide.ca"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "422"))
}
