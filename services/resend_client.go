package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendClient handles email sending via Resend API
type ResendClient struct {
	apiKey   string
	from     string
	endpoint string
	http     *http.Client
}

// NewResendClient creates a new Resend client
func NewResendClient(apiKey, from string) *ResendClient {
	return &ResendClient{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		http:     &http.Client{},
	}
}

type resendAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type resendPayload struct {
	From        string             `json:"from"`
	To          []string           `json:"to"`
	ReplyTo     string             `json:"reply_to,omitempty"`
	Subject     string             `json:"subject"`
	HTML        string             `json:"html,omitempty"`
	Text        string             `json:"text,omitempty"`
	Attachments []resendAttachment `json:"attachments,omitempty"`
}

// Verify only checks credentials; Resend has no dry-run endpoint.
func (r *ResendClient) Verify(ctx context.Context) error {
	if r.apiKey == "" {
		return ErrMailNotConfigured
	}
	return nil
}

// Send posts the message to Resend. Resend accepts or rejects the message as a whole.
func (r *ResendClient) Send(ctx context.Context, msg MailMessage) (*SendResult, error) {
	if r.apiKey == "" {
		return nil, ErrMailNotConfigured
	}

	payload := resendPayload{
		From:    sanitizeHeader(msg.From),
		To:      msg.To,
		ReplyTo: sanitizeHeader(msg.ReplyTo),
		Subject: sanitizeHeader(msg.Subject),
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	if payload.From == "" {
		payload.From = r.from
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, resendAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[resend] failed to marshal payload: %v", err)
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		log.Printf("[resend] failed to create request: %v", err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		log.Printf("[resend] failed to send request: %v", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[resend] failed to read response: %v", err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[resend] api returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("resend api error: status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode resend response: %w", err)
	}

	log.Printf("[resend] message %s sent to %v", created.ID, msg.To)
	return &SendResult{
		MessageID: created.ID,
		Accepted:  append([]string{}, msg.To...),
		Rejected:  []string{},
	}, nil
}
