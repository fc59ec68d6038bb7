package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuoteRecorder keeps an audit trail of lead notifications.
type QuoteRecorder interface {
	Record(ctx context.Context, entry models.QuoteLog) error
}

// QuoteLogStore appends to quote_requests. Rows are never updated.
type QuoteLogStore struct {
	db *pgxpool.Pool
}

func NewQuoteLogStore(db *pgxpool.Pool) *QuoteLogStore {
	return &QuoteLogStore{db: db}
}

func (s *QuoteLogStore) Record(ctx context.Context, entry models.QuoteLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.Must(uuid.NewV7())
	}

	query := `
		INSERT INTO quote_requests (id, kind, name, email, subject, total, payload, message_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := s.db.Exec(ctx, query,
		entry.ID.String(),
		entry.Kind,
		entry.Name,
		entry.Email,
		entry.Subject,
		entry.Total,
		[]byte(entry.Payload),
		entry.MessageID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote request: %w", err)
	}
	return nil
}

// NewQuoteLogEntry snapshots a delivered request.
func NewQuoteLogEntry(req *models.QuoteRequest, kind, subject, messageID string) (models.QuoteLog, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return models.QuoteLog{}, fmt.Errorf("failed to marshal quote payload: %w", err)
	}

	entry := models.QuoteLog{
		Kind:      kind,
		Name:      req.Name,
		Email:     req.Email,
		Subject:   subject,
		Payload:   payload,
		MessageID: messageID,
	}
	if req.CartSummary != nil {
		total := req.CartSummary.Total
		entry.Total = &total
	}
	return entry, nil
}
