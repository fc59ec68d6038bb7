package lead_controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLeadNotFound = errors.New("quote request not found")

type leadFilter struct {
	Kind  string
	Query string
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

func (f leadFilter) offset() int {
	return (f.Page - 1) * f.Limit
}

func (f leadFilter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.Kind != "" {
		conds = append(conds, "q.kind = ?")
		args = append(args, f.Kind)
	}
	if f.Query != "" {
		conds = append(conds, "(q.name ILIKE ? OR q.email ILIKE ? OR q.subject ILIKE ?)")
		like := "%" + f.Query + "%"
		args = append(args, like, like, like)
	}
	if f.From != nil {
		conds = append(conds, "q.created_at >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "q.created_at < ?")
		args = append(args, *f.To)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// parseLeadFilter reads page, limit, kind, q, from and to (YYYY-MM-DD, to inclusive).
func parseLeadFilter(c *gin.Context) (leadFilter, error) {
	f := leadFilter{}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 50 {
		f.Limit = 10
	}

	f.Query = strings.TrimSpace(c.Query("q"))

	switch kind := strings.TrimSpace(strings.ToLower(c.Query("kind"))); kind {
	case "":
	case models.QuoteKindCart, models.QuoteKindConsultation, models.QuoteKindInquiry:
		f.Kind = kind
	default:
		return f, errors.New("Invalid kind")
	}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("Invalid from date, expected YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, errors.New("Invalid to date, expected YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, errors.New("Invalid date range")
	}

	return f, nil
}

func pagination(f leadFilter, total int64) *models.Pagination {
	return &models.Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      int(total),
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}
}

const leadColumns = `
	q.id::text AS id,
	q.kind,
	q.name,
	q.email,
	q.subject,
	q.total,
	q.message_id,
	q.created_at
`

var listLeads = func(ctx context.Context, f leadFilter) ([]models.QuoteLogRow, int64, error) {
	where, args := f.where()

	var total int64
	if err := config.StoreGorm.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM quote_requests q"+where, args...).
		Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []models.QuoteLogRow{}
	dataArgs := append(append([]interface{}{}, args...), f.Limit, f.offset())
	if err := config.StoreGorm.WithContext(ctx).
		Raw("SELECT"+leadColumns+"FROM quote_requests q"+where+" ORDER BY q.created_at DESC LIMIT ? OFFSET ?", dataArgs...).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

var findLead = func(ctx context.Context, id uuid.UUID) (*models.QuoteLogDetail, error) {
	var entry models.QuoteLog
	err := config.StoreGorm.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return leadDetail(entry)
}

func leadDetail(entry models.QuoteLog) (*models.QuoteLogDetail, error) {
	detail := &models.QuoteLogDetail{
		QuoteLogRow: models.QuoteLogRow{
			ID:        entry.ID.String(),
			Kind:      entry.Kind,
			Name:      entry.Name,
			Email:     entry.Email,
			Subject:   entry.Subject,
			Total:     entry.Total,
			MessageID: entry.MessageID,
			CreatedAt: entry.CreatedAt,
		},
	}
	if err := json.Unmarshal(entry.Payload, &detail.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode stored payload: %w", err)
	}
	return detail, nil
}
