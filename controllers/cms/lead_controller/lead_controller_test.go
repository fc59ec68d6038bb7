package lead_controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/quotes", GetQuoteRequests)
	r.GET("/admin/quotes/stats", GetLeadStats)
	r.GET("/admin/quotes/monthly", GetMonthlyLeads)
	r.GET("/admin/quotes/:id", GetQuoteRequestByID)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func stub[T any](t *testing.T, target *T, fn T) {
	orig := *target
	*target = fn
	t.Cleanup(func() { *target = orig })
}

func TestGetQuoteRequests(t *testing.T) {
	var got leadFilter
	total := decimal.NewFromInt(6000)
	stub(t, &listLeads, func(ctx context.Context, f leadFilter) ([]models.QuoteLogRow, int64, error) {
		got = f
		return []models.QuoteLogRow{{ID: "1", Kind: models.QuoteKindCart, Name: "Ada", Total: &total}}, 21, nil
	})

	w := get(router(), "/admin/quotes?page=2&limit=10&kind=CART_QUOTE&q=ada&from=2026-03-01&to=2026-03-31")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, models.QuoteKindCart, got.Kind)
	assert.Equal(t, "ada", got.Query)
	assert.Equal(t, 10, got.offset())
	require.NotNil(t, got.To)
	assert.Equal(t, "2026-04-01", got.To.Format("2006-01-02"))

	var body struct {
		Data []models.QuoteLogRow `json:"data"`
		Meta models.Pagination    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, 3, body.Meta.TotalPages)
	assert.Contains(t, w.Body.String(), `"total":6000`)
}

func TestGetQuoteRequestsValidation(t *testing.T) {
	stub(t, &listLeads, func(ctx context.Context, f leadFilter) ([]models.QuoteLogRow, int64, error) {
		t.Fatal("query must not run for invalid filters")
		return nil, 0, nil
	})
	r := router()

	for _, q := range []string{"kind=order", "from=03/01/2026", "to=yesterday", "from=2026-03-05&to=2026-03-01"} {
		w := get(r, "/admin/quotes?"+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestGetQuoteRequestsFailure(t *testing.T) {
	stub(t, &listLeads, func(ctx context.Context, f leadFilter) ([]models.QuoteLogRow, int64, error) {
		return nil, 0, errors.New("connection reset")
	})
	w := get(router(), "/admin/quotes")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch quote requests")
}

func TestLeadFilterWhere(t *testing.T) {
	where, args := leadFilter{}.where()
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = leadFilter{Kind: models.QuoteKindInquiry, Query: "cedar"}.where()
	assert.Equal(t, " WHERE q.kind = ? AND (q.name ILIKE ? OR q.email ILIKE ? OR q.subject ILIKE ?)", where)
	assert.Equal(t, []interface{}{models.QuoteKindInquiry, "%cedar%", "%cedar%", "%cedar%"}, args)
}

func TestGetQuoteRequestByID(t *testing.T) {
	id := uuid.New()
	stub(t, &findLead, func(ctx context.Context, got uuid.UUID) (*models.QuoteLogDetail, error) {
		if got != id {
			return nil, ErrLeadNotFound
		}
		payload := []byte(`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Cube please"}`)
		return leadDetail(models.QuoteLog{ID: id, Kind: models.QuoteKindInquiry, Name: "Ada", Payload: payload})
	})
	r := router()

	w := get(r, "/admin/quotes/"+id.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cube please")

	assert.Equal(t, http.StatusNotFound, get(r, "/admin/quotes/"+uuid.NewString()).Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/admin/quotes/not-a-uuid").Code)
}

func TestLeadDetailRejectsCorruptPayload(t *testing.T) {
	_, err := leadDetail(models.QuoteLog{Payload: []byte("{")})
	assert.Error(t, err)
}

func TestGetLeadStats(t *testing.T) {
	stub(t, &loadLeadStats, func(ctx context.Context, now time.Time) (models.LeadStats, error) {
		return models.LeadStats{TotalLeads: 7, CartQuotes: 4, PipelineValue: decimal.NewFromInt(24000)}, nil
	})
	w := get(router(), "/admin/quotes/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_leads":7`)
	assert.Contains(t, w.Body.String(), `"pipeline_value":24000`)
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 50.0, growthPercent(3, 2))
	assert.Equal(t, -50.0, growthPercent(1, 2))
	assert.Equal(t, 100.0, growthPercent(4, 0))
	assert.Equal(t, 0.0, growthPercent(0, 0))
}

func TestFillMonths(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	rows := []monthRow{
		{MonthStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Leads: 5, QuoteValue: decimal.NewFromInt(12000)},
		{MonthStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), Leads: 2},
	}

	months := fillMonths(now, rows)
	require.Len(t, months, 12)
	assert.Equal(t, "Apr", months[0].Month)
	assert.Equal(t, "Mar", months[11].Month)
	assert.Equal(t, 5, months[11].Leads)
	assert.True(t, months[11].QuoteValue.Equal(decimal.NewFromInt(12000)))
	assert.Equal(t, "Dec", months[8].Month)
	assert.Equal(t, 2, months[8].Leads)
	assert.Equal(t, 0, months[0].Leads)
}

func TestGetMonthlyLeadsFailure(t *testing.T) {
	stub(t, &loadMonthlyLeads, func(ctx context.Context, since time.Time) ([]monthRow, error) {
		return nil, errors.New("timeout")
	})
	assert.Equal(t, http.StatusInternalServerError, get(router(), "/admin/quotes/monthly").Code)
}
