package lead_controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/config"
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type kindCount struct {
	Kind  string
	Count int
}

type monthRow struct {
	MonthStart time.Time
	Leads      int
	QuoteValue decimal.Decimal
}

var loadLeadStats = func(ctx context.Context, now time.Time) (models.LeadStats, error) {
	var stats models.LeadStats
	db := config.StoreGorm.WithContext(ctx)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	var byKind []kindCount
	if err := db.Raw(`SELECT kind, COUNT(*)::int AS count FROM quote_requests GROUP BY kind`).
		Scan(&byKind).Error; err != nil {
		return stats, err
	}
	for _, k := range byKind {
		stats.TotalLeads += k.Count
		switch k.Kind {
		case models.QuoteKindCart:
			stats.CartQuotes = k.Count
		case models.QuoteKindConsultation:
			stats.Consultations = k.Count
		case models.QuoteKindInquiry:
			stats.Inquiries = k.Count
		}
	}

	var periods struct {
		ThisMonth int
		LastMonth int
		Pipeline  decimal.Decimal
		Average   decimal.Decimal
	}
	if err := db.Raw(`
		SELECT
			COUNT(*) FILTER (WHERE created_at >= ?)::int AS this_month,
			COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?)::int AS last_month,
			COALESCE(SUM(total) FILTER (WHERE created_at >= ? AND kind = ?), 0) AS pipeline,
			COALESCE(AVG(total) FILTER (WHERE kind = ?), 0) AS average
		FROM quote_requests
	`, monthStart, lastMonthStart, monthStart, monthStart, models.QuoteKindCart, models.QuoteKindCart).
		Scan(&periods).Error; err != nil {
		return stats, err
	}

	stats.LeadsThisMonth = periods.ThisMonth
	stats.LeadsGrowthPercent = growthPercent(periods.ThisMonth, periods.LastMonth)
	stats.PipelineValue = periods.Pipeline.Round(2)
	stats.AverageQuoteValue = periods.Average.Round(2)
	return stats, nil
}

var loadMonthlyLeads = func(ctx context.Context, since time.Time) ([]monthRow, error) {
	var rows []monthRow
	err := config.StoreGorm.WithContext(ctx).Raw(`
		SELECT
			date_trunc('month', created_at) AS month_start,
			COUNT(*)::int AS leads,
			COALESCE(SUM(total), 0) AS quote_value
		FROM quote_requests
		WHERE created_at >= ?
		GROUP BY date_trunc('month', created_at)
		ORDER BY month_start ASC
	`, since).Scan(&rows).Error
	return rows, err
}

func growthPercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// fillMonths returns twelve entries ending with now's month, zero-filling months without leads.
func fillMonths(now time.Time, rows []monthRow) []models.MonthlyLeadData {
	byMonth := make(map[string]monthRow, len(rows))
	for _, r := range rows {
		byMonth[r.MonthStart.Format("2006-01")] = r
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	out := make([]models.MonthlyLeadData, 0, 12)
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0)
		entry := models.MonthlyLeadData{
			Month:       monthNames[month.Month()-1],
			MonthNumber: int(month.Month()),
			QuoteValue:  decimal.Zero,
		}
		if r, ok := byMonth[month.Format("2006-01")]; ok {
			entry.Leads = r.Leads
			entry.QuoteValue = r.QuoteValue
		}
		out = append(out, entry)
	}
	return out
}

// GetLeadStats godoc
// @Summary Get lead statistics
// @Description Lead counts by kind, month-over-month growth and cart quote value.
// @Tags Admin - Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.LeadStats}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/quotes/stats [get]
func GetLeadStats(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	stats, err := loadLeadStats(ctx, time.Now())
	if err != nil {
		log.Printf("[admin.quotes-stats] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch lead statistics"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Lead statistics retrieved successfully", stats))
}

// GetMonthlyLeads godoc
// @Summary Get leads per month for the last 12 months
// @Tags Admin - Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.MonthlyLeadData}
// @Failure 500 {object} models.ApiResponse
// @Router /admin/quotes/monthly [get]
func GetMonthlyLeads(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	now := time.Now()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	rows, err := loadMonthlyLeads(ctx, since)
	if err != nil {
		log.Printf("[admin.quotes-monthly] ERROR query failed err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch monthly leads"))
		return
	}

	data := fillMonths(now, rows)
	log.Printf("[admin.quotes-monthly] respond 200 months=%d", len(data))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Monthly leads retrieved successfully", data))
}
