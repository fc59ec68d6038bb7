package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteLogRow is one entry of the admin lead table.
type QuoteLogRow struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`                 // cart_quote, consultation or inquiry
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Subject   string           `json:"subject"`
	Total     *decimal.Decimal `json:"total,omitempty"`      // cart quotes only
	MessageID string           `json:"message_id,omitempty"` // transport id, for support lookups
	CreatedAt time.Time        `json:"created_at"`
}

// QuoteLogDetail adds the payload exactly as it was submitted.
type QuoteLogDetail struct {
	QuoteLogRow
	Payload QuoteRequest `json:"payload"`
}

// LeadStats summarises lead volume for the admin dashboard.
type LeadStats struct {
	TotalLeads         int             `json:"total_leads"`          // All time
	LeadsThisMonth     int             `json:"leads_this_month"`     // Since the first of the month
	LeadsGrowthPercent float64         `json:"leads_growth_percent"` // % change from last month
	CartQuotes         int             `json:"cart_quotes"`
	Consultations      int             `json:"consultations"`
	Inquiries          int             `json:"inquiries"`
	PipelineValue      decimal.Decimal `json:"pipeline_value"`      // Sum of cart quote totals this month
	AverageQuoteValue  decimal.Decimal `json:"average_quote_value"` // Over all cart quotes
}

type MonthlyLeadData struct {
	Month       string          `json:"month"`        // Month abbreviation (Jan, Feb, etc.)
	MonthNumber int             `json:"month_number"` // Month number (1-12)
	Leads       int             `json:"leads"`
	QuoteValue  decimal.Decimal `json:"quote_value"`
}
