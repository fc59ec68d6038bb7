package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func init() {
	// Quote payloads and catalog responses carry prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ═══════════════════════════════════════════════════════════
// Quote / contact request (POST /emails)
// ═══════════════════════════════════════════════════════════

// CartItemOption is the legacy per-option shape: {"stones": {"type": "Premium", "price": 150}}.
type CartItemOption struct {
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

type CartConfigurationSize struct {
	Label string `json:"label,omitempty"`
	Key   string `json:"key,omitempty"`
}

type NamedLine struct {
	Name string `json:"name"`
}

type StoveLine struct {
	Name string `json:"name"`
	Wifi bool   `json:"wifi,omitempty"`
}

type PricedLine struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type DeliveryLine struct {
	Included bool            `json:"included"`
	Cost     decimal.Decimal `json:"cost"`
}

// CartConfiguration mirrors the selections of a configured product. Absent fields are omitted.
type CartConfiguration struct {
	Size          *CartConfigurationSize `json:"size,omitempty"`
	WoodType      *NamedLine             `json:"woodType,omitempty"`
	Stove         *StoveLine             `json:"stove,omitempty"`
	Installation  *NamedLine             `json:"installation,omitempty"`
	Delivery      *DeliveryLine          `json:"delivery,omitempty"`
	Upgrades      []PricedLine           `json:"upgrades,omitempty"`
	HeaterOptions []PricedLine           `json:"heaterOptions,omitempty"`
}

type CartItem struct {
	Name            string                    `json:"name"`
	Qty             int                       `json:"qty"`
	Price           decimal.Decimal           `json:"price"`
	Image           string                    `json:"image,omitempty"`
	Configuration   *CartConfiguration        `json:"configuration,omitempty"`
	SelectedOptions map[string]CartItemOption `json:"selectedOptions,omitempty"`
}

// LineTotal is price × qty.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

type CartSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// QuoteRequest is the body of the lead-capture endpoint. Cart quotes, consultation requests and
// general inquiries all share it.
type QuoteRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	PostalCode string `json:"postalcode,omitempty"`
	Province   string `json:"province,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`

	IsConsultation bool   `json:"isConsultation,omitempty"`
	PreferredDate  string `json:"preferredDate,omitempty"`
	PreferredTime  string `json:"preferredTime,omitempty"`
	SaunaType      string `json:"saunaType,omitempty"`
	BudgetRange    string `json:"budgetRange,omitempty"`
	ContactMethod  string `json:"contactMethod,omitempty"`

	IsCartQuote bool         `json:"isCartQuote,omitempty"`
	CartItems   []CartItem   `json:"cartItems,omitempty"`
	CartSummary *CartSummary `json:"cartSummary,omitempty"`
}

// HasCart reports whether the request should be rendered as a cart quote.
func (r *QuoteRequest) HasCart() bool {
	return r.IsCartQuote && len(r.CartItems) > 0
}

// QuoteSendResponse is returned after the notification was handed to the mail transport.
type QuoteSendResponse struct {
	Message   string   `json:"message"`
	MessageID string   `json:"messageId"`
	Accepted  []string `json:"accepted"`
	Rejected  []string `json:"rejected"`
}

// ═══════════════════════════════════════════════════════════
// Configurator requests
// ═══════════════════════════════════════════════════════════

// ConfigurationRequest is the client's current selection for one product.
type ConfigurationRequest struct {
	HeaterID       *uuid.UUID        `json:"heaterId"`
	HeaterOptions  map[string]string `json:"heaterOptions"`
	InstallationID *uuid.UUID        `json:"installationId"`
	WoodTypeID     *uuid.UUID        `json:"woodTypeId"`
	AddOnIDs       []uuid.UUID       `json:"addOnIds"`
}

type QuoteContact struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Message    string `json:"message,omitempty"`
	PostalCode string `json:"postalcode,omitempty"`
	Province   string `json:"province,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
}

type ProductQuoteRequest struct {
	Configuration ConfigurationRequest `json:"configuration"`
	Contact       QuoteContact         `json:"contact"`
}

// ═══════════════════════════════════════════════════════════
// Quote request log (append-only)
// ═══════════════════════════════════════════════════════════

const (
	QuoteKindCart         = "cart_quote"
	QuoteKindConsultation = "consultation"
	QuoteKindInquiry      = "inquiry"
)

type QuoteLog struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Kind      string           `json:"kind" gorm:"type:varchar(30);not null;index"`
	Name      string           `json:"name" gorm:"not null"`
	Email     string           `json:"email" gorm:"not null;index"`
	Subject   string           `json:"subject" gorm:"not null"`
	Total     *decimal.Decimal `json:"total,omitempty" gorm:"type:numeric(12,2)"`
	Payload   datatypes.JSON   `json:"payload" gorm:"type:jsonb;not null"`
	MessageID string           `json:"messageId" gorm:"type:varchar(255)"`
	CreatedAt time.Time        `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (q *QuoteLog) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (QuoteLog) TableName() string {
	return "quote_requests"
}
