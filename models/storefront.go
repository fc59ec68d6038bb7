// ════════════════════════════════════════════════════════════
// STOREFRONT MODELS (catalog reads and configurator)
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StorefrontProductResponse is one card of the product grid
type StorefrontProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Designation string          `json:"designation"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Image       string          `json:"image"`
	IsFeatured  bool            `json:"isFeatured"`
}

// StorefrontProductDetail is the product part of the configurator view
type StorefrontProductDetail struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	Designation    string          `json:"designation"`
	CollectionType *string         `json:"collectionType,omitempty"`
	Series         *string         `json:"series,omitempty"`
	Dimensions     *string         `json:"dimensions,omitempty"`
	Specifications datatypes.JSON  `json:"specifications"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	Images         []Image         `json:"images"`
}

// ConfiguratorResponse carries everything the product page needs to price a configuration
// without another round trip: the partitioned options, the compatible heaters with their
// option groups in catalog order, the default selection and its price.
type ConfiguratorResponse struct {
	Product      StorefrontProductDetail `json:"product"`
	Installation []ProductOption         `json:"installation"`
	WoodTypes    []ProductOption         `json:"woodTypes"`
	AddOns       []ProductOption         `json:"addOns"`
	Heaters      []Heater                `json:"heaters"`
	Defaults     ConfigurationRequest    `json:"defaults"`
	Price        PriceResponse           `json:"price"`
}

type PriceLine struct {
	Kind   string          `json:"kind"`
	Name   string          `json:"name"`
	Group  string          `json:"group,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// PriceResponse is a priced configuration. Subtotal excludes delivery.
type PriceResponse struct {
	Configuration ConfigurationRequest `json:"configuration"`
	Lines         []PriceLine          `json:"lines"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Delivery      decimal.Decimal      `json:"delivery"`
	Total         decimal.Decimal      `json:"total"`
}
