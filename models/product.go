package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OptionType partitions a product's selectable options.
type OptionType string

const (
	OptionTypeInstallation OptionType = "INSTALLATION"
	OptionTypeWoodType     OptionType = "WOOD_TYPE"
	OptionTypeFinish       OptionType = "FINISH" // add-ons
)

// ProductCategories are the storefront collections a product's Type can take.
var ProductCategories = []string{"barrel", "cube", "indoor", "outdoor", "outdoorshowers"}

// IsProductCategory reports whether category names a storefront collection.
func IsProductCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

// LegacyDeliveryFee is the flat fee the storefront charged for delivering a free DIY kit.
var LegacyDeliveryFee = decimal.NewFromInt(350)

// ═══════════════════════════════════════════════════════════
// Catalog Models (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string          `json:"name" gorm:"not null;index"`
	Description    string          `json:"description" gorm:"not null;default:''"`
	Type           string          `json:"type" gorm:"type:varchar(50);not null;index"`
	Designation    string          `json:"designation" gorm:"type:varchar(100);default:'Standard'"`
	CollectionType *string         `json:"collectionType,omitempty"`
	Series         *string         `json:"series,omitempty"`
	Dimensions     *string         `json:"dimensions,omitempty"`
	Specifications datatypes.JSON  `json:"specifications" gorm:"type:jsonb;not null;default:'{}'"`
	BasePrice      decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2);not null;check:base_price >= 0"`
	DisplayOrder   int             `json:"displayOrder" gorm:"default:0;index"`
	IsFeatured     bool            `json:"isFeatured" gorm:"default:false"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	Options []ProductOption `json:"options" gorm:"foreignKey:ProductID"`
	Heaters []Heater        `json:"heaters" gorm:"many2many:product_heaters;"`
	Images  []Image         `json:"images" gorm:"foreignKey:ProductID"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// HeaterByID returns the compatible heater with the given id.
func (p *Product) HeaterByID(id uuid.UUID) (*Heater, bool) {
	for i := range p.Heaters {
		if p.Heaters[i].ID == id {
			return &p.Heaters[i], true
		}
	}
	return nil, false
}

type ProductOption struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	Name       string          `json:"name" gorm:"not null"`
	OptionType OptionType      `json:"optionType" gorm:"type:varchar(30);not null;index"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	IsDefault  bool            `json:"isDefault" gorm:"default:false"`
	ImageURL   *string         `json:"imageUrl,omitempty" gorm:"type:text"`

	// ChargesDelivery marks an installation choice that ships the sauna for DeliveryFee on top of its price.
	ChargesDelivery bool            `json:"chargesDelivery" gorm:"default:false"`
	DeliveryFee     decimal.Decimal `json:"deliveryFee" gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (o *ProductOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// BeforeSave migrates the legacy DIY naming convention into the structured delivery fields on
// every insert and struct save. It only ever sets the flag: once ChargesDelivery is stored it is
// authoritative, and renaming or repricing the option does not clear it.
func (o *ProductOption) BeforeSave(tx *gorm.DB) error {
	o.ApplyLegacyDeliveryDefault()
	return nil
}

func (ProductOption) TableName() string {
	return "product_options"
}

// ApplyLegacyDeliveryDefault sets ChargesDelivery/DeliveryFee from the old naming convention
// ("DIY" in the name and a zero price). Options already flagged are left alone.
func (o *ProductOption) ApplyLegacyDeliveryDefault() {
	if o.ChargesDelivery || o.OptionType != OptionTypeInstallation {
		return
	}
	if LegacyChargesDelivery(o.Name, o.Price) {
		o.ChargesDelivery = true
		o.DeliveryFee = LegacyDeliveryFee
	}
}

// LegacyChargesDelivery reports whether an installation option named like "DIY ..." and priced at
// zero carried the implicit delivery fee.
func LegacyChargesDelivery(name string, price decimal.Decimal) bool {
	return strings.Contains(strings.ToLower(name), "diy") && price.IsZero()
}

type HeaterType string

const (
	HeaterTypeElectric HeaterType = "ELECTRIC"
	HeaterTypeWood     HeaterType = "WOOD"
)

type Heater struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Type           HeaterType      `json:"type" gorm:"type:varchar(20);not null;index"`
	Name           string          `json:"name" gorm:"not null"`
	Model          string          `json:"model" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description    string          `json:"description" gorm:"not null;default:''"`
	BasePrice      decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2);not null;default:0"`
	Specifications datatypes.JSON  `json:"specifications" gorm:"type:jsonb;not null;default:'{}'"`
	Features       datatypes.JSON  `json:"features" gorm:"type:jsonb;not null;default:'[]'"`
	Warranty       *string         `json:"warranty,omitempty"`
	ElectricSpec   *ElectricSpec   `json:"electricSpec,omitempty" gorm:"type:jsonb"`
	WoodSpec       *WoodSpec       `json:"woodSpec,omitempty" gorm:"type:jsonb"`
	Options        HeaterOptions   `json:"options" gorm:"type:json;not null;default:'{}'"` // json, not jsonb: group order matters
	IsFeatured     bool            `json:"isFeatured" gorm:"default:false"`
	CreatedAt      time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`

	Images []Image `json:"images" gorm:"foreignKey:HeaterID"`
}

func (h *Heater) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Heater) TableName() string {
	return "heaters"
}

// PrimaryImage returns the image flagged primary, falling back to the first one.
func (h *Heater) PrimaryImage() *Image {
	for i := range h.Images {
		if h.Images[i].IsPrimary {
			return &h.Images[i]
		}
	}
	if len(h.Images) > 0 {
		return &h.Images[0]
	}
	return nil
}

type ElectricSpec struct {
	Power               float64 `json:"power"`
	Voltage             string  `json:"voltage"`
	ElectricianRequired bool    `json:"electricianRequired"`
}

type WoodSpec struct {
	FuelType string `json:"fuelType"`
}

type Image struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	URL       string     `json:"url" gorm:"type:text;not null"`
	AltText   *string    `json:"altText,omitempty"`
	Order     int        `json:"order" gorm:"default:0"`
	IsPrimary bool       `json:"isPrimary" gorm:"default:false"`
	ProductID *uuid.UUID `json:"productId,omitempty" gorm:"type:uuid;index"`
	HeaterID  *uuid.UUID `json:"heaterId,omitempty" gorm:"type:uuid;index"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Image) TableName() string {
	return "images"
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM
// ═══════════════════════════════════════════════════════════

func (s *ElectricSpec) Scan(value interface{}) error {
	bytes, err := jsonbBytes(value)
	if err != nil || bytes == nil {
		return err
	}
	return json.Unmarshal(bytes, s)
}

func (s ElectricSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *WoodSpec) Scan(value interface{}) error {
	bytes, err := jsonbBytes(value)
	if err != nil || bytes == nil {
		return err
	}
	return json.Unmarshal(bytes, s)
}

func (s WoodSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// jsonbBytes normalises what the postgres driver hands back for a jsonb column.
func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported jsonb value")
	}
}
