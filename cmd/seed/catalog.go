package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ════════════════════════════════════════════════════════════
// Asset file shapes
// ════════════════════════════════════════════════════════════

type seedImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary"`
}

// UnmarshalJSON accepts either a bare URL or an {url, alt, isPrimary} object.
func (i *seedImage) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*i = seedImage{URL: url}
		return nil
	}
	type plain seedImage
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*i = seedImage(p)
	return nil
}

type seedElectricSpec struct {
	Power               *float64 `json:"power"`
	Voltage             *string  `json:"voltage"`
	ElectricianRequired *bool    `json:"electricianRequired"`
}

type seedHeater struct {
	Name           string               `json:"name"`
	Model          string               `json:"model"`
	Description    string               `json:"description"`
	BasePrice      decimal.Decimal      `json:"basePrice"`
	Power          float64              `json:"power"`
	Voltage        string               `json:"voltage"`
	Specifications json.RawMessage      `json:"specifications"`
	Features       json.RawMessage      `json:"features"`
	Options        models.HeaterOptions `json:"options"`
	Warranty       string               `json:"warranty"`
	ElectricSpec   *seedElectricSpec    `json:"electricSpec"`
	WoodSpec       *models.WoodSpec     `json:"woodSpec"`
	IsFeatured     bool                 `json:"isFeatured"`
	Images         []seedImage          `json:"images"`
}

type seedProduct struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Designation        string          `json:"type"`
	CollectionType     string          `json:"collectionType"`
	Series             string          `json:"series"`
	Dimension          string          `json:"dimension"`
	Specifications     json.RawMessage `json:"specifications"`
	Price              decimal.Decimal `json:"price"`
	IsFeatured         bool            `json:"is_featured"`
	Images             []string        `json:"images"`
	Installation       json.RawMessage `json:"installation"`
	StoveType          json.RawMessage `json:"stove_type"`
	WoodType           json.RawMessage `json:"wood_type"`
	AdditionalUpgrades json.RawMessage `json:"additional_upgrades"`
}

// seedOption is one entry of a keyed option map such as installation or wood_type.
type seedOption struct {
	Key   string
	Price decimal.Decimal
	Image string
}

// ════════════════════════════════════════════════════════════
// Naming rules
// ════════════════════════════════════════════════════════════

var (
	heaterKeyPattern = regexp.MustCompile(`(?i)(DROP|HIVE|KIP|Revive|Designer)\s*(Mini)?\s*.*?(\d+\.?\d*)\s*kW`)
	whitespace       = regexp.MustCompile(`\s+`)
	nonSlug          = regexp.MustCompile(`[^a-z0-9]+`)
)

// heaterKey derives the catalog model key, e.g. "HUUM DROP Electric Sauna Heater 6 kW" -> "DROP-6".
func heaterKey(name string) string {
	if m := heaterKeyPattern.FindStringSubmatch(name); m != nil {
		key := strings.ToUpper(m[1])
		if m[2] != "" {
			key += "-Mini"
		}
		return key + "-" + m[3]
	}
	return whitespace.ReplaceAllString(name, "-")
}

// inferCategory maps a product name onto a storefront collection.
func inferCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "shower"):
		return "outdoorshowers"
	case strings.Contains(n, "tub"), strings.Contains(n, "plunge"):
		return "outdoor"
	case strings.Contains(n, "cube"):
		return "cube"
	case strings.Contains(n, "barrel"):
		return "barrel"
	case strings.Contains(n, "cabin"), strings.Contains(n, "pod"), strings.Contains(n, "indoor"):
		return "indoor"
	default:
		return "barrel"
	}
}

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// ════════════════════════════════════════════════════════════
// Builders
// ════════════════════════════════════════════════════════════

func buildHeater(src seedHeater) models.Heater {
	h := models.Heater{
		Name:           src.Name,
		Model:          src.Model,
		Description:    src.Description,
		BasePrice:      src.BasePrice,
		Specifications: jsonOr(src.Specifications, "{}"),
		Features:       jsonOr(src.Features, "[]"),
		Options:        src.Options,
		Warranty:       nilIfEmpty(src.Warranty),
		IsFeatured:     src.IsFeatured,
	}
	if h.Model == "" {
		h.Model = heaterKey(src.Name)
	}
	if h.Options == nil {
		h.Options = models.HeaterOptions{}
	}

	if strings.Contains(strings.ToLower(src.Name), "wood") {
		h.Type = models.HeaterTypeWood
		h.WoodSpec = &models.WoodSpec{FuelType: "Wood"}
		if src.WoodSpec != nil && src.WoodSpec.FuelType != "" {
			h.WoodSpec.FuelType = src.WoodSpec.FuelType
		}
	} else {
		h.Type = models.HeaterTypeElectric
		spec := models.ElectricSpec{Power: src.Power, Voltage: src.Voltage, ElectricianRequired: true}
		if spec.Voltage == "" {
			spec.Voltage = "240V"
		}
		if o := src.ElectricSpec; o != nil {
			if o.Power != nil {
				spec.Power = *o.Power
			}
			if o.Voltage != nil {
				spec.Voltage = *o.Voltage
			}
			if o.ElectricianRequired != nil {
				spec.ElectricianRequired = *o.ElectricianRequired
			}
		}
		h.ElectricSpec = &spec
	}

	for i, img := range src.Images {
		alt := img.Alt
		if alt == "" {
			alt = src.Name
		}
		h.Images = append(h.Images, models.Image{
			URL:       img.URL,
			AltText:   &alt,
			Order:     i,
			IsPrimary: img.IsPrimary || i == 0,
		})
	}
	return h
}

// buildProduct converts one products.json entry. position becomes the display order.
func buildProduct(src seedProduct, position int) (models.Product, error) {
	p := models.Product{
		Name:           src.Name,
		Description:    src.Description,
		Type:           inferCategory(src.Name),
		Designation:    src.Designation,
		CollectionType: nilIfEmpty(src.CollectionType),
		Series:         nilIfEmpty(src.Series),
		Dimensions:     nilIfEmpty(src.Dimension),
		Specifications: jsonOr(src.Specifications, "{}"),
		BasePrice:      src.Price,
		DisplayOrder:   position,
		IsFeatured:     src.IsFeatured,
	}
	if p.Designation == "" {
		p.Designation = "Standard"
	}

	for i, url := range src.Images {
		alt := fmt.Sprintf("%s - Image %d", src.Name, i+1)
		p.Images = append(p.Images, models.Image{URL: url, AltText: &alt, Order: i, IsPrimary: i == 0})
	}

	installation, err := decodeOptionMap(src.Installation)
	if err != nil {
		return p, fmt.Errorf("installation: %w", err)
	}
	for _, o := range installation {
		name := "Supply & Install"
		if o.Key == "DIY" {
			name = "DIY Installation"
		}
		opt := models.ProductOption{
			Name:       name,
			OptionType: models.OptionTypeInstallation,
			Price:      o.Price,
			IsDefault:  o.Key == "DIY",
		}
		opt.ApplyLegacyDeliveryDefault()
		p.Options = append(p.Options, opt)
	}

	woods, err := decodeOptionMap(src.WoodType)
	if err != nil {
		return p, fmt.Errorf("wood_type: %w", err)
	}
	for i, o := range woods {
		p.Options = append(p.Options, models.ProductOption{
			Name:       o.Key,
			OptionType: models.OptionTypeWoodType,
			Price:      o.Price,
			IsDefault:  i == 0,
			ImageURL:   nilIfEmpty(o.Image),
		})
	}

	upgrades, err := decodeOptionMap(src.AdditionalUpgrades)
	if err != nil {
		return p, fmt.Errorf("additional_upgrades: %w", err)
	}
	for _, o := range upgrades {
		p.Options = append(p.Options, models.ProductOption{
			Name:       o.Key,
			OptionType: models.OptionTypeFinish,
			Price:      o.Price,
			ImageURL:   nilIfEmpty(o.Image),
		})
	}

	return p, nil
}

// stoveKeys lists the heater keys a product's stove_type map refers to, in file order.
func stoveKeys(raw json.RawMessage) ([]string, error) {
	options, err := decodeOptionMap(raw)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(options))
	for _, o := range options {
		keys = append(keys, heaterKey(o.Key))
	}
	return keys, nil
}

// matchHeater resolves a heater key against the seeded heaters: an exact model match first, then
// the first heater sharing the model family prefix.
func matchHeater(heaters []models.Heater, key string) (models.Heater, bool) {
	for _, h := range heaters {
		if h.Model == key {
			return h, true
		}
	}
	family := strings.Split(key, "-")[0]
	for _, h := range heaters {
		if strings.Contains(h.Model, family) || strings.Contains(key, strings.Split(h.Model, "-")[0]) {
			return h, true
		}
	}
	return models.Heater{}, false
}

// decodeOptionMap reads a keyed option object in file order. Values may be a bare price, a
// {price, image} object or anything else (treated as free). A bare string names a single option.
func decodeOptionMap(raw json.RawMessage) ([]seedOption, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, err
		}
		return []seedOption{{Key: name}}, nil
	}

	var out []seedOption
	err := models.DecodeOrderedObject(raw, func(key string, dec *json.Decoder) error {
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		out = append(out, parseOptionValue(key, value))
		return nil
	})
	return out, err
}

func parseOptionValue(key string, value json.RawMessage) seedOption {
	opt := seedOption{Key: key}
	var price decimal.Decimal
	if err := json.Unmarshal(value, &price); err == nil {
		opt.Price = price
		return opt
	}
	var obj struct {
		Price decimal.NullDecimal `json:"price"`
		Image string              `json:"image"`
	}
	if err := json.Unmarshal(value, &obj); err == nil {
		if obj.Price.Valid {
			opt.Price = obj.Price.Decimal
		}
		opt.Image = obj.Image
	}
	return opt
}

func jsonOr(raw json.RawMessage, fallback string) datatypes.JSON {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return datatypes.JSON(fallback)
	}
	return datatypes.JSON(raw)
}

func nilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func uniqueHeaters(heaters []models.Heater) []models.Heater {
	seen := make(map[uuid.UUID]bool, len(heaters))
	out := heaters[:0]
	for _, h := range heaters {
		if seen[h.ID] {
			continue
		}
		seen[h.ID] = true
		out = append(out, h)
	}
	return out
}
