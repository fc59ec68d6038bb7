package pricing

import (
	"errors"
	"strings"
	"unicode"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/shopspring/decimal"
)

var ErrMissingContactFields = errors.New("name and email are required to request a quote")

const defaultQuoteMessage = "Quote request submitted from the product page."

// BuildPayload snapshots a priced configuration into the quote request that gets mailed. Every
// selection is resolved to its display name; stale selections are left out the same way Compute
// leaves them out of the price.
func BuildPayload(product *models.Product, cfg Configuration, contact models.QuoteContact) (*models.QuoteRequest, error) {
	name := strings.TrimSpace(contact.Name)
	email := strings.TrimSpace(contact.Email)
	if name == "" || email == "" {
		return nil, ErrMissingContactFields
	}

	breakdown := Compute(product, cfg)
	subtotal := breakdown.Subtotal()
	shipping := breakdown.Delivery()

	item := models.CartItem{
		Name:          product.Name,
		Qty:           1,
		Price:         product.BasePrice,
		Configuration: buildCartConfiguration(breakdown),
	}
	if img := productPrimaryImage(product); img != "" {
		item.Image = img
	}

	message := strings.TrimSpace(contact.Message)
	if message == "" {
		message = defaultQuoteMessage
	}

	return &models.QuoteRequest{
		Name:        name,
		Email:       email,
		Phone:       strings.TrimSpace(contact.Phone),
		Subject:     "Quote Request: " + product.Name,
		Message:     message,
		PostalCode:  strings.TrimSpace(contact.PostalCode),
		Province:    strings.TrimSpace(contact.Province),
		Address:     strings.TrimSpace(contact.Address),
		City:        strings.TrimSpace(contact.City),
		IsCartQuote: true,
		CartItems:   []models.CartItem{item},
		CartSummary: &models.CartSummary{
			Subtotal: subtotal,
			Shipping: shipping,
			Tax:      decimal.Zero,
			Total:    subtotal.Add(shipping),
		},
	}, nil
}

func buildCartConfiguration(b Breakdown) *models.CartConfiguration {
	cfg := &models.CartConfiguration{}

	if wood := b.WoodType(); wood != nil {
		cfg.WoodType = &models.NamedLine{Name: wood.Name}
	}
	if heater := b.Heater(); heater != nil {
		cfg.Stove = &models.StoveLine{Name: heater.Name}
	}
	if inst := b.Installation(); inst != nil {
		cfg.Installation = &models.NamedLine{Name: inst.Name}
	}
	if b.HasDelivery() {
		cfg.Delivery = &models.DeliveryLine{Included: false, Cost: b.Delivery()}
	}
	for _, opt := range b.AddOns() {
		cfg.Upgrades = append(cfg.Upgrades, models.PricedLine{Name: opt.Name, Price: opt.Price})
	}
	for _, line := range b.HeaterOptionLines() {
		cfg.HeaterOptions = append(cfg.HeaterOptions, models.PricedLine{
			Name:  HumanizeKey(line.Group) + ": " + line.Name,
			Price: line.Amount,
		})
	}
	return cfg
}

func productPrimaryImage(product *models.Product) string {
	for _, img := range product.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(product.Images) > 0 {
		return product.Images[0].URL
	}
	return ""
}

// HumanizeKey turns an option group key into a label: "safetyRailing" becomes "Safety Railing".
func HumanizeKey(key string) string {
	runes := []rune(key)
	if len(runes) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteRune(unicode.ToUpper(runes[0]))
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
