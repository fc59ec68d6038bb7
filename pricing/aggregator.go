package pricing

import (
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/shopspring/decimal"
)

type LineKind string

const (
	LineBase         LineKind = "base"
	LineHeater       LineKind = "heater"
	LineHeaterOption LineKind = "heater_option"
	LineInstallation LineKind = "installation"
	LineWoodType     LineKind = "wood_type"
	LineAddOn        LineKind = "add_on"
	LineDelivery     LineKind = "delivery"
)

// Line is one contribution to the total. Group is set for heater option lines.
type Line struct {
	Kind   LineKind        `json:"kind"`
	Name   string          `json:"name"`
	Group  string          `json:"group,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown is the fully recomputed price of a configuration. Only resolved selections appear in
// it: stale ids and unknown heater option types are left out.
type Breakdown struct {
	Lines []Line `json:"lines"`

	heater        *models.Heater
	heaterOptions []Line
	installation  *models.ProductOption
	woodType      *models.ProductOption
	addOns        []models.ProductOption
}

// Compute prices a configuration from scratch: base price plus every resolvable selection, plus
// the delivery fee of an installation option that charges one.
func Compute(product *models.Product, cfg Configuration) Breakdown {
	b := Breakdown{}
	b.add(Line{Kind: LineBase, Name: product.Name, Amount: product.BasePrice})

	if heater, ok := product.HeaterByID(cfg.HeaterID); ok {
		b.heater = heater
		b.add(Line{Kind: LineHeater, Name: heater.Name, Amount: heater.BasePrice})

		for _, group := range heater.Options.Entries() {
			chosen, ok := cfg.HeaterChoices[group.Key]
			if !ok {
				continue
			}
			choice, ok := heater.Options.Lookup(group.Key, chosen)
			if !ok {
				continue
			}
			line := Line{Kind: LineHeaterOption, Name: choice.Type, Group: group.Key, Amount: choice.Price}
			b.heaterOptions = append(b.heaterOptions, line)
			b.add(line)
		}
	}

	catalog := NewCatalog(product)

	if opt, ok := findOption(catalog.Installation, cfg.InstallationID); ok {
		b.installation = &opt
		b.add(Line{Kind: LineInstallation, Name: opt.Name, Amount: opt.Price})
		if opt.ChargesDelivery && opt.DeliveryFee.IsPositive() {
			b.add(Line{Kind: LineDelivery, Name: "Delivery", Amount: opt.DeliveryFee})
		}
	}

	if opt, ok := findOption(catalog.WoodTypes, cfg.WoodTypeID); ok {
		b.woodType = &opt
		b.add(Line{Kind: LineWoodType, Name: opt.Name, Amount: opt.Price})
	}

	// Add-ons follow catalog order so the breakdown reads the same way the configurator does.
	for _, opt := range catalog.AddOns {
		if cfg.HasAddOn(opt.ID) {
			b.addOns = append(b.addOns, opt)
			b.add(Line{Kind: LineAddOn, Name: opt.Name, Amount: opt.Price})
		}
	}

	return b
}

// ComputeTotal is Compute(...).Total().
func ComputeTotal(product *models.Product, cfg Configuration) decimal.Decimal {
	return Compute(product, cfg).Total()
}

func (b *Breakdown) add(line Line) {
	b.Lines = append(b.Lines, line)
}

// Total is the sum of every line, delivery included.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.Amount)
	}
	return total
}

// Delivery is the delivery surcharge, zero when none applies.
func (b Breakdown) Delivery() decimal.Decimal {
	fee := decimal.Zero
	for _, l := range b.Lines {
		if l.Kind == LineDelivery {
			fee = fee.Add(l.Amount)
		}
	}
	return fee
}

// HasDelivery reports whether the surcharge fired.
func (b Breakdown) HasDelivery() bool {
	for _, l := range b.Lines {
		if l.Kind == LineDelivery {
			return true
		}
	}
	return false
}

// Subtotal is the total without the delivery surcharge.
func (b Breakdown) Subtotal() decimal.Decimal {
	return b.Total().Sub(b.Delivery())
}

// Heater returns the resolved heater, nil when none is selected or it left the catalog.
func (b Breakdown) Heater() *models.Heater { return b.heater }

func (b Breakdown) Installation() *models.ProductOption { return b.installation }

func (b Breakdown) WoodType() *models.ProductOption { return b.woodType }

func (b Breakdown) AddOns() []models.ProductOption { return b.addOns }

// HeaterOptionLines returns the resolved heater option lines in the heater's group order.
func (b Breakdown) HeaterOptionLines() []Line { return b.heaterOptions }
