// Package pricing holds the sauna configurator: the option catalog projection, the per-visit
// configuration state, the price aggregator and the quote payload builder. Nothing in here does I/O.
package pricing

import (
	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
)

// Catalog is a product's option universe split by option type.
type Catalog struct {
	Installation []models.ProductOption
	WoodTypes    []models.ProductOption
	AddOns       []models.ProductOption
	Heaters      []models.Heater
}

// NewCatalog projects the product's options into their partitions, keeping catalog order.
func NewCatalog(product *models.Product) Catalog {
	return Catalog{
		Installation: FilterByType(product.Options, models.OptionTypeInstallation),
		WoodTypes:    FilterByType(product.Options, models.OptionTypeWoodType),
		AddOns:       FilterByType(product.Options, models.OptionTypeFinish),
		Heaters:      product.Heaters,
	}
}

// FilterByType returns the options of one type in the order they appear in the catalog.
func FilterByType(options []models.ProductOption, optionType models.OptionType) []models.ProductOption {
	out := make([]models.ProductOption, 0, len(options))
	for _, opt := range options {
		if opt.OptionType == optionType {
			out = append(out, opt)
		}
	}
	return out
}

// DefaultOption returns the first option flagged as default.
func DefaultOption(options []models.ProductOption) (models.ProductOption, bool) {
	for _, opt := range options {
		if opt.IsDefault {
			return opt, true
		}
	}
	return models.ProductOption{}, false
}

func findOption(options []models.ProductOption, id uuid.UUID) (models.ProductOption, bool) {
	if id == uuid.Nil {
		return models.ProductOption{}, false
	}
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return models.ProductOption{}, false
}
