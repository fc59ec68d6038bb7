package pricing

import (
	"testing"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	product    *models.Product
	heaterA    uuid.UUID
	heaterB    uuid.UUID
	diy        uuid.UUID
	proInstall uuid.UUID
	diyPaid    uuid.UUID
	cedar      uuid.UUID
	hemlock    uuid.UUID
	lights     uuid.UUID
	backrest   uuid.UUID
	freeAddOn  uuid.UUID
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %d, got %s", want, got.String())
}

func option(name string, kind models.OptionType, price int64, isDefault bool) models.ProductOption {
	opt := models.ProductOption{
		ID:         uuid.New(),
		Name:       name,
		OptionType: kind,
		Price:      dec(price),
		IsDefault:  isDefault,
	}
	opt.ApplyLegacyDeliveryDefault()
	return opt
}

// newFixture builds a barrel sauna priced at 4000 with two heaters and the usual option partitions.
func newFixture() fixture {
	var stonesA, controlsA models.HeaterOptions
	stonesA.Set("stones", []models.HeaterChoice{
		{Type: "Standard", Price: dec(0)},
		{Type: "Premium", Price: dec(150)},
	})
	stonesA.Set("safetyRailing", []models.HeaterChoice{
		{Type: "Cedar", Price: dec(220)},
	})
	controlsA.Set("controls", []models.HeaterChoice{
		{Type: "Wifi", Price: dec(400)},
	})

	heaterA := models.Heater{ID: uuid.New(), Name: "Huum Drop 6kW", Type: models.HeaterTypeElectric, BasePrice: dec(1200), Options: stonesA}
	heaterB := models.Heater{ID: uuid.New(), Name: "Harvia M3", Type: models.HeaterTypeWood, BasePrice: dec(900), Options: controlsA}

	diy := option("DIY Installation", models.OptionTypeInstallation, 0, true)
	pro := option("Professional Installation", models.OptionTypeInstallation, 1500, false)
	diyPaid := option("DIY Assisted", models.OptionTypeInstallation, 200, false)
	cedar := option("Canadian Red Cedar", models.OptionTypeWoodType, 0, true)
	hemlock := option("Thermo Hemlock", models.OptionTypeWoodType, 650, false)
	lights := option("LED Lighting", models.OptionTypeFinish, 300, false)
	backrest := option("Backrests", models.OptionTypeFinish, 180, false)
	free := option("Bucket and Ladle", models.OptionTypeFinish, 0, false)

	product := &models.Product{
		ID:        uuid.New(),
		Name:      "Barrel Sauna 6ft",
		Type:      "barrel",
		BasePrice: dec(4000),
		Options:   []models.ProductOption{backrest, diy, cedar, lights, pro, hemlock, diyPaid, free},
		Heaters:   []models.Heater{heaterA, heaterB},
	}

	return fixture{
		product:    product,
		heaterA:    heaterA.ID,
		heaterB:    heaterB.ID,
		diy:        diy.ID,
		proInstall: pro.ID,
		diyPaid:    diyPaid.ID,
		cedar:      cedar.ID,
		hemlock:    hemlock.ID,
		lights:     lights.ID,
		backrest:   backrest.ID,
		freeAddOn:  free.ID,
	}
}

// endToEnd is the configuration used in the end-to-end pricing and payload tests.
func (f fixture) endToEnd() Configuration {
	cfg := NewConfiguration(f.product)
	cfg.SelectHeater(f.heaterA)
	cfg.ChooseHeaterOption("stones", "Premium")
	cfg.ToggleAddOn(f.lights)
	return cfg
}

// without returns a copy of the product with the given option removed from the catalog.
func (f fixture) without(id uuid.UUID) *models.Product {
	p := *f.product
	p.Options = nil
	for _, opt := range f.product.Options {
		if opt.ID != id {
			p.Options = append(p.Options, opt)
		}
	}
	return &p
}
