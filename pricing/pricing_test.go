package pricing

import (
	"testing"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByType_KeepsCatalogOrder(t *testing.T) {
	f := newFixture()

	addOns := FilterByType(f.product.Options, models.OptionTypeFinish)
	require.Len(t, addOns, 3)
	assert.Equal(t, "Backrests", addOns[0].Name)
	assert.Equal(t, "LED Lighting", addOns[1].Name)
	assert.Equal(t, "Bucket and Ladle", addOns[2].Name)

	catalog := NewCatalog(f.product)
	assert.Len(t, catalog.Installation, 3)
	assert.Len(t, catalog.WoodTypes, 2)
	assert.Len(t, catalog.Heaters, 2)
}

func TestNewConfiguration_AppliesDefaults(t *testing.T) {
	f := newFixture()

	cfg := NewConfiguration(f.product)

	assert.Equal(t, f.diy, cfg.InstallationID)
	assert.Equal(t, f.cedar, cfg.WoodTypeID)
	assert.Equal(t, uuid.Nil, cfg.HeaterID)
	assert.Empty(t, cfg.AddOnIDs())
}

func TestNewConfiguration_NoDefaults(t *testing.T) {
	product := &models.Product{
		BasePrice: dec(2500),
		Options:   []models.ProductOption{option("Thermo Aspen", models.OptionTypeWoodType, 300, false)},
	}

	cfg := NewConfiguration(product)

	assert.Equal(t, uuid.Nil, cfg.WoodTypeID)
	assert.Equal(t, uuid.Nil, cfg.InstallationID)
	assertDecimal(t, 2500, ComputeTotal(product, cfg))
}

func TestCompute_EndToEndScenario(t *testing.T) {
	f := newFixture()

	b := Compute(f.product, f.endToEnd())

	assertDecimal(t, 6000, b.Total())
	assertDecimal(t, 5650, b.Subtotal())
	assertDecimal(t, 350, b.Delivery())
	assert.True(t, b.HasDelivery())

	kinds := make([]LineKind, 0, len(b.Lines))
	for _, l := range b.Lines {
		kinds = append(kinds, l.Kind)
	}
	assert.Equal(t, []LineKind{
		LineBase, LineHeater, LineHeaterOption, LineInstallation, LineDelivery, LineWoodType, LineAddOn,
	}, kinds)
}

func TestCompute_MonotonicWhenAddingOptions(t *testing.T) {
	f := newFixture()
	cfg := NewConfiguration(f.product)
	before := ComputeTotal(f.product, cfg)

	steps := []func(c *Configuration){
		func(c *Configuration) { c.SelectHeater(f.heaterA) },
		func(c *Configuration) { c.ChooseHeaterOption("stones", "Standard") },
		func(c *Configuration) { c.ChooseHeaterOption("safetyRailing", "Cedar") },
		func(c *Configuration) { c.ToggleAddOn(f.freeAddOn) },
		func(c *Configuration) { c.ToggleAddOn(f.backrest) },
		func(c *Configuration) { c.ToggleAddOn(f.lights) },
	}
	for i, step := range steps {
		step(&cfg)
		after := ComputeTotal(f.product, cfg)
		assert.True(t, after.GreaterThanOrEqual(before), "step %d decreased the total: %s -> %s", i, before, after)
		before = after
	}
}

func TestCompute_RemovingAddOnSubtractsItsPrice(t *testing.T) {
	f := newFixture()
	cfg := f.endToEnd()
	cfg.ToggleAddOn(f.backrest)
	withBoth := ComputeTotal(f.product, cfg)

	selected := cfg.ToggleAddOn(f.backrest)

	assert.False(t, selected)
	assertDecimal(t, 180, withBoth.Sub(ComputeTotal(f.product, cfg)))
}

func TestSelectHeater_ClearsHeaterOptionChoices(t *testing.T) {
	f := newFixture()
	cfg := Configuration{}
	cfg.SelectHeater(f.heaterA)
	cfg.ChooseHeaterOption("stones", "Premium")
	cfg.ChooseHeaterOption("safetyRailing", "Cedar")

	cfg.SelectHeater(f.heaterB)

	assert.Empty(t, cfg.HeaterChoices)
	assertDecimal(t, 4000+900, ComputeTotal(f.product, cfg))
}

func TestSelectHeater_ReselectingSameHeaterAlsoClears(t *testing.T) {
	f := newFixture()
	cfg := Configuration{}
	cfg.SelectHeater(f.heaterA)
	cfg.ChooseHeaterOption("stones", "Premium")

	cfg.SelectHeater(f.heaterA)

	assert.Empty(t, cfg.HeaterChoices)
}

func TestChooseHeaterOption_IgnoredWithoutHeater(t *testing.T) {
	cfg := Configuration{}

	cfg.ChooseHeaterOption("stones", "Premium")

	assert.Empty(t, cfg.HeaterChoices)
}

func TestChooseHeaterOption_EmptyChoiceUnsets(t *testing.T) {
	f := newFixture()
	cfg := Configuration{}
	cfg.SelectHeater(f.heaterA)
	cfg.ChooseHeaterOption("stones", "Premium")

	cfg.ChooseHeaterOption("stones", "")

	assert.NotContains(t, cfg.HeaterChoices, "stones")
	assertDecimal(t, 5200, ComputeTotal(f.product, cfg))
}

func TestClearHeater(t *testing.T) {
	f := newFixture()
	cfg := f.endToEnd()

	cfg.ClearHeater()

	assert.Equal(t, uuid.Nil, cfg.HeaterID)
	assert.Empty(t, cfg.HeaterChoices)
	assertDecimal(t, 4000+300+350, ComputeTotal(f.product, cfg))
}

func TestToggleAddOn_Idempotent(t *testing.T) {
	f := newFixture()
	cfg := NewConfiguration(f.product)
	before := ComputeTotal(f.product, cfg)

	assert.True(t, cfg.ToggleAddOn(f.backrest))
	assert.True(t, cfg.HasAddOn(f.backrest))
	assert.False(t, cfg.ToggleAddOn(f.backrest))
	assert.False(t, cfg.HasAddOn(f.backrest))

	assert.True(t, before.Equal(ComputeTotal(f.product, cfg)))
}

func TestAddOnIDs_Sorted(t *testing.T) {
	f := newFixture()
	cfg := Configuration{}
	cfg.ToggleAddOn(f.lights)
	cfg.ToggleAddOn(f.backrest)
	cfg.ToggleAddOn(f.freeAddOn)

	ids := cfg.AddOnIDs()

	require.Len(t, ids, 3)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1].String(), ids[i].String())
	}
}

func TestDeliverySurcharge(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name         string
		installation uuid.UUID
		wantTotal    int64
		wantDelivery bool
	}{
		{"free DIY adds the flat fee", f.diy, 4000 + 350, true},
		{"paid DIY has no fee", f.diyPaid, 4000 + 200, false},
		{"professional install has no fee", f.proInstall, 4000 + 1500, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfiguration(f.product)
			cfg.SelectInstallation(tc.installation)

			b := Compute(f.product, cfg)

			assertDecimal(t, tc.wantTotal, b.Total())
			assert.Equal(t, tc.wantDelivery, b.HasDelivery())
		})
	}
}

func TestDeliverySurcharge_StructuredFlagDrivesPricing(t *testing.T) {
	flagged := models.ProductOption{
		ID:              uuid.New(),
		Name:            "Curbside Kit",
		OptionType:      models.OptionTypeInstallation,
		Price:           dec(0),
		ChargesDelivery: true,
		DeliveryFee:     dec(275),
	}
	product := &models.Product{BasePrice: dec(3000), Options: []models.ProductOption{flagged}}
	cfg := Configuration{InstallationID: flagged.ID}

	b := Compute(product, cfg)

	assertDecimal(t, 3275, b.Total())
	assertDecimal(t, 275, b.Delivery())
}

func TestCompute_StaleReferencesContributeNothing(t *testing.T) {
	f := newFixture()
	cfg := f.endToEnd()
	cfg.SelectWoodType(f.hemlock)

	t.Run("removed add-on", func(t *testing.T) {
		assertDecimal(t, 6000+650-300, ComputeTotal(f.without(f.lights), cfg))
	})

	t.Run("removed installation drops its delivery fee too", func(t *testing.T) {
		assertDecimal(t, 6000+650-350, ComputeTotal(f.without(f.diy), cfg))
	})

	t.Run("removed wood type", func(t *testing.T) {
		assertDecimal(t, 6000, ComputeTotal(f.without(f.hemlock), cfg))
	})

	t.Run("unknown heater option type", func(t *testing.T) {
		stale := cfg.Clone()
		stale.HeaterChoices["stones"] = "Volcanic"
		assertDecimal(t, 6000+650-150, ComputeTotal(f.product, stale))
	})

	t.Run("unknown heater", func(t *testing.T) {
		stale := cfg.Clone()
		stale.HeaterID = uuid.New()
		assertDecimal(t, 6000+650-1200-150, ComputeTotal(f.product, stale))
	})

	t.Run("add-on id from another partition", func(t *testing.T) {
		stale := cfg.Clone()
		stale.ToggleAddOn(f.proInstall)
		assertDecimal(t, 6000+650, ComputeTotal(f.product, stale))
	})
}

func TestClone_DoesNotShareState(t *testing.T) {
	f := newFixture()
	cfg := f.endToEnd()

	clone := cfg.Clone()
	clone.ChooseHeaterOption("stones", "Standard")
	clone.ToggleAddOn(f.lights)

	assert.Equal(t, "Premium", cfg.HeaterChoices["stones"])
	assert.True(t, cfg.HasAddOn(f.lights))
}

func TestConfigurationFromRequest(t *testing.T) {
	f := newFixture()
	heater := f.heaterA
	inst := f.diy
	wood := f.cedar

	cfg := ConfigurationFromRequest(models.ConfigurationRequest{
		HeaterID:       &heater,
		HeaterOptions:  map[string]string{"stones": "Premium"},
		InstallationID: &inst,
		WoodTypeID:     &wood,
		AddOnIDs:       []uuid.UUID{f.lights, f.lights},
	})

	assertDecimal(t, 6000, ComputeTotal(f.product, cfg))
	assert.Equal(t, []uuid.UUID{f.lights}, cfg.AddOnIDs())

	req := cfg.Request()
	require.NotNil(t, req.HeaterID)
	assert.Equal(t, f.heaterA, *req.HeaterID)
	assert.Equal(t, map[string]string{"stones": "Premium"}, req.HeaterOptions)
}

func TestConfigurationFromRequest_DropsHeaterOptionsWithoutHeater(t *testing.T) {
	cfg := ConfigurationFromRequest(models.ConfigurationRequest{
		HeaterOptions: map[string]string{"stones": "Premium"},
	})

	assert.Empty(t, cfg.HeaterChoices)
}
