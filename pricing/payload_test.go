package pricing

import (
	"encoding/json"
	"testing"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contact() models.QuoteContact {
	return models.QuoteContact{Name: "  Jane Doe ", Email: "jane@example.com", Phone: "416-555-0101"}
}

func TestBuildPayload_EndToEnd(t *testing.T) {
	f := newFixture()

	req, err := BuildPayload(f.product, f.endToEnd(), contact())
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", req.Name)
	assert.Equal(t, "Quote Request: Barrel Sauna 6ft", req.Subject)
	assert.Equal(t, "Quote request submitted from the product page.", req.Message)
	assert.True(t, req.IsCartQuote)
	require.Len(t, req.CartItems, 1)

	item := req.CartItems[0]
	assert.Equal(t, "Barrel Sauna 6ft", item.Name)
	assert.Equal(t, 1, item.Qty)
	assertDecimal(t, 4000, item.Price)

	cfg := item.Configuration
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Stove)
	assert.Equal(t, "Huum Drop 6kW", cfg.Stove.Name)
	require.NotNil(t, cfg.WoodType)
	assert.Equal(t, "Canadian Red Cedar", cfg.WoodType.Name)
	require.NotNil(t, cfg.Installation)
	assert.Equal(t, "DIY Installation", cfg.Installation.Name)

	require.Len(t, cfg.HeaterOptions, 1)
	assert.Equal(t, "Stones: Premium", cfg.HeaterOptions[0].Name)
	assertDecimal(t, 150, cfg.HeaterOptions[0].Price)

	require.Len(t, cfg.Upgrades, 1)
	assert.Equal(t, "LED Lighting", cfg.Upgrades[0].Name)
	assertDecimal(t, 300, cfg.Upgrades[0].Price)

	require.NotNil(t, cfg.Delivery)
	assert.False(t, cfg.Delivery.Included)
	assertDecimal(t, 350, cfg.Delivery.Cost)

	require.NotNil(t, req.CartSummary)
	assertDecimal(t, 5650, req.CartSummary.Subtotal)
	assertDecimal(t, 350, req.CartSummary.Shipping)
	assertDecimal(t, 0, req.CartSummary.Tax)
	assertDecimal(t, 6000, req.CartSummary.Total)
}

func TestBuildPayload_OmitsDeliveryWithoutSurcharge(t *testing.T) {
	f := newFixture()
	cfg := f.endToEnd()
	cfg.SelectInstallation(f.proInstall)

	req, err := BuildPayload(f.product, cfg, contact())
	require.NoError(t, err)

	assert.Nil(t, req.CartItems[0].Configuration.Delivery)
	assertDecimal(t, 0, req.CartSummary.Shipping)
	assert.True(t, req.CartSummary.Total.Equal(req.CartSummary.Subtotal))

	raw, err := json.Marshal(req.CartItems[0].Configuration)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "delivery")
}

func TestBuildPayload_HeaterOptionsFollowGroupOrder(t *testing.T) {
	f := newFixture()
	cfg := Configuration{}
	cfg.SelectHeater(f.heaterA)
	cfg.ChooseHeaterOption("safetyRailing", "Cedar")
	cfg.ChooseHeaterOption("stones", "Standard")

	req, err := BuildPayload(f.product, cfg, contact())
	require.NoError(t, err)

	lines := req.CartItems[0].Configuration.HeaterOptions
	require.Len(t, lines, 2)
	assert.Equal(t, "Stones: Standard", lines[0].Name)
	assert.Equal(t, "Safety Railing: Cedar", lines[1].Name)
}

func TestBuildPayload_KeepsContactMessage(t *testing.T) {
	f := newFixture()
	c := contact()
	c.Message = "Please deliver after June."

	req, err := BuildPayload(f.product, f.endToEnd(), c)
	require.NoError(t, err)

	assert.Equal(t, "Please deliver after June.", req.Message)
}

func TestBuildPayload_RequiresNameAndEmail(t *testing.T) {
	f := newFixture()

	for _, c := range []models.QuoteContact{
		{Name: "Jane"},
		{Email: "jane@example.com"},
		{Name: "   ", Email: "jane@example.com"},
	} {
		req, err := BuildPayload(f.product, f.endToEnd(), c)
		assert.ErrorIs(t, err, ErrMissingContactFields)
		assert.Nil(t, req)
	}
}

func TestHumanizeKey(t *testing.T) {
	assert.Equal(t, "Stones", HumanizeKey("stones"))
	assert.Equal(t, "Safety Railing", HumanizeKey("safetyRailing"))
	assert.Equal(t, "Wifi Control Unit", HumanizeKey("wifiControlUnit"))
	assert.Equal(t, "", HumanizeKey(""))
}
