package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaterOptions_DecodePreservesKeyOrder(t *testing.T) {
	raw := `{"stones":[{"type":"Standard","price":0},{"type":"Premium","price":150}],"controls":[{"type":"Wifi","price":400}],"safetyRailing":[]}`

	var opts HeaterOptions
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))

	keys := make([]string, 0, len(opts))
	for _, g := range opts.Entries() {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"stones", "controls", "safetyRailing"}, keys)

	choice, ok := opts.Lookup("stones", "Premium")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(150).Equal(choice.Price))

	_, ok = opts.Lookup("stones", "premium")
	assert.False(t, ok)

	out, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
	assert.Regexp(t, `^\{"stones".*"controls".*"safetyRailing":\[\]\}$`, string(out))
}

func TestHeaterOptions_NullAndEmpty(t *testing.T) {
	var opts HeaterOptions
	require.NoError(t, json.Unmarshal([]byte(`null`), &opts))
	assert.Empty(t, opts)

	require.NoError(t, opts.Scan(nil))
	assert.Empty(t, opts)

	require.NoError(t, opts.Scan(`{}`))
	assert.Empty(t, opts)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &opts))
}

func TestHeaterOptions_SetReplacesInPlace(t *testing.T) {
	var opts HeaterOptions
	opts.Set("stones", []HeaterChoice{{Type: "Standard"}})
	opts.Set("controls", nil)
	opts.Set("stones", []HeaterChoice{{Type: "Premium"}})

	require.Len(t, opts, 2)
	assert.Equal(t, "stones", opts[0].Key)
	assert.Equal(t, "Premium", opts[0].Choices[0].Type)
}

func TestLegacyChargesDelivery(t *testing.T) {
	assert.True(t, LegacyChargesDelivery("DIY Installation", decimal.Zero))
	assert.True(t, LegacyChargesDelivery("Self install (diy kit)", decimal.Zero))
	assert.False(t, LegacyChargesDelivery("DIY Installation", decimal.NewFromInt(100)))
	assert.False(t, LegacyChargesDelivery("Professional Installation", decimal.Zero))

	opt := ProductOption{Name: "DIY Installation", OptionType: OptionTypeWoodType}
	opt.ApplyLegacyDeliveryDefault()
	assert.False(t, opt.ChargesDelivery)

	opt.OptionType = OptionTypeInstallation
	opt.ApplyLegacyDeliveryDefault()
	assert.True(t, opt.ChargesDelivery)
	assert.True(t, LegacyDeliveryFee.Equal(opt.DeliveryFee))
}
