package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/config"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := config.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B2", "B3", "B4", "B5", "SN"}, c.FabricTypes)
	assert.Equal(t, 4000000, c.HeavyDutyArea)
	assert.Equal(t, 200.0, c.Fees.Wifi)

	m, ok := c.PriceMatrix("B1")
	require.True(t, ok)
	assert.Equal(t, 3000, m.Widths[len(m.Widths)-1])
	assert.Len(t, m.Prices, len(m.Drops))

	price, ok := c.AccessoryPrice("comboBracket")
	require.True(t, ok)
	assert.Equal(t, 30.0, price)
}

func TestPriceMatrixFollowsAlias(t *testing.T) {
	c, err := config.DefaultCatalog()
	require.NoError(t, err)

	alias, ok := c.PriceMatrix("B5")
	require.True(t, ok)
	target, ok := c.PriceMatrix("SN")
	require.True(t, ok)
	assert.Equal(t, target, alias)

	_, ok = c.PriceMatrix("ZZ")
	assert.False(t, ok)
}

func TestParseCatalogRejectsBrokenMatrices(t *testing.T) {
	cases := map[string]string{
		"no types": `price_matrices: {}`,
		"missing alias": `
fabric_types: [A]
price_matrices:
  A: {alias_for: B}
`,
		"row mismatch": `
fabric_types: [A]
price_matrices:
  A:
    widths: [100]
    drops: [100, 200]
    prices: [[1]]
`,
		"descending buckets": `
fabric_types: [A]
price_matrices:
  A:
    widths: [200, 100]
    drops: [100]
    prices: [[1, 2]]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestResolveFabricType(t *testing.T) {
	c, err := config.DefaultCatalog()
	require.NoError(t, err)

	got, err := c.ResolveFabricType(" sn ")
	require.NoError(t, err)
	assert.Equal(t, "SN", got)

	_, err = c.ResolveFabricType("B9")
	require.ErrorIs(t, err, config.ErrUnknownFabricType)
	assert.Contains(t, err.Error(), "did you mean B1?")

	_, err = c.ResolveFabricType("")
	assert.ErrorIs(t, err, config.ErrUnknownFabricType)
}

func TestLightFilterEligibility(t *testing.T) {
	c, err := config.DefaultCatalog()
	require.NoError(t, err)
	assert.True(t, c.IsLightFilterEligible("B3"))
	assert.False(t, c.IsLightFilterEligible("B1"))
	assert.False(t, c.IsLightFilterEligible("SN"))
}
