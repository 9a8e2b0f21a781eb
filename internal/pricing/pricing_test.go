package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/config"
	"quoteterm/internal/pricing"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

func setup(t *testing.T) (*pricing.Engine, pricing.Strategy) {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	strategy, err := pricing.NewFactory(catalog).Strategy(quote.RollerBlind)
	require.NoError(t, err)
	return pricing.NewEngine(catalog), strategy
}

func item(width, height int, fabricType string) quote.LineItem {
	it := quote.NewItem()
	it.Width = quote.Int(width)
	it.Height = quote.Int(height)
	it.FabricType = fabricType
	return it
}

func docWith(items ...quote.LineItem) quote.Document {
	doc := quote.Blueprint(quote.RollerBlind)
	doc.Product().Items = append(items, quote.NewItem())
	return doc
}

func TestFactory(t *testing.T) {
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	f := pricing.NewFactory(catalog)

	s, err := f.Strategy(quote.RollerBlind)
	require.NoError(t, err)
	assert.Equal(t, quote.RollerBlind, s.Product())
	assert.True(t, s.NewItem().IsEmpty())

	_, err = f.Strategy("curtain")
	assert.Error(t, err)
}

func TestCalculateAndSumPartialFailure(t *testing.T) {
	engine, strategy := setup(t)
	doc := docWith(
		item(1000, 1000, "B1"),
		item(9999, 1000, "B1"),
		item(2000, 2000, "B1"),
	)

	out, rowErr := engine.CalculateAndSum(doc, strategy)

	items := out.Product().Items
	require.NotNil(t, items[0].LinePrice)
	assert.Nil(t, items[1].LinePrice)
	require.NotNil(t, items[2].LinePrice)

	require.NotNil(t, rowErr)
	assert.Equal(t, 1, rowErr.RowIndex)
	assert.Equal(t, quote.FieldWidth, rowErr.Column)
	assert.Equal(t, "Row 2: Width 9999 exceeds the maximum width in the price matrix.", rowErr.Message)
	assert.ErrorIs(t, rowErr, pricing.ErrWidthExceeded)

	assert.Nil(t, doc.Product().Items[0].LinePrice, "input document untouched")
}

func TestCalculateAndSumReportsFirstErrorOnly(t *testing.T) {
	engine, strategy := setup(t)
	doc := docWith(
		item(1000, 9999, "B1"),
		item(9999, 1000, "B1"),
	)

	_, rowErr := engine.CalculateAndSum(doc, strategy)

	require.NotNil(t, rowErr)
	assert.Equal(t, 0, rowErr.RowIndex)
	assert.Equal(t, quote.FieldHeight, rowErr.Column)
	assert.ErrorIs(t, rowErr, pricing.ErrHeightExceeded)
}

func TestCalculateAndSumMissingMatrix(t *testing.T) {
	engine, strategy := setup(t)
	doc := docWith(item(1000, 1000, "ZZ"))

	out, rowErr := engine.CalculateAndSum(doc, strategy)

	require.NotNil(t, rowErr)
	assert.Equal(t, "Row 1: Price matrix not found for fabric type: ZZ", rowErr.Message)
	assert.Equal(t, quote.FieldHeight, rowErr.Column)
	assert.Nil(t, out.Product().Items[0].LinePrice)
	assert.Equal(t, 0.0, *out.Product().Summary.TotalSum)
}

func TestCalculateAndSumSkipsIncompleteRows(t *testing.T) {
	engine, strategy := setup(t)
	partial := quote.NewItem()
	partial.Width = quote.Int(1000)
	partial.LinePrice = quote.Float(99)

	out, rowErr := engine.CalculateAndSum(docWith(partial), strategy)

	assert.Nil(t, rowErr)
	assert.Nil(t, out.Product().Items[0].LinePrice)
}

func TestBucketSelection(t *testing.T) {
	engine, strategy := setup(t)
	m, ok := engine.Catalog().PriceMatrix("B1")
	require.True(t, ok)

	cases := []struct {
		width, height int
		want          float64
	}{
		{600, 900, m.Prices[0][0]},
		{601, 900, m.Prices[0][1]},
		{3000, 3000, m.Prices[len(m.Drops)-1][len(m.Widths)-1]},
		{1, 1, m.Prices[0][0]},
	}
	for _, tc := range cases {
		price, err := strategy.CalculatePrice(item(tc.width, tc.height, "B1"), m)
		require.NoError(t, err)
		assert.Equal(t, tc.want, price)
	}
}

func TestAliasMatrixPricesLikeTarget(t *testing.T) {
	engine, strategy := setup(t)
	out, rowErr := engine.CalculateAndSum(docWith(item(1200, 1200, "B5"), item(1200, 1200, "SN")), strategy)
	require.Nil(t, rowErr)
	items := out.Product().Items
	assert.Equal(t, *items[1].LinePrice, *items[0].LinePrice)
}

func TestConservation(t *testing.T) {
	engine, strategy := setup(t)
	doc := docWith(item(1000, 1000, "B1"), item(1500, 2000, "B3"), item(2400, 2400, "SN"))
	doc.Product().Summary.Accessories.Remote.Count = 2
	doc.Product().Summary.Accessories.Charger.Count = 1
	doc.Product().Items[0].Winder = quote.WinderHeavyDuty
	doc.Product().Items[1].Dual = quote.DualMarker
	doc.Product().Items[2].Dual = quote.DualMarker

	priced, rowErr := engine.CalculateAndSum(doc, strategy)
	require.Nil(t, rowErr)
	withAcc, err := engine.RecalculateAccessories(priced, strategy)
	require.NoError(t, err)
	final := engine.RefreshTotal(withAcc)

	p := final.Product()
	var want float64
	for _, it := range p.Items {
		if it.LinePrice != nil {
			want += *it.LinePrice
		}
	}
	want += p.Summary.Accessories.PriceTotal()
	require.NotNil(t, p.Summary.TotalSum)
	assert.Equal(t, want, *p.Summary.TotalSum)
	assert.Equal(t, 80.0+2*100.0+50.0+30.0, p.Summary.Accessories.PriceTotal())
}

func TestDualPairing(t *testing.T) {
	engine, strategy := setup(t)

	t.Run("adjacent pair", func(t *testing.T) {
		doc := docWith(item(1000, 1000, "B1"), item(1000, 1000, "B1"), item(1000, 1000, "B1"))
		doc.Product().Items[0].Dual = quote.DualMarker
		doc.Product().Items[1].Dual = quote.DualMarker

		out, err := engine.RecalculateAccessories(doc, strategy)

		require.NoError(t, err)
		acc := out.Product().Summary.Accessories
		require.NotNil(t, acc.DualCostSum)
		assert.Equal(t, 30.0, *acc.DualCostSum)
		assert.Equal(t, 2, acc.Dual.Count)
	})

	t.Run("non adjacent", func(t *testing.T) {
		doc := docWith(item(1000, 1000, "B1"), item(1000, 1000, "B1"), item(1000, 1000, "B1"))
		doc.Product().Summary.Accessories.DualCostSum = quote.Float(7)
		doc.Product().Items[0].Dual = quote.DualMarker
		doc.Product().Items[2].Dual = quote.DualMarker

		out, err := engine.RecalculateAccessories(doc, strategy)

		require.ErrorIs(t, err, pricing.ErrDualNotAdjacent)
		assert.Equal(t, "Dual Brackets (D) must be set on adjacent items. Please check your selection.", err.Error())
		assert.Equal(t, 7.0, *out.Product().Summary.Accessories.DualCostSum)
	})

	t.Run("odd count", func(t *testing.T) {
		items := []quote.LineItem{item(1000, 1000, "B1")}
		items[0].Dual = quote.DualMarker
		err := pricing.ValidateDualPairing(items)
		assert.ErrorIs(t, err, pricing.ErrDualOddCount)
	})

	t.Run("two pairs", func(t *testing.T) {
		items := make([]quote.LineItem, 5)
		for _, i := range []int{0, 1, 3, 4} {
			items[i].Dual = quote.DualMarker
		}
		require.NoError(t, pricing.ValidateDualPairing(items))
		assert.Equal(t, 60.0, strategy.DualPrice(items, 30))
	})
}

func TestRecalculateAccessoriesCountsDrives(t *testing.T) {
	engine, strategy := setup(t)
	doc := docWith(item(1000, 1000, "B1"), item(1000, 1000, "B1"), item(1000, 1000, "B1"))
	doc.Product().Items[0].Winder = quote.WinderHeavyDuty
	doc.Product().Items[1].Winder = quote.WinderHeavyDuty
	doc.Product().Items[2].Motor = quote.MotorStandard
	doc.Product().Summary.Accessories.Cord.Count = 3

	out, err := engine.RecalculateAccessories(doc, strategy)
	require.NoError(t, err)

	acc := out.Product().Summary.Accessories
	assert.Equal(t, 2, acc.Winder.Count)
	assert.Equal(t, 160.0, acc.Winder.Price)
	assert.Equal(t, 90.0, *acc.WinderCostSum)
	assert.Equal(t, 1, acc.Motor.Count)
	assert.Equal(t, 160.0, *acc.MotorCostSum)
	assert.Equal(t, 30.0, acc.Cord.Price)
	assert.Equal(t, 15.0, *acc.CordCostSum)
}

func TestAccessoryPrice(t *testing.T) {
	engine, strategy := setup(t)

	assert.Equal(t, 300.0, engine.AccessoryPrice(strategy, quote.AccessoryRemote, pricing.AccessoryQuery{Count: 3}))
	assert.Equal(t, 180.0, engine.AccessoryPrice(strategy, quote.AccessoryRemote, pricing.AccessoryQuery{Count: 3, CostKey: "remoteStandard"}))
	assert.Equal(t, 0.0, engine.AccessoryPrice(strategy, "blind-cleaner", pricing.AccessoryQuery{Count: 3}))
}

func TestComponentPrice(t *testing.T) {
	engine, _ := setup(t)

	assert.Equal(t, 160.0, engine.ComponentPrice(uistate.F1Remote1Ch, 2))
	assert.Equal(t, 50.0, engine.ComponentPrice(uistate.F1Slim, 2))
	assert.Equal(t, 0.0, engine.ComponentPrice(uistate.F1Motor, -1))
	assert.Equal(t, 0.0, engine.ComponentPrice("unknown", 4))
}

func TestF1LinesDefaultsRemotesToSixteenChannel(t *testing.T) {
	engine, _ := setup(t)
	doc := docWith(item(1000, 1000, "B1"))
	doc.Product().Summary.Accessories.Remote.Count = 3

	lines := engine.F1Lines(doc, uistate.F1{})
	byComponent := map[uistate.F1Component]uistate.F1Line{}
	for _, l := range lines {
		byComponent[l.Component] = l
	}
	assert.Len(t, lines, len(uistate.F1Components()))
	assert.Equal(t, 3, byComponent[uistate.F1Remote16Ch].Quantity)
	assert.Equal(t, 360.0, byComponent[uistate.F1Remote16Ch].Price)

	sixteen := 1
	lines = engine.F1Lines(doc, uistate.F1{Remote1Ch: 2, Remote16Ch: &sixteen})
	assert.Equal(t, 2, lines[2].Quantity)
	assert.Equal(t, 1, lines[3].Quantity)
}

func TestFinancialSummary(t *testing.T) {
	engine, _ := setup(t)
	f := func(v float64) *float64 { return &v }

	t.Run("base price arithmetic", func(t *testing.T) {
		doc := docWith()
		doc.Product().Summary.TotalSum = f(1000)

		got := engine.FinancialSummary(doc, uistate.F2{MulTimes: f(2), Discount: f(10)})

		assert.Equal(t, 1000.0, got.TotalSumForRbTime)
		assert.Equal(t, 2000.0, got.FirstRbPrice)
		assert.Equal(t, 1800.00, got.DisRbPrice)
		assert.Equal(t, 1800.00, got.SumPrice)
	})

	t.Run("fees and exclusions", func(t *testing.T) {
		doc := docWith()
		acc := &doc.Product().Summary.Accessories
		acc.WinderCostSum = f(45)
		acc.DualCostSum = f(30)
		acc.MotorCostSum = f(160)
		acc.CordCostSum = f(5)

		got := engine.FinancialSummary(doc, uistate.F2{
			WifiQty:            f(1),
			DeliveryQty:        f(1),
			InstallQty:         f(3),
			RemovalQty:         f(2),
			InstallFeeExcluded: true,
		})

		assert.Equal(t, 200.0, got.WifiSum)
		assert.Equal(t, 60.0, got.InstallFee)
		assert.Equal(t, 75.0, got.AcceSum)
		assert.Equal(t, 365.0, got.EAcceSum)
		assert.Equal(t, 140.0, got.SurchargeFee)
		assert.Equal(t, 0.0, got.DisRbPrice)
		assert.Equal(t, 580.0, got.SumPrice)
	})

	t.Run("rounds discounted price to cents", func(t *testing.T) {
		doc := docWith()
		doc.Product().Summary.TotalSum = f(333.33)

		got := engine.FinancialSummary(doc, uistate.F2{MulTimes: f(1), Discount: f(12.5)})

		assert.Equal(t, 291.66, got.DisRbPrice)
	})
}

func TestValidationRules(t *testing.T) {
	_, strategy := setup(t)
	rules := strategy.ValidationRules()

	r, ok := rules.For(quote.FieldWidth)
	require.True(t, ok)
	assert.NoError(t, r.Check(1200))
	assert.EqualError(t, r.Check(100), "Width must be between 250 and 3300.")

	_, ok = rules.For(quote.FieldLocation)
	assert.False(t, ok)
}
