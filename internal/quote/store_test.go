package quote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteterm/internal/quote"
)

var fabricCycle = []string{"B1", "B2", "B3", "B4", "B5", "SN"}

func newStore() *quote.Store {
	return quote.NewStore(quote.RollerBlind, quote.Rules{
		FabricTypes:   fabricCycle,
		HeavyDutyArea: quote.DefaultHeavyDutyArea,
	})
}

// fill sets width, height and type on row index of s.
func fill(t *testing.T, s *quote.Store, index, width, height int, fabricType string) {
	t.Helper()
	require.True(t, s.UpdateItemValue(index, quote.FieldWidth, width))
	require.True(t, s.UpdateItemValue(index, quote.FieldHeight, height))
	if fabricType != "" {
		require.True(t, s.SetItemType(index, fabricType))
	}
}

func assertTrailingEmpty(t *testing.T, s *quote.Store) {
	t.Helper()
	items := s.Items()
	require.NotEmpty(t, items)
	assert.True(t, items[len(items)-1].IsEmpty(), "last row must be empty")
	if len(items) > 1 {
		assert.False(t, items[len(items)-2].IsEmpty(), "only one trailing empty row")
	}
}

func TestNewStoreStartsWithOneEmptyRow(t *testing.T) {
	s := newStore()
	require.Len(t, s.Items(), 1)
	assert.True(t, s.Items()[0].IsEmpty())
	assert.Contains(t, s.Items()[0].ItemID, "item-")
	assert.False(t, s.HasData())
	assert.Equal(t, quote.RollerBlind, s.CurrentProduct())
}

func TestSettingWidthOnEmptyRowAppendsTrailingRow(t *testing.T) {
	s := newStore()
	first := s.Items()[0].ItemID

	require.True(t, s.UpdateItemValue(0, quote.FieldWidth, 1200))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first, items[0].ItemID)
	assert.Equal(t, 1200, *items[0].Width)
	assert.True(t, items[1].IsEmpty())
	assert.True(t, s.HasData())
}

func TestDeletingOnlyDataRowLeavesOneEmptyRow(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	require.Len(t, s.Items(), 2)

	require.True(t, s.DeleteRow(0))

	require.Len(t, s.Items(), 1)
	assert.True(t, s.Items()[0].IsEmpty())
}

func TestDeleteRow(t *testing.T) {
	t.Run("only row is cleared", func(t *testing.T) {
		s := newStore()
		id := s.Items()[0].ItemID
		require.True(t, s.UpdateItemProperty(0, quote.FieldLocation, "Kitchen"))

		require.True(t, s.DeleteRow(0))

		require.Len(t, s.Items(), 1)
		assert.Equal(t, id, s.Items()[0].ItemID)
		assert.Empty(t, s.Items()[0].Location)
	})

	t.Run("middle row is spliced", func(t *testing.T) {
		s := newStore()
		fill(t, s, 0, 1000, 1000, "B1")
		fill(t, s, 1, 1100, 1000, "B2")
		fill(t, s, 2, 1200, 1000, "B3")
		keep := s.Items()[2].ItemID

		require.True(t, s.DeleteRow(1))

		require.Len(t, s.Items(), 3)
		assert.Equal(t, keep, s.Items()[1].ItemID)
		assertTrailingEmpty(t, s)
	})

	t.Run("trailing empty row is replaced", func(t *testing.T) {
		s := newStore()
		fill(t, s, 0, 1000, 1000, "B1")

		require.True(t, s.DeleteRow(1))

		require.Len(t, s.Items(), 2)
		assertTrailingEmpty(t, s)
	})

	t.Run("out of range", func(t *testing.T) {
		s := newStore()
		assert.False(t, s.DeleteRow(5))
		assert.False(t, s.DeleteRow(-1))
	})
}

func TestClearRowKeepsItemID(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1500, 1500, "B2")
	id := s.Items()[0].ItemID

	require.True(t, s.ClearRow(0))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, id, items[0].ItemID)
	assert.True(t, items[0].IsEmpty())
	assert.Nil(t, items[0].LinePrice)
	assertTrailingEmpty(t, s)
}

func TestClearRowBeforeTrailingRowCollapses(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1500, 1500, "B2")
	id := s.Items()[1].ItemID

	require.True(t, s.ClearRow(1))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, id, items[1].ItemID)
	assertTrailingEmpty(t, s)
}

func TestConsolidateEmptyRowsIsIdempotent(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1500, 1500, "B2")
	doc := s.Snapshot()
	doc.Product().Items = append(doc.Product().Items, quote.NewItem(), quote.NewItem())
	require.True(t, s.Replace(doc))

	s.ConsolidateEmptyRows()
	onceDoc := s.Snapshot()
	once := onceDoc.Product().Items
	s.ConsolidateEmptyRows()
	twiceDoc := s.Snapshot()
	twice := twiceDoc.Product().Items

	assert.Equal(t, once, twice)
	assert.Len(t, twice, 3)
}

func TestInsertRow(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1500, 1500, "B2")

	idx := s.InsertRow(0)

	assert.Equal(t, 1, idx)
	require.Len(t, s.Items(), 4)
	assert.True(t, s.Items()[1].IsEmpty())
	assert.Equal(t, 1500, *s.Items()[2].Width)

	assert.Equal(t, -1, s.InsertRow(3), "after the trailing empty row")
	assert.Equal(t, -1, s.InsertRow(9))
}

func TestUpdateItemValueInvalidatesPrice(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	doc := s.Snapshot()
	doc.Product().Items[0].LinePrice = quote.Float(120)
	require.True(t, s.Replace(doc))

	require.True(t, s.UpdateItemValue(0, quote.FieldHeight, 1100))

	assert.Nil(t, s.Items()[0].LinePrice)
	assert.False(t, s.UpdateItemValue(0, quote.FieldHeight, 1100), "unchanged value")
}

func TestHeavyDutyWinder(t *testing.T) {
	t.Run("large area sets HD", func(t *testing.T) {
		s := newStore()
		fill(t, s, 0, 2500, 2000, "")
		assert.Equal(t, quote.WinderHeavyDuty, s.Items()[0].Winder)
	})

	t.Run("motor blocks HD", func(t *testing.T) {
		s := newStore()
		require.True(t, s.UpdateItemValue(0, quote.FieldWidth, 2500))
		require.True(t, s.UpdateWinderMotorProperty(0, quote.FieldMotor, quote.MotorStandard))
		require.True(t, s.UpdateItemValue(0, quote.FieldHeight, 2000))
		assert.Empty(t, s.Items()[0].Winder)
	})

	t.Run("small area leaves winder alone", func(t *testing.T) {
		s := newStore()
		fill(t, s, 0, 1000, 1000, "")
		assert.Empty(t, s.Items()[0].Winder)
	})
}

func TestWinderAndMotorAreExclusive(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")

	require.True(t, s.UpdateWinderMotorProperty(0, quote.FieldWinder, quote.WinderHeavyDuty))
	require.True(t, s.UpdateWinderMotorProperty(0, quote.FieldMotor, quote.MotorStandard))
	assert.Empty(t, s.Items()[0].Winder)
	assert.Equal(t, quote.MotorStandard, s.Items()[0].Motor)

	require.True(t, s.UpdateItemProperty(0, quote.FieldWinder, quote.WinderHeavyDuty))
	assert.Empty(t, s.Items()[0].Motor)
	assert.Equal(t, quote.WinderHeavyDuty, s.Items()[0].Winder)
}

func TestCycleK3Property(t *testing.T) {
	cases := []struct {
		field quote.Field
		want  []string
	}{
		{quote.FieldOver, []string{"O", "", "O"}},
		{quote.FieldOI, []string{"IN", "OUT", "IN", "OUT"}},
		{quote.FieldLR, []string{"L", "R", "L", "R"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.field), func(t *testing.T) {
			s := newStore()
			fill(t, s, 0, 1000, 1000, "B1")
			for _, want := range tc.want {
				require.True(t, s.CycleK3Property(0, tc.field))
				assert.Equal(t, want, s.Items()[0].Value(tc.field))
			}
		})
	}

	s := newStore()
	assert.False(t, s.CycleK3Property(0, quote.FieldColor))
}

func TestCycleItemType(t *testing.T) {
	s := newStore()
	assert.False(t, s.CycleItemType(0), "row without dimensions")

	require.True(t, s.UpdateItemValue(0, quote.FieldWidth, 1000))
	var seen []string
	for range fabricCycle {
		require.True(t, s.CycleItemType(0))
		seen = append(seen, s.Items()[0].FabricType)
	}
	assert.Equal(t, fabricCycle, seen)
	require.True(t, s.CycleItemType(0))
	assert.Equal(t, "B1", s.Items()[0].FabricType)
}

func TestBatchUpdates(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1200, 0, "")
	fill(t, s, 2, 1500, 1500, "B3")

	t.Run("property on rows with data", func(t *testing.T) {
		require.True(t, s.BatchUpdateProperty(quote.FieldLocation, "Lounge"))
		for _, item := range s.Items()[:3] {
			assert.Equal(t, "Lounge", item.Location)
		}
		assert.Empty(t, s.Items()[3].Location)
		assert.False(t, s.BatchUpdateProperty(quote.FieldLocation, "Lounge"))
	})

	t.Run("property by type", func(t *testing.T) {
		require.True(t, s.BatchUpdatePropertyByType("B3", quote.FieldColor, "White"))
		assert.Equal(t, "White", s.Items()[2].Color)
		assert.Empty(t, s.Items()[0].Color)
	})

	t.Run("fabric type needs both dimensions", func(t *testing.T) {
		require.True(t, s.BatchUpdateFabricType("B2"))
		assert.Equal(t, "B2", s.Items()[0].FabricType)
		assert.Empty(t, s.Items()[1].FabricType)
		assert.Equal(t, "B2", s.Items()[2].FabricType)
	})

	t.Run("fabric type for selection", func(t *testing.T) {
		require.True(t, s.BatchUpdateFabricTypeForSelection([]int{0, 1}, "SN"))
		assert.Equal(t, "SN", s.Items()[0].FabricType)
		assert.Empty(t, s.Items()[1].FabricType)
		assert.Equal(t, "B2", s.Items()[2].FabricType)
		assert.False(t, s.BatchUpdateFabricTypeForSelection([]int{1}, "SN"))
		assertTrailingEmpty(t, s)
	})

	t.Run("light filter", func(t *testing.T) {
		require.True(t, s.BatchUpdateLFProperties([]int{0, 2}, "Sable", "Grey"))
		assert.Equal(t, "L-Filter Sable", s.Items()[0].Fabric)
		assert.Equal(t, "Grey", s.Items()[2].Color)

		require.True(t, s.RemoveLFProperties([]int{0}))
		assert.Empty(t, s.Items()[0].Fabric)
		assert.Empty(t, s.Items()[0].Color)
		assert.Equal(t, "L-Filter Sable", s.Items()[2].Fabric)
		assert.False(t, s.RemoveLFProperties([]int{0}))
	})
}

func TestSelectionFabricTypeSkipsTrailingRow(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	require.Len(t, s.Items(), 2)

	assert.False(t, s.BatchUpdateFabricTypeForSelection([]int{1}, "SN"))
	require.Len(t, s.Items(), 2)
	assert.True(t, s.Items()[1].IsEmpty())

	require.True(t, s.BatchUpdateFabricTypeForSelection([]int{0, 1}, "SN"))
	require.Len(t, s.Items(), 2)
	assert.Equal(t, "SN", s.Items()[0].FabricType)
	assertTrailingEmpty(t, s)
}

func TestDeleteMultipleRowsUsesItemIdentity(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1100, 1000, "B1")
	fill(t, s, 2, 1200, 1000, "B1")
	fill(t, s, 3, 1300, 1000, "B1")
	keep := []string{s.Items()[1].ItemID, s.Items()[3].ItemID}

	require.True(t, s.DeleteMultipleRows([]int{0, 2, 2}))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, keep, []string{items[0].ItemID, items[1].ItemID})
	assertTrailingEmpty(t, s)
	assert.False(t, s.DeleteMultipleRows([]int{42}))
}

func TestDeleteMultipleRowsEverything(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	fill(t, s, 1, 1100, 1000, "B1")

	require.True(t, s.DeleteMultipleRows([]int{0, 1, 2}))

	require.Len(t, s.Items(), 1)
	assert.True(t, s.Items()[0].IsEmpty())
}

func TestResetProducesFreshBlueprint(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	s.SetCostDiscount(15)
	s.UpdateAccessories(func(a *quote.Accessories) { a.Winder.Count = 3 })
	old := s.Items()[0].ItemID

	s.Reset()

	require.Len(t, s.Items(), 1)
	assert.True(t, s.Items()[0].IsEmpty())
	assert.NotEqual(t, old, s.Items()[0].ItemID)
	assert.Zero(t, s.Document().CostDiscountPercentage)
	assert.Zero(t, s.Summary().Accessories.Winder.Count)
	assert.Equal(t, "Configuring", s.Document().Status)
}

func TestReplaceRejectsMissingProduct(t *testing.T) {
	s := newStore()
	doc := quote.Document{CurrentProduct: quote.RollerBlind}
	assert.False(t, s.Replace(doc))
	assert.Len(t, s.Items(), 1)
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newStore()
	fill(t, s, 0, 1000, 1000, "B1")
	snap := s.Snapshot()

	*snap.Product().Items[0].Width = 5
	snap.Product().Items[0].Location = "changed"

	assert.Equal(t, 1000, *s.Items()[0].Width)
	assert.Empty(t, s.Items()[0].Location)
}
