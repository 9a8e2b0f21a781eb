package pricing

import (
	"fmt"

	"quoteterm/internal/config"
	"quoteterm/internal/quote"
)

// Strategy holds the product-specific pricing and validation behaviour.
type Strategy interface {
	Product() quote.ProductKey
	NewItem() quote.LineItem
	// CalculatePrice looks item up in m. A nil m means the fabric type has no
	// configured matrix.
	CalculatePrice(item quote.LineItem, m *config.Matrix) (float64, error)
	ValidationRules() Rules
	PerUnitPrice(count int, unit float64) float64
	DualPrice(items []quote.LineItem, perPair float64) float64
}

// Range bounds one keypad-entered dimension.
type Range struct {
	Name string
	Min  int
	Max  int
}

// Check reports whether v lies within the range. A zero bound is unchecked.
func (r Range) Check(v int) error {
	if (r.Min > 0 && v < r.Min) || (r.Max > 0 && v > r.Max) {
		return fmt.Errorf("%s must be between %d and %d.", r.Name, r.Min, r.Max)
	}
	return nil
}

// Rules are the input bounds of a product.
type Rules struct {
	Width  Range
	Height Range
}

// For returns the range for field, if it has one.
func (r Rules) For(field quote.Field) (Range, bool) {
	switch field {
	case quote.FieldWidth:
		return r.Width, true
	case quote.FieldHeight:
		return r.Height, true
	default:
		return Range{}, false
	}
}

// RollerBlindStrategy prices roller blinds from width × drop matrices.
type RollerBlindStrategy struct {
	catalog *config.Catalog
}

// NewRollerBlind builds the roller blind strategy over catalog.
func NewRollerBlind(catalog *config.Catalog) *RollerBlindStrategy {
	return &RollerBlindStrategy{catalog: catalog}
}

func (s *RollerBlindStrategy) Product() quote.ProductKey { return quote.RollerBlind }

func (s *RollerBlindStrategy) NewItem() quote.LineItem { return quote.NewItem() }

// CalculatePrice picks the first width and drop buckets that fit the item.
func (s *RollerBlindStrategy) CalculatePrice(item quote.LineItem, m *config.Matrix) (float64, error) {
	if !item.Priceable() {
		return 0, newLookupError(ErrIncompleteItem, "Incomplete item data.")
	}
	if m == nil {
		return 0, newLookupError(ErrMatrixNotFound, "Price matrix not found for fabric type: %s", item.FabricType)
	}
	widthIndex := bucket(m.Widths, *item.Width)
	if widthIndex < 0 {
		return 0, newLookupError(ErrWidthExceeded, "Width %d exceeds the maximum width in the price matrix.", *item.Width)
	}
	dropIndex := bucket(m.Drops, *item.Height)
	if dropIndex < 0 {
		return 0, newLookupError(ErrHeightExceeded, "Height %d exceeds the maximum height in the price matrix.", *item.Height)
	}
	if dropIndex >= len(m.Prices) || widthIndex >= len(m.Prices[dropIndex]) {
		return 0, newLookupError(ErrPriceNotFound, "Price not found for the given dimensions.")
	}
	return m.Prices[dropIndex][widthIndex], nil
}

func bucket(buckets []int, v int) int {
	for i, b := range buckets {
		if v <= b {
			return i
		}
	}
	return -1
}

func (s *RollerBlindStrategy) ValidationRules() Rules {
	v := s.catalog.Validation
	return Rules{
		Width:  Range{Name: "Width", Min: v.MinWidth, Max: v.MaxWidth},
		Height: Range{Name: "Height", Min: v.MinHeight, Max: v.MaxHeight},
	}
}

func (s *RollerBlindStrategy) PerUnitPrice(count int, unit float64) float64 {
	return float64(count) * unit
}

// DualPrice charges one bracket per marked pair.
func (s *RollerBlindStrategy) DualPrice(items []quote.LineItem, perPair float64) float64 {
	return float64(countDual(items)/2) * perPair
}

// Factory hands out the strategy of each product.
type Factory struct {
	strategies map[quote.ProductKey]Strategy
}

// NewFactory registers every known product over catalog.
func NewFactory(catalog *config.Catalog) *Factory {
	return &Factory{strategies: map[quote.ProductKey]Strategy{
		quote.RollerBlind: NewRollerBlind(catalog),
	}}
}

// Strategy returns the strategy for product.
func (f *Factory) Strategy(product quote.ProductKey) (Strategy, error) {
	s, ok := f.strategies[product]
	if !ok {
		return nil, fmt.Errorf("no pricing strategy for product %q", product)
	}
	return s, nil
}
