package pricing

import (
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

type method int

const (
	perUnit method = iota
	perPair
)

// accessoryPriceKeys maps each accessory to its catalog sale price key.
var accessoryPriceKeys = map[quote.AccessoryKind]string{
	quote.AccessoryDual:    "comboBracket",
	quote.AccessoryWinder:  "winderHD",
	quote.AccessoryMotor:   "motorStandard",
	quote.AccessoryRemote:  "remoteStandard",
	quote.AccessoryCharger: "chargerStandard",
	quote.AccessoryCord:    "cord3m",
}

var accessoryMethods = map[quote.AccessoryKind]method{
	quote.AccessoryDual:    perPair,
	quote.AccessoryWinder:  perUnit,
	quote.AccessoryMotor:   perUnit,
	quote.AccessoryRemote:  perUnit,
	quote.AccessoryCharger: perUnit,
	quote.AccessoryCord:    perUnit,
}

// f1PriceKeys maps F1 panel components to catalog price keys.
var f1PriceKeys = map[uistate.F1Component]string{
	uistate.F1Winder:     "winderHD",
	uistate.F1Motor:      "motorStandard",
	uistate.F1Remote1Ch:  "remoteSingleChannel",
	uistate.F1Remote16Ch: "remoteMultiChannel16",
	uistate.F1Charger:    "charger",
	uistate.F1Cord:       "cord3m",
	uistate.F1DualCombo:  "comboBracket",
	uistate.F1Slim:       "slimComboBracket",
}

// AccessoryQuery is the input of AccessoryPrice. Per-unit accessories read
// Count, dual brackets read Items.
type AccessoryQuery struct {
	Count int
	Items []quote.LineItem
	// CostKey switches the lookup to the cost table under this key.
	CostKey string
}

// PriceKey returns the catalog key of kind.
func PriceKey(kind quote.AccessoryKind) string {
	return accessoryPriceKeys[kind]
}

// AccessoryPrice prices kind for q. Unknown kinds and missing catalog entries
// price at zero.
func (e *Engine) AccessoryPrice(s Strategy, kind quote.AccessoryKind, q AccessoryQuery) float64 {
	key, ok := accessoryPriceKeys[kind]
	if !ok {
		return 0
	}
	var unit float64
	if q.CostKey != "" {
		unit, ok = e.catalog.AccessoryCost(q.CostKey)
		if !ok {
			unit, ok = e.catalog.AccessoryPrice(q.CostKey)
		}
	} else {
		unit, ok = e.catalog.AccessoryPrice(key)
	}
	if !ok {
		return 0
	}
	switch accessoryMethods[kind] {
	case perPair:
		return s.DualPrice(q.Items, unit)
	default:
		return s.PerUnitPrice(q.Count, unit)
	}
}

// ValidateDualPairing checks that dual-marked rows come in adjacent pairs.
func ValidateDualPairing(items []quote.LineItem) error {
	var marked []int
	for i, item := range items {
		if item.Dual == quote.DualMarker {
			marked = append(marked, i)
		}
	}
	if len(marked)%2 != 0 {
		return &Message{err: ErrDualOddCount, text: "The total count of Dual Brackets (D) must be an even number. Please correct the selection."}
	}
	for i := 0; i < len(marked); i += 2 {
		if marked[i+1] != marked[i]+1 {
			return &Message{err: ErrDualNotAdjacent, text: "Dual Brackets (D) must be set on adjacent items. Please check your selection."}
		}
	}
	return nil
}

// RecalculateAccessories recounts winders and motors from the rows, prices
// every accessory and records the cost sums. When the dual pairing is invalid
// the dual entry is left untouched and the validation error is returned.
func (e *Engine) RecalculateAccessories(doc quote.Document, s Strategy) (quote.Document, error) {
	out := doc.Clone()
	p := out.Product()
	if p == nil {
		return out, nil
	}
	acc := &p.Summary.Accessories
	acc.Winder.Count, acc.Motor.Count = 0, 0
	for _, item := range p.Items {
		if item.Winder == quote.WinderHeavyDuty {
			acc.Winder.Count++
		}
		if item.Motor == quote.MotorStandard {
			acc.Motor.Count++
		}
	}
	for _, kind := range []quote.AccessoryKind{
		quote.AccessoryWinder,
		quote.AccessoryMotor,
		quote.AccessoryRemote,
		quote.AccessoryCharger,
		quote.AccessoryCord,
	} {
		slot := acc.Get(kind)
		slot.Price = e.AccessoryPrice(s, kind, AccessoryQuery{Count: slot.Count})
		cost := e.AccessoryPrice(s, kind, AccessoryQuery{Count: slot.Count, CostKey: PriceKey(kind)})
		acc.SetCostSum(kind, quote.Float(cost))
	}

	if err := ValidateDualPairing(p.Items); err != nil {
		return out, err
	}
	acc.Dual.Count = countDual(p.Items)
	acc.Dual.Price = e.AccessoryPrice(s, quote.AccessoryDual, AccessoryQuery{Items: p.Items})
	acc.SetCostSum(quote.AccessoryDual, quote.Float(acc.Dual.Price))
	return out, nil
}

// ComponentPrice prices an F1 panel component. Negative quantities and
// unknown components price at zero.
func (e *Engine) ComponentPrice(component uistate.F1Component, qty int) float64 {
	if qty < 0 {
		return 0
	}
	key, ok := f1PriceKeys[component]
	if !ok {
		return 0
	}
	unit, ok := e.catalog.AccessoryPrice(key)
	if !ok {
		return 0
	}
	return unit * float64(qty)
}

// F1Lines prices the F1 panel from the document's accessory counts.
func (e *Engine) F1Lines(doc quote.Document, f1 uistate.F1) []uistate.F1Line {
	p := doc.Product()
	if p == nil {
		return nil
	}
	acc := p.Summary.Accessories
	sixteen := acc.Remote.Count - f1.Remote1Ch
	if f1.Remote16Ch != nil {
		sixteen = *f1.Remote16Ch
	}
	if sixteen < 0 {
		sixteen = 0
	}
	qty := map[uistate.F1Component]int{
		uistate.F1Winder:     acc.Winder.Count,
		uistate.F1Motor:      acc.Motor.Count,
		uistate.F1Remote1Ch:  f1.Remote1Ch,
		uistate.F1Remote16Ch: sixteen,
		uistate.F1Charger:    acc.Charger.Count,
		uistate.F1Cord:       acc.Cord.Count,
		uistate.F1DualCombo:  countDual(p.Items) / 2,
	}
	lines := make([]uistate.F1Line, 0, len(uistate.F1Components()))
	for _, c := range uistate.F1Components() {
		lines = append(lines, uistate.F1Line{
			Component: c,
			Quantity:  qty[c],
			Price:     e.ComponentPrice(c, qty[c]),
		})
	}
	return lines
}

func countDual(items []quote.LineItem) int {
	n := 0
	for _, item := range items {
		if item.Dual == quote.DualMarker {
			n++
		}
	}
	return n
}
