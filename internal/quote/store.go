package quote

import "sort"

// DefaultHeavyDutyArea is the width × height (mm²) above which a heavy-duty
// winder is selected automatically.
const DefaultHeavyDutyArea = 4_000_000

// Rules carries the configured behaviour the store needs.
type Rules struct {
	// FabricTypes is the ordered cycle used by CycleItemType.
	FabricTypes []string
	// HeavyDutyArea disables the automatic winder when zero.
	HeavyDutyArea int
	// NewItem builds an empty row for the active product. Defaults to NewItem.
	NewItem func() LineItem
}

// Store owns the quote document. Every exported method leaves the item list
// ending in exactly one empty row.
type Store struct {
	product ProductKey
	rules   Rules
	doc     Document
}

// NewStore creates a store holding a fresh document for product.
func NewStore(product ProductKey, rules Rules) *Store {
	if rules.NewItem == nil {
		rules.NewItem = NewItem
	}
	s := &Store{product: product, rules: rules}
	s.doc = s.fresh()
	return s
}

func (s *Store) fresh() Document {
	doc := Blueprint(s.product)
	doc.Product().Items = append(doc.Product().Items, s.rules.NewItem())
	return doc
}

// Document exposes the owned document for reading.
func (s *Store) Document() *Document { return &s.doc }

// Snapshot returns a deep copy safe to hand to other goroutines.
func (s *Store) Snapshot() Document { return s.doc.Clone() }

// CurrentProduct reports the active product key.
func (s *Store) CurrentProduct() ProductKey { return s.doc.CurrentProduct }

// Items returns the active product's rows. Callers must not modify them.
func (s *Store) Items() []LineItem {
	if p := s.doc.Product(); p != nil {
		return p.Items
	}
	return nil
}

// Item returns the row at index.
func (s *Store) Item(index int) (LineItem, bool) {
	items := s.Items()
	if index < 0 || index >= len(items) {
		return LineItem{}, false
	}
	return items[index], true
}

// Summary returns the active product's summary.
func (s *Store) Summary() Summary {
	if p := s.doc.Product(); p != nil {
		return p.Summary
	}
	return Summary{}
}

// IndexOf returns the index of itemID, or -1.
func (s *Store) IndexOf(itemID string) int {
	for i, item := range s.Items() {
		if item.ItemID == itemID {
			return i
		}
	}
	return -1
}

// HasData reports whether the quote holds anything worth keeping.
func (s *Store) HasData() bool {
	items := s.Items()
	switch {
	case len(items) > 1:
		return true
	case len(items) == 1:
		return items[0].HasData()
	default:
		return false
	}
}

// Replace swaps in doc wholesale. It fails when doc does not carry its current
// product.
func (s *Store) Replace(doc Document) bool {
	if doc.Product() == nil {
		return false
	}
	s.doc = doc
	s.ConsolidateEmptyRows()
	return true
}

// Reset restores the initial document.
func (s *Store) Reset() {
	s.doc = s.fresh()
}

// InsertRow inserts an empty row after afterIndex and returns its index, or -1.
// Inserting after the trailing empty row is refused since it would only be
// collapsed again.
func (s *Store) InsertRow(afterIndex int) int {
	p := s.doc.Product()
	if p == nil || afterIndex < -1 || afterIndex >= len(p.Items) {
		return -1
	}
	if afterIndex == len(p.Items)-1 && p.Items[afterIndex].IsEmpty() {
		return -1
	}
	at := afterIndex + 1
	p.Items = append(p.Items, LineItem{})
	copy(p.Items[at+1:], p.Items[at:])
	p.Items[at] = s.rules.NewItem()
	return at
}

// DeleteRow removes the row at index. The only row, or a non-empty last row,
// is cleared instead.
func (s *Store) DeleteRow(index int) bool {
	p := s.doc.Product()
	if p == nil || index < 0 || index >= len(p.Items) {
		return false
	}
	last := index == len(p.Items)-1
	if len(p.Items) == 1 || (last && !p.Items[index].IsEmpty()) {
		return s.ClearRow(index)
	}
	p.Items = append(p.Items[:index], p.Items[index+1:]...)
	s.ConsolidateEmptyRows()
	return true
}

// ClearRow resets the row's data while keeping its id.
func (s *Store) ClearRow(index int) bool {
	p := s.doc.Product()
	if p == nil || index < 0 || index >= len(p.Items) {
		return false
	}
	blank := s.rules.NewItem()
	blank.ItemID = p.Items[index].ItemID
	p.Items[index] = blank
	s.ConsolidateEmptyRows()
	return true
}

// UpdateItemValue sets a price-affecting field and invalidates the row price.
func (s *Store) UpdateItemValue(index int, field Field, value any) bool {
	item := s.itemAt(index)
	if item == nil || !item.set(field, value) {
		return false
	}
	item.LinePrice = nil
	if field == FieldWidth || field == FieldHeight {
		s.applyHeavyDuty(item)
	}
	s.ConsolidateEmptyRows()
	return true
}

func (s *Store) applyHeavyDuty(item *LineItem) {
	if s.rules.HeavyDutyArea <= 0 || item.Motor != "" {
		return
	}
	if item.Area() > s.rules.HeavyDutyArea {
		item.Winder = WinderHeavyDuty
	}
}

// UpdateItemProperty sets a descriptive field. Price-affecting fields are
// routed through UpdateItemValue.
func (s *Store) UpdateItemProperty(index int, field Field, value any) bool {
	if field.AffectsPrice() {
		return s.UpdateItemValue(index, field, value)
	}
	if field == FieldWinder || field == FieldMotor {
		v, _ := value.(string)
		return s.UpdateWinderMotorProperty(index, field, v)
	}
	item := s.itemAt(index)
	if item == nil {
		return false
	}
	return item.set(field, value)
}

// UpdateWinderMotorProperty sets winder or motor and clears the other.
func (s *Store) UpdateWinderMotorProperty(index int, field Field, value string) bool {
	item := s.itemAt(index)
	if item == nil {
		return false
	}
	changed := false
	switch field {
	case FieldWinder:
		changed = item.set(FieldWinder, value)
		if value != "" {
			changed = item.set(FieldMotor, "") || changed
		}
	case FieldMotor:
		changed = item.set(FieldMotor, value)
		if value != "" {
			changed = item.set(FieldWinder, "") || changed
		}
	}
	return changed
}

// k3Cycles holds the next state of each positional flag.
var k3Cycles = map[Field]map[string]string{
	FieldOver: {"": "O", "O": ""},
	FieldOI:   {"": "IN", "IN": "OUT", "OUT": "IN"},
	FieldLR:   {"": "L", "L": "R", "R": "L"},
}

// CycleK3Property advances over, oi or lr to its next state.
func (s *Store) CycleK3Property(index int, field Field) bool {
	cycle, ok := k3Cycles[field]
	item := s.itemAt(index)
	if !ok || item == nil {
		return false
	}
	current, _ := item.Value(field).(string)
	next, ok := cycle[current]
	if !ok {
		next = cycle[""]
	}
	return item.set(field, next)
}

// CycleItemType advances the fabric type along the configured cycle. Rows
// without width or height are left alone.
func (s *Store) CycleItemType(index int) bool {
	item := s.itemAt(index)
	if item == nil || !item.HasData() || len(s.rules.FabricTypes) == 0 {
		return false
	}
	types := s.rules.FabricTypes
	current := item.FabricType
	if current == "" {
		current = types[len(types)-1]
	}
	next := types[0]
	for i, t := range types {
		if t == current {
			next = types[(i+1)%len(types)]
			break
		}
	}
	return s.setType(item, next)
}

// SetItemType assigns a fabric type directly.
func (s *Store) SetItemType(index int, fabricType string) bool {
	item := s.itemAt(index)
	if item == nil {
		return false
	}
	return s.setType(item, fabricType)
}

func (s *Store) setType(item *LineItem, fabricType string) bool {
	if !item.set(FieldFabricType, fabricType) {
		return false
	}
	item.LinePrice = nil
	s.ConsolidateEmptyRows()
	return true
}

// BatchUpdateProperty sets field on every row with width or height.
func (s *Store) BatchUpdateProperty(field Field, value any) bool {
	return s.batch(func(item *LineItem) bool {
		return item.HasData()
	}, field, value)
}

// BatchUpdatePropertyByType sets field on every row of fabricType.
func (s *Store) BatchUpdatePropertyByType(fabricType string, field Field, value any) bool {
	return s.batch(func(item *LineItem) bool {
		return item.FabricType == fabricType
	}, field, value)
}

// BatchUpdateFabricType sets the fabric type on every row with both
// dimensions.
func (s *Store) BatchUpdateFabricType(fabricType string) bool {
	return s.batch(func(item *LineItem) bool {
		return item.HasSize()
	}, FieldFabricType, fabricType)
}

// BatchUpdateFabricTypeForSelection sets the fabric type on the selected rows
// that carry a size. The trailing empty row is never touched.
func (s *Store) BatchUpdateFabricTypeForSelection(indexes []int, fabricType string) bool {
	selected := indexSet(indexes)
	return s.batchIndexed(func(i int, item *LineItem) bool {
		return selected[i] && item.HasSize()
	}, FieldFabricType, fabricType)
}

// BatchUpdateLFProperties marks the given rows as light-filter fabric.
func (s *Store) BatchUpdateLFProperties(indexes []int, fabricName, color string) bool {
	selected := indexSet(indexes)
	changed := false
	for i := range s.Items() {
		if !selected[i] {
			continue
		}
		item := s.itemAt(i)
		changed = item.set(FieldFabric, LightFilterName+fabricName) || changed
		changed = item.set(FieldColor, color) || changed
	}
	return changed
}

// RemoveLFProperties clears fabric and colour on the given rows.
func (s *Store) RemoveLFProperties(indexes []int) bool {
	selected := indexSet(indexes)
	changed := false
	for i := range s.Items() {
		if !selected[i] {
			continue
		}
		item := s.itemAt(i)
		changed = item.set(FieldFabric, "") || changed
		changed = item.set(FieldColor, "") || changed
	}
	return changed
}

func (s *Store) batch(match func(*LineItem) bool, field Field, value any) bool {
	return s.batchIndexed(func(_ int, item *LineItem) bool { return match(item) }, field, value)
}

func (s *Store) batchIndexed(match func(int, *LineItem) bool, field Field, value any) bool {
	p := s.doc.Product()
	if p == nil {
		return false
	}
	changed := false
	for i := range p.Items {
		item := &p.Items[i]
		if !match(i, item) || !item.set(field, value) {
			continue
		}
		if field.AffectsPrice() {
			item.LinePrice = nil
		}
		changed = true
	}
	if changed && field.AffectsPrice() {
		s.ConsolidateEmptyRows()
	}
	return changed
}

// DeleteMultipleRows deletes the given rows. Indexes are resolved to item ids
// first so each splice targets the row that was selected.
func (s *Store) DeleteMultipleRows(indexes []int) bool {
	items := s.Items()
	var ids []string
	seen := make(map[int]bool, len(indexes))
	sorted := append([]int(nil), indexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if idx < 0 || idx >= len(items) || seen[idx] {
			continue
		}
		seen[idx] = true
		ids = append(ids, items[idx].ItemID)
	}
	if len(ids) == 0 {
		return false
	}
	p := s.doc.Product()
	for _, id := range ids {
		idx := s.IndexOf(id)
		if idx < 0 {
			continue
		}
		p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
	}
	s.ConsolidateEmptyRows()
	return true
}

// ConsolidateEmptyRows collapses trailing empty rows to exactly one.
func (s *Store) ConsolidateEmptyRows() {
	p := s.doc.Product()
	if p == nil {
		return
	}
	for len(p.Items) > 1 && p.Items[len(p.Items)-1].IsEmpty() && p.Items[len(p.Items)-2].IsEmpty() {
		p.Items = p.Items[:len(p.Items)-1]
	}
	if len(p.Items) == 0 || !p.Items[len(p.Items)-1].IsEmpty() {
		p.Items = append(p.Items, s.rules.NewItem())
	}
}

// UpdateAccessories applies fn to the active product's accessories.
func (s *Store) UpdateAccessories(fn func(*Accessories)) {
	if p := s.doc.Product(); p != nil {
		fn(&p.Summary.Accessories)
	}
}

// SetCostDiscount records the cost discount percentage.
func (s *Store) SetCostDiscount(percentage float64) {
	s.doc.CostDiscountPercentage = percentage
}

// SetCustomer replaces the customer metadata.
func (s *Store) SetCustomer(c Customer) {
	s.doc.Customer = c
}

// SetQuoteID stamps the quote identifier.
func (s *Store) SetQuoteID(id string) {
	s.doc.QuoteID = id
}

func (s *Store) itemAt(index int) *LineItem {
	p := s.doc.Product()
	if p == nil || index < 0 || index >= len(p.Items) {
		return nil
	}
	return &p.Items[index]
}

func indexSet(indexes []int) map[int]bool {
	set := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		set[i] = true
	}
	return set
}
