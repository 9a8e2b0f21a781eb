package quote

import "github.com/google/uuid"

// Field names a LineItem column.
type Field string

const (
	FieldWidth      Field = "width"
	FieldHeight     Field = "height"
	FieldFabricType Field = "fabricType"
	FieldLocation   Field = "location"
	FieldFabric     Field = "fabric"
	FieldColor      Field = "color"
	FieldOver       Field = "over"
	FieldOI         Field = "oi"
	FieldLR         Field = "lr"
	FieldDual       Field = "dual"
	FieldChain      Field = "chain"
	FieldWinder     Field = "winder"
	FieldMotor      Field = "motor"
	// FieldLinePrice is read-only; it is only ever computed.
	FieldLinePrice Field = "linePrice"
)

// AffectsPrice reports whether editing f invalidates the line price.
func (f Field) AffectsPrice() bool {
	switch f {
	case FieldWidth, FieldHeight, FieldFabricType:
		return true
	default:
		return false
	}
}

// Marker values stored in item flags.
const (
	WinderHeavyDuty = "HD"
	MotorStandard   = "M"
	DualMarker      = "D"
	LightFilterName = "L-Filter "
)

// LineItem is one row of the quote.
type LineItem struct {
	ItemID     string   `json:"itemId"`
	Width      *int     `json:"width"`
	Height     *int     `json:"height"`
	FabricType string   `json:"fabricType"`
	LinePrice  *float64 `json:"linePrice"`
	Location   string   `json:"location"`
	Fabric     string   `json:"fabric"`
	Color      string   `json:"color"`
	Over       string   `json:"over"`
	OI         string   `json:"oi"`
	LR         string   `json:"lr"`
	Dual       string   `json:"dual"`
	Chain      *int     `json:"chain"`
	Winder     string   `json:"winder"`
	Motor      string   `json:"motor"`
}

// NewItemID generates a stable row identifier.
func NewItemID() string {
	return "item-" + uuid.NewString()
}

// NewItem returns an empty row with a fresh identifier.
func NewItem() LineItem {
	return LineItem{ItemID: NewItemID()}
}

// IsEmpty reports whether the row has no width, height or fabric type.
func (i LineItem) IsEmpty() bool {
	return !set(i.Width) && !set(i.Height) && i.FabricType == ""
}

// HasData reports whether width or height is set.
func (i LineItem) HasData() bool {
	return set(i.Width) || set(i.Height)
}

// HasSize reports whether both width and height are set.
func (i LineItem) HasSize() bool {
	return set(i.Width) && set(i.Height)
}

// Priceable reports whether the row carries everything a matrix lookup needs.
func (i LineItem) Priceable() bool {
	return i.HasSize() && i.FabricType != ""
}

// Area returns width × height, or zero when either is unset.
func (i LineItem) Area() int {
	if !i.HasSize() {
		return 0
	}
	return *i.Width * *i.Height
}

// Clone returns a copy that shares no pointers with i.
func (i LineItem) Clone() LineItem {
	out := i
	out.Width = cloneInt(i.Width)
	out.Height = cloneInt(i.Height)
	out.LinePrice = cloneFloat(i.LinePrice)
	out.Chain = cloneInt(i.Chain)
	return out
}

// Value reads field as a plain value: *int fields yield int or nil.
func (i LineItem) Value(f Field) any {
	switch f {
	case FieldWidth:
		return intValue(i.Width)
	case FieldHeight:
		return intValue(i.Height)
	case FieldChain:
		return intValue(i.Chain)
	case FieldLinePrice:
		if i.LinePrice == nil {
			return nil
		}
		return *i.LinePrice
	}
	if p := i.stringField(f); p != nil {
		return *p
	}
	return nil
}

// set writes value into field and reports whether anything changed.
// Integer fields accept int, *int or nil; string fields accept string.
func (i *LineItem) set(f Field, value any) bool {
	switch f {
	case FieldWidth:
		return setInt(&i.Width, value)
	case FieldHeight:
		return setInt(&i.Height, value)
	case FieldChain:
		return setInt(&i.Chain, value)
	}
	p := i.stringField(f)
	if p == nil {
		return false
	}
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case nil:
	default:
		return false
	}
	if *p == s {
		return false
	}
	*p = s
	return true
}

func (i *LineItem) stringField(f Field) *string {
	switch f {
	case FieldFabricType:
		return &i.FabricType
	case FieldLocation:
		return &i.Location
	case FieldFabric:
		return &i.Fabric
	case FieldColor:
		return &i.Color
	case FieldOver:
		return &i.Over
	case FieldOI:
		return &i.OI
	case FieldLR:
		return &i.LR
	case FieldDual:
		return &i.Dual
	case FieldWinder:
		return &i.Winder
	case FieldMotor:
		return &i.Motor
	default:
		return nil
	}
}

func setInt(dst **int, value any) bool {
	var next *int
	switch v := value.(type) {
	case nil:
	case int:
		next = &v
	case *int:
		next = cloneInt(v)
	default:
		return false
	}
	if intEqual(*dst, next) {
		return false
	}
	*dst = next
	return true
}

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func intValue(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func set(p *int) bool {
	return p != nil && *p != 0
}
