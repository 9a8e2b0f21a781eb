package quote

import "fmt"

// ProductKey selects which ProductData of a document is active.
type ProductKey string

// Known products.
const (
	RollerBlind ProductKey = "rollerBlind"
)

// ParseProductKey validates a raw product key.
func ParseProductKey(raw string) (ProductKey, error) {
	key := ProductKey(raw)
	if !key.Valid() {
		return "", fmt.Errorf("unknown product %q", raw)
	}
	return key, nil
}

// Valid reports whether k is a known product.
func (k ProductKey) Valid() bool {
	switch k {
	case RollerBlind:
		return true
	default:
		return false
	}
}

// AccessoryKind identifies one priced add-on.
type AccessoryKind string

const (
	AccessoryWinder  AccessoryKind = "winder"
	AccessoryMotor   AccessoryKind = "motor"
	AccessoryRemote  AccessoryKind = "remote"
	AccessoryCharger AccessoryKind = "charger"
	AccessoryCord    AccessoryKind = "cord"
	AccessoryDual    AccessoryKind = "dual"
)

// AccessoryKinds lists every accessory kind in display order.
func AccessoryKinds() []AccessoryKind {
	return []AccessoryKind{
		AccessoryWinder,
		AccessoryMotor,
		AccessoryRemote,
		AccessoryCharger,
		AccessoryCord,
		AccessoryDual,
	}
}

// Document is the persisted unit of work.
type Document struct {
	CurrentProduct         ProductKey                  `json:"currentProduct"`
	Products               map[ProductKey]*ProductData `json:"products"`
	QuoteID                string                      `json:"quoteId"`
	IssueDate              string                      `json:"issueDate"`
	DueDate                string                      `json:"dueDate"`
	Status                 string                      `json:"status"`
	CostDiscountPercentage float64                     `json:"costDiscountPercentage"`
	Customer               Customer                    `json:"customer"`
}

// Customer holds administrative contact metadata.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ProductData holds the line items and summary of one product.
type ProductData struct {
	Items   []LineItem `json:"items"`
	Summary Summary    `json:"summary"`
}

// Summary carries the derived totals of a product.
type Summary struct {
	TotalSum    *float64    `json:"totalSum"`
	Accessories Accessories `json:"accessories"`
}

// Accessory is a count/price pair.
type Accessory struct {
	Type  string  `json:"type,omitempty"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

// Accessories tracks every accessory kind plus the cost sums consumed by the
// financial summary.
type Accessories struct {
	Winder  Accessory `json:"winder"`
	Motor   Accessory `json:"motor"`
	Remote  Accessory `json:"remote"`
	Charger Accessory `json:"charger"`
	Cord    Accessory `json:"cord3m"`
	Dual    Accessory `json:"dual"`

	WinderCostSum  *float64 `json:"winderCostSum"`
	MotorCostSum   *float64 `json:"motorCostSum"`
	RemoteCostSum  *float64 `json:"remoteCostSum"`
	ChargerCostSum *float64 `json:"chargerCostSum"`
	CordCostSum    *float64 `json:"cordCostSum"`
	DualCostSum    *float64 `json:"dualCostSum"`
}

// Get returns the accessory slot for kind, or nil for an unknown kind.
func (a *Accessories) Get(kind AccessoryKind) *Accessory {
	switch kind {
	case AccessoryWinder:
		return &a.Winder
	case AccessoryMotor:
		return &a.Motor
	case AccessoryRemote:
		return &a.Remote
	case AccessoryCharger:
		return &a.Charger
	case AccessoryCord:
		return &a.Cord
	case AccessoryDual:
		return &a.Dual
	default:
		return nil
	}
}

// CostSum returns the cost sum for kind.
func (a *Accessories) CostSum(kind AccessoryKind) *float64 {
	if slot := a.costSlot(kind); slot != nil {
		return *slot
	}
	return nil
}

// SetCostSum stores v as the cost sum for kind.
func (a *Accessories) SetCostSum(kind AccessoryKind, v *float64) {
	if slot := a.costSlot(kind); slot != nil {
		*slot = v
	}
}

func (a *Accessories) costSlot(kind AccessoryKind) **float64 {
	switch kind {
	case AccessoryWinder:
		return &a.WinderCostSum
	case AccessoryMotor:
		return &a.MotorCostSum
	case AccessoryRemote:
		return &a.RemoteCostSum
	case AccessoryCharger:
		return &a.ChargerCostSum
	case AccessoryCord:
		return &a.CordCostSum
	case AccessoryDual:
		return &a.DualCostSum
	default:
		return nil
	}
}

// PriceTotal sums the current price of every accessory.
func (a Accessories) PriceTotal() float64 {
	var total float64
	for _, kind := range AccessoryKinds() {
		total += a.Get(kind).Price
	}
	return total
}

// Product returns the active product data, or nil when the document does not
// contain the current product.
func (d *Document) Product() *ProductData {
	if d == nil || d.Products == nil {
		return nil
	}
	return d.Products[d.CurrentProduct]
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Products != nil {
		out.Products = make(map[ProductKey]*ProductData, len(d.Products))
		for key, data := range d.Products {
			if data == nil {
				out.Products[key] = nil
				continue
			}
			cp := data.clone()
			out.Products[key] = &cp
		}
	}
	return out
}

func (p ProductData) clone() ProductData {
	out := ProductData{Summary: p.Summary.clone()}
	if p.Items != nil {
		out.Items = make([]LineItem, len(p.Items))
		for i, item := range p.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

func (s Summary) clone() Summary {
	out := s
	out.TotalSum = cloneFloat(s.TotalSum)
	for _, kind := range AccessoryKinds() {
		out.Accessories.SetCostSum(kind, cloneFloat(s.Accessories.CostSum(kind)))
	}
	return out
}

// Blueprint returns the initial document shape for product with no rows.
// Stores append a freshly created item on construction and reset.
func Blueprint(product ProductKey) Document {
	return Document{
		CurrentProduct: product,
		Products: map[ProductKey]*ProductData{
			product: {
				Items: []LineItem{},
				Summary: Summary{
					Accessories: Accessories{
						Remote: Accessory{Type: "standard"},
					},
				},
			},
		},
		Status: "Configuring",
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
