package uistate

// F1Component is a line of the F1 cost panel.
type F1Component string

const (
	F1Winder     F1Component = "winder"
	F1Motor      F1Component = "motor"
	F1Remote1Ch  F1Component = "remote-1ch"
	F1Remote16Ch F1Component = "remote-16ch"
	F1Charger    F1Component = "charger"
	F1Cord       F1Component = "3m-cord"
	F1DualCombo  F1Component = "dual-combo"
	F1Slim       F1Component = "slim"
)

// F1Components lists the F1 panel lines in display order.
func F1Components() []F1Component {
	return []F1Component{F1Winder, F1Motor, F1Remote1Ch, F1Remote16Ch, F1Charger, F1Cord, F1DualCombo, F1Slim}
}

// F1Line is one priced component of the F1 panel.
type F1Line struct {
	Component F1Component
	Quantity  int
	Price     float64
}

// F1 holds the remote distribution and the component costs.
type F1 struct {
	Remote1Ch int
	// Remote16Ch is nil until the operator distributes remotes; the full remote
	// count is assumed 16-channel until then.
	Remote16Ch *int
	Lines      []F1Line
	Total      float64
}

func (f F1) clone() F1 {
	out := f
	if f.Remote16Ch != nil {
		v := *f.Remote16Ch
		out.Remote16Ch = &v
	}
	out.Lines = append([]F1Line(nil), f.Lines...)
	return out
}

// F2Input identifies one of the operator-entered financial inputs.
type F2Input string

const (
	F2WifiQty     F2Input = "f2-b10-wifi-qty"
	F2DeliveryQty F2Input = "f2-b13-delivery-qty"
	F2InstallQty  F2Input = "f2-b14-install-qty"
	F2RemovalQty  F2Input = "f2-b15-removal-qty"
	F2MulTimes    F2Input = "f2-b17-mul-times"
	F2Discount    F2Input = "f2-b18-discount"
)

// F2Sequence is the focus order of the financial inputs.
func F2Sequence() []F2Input {
	return []F2Input{F2WifiQty, F2DeliveryQty, F2InstallQty, F2RemovalQty, F2MulTimes, F2Discount}
}

// NextF2Input returns the input focused after id, wrapping around.
func NextF2Input(id F2Input) (F2Input, bool) {
	seq := F2Sequence()
	for i, in := range seq {
		if in == id {
			return seq[(i+1)%len(seq)], true
		}
	}
	return "", false
}

// Fee is an excludable surcharge.
type Fee string

const (
	FeeDelivery Fee = "delivery"
	FeeInstall  Fee = "install"
	FeeRemoval  Fee = "removal"
)

// F2 holds the financial inputs, exclusion switches and derived totals.
type F2 struct {
	WifiQty     *float64
	DeliveryQty *float64
	InstallQty  *float64
	RemovalQty  *float64
	MulTimes    *float64
	Discount    *float64

	DeliveryFeeExcluded bool
	InstallFeeExcluded  bool
	RemovalFeeExcluded  bool

	Totals F2Totals
}

// Input returns the current value of id.
func (f F2) Input(id F2Input) *float64 {
	if p := f.input(id); p != nil {
		return *p
	}
	return nil
}

func (f *F2) input(id F2Input) **float64 {
	switch id {
	case F2WifiQty:
		return &f.WifiQty
	case F2DeliveryQty:
		return &f.DeliveryQty
	case F2InstallQty:
		return &f.InstallQty
	case F2RemovalQty:
		return &f.RemovalQty
	case F2MulTimes:
		return &f.MulTimes
	case F2Discount:
		return &f.Discount
	default:
		return nil
	}
}

// Excluded reports whether fee is left out of the surcharge.
func (f F2) Excluded(fee Fee) bool {
	switch fee {
	case FeeDelivery:
		return f.DeliveryFeeExcluded
	case FeeInstall:
		return f.InstallFeeExcluded
	case FeeRemoval:
		return f.RemovalFeeExcluded
	default:
		return false
	}
}

func (f F2) clone() F2 {
	out := f
	for _, id := range F2Sequence() {
		if v := f.Input(id); v != nil {
			cp := *v
			*out.input(id) = &cp
		}
	}
	return out
}

// F2Totals are the derived figures of the financial summary.
type F2Totals struct {
	WifiSum           float64
	DeliveryFee       float64
	InstallFee        float64
	RemovalFee        float64
	AcceSum           float64
	EAcceSum          float64
	SurchargeFee      float64
	TotalSumForRbTime float64
	FirstRbPrice      float64
	DisRbPrice        float64
	SumPrice          float64
}
