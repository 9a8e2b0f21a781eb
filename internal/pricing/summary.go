package pricing

import (
	"github.com/shopspring/decimal"

	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

var hundred = decimal.NewFromInt(100)

// FinancialSummary computes the F2 figures from the document totals and the
// operator inputs. Unset inputs count as zero.
func (e *Engine) FinancialSummary(doc quote.Document, f2 uistate.F2) uistate.F2Totals {
	var (
		total float64
		acc   quote.Accessories
	)
	if p := doc.Product(); p != nil {
		if p.Summary.TotalSum != nil {
			total = *p.Summary.TotalSum
		}
		acc = p.Summary.Accessories
	}
	fees := e.catalog.Fees

	t := uistate.F2Totals{TotalSumForRbTime: total}
	t.WifiSum = orZero(f2.WifiQty) * fees.Wifi
	t.DeliveryFee = orZero(f2.DeliveryQty) * fees.Delivery
	t.InstallFee = orZero(f2.InstallQty) * fees.Install
	t.RemovalFee = orZero(f2.RemovalQty) * fees.Removal

	t.AcceSum = orZero(acc.WinderCostSum) + orZero(acc.DualCostSum)
	t.EAcceSum = orZero(acc.MotorCostSum) + orZero(acc.RemoteCostSum) +
		orZero(acc.ChargerCostSum) + orZero(acc.CordCostSum) + t.WifiSum

	if !f2.DeliveryFeeExcluded {
		t.SurchargeFee += t.DeliveryFee
	}
	if !f2.InstallFeeExcluded {
		t.SurchargeFee += t.InstallFee
	}
	if !f2.RemovalFeeExcluded {
		t.SurchargeFee += t.RemovalFee
	}

	t.FirstRbPrice = total * orZero(f2.MulTimes)
	t.DisRbPrice = discounted(t.FirstRbPrice, orZero(f2.Discount))
	t.SumPrice = t.AcceSum + t.EAcceSum + t.SurchargeFee + t.DisRbPrice
	return t
}

// discounted applies percent off price, rounded half away from zero to cents.
func discounted(price, percent float64) float64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
	v, _ := decimal.NewFromFloat(price).Mul(factor).Round(2).Float64()
	return v
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
