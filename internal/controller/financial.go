package controller

import (
	"fmt"
	"strconv"
	"strings"

	"quoteterm/internal/events"
	"quoteterm/internal/uistate"
)

func (c *Controller) costDiscount(e events.EnterCostDiscount) effect {
	raw := strings.TrimSpace(e.Percentage)
	pct := 0.0
	if raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			c.notifyError("Discount must be a number between 0 and 100.")
			return 0
		}
		pct = v
	}
	c.quotes.SetCostDiscount(pct)
	return changed
}

// distributeRemotes splits the remote count between 1- and 16-channel units.
func (c *Controller) distributeRemotes(e events.DistributeRemotes) effect {
	total := c.quotes.Summary().Accessories.Remote.Count
	if e.OneChannel < 0 || e.SixteenChannel < 0 {
		c.notifyError("Quantities must be positive numbers.")
		return 0
	}
	if sum := e.OneChannel + e.SixteenChannel; sum != total {
		c.notifyError(fmt.Sprintf("Total must equal %d. Current total: %d.", total, sum))
		return 0
	}
	c.ui.SetF1RemoteDistribution(e.OneChannel, e.SixteenChannel)
	return changed
}

// activateF2 brings every price up to date before the summary is shown.
func (c *Controller) activateF2(events.ActivateF2) effect {
	st := c.ui.Peek()
	if st.CurrentView != uistate.ViewDetailConfig {
		c.ui.SetCurrentView(uistate.ViewDetailConfig)
	}
	if st.ActiveTab != uistate.TabF2 {
		return c.activateTab(uistate.TabF2)
	}
	c.emit(events.RequestFocus{ElementID: string(uistate.F2WifiQty)})
	return changed | repriced
}

func (c *Controller) f2Value(e events.ChangeF2Value) effect {
	raw := strings.TrimSpace(e.Value)
	var v *float64
	if raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.notifyError("Please enter a valid number.")
			return 0
		}
		v = &f
	}
	if !c.ui.SetF2Value(e.ID, v) {
		return 0
	}
	return changed
}

func (c *Controller) f2Enter(e events.EnterF2Input) effect {
	next, ok := uistate.NextF2Input(e.ID)
	if !ok {
		return 0
	}
	c.emit(events.RequestFocus{ElementID: string(next)})
	return 0
}

func (c *Controller) toggleFee(e events.ToggleFeeExclusion) effect {
	if !c.ui.ToggleFeeExclusion(e.Fee) {
		return 0
	}
	return changed
}
