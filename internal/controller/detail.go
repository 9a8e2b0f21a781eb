package controller

import (
	"strconv"
	"strings"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

func (c *Controller) navigateToDetail(events.NavigateToDetailView) effect {
	if c.ui.Peek().CurrentView == uistate.ViewDetailConfig {
		return c.leaveDetail()
	}
	c.ui.SetCurrentView(uistate.ViewDetailConfig)
	c.ui.ClearInputValue()
	c.ui.ClearActiveCell()
	return c.activateTab(uistate.TabK1)
}

func (c *Controller) navigateToQuickQuote(events.NavigateToQuickQuote) effect {
	return c.leaveDetail()
}

func (c *Controller) leaveDetail() effect {
	c.exitModes()
	c.ui.SetCurrentView(uistate.ViewQuickQuote)
	c.ui.SetVisibleColumns(uistate.QuickQuoteColumns())
	c.ui.SetActiveCell(0, quote.FieldWidth)
	return changed
}

func (c *Controller) switchTab(e events.SwitchTab) effect {
	for _, t := range uistate.Tabs() {
		if t == e.Tab {
			return c.activateTab(t)
		}
	}
	return 0
}

// activateTab shows tab and leaves any mode of the previous one.
func (c *Controller) activateTab(tab uistate.Tab) effect {
	c.exitModes()
	c.ui.SetActiveTab(tab)
	c.ui.SetVisibleColumns(uistate.ColumnsForTab(tab))
	switch tab {
	case uistate.TabF1:
		return changed | accessoriesChanged
	case uistate.TabF2:
		c.emit(events.RequestFocus{ElementID: string(uistate.F2WifiQty)})
		return changed | repriced
	}
	return changed
}

func (c *Controller) exitModes() {
	c.ui.SetActiveEditMode(uistate.EditNone)
	c.ui.SetTargetCell(nil)
	c.ui.SetLocationInput("")
	c.ui.ClearRowSelection()
	c.ui.ClearLFSelection()
	c.ui.SetLFInputs("", "")
	c.ui.SetDualChainMode(uistate.DualChainOff)
	c.ui.ClearDualChainInput()
	c.ui.SetDriveMode(uistate.DriveOff)
}

func (c *Controller) focusMode(e events.RequestFocusMode) effect {
	switch e.Column {
	case quote.FieldLocation:
		return c.toggleK1()
	case quote.FieldFabric, quote.FieldColor:
		return c.toggleK2(e.Overwrite)
	}
	return 0
}

// toggleK1 enters location entry on the first row, or leaves it.
func (c *Controller) toggleK1() effect {
	if c.ui.Peek().ActiveEditMode == uistate.EditK1 {
		c.ui.SetActiveEditMode(uistate.EditNone)
		c.ui.SetTargetCell(nil)
		c.ui.SetLocationInput("")
		return changed
	}
	c.ui.SetActiveEditMode(uistate.EditK1)
	c.targetLocation(0)
	return changed
}

func (c *Controller) targetLocation(row int) {
	item, ok := c.quotes.Item(row)
	if !ok {
		return
	}
	c.ui.SetTargetCell(&uistate.Cell{Row: row, Column: quote.FieldLocation})
	c.ui.SetLocationInput(item.Location)
}

// enterLocation stores the location and moves to the next row with data,
// leaving the mode after the last one.
func (c *Controller) enterLocation(e events.EnterLocation) effect {
	st := c.ui.Peek()
	if st.ActiveEditMode != uistate.EditK1 || st.TargetCell == nil {
		return 0
	}
	row := st.TargetCell.Row
	c.quotes.UpdateItemProperty(row, quote.FieldLocation, strings.TrimSpace(e.Value))
	if next, ok := c.quotes.Item(row + 1); ok && next.HasData() {
		c.targetLocation(row + 1)
		return changed
	}
	c.ui.SetActiveEditMode(uistate.EditNone)
	c.ui.SetTargetCell(nil)
	c.ui.SetLocationInput("")
	return changed
}

func (c *Controller) toggleK3(events.ToggleK3EditMode) effect {
	if c.ui.Peek().ActiveEditMode == uistate.EditK3 {
		c.ui.SetActiveEditMode(uistate.EditNone)
	} else {
		c.ui.SetActiveEditMode(uistate.EditK3)
	}
	c.ui.ClearRowSelection()
	return changed
}

// batchCycle advances the first row with data and copies its new value to
// every row with data.
func (c *Controller) batchCycle(e events.RequestBatchCycle) effect {
	if c.ui.Peek().ActiveEditMode != uistate.EditK3 || !isPositional(e.Column) {
		return 0
	}
	first := -1
	for i, item := range c.quotes.Items() {
		if item.HasData() {
			first = i
			break
		}
	}
	if first < 0 || !c.quotes.CycleK3Property(first, e.Column) {
		return 0
	}
	item, _ := c.quotes.Item(first)
	c.quotes.BatchUpdateProperty(e.Column, item.Value(e.Column))
	return changed
}

func (c *Controller) detailCellClicked(e events.ClickTableCell) effect {
	item, ok := c.quotes.Item(e.Row)
	if !ok {
		return 0
	}
	st := c.ui.Peek()
	switch {
	case st.ActiveEditMode == uistate.EditK1 && e.Column == quote.FieldLocation:
		c.targetLocation(e.Row)
		return changed
	case st.ActiveEditMode == uistate.EditK3 && isPositional(e.Column):
		if !item.HasData() || !c.quotes.CycleK3Property(e.Row, e.Column) {
			return 0
		}
		return changed
	case st.DriveMode == uistate.DriveWinder && e.Column == quote.FieldWinder:
		return c.toggleDrive(e.Row, item, quote.FieldWinder, quote.WinderHeavyDuty)
	case st.DriveMode == uistate.DriveMotor && e.Column == quote.FieldMotor:
		return c.toggleDrive(e.Row, item, quote.FieldMotor, quote.MotorStandard)
	case st.DualChainMode == uistate.ModeDual && e.Column == quote.FieldDual:
		value := quote.DualMarker
		if item.Dual == quote.DualMarker {
			value = ""
		}
		c.quotes.UpdateItemProperty(e.Row, quote.FieldDual, value)
		return changed | accessoriesChanged
	case st.DualChainMode == uistate.ModeChain && e.Column == quote.FieldChain:
		c.ui.SetTargetCell(&uistate.Cell{Row: e.Row, Column: quote.FieldChain})
		input := ""
		if item.Chain != nil {
			input = strconv.Itoa(*item.Chain)
		}
		c.ui.SetDualChainInput(input)
		c.emit(events.RequestFocus{ElementID: ChainInputID})
		return changed
	}
	return 0
}

// ChainInputID is the element focused for chain entry.
const ChainInputID = "k5-chain-input"

func (c *Controller) toggleDrive(row int, item quote.LineItem, field quote.Field, marker string) effect {
	if !item.HasData() {
		return 0
	}
	value := marker
	if item.Value(field) == marker {
		value = ""
	}
	if !c.quotes.UpdateWinderMotorProperty(row, field, value) {
		return 0
	}
	return changed | accessoriesChanged
}

func (c *Controller) driveMode(e events.ChangeDriveMode) effect {
	mode := e.Mode
	if c.ui.Peek().DriveMode == mode {
		mode = uistate.DriveOff
	}
	c.ui.SetDriveMode(mode)
	return changed
}

// counted lists the accessories whose count the operator sets directly.
var counted = map[quote.AccessoryKind]bool{
	quote.AccessoryRemote:  true,
	quote.AccessoryCharger: true,
	quote.AccessoryCord:    true,
}

func (c *Controller) accessoryCounter(e events.ChangeAccessoryCounter) effect {
	if !counted[e.Accessory] || c.ui.Peek().DriveMode.Accessory() != e.Accessory {
		return 0
	}
	moved := false
	c.quotes.UpdateAccessories(func(a *quote.Accessories) {
		slot := a.Get(e.Accessory)
		next := slot.Count + e.Delta
		if next < 0 {
			next = 0
		}
		moved = next != slot.Count
		slot.Count = next
	})
	if !moved {
		return 0
	}
	return changed | accessoriesChanged
}

func (c *Controller) dualChainMode(e events.ChangeDualChainMode) effect {
	current := c.ui.Peek().DualChainMode
	mode := e.Mode
	if current == mode {
		mode = uistate.DualChainOff
	}
	fx := changed
	if current == uistate.ModeDual {
		s, ok := c.strategy()
		if !ok {
			return 0
		}
		if err := c.recalculateAccessories(s); err != nil {
			c.notifyError(err.Error())
			return 0
		}
		fx |= accessoriesChanged
	}
	c.ui.SetDualChainMode(mode)
	if mode == uistate.DualChainOff {
		c.ui.SetTargetCell(nil)
		c.ui.ClearDualChainInput()
	}
	return fx
}

func (c *Controller) enterChain(e events.EnterChain) effect {
	target := c.ui.Peek().TargetCell
	if target == nil {
		return 0
	}
	value := strings.TrimSpace(e.Value)
	var chain *int
	if value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			c.notifyError("Only positive integers are allowed.")
			return 0
		}
		chain = &n
	}
	c.quotes.UpdateItemProperty(target.Row, target.Column, chain)
	c.ui.SetTargetCell(nil)
	c.ui.ClearDualChainInput()
	return changed
}

func isPositional(f quote.Field) bool {
	return f == quote.FieldOver || f == quote.FieldOI || f == quote.FieldLR
}
