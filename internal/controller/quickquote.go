package controller

import (
	"strconv"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
	"quoteterm/internal/uistate"
)

// maxInputDigits bounds the keypad buffer; no dimension needs more.
const maxInputDigits = 5

// keypadColumns are the cells the arrow keys move between.
var keypadColumns = []quote.Field{quote.FieldWidth, quote.FieldHeight, quote.FieldFabricType}

func (c *Controller) numericKey(e events.NumericKey) effect {
	st := c.ui.Peek()
	switch e.Key {
	case events.KeyBackspace:
		c.ui.DeleteLastInputChar()
		return changed
	case events.KeyClear:
		c.ui.ClearInputValue()
		return changed
	case events.KeyDelete:
		return c.deleteCellValue(st.ActiveCell)
	case events.KeyEnter:
		return c.commitInput()
	}
	if len(e.Key) != 1 || e.Key[0] < '0' || e.Key[0] > '9' {
		return 0
	}
	if st.ActiveCell.Row < 0 || !isDimension(st.InputMode) {
		return 0
	}
	if len(st.InputValue) >= maxInputDigits {
		return 0
	}
	if st.InputValue == "" && e.Key == "0" {
		return 0
	}
	c.ui.AppendInputValue(e.Key)
	return changed
}

func (c *Controller) deleteCellValue(cell uistate.Cell) effect {
	if !isDimension(cell.Column) {
		return 0
	}
	c.ui.ClearInputValue()
	if !c.quotes.UpdateItemValue(cell.Row, cell.Column, nil) {
		return changed
	}
	c.ui.SetSumOutdated(true)
	c.clampActiveCell()
	return changed | repriced
}

// commitInput writes the keypad buffer to the active cell and advances:
// width to height, height to the next row's width.
func (c *Controller) commitInput() effect {
	st := c.ui.Peek()
	cell := st.ActiveCell
	if cell.Row < 0 {
		return 0
	}
	if st.InputValue == "" {
		c.advance(cell)
		return changed
	}
	if !isDimension(cell.Column) {
		c.ui.ClearInputValue()
		return changed
	}
	v, err := strconv.Atoi(st.InputValue)
	if err != nil {
		c.ui.ClearInputValue()
		return changed
	}
	if s, ok := c.strategy(); ok {
		if r, ok := s.ValidationRules().For(cell.Column); ok {
			if err := r.Check(v); err != nil {
				c.notifyError(err.Error())
				return 0
			}
		}
	}
	c.ui.ClearInputValue()
	fx := changed
	if c.quotes.UpdateItemValue(cell.Row, cell.Column, v) {
		c.ui.SetSumOutdated(true)
		fx |= repriced
	}
	c.advance(cell)
	return fx
}

func (c *Controller) advance(cell uistate.Cell) {
	switch cell.Column {
	case quote.FieldWidth:
		c.ui.SetActiveCell(cell.Row, quote.FieldHeight)
	default:
		next := cell.Row + 1
		if next >= len(c.quotes.Items()) {
			next = len(c.quotes.Items()) - 1
		}
		c.ui.SetActiveCell(next, quote.FieldWidth)
	}
}

func (c *Controller) moveActiveCell(e events.MoveActiveCell) effect {
	cell := c.ui.Peek().ActiveCell
	if cell.Row < 0 {
		c.ui.SetActiveCell(0, quote.FieldWidth)
		return changed
	}
	rows := len(c.quotes.Items())
	col := columnIndex(cell.Column)
	switch e.Direction {
	case events.Up:
		if cell.Row > 0 {
			cell.Row--
		}
	case events.Down:
		if cell.Row < rows-1 {
			cell.Row++
		}
	case events.Left:
		if col > 0 {
			col--
		}
	case events.Right:
		if col < len(keypadColumns)-1 {
			col++
		}
	default:
		return 0
	}
	c.ui.ClearInputValue()
	c.ui.SetActiveCell(cell.Row, keypadColumns[col])
	return changed
}

func (c *Controller) insertRow(events.InsertRow) effect {
	sel := c.ui.Peek().SelectedRow
	if sel == nil {
		c.notifyError("Please select a row first.")
		return 0
	}
	at := c.quotes.InsertRow(*sel)
	if at < 0 {
		c.notifyError("Cannot insert a row after the last empty row.")
		return 0
	}
	c.ui.ClearRowSelection()
	c.ui.SetActiveCell(at, quote.FieldWidth)
	return changed
}

func (c *Controller) deleteRow(events.DeleteRow) effect {
	sel := c.ui.Peek().SelectedRow
	if sel == nil {
		c.notifyError("Please select a row first.")
		return 0
	}
	if !c.quotes.DeleteRow(*sel) {
		return 0
	}
	c.ui.ClearRowSelection()
	c.ui.SetSumOutdated(true)
	c.clampActiveCell()
	return changed | repriced
}

func (c *Controller) clearRow(events.ClearRow) effect {
	sel := c.ui.Peek().SelectedRow
	if sel == nil {
		c.notifyError("Please select a row first.")
		return 0
	}
	if !c.quotes.ClearRow(*sel) {
		return 0
	}
	c.ui.ClearRowSelection()
	c.ui.SetSumOutdated(true)
	c.clampActiveCell()
	return changed | repriced
}

func (c *Controller) deleteMultipleRows(events.DeleteMultipleRows) effect {
	st := c.ui.Peek()
	if !st.MultiSelect || len(st.MultiSelected) == 0 {
		c.notifyError("Please select rows to delete first.")
		return 0
	}
	if !c.quotes.DeleteMultipleRows(st.MultiSelected) {
		return 0
	}
	c.ui.ClearMultiSelectSelection()
	c.ui.SetSumOutdated(true)
	c.clampActiveCell()
	return changed | repriced
}

// cycleType cycles the selected row, or moves every sized row to the type
// after the first row's.
func (c *Controller) cycleType(events.CycleType) effect {
	if sel := c.ui.Peek().SelectedRow; sel != nil {
		if !c.quotes.CycleItemType(*sel) {
			return 0
		}
		c.ui.SetSumOutdated(true)
		return changed | repriced
	}
	next := c.nextBatchType()
	if next == "" || !c.quotes.BatchUpdateFabricType(next) {
		return 0
	}
	c.ui.SetSumOutdated(true)
	return changed | repriced
}

func (c *Controller) nextBatchType() string {
	types := c.engine.Catalog().FabricTypes
	if len(types) == 0 {
		return ""
	}
	current := ""
	for _, item := range c.quotes.Items() {
		if item.HasSize() {
			current = item.FabricType
			break
		}
	}
	for i, t := range types {
		if t == current {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}

func (c *Controller) calculate(events.Calculate) effect {
	s, ok := c.strategy()
	if !ok {
		return 0
	}
	rowErr := c.reprice(s)
	c.ui.SetSumOutdated(false)
	c.dualReported = false
	if rowErr != nil {
		c.notifyError(rowErr.Message)
		c.ui.SetActiveCell(rowErr.RowIndex, rowErr.Column)
	}
	return changed | accessoriesChanged
}

func (c *Controller) toggleMultiSelect(events.ToggleMultiSelect) effect {
	c.ui.ToggleMultiSelectMode()
	return changed
}

func (c *Controller) setMultiType(e events.SetMultiType) effect {
	st := c.ui.Peek()
	if !st.MultiSelect || len(st.MultiSelected) == 0 {
		c.notifyError("Please select rows first.")
		return 0
	}
	fabricType, err := c.engine.Catalog().ResolveFabricType(e.Type)
	if err != nil {
		c.notifyError(err.Error())
		return 0
	}
	if !c.quotes.BatchUpdateFabricTypeForSelection(st.MultiSelected, fabricType) {
		return 0
	}
	c.ui.SetSumOutdated(true)
	return changed | repriced
}

func (c *Controller) save(events.Save) effect {
	data, err := quotefile.EncodeJSON(c.quotes.Snapshot())
	if err != nil {
		c.notifyError("Save failed: " + err.Error())
		return 0
	}
	c.emit(events.File{
		FileName:    quotefile.FileName("json", c.now()),
		ContentType: quotefile.ContentTypeJSON,
		Data:        data,
	})
	return 0
}

func (c *Controller) export(e events.Export) effect {
	format := e.Format
	if format == "" {
		format = "csv"
	}
	data, err := quotefile.Encode(format, c.quotes.Snapshot(), c.meta())
	if err != nil {
		c.notifyError("Export failed: " + err.Error())
		return 0
	}
	c.emit(events.File{
		FileName:    quotefile.FileName(format, c.now()),
		ContentType: quotefile.ContentType(format),
		Data:        data,
	})
	return 0
}

func (c *Controller) reset(events.Reset) effect {
	c.quotes.Reset()
	c.resetUI()
	return changed
}

func (c *Controller) tableCellClicked(e events.ClickTableCell) effect {
	if c.ui.Peek().CurrentView == uistate.ViewDetailConfig {
		return c.detailCellClicked(e)
	}
	if _, ok := c.quotes.Item(e.Row); !ok {
		return 0
	}
	switch e.Column {
	case quote.FieldWidth, quote.FieldHeight:
		c.ui.ClearInputValue()
		c.ui.SetActiveCell(e.Row, e.Column)
		return changed
	case quote.FieldFabricType:
		if !c.quotes.CycleItemType(e.Row) {
			return 0
		}
		c.ui.SetSumOutdated(true)
		return changed | repriced
	}
	return 0
}

func (c *Controller) sequenceCellClicked(e events.ClickSequenceCell) effect {
	if _, ok := c.quotes.Item(e.Row); !ok {
		return 0
	}
	st := c.ui.Peek()
	if st.CurrentView == uistate.ViewDetailConfig {
		switch st.ActiveEditMode {
		case uistate.EditK2LFSelect, uistate.EditK2LFDeleteSelect:
			return c.lfSequenceClicked(e.Row)
		}
		c.ui.ToggleRowSelection(e.Row)
		return changed
	}
	if st.MultiSelect {
		c.ui.ToggleMultiSelectSelection(e.Row)
		return changed
	}
	c.ui.ToggleRowSelection(e.Row)
	return changed
}

// clampActiveCell keeps the focus on an existing row after deletions.
func (c *Controller) clampActiveCell() {
	cell := c.ui.Peek().ActiveCell
	if cell.Row < 0 {
		return
	}
	if last := len(c.quotes.Items()) - 1; cell.Row > last {
		c.ui.SetActiveCell(last, cell.Column)
	}
}

func isDimension(f quote.Field) bool {
	return f == quote.FieldWidth || f == quote.FieldHeight
}

func columnIndex(f quote.Field) int {
	for i, col := range keypadColumns {
		if col == f {
			return i
		}
	}
	return 0
}
