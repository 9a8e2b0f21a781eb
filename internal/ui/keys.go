package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

// tabKeys switch detail tabs by number.
var tabKeys = map[string]uistate.Tab{
	"1": uistate.TabK1,
	"2": uistate.TabK2,
	"3": uistate.TabK3,
	"4": uistate.TabK4,
	"5": uistate.TabK5,
	"6": uistate.TabF1,
	"7": uistate.TabF2,
}

var driveKeys = map[string]uistate.DriveMode{
	"w": uistate.DriveWinder,
	"m": uistate.DriveMotor,
	"r": uistate.DriveRemote,
	"h": uistate.DriveCharger,
	"o": uistate.DriveCord,
}

var feeKeys = map[string]uistate.Fee{
	"d": uistate.FeeDelivery,
	"i": uistate.FeeInstall,
	"v": uistate.FeeRemoval,
}

func (m *model) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.confirm != nil:
		return m.updateConfirm(msg)
	case m.confirmLoad:
		return m.updateConfirmLoad(msg)
	case m.prompt.active():
		return m.updatePrompt(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlS:
		return m.publish(events.Save{})
	case tea.KeyCtrlE:
		return m.openPrompt(promptExport, "Export format (csv, json, xlsx, pdf)", "csv")
	case tea.KeyCtrlO:
		return m.publish(events.RequestLoad{})
	case tea.KeyCtrlN:
		// a reset quote must not come back on the next start
		m.saver.Discard(context.Background())
		return m.publish(events.Reset{})
	case tea.KeyTab:
		return m.publish(events.NavigateToDetailView{})
	}
	if msg.Type == tea.KeyRunes && string(msg.Runes) == "?" {
		m.showHelp = !m.showHelp
		return nil
	}

	if m.state.UI.CurrentView == uistate.ViewDetailConfig {
		return m.updateDetail(msg)
	}
	return m.updateQuickQuote(msg)
}

func (m *model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	c := m.confirm
	switch {
	case msg.Type == tea.KeyRunes && (string(msg.Runes) == "y" || string(msg.Runes) == "Y"):
		m.confirm = nil
		return m.publish(c.OnConfirm)
	case msg.Type == tea.KeyEsc || (msg.Type == tea.KeyRunes && (string(msg.Runes) == "n" || string(msg.Runes) == "N")):
		m.confirm = nil
	}
	return nil
}

func (m *model) updateConfirmLoad(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		m.confirmLoad = false
		return nil
	}
	if msg.Type != tea.KeyRunes {
		return nil
	}
	switch string(msg.Runes) {
	case "s", "S":
		m.confirmLoad = false
		return m.publish(events.Save{}, events.ChooseLoadDirectly{})
	case "l", "L":
		m.confirmLoad = false
		return m.publish(events.ChooseLoadDirectly{})
	}
	return nil
}

func (m *model) updateQuickQuote(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		return m.publish(events.NumericKey{Key: events.KeyEnter})
	case tea.KeyBackspace:
		return m.publish(events.NumericKey{Key: events.KeyBackspace})
	case tea.KeyDelete:
		return m.publish(events.NumericKey{Key: events.KeyDelete})
	case tea.KeyEsc:
		return m.publish(events.NumericKey{Key: events.KeyClear})
	case tea.KeyUp:
		return m.publish(events.MoveActiveCell{Direction: events.Up})
	case tea.KeyDown:
		return m.publish(events.MoveActiveCell{Direction: events.Down})
	case tea.KeyLeft:
		return m.publish(events.MoveActiveCell{Direction: events.Left})
	case tea.KeyRight:
		return m.publish(events.MoveActiveCell{Direction: events.Right})
	case tea.KeySpace:
		return m.publish(events.ClickSequenceCell{Row: m.state.UI.ActiveCell.Row})
	case tea.KeyRunes:
	default:
		return nil
	}

	key := string(msg.Runes)
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return m.publish(events.NumericKey{Key: key})
	}
	switch key {
	case "i":
		return m.publish(events.InsertRow{})
	case "d":
		return m.publish(events.DeleteRow{})
	case "r":
		return m.publish(events.ClearRow{})
	case "t":
		return m.publish(events.CycleType{})
	case "c":
		return m.publish(events.Calculate{})
	case "m":
		return m.publish(events.ToggleMultiSelect{})
	case "X":
		return m.publish(events.DeleteMultipleRows{})
	case "T":
		return m.openPrompt(promptMultiType, "Type for selected rows", "")
	case " ":
		return m.publish(events.ClickSequenceCell{Row: m.state.UI.ActiveCell.Row})
	}
	return nil
}

func (m *model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return m.publish(events.NavigateToQuickQuote{})
	case tea.KeyUp:
		m.moveCursor(-1, 0)
		return nil
	case tea.KeyDown:
		m.moveCursor(1, 0)
		return nil
	case tea.KeyLeft:
		m.moveCursor(0, -1)
		return nil
	case tea.KeyRight:
		m.moveCursor(0, 1)
		return nil
	case tea.KeyEnter:
		return m.publish(events.ClickTableCell{Row: m.cursor.Row, Column: m.cursor.Column})
	case tea.KeySpace:
		return m.publish(events.ClickSequenceCell{Row: m.cursor.Row})
	case tea.KeyRunes:
	default:
		return nil
	}

	key := string(msg.Runes)
	if key == " " {
		return m.publish(events.ClickSequenceCell{Row: m.cursor.Row})
	}
	if tab, ok := tabKeys[key]; ok {
		if tab == uistate.TabF2 {
			return m.publish(events.ActivateF2{})
		}
		return m.publish(events.SwitchTab{Tab: tab})
	}

	ui := m.state.UI
	switch ui.ActiveTab {
	case uistate.TabK1:
		if key == "l" {
			return m.publish(events.RequestFocusMode{Column: quote.FieldLocation})
		}
	case uistate.TabK2:
		switch key {
		case "f":
			return m.publish(events.RequestFocusMode{Column: quote.FieldFabric})
		case "L":
			return m.publish(events.RequestLFEdit{})
		case "X":
			return m.publish(events.RequestLFDelete{})
		case "p":
			if k2Editing(ui.ActiveEditMode) {
				return m.openPanel()
			}
		}
	case uistate.TabK3:
		switch key {
		case "k":
			return m.publish(events.ToggleK3EditMode{})
		case "b":
			return m.publish(events.RequestBatchCycle{Column: m.cursor.Column})
		}
	case uistate.TabK4:
		if mode, ok := driveKeys[key]; ok {
			return m.publish(events.ChangeDriveMode{Mode: mode})
		}
		switch key {
		case "+", "=":
			return m.publish(events.ChangeAccessoryCounter{Accessory: ui.DriveMode.Accessory(), Delta: 1})
		case "-":
			return m.publish(events.ChangeAccessoryCounter{Accessory: ui.DriveMode.Accessory(), Delta: -1})
		}
	case uistate.TabK5:
		switch key {
		case "u":
			return m.publish(events.ChangeDualChainMode{Mode: uistate.ModeDual})
		case "n":
			return m.publish(events.ChangeDualChainMode{Mode: uistate.ModeChain})
		}
	case uistate.TabF1:
		switch key {
		case "p":
			return m.openPrompt(promptRemotes, "Remotes as 1ch 16ch", "")
		case "%":
			return m.openPrompt(promptDiscount, "Cost discount %", "")
		}
	case uistate.TabF2:
		if fee, ok := feeKeys[key]; ok {
			return m.publish(events.ToggleFeeExclusion{Fee: fee})
		}
		if key == "p" {
			return m.openF2Prompt(uistate.F2WifiQty)
		}
	}
	return nil
}

func (m *model) moveCursor(dRow, dCol int) {
	m.cursor.Row += dRow
	cols := m.state.UI.VisibleColumns
	if dCol != 0 && len(cols) > 0 {
		idx := 0
		for i, c := range cols {
			if c == m.cursor.Column {
				idx = i
			}
		}
		idx += dCol
		if idx < 0 {
			idx = 0
		}
		if idx >= len(cols) {
			idx = len(cols) - 1
		}
		m.cursor.Column = cols[idx]
	}
	m.clampCursor()
}
