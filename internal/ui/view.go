package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

var columnLabels = map[quote.Field]string{
	quote.FieldWidth:      "Width",
	quote.FieldHeight:     "Height",
	quote.FieldFabricType: "Type",
	quote.FieldLinePrice:  "Price",
	quote.FieldLocation:   "Location",
	quote.FieldFabric:     "Fabric",
	quote.FieldColor:      "Color",
	quote.FieldOver:       "Over",
	quote.FieldOI:         "O/I",
	quote.FieldLR:         "L/R",
	quote.FieldWinder:     "Winder",
	quote.FieldMotor:      "Motor",
	quote.FieldDual:       "Dual",
	quote.FieldChain:      "Chain",
}

var columnWidths = map[quote.Field]int{
	quote.FieldLocation:  16,
	quote.FieldFabric:    22,
	quote.FieldColor:     12,
	quote.FieldLinePrice: 12,
}

var tabLabels = map[uistate.Tab]string{
	uistate.TabK1: "1 Location",
	uistate.TabK2: "2 Fabric",
	uistate.TabK3: "3 Install",
	uistate.TabK4: "4 Drive",
	uistate.TabK5: "5 Dual/Chain",
	uistate.TabF1: "6 Cost",
	uistate.TabF2: "7 Summary",
}

const seqWidth = 5

func (m *model) View() string {
	ui := m.state.UI
	detail := ui.CurrentView == uistate.ViewDetailConfig

	heading := "Quick Quote"
	if detail {
		heading = "Detail Configuration"
	}
	lines := []string{m.theme.Title.Render("Quote-Term") + "  " + m.theme.Subtitle.Render(heading)}
	if m.showSplash {
		lines = append(lines, m.theme.Faint.Render("Roller blind quoting in the terminal. Press ? for keys."))
	}
	if detail {
		lines = append(lines, m.viewTabs())
	}
	if mode := m.viewModes(); mode != "" {
		lines = append(lines, m.theme.Warning.Render(mode))
	}
	lines = append(lines, "", m.viewTable(), "", m.viewTotal())
	if detail {
		if panel := m.viewPanel(); panel != "" {
			lines = append(lines, m.theme.Panel.Render(panel))
		}
	}

	if m.notice.Message != "" {
		lines = append(lines, "", m.noticeStyle(m.notice.Level).Render(m.notice.Message))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}

	switch {
	case m.confirm != nil:
		lines = append(lines, "", m.theme.Highlight.Render(m.confirm.Message), m.theme.Faint.Render("y = yes, n = no"))
	case m.confirmLoad:
		lines = append(lines, "",
			m.theme.Highlight.Render("The current quote has data. Loading a file will replace it."),
			m.theme.Faint.Render("s = save first, l = load directly, esc = cancel"))
	case m.prompt.active():
		lines = append(lines, "", m.theme.Secondary.Render(m.prompt.label), m.theme.Accent.Render("> ")+m.prompt.input.View())
	}

	lines = append(lines, "", m.viewHelp())
	return strings.Join(lines, "\n") + "\n"
}

func (m *model) items() []quote.LineItem {
	if p := m.state.Document.Product(); p != nil {
		return p.Items
	}
	return nil
}

func (m *model) summary() quote.Summary {
	if p := m.state.Document.Product(); p != nil {
		return p.Summary
	}
	return quote.Summary{}
}

func (m *model) noticeStyle(level events.Level) lipgloss.Style {
	switch level {
	case events.LevelError:
		return m.theme.Danger
	case events.LevelWarning:
		return m.theme.Warning
	default:
		return m.theme.Success
	}
}

func (m *model) viewTabs() string {
	parts := make([]string, 0, len(uistate.Tabs()))
	for _, tab := range uistate.Tabs() {
		style := m.theme.Tab
		if tab == m.state.UI.ActiveTab {
			style = m.theme.ActiveTab
		}
		parts = append(parts, style.Render(tabLabels[tab]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) viewModes() string {
	ui := m.state.UI
	var parts []string
	switch ui.ActiveEditMode {
	case uistate.EditK1:
		parts = append(parts, "Editing locations")
	case uistate.EditK2:
		parts = append(parts, "Editing fabrics (p opens the panel)")
	case uistate.EditK2LFSelect:
		parts = append(parts, "Light-Filter: select rows, then p")
	case uistate.EditK2LFDeleteSelect:
		parts = append(parts, "Light-Filter delete: select rows, then X")
	case uistate.EditK3:
		parts = append(parts, "Editing installation")
	}
	if ui.MultiSelect {
		parts = append(parts, "Multi-select")
	}
	if ui.DriveMode != uistate.DriveOff {
		parts = append(parts, "Drive: "+string(ui.DriveMode))
	}
	if ui.DualChainMode != uistate.DualChainOff {
		parts = append(parts, "Mode: "+string(ui.DualChainMode))
	}
	return strings.Join(parts, "  |  ")
}

func (m *model) viewTable() string {
	ui := m.state.UI
	cols := ui.VisibleColumns

	header := []string{m.theme.Header.Copy().Width(seqWidth).Render("#")}
	for _, c := range cols {
		header = append(header, m.theme.Header.Copy().Width(columnWidth(c)).Render(columnLabels[c]))
	}
	head := lipgloss.JoinHorizontal(lipgloss.Top, header...)
	rows := []string{head, m.theme.Border.Render(strings.Repeat("─", lipgloss.Width(head)))}

	for i, item := range m.items() {
		seqStyle := m.theme.Cell
		if m.rowSelected(i) {
			seqStyle = m.theme.SelectedRow
		}
		cells := []string{seqStyle.Copy().Width(seqWidth).Render(strconv.Itoa(i + 1))}
		for _, c := range cols {
			cells = append(cells, m.cellStyle(i, item, c).Copy().Width(columnWidth(c)).Render(m.cellText(i, item, c)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func columnWidth(f quote.Field) int {
	if w, ok := columnWidths[f]; ok {
		return w
	}
	return 9
}

func (m *model) rowSelected(row int) bool {
	ui := m.state.UI
	if ui.SelectedRow != nil && *ui.SelectedRow == row {
		return true
	}
	return ui.IsMultiSelected(row) || ui.IsLFSelected(row)
}

func (m *model) cellStyle(row int, item quote.LineItem, c quote.Field) lipgloss.Style {
	ui := m.state.UI
	detail := ui.CurrentView == uistate.ViewDetailConfig
	switch {
	case !detail && ui.ActiveCell.Row == row && ui.ActiveCell.Column == c:
		return m.theme.ActiveCell
	case detail && m.cursor.Row == row && m.cursor.Column == c:
		return m.theme.ActiveCell
	case ui.TargetCell != nil && ui.TargetCell.Row == row && ui.TargetCell.Column == c:
		return m.theme.TargetCell
	case (c == quote.FieldFabric || c == quote.FieldColor) && ui.IsLFModified(item.ItemID):
		return m.theme.LightFilter
	case c == quote.FieldLinePrice:
		return m.theme.Price
	}
	return m.theme.Cell
}

func (m *model) cellText(row int, item quote.LineItem, c quote.Field) string {
	ui := m.state.UI
	if ui.CurrentView == uistate.ViewQuickQuote && ui.ActiveCell.Row == row && ui.ActiveCell.Column == c && ui.InputValue != "" {
		return ui.InputValue
	}
	switch v := item.Value(c).(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(v)
	case float64:
		return money(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (m *model) viewTotal() string {
	s := m.summary()
	total := "-"
	if s.TotalSum != nil {
		total = money(*s.TotalSum)
	}
	line := m.theme.Highlight.Render("Total: ") + m.theme.Primary.Render(total)
	if m.state.UI.SumOutdated {
		line += "  " + m.theme.Warning.Render("(outdated, press c to calculate)")
	}
	return line
}

func (m *model) viewPanel() string {
	ui := m.state.UI
	acc := m.summary().Accessories
	var lines []string
	switch ui.ActiveTab {
	case uistate.TabK2:
		if ui.ActiveEditMode == uistate.EditK2LFSelect {
			lines = append(lines, "LF fabric: "+ui.LFFabricInput, "LF color:  "+ui.LFColorInput)
		}
	case uistate.TabK4:
		for _, kind := range []quote.AccessoryKind{quote.AccessoryWinder, quote.AccessoryMotor, quote.AccessoryRemote, quote.AccessoryCharger, quote.AccessoryCord} {
			slot := acc.Get(kind)
			lines = append(lines, fmt.Sprintf("%-8s %3d  %10s", kind, slot.Count, money(slot.Price)))
		}
	case uistate.TabK5:
		lines = append(lines, fmt.Sprintf("Dual brackets %3d  %10s", acc.Dual.Count, money(acc.Dual.Price)))
		if ui.DualChainMode == uistate.ModeChain && ui.TargetCell != nil {
			lines = append(lines, fmt.Sprintf("Chain for row %d", ui.TargetCell.Row+1))
		}
	case uistate.TabF1:
		for _, l := range ui.F1.Lines {
			lines = append(lines, fmt.Sprintf("%-12s %3d  %10s", l.Component, l.Quantity, money(l.Price)))
		}
		lines = append(lines,
			fmt.Sprintf("%-12s %15s", "Total", money(ui.F1.Total)),
			fmt.Sprintf("Cost discount %s%%", strconv.FormatFloat(m.state.Document.CostDiscountPercentage, 'f', -1, 64)))
	case uistate.TabF2:
		f2 := ui.F2
		t := f2.Totals
		for _, id := range uistate.F2Sequence() {
			v := "-"
			if p := f2.Input(id); p != nil {
				v = strconv.FormatFloat(*p, 'f', -1, 64)
			}
			lines = append(lines, fmt.Sprintf("%-14s %8s", f2Labels[id], v))
		}
		lines = append(lines, "",
			fmt.Sprintf("%-14s %12s", "Blinds", money(t.TotalSumForRbTime)),
			fmt.Sprintf("%-14s %12s", "Accessories", money(t.AcceSum)),
			fmt.Sprintf("%-14s %12s", "Electrical", money(t.EAcceSum)),
			fmt.Sprintf("%-14s %12s%s", "Surcharge", money(t.SurchargeFee), excludedNote(f2)),
			fmt.Sprintf("%-14s %12s", "Multiplied", money(t.FirstRbPrice)),
			fmt.Sprintf("%-14s %12s", "Discounted", money(t.DisRbPrice)),
			fmt.Sprintf("%-14s %12s", "Sum", money(t.SumPrice)))
	}
	return strings.Join(lines, "\n")
}

func excludedNote(f2 uistate.F2) string {
	var out []string
	for _, fee := range []uistate.Fee{uistate.FeeDelivery, uistate.FeeInstall, uistate.FeeRemoval} {
		if f2.Excluded(fee) {
			out = append(out, string(fee))
		}
	}
	if len(out) == 0 {
		return ""
	}
	return "  (excl. " + strings.Join(out, ", ") + ")"
}

func (m *model) viewHelp() string {
	if !m.showHelp {
		return m.theme.Faint.Render("? keys  tab detail  ctrl+s save  ctrl+e export  ctrl+o load  ctrl+c quit")
	}
	var pairs [][2]string
	ui := m.state.UI
	if ui.CurrentView == uistate.ViewQuickQuote {
		pairs = [][2]string{
			{"0-9 enter", "Type width / height"},
			{"bksp del esc", "Backspace / clear cell / clear input"},
			{"arrows", "Move"},
			{"space", "Select row"},
			{"i d r", "Insert / delete / clear row"},
			{"t", "Cycle fabric type"},
			{"c", "Calculate"},
			{"m X T", "Multi-select / delete selected / set type"},
		}
	} else {
		pairs = [][2]string{
			{"1-7", "Switch tab"},
			{"arrows enter", "Move / click cell"},
			{"space", "Select row"},
			{"esc", "Back to quick quote"},
		}
		switch ui.ActiveTab {
		case uistate.TabK1:
			pairs = append(pairs, [2]string{"l", "Enter locations"})
		case uistate.TabK2:
			pairs = append(pairs, [2]string{"f L X p", "Fabric mode / LF edit / LF delete / panel"})
		case uistate.TabK3:
			pairs = append(pairs, [2]string{"k b", "Edit mode / batch cycle column"})
		case uistate.TabK4:
			pairs = append(pairs, [2]string{"w m r h o", "Winder / motor / remote / charger / cord"}, [2]string{"+ -", "Change count"})
		case uistate.TabK5:
			pairs = append(pairs, [2]string{"u n", "Dual / chain mode"})
		case uistate.TabF1:
			pairs = append(pairs, [2]string{"p %", "Distribute remotes / cost discount"})
		case uistate.TabF2:
			pairs = append(pairs, [2]string{"p", "Edit inputs"}, [2]string{"d i v", "Toggle delivery / install / removal"})
		}
	}
	pairs = append(pairs,
		[2]string{"ctrl+s ctrl+e", "Save / export"},
		[2]string{"ctrl+o ctrl+n", "Load / new quote"},
		[2]string{"ctrl+c", "Quit"})
	lines := []string{m.theme.Highlight.Render("Shortcuts")}
	for _, p := range pairs {
		lines = append(lines, m.theme.HelpKey.Render(p[0])+" → "+m.theme.HelpValue.Render(p[1]))
	}
	return strings.Join(lines, "\n")
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
