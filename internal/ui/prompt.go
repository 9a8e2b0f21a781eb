package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptLocation
	promptChain
	promptF2
	promptPanel
	promptMultiType
	promptExport
	promptLoadPath
	promptRemotes
	promptDiscount
)

// panelField is one input of the K2 fabric panel.
type panelField struct {
	Type  string
	Field quote.Field
}

type prompt struct {
	kind  promptKind
	label string
	input textinput.Model

	// row is the table row a location prompt edits.
	row int
	f2  uistate.F2Input

	panel []panelField
	index int
}

func (p prompt) active() bool { return p.kind != promptNone }

func (m *model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64
	input.SetValue(value)
	input.CursorEnd()
	m.prompt = prompt{kind: kind, label: label, input: input, row: -1}
	return m.prompt.input.Focus()
}

func (m *model) openF2Prompt(id uistate.F2Input) tea.Cmd {
	value := ""
	if v := m.state.UI.F2.Input(id); v != nil {
		value = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	cmd := m.openPrompt(promptF2, f2Labels[id], value)
	m.prompt.f2 = id
	return cmd
}

// openPanel walks the fabric panel inputs: one fabric and colour pair per
// fabric type on the quote, or the light-filter pair while selecting rows.
func (m *model) openPanel() tea.Cmd {
	var fields []panelField
	if m.state.UI.ActiveEditMode == uistate.EditK2LFSelect {
		fields = []panelField{{Type: "LF", Field: quote.FieldFabric}, {Type: "LF", Field: quote.FieldColor}}
	} else {
		for _, t := range m.fabricTypesInUse() {
			fields = append(fields, panelField{Type: t, Field: quote.FieldFabric}, panelField{Type: t, Field: quote.FieldColor})
		}
	}
	if len(fields) == 0 {
		m.errMessage = "No fabric types on this quote yet."
		return nil
	}
	cmd := m.openPrompt(promptPanel, "", "")
	m.prompt.panel = fields
	m.preparePanelField()
	return cmd
}

func (m *model) preparePanelField() {
	f := m.prompt.panel[m.prompt.index]
	m.prompt.label = fmt.Sprintf("%s %s", f.Type, f.Field)
	m.prompt.input.SetValue(m.panelValue(f))
	m.prompt.input.CursorEnd()
}

func (m *model) panelValue(f panelField) string {
	if f.Type == "LF" {
		if f.Field == quote.FieldFabric {
			return m.state.UI.LFFabricInput
		}
		return m.state.UI.LFColorInput
	}
	for _, item := range m.items() {
		if item.FabricType == f.Type {
			v, _ := item.Value(f.Field).(string)
			return v
		}
	}
	return ""
}

func (m *model) fabricTypesInUse() []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range m.items() {
		if item.FabricType == "" || seen[item.FabricType] {
			continue
		}
		seen[item.FabricType] = true
		out = append(out, item.FabricType)
	}
	return out
}

func (m *model) closePrompt() {
	m.prompt.input.Blur()
	m.prompt = prompt{}
}

// syncPrompt keeps the controller-driven prompts in step with the state:
// location entry follows the target row, chain entry closes once stored.
func (m *model) syncPrompt() tea.Cmd {
	ui := m.state.UI
	switch {
	case ui.ActiveEditMode == uistate.EditK1 && ui.TargetCell != nil:
		if m.prompt.kind == promptLocation && m.prompt.row == ui.TargetCell.Row {
			return nil
		}
		cmd := m.openPrompt(promptLocation, fmt.Sprintf("Location for row %d", ui.TargetCell.Row+1), ui.LocationInput)
		m.prompt.row = ui.TargetCell.Row
		return cmd
	case m.prompt.kind == promptLocation:
		m.closePrompt()
	case m.prompt.kind == promptChain && (ui.TargetCell == nil || ui.DualChainMode != uistate.ModeChain):
		m.closePrompt()
	case m.prompt.kind == promptF2 && (ui.CurrentView != uistate.ViewDetailConfig || ui.ActiveTab != uistate.TabF2):
		m.closePrompt()
	case m.prompt.kind == promptPanel && !k2Editing(ui.ActiveEditMode):
		m.closePrompt()
	}
	return nil
}

func k2Editing(mode uistate.EditMode) bool {
	return mode == uistate.EditK2 || mode == uistate.EditK2LFSelect
}

func (m *model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancelPrompt()
	case tea.KeyEnter:
		value := strings.TrimSpace(m.prompt.input.Value())
		if isBackCommand(value) {
			return m.cancelPrompt()
		}
		return m.submitPrompt(value)
	}
	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	cmds = append(cmds, cmd)
	return batchCmds(cmds)
}

func (m *model) cancelPrompt() tea.Cmd {
	p := m.prompt
	m.closePrompt()
	switch p.kind {
	case promptPanel:
		f := p.panel[p.index]
		return m.publish(events.PanelInput{Blurred: true, Type: f.Type, Field: f.Field, Value: p.input.Value()})
	case promptLocation:
		return m.publish(events.RequestFocusMode{Column: quote.FieldLocation})
	}
	return nil
}

func (m *model) submitPrompt(value string) tea.Cmd {
	p := m.prompt
	switch p.kind {
	case promptLocation:
		return m.publish(events.EnterLocation{Value: value})
	case promptChain:
		return m.publish(events.EnterChain{Value: value})
	case promptF2:
		m.closePrompt()
		return m.publish(events.ChangeF2Value{ID: p.f2, Value: value}, events.EnterF2Input{ID: p.f2})
	case promptPanel:
		f := p.panel[p.index]
		last := p.index == len(p.panel)-1
		if last {
			m.closePrompt()
		} else {
			m.prompt.index++
			m.preparePanelField()
		}
		return m.publish(events.PanelInput{Type: f.Type, Field: f.Field, Value: value, Last: last})
	case promptMultiType:
		m.closePrompt()
		return m.publish(events.SetMultiType{Type: value})
	case promptExport:
		m.closePrompt()
		return m.publish(events.Export{Format: strings.ToLower(value)})
	case promptLoadPath:
		m.closePrompt()
		return m.loadPath(value)
	case promptRemotes:
		one, sixteen, err := parsePair(value)
		if err != nil {
			m.resetMessages()
			m.errMessage = "Enter two numbers, e.g. 2 1"
			return nil
		}
		m.closePrompt()
		return m.publish(events.DistributeRemotes{OneChannel: one, SixteenChannel: sixteen})
	case promptDiscount:
		m.closePrompt()
		return m.publish(events.EnterCostDiscount{Percentage: value})
	}
	m.closePrompt()
	return nil
}

func parsePair(value string) (int, int, error) {
	parts := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want two numbers, got %d", len(parts))
	}
	a, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func isBackCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "/" || v == "back"
}

var f2Labels = map[uistate.F2Input]string{
	uistate.F2WifiQty:     "WiFi qty",
	uistate.F2DeliveryQty: "Delivery qty",
	uistate.F2InstallQty:  "Install qty",
	uistate.F2RemovalQty:  "Removal qty",
	uistate.F2MulTimes:    "Multiplier",
	uistate.F2Discount:    "Discount %",
}
