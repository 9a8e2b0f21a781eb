package uistate

import "quoteterm/internal/quote"

// Store owns the UI state. Only its methods mutate it.
type Store struct {
	state State
}

// NewStore returns a store holding Default().
func NewStore() *Store {
	return &Store{state: Default()}
}

// State returns a deep copy of the current state.
func (s *Store) State() State { return s.state.Clone() }

// Peek exposes the state for reading without copying.
func (s *Store) Peek() *State { return &s.state }

// Reset restores the defaults.
func (s *Store) Reset() { s.state = Default() }

func (s *Store) SetWelcomeDialogShown(shown bool) { s.state.WelcomeDialogShown = shown }

// SetActiveCell focuses a cell; the numeric input targets its column.
func (s *Store) SetActiveCell(row int, column quote.Field) {
	s.state.ActiveCell = Cell{Row: row, Column: column}
	s.state.InputMode = column
}

// ClearActiveCell removes the focus.
func (s *Store) ClearActiveCell() {
	s.state.ActiveCell = NoCell
	s.state.InputMode = ""
}

func (s *Store) SetInputValue(v string)    { s.state.InputValue = v }
func (s *Store) AppendInputValue(k string) { s.state.InputValue += k }
func (s *Store) ClearInputValue()          { s.state.InputValue = "" }

func (s *Store) DeleteLastInputChar() {
	if n := len(s.state.InputValue); n > 0 {
		s.state.InputValue = s.state.InputValue[:n-1]
	}
}

// ToggleRowSelection selects row, or clears the selection if row was selected.
func (s *Store) ToggleRowSelection(row int) {
	if s.state.SelectedRow != nil && *s.state.SelectedRow == row {
		s.state.SelectedRow = nil
		return
	}
	s.state.SelectedRow = &row
}

func (s *Store) ClearRowSelection() { s.state.SelectedRow = nil }

// ToggleMultiSelectMode flips multi-select and reports whether it is now on.
// Entering the mode seeds the set with the single selection.
func (s *Store) ToggleMultiSelectMode() bool {
	entering := !s.state.MultiSelect
	s.state.MultiSelected = nil
	if entering && s.state.SelectedRow != nil {
		s.state.MultiSelected = []int{*s.state.SelectedRow}
	}
	s.state.MultiSelect = entering
	s.state.SelectedRow = nil
	return entering
}

func (s *Store) ToggleMultiSelectSelection(row int) {
	s.state.MultiSelected = toggle(s.state.MultiSelected, row)
}

func (s *Store) ClearMultiSelectSelection() { s.state.MultiSelected = nil }

func (s *Store) SetSumOutdated(outdated bool) { s.state.SumOutdated = outdated }

func (s *Store) SetCurrentView(v View) { s.state.CurrentView = v }

func (s *Store) SetVisibleColumns(columns []quote.Field) {
	s.state.VisibleColumns = append([]quote.Field(nil), columns...)
}

func (s *Store) SetActiveTab(tab Tab) { s.state.ActiveTab = tab }

func (s *Store) SetLocationInput(v string) { s.state.LocationInput = v }

func (s *Store) SetTargetCell(cell *Cell) {
	if cell == nil {
		s.state.TargetCell = nil
		return
	}
	c := *cell
	s.state.TargetCell = &c
}

func (s *Store) SetActiveEditMode(mode EditMode) { s.state.ActiveEditMode = mode }

func (s *Store) ToggleLFSelection(row int) {
	s.state.LFSelected = toggle(s.state.LFSelected, row)
}

func (s *Store) ClearLFSelection() { s.state.LFSelected = nil }

// SetLFInputs records the light-filter fabric name and colour being typed.
func (s *Store) SetLFInputs(fabric, color string) {
	s.state.LFFabricInput = fabric
	s.state.LFColorInput = color
}

// AddLFModified marks items as carrying light-filter settings.
func (s *Store) AddLFModified(itemIDs ...string) {
	for _, id := range itemIDs {
		if !s.state.IsLFModified(id) {
			s.state.LFModified = append(s.state.LFModified, id)
		}
	}
}

// RemoveLFModified unmarks items.
func (s *Store) RemoveLFModified(itemIDs ...string) {
	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}
	kept := s.state.LFModified[:0:0]
	for _, id := range s.state.LFModified {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	s.state.LFModified = kept
}

func (s *Store) SetDualChainMode(mode DualChainMode) { s.state.DualChainMode = mode }
func (s *Store) SetDualChainInput(v string)          { s.state.DualChainInput = v }
func (s *Store) ClearDualChainInput()                { s.state.DualChainInput = "" }

func (s *Store) SetDriveMode(mode DriveMode) { s.state.DriveMode = mode }

// SetF1RemoteDistribution records how the remotes split between channels.
func (s *Store) SetF1RemoteDistribution(oneChannel, sixteenChannel int) {
	s.state.F1.Remote1Ch = oneChannel
	s.state.F1.Remote16Ch = &sixteenChannel
}

// SetF1Lines stores the priced F1 components and their total.
func (s *Store) SetF1Lines(lines []F1Line) {
	s.state.F1.Lines = append([]F1Line(nil), lines...)
	var total float64
	for _, l := range lines {
		total += l.Price
	}
	s.state.F1.Total = total
}

// SetF2Value stores one financial input; nil clears it. Unknown ids are
// ignored and reported as false.
func (s *Store) SetF2Value(id F2Input, v *float64) bool {
	p := s.state.F2.input(id)
	if p == nil {
		return false
	}
	if v != nil {
		cp := *v
		v = &cp
	}
	*p = v
	return true
}

// ToggleFeeExclusion flips the exclusion switch for fee.
func (s *Store) ToggleFeeExclusion(fee Fee) bool {
	switch fee {
	case FeeDelivery:
		s.state.F2.DeliveryFeeExcluded = !s.state.F2.DeliveryFeeExcluded
	case FeeInstall:
		s.state.F2.InstallFeeExcluded = !s.state.F2.InstallFeeExcluded
	case FeeRemoval:
		s.state.F2.RemovalFeeExcluded = !s.state.F2.RemovalFeeExcluded
	default:
		return false
	}
	return true
}

func (s *Store) SetF2Totals(t F2Totals) { s.state.F2.Totals = t }
