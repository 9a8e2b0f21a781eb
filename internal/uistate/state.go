// Package uistate holds the ephemeral view state of a quoting session. None of
// it is persisted with the quote; Reset restores the defaults.
package uistate

import (
	"sort"

	"quoteterm/internal/quote"
)

// View is the top-level screen.
type View string

const (
	ViewQuickQuote   View = "QUICK_QUOTE"
	ViewDetailConfig View = "DETAIL_CONFIG"
)

// Tab is a detail-config panel.
type Tab string

const (
	TabK1 Tab = "k1"
	TabK2 Tab = "k2"
	TabK3 Tab = "k3"
	TabK4 Tab = "k4"
	TabK5 Tab = "k5"
	TabF1 Tab = "f1"
	TabF2 Tab = "f2"
)

// Tabs lists the detail-config panels in display order.
func Tabs() []Tab {
	return []Tab{TabK1, TabK2, TabK3, TabK4, TabK5, TabF1, TabF2}
}

// EditMode is the active left-panel edit mode.
type EditMode string

const (
	EditNone             EditMode = ""
	EditK1               EditMode = "K1"
	EditK2               EditMode = "K2"
	EditK2LFSelect       EditMode = "K2_LF_SELECT"
	EditK2LFDeleteSelect EditMode = "K2_LF_DELETE_SELECT"
	EditK3               EditMode = "K3"
)

// DualChainMode is the K5 sub-mode.
type DualChainMode string

const (
	DualChainOff DualChainMode = ""
	ModeDual     DualChainMode = "dual"
	ModeChain    DualChainMode = "chain"
)

// DriveMode is the K4 sub-mode.
type DriveMode string

const (
	DriveOff     DriveMode = ""
	DriveWinder  DriveMode = "winder"
	DriveMotor   DriveMode = "motor"
	DriveRemote  DriveMode = "remote"
	DriveCharger DriveMode = "charger"
	DriveCord    DriveMode = "cord"
)

// Accessory maps a drive mode to the accessory it edits.
func (m DriveMode) Accessory() quote.AccessoryKind {
	return quote.AccessoryKind(m)
}

// Cell addresses one table cell.
type Cell struct {
	Row    int
	Column quote.Field
}

// NoCell is the active cell while nothing is focused.
var NoCell = Cell{Row: -1}

// State is a point-in-time view of the UI store.
type State struct {
	CurrentView    View
	ActiveTab      Tab
	VisibleColumns []quote.Field

	InputValue    string
	InputMode     quote.Field
	ActiveCell    Cell
	SelectedRow   *int
	MultiSelect   bool
	MultiSelected []int

	ActiveEditMode EditMode
	TargetCell     *Cell
	LocationInput  string

	LFSelected    []int
	LFModified    []string
	LFFabricInput string
	LFColorInput  string

	DualChainMode  DualChainMode
	DualChainInput string

	DriveMode DriveMode

	F1 F1
	F2 F2

	SumOutdated        bool
	WelcomeDialogShown bool
}

// Clone returns a copy sharing no slices or pointers with s.
func (s State) Clone() State {
	out := s
	out.VisibleColumns = append([]quote.Field(nil), s.VisibleColumns...)
	out.MultiSelected = append([]int(nil), s.MultiSelected...)
	out.LFSelected = append([]int(nil), s.LFSelected...)
	out.LFModified = append([]string(nil), s.LFModified...)
	if s.SelectedRow != nil {
		row := *s.SelectedRow
		out.SelectedRow = &row
	}
	if s.TargetCell != nil {
		cell := *s.TargetCell
		out.TargetCell = &cell
	}
	out.F1 = s.F1.clone()
	out.F2 = s.F2.clone()
	return out
}

// IsMultiSelected reports whether row is in the multi-select set.
func (s State) IsMultiSelected(row int) bool {
	return contains(s.MultiSelected, row)
}

// IsLFSelected reports whether row is in the light-filter selection.
func (s State) IsLFSelected(row int) bool {
	return contains(s.LFSelected, row)
}

// IsLFModified reports whether the item carries light-filter settings.
func (s State) IsLFModified(itemID string) bool {
	for _, id := range s.LFModified {
		if id == itemID {
			return true
		}
	}
	return false
}

// QuickQuoteColumns are shown outside the detail view.
func QuickQuoteColumns() []quote.Field {
	return []quote.Field{quote.FieldWidth, quote.FieldHeight, quote.FieldFabricType, quote.FieldLinePrice}
}

// ColumnsForTab returns the table columns shown with tab.
func ColumnsForTab(tab Tab) []quote.Field {
	switch tab {
	case TabK1:
		return []quote.Field{quote.FieldFabricType, quote.FieldLocation}
	case TabK2:
		return []quote.Field{quote.FieldFabricType, quote.FieldFabric, quote.FieldColor}
	case TabK3:
		return []quote.Field{quote.FieldFabricType, quote.FieldLocation, quote.FieldOver, quote.FieldOI, quote.FieldLR}
	case TabK4:
		return []quote.Field{quote.FieldFabricType, quote.FieldLocation, quote.FieldWinder, quote.FieldMotor}
	case TabK5:
		return []quote.Field{quote.FieldFabricType, quote.FieldLocation, quote.FieldDual, quote.FieldChain}
	default:
		return []quote.Field{quote.FieldWidth, quote.FieldHeight, quote.FieldFabricType, quote.FieldLinePrice}
	}
}

// Default returns the initial UI state.
func Default() State {
	return State{
		CurrentView:    ViewQuickQuote,
		ActiveTab:      TabK1,
		VisibleColumns: QuickQuoteColumns(),
		InputMode:      quote.FieldWidth,
		ActiveCell:     Cell{Row: 0, Column: quote.FieldWidth},
	}
}

func contains(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

func toggle(set []int, v int) []int {
	for i, x := range set {
		if x == v {
			return append(set[:i:i], set[i+1:]...)
		}
	}
	out := append(set, v)
	sort.Ints(out)
	return out
}
