// Package events defines every message exchanged between the renderer and the
// controller. Kind is closed: adding a kind means adding a payload type here
// and a handler in the controller's dispatch table.
package events

import (
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

// Kind identifies an event.
type Kind int

const (
	// Inputs, consumed by the controller.
	NumericKeyPressed Kind = iota
	InsertRowRequested
	DeleteRowRequested
	ClearRowRequested
	DeleteMultipleRowsRequested
	ActiveCellMoved
	CycleTypeRequested
	CalculateRequested
	MultiSelectToggled
	MultiTypeSetRequested
	SaveRequested
	ExportRequested
	ResetRequested
	TableCellClicked
	SequenceCellClicked
	FocusModeRequested
	PanelInputEntered
	PanelInputBlurred
	LocationInputEntered
	LFEditRequested
	LFDeleteRequested
	K3EditModeToggled
	BatchCycleRequested
	DualChainModeChanged
	ChainEntered
	DriveModeChanged
	AccessoryCounterChanged
	NavigatedToDetailView
	NavigatedToQuickQuote
	TabSwitched
	LoadRequested
	LoadDirectlyChosen
	FileLoaded
	CostDiscountEntered
	RemoteDistributed
	F2TabActivated
	F2ValueChanged
	F2InputEntered
	FeeExclusionToggled

	// Outputs, published by the controller.
	StateChanged
	Notification
	FocusRequested
	LoadConfirmationRequested
	FileLoadTriggered
	FileReady
	ConfirmationRequested

	numKinds
)

// NumKinds is the size of a table indexed by Kind.
const NumKinds = int(numKinds)

// firstOutput marks the start of the output kinds.
const firstOutput = StateChanged

var kindNames = [...]string{
	NumericKeyPressed:           "numeric-key-pressed",
	InsertRowRequested:          "insert-row-requested",
	DeleteRowRequested:          "delete-row-requested",
	ClearRowRequested:           "clear-row-requested",
	DeleteMultipleRowsRequested: "delete-multiple-rows-requested",
	ActiveCellMoved:             "active-cell-moved",
	CycleTypeRequested:          "cycle-type-requested",
	CalculateRequested:          "calculate-requested",
	MultiSelectToggled:          "multi-select-toggled",
	MultiTypeSetRequested:       "multi-type-set-requested",
	SaveRequested:               "save-requested",
	ExportRequested:             "export-requested",
	ResetRequested:              "reset-requested",
	TableCellClicked:            "table-cell-clicked",
	SequenceCellClicked:         "sequence-cell-clicked",
	FocusModeRequested:          "focus-mode-requested",
	PanelInputEntered:           "panel-input-entered",
	PanelInputBlurred:           "panel-input-blurred",
	LocationInputEntered:        "location-input-entered",
	LFEditRequested:             "lf-edit-requested",
	LFDeleteRequested:           "lf-delete-requested",
	K3EditModeToggled:           "k3-edit-mode-toggled",
	BatchCycleRequested:         "batch-cycle-requested",
	DualChainModeChanged:        "dual-chain-mode-changed",
	ChainEntered:                "chain-entered",
	DriveModeChanged:            "drive-mode-changed",
	AccessoryCounterChanged:     "accessory-counter-changed",
	NavigatedToDetailView:       "navigated-to-detail-view",
	NavigatedToQuickQuote:       "navigated-to-quick-quote",
	TabSwitched:                 "tab-switched",
	LoadRequested:               "load-requested",
	LoadDirectlyChosen:          "load-directly-chosen",
	FileLoaded:                  "file-loaded",
	CostDiscountEntered:         "cost-discount-entered",
	RemoteDistributed:           "remote-distributed",
	F2TabActivated:              "f2-tab-activated",
	F2ValueChanged:              "f2-value-changed",
	F2InputEntered:              "f2-input-entered",
	FeeExclusionToggled:         "fee-exclusion-toggled",
	StateChanged:                "state-changed",
	Notification:                "notification",
	FocusRequested:              "focus-requested",
	LoadConfirmationRequested:   "load-confirmation-requested",
	FileLoadTriggered:           "file-load-triggered",
	FileReady:                   "file-ready",
	ConfirmationRequested:       "confirmation-requested",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// IsInput reports whether the controller consumes k.
func (k Kind) IsInput() bool { return k >= 0 && k < firstOutput }

// All lists every kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Inputs lists the kinds the controller consumes.
func Inputs() []Kind {
	return All()[:firstOutput]
}

// Event is implemented only by the payload types of this package.
type Event interface {
	Kind() Kind
	event()
}

type sealed struct{}

func (sealed) event() {}

// Direction of an active-cell move.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Notification levels.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Keypad keys beyond the digits.
const (
	KeyEnter     = "ENT"
	KeyDelete    = "DEL"
	KeyClear     = "CLR"
	KeyBackspace = "BS"
)

type (
	// NumericKey carries one keypad press: a digit or one of the Key* names.
	NumericKey struct {
		sealed
		Key string
	}
	InsertRow          struct{ sealed }
	DeleteRow          struct{ sealed }
	ClearRow           struct{ sealed }
	DeleteMultipleRows struct{ sealed }
	MoveActiveCell     struct {
		sealed
		Direction Direction
	}
	CycleType         struct{ sealed }
	Calculate         struct{ sealed }
	ToggleMultiSelect struct{ sealed }
	SetMultiType      struct {
		sealed
		Type string
	}
	Save   struct{ sealed }
	Export struct {
		sealed
		Format string
	}
	Reset           struct{ sealed }
	ClickTableCell  struct {
		sealed
		Row    int
		Column quote.Field
	}
	ClickSequenceCell struct {
		sealed
		Row int
	}
	RequestFocusMode struct {
		sealed
		Column quote.Field
		// Overwrite confirms discarding light-filter settings on entry.
		Overwrite bool
	}
	// PanelInput is shared by PanelInputEntered and PanelInputBlurred.
	PanelInput struct {
		sealed
		Blurred bool
		Type    string
		Field   quote.Field
		Value   string
		// Last marks the final enabled input of the panel.
		Last bool
	}
	EnterLocation struct {
		sealed
		Value string
	}
	RequestLFEdit     struct{ sealed }
	RequestLFDelete   struct{ sealed }
	ToggleK3EditMode  struct{ sealed }
	RequestBatchCycle struct {
		sealed
		Column quote.Field
	}
	ChangeDualChainMode struct {
		sealed
		Mode uistate.DualChainMode
	}
	EnterChain struct {
		sealed
		Value string
	}
	ChangeDriveMode struct {
		sealed
		Mode uistate.DriveMode
	}
	ChangeAccessoryCounter struct {
		sealed
		Accessory quote.AccessoryKind
		Delta     int
	}
	NavigateToDetailView struct{ sealed }
	NavigateToQuickQuote struct{ sealed }
	SwitchTab            struct {
		sealed
		Tab uistate.Tab
	}
	RequestLoad       struct{ sealed }
	ChooseLoadDirectly struct{ sealed }
	LoadFile           struct {
		sealed
		FileName string
		Content  []byte
	}
	EnterCostDiscount struct {
		sealed
		Percentage string
	}
	DistributeRemotes struct {
		sealed
		OneChannel     int
		SixteenChannel int
	}
	ActivateF2   struct{ sealed }
	ChangeF2Value struct {
		sealed
		ID    uistate.F2Input
		Value string
	}
	EnterF2Input struct {
		sealed
		ID uistate.F2Input
	}
	ToggleFeeExclusion struct {
		sealed
		Fee uistate.Fee
	}

	// State is the merged snapshot published after every handled input.
	State struct {
		sealed
		UI       uistate.State
		Document quote.Document
	}
	Notice struct {
		sealed
		Message string
		Level   Level
	}
	RequestFocus struct {
		sealed
		ElementID string
	}
	ConfirmLoad     struct{ sealed }
	TriggerFileLoad struct{ sealed }
	// File is an encoded export ready to be written by the renderer.
	File struct {
		sealed
		FileName    string
		ContentType string
		Data        []byte
	}
	// Confirm asks the operator a yes/no question. On yes the renderer
	// publishes OnConfirm.
	Confirm struct {
		sealed
		Message   string
		OnConfirm Event
	}
)

func (NumericKey) Kind() Kind             { return NumericKeyPressed }
func (InsertRow) Kind() Kind              { return InsertRowRequested }
func (DeleteRow) Kind() Kind              { return DeleteRowRequested }
func (ClearRow) Kind() Kind               { return ClearRowRequested }
func (DeleteMultipleRows) Kind() Kind     { return DeleteMultipleRowsRequested }
func (MoveActiveCell) Kind() Kind         { return ActiveCellMoved }
func (CycleType) Kind() Kind              { return CycleTypeRequested }
func (Calculate) Kind() Kind              { return CalculateRequested }
func (ToggleMultiSelect) Kind() Kind      { return MultiSelectToggled }
func (SetMultiType) Kind() Kind           { return MultiTypeSetRequested }
func (Save) Kind() Kind                   { return SaveRequested }
func (Export) Kind() Kind                 { return ExportRequested }
func (Reset) Kind() Kind                  { return ResetRequested }
func (ClickTableCell) Kind() Kind         { return TableCellClicked }
func (ClickSequenceCell) Kind() Kind      { return SequenceCellClicked }
func (RequestFocusMode) Kind() Kind       { return FocusModeRequested }
func (EnterLocation) Kind() Kind          { return LocationInputEntered }
func (RequestLFEdit) Kind() Kind          { return LFEditRequested }
func (RequestLFDelete) Kind() Kind        { return LFDeleteRequested }
func (ToggleK3EditMode) Kind() Kind       { return K3EditModeToggled }
func (RequestBatchCycle) Kind() Kind      { return BatchCycleRequested }
func (ChangeDualChainMode) Kind() Kind    { return DualChainModeChanged }
func (EnterChain) Kind() Kind             { return ChainEntered }
func (ChangeDriveMode) Kind() Kind        { return DriveModeChanged }
func (ChangeAccessoryCounter) Kind() Kind { return AccessoryCounterChanged }
func (NavigateToDetailView) Kind() Kind   { return NavigatedToDetailView }
func (NavigateToQuickQuote) Kind() Kind   { return NavigatedToQuickQuote }
func (SwitchTab) Kind() Kind              { return TabSwitched }
func (RequestLoad) Kind() Kind            { return LoadRequested }
func (ChooseLoadDirectly) Kind() Kind     { return LoadDirectlyChosen }
func (LoadFile) Kind() Kind               { return FileLoaded }
func (EnterCostDiscount) Kind() Kind      { return CostDiscountEntered }
func (DistributeRemotes) Kind() Kind      { return RemoteDistributed }
func (ActivateF2) Kind() Kind             { return F2TabActivated }
func (ChangeF2Value) Kind() Kind          { return F2ValueChanged }
func (EnterF2Input) Kind() Kind           { return F2InputEntered }
func (ToggleFeeExclusion) Kind() Kind     { return FeeExclusionToggled }
func (State) Kind() Kind                  { return StateChanged }
func (Notice) Kind() Kind                 { return Notification }
func (RequestFocus) Kind() Kind           { return FocusRequested }
func (ConfirmLoad) Kind() Kind            { return LoadConfirmationRequested }
func (TriggerFileLoad) Kind() Kind        { return FileLoadTriggered }
func (File) Kind() Kind                   { return FileReady }
func (Confirm) Kind() Kind                { return ConfirmationRequested }

func (p PanelInput) Kind() Kind {
	if p.Blurred {
		return PanelInputBlurred
	}
	return PanelInputEntered
}
