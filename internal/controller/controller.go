// Package controller turns input events into store mutations, runs the
// recomputation cascade and publishes one merged snapshot per handled input.
package controller

import (
	"log"
	"time"

	"quoteterm/internal/bus"
	"quoteterm/internal/events"
	"quoteterm/internal/pricing"
	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
	"quoteterm/internal/uistate"
)

// Bus is the event bus the controller listens and publishes on.
type Bus = bus.Bus[events.Kind, events.Event]

// effect tells the cascade what a handler changed.
type effect uint8

const (
	// changed means state was mutated and a snapshot must be published.
	changed effect = 1 << iota
	// repriced means a price-affecting field changed.
	repriced
	// accessoriesChanged means accessory inputs changed without a price edit.
	accessoriesChanged
)

type handler func(c *Controller, ev events.Event) effect

// on adapts a typed handler to the dispatch table.
func on[E events.Event](fn func(*Controller, E) effect) handler {
	return func(c *Controller, ev events.Event) effect {
		e, ok := ev.(E)
		if !ok {
			c.logger.Printf("controller: %s carried %T", ev.Kind(), ev)
			return 0
		}
		return fn(c, e)
	}
}

// detailOnly lists the kinds dropped outside the detail view.
var detailOnly = map[events.Kind]bool{
	events.FocusModeRequested:      true,
	events.PanelInputEntered:       true,
	events.PanelInputBlurred:       true,
	events.LocationInputEntered:    true,
	events.LFEditRequested:         true,
	events.LFDeleteRequested:       true,
	events.K3EditModeToggled:       true,
	events.BatchCycleRequested:     true,
	events.DualChainModeChanged:    true,
	events.ChainEntered:            true,
	events.DriveModeChanged:        true,
	events.AccessoryCounterChanged: true,
	events.TabSwitched:             true,
}

// Options wires a controller.
type Options struct {
	Bus      *Bus
	Quotes   *quote.Store
	UI       *uistate.Store
	Engine   *pricing.Engine
	Factory  *pricing.Factory
	Logger   *log.Logger
	Now      func() time.Time
	Operator string
}

// Controller owns the orchestration of one quoting session.
type Controller struct {
	bus      *Bus
	quotes   *quote.Store
	ui       *uistate.Store
	engine   *pricing.Engine
	factory  *pricing.Factory
	logger   *log.Logger
	now      func() time.Time
	operator string

	handlers [events.NumKinds]handler
	pending  []events.Event

	// dualReported is set once a broken dual pairing has been notified.
	dualReported bool
}

// New builds a controller and subscribes it to every input kind on the bus.
func New(opts Options) *Controller {
	c := &Controller{
		bus:      opts.Bus,
		quotes:   opts.Quotes,
		ui:       opts.UI,
		engine:   opts.Engine,
		factory:  opts.Factory,
		logger:   opts.Logger,
		now:      opts.Now,
		operator: opts.Operator,
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.handlers = routes()
	for _, k := range events.Inputs() {
		c.bus.Subscribe(k, c.Dispatch)
	}
	return c
}

func routes() [events.NumKinds]handler {
	return [events.NumKinds]handler{
		events.NumericKeyPressed:           on((*Controller).numericKey),
		events.InsertRowRequested:          on((*Controller).insertRow),
		events.DeleteRowRequested:          on((*Controller).deleteRow),
		events.ClearRowRequested:           on((*Controller).clearRow),
		events.DeleteMultipleRowsRequested: on((*Controller).deleteMultipleRows),
		events.ActiveCellMoved:             on((*Controller).moveActiveCell),
		events.CycleTypeRequested:          on((*Controller).cycleType),
		events.CalculateRequested:          on((*Controller).calculate),
		events.MultiSelectToggled:          on((*Controller).toggleMultiSelect),
		events.MultiTypeSetRequested:       on((*Controller).setMultiType),
		events.SaveRequested:               on((*Controller).save),
		events.ExportRequested:             on((*Controller).export),
		events.ResetRequested:              on((*Controller).reset),
		events.TableCellClicked:            on((*Controller).tableCellClicked),
		events.SequenceCellClicked:         on((*Controller).sequenceCellClicked),
		events.FocusModeRequested:          on((*Controller).focusMode),
		events.PanelInputEntered:           on((*Controller).panelInput),
		events.PanelInputBlurred:           on((*Controller).panelInput),
		events.LocationInputEntered:        on((*Controller).enterLocation),
		events.LFEditRequested:             on((*Controller).lfEdit),
		events.LFDeleteRequested:           on((*Controller).lfDelete),
		events.K3EditModeToggled:           on((*Controller).toggleK3),
		events.BatchCycleRequested:         on((*Controller).batchCycle),
		events.DualChainModeChanged:        on((*Controller).dualChainMode),
		events.ChainEntered:                on((*Controller).enterChain),
		events.DriveModeChanged:            on((*Controller).driveMode),
		events.AccessoryCounterChanged:     on((*Controller).accessoryCounter),
		events.NavigatedToDetailView:       on((*Controller).navigateToDetail),
		events.NavigatedToQuickQuote:       on((*Controller).navigateToQuickQuote),
		events.TabSwitched:                 on((*Controller).switchTab),
		events.LoadRequested:               on((*Controller).requestLoad),
		events.LoadDirectlyChosen:          on((*Controller).loadDirectly),
		events.FileLoaded:                  on((*Controller).fileLoaded),
		events.CostDiscountEntered:         on((*Controller).costDiscount),
		events.RemoteDistributed:           on((*Controller).distributeRemotes),
		events.F2TabActivated:              on((*Controller).activateF2),
		events.F2ValueChanged:              on((*Controller).f2Value),
		events.F2InputEntered:              on((*Controller).f2Enter),
		events.FeeExclusionToggled:         on((*Controller).toggleFee),
	}
}

// Dispatch handles one input event to completion: mutation, cascade, a single
// StateChanged publish, then any notices the handler queued.
func (c *Controller) Dispatch(ev events.Event) {
	if ev == nil {
		return
	}
	kind := ev.Kind()
	if !kind.IsInput() {
		return
	}
	if detailOnly[kind] && c.ui.Peek().CurrentView != uistate.ViewDetailConfig {
		return
	}
	h := c.handlers[kind]
	if h == nil {
		c.logger.Printf("controller: no handler for %s", kind)
		return
	}
	fx := h(c, ev)
	c.cascade(fx)
	c.flush()
}

// PublishState publishes the current snapshot, e.g. for the first render.
func (c *Controller) PublishState() {
	c.publishState()
}

// Snapshot returns the merged state observers receive.
func (c *Controller) Snapshot() events.State {
	return events.State{UI: c.ui.State(), Document: c.quotes.Snapshot()}
}

func (c *Controller) cascade(fx effect) {
	if fx == 0 {
		return
	}
	s, ok := c.strategy()
	if ok {
		if fx&repriced != 0 {
			c.reprice(s)
		}
		if fx&(repriced|accessoriesChanged) != 0 {
			c.checkDual(c.recalculateAccessories(s))
		}
	}
	st := c.ui.Peek()
	if st.CurrentView == uistate.ViewDetailConfig {
		switch st.ActiveTab {
		case uistate.TabF1:
			c.ui.SetF1Lines(c.engine.F1Lines(c.quotes.Snapshot(), st.F1))
		case uistate.TabF2:
			c.ui.SetF2Totals(c.engine.FinancialSummary(c.quotes.Snapshot(), st.F2))
		}
	}
	c.publishState()
}

// reprice runs the full calculation and returns the first row error.
func (c *Controller) reprice(s pricing.Strategy) *pricing.RowError {
	doc, rowErr := c.engine.CalculateAndSum(c.quotes.Snapshot(), s)
	c.quotes.Replace(doc)
	return rowErr
}

// recalculateAccessories refreshes the accessory block and the total. An
// invalid dual pairing leaves the dual entry as it was.
func (c *Controller) recalculateAccessories(s pricing.Strategy) error {
	doc, err := c.engine.RecalculateAccessories(c.quotes.Snapshot(), s)
	c.quotes.Replace(c.engine.RefreshTotal(doc))
	return err
}

// checkDual flags a dual pairing broken by a row edit. The dual mode
// validates on exit, so intermediate markings while it is active pass.
func (c *Controller) checkDual(err error) {
	if err == nil {
		c.dualReported = false
		return
	}
	if c.ui.Peek().DualChainMode == uistate.ModeDual {
		return
	}
	c.ui.SetSumOutdated(true)
	if !c.dualReported {
		c.notifyError(err.Error())
		c.dualReported = true
	}
}

func (c *Controller) strategy() (pricing.Strategy, bool) {
	s, err := c.factory.Strategy(c.quotes.CurrentProduct())
	if err != nil {
		c.logger.Printf("controller: %v", err)
		return nil, false
	}
	return s, true
}

func (c *Controller) publishState() {
	c.bus.Publish(events.StateChanged, c.Snapshot())
}

func (c *Controller) flush() {
	queued := c.pending
	c.pending = nil
	for _, ev := range queued {
		c.bus.Publish(ev.Kind(), ev)
	}
}

// emit queues an output for after the state publish.
func (c *Controller) emit(ev events.Event) {
	c.pending = append(c.pending, ev)
}

func (c *Controller) notify(msg string) {
	c.emit(events.Notice{Message: msg, Level: events.LevelInfo})
}

func (c *Controller) notifyError(msg string) {
	c.emit(events.Notice{Message: msg, Level: events.LevelError})
}

func (c *Controller) meta() quotefile.Meta {
	return quotefile.Meta{Operator: c.operator, Date: c.now()}
}

// resetUI restores the UI defaults but keeps the welcome dialog dismissed.
func (c *Controller) resetUI() {
	welcome := c.ui.Peek().WelcomeDialogShown
	c.ui.Reset()
	c.ui.SetWelcomeDialogShown(welcome)
}
