package controller

import (
	"fmt"
	"strings"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/uistate"
)

// lightFilterPanel is the panel input type of the light-filter row.
const lightFilterPanel = "LF"

// toggleK2 enters fabric and colour editing, asking first when eligible rows
// already carry light-filter settings that would be overwritten.
func (c *Controller) toggleK2(overwrite bool) effect {
	if c.ui.Peek().ActiveEditMode == uistate.EditK2 {
		return c.exitK2()
	}
	conflicts := c.lfConflicts()
	if len(conflicts) > 0 && !overwrite {
		types := c.engine.Catalog().LightFilterTypes
		c.emit(events.Confirm{
			Message: fmt.Sprintf("Some eligible items (%s) have Light-Filter settings. Continuing will overwrite this data. Proceed?",
				strings.Join(types, ", ")),
			OnConfirm: events.RequestFocusMode{Column: quote.FieldFabric, Overwrite: true},
		})
		return 0
	}
	if overwrite {
		c.ui.RemoveLFModified(conflicts...)
	}
	c.ui.SetActiveEditMode(uistate.EditK2)
	c.ui.ClearActiveCell()
	return changed
}

// lfConflicts returns the ids of eligible rows carrying light-filter settings.
func (c *Controller) lfConflicts() []string {
	st := c.ui.Peek()
	var ids []string
	for _, item := range c.quotes.Items() {
		if c.engine.Catalog().IsLightFilterEligible(item.FabricType) && st.IsLFModified(item.ItemID) {
			ids = append(ids, item.ItemID)
		}
	}
	return ids
}

func (c *Controller) exitK2() effect {
	c.ui.SetActiveEditMode(uistate.EditNone)
	c.ui.ClearRowSelection()
	c.ui.ClearLFSelection()
	c.ui.SetLFInputs("", "")
	return changed
}

// panelInput applies a K2 panel value. Per-type inputs rewrite every row of
// that type; the light-filter inputs apply to the selected rows once both
// fabric and colour are filled in.
func (c *Controller) panelInput(e events.PanelInput) effect {
	if e.Field != quote.FieldFabric && e.Field != quote.FieldColor {
		return 0
	}
	fx := changed
	if e.Type == lightFilterPanel {
		st := c.ui.Peek()
		fabric, color := st.LFFabricInput, st.LFColorInput
		if e.Field == quote.FieldFabric {
			fabric = strings.TrimSpace(e.Value)
		} else {
			color = strings.TrimSpace(e.Value)
		}
		c.ui.SetLFInputs(fabric, color)
		if e.Blurred || e.Last {
			c.applyLF()
		}
	} else if e.Type != "" {
		c.quotes.BatchUpdatePropertyByType(e.Type, e.Field, e.Value)
	}
	if !e.Blurred && e.Last {
		fx |= c.exitK2()
	}
	return fx
}

func (c *Controller) applyLF() {
	st := c.ui.Peek()
	if st.LFFabricInput == "" || st.LFColorInput == "" || len(st.LFSelected) == 0 {
		return
	}
	c.quotes.BatchUpdateLFProperties(st.LFSelected, st.LFFabricInput, st.LFColorInput)
	c.ui.AddLFModified(c.itemIDs(st.LFSelected)...)
}

func (c *Controller) lfEdit(events.RequestLFEdit) effect {
	if c.ui.Peek().ActiveEditMode == uistate.EditK2LFSelect {
		return c.exitK2()
	}
	c.ui.SetActiveEditMode(uistate.EditK2LFSelect)
	c.ui.ClearLFSelection()
	c.notify(fmt.Sprintf("Please select items with TYPE %s to edit.", c.eligibleList("'")))
	return changed
}

func (c *Controller) lfDelete(events.RequestLFDelete) effect {
	st := c.ui.Peek()
	if st.ActiveEditMode != uistate.EditK2LFDeleteSelect {
		c.ui.SetActiveEditMode(uistate.EditK2LFDeleteSelect)
		c.ui.ClearLFSelection()
		c.notify("Please select the roller blinds for which you want to cancel the Light-Filter fabric setting. After selection, click the LF-Del button again.")
		return changed
	}
	if len(st.LFSelected) > 0 {
		ids := c.itemIDs(st.LFSelected)
		c.quotes.RemoveLFProperties(st.LFSelected)
		c.ui.RemoveLFModified(ids...)
		c.notify("Light-Filter settings have been cleared.")
	}
	return c.exitK2()
}

func (c *Controller) lfSequenceClicked(row int) effect {
	st := c.ui.Peek()
	item, ok := c.quotes.Item(row)
	if !ok {
		return 0
	}
	switch st.ActiveEditMode {
	case uistate.EditK2LFDeleteSelect:
		if !st.IsLFModified(item.ItemID) {
			c.notifyError("Only items with a Light-Filter setting (pink background) can be selected for deletion.")
			return 0
		}
	case uistate.EditK2LFSelect:
		if !c.engine.Catalog().IsLightFilterEligible(item.FabricType) {
			c.notifyError(fmt.Sprintf("Only items with TYPE %s can be selected.", c.eligibleList(`"`)))
			return 0
		}
	}
	c.ui.ToggleLFSelection(row)
	return changed
}

// eligibleList renders the light-filter types as `"B2", "B3", or "B4"`.
func (c *Controller) eligibleList(quoteMark string) string {
	types := c.engine.Catalog().LightFilterTypes
	quoted := make([]string, len(types))
	for i, t := range types {
		quoted[i] = quoteMark + t + quoteMark
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

func (c *Controller) itemIDs(rows []int) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if item, ok := c.quotes.Item(r); ok {
			ids = append(ids, item.ItemID)
		}
	}
	return ids
}
