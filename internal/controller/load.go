package controller

import (
	"errors"
	"path/filepath"

	"quoteterm/internal/events"
	"quoteterm/internal/quote"
	"quoteterm/internal/quotefile"
)

func (c *Controller) requestLoad(events.RequestLoad) effect {
	if c.quotes.HasData() {
		c.emit(events.ConfirmLoad{})
	} else {
		c.emit(events.TriggerFileLoad{})
	}
	return 0
}

func (c *Controller) loadDirectly(events.ChooseLoadDirectly) effect {
	c.emit(events.TriggerFileLoad{})
	return 0
}

// fileLoaded replaces the document with the parsed file. A failed load leaves
// everything untouched.
func (c *Controller) fileLoaded(e events.LoadFile) effect {
	newItem := quote.NewItem
	if s, ok := c.strategy(); ok {
		newItem = s.NewItem
	}
	loaded, err := quotefile.Parse(e.FileName, e.Content, newItem)
	if err == nil && !c.quotes.Replace(loaded.Document) {
		err = quotefile.ErrInvalidFormat
	}
	if err != nil {
		c.notifyError(loadErrorMessage(e.FileName, err))
		return 0
	}
	c.resetUI()
	c.ui.SetSumOutdated(true)
	c.notify(loaded.Message(e.FileName))
	return changed
}

func loadErrorMessage(fileName string, err error) string {
	switch {
	case errors.Is(err, quotefile.ErrUnsupportedFileType):
		return "Unsupported file type: " + filepath.Ext(fileName)
	case errors.Is(err, quotefile.ErrInvalidFormat):
		return "File content is not in a valid quote format."
	default:
		return "Error loading file: " + err.Error()
	}
}
