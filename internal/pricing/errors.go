package pricing

import (
	"errors"
	"fmt"

	"quoteterm/internal/quote"
)

var (
	ErrIncompleteItem  = errors.New("incomplete item")
	ErrMatrixNotFound  = errors.New("price matrix not found")
	ErrWidthExceeded   = errors.New("width exceeds matrix")
	ErrHeightExceeded  = errors.New("height exceeds matrix")
	ErrPriceNotFound   = errors.New("price not found")
	ErrDualOddCount    = errors.New("odd dual bracket count")
	ErrDualNotAdjacent = errors.New("dual brackets not adjacent")
)

// Message is an operator-facing error. errors.Is matches its sentinel.
type Message struct {
	err  error
	text string
}

func newLookupError(kind error, format string, args ...any) *Message {
	return &Message{err: kind, text: fmt.Sprintf(format, args...)}
}

func (m *Message) Error() string { return m.text }
func (m *Message) Unwrap() error { return m.err }

// RowError is the first pricing failure of a calculation.
type RowError struct {
	Message  string
	RowIndex int
	Column   quote.Field
	Err      error
}

func (e *RowError) Error() string { return e.Message }
func (e *RowError) Unwrap() error { return e.Err }

func newRowError(index int, err error) *RowError {
	column := quote.FieldHeight
	if errors.Is(err, ErrWidthExceeded) {
		column = quote.FieldWidth
	}
	return &RowError{
		Message:  fmt.Sprintf("Row %d: %s", index+1, err.Error()),
		RowIndex: index,
		Column:   column,
		Err:      err,
	}
}
