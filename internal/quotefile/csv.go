package quotefile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"quoteterm/internal/quote"
)

var csvHeader = []string{"#", "Width", "Height", "Type", "Price"}

// EncodeCSV writes one line per row with a width or height, then the total.
func EncodeCSV(doc quote.Document) ([]byte, error) {
	p := doc.Product()
	if p == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, item := range p.Items {
		if !item.HasData() {
			continue
		}
		record := []string{
			strconv.Itoa(i + 1),
			intField(item.Width),
			intField(item.Height),
			item.FabricType,
			floatField(item.LinePrice),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	if total := p.Summary.TotalSum; total != nil {
		fmt.Fprintf(&buf, "\nTotal,,,,%.2f", *total)
	}
	return buf.Bytes(), nil
}

// ParseCSV rebuilds a document from exported CSV. Only width, height, type
// and price survive; a trailing empty row is always appended.
func ParseCSV(content []byte, newItem func() quote.LineItem) (quote.Document, error) {
	lines := strings.Split(strings.TrimSpace(strings.ReplaceAll(string(content), "\r\n", "\n")), "\n")
	header := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			header = i
			break
		}
	}
	if header < 0 {
		return quote.Document{}, fmt.Errorf("%w: empty csv", ErrInvalidFormat)
	}

	var body []string
	for _, line := range lines[header+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), "total") {
			break
		}
		body = append(body, trimmed)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(body, "\n")))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return quote.Document{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	items := make([]quote.LineItem, 0, len(records)+1)
	for _, rec := range records {
		item := newItem()
		item.Width = parseInt(column(rec, 1))
		item.Height = parseInt(column(rec, 2))
		item.FabricType = strings.TrimSpace(column(rec, 3))
		item.LinePrice = parseFloat(column(rec, 4))
		items = append(items, item)
	}
	items = append(items, newItem())

	doc := quote.Blueprint(quote.RollerBlind)
	doc.Product().Items = items
	return doc, nil
}

func column(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// parseInt treats zero and garbage as unset.
func parseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func intField(v *int) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatField(v *float64) string {
	if v == nil || *v == 0 {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
