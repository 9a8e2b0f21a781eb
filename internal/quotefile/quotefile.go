// Package quotefile converts quote documents to and from the files an
// operator saves, loads and exports.
package quotefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"quoteterm/internal/quote"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidFormat       = errors.New("file content is not in a valid quote format")
)

// Content types reported with encoded files.
const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv;charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Loaded is a parsed quote file.
type Loaded struct {
	Document quote.Document
	// Legacy is set when the file used the flat rollerBlindItems layout.
	Legacy bool
}

// Message is the operator notice for a successful load.
func (l Loaded) Message(fileName string) string {
	if l.Legacy {
		return "Successfully loaded legacy data from " + fileName
	}
	return "Successfully loaded data from " + fileName
}

// Parse decodes content according to the extension of fileName. newItem
// builds the trailing empty row.
func Parse(fileName string, content []byte, newItem func() quote.LineItem) (Loaded, error) {
	if newItem == nil {
		newItem = quote.NewItem
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".json":
		return parseJSON(content, newItem)
	case ".csv":
		doc, err := ParseCSV(content, newItem)
		if err != nil {
			return Loaded{}, err
		}
		return Loaded{Document: doc}, nil
	default:
		return Loaded{}, fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileName)
	}
}

type legacyFile struct {
	RollerBlindItems []quote.LineItem `json:"rollerBlindItems"`
}

func parseJSON(content []byte, newItem func() quote.LineItem) (Loaded, error) {
	var doc quote.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return Loaded{}, fmt.Errorf("parse json: %w", err)
	}
	if doc.CurrentProduct.Valid() {
		if p := doc.Product(); p != nil && p.Items != nil {
			ensureIDs(p.Items)
			return Loaded{Document: doc}, nil
		}
	}

	var legacy legacyFile
	if err := json.Unmarshal(content, &legacy); err == nil && legacy.RollerBlindItems != nil {
		out := quote.Blueprint(quote.RollerBlind)
		items := legacy.RollerBlindItems
		ensureIDs(items)
		if len(items) == 0 || !items[len(items)-1].IsEmpty() {
			items = append(items, newItem())
		}
		out.Product().Items = items
		return Loaded{Document: out, Legacy: true}, nil
	}
	return Loaded{}, ErrInvalidFormat
}

func ensureIDs(items []quote.LineItem) {
	for i := range items {
		if items[i].ItemID == "" {
			items[i].ItemID = quote.NewItemID()
		}
	}
}

// EncodeJSON serialises the full document.
func EncodeJSON(doc quote.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal quote: %w", err)
	}
	return data, nil
}

// FileName returns quote-YYYYMMDDhhmm.ext for t.
func FileName(ext string, t time.Time) string {
	return fmt.Sprintf("quote-%s.%s", t.Format("200601021504"), strings.TrimPrefix(ext, "."))
}

// ContentType returns the MIME type for an export format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return ContentTypeJSON
	case "csv":
		return ContentTypeCSV
	case "xlsx":
		return ContentTypeXLSX
	case "pdf":
		return ContentTypePDF
	default:
		return "application/octet-stream"
	}
}

// Encode serialises doc in format.
func Encode(format string, doc quote.Document, meta Meta) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return EncodeJSON(doc)
	case "csv":
		return EncodeCSV(doc)
	case "xlsx":
		return EncodeXLSX(doc, meta)
	case "pdf":
		return EncodePDF(doc, meta)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, format)
	}
}

// Meta carries the presentation details of exported quotes.
type Meta struct {
	Title    string
	Operator string
	Date     time.Time
}

func (m Meta) title() string {
	if m.Title == "" {
		return "Roller Blind Quote"
	}
	return m.Title
}
