// Package pricing derives line prices, accessory totals and the financial
// summary from a quote document. Every function here is pure: documents are
// cloned, never modified in place.
package pricing

import (
	"quoteterm/internal/config"
	"quoteterm/internal/quote"
)

// Engine prices documents against a catalog.
type Engine struct {
	catalog *config.Catalog
}

// NewEngine returns an engine reading catalog.
func NewEngine(catalog *config.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog exposes the configured catalog.
func (e *Engine) Catalog() *config.Catalog { return e.catalog }

// CalculateAndSum prices every complete row and recomputes the total. Rows
// that fail keep a nil price; only the first failure is reported.
func (e *Engine) CalculateAndSum(doc quote.Document, s Strategy) (quote.Document, *RowError) {
	out := doc.Clone()
	p := out.Product()
	if p == nil {
		return out, nil
	}
	var first *RowError
	for i := range p.Items {
		item := &p.Items[i]
		item.LinePrice = nil
		if !item.Priceable() {
			continue
		}
		m, _ := e.catalog.PriceMatrix(item.FabricType)
		price, err := s.CalculatePrice(*item, m)
		if err != nil {
			if first == nil {
				first = newRowError(i, err)
			}
			continue
		}
		item.LinePrice = quote.Float(price)
	}
	setTotal(p)
	return out, first
}

// RefreshTotal re-sums the total from the existing line and accessory prices.
func (e *Engine) RefreshTotal(doc quote.Document) quote.Document {
	out := doc.Clone()
	if p := out.Product(); p != nil {
		setTotal(p)
	}
	return out
}

func setTotal(p *quote.ProductData) {
	var total float64
	for _, item := range p.Items {
		if item.LinePrice != nil {
			total += *item.LinePrice
		}
	}
	total += p.Summary.Accessories.PriceTotal()
	p.Summary.TotalSum = quote.Float(total)
}
