package quotefile

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"quoteterm/internal/quote"
)

var (
	pdfGrey     = &props.Color{Red: 80, Green: 80, Blue: 80}
	pdfHeaderBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfStripeBg = &props.Color{Red: 245, Green: 245, Blue: 245}
	pdfTotalBg  = &props.Color{Red: 232, Green: 232, Blue: 232}
)

// EncodePDF renders a printable quote.
func EncodePDF(doc quote.Document, meta Meta) ([]byte, error) {
	p := doc.Product()
	if p == nil {
		return nil, fmt.Errorf("%w: no current product", ErrInvalidFormat)
	}

	cfg := mconfig.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)
	addPDFHeader(m, doc, meta)
	addPDFTableHeader(m)
	n := 0
	for i, item := range p.Items {
		if !item.HasData() {
			continue
		}
		addPDFItem(m, i+1, item, n%2 == 1)
		n++
	}
	addPDFSummary(m, p.Summary)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, doc quote.Document, meta Meta) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(meta.title(), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	date := doc.IssueDate
	if !meta.Date.IsZero() {
		date = meta.Date.Format("2006-01-02")
	}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Quote: "+doc.QuoteID, props.Text{Size: 9, Align: align.Left, Color: pdfGrey}),
			),
			col.New(6).Add(
				text.New("Date: "+date, props.Text{Size: 9, Align: align.Right, Color: pdfGrey}),
			),
		),
	)
	if doc.Customer.Name != "" || meta.Operator != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(
					text.New("Customer: "+doc.Customer.Name, props.Text{Size: 9, Align: align.Left, Color: pdfGrey}),
				),
				col.New(6).Add(
					text.New("Prepared by: "+meta.Operator, props.Text{Size: 9, Align: align.Right, Color: pdfGrey}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addPDFTableHeader(m core.Maroto) {
	head := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	cell := props.Cell{BackgroundColor: pdfHeaderBg}
	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", head)).WithStyle(&cell),
			col.New(2).Add(text.New("Width", head)).WithStyle(&cell),
			col.New(2).Add(text.New("Height", head)).WithStyle(&cell),
			col.New(2).Add(text.New("Type", head)).WithStyle(&cell),
			col.New(3).Add(text.New("Location", head)).WithStyle(&cell),
			col.New(2).Add(text.New("Price", head)).WithStyle(&cell),
		),
	)
}

func addPDFItem(m core.Maroto, index int, item quote.LineItem, striped bool) {
	body := props.Text{Size: 8, Align: align.Center}
	right := body
	right.Align = align.Right

	cols := []core.Col{
		col.New(1).Add(text.New(strconv.Itoa(index), body)),
		col.New(2).Add(text.New(intField(item.Width), body)),
		col.New(2).Add(text.New(intField(item.Height), body)),
		col.New(2).Add(text.New(item.FabricType, body)),
		col.New(3).Add(text.New(item.Location, body)),
		col.New(2).Add(text.New(money(item.LinePrice), right)),
	}
	if striped {
		style := &props.Cell{BackgroundColor: pdfStripeBg}
		for i := range cols {
			cols[i] = cols[i].WithStyle(style)
		}
	}
	m.AddRows(row.New(6).Add(cols...))
}

func addPDFSummary(m core.Maroto, s quote.Summary) {
	m.AddRows(row.New(4))
	label := props.Text{Size: 8, Align: align.Right}
	value := props.Text{Size: 8, Align: align.Right}
	for _, kind := range quote.AccessoryKinds() {
		a := s.Accessories.Get(kind)
		if a == nil || a.Count == 0 {
			continue
		}
		m.AddRows(
			row.New(6).Add(
				col.New(8),
				col.New(2).Add(text.New(fmt.Sprintf("%s x%d", kind, a.Count), label)),
				col.New(2).Add(text.New(fmt.Sprintf("%.2f", a.Price), value)),
			),
		)
	}

	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	cell := &props.Cell{BackgroundColor: pdfTotalBg}
	m.AddRows(
		row.New(8).Add(
			col.New(8),
			col.New(2).Add(text.New("Total", bold)).WithStyle(cell),
			col.New(2).Add(text.New(money(s.TotalSum), bold)).WithStyle(cell),
		),
	)
}

func money(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
