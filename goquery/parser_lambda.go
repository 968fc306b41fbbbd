package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*LambdaParser)(nil)

// lambdaTableSelector matches Lambda's pricing tables. The class is a hashed
// CSS-module name that changes when Lambda redeploys; update it here only.
const lambdaTableSelector = "table._pricingTable_z1nfw_13"

// labeledCell is one table cell with its resolved column key, in document
// order. Keyed matching walks these in order so the first matching column
// wins regardless of map iteration.
type labeledCell struct {
	key   string
	value string
}

// LambdaParser extracts GPU pricing from Lambda's pricing page. The tables
// carry data-label attributes on cells, so fields are mapped by key rather
// than position, surviving column reorders.
type LambdaParser struct{}

// NewLambdaParser creates a new LambdaParser.
func NewLambdaParser() *LambdaParser {
	return &LambdaParser{}
}

// Provider returns the parser's provider identifier.
func (p *LambdaParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderLambda
}

// Parse extracts normalized GPU pricing rows from Lambda pricing HTML.
// Rows without a plan name or an extractable price are dropped.
// Zero rows is a valid outcome for this provider.
func (p *LambdaParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	rows := []gpuprice.Row{}
	seen := seenRows{}

	doc.Find(lambdaTableSelector).Each(func(_ int, table *goquery.Selection) {
		headers := allCellTexts(table.Find("thead th"))

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			plan := gpuprice.CleanText(tr.Find("th").First().Text())
			if plan == "" {
				plan = gpuprice.CleanText(tr.AttrOr("data-plan", ""))
			}
			if plan == "" {
				return
			}

			cells := collectLabeledCells(tr, headers)

			row, rawPrice, ok := normalizeLambdaRow(plan, cells)
			if !ok {
				return
			}

			if !seen.insert(row.Product, row.GPUCount, rawPrice) {
				return
			}

			rows = append(rows, row)
		})
	})

	return rows, nil
}

// collectLabeledCells gathers row cells keyed by data-label, falling back to
// the column header at the same index, then to a positional placeholder.
func collectLabeledCells(tr *goquery.Selection, headers []string) []labeledCell {
	var cells []labeledCell
	tr.Find("th, td").Each(func(idx int, cell *goquery.Selection) {
		key := gpuprice.CleanText(cell.AttrOr("data-label", ""))
		if key == "" {
			if idx < len(headers) && headers[idx] != "" {
				key = headers[idx]
			} else {
				key = fmt.Sprintf("col_%d", idx)
			}
		}
		cells = append(cells, labeledCell{key: key, value: gpuprice.CleanText(cell.Text())})
	})
	return cells
}

// normalizeLambdaRow maps labeled cells into the shared schema. First match
// per field wins; a row with no extractable price is rejected.
func normalizeLambdaRow(plan string, cells []labeledCell) (gpuprice.Row, string, bool) {
	row := gpuprice.Row{
		Provider: string(gpuprice.ProviderLambda),
		Product:  plan,
	}
	rawPrice := ""

	for _, c := range cells {
		key := strings.ToLower(c.key)

		switch {
		case row.PricePerHourUSD == nil && (strings.Contains(key, "price") || strings.Contains(key, "cost")):
			if v, ok := gpuprice.Money(c.value); ok {
				row.PricePerHourUSD = floatPtr(v)
				rawPrice = c.value
			}
		case row.VRAMGB == nil && (strings.Contains(key, "vram") || strings.Contains(key, "memory")):
			if v, ok := gpuprice.Measurement(c.value, "GB"); ok {
				row.VRAMGB = floatPtr(v)
			}
		case row.VCPUs == nil && (strings.Contains(key, "vcpu") || strings.Contains(key, "cpu")):
			if v, ok := gpuprice.Integer(c.value); ok {
				row.VCPUs = intPtr(v)
			}
		case row.GPUCount == nil && strings.Contains(key, "gpu") && strings.Contains(key, "count"):
			if v, ok := gpuprice.Integer(c.value); ok {
				row.GPUCount = intPtr(v)
			}
		}
	}

	if row.PricePerHourUSD == nil {
		return gpuprice.Row{}, "", false
	}
	return row, rawPrice, true
}
