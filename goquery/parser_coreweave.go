package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*CoreWeaveParser)(nil)

// CSS selectors for CoreWeave pricing rows. The precise selector matches only
// the GPU pricing table; the loose one accepts any dynamic-list row and relies
// on the domain gate to reject non-GPU content.
const (
	coreweaveRowSelector      = "div.table-row-v2.w-dyn-item.kubernetes-gpu-pricing"
	coreweaveLooseRowSelector = "div.table-row-v2.w-dyn-item"
)

// CoreWeaveParser extracts GPU pricing rows from the CoreWeave pricing page.
//
// Observed row structure:
//
//	div.table-row-v2.w-dyn-item.kubernetes-gpu-pricing
//	  div.table-grid
//	    div.table-v2-cell--name -> h3.table-model-name
//	    subsequent div.table-v2-cell -> numeric columns
//	    last div.table-v2-cell -> "$.."
type CoreWeaveParser struct{}

// NewCoreWeaveParser creates a new CoreWeaveParser.
func NewCoreWeaveParser() *CoreWeaveParser {
	return &CoreWeaveParser{}
}

// Provider returns the parser's provider identifier.
func (p *CoreWeaveParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderCoreWeave
}

// Parse extracts normalized GPU pricing rows from CoreWeave pricing HTML.
// Zero rows is a valid outcome for this provider.
func (p *CoreWeaveParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	candidates := doc.Find(coreweaveRowSelector)
	loose := false
	if candidates.Length() == 0 {
		candidates = doc.Find(coreweaveLooseRowSelector)
		loose = true
	}

	rows := []gpuprice.Row{}
	seen := seenRows{}

	candidates.Each(func(_ int, r *goquery.Selection) {
		grid := r.Find("div.table-grid").First()
		if grid.Length() == 0 {
			return
		}

		product := gpuprice.CleanText(grid.Find("h3.table-model-name").First().Text())
		if product == "" {
			return
		}

		cells := cellTexts(grid.ChildrenFiltered("div.table-v2-cell"))
		if len(cells) < 2 {
			return
		}

		// Price is usually the last cell carrying a "$"; a row without one is
		// not a pricing row.
		rawPrice := ""
		var price float64
		priceOK := false
		for i := len(cells) - 1; i >= 0; i-- {
			if strings.Contains(cells[i], "$") {
				rawPrice = cells[i]
				price, priceOK = gpuprice.Money(cells[i])
				break
			}
		}
		if !priceOK {
			return
		}

		row := gpuprice.Row{
			Provider:        string(gpuprice.ProviderCoreWeave),
			Product:         product,
			PricePerHourUSD: floatPtr(price),
		}

		// Positional mapping under the observed column order:
		// [product, gpu_count, vram, vcpus, system_ram, local_storage, price].
		// Update in one place if CoreWeave reorders the table.
		if len(cells) > 1 {
			if v, ok := wholeInteger(cells[1]); ok {
				row.GPUCount = intPtr(v)
			}
		}
		if len(cells) > 2 {
			if v, ok := wholeInteger(cells[2]); ok {
				row.VRAMGB = floatPtr(float64(v))
			}
		}
		if len(cells) > 3 {
			if v, ok := wholeInteger(cells[3]); ok {
				row.VCPUs = intPtr(v)
			}
		}
		if len(cells) > 4 {
			if v, ok := wholeInteger(cells[4]); ok {
				row.SystemRAMGB = floatPtr(float64(v))
			}
		}
		if len(cells) > 5 {
			// Local storage is a bare float like "7.68", not a unit-tagged
			// measurement.
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cells[5], ",", ""), 64); err == nil {
				row.LocalStorageTB = floatPtr(v)
			}
		}

		if loose && !passesGPUGate(row) {
			return
		}

		if !seen.insert(row.Product, row.GPUCount, rawPrice) {
			return
		}

		rows = append(rows, row)
	})

	return rows, nil
}
