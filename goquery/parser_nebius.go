package goquery

import (
	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*NebiusParser)(nil)

// DefaultNebiusTableTitle is the on-page title of the pricing table scraped
// by default.
const DefaultNebiusTableTitle = "NVIDIA GPU Instances"

// nebiusVRAMByModel maps GPU model tokens in the product name to per-GPU VRAM
// in gigabytes; the pricing table does not carry a VRAM column. Ordered so
// longer tokens win (L40S before L40).
var nebiusVRAMByModel = []struct {
	token string
	vram  float64
}{
	{"GB200", 186},
	{"B200", 180},
	{"H200", 141},
	{"H100", 80},
	{"A100", 80},
	{"L40S", 48},
	{"L40", 48},
	{"RTX PRO", 48},
}

// NebiusParser extracts GPU pricing from the Nebius pricing page. The page
// carries several highlight-table blocks; the parser locates the one whose
// title matches and maps its fixed column order
// (item, vCPUs, RAM, price per GPU-hour).
type NebiusParser struct {
	tableTitle string
}

// NebiusOption configures a NebiusParser.
type NebiusOption func(*NebiusParser)

// WithTableTitle overrides which pricing table is scraped, matched against
// the on-page table title. Defaults to DefaultNebiusTableTitle.
func WithTableTitle(title string) NebiusOption {
	return func(p *NebiusParser) {
		p.tableTitle = title
	}
}

// NewNebiusParser creates a new NebiusParser.
func NewNebiusParser(opts ...NebiusOption) *NebiusParser {
	p := &NebiusParser{tableTitle: DefaultNebiusTableTitle}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provider returns the parser's provider identifier.
func (p *NebiusParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderNebius
}

// Parse extracts normalized GPU pricing rows from Nebius pricing HTML.
//
// Returns ENOTFOUND when no table block carries the configured title; the
// message lists the titles actually present to aid diagnosis after a page
// redesign. Returns EEMPTY when the block exists but yields no rows.
func (p *NebiusParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var target *goquery.Selection
	var titles []string
	doc.Find("div.pc-highlight-table-block").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := gpuprice.CleanText(block.Find("div.pc-highlight-table-block__title span.pc-title-item__text").First().Text())
		if title != "" {
			titles = append(titles, title)
		}
		if title == p.tableTitle {
			target = block
			return false
		}
		return true
	})
	if target == nil {
		return nil, gpuprice.Errorf(gpuprice.ENOTFOUND,
			"could not find table titled %q; tables found: %v", p.tableTitle, titles)
	}

	// Headers are kept for the empty-result diagnosis only; cells are mapped
	// by the documented fixed order, not by header text.
	headers := cellTexts(target.Find("div.pc-highlight-table-block__head div.pc-highlight-table-block__cell"))

	rows := []gpuprice.Row{}
	seen := seenRows{}

	target.Find("div.pc-highlight-table-block__body div.pc-highlight-table-block__row").Each(func(_ int, r *goquery.Selection) {
		cells := allCellTexts(r.Find("div.pc-highlight-table-block__cell"))
		if len(cells) < 4 {
			return
		}

		item, vcpusText, ramText, rawPrice := cells[0], cells[1], cells[2], cells[3]
		if item == "" || rawPrice == "" {
			return
		}

		price, ok := gpuprice.Money(rawPrice)
		if !ok {
			return
		}

		row := gpuprice.Row{
			Provider:        string(gpuprice.ProviderNebius),
			Product:         item,
			VRAMGB:          nebiusVRAM(item),
			PricePerHourUSD: floatPtr(price),
		}
		if v, ok := gpuprice.Integer(vcpusText); ok {
			row.VCPUs = intPtr(v)
		}
		if v, ok := gpuprice.Integer(ramText); ok {
			row.SystemRAMGB = floatPtr(float64(v))
		}

		if !seen.insert(row.Product, row.GPUCount, rawPrice) {
			return
		}

		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return nil, gpuprice.Errorf(gpuprice.EEMPTY,
			"found %q block but parsed 0 rows; headers seen: %v", p.tableTitle, headers)
	}

	return rows, nil
}

// nebiusVRAM infers per-GPU VRAM from the product name via the model table,
// falling back to a "NNN GB" marker in the name itself.
func nebiusVRAM(product string) *float64 {
	upper := gpuprice.CleanText(product)
	for _, m := range nebiusVRAMByModel {
		if containsFold(upper, m.token) {
			return floatPtr(m.vram)
		}
	}
	if v, ok := gpuprice.Measurement(product, "GB"); ok {
		return floatPtr(v)
	}
	return nil
}
