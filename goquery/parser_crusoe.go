package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*CrusoeParser)(nil)

// CrusoeParser extracts GPU pricing from the Crusoe pricing page, where each
// GPU is a flat card:
//
//	div.pricing_gpu-item
//	  h4.pricing-item-heading           -> product name
//	  .pricing_tags-wr .pricing-tag     -> attribute tags ("141GB", "SXM")
//	  div.pricing-rich p                -> price copy ("$3.90 per hour")
type CrusoeParser struct{}

// NewCrusoeParser creates a new CrusoeParser.
func NewCrusoeParser() *CrusoeParser {
	return &CrusoeParser{}
}

// Provider returns the parser's provider identifier.
func (p *CrusoeParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderCrusoe
}

// Parse extracts normalized GPU pricing rows from Crusoe pricing HTML.
// Cards without an extractable price are not pricing data and are dropped.
// Zero rows is a valid outcome for this provider.
func (p *CrusoeParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	rows := []gpuprice.Row{}
	seen := seenRows{}

	doc.Find("div.pricing_gpu-item").Each(func(_ int, card *goquery.Selection) {
		product := gpuprice.CleanText(card.Find("h4.pricing-item-heading").First().Text())
		if product == "" {
			return
		}

		// VRAM comes from attribute tags like "186GB", "141GB".
		var vram *float64
		card.Find(".pricing_tags-wr .pricing-tag").EachWithBreak(func(_ int, tag *goquery.Selection) bool {
			if v, ok := gpuprice.Measurement(tag.Text(), "GB"); ok {
				vram = floatPtr(v)
				return false
			}
			return true
		})

		// First paragraph carrying a "$" amount wins.
		rawPrice := ""
		var price *float64
		card.Find("div.pricing-rich p").EachWithBreak(func(_ int, para *goquery.Selection) bool {
			txt := gpuprice.CleanText(para.Text())
			if txt == "" || !strings.Contains(txt, "$") {
				return true
			}
			if v, ok := gpuprice.Money(txt); ok {
				rawPrice = txt
				price = floatPtr(v)
				return false
			}
			return true
		})
		if price == nil {
			return
		}

		row := gpuprice.Row{
			Provider:        string(gpuprice.ProviderCrusoe),
			Product:         product,
			VRAMGB:          vram,
			PricePerHourUSD: price,
		}

		if !seen.insert(row.Product, row.GPUCount, rawPrice) {
			return
		}

		rows = append(rows, row)
	})

	return rows, nil
}
