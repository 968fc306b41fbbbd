package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*RunPodParser)(nil)

// runpodRowSelector matches one GPU row on the RunPod pricing page.
const runpodRowSelector = "a.gpu-pricing-row"

// RunPodParser extracts GPU pricing from the RunPod pricing page. Rows are
// anchor cards carrying value/label tag pairs ("80" / "GB VRAM") and a price
// element with per-cloud-mode data attributes.
type RunPodParser struct{}

// NewRunPodParser creates a new RunPodParser.
func NewRunPodParser() *RunPodParser {
	return &RunPodParser{}
}

// Provider returns the parser's provider identifier.
func (p *RunPodParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderRunPod
}

// Parse extracts normalized GPU pricing rows from RunPod pricing HTML.
//
// Returns ENOTFOUND when no pricing rows exist in the markup at all, and
// EEMPTY when rows were located but none survived normalization; RunPod
// always lists GPUs, so an empty result means the page shape changed.
func (p *RunPodParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	candidates := doc.Find(runpodRowSelector)
	if candidates.Length() == 0 {
		return nil, gpuprice.Errorf(gpuprice.ENOTFOUND,
			"no RunPod GPU rows found; the page structure may have changed or the HTML is incomplete")
	}

	rows := []gpuprice.Row{}
	seen := seenRows{}

	candidates.Each(func(_ int, a *goquery.Selection) {
		product := gpuprice.CleanText(a.Find(".gpu-pricing-row__model-wrapper").First().Text())
		if product == "" {
			return
		}

		row := gpuprice.Row{
			Provider: string(gpuprice.ProviderRunPod),
			Product:  product,
		}

		// Tags come as value/label div pairs: ["80", "GB VRAM"].
		a.Find(".gpu-pricing-row__tag").Each(func(_ int, tag *goquery.Selection) {
			parts := cellTexts(tag.Find("div"))
			if len(parts) < 2 {
				return
			}
			value, label := parts[0], strings.ToLower(parts[1])

			switch {
			case strings.Contains(label, "vram") && strings.Contains(label, "gb"):
				if v, ok := gpuprice.Money(value); ok {
					row.VRAMGB = floatPtr(v)
				}
			case strings.Contains(label, "ram") && strings.Contains(label, "gb"):
				if v, ok := gpuprice.Money(value); ok {
					row.SystemRAMGB = floatPtr(v)
				}
			case strings.Contains(label, "vcpu"):
				if v, ok := gpuprice.Integer(value); ok {
					row.VCPUs = intPtr(v)
				}
			}
		})

		price, rawPrice, ok := runpodPrice(a.Find(".cc-gpu-price").First())
		if !ok {
			return
		}
		row.PricePerHourUSD = floatPtr(price)

		if !seen.insert(row.Product, row.GPUCount, rawPrice) {
			return
		}

		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return nil, gpuprice.Errorf(gpuprice.EEMPTY,
			"RunPod rows located but none survived normalization; the page structure may have changed")
	}

	return rows, nil
}

// runpodPrice reads the price element's data attributes, preferring secure
// cloud pricing over community cloud pricing.
func runpodPrice(el *goquery.Selection) (float64, string, bool) {
	if el.Length() == 0 {
		return 0, "", false
	}
	for _, attr := range []string{"data-secure-cloud-price", "data-community-cloud-price"} {
		raw := el.AttrOr(attr, "")
		if v, ok := gpuprice.Money(raw); ok && v > 0 {
			return v, raw, true
		}
	}
	return 0, "", false
}
