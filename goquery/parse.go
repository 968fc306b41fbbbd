// Package goquery provides goquery-based implementations of gpuprice.Parser,
// one per supported provider. Each parser pairs a document locator (structural
// CSS selectors, or an embedded JSON payload for Denvr) with a row normalizer
// that maps located candidates into the shared schema.
package goquery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gpuprice "github.com/becloudready/gpu-price"
)

// gpuTokens is the allowlist used by the domain gate when a parser had to
// fall back to a loose selector. This is a deliberate heuristic with known
// false-negative risk: the list will not cover future GPU generations and
// should be reviewed when NVIDIA ships a new family.
var gpuTokens = []string{
	"nvidia", "a100", "h100", "h200", "l40", "l4", "rtx", "blackwell", "gb200", "gb300",
}

// passesGPUGate reports whether a normalized row plausibly represents GPU
// pricing: the product name carries a known GPU-model token, or the row has
// both a GPU count and a VRAM value. Used to reject non-GPU rows (CPU tables,
// marketing callouts) that slipped through a loose fallback selector.
func passesGPUGate(row gpuprice.Row) bool {
	name := strings.ToLower(row.Product)
	for _, token := range gpuTokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	return row.GPUCount != nil && *row.GPUCount > 0 && row.VRAMGB != nil && *row.VRAMGB > 0
}

// seenRows collapses repeated (product, gpu_count, raw price text) triples
// within a single parse invocation, preserving first-seen order. It is always
// scoped to one Parse call; no parser holds ambient dedup state.
type seenRows map[string]struct{}

func (s seenRows) insert(product string, gpuCount *int, rawPrice string) bool {
	count := 0
	if gpuCount != nil {
		count = *gpuCount
	}
	key := fmt.Sprintf("%s\x00%d\x00%s", product, count, rawPrice)
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

// parseDocument parses raw HTML into a goquery document.
func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// cellTexts returns the cleaned, non-empty text of each matched cell in
// document order.
func cellTexts(cells *goquery.Selection) []string {
	var texts []string
	cells.Each(func(_ int, c *goquery.Selection) {
		if txt := gpuprice.CleanText(c.Text()); txt != "" {
			texts = append(texts, txt)
		}
	})
	return texts
}

// allCellTexts is like cellTexts but keeps empty cells, preserving column
// positions for positionally mapped tables.
func allCellTexts(cells *goquery.Selection) []string {
	var texts []string
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, gpuprice.CleanText(c.Text()))
	})
	return texts
}

// wholeIntRE matches a cell that is nothing but an integer, with optional
// grouping separators.
var wholeIntRE = regexp.MustCompile(`^\d[\d,]*$`)

// wholeInteger parses a cell that must consist solely of an integer. Used for
// positionally mapped columns, where a tolerant first-digit-run parse would
// misread neighboring cells (e.g. a "$1.00" price cell) as a count.
func wholeInteger(s string) (int, bool) {
	cleaned := gpuprice.CleanText(s)
	if !wholeIntRE.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.ReplaceAll(cleaned, ",", ""))
	if err != nil {
		return 0, false
	}
	return v, true
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
