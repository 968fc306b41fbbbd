package goquery

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	gpuprice "github.com/becloudready/gpu-price"
)

var _ gpuprice.Parser = (*DenvrParser)(nil)

// denvrWarmupSelector locates the Wix warmup payload; Denvr's pricing is not
// in visible markup but in this script-tag-carried JSON blob.
const denvrWarmupSelector = "script#wix-warmup-data"

// denvrKeyPath is the fixed path to the GPU instance collection inside the
// warmup payload.
var denvrKeyPath = []string{"appsWarmupData", "dataBinding", "dataStore", "recordsByCollectionId", "GPUInstances"}

// DenvrParser extracts GPU pricing from the Denvr pricing page by reading the
// embedded Wix warmup JSON rather than the rendered DOM.
type DenvrParser struct{}

// NewDenvrParser creates a new DenvrParser.
func NewDenvrParser() *DenvrParser {
	return &DenvrParser{}
}

// Provider returns the parser's provider identifier.
func (p *DenvrParser) Provider() gpuprice.Provider {
	return gpuprice.ProviderDenvr
}

// Parse extracts normalized GPU pricing rows from Denvr pricing HTML.
//
// Returns ENOTFOUND when the warmup script tag is absent, EINVALID when the
// payload is unparseable or the key path does not resolve, and EEMPTY when
// the collection exists but yields no pricing rows.
func (p *DenvrParser) Parse(html string) ([]gpuprice.Row, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	script := doc.Find(denvrWarmupSelector).First()
	if script.Length() == 0 {
		return nil, gpuprice.Errorf(gpuprice.ENOTFOUND,
			"could not find <script id='wix-warmup-data'> in HTML (is the page source complete?)")
	}

	var root map[string]interface{}
	if err := json.Unmarshal([]byte(script.Text()), &root); err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINVALID, "failed to parse wix-warmup-data JSON: %v", err)
	}

	records, err := resolveKeyPath(root, denvrKeyPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, gpuprice.Errorf(gpuprice.EEMPTY, "GPUInstances collection found but empty")
	}

	// Record IDs are map keys; walk them in sorted order so dedup and output
	// are deterministic.
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := []gpuprice.Row{}
	seen := seenRows{}

	for _, id := range ids {
		rec, ok := records[id].(map[string]interface{})
		if !ok {
			continue
		}

		title := gpuprice.CleanText(fieldString(rec, "title"))
		if title == "" {
			continue
		}

		rawPrice := fieldString(rec, "price")
		price, priceOK := gpuprice.Money(rawPrice)
		if !priceOK {
			continue
		}

		row := gpuprice.Row{
			Provider:        string(gpuprice.ProviderDenvr),
			Product:         title,
			PricePerHourUSD: floatPtr(price),
		}
		if v, ok := gpuprice.Integer(fieldString(rec, "gpuCount")); ok {
			row.GPUCount = intPtr(v)
		}
		if v, ok := gpuprice.Measurement(fieldString(rec, "gpuVram"), "GB"); ok {
			row.VRAMGB = floatPtr(v)
		}
		if v, ok := gpuprice.Integer(fieldString(rec, "vCpUs")); ok {
			row.VCPUs = intPtr(v)
		}
		if v, ok := gpuprice.Integer(fieldString(rec, "memory")); ok {
			row.SystemRAMGB = floatPtr(float64(v))
		}
		if v, ok := gpuprice.Measurement(fieldString(rec, "localStorage"), "TB"); ok {
			row.LocalStorageTB = floatPtr(v)
		}

		if !seen.insert(row.Product, row.GPUCount, rawPrice) {
			continue
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, gpuprice.Errorf(gpuprice.EEMPTY, "GPUInstances collection found but no pricing rows survived")
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Product != rows[j].Product {
			return rows[i].Product < rows[j].Product
		}
		return gpuCountOrZero(rows[i]) < gpuCountOrZero(rows[j])
	})

	return rows, nil
}

// resolveKeyPath walks a decoded JSON object along the key path, reporting
// the exact prefix that failed to resolve.
func resolveKeyPath(root map[string]interface{}, path []string) (map[string]interface{}, error) {
	node := root
	for i, key := range path {
		child, ok := node[key].(map[string]interface{})
		if !ok {
			return nil, gpuprice.Errorf(gpuprice.EINVALID,
				"could not locate %q in warmup JSON at %s", key, strings.Join(path[:i+1], "."))
		}
		node = child
	}
	return node, nil
}

// fieldString coerces a record field to text; numeric payload values are
// formatted so the extractors can parse them.
func fieldString(rec map[string]interface{}, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func gpuCountOrZero(r gpuprice.Row) int {
	if r.GPUCount == nil {
		return 0
	}
	return *r.GPUCount
}
