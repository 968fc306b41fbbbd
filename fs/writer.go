// Package fs provides file-based serialization of normalized pricing rows
// in the CSV and JSON artifact formats, plus snapshot reading for offline
// parsing.
package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	gpuprice "github.com/becloudready/gpu-price"
)

// Header is the fixed CSV column order shared by every provider artifact.
var Header = []string{
	"provider",
	"product",
	"gpu_count",
	"vram_gb",
	"vcpus",
	"system_ram_gb",
	"local_storage_tb",
	"price_per_hour_usd",
}

// Ensure Writer implements gpuprice.RowWriter at compile time.
var _ gpuprice.RowWriter = (*Writer)(nil)

// Writer writes normalized rows as CSV and JSON files.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteCSV writes rows to path in the fixed column order. Absent optional
// fields become empty cells. Zero rows still produces a header-only file.
func (w *Writer) WriteCSV(path string, rows []gpuprice.Row) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(Header); err != nil {
		return gpuprice.Errorf(gpuprice.EINTERNAL, "write CSV header: %v", err)
	}
	for i := range rows {
		if err := cw.Write(csvRecord(&rows[i])); err != nil {
			return gpuprice.Errorf(gpuprice.EINTERNAL, "write CSV row: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return gpuprice.Errorf(gpuprice.EINTERNAL, "flush CSV: %v", err)
	}

	return writeFile(path, buf.Bytes())
}

// WriteJSON writes rows to path as a pretty-printed JSON array. Absent
// optional fields serialize as null; non-ASCII characters are preserved
// literally.
func (w *Writer) WriteJSON(path string, rows []gpuprice.Row) error {
	data, err := MarshalRows(rows)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// MarshalRows renders rows in the JSON artifact form: two-space indent,
// HTML escaping off, trailing newline. Exposed so the merge stage produces
// byte-identical output for identical input.
func MarshalRows(rows []gpuprice.Row) ([]byte, error) {
	if rows == nil {
		rows = []gpuprice.Row{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINTERNAL, "encode JSON rows: %v", err)
	}
	return buf.Bytes(), nil
}

// csvRecord renders one row in the fixed column order.
func csvRecord(r *gpuprice.Row) []string {
	return []string{
		r.Provider,
		r.Product,
		formatInt(r.GPUCount),
		formatFloat(r.VRAMGB),
		formatInt(r.VCPUs),
		formatFloat(r.SystemRAMGB),
		formatFloat(r.LocalStorageTB),
		formatFloat(r.PricePerHourUSD),
	}
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return gpuprice.Errorf(gpuprice.EUNAVAILABLE, "create %s: %v", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return gpuprice.Errorf(gpuprice.EUNAVAILABLE, "write %s: %v", path, err)
	}
	return nil
}
