package fs

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	gpuprice "github.com/becloudready/gpu-price"
)

// Ensure Reader implements gpuprice.RowReader at compile time.
var _ gpuprice.RowReader = (*Reader)(nil)

// Reader loads serialized row artifacts and raw snapshot files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadText returns the raw contents of a snapshot file, e.g. a saved pricing
// page used for offline parsing.
func (r *Reader) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", gpuprice.Errorf(gpuprice.EUNAVAILABLE, "read %s: %v", path, err)
	}
	return string(data), nil
}

// ReadJSON loads a JSON row artifact.
// The file must hold a JSON array of row objects.
func (r *Reader) ReadJSON(path string) ([]gpuprice.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gpuprice.Errorf(gpuprice.EUNAVAILABLE, "read %s: %v", path, err)
	}
	var rows []gpuprice.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s: %v", path, err)
	}
	return rows, nil
}

// ReadCSV loads a CSV row artifact written in the fixed column order.
// Empty cells become absent fields.
func (r *Reader) ReadCSV(path string) ([]gpuprice.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gpuprice.Errorf(gpuprice.EUNAVAILABLE, "read %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s: %v", path, err)
	}
	if len(records) == 0 {
		return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s: missing header row", path)
	}

	rows := make([]gpuprice.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(Header) {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s: row has %d columns, want %d", path, len(rec), len(Header))
		}
		row := gpuprice.Row{
			Provider: rec[0],
			Product:  rec[1],
		}
		if row.GPUCount, err = parseIntCell(rec[2]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s gpu_count: %v", path, err)
		}
		if row.VRAMGB, err = parseFloatCell(rec[3]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s vram_gb: %v", path, err)
		}
		if row.VCPUs, err = parseIntCell(rec[4]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s vcpus: %v", path, err)
		}
		if row.SystemRAMGB, err = parseFloatCell(rec[5]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s system_ram_gb: %v", path, err)
		}
		if row.LocalStorageTB, err = parseFloatCell(rec[6]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s local_storage_tb: %v", path, err)
		}
		if row.PricePerHourUSD, err = parseFloatCell(rec[7]); err != nil {
			return nil, gpuprice.Errorf(gpuprice.EINVALID, "parse %s price_per_hour_usd: %v", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseIntCell(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseFloatCell(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
