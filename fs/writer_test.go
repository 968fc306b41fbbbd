package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func sampleRows() []gpuprice.Row {
	return []gpuprice.Row{
		{
			Provider:        "coreweave",
			Product:         "NVIDIA H100",
			GPUCount:        ip(8),
			VRAMGB:          fp(80),
			VCPUs:           ip(128),
			SystemRAMGB:     fp(1024),
			LocalStorageTB:  fp(7.68),
			PricePerHourUSD: fp(49.24),
		},
		{
			Provider:        "crusoe",
			Product:         "NVIDIA H200",
			VRAMGB:          fp(141),
			PricePerHourUSD: fp(3.90),
		},
	}
}

func TestWriter_WriteCSV(t *testing.T) {
	t.Parallel()

	t.Run("writes fixed columns with empty cells for absent fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "rows.csv")

		err := fs.NewWriter().WriteCSV(path, sampleRows())
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		want := "provider,product,gpu_count,vram_gb,vcpus,system_ram_gb,local_storage_tb,price_per_hour_usd\n" +
			"coreweave,NVIDIA H100,8,80,128,1024,7.68,49.24\n" +
			"crusoe,NVIDIA H200,,141,,,,3.9\n"
		assert.Equal(t, want, string(data))
	})

	t.Run("zero rows still produces a header-only file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rows.csv")

		err := fs.NewWriter().WriteCSV(path, nil)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "provider,product,gpu_count,vram_gb,vcpus,system_ram_gb,local_storage_tb,price_per_hour_usd\n", string(data))
	})
}

func TestWriter_WriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("absent fields serialize as null", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rows.json")

		err := fs.NewWriter().WriteJSON(path, sampleRows()[1:])
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		want := `[
  {
    "provider": "crusoe",
    "product": "NVIDIA H200",
    "gpu_count": null,
    "vram_gb": 141,
    "vcpus": null,
    "system_ram_gb": null,
    "local_storage_tb": null,
    "price_per_hour_usd": 3.9
  }
]
`
		assert.Equal(t, want, string(data))
	})

	t.Run("zero rows produces an empty array, not null", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rows.json")

		err := fs.NewWriter().WriteJSON(path, nil)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("CSV", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rows.csv")
		rows := sampleRows()

		require.NoError(t, fs.NewWriter().WriteCSV(path, rows))
		got, err := fs.NewReader().ReadCSV(path)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "rows.json")
		rows := sampleRows()

		require.NoError(t, fs.NewWriter().WriteJSON(path, rows))
		got, err := fs.NewReader().ReadJSON(path)
		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})
}
