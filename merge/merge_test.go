package merge_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/fs"
	"github.com/becloudready/gpu-price/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func writeArtifact(t *testing.T, dir, name string, rows []gpuprice.Row) {
	t.Helper()
	require.NoError(t, fs.NewWriter().WriteJSON(filepath.Join(dir, name), rows))
}

func pinnedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 34, 56, 789, time.UTC)
}

func TestMerger_Merge(t *testing.T) {
	t.Parallel()

	t.Run("concatenates sources in lexicographic order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "y_prices.json", []gpuprice.Row{
			{Provider: "y", Product: "NVIDIA H200", PricePerHourUSD: fp(3.9)},
		})
		writeArtifact(t, dir, "x_prices.json", []gpuprice.Row{
			{Provider: "x", Product: "NVIDIA H100", PricePerHourUSD: fp(2.49)},
		})

		m := &merge.Merger{Now: pinnedNow}
		res, err := m.Merge(dir)
		require.NoError(t, err)

		require.Len(t, res.Rows, 2)
		assert.Equal(t, "NVIDIA H100", res.Rows[0].Product)
		assert.Equal(t, "NVIDIA H200", res.Rows[1].Product)

		assert.Equal(t, merge.Meta{
			GeneratedAtUTC: "2026-08-30T12:34:56Z",
			Rows:           2,
			Providers:      []string{"x", "y"},
			Sources:        []string{"x_prices.json", "y_prices.json"},
		}, res.Meta)
	})

	t.Run("stamps untagged rows with the source file stem", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "denvr_gpu_prices.json", []gpuprice.Row{
			{Product: "NVIDIA A100 80GB", PricePerHourUSD: fp(1.55)},
		})

		m := &merge.Merger{Now: pinnedNow}
		res, err := m.Merge(dir)
		require.NoError(t, err)

		require.Len(t, res.Rows, 1)
		assert.Equal(t, "denvr_gpu_prices", res.Rows[0].Provider)
		assert.Equal(t, []string{"denvr_gpu_prices"}, res.Meta.Providers)
	})

	t.Run("excludes its own output artifacts from input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "x_prices.json", []gpuprice.Row{
			{Provider: "x", Product: "NVIDIA H100", PricePerHourUSD: fp(2.49)},
		})
		writeArtifact(t, dir, merge.AllFileName, []gpuprice.Row{
			{Provider: "stale", Product: "stale"},
		})
		require.NoError(t, os.WriteFile(filepath.Join(dir, merge.MetaFileName), []byte("{}"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x_meta.json"), []byte("{}"), 0644))

		m := &merge.Merger{Now: pinnedNow}
		res, err := m.Merge(dir)
		require.NoError(t, err)

		require.Len(t, res.Rows, 1)
		assert.Equal(t, []string{"x_prices.json"}, res.Meta.Sources)
	})

	t.Run("empty directory yields empty corpus with non-null fields", func(t *testing.T) {
		t.Parallel()

		m := &merge.Merger{Now: pinnedNow}
		res, err := m.Merge(t.TempDir())
		require.NoError(t, err)

		assert.Empty(t, res.Rows)
		assert.Equal(t, []string{}, res.Meta.Providers)
		assert.Equal(t, []string{}, res.Meta.Sources)
	})

	t.Run("missing directory returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		m := merge.NewMerger()
		_, err := m.Merge(filepath.Join(t.TempDir(), "absent"))

		require.Error(t, err)
		assert.Equal(t, gpuprice.ENOTFOUND, gpuprice.ErrorCode(err))
	})

	t.Run("source row failing validation returns EINVALID naming the position", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "x_prices.json", []gpuprice.Row{
			{Provider: "x", Product: "NVIDIA H100", PricePerHourUSD: fp(2.49)},
			{Provider: "x", Product: "", PricePerHourUSD: fp(1.10)},
		})

		m := &merge.Merger{Now: pinnedNow}
		_, err := m.Merge(dir)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EINVALID, gpuprice.ErrorCode(err))
		assert.Contains(t, gpuprice.ErrorMessage(err), "x_prices.json")
		assert.Contains(t, gpuprice.ErrorMessage(err), "row 1")
	})

	t.Run("unreadable source returns EINVALID naming the file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad_prices.json"), []byte("{broken"), 0644))

		m := &merge.Merger{Now: pinnedNow}
		_, err := m.Merge(dir)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EINVALID, gpuprice.ErrorCode(err))
		assert.Contains(t, gpuprice.ErrorMessage(err), "bad_prices.json")
	})
}

func TestWriteOutputs(t *testing.T) {
	t.Parallel()

	t.Run("writes corpus and metadata side by side", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "x_prices.json", []gpuprice.Row{
			{Provider: "x", Product: "NVIDIA H100", PricePerHourUSD: fp(2.49)},
		})

		m := &merge.Merger{Now: pinnedNow}
		res, err := m.Merge(dir)
		require.NoError(t, err)

		outJSON := filepath.Join(dir, merge.AllFileName)
		require.NoError(t, merge.WriteOutputs(outJSON, res))

		rows, err := fs.NewReader().ReadJSON(outJSON)
		require.NoError(t, err)
		assert.Equal(t, res.Rows, rows)

		meta, err := os.ReadFile(filepath.Join(dir, merge.MetaFileName))
		require.NoError(t, err)
		assert.Contains(t, string(meta), `"generated_at_utc": "2026-08-30T12:34:56Z"`)
		assert.Contains(t, string(meta), `"rows": 1`)
	})

	t.Run("repeated merges over the same inputs are byte-identical", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeArtifact(t, dir, "x_prices.json", []gpuprice.Row{
			{Provider: "x", Product: "NVIDIA H100", PricePerHourUSD: fp(2.49)},
		})

		outJSON := filepath.Join(dir, merge.AllFileName)
		m := &merge.Merger{Now: pinnedNow}

		res1, err := m.Merge(dir)
		require.NoError(t, err)
		require.NoError(t, merge.WriteOutputs(outJSON, res1))
		first, err := os.ReadFile(outJSON)
		require.NoError(t, err)

		// Second pass reads a directory that now contains all.json and
		// meta.json; both must be excluded for the output to be stable.
		res2, err := m.Merge(dir)
		require.NoError(t, err)
		require.NoError(t, merge.WriteOutputs(outJSON, res2))
		second, err := os.ReadFile(outJSON)
		require.NoError(t, err)

		assert.Equal(t, string(first), string(second))
	})
}
