package goquery_test

import (
	"fmt"
	"testing"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func denvrHTML(records string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
<script id="wix-warmup-data" type="application/json">
{"appsWarmupData":{"dataBinding":{"dataStore":{"recordsByCollectionId":{"GPUInstances":{%s}}}}}}
</script>
</body>
</html>`, records)
}

func TestDenvrParser_Provider(t *testing.T) {
	t.Parallel()

	p := goquery.NewDenvrParser()
	assert.Equal(t, gpuprice.ProviderDenvr, p.Provider())
}

func TestDenvrParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("extracts rows from warmup JSON sorted by product and count", func(t *testing.T) {
		t.Parallel()

		// gpuCount arrives as a JSON number for one record and as a string
		// for the other; both must parse.
		html := denvrHTML(`
			"rec-b":{"title":"NVIDIA H100 SXM","price":"$2.05/hr","gpuCount":"4","gpuVram":"80GB","vCpUs":"60","memory":"940","localStorage":"7.5TB"},
			"rec-a":{"title":"NVIDIA A100 80GB","price":"$1.55/hr","gpuCount":8,"gpuVram":"80GB","vCpUs":"120"}`)

		p := goquery.NewDenvrParser()
		rows, err := p.Parse(html)

		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, gpuprice.Row{
			Provider:        "denvr",
			Product:         "NVIDIA A100 80GB",
			GPUCount:        ip(8),
			VRAMGB:          fp(80),
			VCPUs:           ip(120),
			PricePerHourUSD: fp(1.55),
		}, rows[0])

		assert.Equal(t, gpuprice.Row{
			Provider:        "denvr",
			Product:         "NVIDIA H100 SXM",
			GPUCount:        ip(4),
			VRAMGB:          fp(80),
			VCPUs:           ip(60),
			SystemRAMGB:     fp(940),
			LocalStorageTB:  fp(7.5),
			PricePerHourUSD: fp(2.05),
		}, rows[1])
	})

	t.Run("record without a parseable price is dropped", func(t *testing.T) {
		t.Parallel()

		html := denvrHTML(`
			"rec-1":{"title":"NVIDIA H200","price":"Contact us","gpuCount":8},
			"rec-2":{"title":"NVIDIA L40S","price":"$1.10/hr","gpuCount":1}`)

		p := goquery.NewDenvrParser()
		rows, err := p.Parse(html)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "NVIDIA L40S", rows[0].Product)
	})

	t.Run("missing warmup script returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		p := goquery.NewDenvrParser()
		_, err := p.Parse("<html><body><p>no script here</p></body></html>")

		require.Error(t, err)
		assert.Equal(t, gpuprice.ENOTFOUND, gpuprice.ErrorCode(err))
		assert.Contains(t, gpuprice.ErrorMessage(err), "wix-warmup-data")
	})

	t.Run("malformed payload returns EINVALID", func(t *testing.T) {
		t.Parallel()

		html := `<script id="wix-warmup-data">{not json</script>`

		p := goquery.NewDenvrParser()
		_, err := p.Parse(html)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EINVALID, gpuprice.ErrorCode(err))
	})

	t.Run("unresolvable key path names the failing prefix", func(t *testing.T) {
		t.Parallel()

		html := `<script id="wix-warmup-data">{"appsWarmupData":{"dataBinding":{}}}</script>`

		p := goquery.NewDenvrParser()
		_, err := p.Parse(html)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EINVALID, gpuprice.ErrorCode(err))
		assert.Contains(t, gpuprice.ErrorMessage(err), "appsWarmupData.dataBinding.dataStore")
	})

	t.Run("empty collection returns EEMPTY", func(t *testing.T) {
		t.Parallel()

		html := denvrHTML(``)

		p := goquery.NewDenvrParser()
		_, err := p.Parse(html)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EEMPTY, gpuprice.ErrorCode(err))
	})

	t.Run("collection with no surviving rows returns EEMPTY", func(t *testing.T) {
		t.Parallel()

		html := denvrHTML(`"rec-1":{"title":"NVIDIA H200","price":"Contact us"}`)

		p := goquery.NewDenvrParser()
		_, err := p.Parse(html)

		require.Error(t, err)
		assert.Equal(t, gpuprice.EEMPTY, gpuprice.ErrorCode(err))
	})
}
