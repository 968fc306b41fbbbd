package goquery_test

import (
	"testing"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := goquery.DefaultRegistry()

	assert.Equal(t, []gpuprice.Provider{
		gpuprice.ProviderCoreWeave,
		gpuprice.ProviderCrusoe,
		gpuprice.ProviderDenvr,
		gpuprice.ProviderLambda,
		gpuprice.ProviderNebius,
		gpuprice.ProviderRunPod,
	}, r.List())

	for _, provider := range r.List() {
		p := r.Get(provider)
		require.NotNil(t, p)
		assert.Equal(t, provider, p.Provider())
	}
}

func TestRegistry_Get_Unknown(t *testing.T) {
	t.Parallel()

	r := goquery.NewRegistry()
	assert.Nil(t, r.Get(gpuprice.ProviderNebius))
}

func TestRegistry_Register_Replaces(t *testing.T) {
	t.Parallel()

	r := goquery.NewRegistry()
	r.Register(goquery.NewNebiusParser())

	replacement := goquery.NewNebiusParser(goquery.WithTableTitle("Preemptible GPU Instances"))
	r.Register(replacement)

	assert.Same(t, gpuprice.Parser(replacement), r.Get(gpuprice.ProviderNebius))
	assert.Len(t, r.List(), 1)
}
