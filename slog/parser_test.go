package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	gpuprice "github.com/becloudready/gpu-price"
	"github.com/becloudready/gpu-price/mock"
	"github.com/becloudready/gpu-price/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger() (*stdslog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return stdslog.New(stdslog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs row count on success", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		p := slog.NewLoggingParser(&mock.Parser{
			ProviderFn: func() gpuprice.Provider { return gpuprice.ProviderNebius },
			ParseFn: func(string) ([]gpuprice.Row, error) {
				return []gpuprice.Row{{Provider: "nebius", Product: "NVIDIA H200 SXM"}}, nil
			},
		}, logger)

		rows, err := p.Parse("<html></html>")
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		out := buf.String()
		assert.Contains(t, out, "parsed pricing page")
		assert.Contains(t, out, "provider=nebius")
		assert.Contains(t, out, "rows=1")
	})

	t.Run("logs error code on failure and passes the error through", func(t *testing.T) {
		t.Parallel()

		logger, buf := newBufLogger()
		p := slog.NewLoggingParser(&mock.Parser{
			ProviderFn: func() gpuprice.Provider { return gpuprice.ProviderDenvr },
			ParseFn: func(string) ([]gpuprice.Row, error) {
				return nil, gpuprice.Errorf(gpuprice.EEMPTY, "GPUInstances collection found but empty")
			},
		}, logger)

		_, err := p.Parse("<html></html>")
		require.Error(t, err)
		assert.Equal(t, gpuprice.EEMPTY, gpuprice.ErrorCode(err))

		out := buf.String()
		assert.Contains(t, out, "parse failed")
		assert.Contains(t, out, "code=empty_result")
	})
}

func TestLoggingParser_Provider(t *testing.T) {
	t.Parallel()

	logger, _ := newBufLogger()
	p := slog.NewLoggingParser(&mock.Parser{
		ProviderFn: func() gpuprice.Provider { return gpuprice.ProviderCrusoe },
	}, logger)

	assert.Equal(t, gpuprice.ProviderCrusoe, p.Provider())
}
