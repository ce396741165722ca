package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", false)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger("", true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{ServiceName: "llmfaker"})
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_ExportsOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	p, err := Setup(ctx, Config{
		ServiceName: "llmfaker",
		Version:     "test",
		Metrics:     true,
		Tracing:     true,
		Writer:      &buf,
	})
	require.NoError(t, err)

	counter, err := otel.GetMeterProvider().Meter("test").Int64Counter("llmfaker.test.counter")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	_, span := otel.Tracer("test").Start(ctx, "llmfaker.test.span")
	span.End()

	require.NoError(t, p.Shutdown(ctx))
	assert.Contains(t, buf.String(), "llmfaker.test.counter")
	assert.Contains(t, buf.String(), "llmfaker.test.span")
}
