package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/config"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	tp := otel.GetTracerProvider()
	prop := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(prop)
	})
}

func TestSetup_NoneKeepsGlobalProvider(t *testing.T) {
	restoreGlobals(t)
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.TracingConfig{Provider: ProviderNone}, "test", zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_StdoutExportsSpans(t *testing.T) {
	restoreGlobals(t)
	var out bytes.Buffer

	shutdown, err := setup(context.Background(), config.TracingConfig{
		Provider:    ProviderStdout,
		SampleRatio: 1,
		ServiceName: "rutea-api-test",
	}, "test", &out, zap.NewNop())
	require.NoError(t, err)

	ctx, span := otel.Tracer("test").Start(context.Background(), "CategoryRepository.GetByID")
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.NotEmpty(t, carrier.Get("traceparent"))
	assert.Contains(t, out.String(), "CategoryRepository.GetByID")
	assert.Contains(t, out.String(), "rutea-api-test")
}

func TestSetup_UnknownProvider(t *testing.T) {
	restoreGlobals(t)

	_, err := Setup(context.Background(), config.TracingConfig{Provider: "zipkin"}, "test", zap.NewNop())
	assert.Error(t, err)
}
