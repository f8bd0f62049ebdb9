package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTracedApp(t *testing.T) (*fiber.App, *tracetest.SpanRecorder) {
	t.Helper()
	prop := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prop) })

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	app := fiber.New()
	app.Use(Tracing(tp))
	app.Get("/api/puntos/:id", func(c *fiber.Ctx) error {
		// handlers see the server span through the user context
		if !trace.SpanContextFromContext(c.UserContext()).IsValid() {
			return c.SendStatus(fiber.StatusTeapot)
		}
		if c.Params("id") == "0" {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})
	return app, recorder
}

func attr(span sdktrace.ReadOnlySpan, key attribute.Key) attribute.Value {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestTracing_NamesSpanByRoute(t *testing.T) {
	app, recorder := newTracedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/puntos/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /api/puntos/:id", spans[0].Name())
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, "/api/puntos/:id", attr(spans[0], "http.route").AsString())
	assert.Equal(t, int64(200), attr(spans[0], "http.response.status_code").AsInt64())
}

func TestTracing_ContinuesIncomingTrace(t *testing.T) {
	app, recorder := newTracedApp(t)

	req := httptest.NewRequest("GET", "/api/puntos/7", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	_, err := app.Test(req)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	app, recorder := newTracedApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/puntos/0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}
