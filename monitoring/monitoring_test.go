package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestDefaultInstrumentsAreUsable(t *testing.T) {
	assert.NotPanics(t, func() {
		DecodeCounter.Add(t.Context(), 1)
		ExtrasCount.Record(t.Context(), 3)
		PayeeAmount.Record(t.Context(), 12.5)
		HTTPServerDuration.Record(t.Context(), 4)
	})
}

func TestRegisterInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, RegisterInstruments(mp.Meter("test")))
	t.Cleanup(func() {
		_ = RegisterInstruments(noop.NewMeterProvider().Meter("upi-service"))
	})

	DecodeCounter.Add(t.Context(), 2, metric.WithAttributes(attribute.String("status", "success")))
	ExtrasCount.Record(t.Context(), 1)
	PayeeAmount.Record(t.Context(), 99.9)
	HTTPServerDuration.Record(t.Context(), 7)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]metricdata.Aggregation{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = m.Data
	}
	assert.Contains(t, names, "upi_decode_total")
	assert.Contains(t, names, "upi_extras_count")
	assert.Contains(t, names, "upi_payee_amount")
	assert.Contains(t, names, "http_server_duration_milliseconds")

	sum, ok := names["upi_decode_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}
