package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"upi-service/logging"
	"upi-service/monitoring"
	"upi-service/service"
	"upi-service/upi"
)

// ---- helpers ----

type fixture struct {
	svc    *service.UPIService
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, monitoring.RegisterInstruments(mp.Meter("test")))

	core, logs := observer.New(zap.InfoLevel)
	logging.SetLogger(zap.New(core))

	t.Cleanup(func() {
		logging.SetLogger(zap.NewNop())
		_ = monitoring.RegisterInstruments(noop.NewMeterProvider().Meter("upi-service"))
	})

	return &fixture{
		svc:    service.NewUPIService(tp.Tracer("test")),
		spans:  spans,
		reader: reader,
		logs:   logs,
	}
}

func (f *fixture) decodeCounts(t *testing.T) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(t.Context(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "upi_decode_total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				status, _ := dp.Attributes.Value(attribute.Key("status"))
				counts[status.AsString()] += dp.Value
			}
		}
	}
	return counts
}

// ---- tests ----

func TestClassify(t *testing.T) {
	f := newFixture(t)

	ok, err := f.svc.Classify(t.Context(), "upi://pay?pa=a@b&pn=A")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.Classify(t.Context(), "https://example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Classify(t.Context(), "no scheme here")
	assert.ErrorIs(t, err, service.ErrInvalidURI)

	_, err = f.svc.Classify(t.Context(), "%zz://bad")
	assert.ErrorIs(t, err, service.ErrInvalidURI)

	assert.Len(t, f.spans.Ended(), 4)
}

func TestDecode_Success(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Decode(t.Context(), "  upi://pay?pa=alice@bank&pn=Alice&am=10.00&foo=bar  ")
	require.NoError(t, err)

	assert.Equal(t, "Alice", res.Payload.PayeeName)
	assert.Equal(t, "INR", res.Payload.CurrencyCode)
	assert.Equal(t, upi.Extras{"foo": "bar"}, res.Extras)

	assert.Equal(t, map[string]int64{"success": 1}, f.decodeCounts(t))

	ended := f.spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "decode_upi_uri", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("upi.status", "success"))

	entries := f.logs.FilterMessage("Decoded UPI URI").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "INR", fields["currency"])
	assert.Equal(t, true, fields["has_amount"])
	for _, v := range fields {
		assert.NotEqual(t, "alice@bank", v)
		assert.NotEqual(t, "Alice", v)
	}
}

func TestDecode_MissingField(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decode(t.Context(), "upi://pay?pa=alice@bank")

	var decodeErr *upi.Error
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, upi.MissingPayeeName, decodeErr.Code)
	assert.Equal(t, map[string]int64{"failed": 1}, f.decodeCounts(t))
}

func TestDecode_RejectsNonUPI(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Decode(t.Context(), "https://pay?pa=alice@bank&pn=Alice")
	assert.ErrorIs(t, err, service.ErrNotUPI)

	_, err = f.svc.Decode(t.Context(), "pay?pa=alice@bank&pn=Alice")
	assert.ErrorIs(t, err, service.ErrInvalidURI)

	assert.Equal(t, map[string]int64{"rejected": 2}, f.decodeCounts(t))
	assert.Equal(t, 2, f.logs.FilterMessage("Rejected URI").Len())
}

func TestDiagnose(t *testing.T) {
	f := newFixture(t)

	missing, err := f.svc.Diagnose(t.Context(), "upi://pay?tn=hello")
	require.NoError(t, err)
	assert.Equal(t, []upi.ErrorCode{upi.MissingPayeeName, upi.MissingPayeeAddress}, missing)

	missing, err = f.svc.Diagnose(t.Context(), "upi://pay?pn=A&pa=a@b")
	require.NoError(t, err)
	assert.Empty(t, missing)

	_, err = f.svc.Diagnose(t.Context(), "mailto:a@b")
	assert.ErrorIs(t, err, service.ErrNotUPI)
}
