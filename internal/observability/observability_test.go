package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewLogger_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "seed run started")

	assert.Contains(t, buf.String(), `"run_id":"run-123"`)
	assert.Contains(t, buf.String(), `"msg":"seed run started"`)
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, "text")
	logger.Info("hidden")
	logger.With("table", "users").Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "table=users")
}

func TestRunIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", RunIDFromContext(context.Background()))
}

func TestRepoLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewRepoLogger(NewLogger(&buf, slog.LevelDebug, "text"))

	l.LogOperation(context.Background(), "delete", "reviews", 4)
	l.LogError(context.Background(), errors.New("boom"), "create", "listings")

	out := buf.String()
	assert.Contains(t, out, "repository delete")
	assert.Contains(t, out, "rows=4")
	assert.Contains(t, out, "repository error")
	assert.Contains(t, out, "error=boom")
}

func TestSeedMetrics_Counters(t *testing.T) {
	m := NewSeedMetrics()
	m.ObserveCreated("users")
	m.ObserveCreated("users")
	m.ObserveDeleted("reviews", 7)
	m.ObserveTableRows("bookings", 10)
	m.TrackQuery("create", "users")()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RowsCreated.WithLabelValues("users")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.RowsDeleted.WithLabelValues("reviews")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.TableRows.WithLabelValues("bookings")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.QueryLatency))

	m.ObserveRun(time.Now(), errors.New("failed"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccess))

	m.ObserveRun(time.Now(), nil)
	assert.Greater(t, testutil.ToFloat64(m.LastSuccess), 0.0)
}

func TestSeedMetrics_NilIsNoop(t *testing.T) {
	var m *SeedMetrics
	assert.NotPanics(t, func() {
		m.ObserveCreated("users")
		m.ObserveDeleted("users", 1)
		m.ObserveTableRows("users", 1)
		m.ObserveRun(time.Now(), nil)
		m.TrackQuery("count", "users")()
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "seed.prom")))
}

func TestSeedMetrics_WriteTextfile(t *testing.T) {
	m := NewSeedMetrics()
	m.ObserveCreated("listings")

	path := filepath.Join(t.TempDir(), "seed.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `alxtravel_seed_rows_created_total{table="listings"} 1`)
}

func TestStartStep_RecordsErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	_, ok := StartStep(context.Background(), tracer, "users")
	EndStep(ok, nil)
	_, failed := StartStep(context.Background(), tracer, "bookings")
	EndStep(failed, errors.New("constraint"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "seed.users", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "seed.bookings", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
