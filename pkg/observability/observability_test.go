package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetricsForTesting()

	m.ObserveResolution("image")
	m.ObserveResolution("image")
	m.ObserveResolution("none")
	m.ObserveSave("ok")
	m.ObserveSave("invalid")
	m.ObserveDenial()

	assert.InDelta(t, 2, testutil.ToFloat64(m.LocationResolutions.WithLabelValues("image")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.LocationResolutions.WithLabelValues("none")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.LocationResolutions.WithLabelValues("ip")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FindingsSaved.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FindingsSaved.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.GateDenials), 0)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "debug", "json")

	l.Debug("location strategy gave no result", "strategy", "ip")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "ip", line["strategy"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn", "text")

	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelDebug, parseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
}
