package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{buf: h.buf, level: h.level, attrs: append(h.attrs, attrs...)}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

// lastRecord decodes the most recent record the handler captured.
func (h *testHandler) lastRecord(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var data map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &data))
	return data
}

func TestEnrichLogger(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	enriched := EnrichLogger(logger, "user_7d_spend", "user", "v1")
	require.NotNil(t, enriched)
	enriched.Info("hello")

	data := h.lastRecord(t)
	assert.Equal(t, "user_7d_spend", data["feature"])
	assert.Equal(t, "user", data["entity"])
	assert.Equal(t, "v1", data["version"])
}

func TestEnrichLogger_NilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "a", "b", "c"))
}

func TestLogHelpers_EmitExpectedFields(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	LogRegister(logger, "user_7d_spend", "user", "v1", 2)
	data := h.lastRecord(t)
	assert.Equal(t, "feature version registered", data["msg"])
	assert.Equal(t, "INFO", data["level"])
	assert.Equal(t, float64(2), data["dependencies"])

	LogDeprecate(logger, "user_7d_spend", "user", "v1")
	data = h.lastRecord(t)
	assert.Equal(t, "feature version deprecated", data["msg"])

	LogLookupMiss(logger, "missing", "user")
	data = h.lastRecord(t)
	assert.Equal(t, "feature lookup miss", data["msg"])
	assert.Equal(t, "DEBUG", data["level"])

	LogEvaluate(logger, "user_7d_spend", 1.5)
	data = h.lastRecord(t)
	assert.Equal(t, "feature evaluated", data["msg"])
	assert.Equal(t, 1.5, data["duration_ms"])

	LogEvaluateError(logger, "user_7d_spend", errors.New("boom"))
	data = h.lastRecord(t)
	assert.Equal(t, "feature evaluation failed", data["msg"])
	assert.Equal(t, "boom", data["error"])

	LogJournalError(logger, "register", errors.New("disk full"))
	data = h.lastRecord(t)
	assert.Equal(t, "journal append failed", data["msg"])
	assert.Equal(t, "WARN", data["level"])
}

func TestLogHelpers_NilLoggerSafe(t *testing.T) {
	// None of these may panic with a nil logger.
	LogRegister(nil, "a", "b", "v1", 0)
	LogDeprecate(nil, "a", "b", "v1")
	LogLookupMiss(nil, "a", "b")
	LogEvaluate(nil, "a", 1)
	LogEvaluateError(nil, "a", errors.New("x"))
	LogJournalError(nil, "register", errors.New("x"))
}
