package logging

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

func newCapturedLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestWithLoggerRoundTrip(t *testing.T) {
	logger, _ := newCapturedLogger()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestLogErrorIncludesErrorAttr(t *testing.T) {
	logger, buf := newCapturedLogger()

	LogError(logger, "import_failed", errors.New("disk full"), slog.String("source", "feed.zip"))

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "import_failed", entry["msg"])
	assert.Equal(t, "disk full", entry["error"])
	assert.Equal(t, "feed.zip", entry["source"])
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLogHTTPRequestFields(t *testing.T) {
	logger, buf := newCapturedLogger()

	LogHTTPRequest(logger, "GET", "/api/where/current-time.json", 200, 12.5,
		slog.String("request_id", "abc"))

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "http_request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/where/current-time.json", entry["path"])
	assert.Equal(t, float64(200), entry["status"])
	assert.Equal(t, 12.5, entry["duration_ms"])
	assert.Equal(t, "abc", entry["request_id"])
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("already closed") }

func TestSafeCloseWithLoggingReportsFailure(t *testing.T) {
	logger, buf := newCapturedLogger()

	SafeCloseWithLogging(failingCloser{}, logger, "response_body")

	entry := decodeLogLine(t, buf)
	assert.Equal(t, "failed_to_close_resource", entry["msg"])
	assert.Equal(t, "response_body", entry["resource"])
}

func TestSafeCloseWithLoggingNilCloser(t *testing.T) {
	logger, buf := newCapturedLogger()

	SafeCloseWithLogging(nil, logger, "noop")

	assert.Zero(t, buf.Len())
}
