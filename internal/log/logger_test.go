package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longkey1/exnota/internal/result"
)

func readEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNamedContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug").Named("background").Named("ConnectUsecase")

	logger.Info("hello", map[string]any{"k": "v"})

	entries := readEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "background.ConnectUsecase", entries[0]["context"])
	assert.Equal(t, "hello", entries[0]["message"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "v", entries[0]["k"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Debug("dropped", nil)
	logger.Info("dropped", nil)
	logger.Warn("kept", nil)

	entries := readEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["message"])
}

func TestTraceStartFinish(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	step := logger.Trace("Calling repo.getAuthConfig")
	step.Outcome(nil)

	entries := readEntries(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "Calling repo.getAuthConfig: Start", entries[0]["message"])
	assert.Equal(t, "Calling repo.getAuthConfig: Finish", entries[1]["message"])
	assert.Contains(t, entries[1], "duration_ms")
}

func TestTraceFailWithResultError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	r := result.Fail[int]("storage-set", "Could not set auth config", errors.New("disk full"), result.Metadata{"key": "auth"})
	logger.Trace("Calling repo.saveAuthConfig").Outcome(r.Err())

	entries := readEntries(t, &buf)
	require.Len(t, entries, 2)
	failed := entries[1]
	assert.Equal(t, "error", failed["level"])
	assert.Equal(t, "Calling repo.saveAuthConfig: Error", failed["message"])
	assert.Equal(t, "storage-set", failed["error_type"])
	assert.Equal(t, "Could not set auth config", failed["error_message"])
	assert.Equal(t, map[string]any{"key": "auth"}, failed["error_metadata"])
	assert.Equal(t, map[string]any{"name": "*errors.errorString", "message": "disk full"}, failed["error"])
}

func TestErrorFieldsPlainError(t *testing.T) {
	fields := ErrorFields(errors.New("plain"))
	assert.Equal(t, map[string]any{"name": "*errors.errorString", "message": "plain"}, fields["error"])
	assert.Nil(t, ErrorFields(nil))
}
