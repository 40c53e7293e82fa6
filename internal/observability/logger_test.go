// File: internal/observability/logger_test.go
package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spreado/spreado-cli/internal/config"
)

// syncBuffer adapts a string builder to zapcore.WriteSyncer.
type syncBuffer struct{ strings.Builder }

func (b *syncBuffer) Sync() error { return nil }

func TestInitializeConsoleLoggerColorizesLevels(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &syncBuffer{}
	Initialize(config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "spreado-test",
	}, buf)

	logger := GetLogger()
	logger.Info("hello from the console sink")
	logger.Warn("something odd")

	out := buf.String()
	assert.Contains(t, out, "hello from the console sink")
	assert.Contains(t, out, colorGreen)
	assert.Contains(t, out, colorYellow)
	assert.Contains(t, out, colorReset)
	assert.Contains(t, out, "spreado-test")
}

func TestInitializeOnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &syncBuffer{}
	second := &syncBuffer{}
	Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "first"}, first)
	Initialize(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "second"}, second)

	GetLogger().Info("routed to the first sink")
	assert.Contains(t, first.String(), "routed to the first sink")
	assert.Empty(t, second.String())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &syncBuffer{}
	Initialize(config.LoggerConfig{Level: "chatty", Format: "console", ServiceName: "t"}, buf)

	logger := GetLogger()
	logger.Debug("must be filtered")
	logger.Info("must pass")

	out := buf.String()
	assert.NotContains(t, out, "must be filtered")
	assert.Contains(t, out, "must pass")
}

func TestFileSinkWritesJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logFile := filepath.Join(t.TempDir(), "spreado.log")
	Initialize(config.LoggerConfig{
		Level:       "info",
		Format:      "console",
		ServiceName: "spreado-test",
		LogFile:     logFile,
		MaxSize:     1,
	}, &syncBuffer{})

	GetLogger().Info("persisted line")
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)

	line := strings.TrimSpace(strings.Split(string(data), "\n")[0])
	var entry map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "persisted line", entry["msg"])
}

func TestGetLoggerBeforeInitializeReturnsFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	// The fallback must be usable without panicking.
	logger.Info("fallback message")
}

func TestGetEncoderJSONForUnknownFormat(t *testing.T) {
	enc := getEncoder(config.LoggerConfig{Format: "logfmt"})
	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "x"}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}

func TestSyncWithoutLoggerIsSafe(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	Sync()
}
