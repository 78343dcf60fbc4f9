package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithAndNamed(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.Named("store").With("file_id", "a-1").Info("dispatched", "command", "RemoveFile")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "dispatched", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "a-1", fields["file_id"])
	assert.Equal(t, "RemoveFile", fields["command"])
}

func TestOrNop(t *testing.T) {
	l := OrNop(nil)
	require.NotNil(t, l)
	l.Warn("discarded")

	real := Nop()
	assert.Same(t, real, OrNop(real))
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode, "")
		require.NoError(t, err)
		assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel), "info is the default level")
		assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
	}

	l, err := New("dev", "debug")
	require.NoError(t, err)
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))

	_, err = New("dev", "loud")
	assert.Error(t, err)
}

func TestCallerIsLogSite(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &Logger{SugaredLogger: zap.New(core, append(wrapperOptions(), zap.AddCaller())...).Sugar()}

	l.Info("from test")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Caller.File, "logger_test.go")
}
