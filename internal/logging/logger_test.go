package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		"WARNING": LogLevelWarn,
		"INFO":    LogLevelInfo,
		" debug ": LogLevelDebug,
		"TRACE":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLevelGating(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(LogLevelInfo, core)

	l.Debug("hidden %d", 1)
	l.Trace("hidden %d", 2)
	l.Info("[Orchestrator] run %s", "abc")
	l.Warn("careful")
	l.Error("boom")

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "[Orchestrator] run abc", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	}
}

func TestWithKeepsLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(LogLevelTrace, core).With("run_id", "r1")

	l.Trace("step %s", "clean")
	entries := logs.AllUntimed()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "[TRACE] step clean", entries[0].Message)
		assert.Equal(t, "r1", entries[0].ContextMap()["run_id"])
	}
	assert.Equal(t, LogLevelTrace, l.GetLevel())
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.Error("ignored")
	assert.Equal(t, LogLevelError, l.GetLevel())
}
