package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected logrus.Level
		wantErr  bool
	}{
		{name: "default_info", opts: Options{}, expected: logrus.InfoLevel},
		{name: "configured_warn", opts: Options{Level: "WARN"}, expected: logrus.WarnLevel},
		{name: "single_v_debug", opts: Options{Level: "warn", Verbosity: 1}, expected: logrus.DebugLevel},
		{name: "double_v_trace", opts: Options{Verbosity: 2}, expected: logrus.TraceLevel},
		{name: "invalid_level", opts: Options{Level: "chatty"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := resolveLevel(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestRotateFileHook(t *testing.T) {
	buf := &bytes.Buffer{}
	hook := newRotateFileHook(logrus.InfoLevel, buf)

	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
	assert.NotContains(t, hook.Levels(), logrus.DebugLevel)

	entry := GetLogger("test").WithField("expression", "date")
	entry.Message = "evaluated"
	entry.Level = logrus.InfoLevel
	require.NoError(t, hook.Fire(entry))
	assert.Contains(t, buf.String(), "evaluated")
	assert.Contains(t, buf.String(), "date")
}
