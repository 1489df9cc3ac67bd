package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestVerboseGating(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		logFn   func(l *Logger)
		want    string
	}{
		{name: "debug hidden", verbose: false, logFn: func(l *Logger) { l.Debug("hidden") }, want: ""},
		{name: "debug shown", verbose: true, logFn: func(l *Logger) { l.Debug("shown %d", 1) }, want: "DEBUG [wizard] shown 1"},
		{name: "warn always", verbose: false, logFn: func(l *Logger) { l.Warn("careful") }, want: "WARN [wizard] careful"},
		{name: "error always", verbose: false, logFn: func(l *Logger) { l.Error("boom") }, want: "ERROR [wizard] boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter("wizard", staticChecker(tt.verbose), &buf)
			tt.logFn(l)

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestFieldsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("", staticChecker(true), &buf)

	l.InfoWithFields("transition", []Field{Step("upload"), Count(2), Error(errors.New("x"))})
	assert.Contains(t, buf.String(), "INFO [main] transition [step=upload count=2 error=x]")

	buf.Reset()
	l.WithComponent("auth").Warn("switched to %s", "signup")
	assert.Contains(t, buf.String(), "WARN [auth] switched to signup")
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("ui", nil, &buf)
	l.Warn("100% done")
	assert.Contains(t, buf.String(), "100% done")
}

func TestNewFileWritesToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcgen.log")
	l, closer := NewFile("ui", func() bool { return false }, FileOptions{Path: path, MaxSizeMB: 1})
	l.Warn("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN [ui] written")
}
