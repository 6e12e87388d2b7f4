package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "svc", "warn")

	l.Info("hidden")
	l.Warnf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARNING] [svc]")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "", "debug")

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	l.WithFields(ctx, Fields{"b": 2, "a": 1}).Info("hi")

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "[INFO] [request_id=req-1 a=1 b=2]"), line)
	assert.True(t, strings.HasSuffix(line, "hi"), line)
}

func TestNew_WritesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir, "svc", "info")
	require.NoError(t, err)
	l.Info("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	assert.Equal(t, INFO, parseLevel("verbose"))
	assert.Equal(t, ERROR, parseLevel(" error "))
}
