package layout

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggerFallbackWarning 宽度回退时输出 warn 日志；默认不输出任何内容。
func TestLoggerFallbackWarning(t *testing.T) {
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	opts := plainOptions()
	opts.FallbackWidth = 10
	e := mustEngine(opts)
	_, err := e.Layout(Plain("abc"), 0, newStubFace())
	require.NoError(t, err)
	_, err = e.Layout(Plain("abc"), 0, newStubFace())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "using fallback")
	assert.Contains(t, out, "cache hit")
}
