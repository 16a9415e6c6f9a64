package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestJob(flags Fitwidth) (*job, *bytes.Buffer) {
	var out bytes.Buffer
	return &job{
		flags:  flags,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdout: &out,
	}, &out
}

func TestRunTerm(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.fw", "hello ${who}")
	cfg := writeFile(t, dir, "fitwidth.toml", "[term]\nwidth = 5\n")

	j, out := newTestJob(Fitwidth{In: in, Config: cfg, Data: `{"who":"world"}`, Term: true})
	require.NoError(t, j.run())
	assert.Equal(t, "hello\nworld\n", out.String())

	// 配置不变时沿用同一个引擎
	e := j.engine
	out.Reset()
	require.NoError(t, j.run())
	assert.Same(t, e, j.engine)
	assert.Equal(t, 1, e.Stats().Hits)
}

func TestRunPDF(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.fw", "Hello [bg=#ffee00 click=\"buy\"]world[/]\n\nnext paragraph")
	outPath := filepath.Join(dir, "out", "text.pdf")
	debugPath := filepath.Join(dir, "debug", "layout.json")

	j, out := newTestJob(Fitwidth{In: in, Out: outPath, Debug: debugPath})
	require.NoError(t, j.run())
	assert.Contains(t, out.String(), outPath)

	pdf, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	dump, err := os.ReadFile(debugPath)
	require.NoError(t, err)
	assert.Contains(t, string(dump), `"clickId": "buy"`)
}

// TestRunFontChangeDropsCache 只改字体时不能复用按旧字体测量的排版。
func TestRunFontChangeDropsCache(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.fw", "iiiiiiiiii WWWW")
	cfg := writeFile(t, dir, "fitwidth.toml", "font = \"goregular\"\nwidth = \"40mm\"\n")
	outPath := filepath.Join(dir, "out.pdf")

	j, _ := newTestJob(Fitwidth{In: in, Config: cfg, Out: outPath})
	require.NoError(t, j.run())
	e := j.engine
	require.Equal(t, 1, e.Stats().Misses)

	writeFile(t, dir, "fitwidth.toml", "font = \"gomono\"\nwidth = \"40mm\"\n")
	require.NoError(t, j.run())
	assert.Same(t, e, j.engine)
	assert.Equal(t, 0, e.Stats().Hits)
	assert.Equal(t, 1, e.Stats().Misses)

	// 字体不变时照常命中缓存
	require.NoError(t, j.run())
	assert.Equal(t, 1, e.Stats().Hits)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	j, _ := newTestJob(Fitwidth{In: filepath.Join(dir, "missing.fw"), Term: true})
	assert.Error(t, j.run())

	bad := writeFile(t, dir, "bad.fw", "[oops=1]x[/]")
	j, _ = newTestJob(Fitwidth{In: bad, Term: true})
	assert.ErrorContains(t, j.run(), "解析标记失败")

	in := writeFile(t, dir, "in.fw", "x")
	cfg := writeFile(t, dir, "bad.toml", "clusters = \"words\"\n")
	j, _ = newTestJob(Fitwidth{In: in, Config: cfg, Term: true})
	assert.Error(t, j.run())
}

func TestWatchedFiles(t *testing.T) {
	j, _ := newTestJob(Fitwidth{In: "a.fw", Config: "conf/fitwidth.toml", Data: `{"x":1}`})
	files := j.watchedFiles()
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), f)
	}

	j, _ = newTestJob(Fitwidth{In: "a.fw", Data: "data.json"})
	assert.Len(t, j.watchedFiles(), 2)
}
