package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/fitwidth/layout"
	"github.com/ByLCY/fitwidth/renderer"
)

func loadFace(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace("", "", "", 12)
	require.NoError(t, err)
	return face
}

func TestFaceMeasure(t *testing.T) {
	face := loadFace(t)
	assert.Equal(t, 12.0, face.Size())

	m := face.Metrics()
	assert.Positive(t, m.Ascent)
	assert.Positive(t, m.Descent)
	// 12pt 的行高应在几毫米量级。
	assert.InDelta(t, 12*PtToMm, m.LineHeight(), 3)

	text := []rune("hello world")
	whole, err := face.MeasureWidth(text, 0, len(text))
	require.NoError(t, err)
	half, err := face.MeasureWidth(text, 0, 5)
	require.NoError(t, err)
	assert.Positive(t, half)
	assert.Greater(t, whole, half)

	zero, err := face.MeasureWidth(text, 3, 3)
	require.NoError(t, err)
	assert.Zero(t, zero)

	_, err = face.MeasureWidth(text, 4, 20)
	assert.Error(t, err)
}

// TestLoadFaceErrors 字号非法或字体不存在时报错。
func TestLoadFaceErrors(t *testing.T) {
	_, err := LoadFace("", "", "", 0)
	assert.Error(t, err)
	_, err = LoadFace("nope.ttf", t.TempDir(), "", 12)
	assert.Error(t, err)
}

// TestLayoutWithCanvasFace 用真实字体排版，除单个超宽单元外每行不超过可用宽度。
func TestLayoutWithCanvasFace(t *testing.T) {
	face := loadFace(t)
	opts := layout.DefaultOptions()
	opts.Padding = layout.Padding{Top: 5, Right: 5, Bottom: 5, Left: 5}
	e, err := layout.NewEngine(opts)
	require.NoError(t, err)

	res, err := e.Layout(layout.Plain("The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs."), 60, face)
	require.NoError(t, err)
	require.Greater(t, len(res.Lines), 3)
	for _, l := range res.Lines {
		if l.ParagraphBreak || l.Len() == 1 {
			continue
		}
		assert.LessOrEqual(t, l.Width, res.AvailableWidth+1e-9, l.Text)
	}
}

func TestRenderPDF(t *testing.T) {
	face := loadFace(t)
	e, err := layout.NewEngine(layout.DefaultOptions())
	require.NoError(t, err)
	text := layout.Text{
		Content: "Hello world, click here to buy.",
		Ranges: []layout.StyleRange{
			layout.BackgroundForeground(0, 5, layout.RGB(0xff, 0xee, 0), layout.RGB(0x33, 0x33, 0x33)),
			layout.Clickable(13, 23, "buy"),
		},
	}
	res, err := e.Layout(text, 40, face)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Meta.Title = "fitwidth"
	out, err := NewRenderer(face, opts).Render(res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewRenderer(face, opts).Render(nil)
	assert.Error(t, err)
}

func TestPageSize(t *testing.T) {
	r := NewRenderer(nil, Options{})
	res := &layout.Result{AvailableWidth: 50, LineHeight: 4, Padding: layout.Padding{Left: 2, Right: 3, Top: 1, Bottom: 1}}
	w, h := r.PageSize(res)
	assert.Equal(t, 55.0, w)
	assert.Equal(t, 6.0, h)

	res.TotalHeight = 30
	r = NewRenderer(nil, Options{PageWidth: 80})
	w, h = r.PageSize(res)
	assert.Equal(t, 80.0, w)
	assert.Equal(t, 30.0, h)
}

func TestTextStyle(t *testing.T) {
	opts := DefaultOptions()
	r := NewRenderer(nil, opts)
	fg := layout.RGB(1, 2, 3)

	col, underline := r.textStyle(renderer.Run{})
	assert.Equal(t, opts.TextColor, col)
	assert.False(t, underline)

	col, underline = r.textStyle(renderer.Run{Styled: true, Style: layout.Clickable(0, 1, "x")})
	assert.Equal(t, opts.ClickColor, col)
	assert.True(t, underline)

	click := layout.Clickable(0, 1, "x")
	click.Foreground = fg
	col, _ = r.textStyle(renderer.Run{Styled: true, Style: click})
	assert.Equal(t, fg, col)

	col, underline = r.textStyle(renderer.Run{Styled: true, Style: layout.Background(0, 1, fg)})
	assert.Equal(t, opts.TextColor, col)
	assert.False(t, underline)
}

// TestColoredFaces 下划线装饰作为独立参数传给 Face，且按颜色与下划线缓存。
func TestColoredFaces(t *testing.T) {
	face := loadFace(t)
	red := layout.RGB(0xff, 0, 0)

	plain := face.colored(red, false)
	underlined := face.colored(red, true)
	require.NotNil(t, plain)
	require.NotNil(t, underlined)
	assert.Empty(t, plain.Deco)
	assert.Len(t, underlined.Deco, 1)
	assert.Equal(t, 12.0, underlined.Size)

	assert.Same(t, underlined, face.colored(red, true))
	assert.NotSame(t, plain, face.colored(layout.RGB(0, 0, 0xff), false))
}
