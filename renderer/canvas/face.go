package canvasrenderer

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/fitwidth/fonts"
	"github.com/ByLCY/fitwidth/layout"
)

// Face 把 canvas 字体面适配为 layout.Face。
// 字号以 pt 计，测量宽度与纵向度量均为 mm，与 canvas 的坐标单位一致。
type Face struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
	size   float64
	face   *canvas.FontFace

	mu    sync.Mutex
	faces map[faceKey]*canvas.FontFace
}

type faceKey struct {
	col       layout.Color
	underline bool
}

var _ layout.Face = (*Face)(nil)

// LoadFace 按 src 加载字体（内置名、embed: 前缀或文件路径）。
func LoadFace(src, baseDir, style string, sizePt float64) (*Face, error) {
	if sizePt <= 0 {
		return nil, fmt.Errorf("字号必须大于 0: %g", sizePt)
	}
	data, err := fonts.Resolve(src, baseDir)
	if err != nil {
		return nil, err
	}
	st := parseFontStyle(style)
	family := canvas.NewFontFamily("fitwidth")
	if err := family.LoadFont(data, 0, st); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", src, err)
	}
	return NewFace(family, st, sizePt), nil
}

// NewFace wraps an already loaded font family.
func NewFace(family *canvas.FontFamily, style canvas.FontStyle, sizePt float64) *Face {
	return &Face{
		family: family,
		style:  style,
		size:   sizePt,
		face:   family.Face(sizePt, color.Black, style, canvas.FontNormal),
		faces:  map[faceKey]*canvas.FontFace{},
	}
}

// Size returns the font size in points.
func (f *Face) Size() float64 { return f.size }

// Metrics 返回 ascent/descent（mm）。
func (f *Face) Metrics() layout.Metrics {
	m := f.face.Metrics()
	return layout.Metrics{Ascent: m.Ascent, Descent: m.Descent}
}

// MeasureWidth 测量 text[start:end] 的宽度（mm）。
func (f *Face) MeasureWidth(text []rune, start, end int) (float64, error) {
	if start < 0 || end > len(text) || start > end {
		return 0, fmt.Errorf("测量区间 [%d,%d) 超出文本长度 %d", start, end, len(text))
	}
	if start == end {
		return 0, nil
	}
	return f.face.TextWidth(string(text[start:end])), nil
}

// colored 返回指定颜色（可选下划线）的字体面，按需创建并缓存。
func (f *Face) colored(col layout.Color, underline bool) *canvas.FontFace {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := faceKey{col: col, underline: underline}
	if face, ok := f.faces[key]; ok {
		return face
	}
	args := []interface{}{colorFromLayout(col), f.style, canvas.FontNormal}
	if underline {
		args = append(args, canvas.FontUnderline)
	}
	face := f.family.Face(f.size, args...)
	f.faces[key] = face
	return face
}

func parseFontStyle(style string) canvas.FontStyle {
	s := strings.ToLower(strings.TrimSpace(style))
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
