package term

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ByLCY/fitwidth/layout"
)

// Face 以终端单元格为单位测量宽度，每行占一个单元格高度。
type Face struct{}

var _ layout.Face = Face{}

// Size 恒为 1：终端不区分字号。
func (Face) Size() float64 { return 1 }

// Metrics 返回一行一个单元格高度。
func (Face) Metrics() layout.Metrics { return layout.Metrics{Ascent: 1} }

// MeasureWidth 按字素簇累加单元格宽度。
func (Face) MeasureWidth(text []rune, start, end int) (float64, error) {
	if start < 0 || end > len(text) || start > end {
		return 0, fmt.Errorf("测量区间 [%d,%d) 超出文本长度 %d", start, end, len(text))
	}
	return float64(StringWidth(string(text[start:end]))), nil
}

// StringWidth 返回 s 在终端中占用的单元格数。
func StringWidth(s string) int {
	total := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		total += graphemeCellWidth(g.Str())
	}
	return total
}

func graphemeCellWidth(text string) int {
	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}
