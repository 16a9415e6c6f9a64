package renderer

import "github.com/ByLCY/fitwidth/layout"

// Renderer 将排版结果输出为最终产物，例如 PDF 或终端文本。
// Render 返回生成的字节数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Run 是一行内样式一致的一段，坐标为行内 rune 偏移。
// Styled 为 false 时表示区间之间的普通文本。
type Run struct {
	Start, End int
	Style      layout.StyleRange
	Styled     bool
}

// Runs 把一行切成连续的段，覆盖 [0, line.Len())；段落分隔行返回 nil。
func Runs(line layout.Line) []Run {
	n := line.Len()
	if line.ParagraphBreak || n == 0 {
		return nil
	}
	out := make([]Run, 0, 2*len(line.Ranges)+1)
	pos := 0
	for _, r := range line.Ranges {
		if r.Start > pos {
			out = append(out, Run{Start: pos, End: r.Start})
		}
		if r.End > r.Start {
			out = append(out, Run{Start: r.Start, End: r.End, Style: r, Styled: true})
		}
		pos = max(pos, r.End)
	}
	if pos < n {
		out = append(out, Run{Start: pos, End: n})
	}
	return out
}
