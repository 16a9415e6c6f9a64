package term

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/fitwidth/layout"
	"github.com/ByLCY/fitwidth/renderer"
)

// Options configures terminal output.
type Options struct {
	// ClickColor 用于没有前景色的可点击文字，零值表示沿用终端默认色。
	ClickColor layout.Color
}

// Renderer 把排版结果输出为带 ANSI 样式的文本行。
type Renderer struct {
	styles *lipgloss.Renderer
	opts   Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 根据 w 的终端能力选择颜色档位；w 不是终端时输出纯文本。
func NewRenderer(w io.Writer, opts Options) *Renderer {
	return &Renderer{styles: lipgloss.NewRenderer(w), opts: opts}
}

// Styles exposes the lipgloss renderer, e.g. to force a color profile.
func (r *Renderer) Styles() *lipgloss.Renderer { return r.styles }

// Render 逐行输出；Advance 按单元格行数取整，段落间距变成空行。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	var sb strings.Builder
	indent := strings.Repeat(" ", cells(result.Padding.Left))
	row := 0
	top := result.Padding.Top
	for _, line := range result.Lines {
		if !line.ParagraphBreak {
			for target := cells(top); row < target; row++ {
				sb.WriteByte('\n')
			}
			sb.WriteString(indent)
			sb.WriteString(r.renderLine(line))
			sb.WriteByte('\n')
			row++
		}
		top += line.Advance
	}
	return []byte(sb.String()), nil
}

func (r *Renderer) renderLine(line layout.Line) string {
	runes := []rune(line.Text)
	var sb strings.Builder
	for _, run := range renderer.Runs(line) {
		s := string(runes[run.Start:run.End])
		if !run.Styled {
			sb.WriteString(s)
			continue
		}
		sb.WriteString(r.style(run.Style).Render(s))
	}
	return sb.String()
}

func (r *Renderer) style(sr layout.StyleRange) lipgloss.Style {
	st := r.styles.NewStyle()
	if sr.HasBackground() {
		st = st.Background(hexColor(sr.Background))
	}
	switch {
	case sr.HasForeground():
		st = st.Foreground(hexColor(sr.Foreground))
	case sr.Kind == layout.StyleClickable && r.opts.ClickColor.A != 0:
		st = st.Foreground(hexColor(r.opts.ClickColor))
	}
	if sr.Kind == layout.StyleClickable {
		st = st.Underline(true)
	}
	return st
}

func hexColor(c layout.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func cells(v float64) int {
	return max(int(math.Round(v)), 0)
}
