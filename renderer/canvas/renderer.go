package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/fitwidth/layout"
	"github.com/ByLCY/fitwidth/renderer"
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string
	Subject  string
	Keywords string
	Author   string
	Creator  string
}

// Options configures the PDF output.
type Options struct {
	// PageWidth 为页面宽度（mm），为 0 时取可用宽度加左右内边距。
	PageWidth float64
	TextColor layout.Color
	// ClickColor 用于没有前景色的可点击文字，零值时沿用 TextColor。
	ClickColor         layout.Color
	UnderlineClickable bool
	Meta               Meta
}

// DefaultOptions 返回深灰文字、蓝色下划线链接的配置。
func DefaultOptions() Options {
	return Options{
		TextColor:          layout.RGB(30, 30, 30),
		ClickColor:         layout.RGB(0x0f, 0x62, 0xfe),
		UnderlineClickable: true,
		Meta:               Meta{Creator: "fitwidth"},
	}
}

// Renderer draws layout results via github.com/tdewolff/canvas into a single PDF page.
type Renderer struct {
	face *Face
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 使用排版时的同一个 Face 创建渲染器，保证测量与绘制一致。
func NewRenderer(face *Face, opts Options) *Renderer {
	if opts.TextColor.A == 0 {
		opts.TextColor = layout.RGB(0, 0, 0)
	}
	return &Renderer{face: face, opts: opts}
}

// PageSize 返回页面宽高（mm）：高度等于总高度，至少容纳一行。
func (r *Renderer) PageSize(result *layout.Result) (float64, float64) {
	width := r.opts.PageWidth
	if width <= 0 {
		width = result.AvailableWidth + result.Padding.Horizontal()
	}
	height := max(result.TotalHeight, result.LineHeight+result.Padding.Vertical())
	return width, height
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if r.face == nil {
		return nil, fmt.Errorf("渲染器缺少字体")
	}
	width, height := r.PageSize(result)

	var buf bytes.Buffer
	writer := pdf.New(&buf, width, height, nil)
	m := r.opts.Meta
	writer.SetInfo(m.Title, m.Subject, m.Keywords, m.Author, m.Creator)

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点

	top := result.Padding.Top
	for _, line := range result.Lines {
		if !line.ParagraphBreak {
			if err := r.drawLine(ctx, line, result.Padding.Left, top, result.LineHeight); err != nil {
				return nil, err
			}
		}
		top += line.Advance
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

type placedRun struct {
	renderer.Run
	x, width float64
}

// drawLine 先画背景，再画文字；前景色与点击样式作用在文字上。
func (r *Renderer) drawLine(ctx *canvas.Context, line layout.Line, left, top, lineHeight float64) error {
	runes := []rune(line.Text)
	runs := renderer.Runs(line)
	placed := make([]placedRun, 0, len(runs))
	for _, run := range runs {
		x, err := r.face.MeasureWidth(runes, 0, run.Start)
		if err != nil {
			return err
		}
		w, err := r.face.MeasureWidth(runes, run.Start, run.End)
		if err != nil {
			return err
		}
		placed = append(placed, placedRun{Run: run, x: left + x, width: w})
	}

	for _, p := range placed {
		if !p.Style.HasBackground() {
			continue
		}
		ctx.SetFillColor(colorFromLayout(p.Style.Background))
		ctx.SetStrokeColor(color.Transparent)
		ctx.DrawPath(p.x, top, canvas.Rectangle(p.width, lineHeight))
	}

	baseline := top + r.face.Metrics().Ascent
	for _, p := range placed {
		col, underline := r.textStyle(p.Run)
		face := r.face.colored(col, underline)
		ctx.DrawText(p.x, baseline, canvas.NewTextLine(face, string(runes[p.Start:p.End]), canvas.Left))
	}
	return nil
}

func (r *Renderer) textStyle(run renderer.Run) (layout.Color, bool) {
	col := r.opts.TextColor
	if !run.Styled {
		return col, false
	}
	clickable := run.Style.Kind == layout.StyleClickable
	switch {
	case run.Style.HasForeground():
		col = run.Style.Foreground
	case clickable && r.opts.ClickColor.A != 0:
		col = r.opts.ClickColor
	}
	return col, clickable && r.opts.UnderlineClickable
}
