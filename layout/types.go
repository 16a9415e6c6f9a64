package layout

// 该文件定义排版输入与结果，供排版计算、渲染与调试 JSON 共用。

// Text 是一段待排版的文本及其样式区间。
// Ranges 的偏移量以 rune 为单位，落在 Content 的坐标系内。
type Text struct {
	Content string       `json:"content"`
	Ranges  []StyleRange `json:"ranges,omitempty"`
}

// Plain 构造一个不带样式的文本。
func Plain(content string) Text { return Text{Content: content} }

// Result 保存一次排版的全部行与总高度，返回后不可修改。
type Result struct {
	Lines       []Line  `json:"lines"`
	TotalHeight float64 `json:"totalHeight"`
	// Width 为最宽一行的测量宽度。
	Width float64 `json:"width"`
	// AvailableWidth 为实际参与折行的宽度（已扣除左右内边距，可能来自回退宽度）。
	AvailableWidth float64 `json:"availableWidth"`
	LineHeight     float64 `json:"lineHeight"`
	Padding        Padding `json:"padding"`
}

// Line 表示排版后的一行。
// ParagraphBreak 为 true 时该行没有文字，只贡献段间距。
type Line struct {
	Text string `json:"text,omitempty"`
	// Start/End 为该行在规范化文本中的 rune 区间 [Start, End)。
	Start          int          `json:"start"`
	End            int          `json:"end"`
	Ranges         []StyleRange `json:"ranges,omitempty"`
	ParagraphBreak bool         `json:"paragraphBreak,omitempty"`
	Width          float64      `json:"width,omitempty"`
	// Advance 是该行对总高度的贡献，渲染时用来推进到下一行顶部。
	Advance float64 `json:"advance"`
}

// Len returns the number of runes on the line.
func (l Line) Len() int { return l.End - l.Start }

// Padding 以排版单位（像素或 mm，取决于 Face）描述布局框的内边距。
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal returns Left+Right.
func (p Padding) Horizontal() float64 { return p.Left + p.Right }

// Vertical returns Top+Bottom.
func (p Padding) Vertical() float64 { return p.Top + p.Bottom }

// Color 采用 0-255 的 RGBA 数值。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB 构造一个不透明颜色。
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xff} }

// Metrics 描述字体在当前字号下的纵向度量。
type Metrics struct {
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// LineHeight 为文字实际绘制高度（ascent + descent）。
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent }

// Face 绑定了字体与字号，负责测量文本宽度。
// MeasureWidth 测量 text[start:end] 的宽度，单位与可用宽度一致。
type Face interface {
	Size() float64
	Metrics() Metrics
	MeasureWidth(text []rune, start, end int) (float64, error)
}
