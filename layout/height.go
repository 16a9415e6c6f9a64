package layout

// heightAccumulator 累加内容高度。
// 文本行的贡献要等下一个事件才能确定：后面还有文本行时为 lineHeight*lineSpacing，
// 紧跟段落分隔或文本结束时只计 lineHeight。
type heightAccumulator struct {
	lineHeight       float64
	lineSpacing      float64
	paragraphSpacing float64

	total   float64
	pending bool
	settle  func(advance float64)
}

func newHeightAccumulator(lineHeight float64, opts Options) *heightAccumulator {
	return &heightAccumulator{
		lineHeight:       lineHeight,
		lineSpacing:      opts.LineSpacing,
		paragraphSpacing: opts.ParagraphSpacing,
	}
}

func (h *heightAccumulator) resolve(advance float64) {
	if !h.pending {
		return
	}
	h.total += advance
	if h.settle != nil {
		h.settle(advance)
	}
	h.pending = false
	h.settle = nil
}

// line 记录一行文本；settle 可为 nil，否则在该行贡献确定时回调。
func (h *heightAccumulator) line(settle func(advance float64)) {
	h.resolve(h.lineHeight * h.lineSpacing)
	h.pending = true
	h.settle = settle
}

// paragraph 记录一个段落分隔并返回它的贡献。
func (h *heightAccumulator) paragraph() float64 {
	h.resolve(h.lineHeight)
	advance := h.lineHeight * max(h.paragraphSpacing-h.lineSpacing, 0)
	h.total += advance
	return advance
}

// finish 结算最后一行并返回内容高度（不含内边距）。
func (h *heightAccumulator) finish() float64 {
	h.resolve(h.lineHeight)
	return h.total
}
