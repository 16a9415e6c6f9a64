package layout

import (
	"fmt"

	"github.com/ByLCY/fitwidth/emoji"
)

// Stats 统计缓存命中情况。
type Stats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Engine 串联规范化、簇检测、断行与高度计算，并缓存最近一次结果。
// Engine 不加锁：每个 goroutine 使用独立的 Engine，或由调用方串行化。
type Engine struct {
	opts  Options
	cache layoutCache
	stats Stats
}

// NewEngine 校验配置后创建引擎。
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options { return e.opts }

// Stats returns cache statistics since creation or the last Reset.
func (e *Engine) Stats() Stats { return e.stats }

// Reset 清空缓存与统计。
func (e *Engine) Reset() {
	e.cache.reset()
	e.stats = Stats{}
}

// pass 是一次排版所需的中间数据。
type pass struct {
	text       []rune
	ranges     []StyleRange
	avail      float64
	lineHeight float64
	face       Face
	clusters   *emoji.Clusters
}

func (e *Engine) availableWidth(width float64) (float64, error) {
	pad := e.opts.Padding.Horizontal()
	if avail := width - pad; avail > 0 {
		return avail, nil
	}
	if fb := e.opts.FallbackWidth - pad; fb > 0 {
		Logger().Warn("layout: width unusable, using fallback", "width", width, "padding", pad, "fallback", fb)
		return fb, nil
	}
	return 0, fmt.Errorf("%w: width %g, padding %g, fallback %g", ErrInvalidWidth, width, pad, e.opts.FallbackWidth)
}

func (e *Engine) prepare(text Text, width float64, face Face) (*pass, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	src := []rune(text.Content)
	if err := ValidateRanges(text.Ranges, len(src)); err != nil {
		return nil, err
	}
	avail, err := e.availableWidth(width)
	if err != nil {
		return nil, err
	}
	norm := Normalize(src, e.opts.FirstLineIndent, e.opts.ParagraphIndent, e.opts.MaxConsecutiveSpaces, ContainsWideScript(src))
	p := &pass{
		text:       norm.Runes,
		ranges:     mapRanges(text.Ranges, norm.Source),
		avail:      avail,
		lineHeight: face.Metrics().LineHeight(),
		face:       face,
	}
	if e.opts.Clusters == ClusterGraphemes {
		p.clusters = emoji.Graphemes(p.text)
	} else {
		p.clusters = emoji.Find(p.text)
	}
	return p, nil
}

func (p *pass) breaker() *breaker {
	return &breaker{
		text:     p.text,
		clusters: newClusterIndex(p.clusters),
		width:    p.avail,
		face:     p.face,
	}
}

// Layout 把 text 排版到宽度 width（含左右内边距）内。
// 与上一次调用的文本、宽度、字号都相同时直接返回同一个 *Result，不做任何测量。
// 返回的 Result 只读。
func (e *Engine) Layout(text Text, width float64, face Face) (*Result, error) {
	if face == nil {
		return nil, ErrNilFace
	}
	key := newCacheKey(text, width, face.Size())
	if c, ok := e.cache.lookup(key); ok && c.result != nil {
		e.stats.Hits++
		Logger().Debug("layout: cache hit", "width", width, "size", key.fontSize)
		return c.result, nil
	}
	e.stats.Misses++

	p, err := e.prepare(text, width, face)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Lines:          []Line{},
		AvailableWidth: p.avail,
		LineHeight:     p.lineHeight,
		Padding:        e.opts.Padding,
	}
	if len(p.text) == 0 {
		e.cache.store(key, res, 0)
		return res, nil
	}

	acc := newHeightAccumulator(p.lineHeight, e.opts)
	rc := 0 // 第一个可能与当前行相交的区间
	err = p.breaker().run(func(s span) {
		if s.paragraph {
			res.Lines = append(res.Lines, Line{
				Start:          s.start,
				End:            s.end,
				ParagraphBreak: true,
				Advance:        acc.paragraph(),
			})
			return
		}
		for rc < len(p.ranges) && p.ranges[rc].End <= s.start {
			rc++
		}
		idx := len(res.Lines)
		res.Lines = append(res.Lines, Line{
			Text:   string(p.text[s.start:s.end]),
			Start:  s.start,
			End:    s.end,
			Ranges: sliceRanges(p.ranges[rc:], s.start, s.end),
			Width:  s.width,
		})
		res.Width = max(res.Width, s.width)
		acc.line(func(advance float64) { res.Lines[idx].Advance = advance })
	})
	if err != nil {
		return nil, err
	}
	res.TotalHeight = acc.finish() + e.opts.Padding.Vertical()

	Logger().Debug("layout: computed",
		"lines", len(res.Lines), "height", res.TotalHeight, "width", p.avail, "size", key.fontSize)
	e.cache.store(key, res, res.TotalHeight)
	return res, nil
}

// Height 只计算总高度（含上下内边距），不构建行列表。
// 空白文本返回 0。
func (e *Engine) Height(text Text, width float64, face Face) (float64, error) {
	if face == nil {
		return 0, ErrNilFace
	}
	key := newCacheKey(text, width, face.Size())
	if c, ok := e.cache.lookup(key); ok {
		e.stats.Hits++
		return c.height, nil
	}
	e.stats.Misses++

	p, err := e.prepare(text, width, face)
	if err != nil {
		return 0, err
	}
	if len(p.text) == 0 {
		e.cache.store(key, nil, 0)
		return 0, nil
	}
	acc := newHeightAccumulator(p.lineHeight, e.opts)
	err = p.breaker().run(func(s span) {
		if s.paragraph {
			acc.paragraph()
			return
		}
		acc.line(nil)
	})
	if err != nil {
		return 0, err
	}
	height := acc.finish() + e.opts.Padding.Vertical()
	e.cache.store(key, nil, height)
	return height, nil
}
