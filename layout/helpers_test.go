package layout

import (
	"errors"

	"github.com/ByLCY/fitwidth/emoji"
)

// stubFace 默认每个 rune 宽 1，行高 10，并记录测量次数。
type stubFace struct {
	size    float64
	metrics Metrics
	calls   int
	err     error
	widthOf func(r rune) float64
	// shaped 为 true 时完整的 emoji 簇按宽 2 计算，模拟字形合成。
	shaped bool
}

func newStubFace() *stubFace {
	return &stubFace{size: 10, metrics: Metrics{Ascent: 8, Descent: 2}}
}

func (f *stubFace) Size() float64    { return f.size }
func (f *stubFace) Metrics() Metrics { return f.metrics }

func (f *stubFace) MeasureWidth(text []rune, start, end int) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if start < 0 || end > len(text) || start > end {
		return 0, errors.New("stub: bad range")
	}
	var clusters []emoji.Range
	if f.shaped {
		clusters = emoji.All(text)
	}
	w := 0.0
	for k := start; k < end; {
		if c, ok := clusterStartingAt(clusters, k); ok && c.End <= end {
			w += 2
			k = c.End
			continue
		}
		if f.widthOf != nil {
			w += f.widthOf(text[k])
		} else {
			w++
		}
		k++
	}
	return w, nil
}

func clusterStartingAt(clusters []emoji.Range, k int) (emoji.Range, bool) {
	for _, c := range clusters {
		if c.Start == k {
			return c, true
		}
	}
	return emoji.Range{}, false
}

// plainOptions 关闭缩进，便于断言。
func plainOptions() Options {
	opts := DefaultOptions()
	opts.ParagraphIndent = ""
	return opts
}

func mustEngine(opts Options) *Engine {
	e, err := NewEngine(opts)
	if err != nil {
		panic(err)
	}
	return e
}

func lineTexts(res *Result) []string {
	out := make([]string, 0, len(res.Lines))
	for _, l := range res.Lines {
		if l.ParagraphBreak {
			out = append(out, "\n")
			continue
		}
		out = append(out, l.Text)
	}
	return out
}
