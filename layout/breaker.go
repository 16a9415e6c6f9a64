package layout

import (
	"slices"

	"github.com/ByLCY/fitwidth/emoji"
)

// clusterIndex 按需从检测器拉取簇区间，支持任意下标回查。
type clusterIndex struct {
	src    *emoji.Clusters
	ranges []emoji.Range
	done   bool
}

func newClusterIndex(src *emoji.Clusters) *clusterIndex {
	return &clusterIndex{src: src}
}

// at 返回包含下标 i 的簇。
func (c *clusterIndex) at(i int) (emoji.Range, bool) {
	for !c.done && (len(c.ranges) == 0 || c.ranges[len(c.ranges)-1].End <= i) {
		r, ok := c.src.Next()
		if !ok {
			c.done = true
			break
		}
		c.ranges = append(c.ranges, r)
	}
	k, _ := slices.BinarySearchFunc(c.ranges, i, func(r emoji.Range, i int) int {
		switch {
		case r.End <= i:
			return -1
		case r.Start > i:
			return 1
		}
		return 0
	})
	if k < len(c.ranges) && c.ranges[k].Contains(i) {
		return c.ranges[k], true
	}
	return emoji.Range{}, false
}

// span 是断行器产出的一行，坐标为规范化文本的 rune 区间。
type span struct {
	start, end int
	width      float64
	paragraph  bool
}

// breaker 按宽度把规范化文本切成行，保证任何行都不含半个簇。
type breaker struct {
	text     []rune
	clusters *clusterIndex
	width    float64
	face     Face

	// ws[k] 为当前行 [lineStart, lineStart+k) 的宽度。
	ws []float64
}

func (b *breaker) measure(start, end int) (float64, error) {
	w, err := b.face.MeasureWidth(b.text, start, end)
	if err != nil {
		Logger().Warn("layout: measure failed", "start", start, "end", end, "err", err)
		return 0, &MeasureError{Start: start, End: end, Err: err}
	}
	return w, nil
}

// widthTo 返回 [lineStart, end) 的宽度，优先复用本行已有的测量结果。
func (b *breaker) widthTo(lineStart, end int) (float64, error) {
	if k := end - lineStart; k < len(b.ws) {
		return b.ws[k], nil
	}
	return b.measure(lineStart, end)
}

// cutAt 决定 i 处超宽时的断点及该行宽度。
func (b *breaker) cutAt(lineStart, i int) (int, float64, error) {
	cut := i
	if c, ok := b.clusters.at(i); ok {
		whole, err := b.measure(lineStart, c.End)
		if err != nil {
			return 0, 0, err
		}
		if whole <= b.width {
			return c.End, whole, nil
		}
		cut = c.Start
		if cut <= lineStart {
			// 整簇单独超宽，仍然放在本行。
			return c.End, whole, nil
		}
	}
	if cut <= lineStart {
		// 单个 rune 已超宽，保留它以保证推进。
		cut = lineStart + 1
	}
	w, err := b.widthTo(lineStart, cut)
	return cut, w, err
}

// run 逐个 rune 推进，按顺序把行交给 emit。
func (b *breaker) run(emit func(span)) error {
	n := len(b.text)
	lineStart := 0
	b.ws = append(b.ws[:0], 0)

	for i := 0; i < n; {
		if b.text[i] == '\n' {
			if i > lineStart {
				emit(span{start: lineStart, end: i, width: b.ws[i-lineStart]})
			}
			emit(span{start: i, end: i + 1, paragraph: true})
			lineStart = i + 1
			i = lineStart
			b.ws = b.ws[:1]
			continue
		}

		w, err := b.measure(lineStart, i+1)
		if err != nil {
			return err
		}
		b.ws = append(b.ws, w)
		if w <= b.width {
			i++
			continue
		}

		cut, cutWidth, err := b.cutAt(lineStart, i)
		if err != nil {
			return err
		}
		emit(span{start: lineStart, end: cut, width: cutWidth})

		// 折行产生的行首空格不输出。
		for cut < n && b.text[cut] == ' ' {
			if c, ok := b.clusters.at(cut); ok && c.Start == cut {
				break
			}
			cut++
		}
		lineStart = cut
		i = cut
		b.ws = b.ws[:1]
	}
	if lineStart < n {
		emit(span{start: lineStart, end: n, width: b.ws[n-lineStart]})
	}
	return nil
}
