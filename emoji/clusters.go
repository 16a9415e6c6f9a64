package emoji

import "github.com/go-text/typesetting/segmenter"

// Range is a half-open rune range [Start, End) covering one grapheme cluster.
type Range struct {
	Start int  `json:"start"`
	End   int  `json:"end"`
	Kind  Kind `json:"kind"`
}

// Len returns the number of runes in the cluster.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether index i falls inside the cluster.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Clusters lazily walks the emoji clusters of a buffer.
// It is restartable through Reset and is not safe for concurrent use.
type Clusters struct {
	seg  segmenter.Segmenter
	iter *segmenter.GraphemeIterator
	all  bool
}

// Find returns an iterator over the emoji clusters of text.
// The buffer must not be modified while the iterator is in use.
func Find(text []rune) *Clusters {
	c := &Clusters{}
	c.seg.Init(text)
	c.iter = c.seg.GraphemeIterator()
	return c
}

// Graphemes is like Find but also yields every other multi-rune grapheme
// cluster (combining marks, conjoining jamo...), which lets callers keep
// all of them indivisible.
func Graphemes(text []rune) *Clusters {
	c := Find(text)
	c.all = true
	return c
}

// Next returns the next cluster in text order.
func (c *Clusters) Next() (Range, bool) {
	for c.iter.Next() {
		g := c.iter.Grapheme()
		kind, ok := Classify(g.Text)
		if !ok && !(c.all && len(g.Text) > 1) {
			continue
		}
		return Range{Start: g.Offset, End: g.Offset + len(g.Text), Kind: kind}, true
	}
	return Range{}, false
}

// Reset rewinds the iterator to the start of the buffer.
func (c *Clusters) Reset() {
	c.iter = c.seg.GraphemeIterator()
}

// Collect drains the remaining clusters into a slice.
func (c *Clusters) Collect() []Range {
	var out []Range
	for {
		r, ok := c.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

// All returns every emoji cluster of text.
func All(text []rune) []Range {
	return Find(text).Collect()
}
