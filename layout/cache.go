package layout

import "slices"

type cacheKey struct {
	content  string
	ranges   []StyleRange
	width    float64
	fontSize float64
}

func (k cacheKey) equal(o cacheKey) bool {
	return k.content == o.content &&
		k.width == o.width &&
		k.fontSize == o.fontSize &&
		slices.Equal(k.ranges, o.ranges)
}

// layoutCache 只保存最近一次的结果，新 key 直接替换旧条目。
// height-only 的计算只填 height，result 为 nil。
type layoutCache struct {
	valid  bool
	key    cacheKey
	result *Result
	height float64
}

func newCacheKey(text Text, width, fontSize float64) cacheKey {
	return cacheKey{
		content:  text.Content,
		ranges:   slices.Clone(text.Ranges),
		width:    width,
		fontSize: fontSize,
	}
}

func (c *layoutCache) lookup(key cacheKey) (*layoutCache, bool) {
	if !c.valid || !c.key.equal(key) {
		return nil, false
	}
	return c, true
}

func (c *layoutCache) store(key cacheKey, result *Result, height float64) {
	c.valid = true
	c.key = key
	c.result = result
	c.height = height
}

func (c *layoutCache) reset() {
	*c = layoutCache{}
}
