package layout

// Normalized 是规范化后的文本。Source[j] 为 Runes[j] 在原文中的 rune 下标，
// 注入的缩进字符记为 -1。
type Normalized struct {
	Runes  []rune
	Source []int
}

func (n Normalized) String() string { return string(n.Runes) }

// ContainsWideScript 判断文本中是否出现 CJK 统一表意文字（U+4E00–U+9FA5）。
func ContainsWideScript(text []rune) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FA5 {
			return true
		}
	}
	return false
}

// halveIndent 在非宽字符文本中把超过 2 个字符的缩进减半，保留后半段。
func halveIndent(indent []rune, wideScript bool) []rune {
	if wideScript || len(indent) <= 2 {
		return indent
	}
	return indent[len(indent)/2:]
}

// Normalize 单次扫描完成空白规范化：
//   - 删除 \r，制表符视为空格；
//   - 连续空白最多保留 maxSpaces 个，紧跟换行时整体丢弃；
//   - 全文开头与每段开头的空白丢弃；
//   - 连续换行（中间只夹空白）合并为一个段落分隔，末尾换行丢弃；
//   - 段落分隔后追加 paragraphIndent，首个非空白字符前追加 firstIndent。
func Normalize(text []rune, firstIndent, paragraphIndent string, maxSpaces int, wideScript bool) Normalized {
	first := halveIndent([]rune(firstIndent), wideScript)
	para := halveIndent([]rune(paragraphIndent), wideScript)
	maxSpaces = max(maxSpaces, 0)

	out := make([]rune, 0, len(text)+len(first))
	src := make([]int, 0, cap(out))
	inject := func(indent []rune) {
		for _, r := range indent {
			out = append(out, r)
			src = append(src, -1)
		}
	}

	var spaces []int // 缓冲空白的原文下标
	started := false
	pendingBreak := -1 // 待输出段落分隔对应的第一个换行

	for i, r := range text {
		switch r {
		case '\r':
		case '\n':
			spaces = spaces[:0]
			if started && pendingBreak < 0 {
				pendingBreak = i
			}
		case ' ', '\t':
			if !started || pendingBreak >= 0 {
				continue
			}
			if len(spaces) < maxSpaces {
				spaces = append(spaces, i)
			}
		default:
			switch {
			case pendingBreak >= 0:
				out = append(out, '\n')
				src = append(src, pendingBreak)
				inject(para)
				pendingBreak = -1
			case !started:
				inject(first)
				started = true
			}
			for _, s := range spaces {
				out = append(out, ' ')
				src = append(src, s)
			}
			spaces = spaces[:0]
			out = append(out, r)
			src = append(src, i)
		}
	}
	return Normalized{Runes: out, Source: src}
}
