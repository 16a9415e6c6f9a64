package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// StyleKind 标记样式区间的类型。
type StyleKind uint8

const (
	StylePlain StyleKind = iota
	StyleBackground
	StyleForeground
	StyleBackgroundForeground
	StyleClickable
)

var styleKindNames = [...]string{
	StylePlain:                "plain",
	StyleBackground:           "background",
	StyleForeground:           "foreground",
	StyleBackgroundForeground: "background+foreground",
	StyleClickable:            "clickable",
}

func (k StyleKind) String() string {
	if int(k) < len(styleKindNames) {
		return styleKindNames[k]
	}
	return "StyleKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText 让调试 JSON 输出可读的类型名。
func (k StyleKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// StyleRange 是一段带样式的文本区间 [Start, End)，偏移以 rune 计。
// Color 的零值（A == 0）表示未设置；Clickable 可以同时携带颜色。
type StyleRange struct {
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Kind       StyleKind `json:"kind"`
	Background Color     `json:"background,omitzero"`
	Foreground Color     `json:"foreground,omitzero"`
	ClickID    string    `json:"clickId,omitempty"`
}

// Background 构造背景色区间。
func Background(start, end int, bg Color) StyleRange {
	return StyleRange{Start: start, End: end, Kind: StyleBackground, Background: bg}
}

// Foreground 构造前景色区间。
func Foreground(start, end int, fg Color) StyleRange {
	return StyleRange{Start: start, End: end, Kind: StyleForeground, Foreground: fg}
}

// BackgroundForeground 构造同时带背景色和前景色的区间。
func BackgroundForeground(start, end int, bg, fg Color) StyleRange {
	return StyleRange{Start: start, End: end, Kind: StyleBackgroundForeground, Background: bg, Foreground: fg}
}

// Clickable 构造可点击区间，clickID 对排版而言是不透明的。
func Clickable(start, end int, clickID string) StyleRange {
	return StyleRange{Start: start, End: end, Kind: StyleClickable, ClickID: clickID}
}

// HasBackground reports whether a background fill should be painted.
func (r StyleRange) HasBackground() bool { return r.Background.A != 0 }

// HasForeground reports whether the run uses its own text color.
func (r StyleRange) HasForeground() bool { return r.Foreground.A != 0 }

// Len returns End-Start.
func (r StyleRange) Len() int { return r.End - r.Start }

func (r StyleRange) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%d,%d)", r.Kind, r.Start, r.End)
	if r.ClickID != "" {
		fmt.Fprintf(&sb, " click=%q", r.ClickID)
	}
	return sb.String()
}

// checkPayload 校验 Kind 与颜色/点击负载是否匹配。
func (r StyleRange) checkPayload() string {
	switch r.Kind {
	case StylePlain:
		if r.HasBackground() || r.HasForeground() || r.ClickID != "" {
			return "plain range must not carry a payload"
		}
	case StyleBackground:
		if !r.HasBackground() || r.HasForeground() || r.ClickID != "" {
			return "background range needs exactly a background color"
		}
	case StyleForeground:
		if !r.HasForeground() || r.HasBackground() || r.ClickID != "" {
			return "foreground range needs exactly a foreground color"
		}
	case StyleBackgroundForeground:
		if !r.HasBackground() || !r.HasForeground() || r.ClickID != "" {
			return "background+foreground range needs both colors"
		}
	case StyleClickable:
		if r.ClickID == "" {
			return "clickable range needs a click id"
		}
	default:
		return "unknown style kind " + r.Kind.String()
	}
	return ""
}

// ValidateRanges 校验样式表：区间有序、不重叠、不越界，负载与类型一致。
// 非法区间直接报错，绝不静默截断。
func ValidateRanges(ranges []StyleRange, length int) error {
	prevEnd := 0
	for i, r := range ranges {
		switch {
		case r.Start > r.End:
			return &RangeError{Index: i, Range: r, Reason: "start > end"}
		case r.Start < 0 || r.End > length:
			return &RangeError{Index: i, Range: r, Reason: fmt.Sprintf("out of bounds [0,%d)", length)}
		case i > 0 && r.Start < prevEnd:
			return &RangeError{Index: i, Range: r, Reason: "overlaps or precedes the previous range"}
		}
		if reason := r.checkPayload(); reason != "" {
			return &RangeError{Index: i, Range: r, Reason: reason}
		}
		prevEnd = r.End
	}
	return nil
}

// mapRanges 把源文本坐标的区间映射到规范化文本。
// src[j] 为规范化后第 j 个 rune 的来源下标，注入的缩进为 -1。
// 一个区间若被注入字符隔断，会被拆成多段，负载保持不变。
func mapRanges(ranges []StyleRange, src []int) []StyleRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]StyleRange, 0, len(ranges))
	ri := 0
	open := -1 // 当前正在延伸的 out 下标
	for j, s := range src {
		if s < 0 {
			open = -1
			continue
		}
		for ri < len(ranges) && ranges[ri].End <= s {
			ri++
			open = -1
		}
		if ri >= len(ranges) {
			break
		}
		r := ranges[ri]
		if s < r.Start {
			open = -1
			continue
		}
		if open >= 0 && out[open].End == j {
			out[open].End = j + 1
			continue
		}
		clone := r
		clone.Start, clone.End = j, j+1
		out = append(out, clone)
		open = len(out) - 1
	}
	return out
}

// sliceRanges 取出与 [a, b) 相交的区间并换算为行内偏移。
// 跨越断点的区间在两行各保留一半，点击 id 在两半上都保留。
func sliceRanges(ranges []StyleRange, a, b int) []StyleRange {
	var out []StyleRange
	for _, r := range ranges {
		if r.End <= a {
			continue
		}
		if r.Start >= b {
			break
		}
		local := r
		local.Start = max(0, r.Start-a)
		local.End = min(b-a, r.End-a)
		if local.Start >= local.End {
			continue
		}
		out = append(out, local)
	}
	return out
}
