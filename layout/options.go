package layout

import (
	"math"
	"strings"
)

// ClusterMode 决定断行时哪些字素簇不可拆分。
type ClusterMode uint8

const (
	// ClusterEmoji 只保护 emoji 簇（默认）。
	ClusterEmoji ClusterMode = iota
	// ClusterGraphemes 保护所有多 rune 字素簇，包括组合附加符号。
	ClusterGraphemes
)

// MarshalText 输出模式名。
func (m ClusterMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m ClusterMode) String() string {
	switch m {
	case ClusterEmoji:
		return "emoji"
	case ClusterGraphemes:
		return "graphemes"
	default:
		return "unknown"
	}
}

// ParseClusterMode 解析配置文件中的簇模式名，空串视为 emoji。
func ParseClusterMode(s string) (ClusterMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "emoji":
		return ClusterEmoji, true
	case "graphemes", "all":
		return ClusterGraphemes, true
	}
	return ClusterEmoji, false
}

// Options 配置排版引擎。LineSpacing 与 ParagraphSpacing 均为行高的倍数。
type Options struct {
	LineSpacing      float64 `json:"lineSpacing"`
	ParagraphSpacing float64 `json:"paragraphSpacing"`
	// ParagraphIndent 追加在每个段落分隔之后；非中文文本中超过 2 个字符时减半。
	ParagraphIndent string `json:"paragraphIndent,omitempty"`
	FirstLineIndent string `json:"firstLineIndent,omitempty"`
	// MaxConsecutiveSpaces 为段内连续空白的上限，0 表示删除所有段内空白。
	MaxConsecutiveSpaces int     `json:"maxConsecutiveSpaces"`
	Padding              Padding `json:"padding"`
	// FallbackWidth 在传入宽度扣除内边距后不可用时代替它（类似显示器宽度）。
	FallbackWidth float64     `json:"fallbackWidth,omitempty"`
	Clusters      ClusterMode `json:"clusters"`
}

// DefaultOptions 返回默认配置：单倍行距与段距，段落缩进 8 个空格，最多 4 个连续空格。
func DefaultOptions() Options {
	return Options{
		LineSpacing:          1,
		ParagraphSpacing:     1,
		ParagraphIndent:      "        ",
		MaxConsecutiveSpaces: 4,
	}
}

// Validate 校验配置，返回 *OptionsError。
func (o Options) Validate() error {
	switch {
	case !(o.LineSpacing > 0) || math.IsInf(o.LineSpacing, 0):
		return &OptionsError{Field: "LineSpacing", Reason: "must be a positive number"}
	case !(o.ParagraphSpacing >= 1) || math.IsInf(o.ParagraphSpacing, 0):
		return &OptionsError{Field: "ParagraphSpacing", Reason: "must be >= 1"}
	case o.MaxConsecutiveSpaces < 0:
		return &OptionsError{Field: "MaxConsecutiveSpaces", Reason: "must not be negative"}
	case o.Padding.Top < 0 || o.Padding.Right < 0 || o.Padding.Bottom < 0 || o.Padding.Left < 0:
		return &OptionsError{Field: "Padding", Reason: "must not be negative"}
	case o.FallbackWidth < 0 || math.IsNaN(o.FallbackWidth):
		return &OptionsError{Field: "FallbackWidth", Reason: "must not be negative"}
	case o.Clusters > ClusterGraphemes:
		return &OptionsError{Field: "Clusters", Reason: "unknown mode " + o.Clusters.String()}
	}
	return nil
}
