package emoji

import (
	"unicode"

	"github.com/go-text/typesetting/unicodedata"
)

const (
	zwj               = '\u200d'
	variationText     = '\ufe0e'
	variationEmoji    = '\ufe0f'
	enclosingKeycap   = '\u20e3'
	modifierFirst     = 0x1F3FB
	modifierLast      = 0x1F3FF
	cancelTag         = 0xE007F
	tagFirst          = 0xE0020
	tagLast           = 0xE007E
	unknownKindString = "Unknown"
)

// Kind classifies an emoji cluster.
type Kind uint8

const (
	// KindSimple is a single pictographic code point.
	KindSimple Kind = iota
	// KindPresentation is a code point followed by U+FE0F.
	KindPresentation
	// KindModified carries a Fitzpatrick skin tone modifier.
	KindModified
	// KindZWJ joins several emoji with U+200D.
	KindZWJ
	// KindFlag is a pair of regional indicators.
	KindFlag
	// KindKeycap is a digit, '#' or '*' followed by U+20E3.
	KindKeycap
	// KindTag is a subdivision flag built from tag characters.
	KindTag
)

var kindNames = [...]string{
	KindSimple:       "Simple",
	KindPresentation: "Presentation",
	KindModified:     "Modified",
	KindZWJ:          "ZWJ",
	KindFlag:         "Flag",
	KindKeycap:       "Keycap",
	KindTag:          "Tag",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return unknownKindString
}

// MarshalText keeps debug JSON readable.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsPictographic reports whether r has the Extended_Pictographic property.
func IsPictographic(r rune) bool {
	return unicode.Is(unicodedata.Extended_Pictographic, r)
}

// IsRegionalIndicator reports whether r is one of U+1F1E6..U+1F1FF.
func IsRegionalIndicator(r rune) bool {
	return unicode.Is(unicodedata.GraphemeBreakRegional_Indicator, r)
}

// IsModifier reports whether r is a skin tone modifier.
func IsModifier(r rune) bool { return r >= modifierFirst && r <= modifierLast }

// isKeycapBase 只有 0-9、# 和 * 能与 U+20E3 组成键帽。
func isKeycapBase(r rune) bool { return (r >= '0' && r <= '9') || r == '#' || r == '*' }

func isTag(r rune) bool { return r >= tagFirst && r <= tagLast }

// Classify reports whether cluster (one grapheme cluster) is an emoji and
// which kind of sequence it is.
func Classify(cluster []rune) (Kind, bool) {
	if len(cluster) == 0 {
		return KindSimple, false
	}
	var (
		pictographic bool
		regional     int
		keycap       bool
		tagged       bool
		modified     bool
		joined       bool
		presentation bool
		textOnly     bool
	)
	for _, r := range cluster {
		switch {
		case r == zwj:
			joined = true
		case r == variationEmoji:
			presentation = true
		case r == variationText:
			textOnly = true
		case r == enclosingKeycap:
			keycap = isKeycapBase(cluster[0])
		case r == cancelTag || isTag(r):
			tagged = true
		case IsModifier(r):
			modified = true
		case IsRegionalIndicator(r):
			regional++
		case IsPictographic(r):
			pictographic = true
		}
	}

	switch {
	case keycap:
		return KindKeycap, true
	case regional > 0:
		// 单个区域指示符也不可拆分，按旗帜处理
		return KindFlag, true
	case !pictographic:
		return KindSimple, false
	case textOnly && !presentation && len(cluster) == 2:
		// U+FE0E 显式要求文本样式
		return KindSimple, false
	case joined:
		return KindZWJ, true
	case tagged:
		return KindTag, true
	case modified:
		return KindModified, true
	case presentation:
		return KindPresentation, true
	default:
		return KindSimple, true
	}
}
