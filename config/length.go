package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit represents the unit a length was written in.
type Unit int

const (
	UnitNone Unit = iota // 无单位：PDF 下按 mm，终端下按单元格
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// Length preserves a numeric value with its unit, e.g. "12pt" or "4mm".
type Length struct {
	Value float64
	Unit  Unit
}

// Pt constructs a length in points.
func Pt(v float64) Length { return Length{Value: v, Unit: UnitPT} }

// MM constructs a length in millimeters.
func MM(v float64) Length { return Length{Value: v, Unit: UnitMM} }

func (l Length) IsZero() bool { return l.Value == 0 }

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// mm 返回以毫米计的值；无单位的长度原样返回。
func (l Length) mm() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// To converts the length to target. Unit-less lengths are returned as-is.
func (l Length) To(target Unit) float64 {
	if l.Unit == UnitNone {
		return l.Value
	}
	mm := l.mm()
	switch target {
	case UnitPT:
		if l.Unit == UnitPT {
			return l.Value
		}
		return mm * MmToPt
	case UnitCM:
		return mm / 10
	case UnitIN:
		return mm / 25.4
	default:
		return mm
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPT() float64 { return l.To(UnitPT) }

// ParseLength parses "12pt", "4.5 mm", "1in" or a bare number.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, nil
	}
	unit := UnitNone
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	if f < 0 {
		return Length{}, fmt.Errorf("长度不能为负: %q", value)
	}
	return Length{Value: f, Unit: unit}, nil
}

// UnmarshalText lets TOML accept lengths written as strings.
func (l *Length) UnmarshalText(text []byte) error {
	parsed, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Length) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalTOML 允许直接写数字（无单位）。
func (l *Length) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		return l.UnmarshalText([]byte(x))
	case int64:
		*l = Length{Value: float64(x)}
	case float64:
		*l = Length{Value: x}
	default:
		return fmt.Errorf("长度必须是字符串或数字，得到 %T", v)
	}
	if l.Value < 0 {
		return fmt.Errorf("长度不能为负: %v", v)
	}
	return nil
}
