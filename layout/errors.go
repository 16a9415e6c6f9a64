package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for the layout package.
var (
	// ErrInvalidWidth 表示扣除内边距后可用宽度不大于 0，且回退宽度同样不可用。
	ErrInvalidWidth = errors.New("layout: invalid available width")

	// ErrMeasure 表示宽度测量回调失败。
	ErrMeasure = errors.New("layout: width measurement failed")

	// ErrMalformedRange 表示输入的样式区间非法。
	ErrMalformedRange = errors.New("layout: malformed style range")

	// ErrInvalidOptions 表示排版配置非法。
	ErrInvalidOptions = errors.New("layout: invalid options")

	// ErrNilFace 表示未提供测量字体。
	ErrNilFace = errors.New("layout: face is nil")
)

// MeasureError 记录测量失败的区间，Unwrap 同时暴露 ErrMeasure 与原始错误。
type MeasureError struct {
	Start, End int
	Err        error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("layout: measure [%d,%d): %v", e.Start, e.End, e.Err)
}

func (e *MeasureError) Unwrap() []error { return []error{ErrMeasure, e.Err} }

// RangeError 描述被拒绝的样式区间。
type RangeError struct {
	Index  int
	Range  StyleRange
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("layout: style range #%d %s: %s", e.Index, e.Range, e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrMalformedRange }

// OptionsError 描述非法的配置项。
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return fmt.Sprintf("layout: option %s: %s", e.Field, e.Reason)
}

func (e *OptionsError) Unwrap() error { return ErrInvalidOptions }
