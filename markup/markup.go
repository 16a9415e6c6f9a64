package markup

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/fitwidth/binding"
	"github.com/ByLCY/fitwidth/layout"
)

// ErrSyntax 是所有标记解析错误的哨兵值。
var ErrSyntax = errors.New("markup: syntax error")

// Error 携带出错位置。
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("markup: %s: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return ErrSyntax }

// Parser 把带样式标记的文本转换成 layout.Text。
// Palette 提供颜色别名（如 fg=accent），Data 用于 ${path} 插值。
type Parser struct {
	Palette map[string]layout.Color
	Data    any
}

// Parse parses markup with an empty palette and no bound data.
func Parse(s string) (layout.Text, error) {
	return (&Parser{}).ParseString("", s)
}

// ParseString parses markup held in a string. name is used in error positions.
func (p *Parser) ParseString(name, s string) (layout.Text, error) {
	doc, err := documentParser.ParseString(name, s)
	if err != nil {
		return layout.Text{}, wrapParseError(err)
	}
	return p.build(doc)
}

// ParseReader parses markup from r.
func (p *Parser) ParseReader(name string, r io.Reader) (layout.Text, error) {
	doc, err := documentParser.Parse(name, r)
	if err != nil {
		return layout.Text{}, wrapParseError(err)
	}
	return p.build(doc)
}

func wrapParseError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &Error{Pos: perr.Position(), Msg: perr.Message()}
	}
	return fmt.Errorf("%w: %v", ErrSyntax, err)
}

// builder 累积正文，并以 rune 计数记录偏移。
type builder struct {
	p      *Parser
	sb     strings.Builder
	runes  int
	ranges []layout.StyleRange
}

func (p *Parser) build(doc *Document) (layout.Text, error) {
	b := &builder{p: p}
	for _, n := range doc.Nodes {
		switch {
		case n.Span != nil:
			if err := b.span(n.Span); err != nil {
				return layout.Text{}, err
			}
		case n.Fragment != nil:
			b.fragment(n.Fragment)
		}
	}
	text := layout.Text{Content: b.sb.String(), Ranges: b.ranges}
	if err := layout.ValidateRanges(text.Ranges, b.runes); err != nil {
		return layout.Text{}, fmt.Errorf("markup: %w", err)
	}
	return text, nil
}

func (b *builder) write(s string) {
	b.sb.WriteString(s)
	b.runes += utf8.RuneCountInString(s)
}

func (b *builder) fragment(f *Fragment) {
	switch {
	case f.Text != nil:
		b.write(*f.Text)
	case f.Escaped != nil:
		b.write((*f.Escaped)[1:])
	case f.Expr != nil:
		b.write(b.expand(*f.Expr))
	case f.Dollar != nil:
		b.write(*f.Dollar)
	case f.Backslash != nil:
		b.write(*f.Backslash)
	}
}

// expand 解析 ${path}；缺少数据或路径不存在时保留原样。
func (b *builder) expand(expr string) string {
	if b.p.Data == nil {
		return expr
	}
	s, err := binding.Lookup(b.p.Data, expr[2:len(expr)-1])
	if err != nil {
		return expr
	}
	return s
}

func (b *builder) span(s *Span) error {
	style, err := b.style(s)
	if err != nil {
		return err
	}
	start := b.runes
	for _, f := range s.Body {
		b.fragment(f)
	}
	if style.Kind == layout.StylePlain || b.runes == start {
		return nil
	}
	style.Start, style.End = start, b.runes
	b.ranges = append(b.ranges, style)
	return nil
}

// style 根据属性推导区间类型：有 click 即可点击，否则按颜色组合决定。
func (b *builder) style(s *Span) (layout.StyleRange, error) {
	var r layout.StyleRange
	seen := map[string]bool{}
	for _, a := range s.Attrs {
		key := strings.ToLower(a.Key)
		switch key {
		case "background":
			key = "bg"
		case "foreground", "color":
			key = "fg"
		case "id":
			key = "click"
		}
		if seen[key] {
			return r, &Error{Pos: a.Pos, Msg: fmt.Sprintf("duplicate attribute %q", a.Key)}
		}
		seen[key] = true

		switch key {
		case "bg", "fg":
			c, err := b.color(a.Value)
			if err != nil {
				return r, &Error{Pos: a.Pos, Msg: err.Error()}
			}
			if key == "bg" {
				r.Background = c
			} else {
				r.Foreground = c
			}
		case "click":
			id := binding.Expand(a.Value.Raw(), b.p.Data)
			if id == "" {
				return r, &Error{Pos: a.Pos, Msg: "empty click id"}
			}
			r.ClickID = id
		default:
			return r, &Error{Pos: a.Pos, Msg: fmt.Sprintf("unknown attribute %q", a.Key)}
		}
	}
	switch {
	case r.ClickID != "":
		r.Kind = layout.StyleClickable
	case r.HasBackground() && r.HasForeground():
		r.Kind = layout.StyleBackgroundForeground
	case r.HasBackground():
		r.Kind = layout.StyleBackground
	case r.HasForeground():
		r.Kind = layout.StyleForeground
	}
	return r, nil
}

func (b *builder) color(v *Value) (layout.Color, error) {
	switch {
	case v.Color != nil:
		return ParseColor(*v.Color)
	case v.Ident != nil:
		if c, ok := b.p.Palette[*v.Ident]; ok {
			return c, nil
		}
		return layout.Color{}, fmt.Errorf("unknown color %q", *v.Ident)
	default:
		return ParseColor(v.Raw())
	}
}

// ParseColor 解析 #rgb、#rrggbb 与 #rrggbbaa。完全透明的颜色视为非法。
func ParseColor(s string) (layout.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return layout.Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return layout.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c := layout.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	if c.A == 0 {
		return layout.Color{}, fmt.Errorf("color %q is fully transparent", s)
	}
	return c, nil
}

// Escape 转义文本中的标记字符，使其按原样显示。
func Escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `$`, `\$`)
	return r.Replace(s)
}
