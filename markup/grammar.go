package markup

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 文本状态只识别转义、插值和方括号；进入 [ 之后切换到标签状态解析属性。
var (
	markupLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Escaped", Pattern: `\\[\[\]\\$]`},
			{Name: "Expr", Pattern: `\$\{[^}]*\}`},
			{Name: "SpanEnd", Pattern: `\[/\]`},
			{Name: "SpanOpen", Pattern: `\[`, Action: lexer.Push("Tag")},
			{Name: "Text", Pattern: `[^\[\\$]+`},
			{Name: "Dollar", Pattern: `\$`},
			{Name: "Backslash", Pattern: `\\`},
		},
		"Tag": {
			{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
			{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
			{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
			{Name: "Eq", Pattern: `=`},
			{Name: "TagEnd", Pattern: `\]`, Action: lexer.Pop()},
		},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
		participle.Elide("Whitespace"),
	)
)

// Document is the root AST node of a markup string.
type Document struct {
	Nodes []*Node `parser:"@@*"`
}

// Node is either a styled span or a run of plain text.
type Node struct {
	Span     *Span     `parser:"  @@"`
	Fragment *Fragment `parser:"| @@"`
}

// Span 形如 [bg=#fe0 click="buy"]body[/]，不允许嵌套。
type Span struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Attrs []*Attr        `parser:"SpanOpen @@* TagEnd"`
	Body  []*Fragment    `parser:"@@* SpanEnd"`
}

// Attr is a key=value pair inside a span tag.
type Attr struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident Eq"`
	Value *Value         `parser:"@@"`
}

// Value of an attribute.
type Value struct {
	Color  *string        `parser:"  @Color"`
	String *StringLiteral `parser:"| @String"`
	Ident  *string        `parser:"| @Ident"`
}

// Raw returns the value as written, unquoted.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.Color != nil:
		return *v.Color
	case v.String != nil:
		return string(*v.String)
	case v.Ident != nil:
		return *v.Ident
	}
	return ""
}

// Fragment is a piece of span body or top-level text.
type Fragment struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Text      *string        `parser:"  @Text"`
	Escaped   *string        `parser:"| @Escaped"`
	Expr      *string        `parser:"| @Expr"`
	Dollar    *string        `parser:"| @Dollar"`
	Backslash *string        `parser:"| @Backslash"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}
