package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ByLCY/fitwidth/fonts"
	"github.com/ByLCY/fitwidth/layout"
	"github.com/ByLCY/fitwidth/markup"
)

// ErrInvalidConfig 标记配置文件中的非法取值。
var ErrInvalidConfig = errors.New("invalid config")

// Padding 为 PDF 输出的内边距，长度可带单位。
type Padding struct {
	Top    Length `toml:"top"`
	Right  Length `toml:"right"`
	Bottom Length `toml:"bottom"`
	Left   Length `toml:"left"`
}

// Colors 保存文字颜色与调色板，均为十六进制字符串。
type Colors struct {
	Text      string            `toml:"text"`
	Click     string            `toml:"click"`
	Underline *bool             `toml:"underline_clickable"`
	Palette   map[string]string `toml:"palette"`
}

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string `toml:"title"`
	Author   string `toml:"author"`
	Subject  string `toml:"subject"`
	Keywords string `toml:"keywords"`
}

// Term configures -term output; widths are terminal cells.
type Term struct {
	Width int `toml:"width"`
}

// Config represents fitwidth.toml.
type Config struct {
	Font                 string  `toml:"font"`
	FontStyle            string  `toml:"font_style"`
	FontSize             Length  `toml:"font_size"`
	Width                Length  `toml:"width"`
	LineSpacing          float64 `toml:"line_spacing"`
	ParagraphSpacing     float64 `toml:"paragraph_spacing"`
	FirstLineIndent      string  `toml:"first_line_indent"`
	ParagraphIndent      string  `toml:"paragraph_indent"`
	MaxConsecutiveSpaces int     `toml:"max_consecutive_spaces"`
	Padding              Padding `toml:"padding"`
	FallbackWidth        Length  `toml:"fallback_width"`
	Clusters             string  `toml:"clusters"`
	Colors               Colors  `toml:"colors"`
	Meta                 Meta    `toml:"meta"`
	Term                 Term    `toml:"term"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	opts := layout.DefaultOptions()
	underline := true
	return Config{
		Font:                 fonts.Default,
		FontStyle:            "regular",
		FontSize:             Pt(12),
		Width:                MM(120),
		LineSpacing:          opts.LineSpacing,
		ParagraphSpacing:     opts.ParagraphSpacing,
		ParagraphIndent:      opts.ParagraphIndent,
		MaxConsecutiveSpaces: opts.MaxConsecutiveSpaces,
		Padding:              Padding{Top: MM(5), Right: MM(5), Bottom: MM(5), Left: MM(5)},
		FallbackWidth:        MM(180),
		Clusters:             opts.Clusters.String(),
		Colors: Colors{
			Text:      "#1e1e1e",
			Click:     "#0f62fe",
			Underline: &underline,
		},
		Term: Term{Width: 80},
	}
}

// Parse decodes TOML on top of DefaultConfig. Unknown keys are rejected.
func Parse(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	ClampConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path. An empty path yields DefaultConfig.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	ClampConfig(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("%w: 未知配置项 %s", ErrInvalidConfig, strings.Join(names, ", "))
}

// ClampConfig pulls soft settings back into range instead of failing.
func ClampConfig(cfg *Config) {
	if cfg.LineSpacing <= 0 {
		cfg.LineSpacing = 1
	}
	if cfg.ParagraphSpacing < 1 {
		cfg.ParagraphSpacing = 1
	}
	if cfg.MaxConsecutiveSpaces < 0 {
		cfg.MaxConsecutiveSpaces = 0
	}
	if cfg.Term.Width < 1 {
		cfg.Term.Width = 1
	}
}

// Validate 检查 ClampConfig 无法修正的取值。
func (c Config) Validate() error {
	if c.FontSize.Value <= 0 {
		return fmt.Errorf("%w: font_size 必须为正数", ErrInvalidConfig)
	}
	if c.Width.Value <= 0 {
		return fmt.Errorf("%w: width 必须为正数", ErrInvalidConfig)
	}
	if _, ok := layout.ParseClusterMode(c.Clusters); !ok {
		return fmt.Errorf("%w: 未知的 clusters 取值 %q", ErrInvalidConfig, c.Clusters)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	for key, s := range map[string]string{"text": c.Colors.Text, "click": c.Colors.Click} {
		if s == "" {
			continue
		}
		if _, err := markup.ParseColor(s); err != nil {
			return fmt.Errorf("%w: colors.%s: %w", ErrInvalidConfig, key, err)
		}
	}
	if _, err := c.LayoutOptions(); err != nil {
		return err
	}
	return nil
}

// FontSizePt returns the font size in points; bare numbers are points.
func (c Config) FontSizePt() float64 {
	if c.FontSize.Unit == UnitNone {
		return c.FontSize.Value
	}
	return c.FontSize.ToPT()
}

// WidthMM returns the layout box width in millimeters; bare numbers are millimeters.
func (c Config) WidthMM() float64 { return c.Width.ToMM() }

// LayoutOptions converts the config into engine options measured in millimeters.
func (c Config) LayoutOptions() (layout.Options, error) {
	opts, err := c.baseOptions()
	if err != nil {
		return layout.Options{}, err
	}
	opts.Padding = layout.Padding{
		Top:    c.Padding.Top.ToMM(),
		Right:  c.Padding.Right.ToMM(),
		Bottom: c.Padding.Bottom.ToMM(),
		Left:   c.Padding.Left.ToMM(),
	}
	opts.FallbackWidth = c.FallbackWidth.ToMM()
	if err := opts.Validate(); err != nil {
		return layout.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}

// TermOptions 返回终端输出用的配置：单位为单元格，不加内边距。
func (c Config) TermOptions() (layout.Options, error) {
	opts, err := c.baseOptions()
	if err != nil {
		return layout.Options{}, err
	}
	opts.FallbackWidth = float64(c.Term.Width)
	if err := opts.Validate(); err != nil {
		return layout.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return opts, nil
}

func (c Config) baseOptions() (layout.Options, error) {
	mode, ok := layout.ParseClusterMode(c.Clusters)
	if !ok {
		return layout.Options{}, fmt.Errorf("%w: 未知的 clusters 取值 %q", ErrInvalidConfig, c.Clusters)
	}
	return layout.Options{
		LineSpacing:          c.LineSpacing,
		ParagraphSpacing:     c.ParagraphSpacing,
		ParagraphIndent:      c.ParagraphIndent,
		FirstLineIndent:      c.FirstLineIndent,
		MaxConsecutiveSpaces: c.MaxConsecutiveSpaces,
		Clusters:             mode,
	}, nil
}

// Palette parses [colors.palette] into layout colors for markup aliases.
func (c Config) Palette() (map[string]layout.Color, error) {
	if len(c.Colors.Palette) == 0 {
		return nil, nil
	}
	out := make(map[string]layout.Color, len(c.Colors.Palette))
	for name, s := range c.Colors.Palette {
		col, err := markup.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("%w: colors.palette.%s: %w", ErrInvalidConfig, name, err)
		}
		out[name] = col
	}
	return out, nil
}

// TextColor returns colors.text, or the zero color when unset.
func (c Config) TextColor() layout.Color { return c.color(c.Colors.Text) }

// ClickColor returns colors.click, or the zero color when unset.
func (c Config) ClickColor() layout.Color { return c.color(c.Colors.Click) }

// UnderlineClickable reports whether clickable runs are underlined in the PDF.
func (c Config) UnderlineClickable() bool {
	return c.Colors.Underline == nil || *c.Colors.Underline
}

// color 假定 Validate 已通过。
func (c Config) color(s string) layout.Color {
	if s == "" {
		return layout.Color{}
	}
	col, err := markup.ParseColor(s)
	if err != nil {
		return layout.Color{}
	}
	return col
}
