package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/tdewolff/argp"

	"github.com/ByLCY/fitwidth/binding"
	"github.com/ByLCY/fitwidth/config"
	"github.com/ByLCY/fitwidth/layout"
	"github.com/ByLCY/fitwidth/markup"
	"github.com/ByLCY/fitwidth/renderer"
	canvasrenderer "github.com/ByLCY/fitwidth/renderer/canvas"
	"github.com/ByLCY/fitwidth/renderer/term"
)

// Fitwidth holds the command line flags.
type Fitwidth struct {
	In      string `short:"i" desc:"标记文本文件"`
	Out     string `short:"o" default:"output/out.pdf" desc:"PDF 输出路径"`
	Config  string `short:"c" desc:"TOML 配置文件"`
	Data    string `short:"d" desc:"绑定数据：JSON 字符串或 .json/.toml 文件"`
	Debug   string `desc:"布局调试 JSON 输出路径"`
	Term    bool   `short:"t" desc:"输出到终端而不是 PDF"`
	Watch   bool   `short:"w" desc:"输入或配置变化时重新生成"`
	Verbose bool   `short:"v" desc:"输出调试日志"`
}

func main() {
	root := argp.NewCmd(&Fitwidth{}, "Fixed-width text layout with emoji-safe line breaking")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Fitwidth) Run() error {
	if cmd.In == "" {
		return argp.ShowUsage
	}
	level := slog.LevelWarn
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	layout.SetLogger(logger)

	j := &job{flags: *cmd, logger: logger, stdout: os.Stdout}
	err := j.run()
	if !cmd.Watch {
		return err
	}
	if err != nil {
		logger.Error("生成失败", "err", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return j.watch(ctx)
}

// job 串联配置、解析、布局与渲染；监听模式下跨多次运行复用引擎缓存。
type job struct {
	flags  Fitwidth
	logger *slog.Logger
	stdout io.Writer
	engine *layout.Engine
	// faceID 标识上次排版用的字体；缓存键只含字号，换字体时必须清空。
	faceID string
}

func (j *job) run() error {
	cfg, err := config.Load(j.flags.Config)
	if err != nil {
		return err
	}
	text, err := j.parse(cfg)
	if err != nil {
		return err
	}
	if j.flags.Term {
		return j.renderTerm(cfg, text)
	}
	return j.renderPDF(cfg, text)
}

func (j *job) parse(cfg config.Config) (layout.Text, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return layout.Text{}, err
	}
	p := markup.Parser{Palette: palette}
	if j.flags.Data != "" {
		if p.Data, err = binding.Load(j.flags.Data); err != nil {
			return layout.Text{}, fmt.Errorf("加载绑定数据失败: %w", err)
		}
	}
	f, err := os.Open(j.flags.In)
	if err != nil {
		return layout.Text{}, fmt.Errorf("无法打开输入文件 %s: %w", j.flags.In, err)
	}
	defer f.Close()

	text, err := p.ParseReader(j.flags.In, f)
	if err != nil {
		return layout.Text{}, fmt.Errorf("解析标记失败: %w", err)
	}
	return text, nil
}

// engineFor 在配置未变时沿用已有引擎，保留单槽缓存；字体变化时清空缓存。
func (j *job) engineFor(opts layout.Options, faceID string) (*layout.Engine, error) {
	if j.engine != nil && j.engine.Options() == opts {
		if j.faceID != faceID {
			j.logger.Debug("font changed, dropping cached layout", "face", faceID)
			j.engine.Reset()
			j.faceID = faceID
		}
		return j.engine, nil
	}
	e, err := layout.NewEngine(opts)
	if err != nil {
		return nil, err
	}
	j.engine = e
	j.faceID = faceID
	return e, nil
}

// layoutText 排版一次。测量失败时报告单行最小高度，由调用方决定是否继续。
func (j *job) layoutText(opts layout.Options, text layout.Text, width float64, face layout.Face, faceID string) (*layout.Result, error) {
	e, err := j.engineFor(opts, faceID)
	if err != nil {
		return nil, err
	}
	res, err := e.Layout(text, width, face)
	if errors.Is(err, layout.ErrMeasure) {
		minimum := face.Metrics().LineHeight() + opts.Padding.Vertical()
		j.logger.Warn("测量失败，使用单行最小高度", "err", err, "height", minimum)
		fmt.Fprintf(j.stdout, "高度：%.2f（测量失败，按单行估算）\n", minimum)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	if j.flags.Debug != "" {
		if err := writeDebug(e.Dump(res), j.flags.Debug); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (j *job) renderPDF(cfg config.Config, text layout.Text) error {
	opts, err := cfg.LayoutOptions()
	if err != nil {
		return err
	}
	face, err := canvasrenderer.LoadFace(cfg.Font, j.baseDir(), cfg.FontStyle, cfg.FontSizePt())
	if err != nil {
		return err
	}
	faceID := fmt.Sprintf("%s|%s|%s", cfg.Font, j.baseDir(), cfg.FontStyle)
	res, err := j.layoutText(opts, text, cfg.WidthMM(), face, faceID)
	if err != nil {
		return err
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer(face, canvasrenderer.Options{
		TextColor:          cfg.TextColor(),
		ClickColor:         cfg.ClickColor(),
		UnderlineClickable: cfg.UnderlineClickable(),
		Meta: canvasrenderer.Meta{
			Title:    cfg.Meta.Title,
			Subject:  cfg.Meta.Subject,
			Keywords: cfg.Meta.Keywords,
			Author:   cfg.Meta.Author,
			Creator:  "fitwidth",
		},
	})
	pdfBytes, err := r.Render(res)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(j.flags.Out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(j.flags.Out, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	fmt.Fprintf(j.stdout, "已生成 PDF：%s（%d 行，高度 %.2f mm）\n", j.flags.Out, len(res.Lines), res.TotalHeight)
	return nil
}

func (j *job) renderTerm(cfg config.Config, text layout.Text) error {
	opts, err := cfg.TermOptions()
	if err != nil {
		return err
	}
	res, err := j.layoutText(opts, text, float64(cfg.Term.Width), term.Face{}, "term")
	if err != nil {
		return err
	}
	var r renderer.Renderer = term.NewRenderer(j.stdout, term.Options{ClickColor: cfg.ClickColor()})
	out, err := r.Render(res)
	if err != nil {
		return fmt.Errorf("终端渲染失败: %w", err)
	}
	_, err = j.stdout.Write(out)
	return err
}

// baseDir 是字体相对路径的基准目录：优先配置文件所在目录。
func (j *job) baseDir() string {
	if j.flags.Config != "" {
		return filepath.Dir(j.flags.Config)
	}
	return filepath.Dir(j.flags.In)
}

func writeDebug(dump layout.DebugDump, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(dump, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
