package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/sigman78/simplebar"
)

// Renderer draws progress as steps are reported.
type Renderer interface {
	// Add advances the display by steps and redraws it.
	Add(steps uint) error
	// Finish leaves the cursor on a fresh line.
	Finish() error
}

// Progress is a nil-safe wrapper around a Renderer.
// A nil *Progress is valid; all methods are no-ops, making it trivial
// to disable output in tests or non-interactive pipelines.
type Progress struct {
	r Renderer
}

// NewProgress builds the renderer named by cfg.Renderer.
func NewProgress(cfg *Config) (*Progress, error) {
	switch cfg.Renderer {
	case RendererSimple:
		return &Progress{r: newSimpleRenderer(cfg)}, nil
	case RendererRich:
		return &Progress{r: newRichRenderer(cfg)}, nil
	}
	return nil, fmt.Errorf("%w: unknown renderer %q", ErrInvalidConfig, cfg.Renderer)
}

// Add advances the display by steps.
func (p *Progress) Add(steps uint) error {
	if p == nil {
		return nil
	}
	return p.r.Add(steps)
}

// Finish marks the display as complete.
func (p *Progress) Finish() error {
	if p == nil {
		return nil
	}
	return p.r.Finish()
}

// simpleRenderer prints a simplebar.ProgressBar on every update.
type simpleRenderer struct {
	bar *simplebar.ProgressBar
	out io.Writer
}

func newSimpleRenderer(cfg *Config) *simpleRenderer {
	bar := simplebar.New(cfg.Steps)
	bar.SetWidth(cfg.Width)
	bar.SetLeftEndcapSymbol(cfg.LeftEndcap)
	bar.SetRightEndcapSymbol(cfg.RightEndcap)
	bar.SetDoneSymbol(cfg.Done)
	bar.SetTodoSymbol(cfg.Todo)
	if !cfg.Overwrite {
		bar.DisableOverwrite()
	}
	return &simpleRenderer{bar: bar, out: cfg.output()}
}

func (s *simpleRenderer) Add(steps uint) error {
	s.bar.Increment(steps)
	if err := s.bar.Print(s.out); err != nil {
		return err
	}
	if !s.bar.Overwrite() {
		return s.newline()
	}
	return nil
}

func (s *simpleRenderer) Finish() error {
	if !s.bar.Overwrite() {
		return nil
	}
	return s.newline()
}

func (s *simpleRenderer) newline() error {
	if _, err := io.WriteString(s.out, "\n"); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}

// richRenderer delegates to schollz/progressbar, themed with the same
// symbols, and adds a step counter. It always redraws in place and needs
// Steps to fit in an int; Validate enforces both.
type richRenderer struct {
	bar  *progressbar.ProgressBar
	left uint // steps until full; the library rejects adds past max
}

func newRichRenderer(cfg *Config) *richRenderer {
	out := cfg.output()
	inner := int(cfg.Width) - 2
	if inner < 1 {
		inner = 1
	}
	bar := progressbar.NewOptions(int(cfg.Steps),
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetWidth(inner),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        string(cfg.Done),
			SaucerPadding: string(cfg.Todo),
			BarStart:      string(cfg.LeftEndcap),
			BarEnd:        string(cfg.RightEndcap),
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(out, "\n")
		}),
	)
	return &richRenderer{bar: bar, left: cfg.Steps}
}

func (r *richRenderer) Add(steps uint) error {
	steps = min(steps, r.left)
	r.left -= steps
	return r.bar.Add(int(steps))
}

func (r *richRenderer) Finish() error {
	return r.bar.Finish()
}
