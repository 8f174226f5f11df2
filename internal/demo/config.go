package demo

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"
	"unicode/utf8"

	sanitize "github.com/mrz1836/go-sanitize"
)

// Renderer names accepted by Config.Renderer.
const (
	RendererSimple = "simple"
	RendererRich   = "rich"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all runtime configuration for a demo run.
type Config struct {
	Steps    uint          // step count that fills the bar
	StepSize uint          // steps reported by each finished task
	Tasks    int           // units of simulated work
	Workers  int           // worker pool size
	Interval time.Duration // pace of simulated work, zero means as fast as possible

	Width       uint
	LeftEndcap  rune
	RightEndcap rune
	Done        rune
	Todo        rune

	// Overwrite redraws the bar in place. When false every redraw is
	// followed by a newline.
	Overwrite bool
	Renderer  string
	Output    io.Writer // if nil, os.Stdout is used
	Debug     bool
}

// Presets mirrors the two bundled example programs.
var Presets = map[string]Config{
	"simple": {
		Steps:       100,
		StepSize:    1,
		Tasks:       100,
		Workers:     1,
		Interval:    100 * time.Millisecond,
		Width:       80,
		LeftEndcap:  '[',
		RightEndcap: ']',
		Done:        '=',
		Todo:        ' ',
		Overwrite:   true,
		Renderer:    RendererSimple,
	},
	"custom": {
		Steps:       500,
		StepSize:    5,
		Tasks:       100,
		Workers:     1,
		Interval:    100 * time.Millisecond,
		Width:       50,
		LeftEndcap:  '<',
		RightEndcap: '>',
		Done:        '-',
		Todo:        '.',
		Overwrite:   false,
		Renderer:    RendererSimple,
	},
}

// Preset returns a copy of the named preset. The custom preset writes to
// stderr like its example program does.
func Preset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	cfg := p
	if name == "custom" {
		cfg.Output = os.Stderr
	}
	return &cfg, nil
}

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	switch {
	case c.Steps == 0:
		return fmt.Errorf("%w: steps must be greater than 0", ErrInvalidConfig)
	case c.Tasks < 0:
		return fmt.Errorf("%w: tasks must not be negative", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers must be greater than 0", ErrInvalidConfig)
	case c.Interval < 0:
		return fmt.Errorf("%w: interval must not be negative", ErrInvalidConfig)
	case c.Width < 2:
		return fmt.Errorf("%w: width must be at least 2", ErrInvalidConfig)
	case c.Renderer != RendererSimple && c.Renderer != RendererRich:
		return fmt.Errorf("%w: renderer must be %q or %q", ErrInvalidConfig, RendererSimple, RendererRich)
	case c.Renderer == RendererRich && !c.Overwrite:
		return fmt.Errorf("%w: the %q renderer always redraws in place, overwrite must be enabled", ErrInvalidConfig, RendererRich)
	case c.Renderer == RendererRich && c.Steps > math.MaxInt:
		return fmt.Errorf("%w: the %q renderer supports at most %d steps", ErrInvalidConfig, RendererRich, math.MaxInt)
	}
	return nil
}

func (c *Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

// ParseSymbol turns a flag value into a single bar symbol. Line breaks and
// tabs are flattened to spaces first so a symbol can never move the cursor.
func ParseSymbol(s string) (rune, error) {
	// SingleLine rewrites invalid bytes to U+FFFD, so check the raw input.
	if !utf8.ValidString(s) {
		return 0, fmt.Errorf("%w: symbol %q is not valid UTF-8", ErrInvalidConfig, s)
	}
	s = sanitize.SingleLine(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty symbol", ErrInvalidConfig)
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("%w: symbol %q must be a single character", ErrInvalidConfig, s)
	}
	return r, nil
}
