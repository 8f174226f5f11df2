package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sigman78/simplebar/internal/demo"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: simplebar-demo [options]

Runs simulated work and draws its progress as a text bar.

Options:
  -preset string          Starting configuration: simple|custom (default: simple)
  -steps uint             Steps that fill the bar
  -step uint              Steps reported by each finished task
  -tasks int              Units of simulated work
  -workers int            Concurrent workers
  -interval duration      Pace of simulated work, e.g. 100ms (0 = no pacing)
  -width uint             Bar width in characters, endcaps included (min 2)
  -left string            Left endcap symbol
  -right string           Right endcap symbol
  -done string            Symbol for the completed part
  -todo string            Symbol for the remaining part
  -overwrite              Redraw the bar in place (-overwrite=false prints one line per update)
  -renderer string        Bar renderer: simple|rich (rich needs -overwrite)
  -stderr                 Draw on stderr instead of stdout
  -debug                  Enable verbose debug logging
  -version                Print version and exit
  -h / -help              Show this help and exit

Options other than -preset override the chosen preset only when given.
`)
}

func main() {
	fs := flag.NewFlagSet("simplebar-demo", flag.ContinueOnError)
	fs.Usage = usage

	var (
		presetFlag string
		stepsFlag  uint
		stepFlag   uint
		tasksFlag  int
		workers    int
		interval   time.Duration
		widthFlag  uint
		leftFlag   string
		rightFlag  string
		doneFlag   string
		todoFlag   string
		overwrite  bool
		renderer   string
		useStderr  bool
		debug      bool
	)

	fs.StringVar(&presetFlag, "preset", "simple", "Starting configuration: simple|custom")
	fs.UintVar(&stepsFlag, "steps", 0, "Steps that fill the bar")
	fs.UintVar(&stepFlag, "step", 0, "Steps reported by each finished task")
	fs.IntVar(&tasksFlag, "tasks", 0, "Units of simulated work")
	fs.IntVar(&workers, "workers", 0, "Concurrent workers")
	fs.DurationVar(&interval, "interval", 0, "Pace of simulated work")
	fs.UintVar(&widthFlag, "width", 0, "Bar width in characters")
	fs.StringVar(&leftFlag, "left", "", "Left endcap symbol")
	fs.StringVar(&rightFlag, "right", "", "Right endcap symbol")
	fs.StringVar(&doneFlag, "done", "", "Symbol for the completed part")
	fs.StringVar(&todoFlag, "todo", "", "Symbol for the remaining part")
	fs.BoolVar(&overwrite, "overwrite", true, "Redraw the bar in place")
	fs.StringVar(&renderer, "renderer", "", "Bar renderer: simple|rich")
	fs.BoolVar(&useStderr, "stderr", false, "Draw on stderr instead of stdout")
	fs.BoolVar(&debug, "debug", false, "Enable verbose debug logging")

	// Handle -version / -h / -help before the flag parser so we control the exit code.
	for _, a := range os.Args[1:] {
		if a == "-version" || a == "--version" {
			fmt.Printf("simplebar-demo %s (commit %s)\n", version, commit)
			os.Exit(0)
		}
		if a == "-h" || a == "-help" || a == "--help" {
			usage()
			os.Exit(0)
		}
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		// Unknown/malformed flag: fs already printed the error message
		os.Exit(2)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected argument %q\n", fs.Arg(0))
		os.Exit(2)
	}

	cfg, err := demo.Preset(strings.ToLower(presetFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Only flags given on the command line override the preset.
	var symErr error
	symbol := func(dst *rune, name, v string) {
		r, err := demo.ParseSymbol(v)
		if err != nil && symErr == nil {
			symErr = fmt.Errorf("-%s: %w", name, err)
		}
		*dst = r
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "steps":
			cfg.Steps = stepsFlag
		case "step":
			cfg.StepSize = stepFlag
		case "tasks":
			cfg.Tasks = tasksFlag
		case "workers":
			cfg.Workers = workers
		case "interval":
			cfg.Interval = interval
		case "width":
			cfg.Width = widthFlag
		case "left":
			symbol(&cfg.LeftEndcap, f.Name, leftFlag)
		case "right":
			symbol(&cfg.RightEndcap, f.Name, rightFlag)
		case "done":
			symbol(&cfg.Done, f.Name, doneFlag)
		case "todo":
			symbol(&cfg.Todo, f.Name, todoFlag)
		case "overwrite":
			cfg.Overwrite = overwrite
		case "renderer":
			cfg.Renderer = strings.ToLower(renderer)
		case "stderr":
			if useStderr {
				cfg.Output = os.Stderr
			} else {
				cfg.Output = os.Stdout
			}
		}
	})
	cfg.Debug = debug

	if symErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", symErr)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := demo.Run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\ninterrupted")
			stop()
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
