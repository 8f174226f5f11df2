package demo

import (
	"context"
	"fmt"
	"log"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Run simulates cfg.Tasks units of work on a worker pool and reports each
// finished unit to the progress display.
//
// Workers never touch the display. They send their step counts to a single
// owner goroutine, which is the only code that advances and redraws it.
func Run(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prog, err := NewProgress(cfg)
	if err != nil {
		return err
	}
	return run(ctx, cfg, prog)
}

func run(ctx context.Context, cfg *Config, prog *Progress) error {
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.Interval > 0 {
		lim = rate.NewLimiter(rate.Every(cfg.Interval), 1)
	}

	if cfg.Debug {
		log.Printf("running %d task(s) of %d step(s) on %d worker(s)", cfg.Tasks, cfg.StepSize, cfg.Workers)
	}

	steps := make(chan uint, cfg.Workers)
	ownerDone := make(chan error, 1)
	go func() {
		ownerDone <- own(steps, prog, cfg.Debug)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Tasks; i++ {
		id := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			errCh := make(chan error, 1)
			if err := pool.Submit(func() {
				errCh <- work(gctx, lim, steps, cfg.StepSize)
			}); err != nil {
				return fmt.Errorf("submit task: %w", err)
			}
			if err := <-errCh; err != nil {
				return fmt.Errorf("task %d: %w", id, err)
			}
			return nil
		})
	}

	waitErr := g.Wait()
	close(steps)
	ownErr := <-ownerDone

	switch {
	case waitErr != nil && ctx.Err() != nil:
		return ctx.Err()
	case waitErr != nil:
		return waitErr
	case ownErr != nil:
		return fmt.Errorf("render progress: %w", ownErr)
	}
	return prog.Finish()
}

// own drains steps into prog until the channel is closed. After a render
// error it keeps draining so workers never block, and returns the first error.
func own(steps <-chan uint, prog *Progress, debug bool) error {
	var firstErr error
	for n := range steps {
		if firstErr != nil {
			continue
		}
		if err := prog.Add(n); err != nil {
			firstErr = err
			if debug {
				log.Printf("render error: %v", err)
			}
		}
	}
	return firstErr
}

// work stands in for one unit of the host application's work.
func work(ctx context.Context, lim *rate.Limiter, steps chan<- uint, size uint) error {
	if err := lim.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Wait also fails early when the deadline is too close to get a token.
		return fmt.Errorf("pace work: %w", err)
	}
	select {
	case steps <- size:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
