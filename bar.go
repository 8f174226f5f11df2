// Package simplebar renders a fixed-width textual progress bar for console
// applications.
//
// A bar looks like "[=====     ]": two endcaps around an interior that is
// filled in proportion to the progress made so far. By default every print
// ends with a carriage return so the next print redraws the same line.
//
// A ProgressBar is not safe for concurrent use. Callers that report progress
// from several goroutines must serialize access themselves, for example by
// sending step counts to a single goroutine that owns the bar.
package simplebar

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"strings"
)

const (
	// DefaultTotalSteps is the step count used by NewDefault.
	DefaultTotalSteps uint = 100
	// DefaultWidth is the rendered width, endcaps included.
	DefaultWidth uint = 80
	// MinWidth leaves room for the two endcaps and nothing else.
	MinWidth uint = 2
)

// ProgressBar holds progress state and display settings.
type ProgressBar struct {
	progress   uint
	totalSteps uint

	leftEndcap  rune
	rightEndcap rune
	doneSymbol  rune
	todoSymbol  rune

	width     uint
	overwrite bool
}

// New returns an empty bar that is full after totalSteps steps.
// A bar with zero total steps has nothing left to do and renders full.
func New(totalSteps uint) *ProgressBar {
	return &ProgressBar{
		totalSteps:  totalSteps,
		leftEndcap:  '[',
		rightEndcap: ']',
		doneSymbol:  '=',
		todoSymbol:  ' ',
		width:       DefaultWidth,
		overwrite:   true,
	}
}

// NewDefault returns a bar with DefaultTotalSteps steps.
func NewDefault() *ProgressBar {
	return New(DefaultTotalSteps)
}

// Increment adds steps to the progress, snapping it to TotalSteps once the
// bar is full.
func (b *ProgressBar) Increment(steps uint) {
	sum, carry := bits.Add(b.progress, steps, 0)
	if carry != 0 || sum > b.totalSteps {
		sum = b.totalSteps
	}
	b.progress = sum
}

// Inc increments the progress by one step.
func (b *ProgressBar) Inc() {
	b.Increment(1)
}

// TotalSteps returns the step count that represents completion.
func (b *ProgressBar) TotalSteps() uint {
	return b.totalSteps
}

// Progress returns the number of steps completed so far.
func (b *ProgressBar) Progress() uint {
	return b.progress
}

// SetWidth sets the rendered width in characters, endcaps included.
// Widths below MinWidth are raised to MinWidth.
func (b *ProgressBar) SetWidth(w uint) {
	if w < MinWidth {
		w = MinWidth
	}
	b.width = w
}

// Width returns the rendered width in characters.
func (b *ProgressBar) Width() uint {
	return b.width
}

// SetLeftEndcapSymbol sets the first character of the bar.
func (b *ProgressBar) SetLeftEndcapSymbol(c rune) { b.leftEndcap = c }

// SetRightEndcapSymbol sets the last character of the bar.
func (b *ProgressBar) SetRightEndcapSymbol(c rune) { b.rightEndcap = c }

// SetDoneSymbol sets the character used for the completed part.
func (b *ProgressBar) SetDoneSymbol(c rune) { b.doneSymbol = c }

// SetTodoSymbol sets the character used for the remaining part.
func (b *ProgressBar) SetTodoSymbol(c rune) { b.todoSymbol = c }

// EnableOverwrite makes Print end with a carriage return.
func (b *ProgressBar) EnableOverwrite() { b.overwrite = true }

// DisableOverwrite makes Print leave the cursor after the right endcap.
func (b *ProgressBar) DisableOverwrite() { b.overwrite = false }

// Overwrite reports whether Print ends with a carriage return.
func (b *ProgressBar) Overwrite() bool {
	return b.overwrite
}

// filled returns how many interior columns are rendered as done.
func (b *ProgressBar) filled() uint {
	interior := b.width - MinWidth
	if b.totalSteps == 0 {
		return interior
	}
	// floor(progress * interior / total) without overflow. progress never
	// exceeds total, so the high word stays below the divisor.
	hi, lo := bits.Mul(b.progress, interior)
	q, _ := bits.Div(hi, lo, b.totalSteps)
	return q
}

// String renders the bar without the trailing carriage return.
func (b *ProgressBar) String() string {
	interior := b.width - MinWidth
	done := b.filled()

	var sb strings.Builder
	sb.Grow(int(b.width) * 4)
	sb.WriteRune(b.leftEndcap)
	for i := uint(0); i < done; i++ {
		sb.WriteRune(b.doneSymbol)
	}
	for i := done; i < interior; i++ {
		sb.WriteRune(b.todoSymbol)
	}
	sb.WriteRune(b.rightEndcap)
	return sb.String()
}

// Print writes the bar to w using the current overwrite setting.
// A nil w writes to standard output.
func (b *ProgressBar) Print(w io.Writer) error {
	return b.PrintOverwrite(w, b.overwrite)
}

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// PrintOverwrite writes the bar to w, ending with a carriage return when
// overwrite is true. The bar is flushed before the carriage return so it is
// visible before the next redraw.
func (b *ProgressBar) PrintOverwrite(w io.Writer, overwrite bool) error {
	if w == nil {
		w = os.Stdout
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write bar: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush bar: %w", err)
		}
	}
	if overwrite {
		if _, err := io.WriteString(w, "\r"); err != nil {
			return fmt.Errorf("write carriage return: %w", err)
		}
	}
	return nil
}
