package simplebar

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

// render prints b with overwrite disabled and returns the output.
func render(t *testing.T, b *ProgressBar) string {
	t.Helper()
	var buf bytes.Buffer
	if err := b.PrintOverwrite(&buf, false); err != nil {
		t.Fatalf("PrintOverwrite: %v", err)
	}
	return buf.String()
}

func TestDefaultWidth(t *testing.T) {
	b := NewDefault()
	b.DisableOverwrite()
	var buf bytes.Buffer
	if err := b.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := buf.Len(); got != 80 {
		t.Errorf("default width: got %d, want 80", got)
	}
}

func TestWidthIsRendered(t *testing.T) {
	for _, w := range []uint{2, 3, 10, 50, 81, 200} {
		b := NewDefault()
		b.SetWidth(w)
		b.Increment(37)
		if got := utf8.RuneCountInString(render(t, b)); uint(got) != w {
			t.Errorf("SetWidth(%d): rendered %d characters", w, got)
		}
	}
}

func TestNarrowWidthIsClamped(t *testing.T) {
	for _, w := range []uint{0, 1} {
		b := NewDefault()
		b.SetWidth(w)
		if b.Width() != MinWidth {
			t.Errorf("SetWidth(%d): Width() = %d, want %d", w, b.Width(), MinWidth)
		}
		if got := render(t, b); got != "[]" {
			t.Errorf("SetWidth(%d)\n  got  %q\n  want %q", w, got, "[]")
		}
	}
}

func TestDefaultSymbols(t *testing.T) {
	b := New(100)
	got := render(t, b)
	if got[0] != '[' || got[len(got)-1] != ']' {
		t.Errorf("default endcaps: got %q", got)
	}
	if got[1] != ' ' {
		t.Errorf("default todo symbol: got %q, want ' '", got[1])
	}

	b.Increment(100)
	got = render(t, b)
	if got[1] != '=' {
		t.Errorf("default done symbol: got %q, want '='", got[1])
	}
	if !b.Overwrite() {
		t.Error("overwrite should be enabled by default")
	}
}

func TestSymbolOverrides(t *testing.T) {
	b := New(100)
	b.SetWidth(10)
	b.SetLeftEndcapSymbol('a')
	b.SetRightEndcapSymbol('b')
	b.SetDoneSymbol('n')
	b.SetTodoSymbol('m')
	b.Increment(50)

	if got, want := render(t, b), "annnnmmmmb"; got != want {
		t.Errorf("custom symbols\n  got  %q\n  want %q", got, want)
	}
}

func TestMultibyteSymbols(t *testing.T) {
	b := New(4)
	b.SetWidth(6)
	b.SetLeftEndcapSymbol('│')
	b.SetRightEndcapSymbol('│')
	b.SetDoneSymbol('█')
	b.SetTodoSymbol('░')
	b.Increment(2)

	got := render(t, b)
	if want := "│██░░│"; got != want {
		t.Errorf("multibyte symbols\n  got  %q\n  want %q", got, want)
	}
	if n := utf8.RuneCountInString(got); n != 6 {
		t.Errorf("rendered %d characters, want 6", n)
	}
}

func TestProportionalFill(t *testing.T) {
	cases := []struct {
		progress uint
		want     string
	}{
		{0, "[        ]"},
		{1, "[        ]"},
		{12, "[        ]"},
		{13, "[=       ]"},
		{39, "[===     ]"},
		{50, "[====    ]"},
		{99, "[======= ]"},
		{100, "[========]"},
		{500, "[========]"},
	}

	for _, tc := range cases {
		b := New(100)
		b.SetWidth(10)
		b.Increment(tc.progress)
		if got := render(t, b); got != tc.want {
			t.Errorf("progress %d\n  got  %q\n  want %q", tc.progress, got, tc.want)
		}
	}
}

func TestFillIsExact(t *testing.T) {
	// 0.29 * 100 is 28.999... in floating point.
	b := New(100)
	b.SetWidth(102)
	b.Increment(29)
	got := render(t, b)
	if n := strings.Count(got, "="); n != 29 {
		t.Errorf("29/100 of 100 columns: got %d filled, want 29", n)
	}
}

func TestLargeTotals(t *testing.T) {
	b := New(math.MaxUint)
	b.SetWidth(12)
	b.Increment(math.MaxUint / 2)
	if got, want := render(t, b), "[====      ]"; got != want {
		t.Errorf("half of MaxUint\n  got  %q\n  want %q", got, want)
	}
	b.Increment(math.MaxUint)
	if b.Progress() != math.MaxUint {
		t.Errorf("saturating increment: got %d, want %d", b.Progress(), uint(math.MaxUint))
	}
}

func TestZeroTotalRendersFull(t *testing.T) {
	b := New(0)
	b.SetWidth(6)
	if got, want := render(t, b), "[====]"; got != want {
		t.Errorf("zero total\n  got  %q\n  want %q", got, want)
	}
	b.Increment(3)
	if b.Progress() != 0 {
		t.Errorf("zero total progress: got %d, want 0", b.Progress())
	}
}

func TestIncrementClamps(t *testing.T) {
	b := New(10)
	prev := b.Progress()
	for _, step := range []uint{0, 1, 3, 0, 4, 5, 2, 100} {
		b.Increment(step)
		want := min(b.TotalSteps(), prev+step)
		if b.Progress() != want {
			t.Fatalf("Increment(%d) from %d: got %d, want %d", step, prev, b.Progress(), want)
		}
		if b.Progress() < prev {
			t.Fatalf("progress decreased from %d to %d", prev, b.Progress())
		}
		prev = b.Progress()
	}

	b = New(3)
	for i := 0; i < 5; i++ {
		b.Inc()
	}
	if b.Progress() != 3 {
		t.Errorf("Inc past total: got %d, want 3", b.Progress())
	}
}

func TestTotalSteps(t *testing.T) {
	if got := NewDefault().TotalSteps(); got != DefaultTotalSteps {
		t.Errorf("NewDefault().TotalSteps() = %d, want %d", got, DefaultTotalSteps)
	}
	if got := New(500).TotalSteps(); got != 500 {
		t.Errorf("New(500).TotalSteps() = %d, want 500", got)
	}
}

func TestOverwriteToggle(t *testing.T) {
	b := NewDefault()
	b.SetWidth(10)

	var buf bytes.Buffer
	if err := b.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := buf.String(); !strings.HasSuffix(got, "\r") || len(got) != 11 {
		t.Errorf("overwrite enabled: got %q", got)
	}

	b.DisableOverwrite()
	buf.Reset()
	if err := b.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got := buf.String(); strings.ContainsRune(got, '\r') {
		t.Errorf("overwrite disabled: got %q", got)
	}

	b.EnableOverwrite()
	buf.Reset()
	if err := b.PrintOverwrite(&buf, false); err != nil {
		t.Fatalf("PrintOverwrite: %v", err)
	}
	if got := buf.String(); strings.ContainsRune(got, '\r') {
		t.Errorf("per-call override: got %q", got)
	}
	if !b.Overwrite() {
		t.Error("per-call override must not change the stored setting")
	}
}

func TestSettersAreIdempotent(t *testing.T) {
	b := New(100)
	b.Increment(42)
	b.SetDoneSymbol('#')
	b.SetWidth(20)
	first := render(t, b)

	b.SetDoneSymbol('#')
	b.SetWidth(20)
	if second := render(t, b); second != first {
		t.Errorf("repeated setters changed output\n  got  %q\n  want %q", second, first)
	}
}

func TestStringMatchesPrint(t *testing.T) {
	b := New(8)
	b.SetWidth(10)
	b.Increment(3)
	if got, want := b.String(), render(t, b); got != want {
		t.Errorf("String()\n  got  %q\n  want %q", got, want)
	}
}

func TestPrintFlushesBeforeCarriageReturn(t *testing.T) {
	var sink bytes.Buffer
	w := bufio.NewWriter(&sink)

	b := New(2)
	b.SetWidth(4)
	b.Inc()
	if err := b.Print(w); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if got, want := sink.String(), "[= ]"; got != want {
		t.Errorf("flushed output\n  got  %q\n  want %q", got, want)
	}
	if w.Buffered() != 1 {
		t.Errorf("expected only the carriage return to be buffered, got %d bytes", w.Buffered())
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestPrintReturnsWriteError(t *testing.T) {
	boom := errors.New("boom")
	err := NewDefault().Print(failingWriter{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
