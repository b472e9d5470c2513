package styles

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Bitcoin", 10, "Bitcoin"},
		{"Bitcoin", 7, "Bitcoin"},
		{"Bitcoin Cash", 7, "Bitc..."},
		{"Bitcoin", 3, "Bit"},
		{"Bitcoin", 0, ""},
		{"€430.25", 5, "€4..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	if got := Pad("abc", 6); got != "abc   " {
		t.Errorf("Pad = %q", got)
	}
	if got := Pad("abcdef", 4); got != "abcd" {
		t.Errorf("Pad overflow = %q", got)
	}
	// Multi-byte symbols count one cell each.
	if got := Pad("€1", 5); utf8.RuneCountInString(got) != 5 {
		t.Errorf("Pad(€1, 5) rune count = %d", utf8.RuneCountInString(got))
	}
}

func TestPadLeft(t *testing.T) {
	if got := PadLeft("42", 6); got != "    42" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadLeft("abcdef", 4); got != "abcd" {
		t.Errorf("PadLeft overflow = %q", got)
	}
	if got := PadLeft("€1.50", 8); utf8.RuneCountInString(got) != 8 {
		t.Errorf("PadLeft(€1.50, 8) rune count = %d", utf8.RuneCountInString(got))
	}
}

func TestSparkline(t *testing.T) {
	t.Run("rising series uses the full ramp", func(t *testing.T) {
		series := []float64{0, 1, 2, 3, 4, 5, 6, 7}
		if got := Sparkline(series, 8); got != "▁▂▃▄▅▆▇█" {
			t.Errorf("Sparkline = %q", got)
		}
	})

	t.Run("flat series sits mid-height", func(t *testing.T) {
		series := []float64{42, 42, 42, 42}
		if got := Sparkline(series, 4); got != "▄▄▄▄" {
			t.Errorf("Sparkline = %q", got)
		}
	})

	t.Run("output matches requested width", func(t *testing.T) {
		series := make([]float64, 168) // a week of hourly points
		for i := range series {
			series[i] = float64(i % 24)
		}
		for _, width := range []int{1, 5, 10, 40} {
			got := Sparkline(series, width)
			if n := utf8.RuneCountInString(got); n != width {
				t.Errorf("width %d rendered %d runes", width, n)
			}
		}
	})

	t.Run("width one shows the latest value", func(t *testing.T) {
		if got := Sparkline([]float64{0, 100}, 1); got != "█" {
			t.Errorf("Sparkline = %q", got)
		}
		if got := Sparkline([]float64{100, 0}, 1); got != "▁" {
			t.Errorf("Sparkline = %q", got)
		}
	})

	t.Run("single point repeats", func(t *testing.T) {
		if got := Sparkline([]float64{7}, 4); got != "▄▄▄▄" {
			t.Errorf("Sparkline = %q", got)
		}
	})

	t.Run("degenerate input", func(t *testing.T) {
		if got := Sparkline(nil, 10); got != "" {
			t.Errorf("Sparkline(nil) = %q", got)
		}
		if got := Sparkline([]float64{1, 2}, 0); got != "" {
			t.Errorf("Sparkline(width 0) = %q", got)
		}
	})
}
