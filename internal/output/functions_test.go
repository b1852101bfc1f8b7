package output

import (
	"strings"
	"testing"
)

func TestPrintProgressBar(t *testing.T) {
	if got := PrintProgressBar(5, 0, 20); got != "" {
		t.Errorf("bar with zero total = %q, want empty", got)
	}
	half := PrintProgressBar(5, 10, 10)
	if !strings.HasSuffix(half, " 50%") {
		t.Errorf("half bar = %q, want 50%% suffix", half)
	}
	if strings.Count(half, "━") != 5 {
		t.Errorf("half bar = %q, want 5 filled cells", half)
	}
	full := PrintProgressBar(10, 10, 10)
	if !strings.HasSuffix(full, "100%") {
		t.Errorf("full bar = %q, want 100%% suffix", full)
	}
	// Overshoot clamps instead of overflowing the bar.
	if got := PrintProgressBar(20, 10, 10); got != full {
		t.Errorf("overshot bar = %q, want %q", got, full)
	}
}
