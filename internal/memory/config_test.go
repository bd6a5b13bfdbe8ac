package memory

import (
	"math"
	"runtime/debug"
	"testing"
)

// restoreLimit puts the process heap limit back after a test changes it.
func restoreLimit(t *testing.T) {
	t.Helper()
	prev := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })
}

func TestConfigureFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		ratio      string
		configured bool
		source     string
		goMemLimit int64
	}{
		{"unset", "", "", false, "none", 0},
		{"invalid limit", "lots", "", false, "none", 0},
		{"negative limit", "-5", "", false, "none", 0},
		{"default ratio", "1000000000", "", true, "MEMORY_LIMIT", 850000000},
		{"custom ratio", "1000000000", "0.5", true, "MEMORY_LIMIT", 500000000},
		{"ratio out of range", "1000000000", "1.5", true, "MEMORY_LIMIT", 850000000},
		{"unparsable ratio", "1000000000", "half", true, "MEMORY_LIMIT", 850000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreLimit(t)
			t.Setenv("GOMEMLIMIT", "")
			t.Setenv("MEMORY_LIMIT", tt.limit)
			t.Setenv("MEMORY_RATIO", tt.ratio)

			got := ConfigureFromEnv()
			if got.Configured != tt.configured || got.Source != tt.source || got.GoMemLimit != tt.goMemLimit {
				t.Errorf("ConfigureFromEnv() = %+v, want configured=%v source=%s limit=%d",
					got, tt.configured, tt.source, tt.goMemLimit)
			}
			if tt.configured && debug.SetMemoryLimit(-1) != tt.goMemLimit {
				t.Errorf("heap limit = %d, want %d", debug.SetMemoryLimit(-1), tt.goMemLimit)
			}
		})
	}
}

func TestPixelBudget(t *testing.T) {
	const ceiling = 100_000_000

	tests := []struct {
		name  string
		limit int64
		want  int
	}{
		{"no limit", 0, ceiling},
		{"small heap", 400_000_000, 25_000_000},
		{"large heap", 4_000_000_000, ceiling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ConfigResult{GoMemLimit: tt.limit}
			if got := res.PixelBudget(ceiling); got != tt.want {
				t.Errorf("PixelBudget(%d) = %d, want %d", ceiling, got, tt.want)
			}
		})
	}
}

func TestPixelBudget_Uncapped(t *testing.T) {
	res := ConfigResult{Configured: true, GoMemLimit: 400_000_000}
	if got := res.PixelBudget(math.MaxInt); got != 25_000_000 {
		t.Errorf("PixelBudget(MaxInt) = %d, want 25000000", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
