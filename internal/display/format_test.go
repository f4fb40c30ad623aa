package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical photo 4 MiB", 4194304, "4.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"zero", 0, "0"},
		{"three digits", 999, "999"},
		{"four digits", 1000, "1,000"},
		{"full HD frame", 2073600, "2,073,600"},
		{"large batch total", 1234567890, "1,234,567,890"},
		{"negative", -1234, "-1,234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCount(tt.n)
			if got != tt.want {
				t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name string
		frac float64
		want string
	}{
		{"zero", 0, "0.0%"},
		{"half", 0.5, "50.0%"},
		{"full", 1, "100.0%"},
		{"small", 0.00123, "0.1%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPercent(tt.frac)
			if got != tt.want {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.frac, got, tt.want)
			}
		})
	}
}

func TestFormatResolution(t *testing.T) {
	if got := FormatResolution(1920, 1080); got != "1920x1080" {
		t.Errorf("FormatResolution = %q, want 1920x1080", got)
	}
}
