package term

import (
	"testing"

	"github.com/backmassage/maskmaster/internal/config"
)

func TestConfigure(t *testing.T) {
	defer Configure(config.ColorNever)

	Configure(config.ColorAlways)
	if !Enabled() {
		t.Fatal("Enabled() = false after Configure(always)")
	}
	for _, p := range palette {
		if *p.dst != p.seq {
			t.Errorf("color var = %q, want %q", *p.dst, p.seq)
		}
	}

	Configure(config.ColorNever)
	if Enabled() {
		t.Fatal("Enabled() = true after Configure(never)")
	}
	for _, p := range palette {
		if *p.dst != "" {
			t.Errorf("color var = %q, want empty", *p.dst)
		}
	}
}

func TestColorWanted_RespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if colorWanted(config.ColorAuto) {
		t.Error("auto mode should honor NO_COLOR")
	}
	if !colorWanted(config.ColorAlways) {
		t.Error("always mode should ignore NO_COLOR")
	}
}
