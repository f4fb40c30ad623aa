package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Threshold != 200 {
		t.Errorf("Threshold: got %d, want 200", cfg.Threshold)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers: got %d, want >= 1", cfg.Workers)
	}
	if !cfg.SkipExisting {
		t.Error("SkipExisting should default to true")
	}
	if cfg.FailFast {
		t.Error("FailFast should default to false (skip-and-continue)")
	}
	if cfg.MaskSuffix != "" {
		t.Errorf("MaskSuffix: got %q, want empty", cfg.MaskSuffix)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("ColorMode: got %q, want auto", cfg.ColorMode)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.InputDir = "/in"
		cfg.OutputDir = "/out"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(c *Config) {}, ""},
		{"threshold low ok", func(c *Config) { c.Threshold = 0 }, ""},
		{"threshold high ok", func(c *Config) { c.Threshold = 254 }, ""},
		{"threshold negative", func(c *Config) { c.Threshold = -1 }, "threshold"},
		{"threshold 255", func(c *Config) { c.Threshold = 255 }, "threshold"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"suffix with separator", func(c *Config) { c.MaskSuffix = "a/b" }, "suffix"},
		{"suffix plain ok", func(c *Config) { c.MaskSuffix = "_mask" }, ""},
		{"bad color mode", func(c *Config) { c.ColorMode = "sometimes" }, "color"},
		{"missing dirs", func(c *Config) { c.InputDir = "" }, "input_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CheckOnlySkipsDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("CheckOnly should not require dirs: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		in, out string
		wantErr bool
	}{
		{"siblings", "/data/in", "/data/out", false},
		{"output inside input", "/data/in", "/data/in/masks", true},
		{"same dir", "/data/in", "/data/in", true},
		{"prefix but not child", "/data/in", "/data/input-masks", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.ValidatePaths(tt.in, tt.out)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%q, %q) err=%v, wantErr=%v", tt.in, tt.out, err, tt.wantErr)
			}
		})
	}
}

func TestColorModeValue(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"NEVER", ColorNever, false},
		{"sometimes", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mode := ColorAuto
			v := colorModeValue{&mode}
			err := v.Set(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Set(%q): expected error, got nil", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q): %v", tt.in, err)
			}
			if mode != tt.want {
				t.Errorf("Set(%q) = %q, want %q", tt.in, mode, tt.want)
			}
			if v.String() != string(tt.want) {
				t.Errorf("String() = %q, want %q", v.String(), tt.want)
			}
		})
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/data/in/", "/data/in"},
		{"/data/in///", "/data/in"},
		{"/data/in", "/data/in"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := NormalizeDirArg(tt.in); got != tt.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
