// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Defaults match the original batch script's constants (threshold
// 200, one worker per CPU) so a bare invocation behaves identically.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/backmassage/maskmaster/internal/mask"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Mask settings.
	Threshold  int    // Default: 200. Channels must be strictly greater to qualify.
	MaskSuffix string // Inserted before ".png" in output names. Default: "".

	// Concurrency.
	Workers int // Default: runtime.NumCPU(). Minimum 1.

	// Behavior flags.
	DryRun          bool
	SkipExisting    bool // Default: true. Cleared by --force.
	FailFast        bool // Abort the batch on the first per-file error.
	ExtendedFormats bool // Also accept BMP, TIFF, and WebP inputs.

	// Display and logging.
	Verbose       bool
	ShowFileStats bool      // Default: true. Per-file resolution/count lines.
	ColorMode     ColorMode // Default: "auto".
	LogFile       string    // Optional log file path.
	CheckOnly     bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching the original
// script. Used as the base before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Threshold:       int(mask.DefaultThreshold),
		MaskSuffix:      "",
		Workers:         runtime.NumCPU(),
		DryRun:          false,
		SkipExisting:    true,
		FailFast:        false,
		ExtendedFormats: false,
		Verbose:         false,
		ShowFileStats:   true,
		ColorMode:       ColorAuto,
		CheckOnly:       false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks threshold range, worker count, suffix safety, the color
// mode, and (when not in CheckOnly mode) that both directory paths are
// non-empty.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 254 {
		return fmt.Errorf("threshold must be in 0..254 (got %d); at 255 no 8-bit sample can exceed it", c.Threshold)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if strings.ContainsAny(c.MaskSuffix, `/\`) {
		return fmt.Errorf("suffix %q must not contain path separators", c.MaskSuffix)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory. This prevents the pipeline from
// discovering its own freshly written masks. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
