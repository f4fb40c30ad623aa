package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into mask, behavior, display, and utility sections.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults
// hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing positional
// args).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("maskmaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineMaskFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "maskmaster v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. force -> SkipExisting=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	force       bool
	noStats     bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineMaskFlags registers -t/--threshold, -w/--workers, --suffix,
// --extended-formats.
func defineMaskFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Channel cutoff; R, G and B must all be strictly greater")
	fs.IntVar(&cfg.Threshold, "t", cfg.Threshold, "Same as --threshold")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker pool size")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
	fs.StringVar(&cfg.MaskSuffix, "suffix", cfg.MaskSuffix, "Suffix inserted before .png in mask names (e.g. _mask)")
	fs.BoolVar(&cfg.ExtendedFormats, "extended-formats", false, "Also accept BMP, TIFF and WebP inputs")
}

// defineBehaviorFlags registers dry-run, fail-fast, force.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not write masks")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.FailFast, "fail-fast", false, "Abort the whole batch on the first file error")
	fs.BoolVar(&n.force, "force", false, "Overwrite existing mask files")
	fs.BoolVar(&n.force, "f", false, "Same as --force")
}

// defineDisplayFlags registers --no-stats, --color, --no-color, verbose,
// --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file resolution and count lines")
	fs.Var(&colorModeValue{&cfg.ColorMode}, "color", "Color output: auto | always | never")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs (same as --color never)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run codec/encoder diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg
// (e.g. force -> SkipExisting=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.force {
		cfg.SkipExisting = false
	}
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Maskmaster v" + version + " — batch binary-mask generator"},
		{"", ""},
		{"  maskmaster [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Mask", ""},
		{"  -t, --threshold <0-254>", "Channel cutoff (default: 200, strictly greater)"},
		{"  -w, --workers <n>", "Worker pool size (default: number of CPUs)"},
		{"  --suffix <text>", "Insert suffix before .png in mask names"},
		{"  --extended-formats", "Also accept BMP, TIFF and WebP inputs"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -f, --force", "Overwrite existing mask files"},
		{"  -d, --dry-run", "Preview only; do not write masks"},
		{"  --fail-fast", "Abort the whole batch on the first file error"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide per-file resolution and count lines"},
		{"  --color <mode>", "Color output: auto | always | never (default: auto)"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Codec and encoder diagnostics"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the ColorMode enum works with flag.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
