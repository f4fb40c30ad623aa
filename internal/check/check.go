// Package check provides system diagnostics (--check mode) and pre-pipeline
// validation (CheckDeps) for the image codecs and the mask encoder.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"

	"github.com/backmassage/maskmaster/internal/config"
	"github.com/backmassage/maskmaster/internal/imageio"
)

// Sentinel errors returned by CheckDeps when a pre-flight requirement fails.
var (
	ErrEncoderSelfTest   = errors.New("PNG mask encoder self-test failed")
	ErrOutputNotWritable = errors.New("output directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Minimal valid headers per format, enough for image.DecodeConfig to
// identify the codec. Pixel data is not needed; a registered decoder that
// recognizes its magic bytes proves the import wiring.
var codecProbes = []struct {
	format string
	header []byte
}{
	{"png", []byte("\x89PNG\r\n\x1a\n")},
	{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")},
	{"bmp", []byte("BM")},
	{"tiff", []byte("II*\x00")},
	{"webp", []byte("RIFF\x00\x00\x00\x00WEBP")},
}

// RunCheck runs the interactive --check flow: prints codec availability,
// the mask encoder self-test result, and the effective worker setup.
// This is informational only; it does not stop on failure. Returns false
// when any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkCodecs(log)
	ok = checkEncoder(log) && ok
	checkWorkers(cfg, log)
	return ok
}

// checkCodecs verifies each expected format is claimed by a registered
// decoder. A missing codec means the registration imports were dropped.
func checkCodecs(log Logger) bool {
	log.Info("Registered decoders:")
	all := true
	for _, p := range codecProbes {
		_, format, err := image.DecodeConfig(bytes.NewReader(p.header))
		// DecodeConfig on a bare header errors out, but the sniffed format
		// name tells us whether the codec is registered at all.
		if format == p.format || err == nil {
			log.Success("  %s: registered", p.format)
			continue
		}
		log.Error("  %s: no decoder registered", p.format)
		all = false
	}
	return all
}

// checkEncoder runs the in-process PNG encode self-test.
func checkEncoder(log Logger) bool {
	if err := imageio.EncodeSelfTest(); err != nil {
		log.Error("Mask encoder: %v", err)
		return false
	}
	log.Success("Mask encoder: PNG self-test ok")
	return true
}

// checkWorkers reports the effective pool size against the machine.
func checkWorkers(cfg *config.Config, log Logger) {
	cpus := runtime.NumCPU()
	log.Info("Workers: %d (machine has %d CPUs)", cfg.Workers, cpus)
	if cfg.Workers > 4*cpus {
		log.Warn("  Pool far exceeds CPU count; decode is CPU-bound, extra workers only add memory pressure")
	}
}

// CheckDeps is the pre-pipeline validation: the mask encoder must pass its
// self-test and the output directory must accept a write before any file is
// processed, so a bad destination fails once up front instead of once per
// file. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if err := imageio.EncodeSelfTest(); err != nil {
		return ErrEncoderSelfTest
	}

	f, err := os.CreateTemp(cfg.OutputDir, ".maskmaster-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputNotWritable, err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}
