// Package pipeline orchestrates file discovery, the worker pool, and batch
// summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/maskmaster/internal/config"
	"github.com/backmassage/maskmaster/internal/display"
	"github.com/backmassage/maskmaster/internal/imageio"
	"github.com/backmassage/maskmaster/internal/logging"
	"github.com/backmassage/maskmaster/internal/mask"
	"github.com/backmassage/maskmaster/internal/naming"
	"github.com/backmassage/maskmaster/internal/probe"
)

// Coverage fractions beyond which a mask is reported as an outlier: a mask
// that is almost fully lit usually means the threshold is too low for that
// image, an empty one that it is too high.
const coverageOutlierHigh = 0.98

type fileStatus int

const (
	statusMasked fileStatus = iota
	statusSkipped
	statusFailed
	statusDry
)

// job pairs an input file with its pre-claimed output path.
type job struct {
	path       string
	relPath    string
	outputPath string
}

// fileResult is what one worker hands back to the collector. All aggregation
// happens there; workers share nothing mutable.
type fileResult struct {
	job
	status   fileStatus
	info     *probe.Info
	count    int
	coverage float64
	meanHex  string
	inBytes  int64
	outBytes int64
	elapsed  time.Duration
	err      error
}

// Run is the top-level batch entry point. It discovers files, claims output
// paths in discovery order, fans the files out to a bounded worker pool, and
// folds per-file results into aggregate stats on a single collector
// goroutine (the running total is an explicit reduction, never a shared
// counter).
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	files, err := Discover(cfg.InputDir, cfg.ExtendedFormats)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		stats.Failed++
		return stats
	}

	stats.Total = len(files)
	logBatchHeader(cfg, log, &stats)

	jobs := buildJobs(cfg, files)

	results := make(chan fileResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	poolErr := make(chan error, 1)
	go func() {
		for _, jb := range jobs {
			jb := jb
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				res := processFile(cfg, jb)
				select {
				case results <- res:
				case <-gctx.Done():
				}
				if cfg.FailFast && res.err != nil {
					return res.err
				}
				return nil
			})
		}
		poolErr <- g.Wait()
		close(results)
	}()

	for res := range results {
		collect(cfg, log, &stats, res)
	}

	if err := <-poolErr; err != nil {
		log.Error("Batch aborted: %v", err)
	} else if ctx.Err() != nil {
		log.Warn("Interrupted")
	}

	logSummary(cfg, log, &stats)
	return stats
}

// buildJobs resolves every input file to its mask output path. Paths are
// claimed in discovery order so collision suffixes are deterministic
// regardless of worker completion order.
func buildJobs(cfg *config.Config, files []string) []job {
	resolver := naming.NewCollisionResolver()
	jobs := make([]job, 0, len(files))
	for _, path := range files {
		rel, err := filepath.Rel(cfg.InputDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		out := naming.OutputPath(rel, cfg.OutputDir, cfg.MaskSuffix)
		out = resolver.Resolve(path, out)
		jobs = append(jobs, job{path: path, relPath: rel, outputPath: out})
	}
	return jobs
}

// processFile handles one image: validate → probe → decode → mask → write.
// It is pure with respect to its job: no logging, no shared state; everything
// the collector needs rides back in the fileResult.
func processFile(cfg *config.Config, jb job) fileResult {
	res := fileResult{job: jb}
	start := time.Now()

	fi, err := os.Stat(jb.path)
	if err != nil {
		res.status = statusFailed
		res.err = fmt.Errorf("stat %q: %w", jb.path, err)
		return res
	}
	res.inBytes = fi.Size()

	if cfg.SkipExisting && !cfg.DryRun {
		if _, err := os.Stat(jb.outputPath); err == nil {
			res.status = statusSkipped
			return res
		}
	}

	info, err := probe.Probe(jb.path)
	if err != nil {
		res.status = statusFailed
		res.err = err
		return res
	}
	res.info = info

	if cfg.DryRun {
		res.status = statusDry
		return res
	}

	img, err := imageio.Load(jb.path)
	if err != nil {
		res.status = statusFailed
		res.err = err
		return res
	}

	mr := mask.Compute(img, mask.Threshold(cfg.Threshold))
	res.count = mr.Count
	res.coverage = mr.Coverage()
	if c, ok := mr.MeanColor(); ok {
		res.meanHex = c.Hex()
	}

	if err := imageio.SaveMask(jb.outputPath, mr.Mask); err != nil {
		res.status = statusFailed
		res.err = err
		return res
	}
	if outInfo, err := os.Stat(jb.outputPath); err == nil {
		res.outBytes = outInfo.Size()
	}

	res.status = statusMasked
	res.elapsed = time.Since(start)
	return res
}

// collect folds one result into stats and does all per-file logging. It runs
// on the single collector goroutine, so stats needs no locking.
func collect(cfg *config.Config, log *logging.Logger, stats *RunStats, res fileResult) {
	stats.Current++
	prefix := fmt.Sprintf("[%d/%d] %s", stats.Current, stats.Total, res.relPath)

	switch res.status {
	case statusSkipped:
		log.Warn("%s: skip (mask exists): %s", prefix, filepath.Base(res.outputPath))
		stats.Skipped++
		return

	case statusFailed:
		log.Error("%s: %v", prefix, res.err)
		stats.Failed++
		return

	case statusDry:
		log.Success("%s: [DRY] would mask %s -> %s", prefix,
			display.FormatResolution(res.info.Width, res.info.Height),
			filepath.Base(res.outputPath))
		stats.Masked++
		return
	}

	log.Info("%s -> %s", prefix, filepath.Base(res.outputPath))
	log.Debug(cfg.Verbose, "  masked in %s", res.elapsed.Round(time.Millisecond))
	if cfg.ShowFileStats {
		logFileStats(log, res)
	}
	logCoverageOutlier(log, res)

	stats.Masked++
	stats.QualifyingPixels += int64(res.count)
	stats.TotalPixels += int64(res.info.Pixels())
	stats.TotalInputBytes += res.inBytes
	stats.TotalOutputBytes += res.outBytes
}

func logFileStats(log *logging.Logger, res fileResult) {
	line := fmt.Sprintf("  %s | %s | %s | qualifying: %s (%s)",
		display.FormatResolution(res.info.Width, res.info.Height),
		res.info.Format,
		display.FormatBytes(res.inBytes),
		display.FormatCount(int64(res.count)),
		display.FormatPercent(res.coverage))
	if res.meanHex != "" {
		line += " | mean " + res.meanHex
	}
	log.Info("%s", line)
}

// logCoverageOutlier flags masks that are nearly full or completely empty.
func logCoverageOutlier(log *logging.Logger, res fileResult) {
	if res.info.Pixels() == 0 {
		return
	}
	if res.coverage >= coverageOutlierHigh {
		log.Outlier("  Mask almost fully lit (%s): threshold may be too low for %s",
			display.FormatPercent(res.coverage), res.relPath)
	} else if res.count == 0 {
		log.Outlier("  Mask empty: no pixel of %s exceeds the threshold", res.relPath)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files", stats.Total)
	log.Info("Threshold: %d (all of R, G, B strictly greater)", cfg.Threshold)
	log.Info("Workers: %d", cfg.Workers)

	formats := "jpg/jpeg/png"
	if cfg.ExtendedFormats {
		formats += " + bmp/tif/tiff/webp"
	}
	log.Info("Formats: %s", formats)

	if cfg.MaskSuffix != "" {
		log.Info("Mask names: <base>%s.png", cfg.MaskSuffix)
	}
	if cfg.FailFast {
		log.Info("Failure policy: abort batch on first file error")
	} else {
		log.Info("Failure policy: skip failed files and continue")
	}
	if !cfg.SkipExisting {
		log.Info("Existing masks: overwrite (--force)")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — no masks will be written")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	log.Info("Done: %d masked, %d skipped, %d failed", stats.Masked, stats.Skipped, stats.Failed)

	if cfg.DryRun {
		log.Info("Total qualifying pixels: n/a (dry run)")
		return
	}

	// The one aggregate the batch exists to report.
	log.Success("Total qualifying pixels across all images: %s",
		display.FormatCount(stats.QualifyingPixels))

	if stats.TotalPixels > 0 {
		log.Info("  Batch coverage: %s of %s pixels",
			display.FormatPercent(stats.CoverageFraction()),
			display.FormatCount(stats.TotalPixels))
	}
	if stats.Masked > 0 {
		log.Info("  Bytes: input %s -> masks %s",
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	}
}

