// Package pipeline converts batches of files through the converter: it scans
// the inputs, runs a bounded worker pool, writes the outputs and records
// every outcome in a report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/report"
)

// Converter is the part of converter.Converter the pipeline needs.
type Converter interface {
	Convert(ctx context.Context, req converter.Request) converter.Result
}

// Config holds all parameters for a batch run.
type Config struct {
	Inputs    []string
	OutputDir string
	Format    string
	Options   engine.Options
	// Engine pins every conversion to one engine when set.
	Engine  engine.ID
	Profile string
	Workers int
	// HashNames names outputs <stem>.<hash>.<ext> after their content.
	HashNames bool
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	Logger   zerolog.Logger
}

// ErrAllFailed is returned by Run when no input converted.
var ErrAllFailed = errors.New("every input failed to convert")

// Pipeline orchestrates a batch conversion.
type Pipeline struct {
	cfg  Config
	conv Converter
}

// New creates a configured pipeline.
func New(conv Converter, cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return &Pipeline{cfg: cfg, conv: conv}
}

// Run executes the batch and returns its report. Per-file failures are
// recorded in the report; Run returns an error only when nothing could be
// attempted or every input failed, and the report is still returned in the
// latter case.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	log := p.cfg.Logger

	sources, err := ScanInputs(p.cfg.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %v", p.cfg.Inputs)
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	log.Debug().Int("files", len(sources)).Int("workers", p.cfg.Workers).Msg("batch started")

	names := planNames(sources, p.cfg.Format)
	entries := make([]report.Entry, len(sources))
	bar := p.progress(len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			entries[i] = p.process(gctx, src, names[i])
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	r := report.New(p.cfg.Format, p.cfg.Profile, p.cfg.OutputDir)
	for _, e := range entries {
		r.Add(e)
	}
	r.ComputeStats()

	log.Debug().
		Int("converted", r.Stats.Converted).
		Int("failed", r.Stats.Failed).
		Str("run_id", r.RunID).
		Msg("batch finished")

	if r.Stats.Converted == 0 {
		return r, fmt.Errorf("%w (%d files)", ErrAllFailed, len(sources))
	}
	return r, nil
}

func (p *Pipeline) progress(n int) *progressbar.ProgressBar {
	if p.cfg.Progress == nil {
		return nil
	}
	return progressbar.NewOptions64(int64(n),
		progressbar.OptionSetWriter(p.cfg.Progress),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(p.cfg.Progress)
		}),
	)
}
