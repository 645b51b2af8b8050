package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/formats"
	"github.com/AnyUserName/imgconv-cli/internal/pipeline"
	"github.com/AnyUserName/imgconv-cli/internal/profile"
	"github.com/AnyUserName/imgconv-cli/internal/report"
)

var (
	convertTo         string
	convertOutDir     string
	convertPreset     string
	convertEngine     string
	convertWidth      int
	convertHeight     int
	convertKeepAspect bool
	convertHashNames  bool
	convertReport     string
	convertNoProgress bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|dir>...",
	Short: "Convert images to another format",
	Long: `Converts every file given, and every readable image found under the
directories given, to the requested format. Outputs mirror the input layout
under --out. With --hash-names they are named <name>.<hash>.<ext> after
their content.

The first engine that can write the format and read the input is used.`,
	Example: `  imgconv convert photo.heic --to jpeg
  imgconv convert ./shots --preset web --out ./public/img --report report.json
  imgconv convert scan.png --to webp --width 1200 --quality 80`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVarP(&convertTo, "to", "t", "", "output format, e.g. jpeg, png, webp")
	f.StringVarP(&convertOutDir, "out", "o", ".", "output directory")
	f.StringVarP(&convertPreset, "preset", "p", "", "conversion preset: "+strings.Join(profile.Names(), ", "))
	f.StringVar(&convertEngine, "engine", "", "force an engine: raster or ffmpeg")
	f.IntVarP(&convertWidth, "width", "W", 0, "target width in pixels")
	f.IntVarP(&convertHeight, "height", "H", 0, "target height in pixels")
	f.BoolVar(&convertKeepAspect, "keep-aspect", true, "keep the aspect ratio when both width and height are set")
	f.BoolVar(&convertHashNames, "hash-names", false, "content-addressed output names")
	f.StringVar(&convertReport, "report", "", "write a JSON report of the run to this file")
	f.BoolVar(&convertNoProgress, "no-progress", false, "hide the progress bar")
	f.IntP("quality", "q", 0, "quality 1-100 (0 = preset or engine default)")
	f.IntP("workers", "w", 0, "parallel conversions (0 = NumCPU)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()

	var prof profile.Profile
	if convertPreset != "" {
		p, ok := profile.Get(convertPreset)
		if !ok {
			return fmt.Errorf("unknown preset %q (have %s)", convertPreset, strings.Join(profile.Names(), ", "))
		}
		prof = p
	}
	var keepAspect *bool
	if cmd.Flags().Changed("keep-aspect") {
		keepAspect = engine.Bool(convertKeepAspect)
	}
	// conversion.quality from a file or the environment is only a default;
	// --quality is an explicit override.
	var quality int
	if cmd.Flags().Changed("quality") {
		quality = cfg.Conversion.Quality
	}
	format, opts := prof.Apply(profile.Overrides{
		Format:         convertTo,
		Quality:        quality,
		Width:          convertWidth,
		Height:         convertHeight,
		KeepAspect:     keepAspect,
		DefaultQuality: cfg.Conversion.Quality,
	})
	if format == "" {
		return errors.New("no output format: use --to or --preset")
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var pinned engine.ID
	if convertEngine != "" {
		id, ok := engine.ParseID(convertEngine)
		if !ok {
			return fmt.Errorf("unknown engine %q", convertEngine)
		}
		pinned = id
	}

	absOutput, err := filepath.Abs(convertOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	conv, err := newConverter()
	if err != nil {
		return err
	}
	defer closeConverter(conv)

	if !conv.Writable(format) {
		logger.Warn().Str("format", format).Msg("no configured engine writes this format")
	}
	logger.Debug().
		Str("format", format).
		Str("preset", prof.Name).
		Int("quality", opts.Quality).
		Str("output", absOutput).
		Msg("convert")

	pcfg := pipeline.Config{
		Inputs:    args,
		OutputDir: absOutput,
		Format:    format,
		Options:   opts,
		Engine:    pinned,
		Profile:   prof.Name,
		Workers:   cfg.Batch.Workers,
		HashNames: convertHashNames,
		Logger:    logger,
	}
	if !convertNoProgress && !verbose {
		pcfg.Progress = os.Stderr
	}

	r, runErr := pipeline.New(conv, pcfg).Run(cmd.Context())
	if r == nil {
		return runErr
	}

	if convertReport != "" {
		if err := report.WriteJSON(r, convertReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	printConvertReport(r, time.Since(start))
	return runErr
}

func printConvertReport(r *report.Report, elapsed time.Duration) {
	good := color.New(color.FgGreen, color.Bold).SprintFunc()
	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println()
	for _, e := range r.Entries {
		name := filepath.Base(e.Input)
		if e.OK() {
			fmt.Printf("  %s %-32s %s  %9s -> %-9s %s\n",
				good("✓"), truncKey(name, 32), e.Output,
				converter.FormatFileSize(e.OriginalSize),
				converter.FormatFileSize(e.NewSize),
				dim("("+e.Engine+")"),
			)
			continue
		}
		fmt.Printf("  %s %-32s %s\n", bad("✗"), truncKey(name, 32), e.Failure.Message)
		for _, s := range e.Failure.Suggestions {
			fmt.Printf("      %s %s\n", dim("•"), s)
		}
	}
	fmt.Println()

	s := r.Stats
	ratio := float64(0)
	if s.TotalInputBytes > 0 {
		ratio = float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
	}
	fmt.Printf("  Converted:   %d of %d\n", s.Converted, s.TotalInputs)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %s\n", bad(s.Failed))
		cats := make([]string, 0, len(s.ByCategory))
		for c := range s.ByCategory {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("    %-12s %d\n", c, s.ByCategory[c])
		}
	}
	fmt.Printf("  Input size:  %s\n", converter.FormatFileSize(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", converter.FormatFileSize(s.TotalOutputBytes))
	if s.Converted > 0 {
		fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	}
	if s.Larger > 0 {
		fmt.Printf("  Larger:      %d outputs grew\n", s.Larger)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if d, ok := formats.Lookup(r.Format); ok {
		fmt.Printf("  Format:      %s %s\n", d.ID, dim("("+d.Description+")"))
	}
	fmt.Println()
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
