package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/config"
	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/engine/ffmpeg"
	"github.com/AnyUserName/imgconv-cli/internal/engine/raster"
	"github.com/AnyUserName/imgconv-cli/internal/logging"
)

var (
	version    = "0.1.0"
	verbose    bool
	noColor    bool
	configFile string
	envFile    string

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "imgconv",
	Short: "Convert images between formats, locally",
	Long: `imgconv converts images between formats on this machine. Nothing is
uploaded: an in-process engine handles the common raster formats and an
ffmpeg engine covers the rest.

Settings come from imgconv.yaml, a .env file, IMGCONV_* environment
variables and flags, in increasing order of precedence.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI until it finishes or is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./imgconv.yaml or ~/.config/imgconv/imgconv.yaml)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded into the environment")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", logging.FormatConsole, "log format: console or json")
	pf.StringSlice("engine-order", []string{string(engine.Raster), string(engine.FFmpeg)}, "engine preference order")
	pf.String("ffmpeg-path", "", "ffmpeg binary to use")
	pf.String("ffmpeg-url", "", "base URL to download the ffmpeg runtime from")
	pf.Int64("max-concurrent", 0, "maximum simultaneous ffmpeg processes (0 = NumCPU)")
	pf.Duration("timeout", 0, "per-conversion timeout (0 = none)")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads the configuration and the logger before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(config.Options{
		ConfigFile: configFile,
		EnvFile:    envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger = logging.New(logging.Config{Level: level, Format: cfg.Log.Format})
	if noColor {
		color.NoColor = true
	}
	if cfg.File != "" {
		logger.Debug().Str("file", cfg.File).Msg("config loaded")
	}
	return nil
}

// newEngines builds the engines in the configured order.
func newEngines() ([]engine.Engine, error) {
	order, err := cfg.EngineOrder()
	if err != nil {
		return nil, err
	}
	engines := make([]engine.Engine, 0, len(order))
	for _, id := range order {
		switch id {
		case engine.Raster:
			engines = append(engines, raster.New(raster.Config{Logger: logger}))
		case engine.FFmpeg:
			engines = append(engines, ffmpeg.New(ffmpeg.Config{
				BinaryPath:    cfg.FFmpeg.Path,
				SearchPath:    cfg.FFmpeg.SearchPath,
				BaseURL:       cfg.FFmpeg.BaseURL,
				Version:       cfg.FFmpeg.Version,
				CacheDir:      cfg.FFmpeg.CacheDir,
				WorkDir:       cfg.FFmpeg.WorkDir,
				MaxConcurrent: cfg.FFmpeg.MaxConcurrent,
				Logger:        logger,
			}))
		}
	}
	return engines, nil
}

// newConverter builds the converter. Callers close it.
func newConverter() (*converter.Converter, error) {
	engines, err := newEngines()
	if err != nil {
		return nil, err
	}
	return converter.New(converter.Config{
		Engines: engines,
		Timeout: cfg.Conversion.Timeout,
		Logger:  logger,
	})
}

func closeConverter(c *converter.Converter) {
	if err := c.Close(); err != nil {
		logger.Warn().Err(err).Msg("engine shutdown")
	}
}
