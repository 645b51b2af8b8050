// Package config loads imgconv settings from defaults, a YAML file, a .env
// file, IMGCONV_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/logging"
)

const (
	EnvPrefix         = "IMGCONV"
	DefaultConfigName = "imgconv"
	DefaultEnvFile    = ".env"
	DefaultFFmpeg     = "6.1"
)

// Config is the merged configuration.
type Config struct {
	Log        Log        `mapstructure:"log"`
	Engine     Engine     `mapstructure:"engine"`
	FFmpeg     FFmpeg     `mapstructure:"ffmpeg"`
	Conversion Conversion `mapstructure:"conversion"`
	Batch      Batch      `mapstructure:"batch"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Engine struct {
	// Order is the engine preference order.
	Order []string `mapstructure:"order"`
}

type FFmpeg struct {
	Path          string `mapstructure:"path"`
	SearchPath    bool   `mapstructure:"search_path"`
	BaseURL       string `mapstructure:"base_url"`
	Version       string `mapstructure:"version"`
	CacheDir      string `mapstructure:"cache_dir"`
	WorkDir       string `mapstructure:"work_dir"`
	MaxConcurrent int64  `mapstructure:"max_concurrent"`
}

type Conversion struct {
	// Timeout bounds one conversion; 0 disables it.
	Timeout time.Duration `mapstructure:"timeout"`
	// Quality is the default quality when a request sets none.
	Quality int `mapstructure:"quality"`
}

type Batch struct {
	// Workers is the number of files converted at once; 0 means NumCPU.
	Workers int `mapstructure:"workers"`
}

// flagKeys maps flag names to the keys they override.
var flagKeys = map[string]string{
	"log-level":      "log.level",
	"log-format":     "log.format",
	"engine-order":   "engine.order",
	"ffmpeg-path":    "ffmpeg.path",
	"ffmpeg-url":     "ffmpeg.base_url",
	"max-concurrent": "ffmpeg.max_concurrent",
	"timeout":        "conversion.timeout",
	"quality":        "conversion.quality",
	"workers":        "batch.workers",
}

// Options tell Load where to look.
type Options struct {
	// ConfigFile is an explicit config path. When empty, imgconv.yaml is
	// searched in the working directory and $HOME/.config/imgconv.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the environment when present.
	// Empty means DefaultEnvFile.
	EnvFile string
	Flags   *pflag.FlagSet
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("engine.order", []string{string(engine.Raster), string(engine.FFmpeg)})
	v.SetDefault("ffmpeg.path", "")
	v.SetDefault("ffmpeg.search_path", true)
	v.SetDefault("ffmpeg.base_url", "")
	v.SetDefault("ffmpeg.version", DefaultFFmpeg)
	v.SetDefault("ffmpeg.cache_dir", defaultCacheDir())
	v.SetDefault("ffmpeg.work_dir", "")
	v.SetDefault("ffmpeg.max_concurrent", 0)
	v.SetDefault("conversion.timeout", time.Duration(0))
	v.SetDefault("conversion.quality", 0)
	v.SetDefault("batch.workers", 0)
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, DefaultConfigName, "ffmpeg")
}

// Load merges every source and validates the result.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Engine.Order = splitList(cfg.Engine.Order)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList flattens entries that still hold comma separated values, as
// environment variables and string flags do.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects values no component accepts.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: must be console or json, got %q", c.Log.Format))
	}
	if _, err := c.EngineOrder(); err != nil {
		errs = append(errs, err)
	}
	if c.Conversion.Quality < 0 || c.Conversion.Quality > 100 {
		errs = append(errs, fmt.Errorf("conversion.quality: %d out of range 0-100", c.Conversion.Quality))
	}
	if c.Conversion.Timeout < 0 {
		errs = append(errs, fmt.Errorf("conversion.timeout: must not be negative"))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers: must not be negative"))
	}
	if c.FFmpeg.MaxConcurrent < 0 {
		errs = append(errs, fmt.Errorf("ffmpeg.max_concurrent: must not be negative"))
	}
	if c.FFmpeg.BaseURL != "" && !strings.HasPrefix(c.FFmpeg.BaseURL, "http://") && !strings.HasPrefix(c.FFmpeg.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("ffmpeg.base_url: must be an http(s) URL"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// EngineOrder parses engine.order.
func (c *Config) EngineOrder() ([]engine.ID, error) {
	if len(c.Engine.Order) == 0 {
		return nil, errors.New("engine.order: at least one engine is required")
	}
	seen := make(map[engine.ID]bool, len(c.Engine.Order))
	out := make([]engine.ID, 0, len(c.Engine.Order))
	for _, s := range c.Engine.Order {
		id, ok := engine.ParseID(s)
		if !ok {
			return nil, fmt.Errorf("engine.order: unknown engine %q", s)
		}
		if seen[id] {
			return nil, fmt.Errorf("engine.order: %s listed twice", id)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}
