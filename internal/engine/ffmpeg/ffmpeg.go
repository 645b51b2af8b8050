// Package ffmpeg is the fallback conversion engine. It drives an external
// ffmpeg binary: each conversion writes the input into a private workspace
// directory, runs ffmpeg on it and reads the result back.
package ffmpeg

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// DefaultVersion is the runtime version fetched when none is configured.
const DefaultVersion = "6.1"

// Config configures the ffmpeg engine.
type Config struct {
	// BinaryPath pins the binary. It must be a non-empty regular file.
	BinaryPath string
	// SearchPath looks ffmpeg up in $PATH when BinaryPath is empty.
	SearchPath bool
	// BaseURL, when set, is where a runtime is downloaded from:
	// <BaseURL>/<Version>/runtime.yaml and the binary it names.
	BaseURL  string
	Version  string
	CacheDir string
	// WorkDir holds the per-conversion workspaces. Empty means a private
	// temp directory, removed on Close.
	WorkDir string
	// MaxConcurrent bounds simultaneous ffmpeg processes; 0 means NumCPU.
	MaxConcurrent int64

	Runner     Runner
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Engine is the ffmpeg-backed engine.
type Engine struct {
	log      zerolog.Logger
	runner   Runner
	loader   *loader
	workDir  string
	resolver *engine.Resolver
	sem      *semaphore.Weighted
	state    *engine.Lazy[*Runtime]

	// closing is held shared by Convert and exclusively by Close, so the
	// work root is never removed under a running process.
	closing sync.RWMutex
}

// New creates an engine. Nothing is located or downloaded until the first
// Convert or Init.
func New(cfg Config) *Engine {
	if cfg.Runner == nil {
		cfg.Runner = ExecRunner{}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 5 * time.Minute}
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = int64(runtime.NumCPU())
	}

	log := cfg.Logger.With().Str("engine", string(engine.FFmpeg)).Logger()
	e := &Engine{
		log:     log,
		runner:  cfg.Runner,
		workDir: cfg.WorkDir,
		loader: &loader{
			binaryPath: cfg.BinaryPath,
			searchPath: cfg.SearchPath,
			baseURL:    cfg.BaseURL,
			version:    cfg.Version,
			cacheDir:   cfg.CacheDir,
			client:     cfg.HTTPClient,
			log:        log,
		},
		resolver: engine.NewResolver(aliases, nativeTokens()),
		sem:      semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	e.state = engine.NewLazy(e.setup)
	return e
}

func (e *Engine) ID() engine.ID { return engine.FFmpeg }

// Resolve maps a format name to an ffmpeg output token.
func (e *Engine) Resolve(name string) (engine.Token, bool) { return e.resolver.Resolve(name) }

// Resolver exposes the alias table and native tokens.
func (e *Engine) Resolver() *engine.Resolver { return e.resolver }

// CanRead reports whether the input is a format ffmpeg decodes. A guessed
// format does not count.
func (e *Engine) CanRead(in engine.Input) bool {
	if len(in.Data) == 0 {
		return false
	}
	d := DetectInput(in.MIMEType, in.Data)
	return !d.Guessed && readable[d.Ext]
}

func (e *Engine) Status() engine.Status { return e.state.Status() }

// Init initializes the engine ahead of the first conversion, downloading the
// runtime if needed.
func (e *Engine) Init(ctx context.Context) error {
	_, err := e.Runtime(ctx)
	return err
}

// Runtime returns the located runtime, initializing the engine if needed.
func (e *Engine) Runtime(ctx context.Context) (*Runtime, error) {
	rt, err := e.state.Get(ctx)
	if err != nil {
		return nil, &engine.InitError{Engine: engine.FFmpeg, Err: err}
	}
	return rt, nil
}

// Close waits for running conversions, then releases the runtime and
// removes a private work directory. The next Convert initializes again.
func (e *Engine) Close() error {
	e.closing.Lock()
	defer e.closing.Unlock()
	return e.state.Reset(func(rt *Runtime) error {
		if rt.ownsWorkDir {
			return os.RemoveAll(rt.workDir)
		}
		return nil
	})
}

func (e *Engine) setup(ctx context.Context) (*Runtime, error) {
	path, source, err := e.loader.locate(ctx)
	if err != nil {
		return nil, err
	}

	out, err := e.runner.Run(ctx, "", path, "-hide_banner", "-version")
	if err != nil {
		return nil, fmt.Errorf("FFmpeg instance failed to start: %w", err)
	}
	rt := &Runtime{Path: path, Source: source, Version: firstLine(out)}

	if e.workDir != "" {
		if err := os.MkdirAll(e.workDir, 0o700); err != nil {
			return nil, fmt.Errorf("FFmpeg FS error: %w", err)
		}
		rt.workDir = e.workDir
	} else {
		dir, err := os.MkdirTemp("", "imgconv-ffmpeg-*")
		if err != nil {
			return nil, fmt.Errorf("FFmpeg FS error: %w", err)
		}
		rt.workDir, rt.ownsWorkDir = dir, true
	}

	e.log.Debug().Str("path", rt.Path).Str("source", rt.Source).Str("version", rt.Version).Msg("ffmpeg engine ready")
	return rt, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Convert runs one ffmpeg conversion in a fresh workspace. The workspace is
// removed on every return path.
func (e *Engine) Convert(ctx context.Context, in engine.Input, token engine.Token, opts engine.Options) (*engine.Output, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	out, ok := outputs[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s not available in ffmpeg engine", engine.ErrUnsupportedFormat, token)
	}
	if len(in.Data) == 0 {
		return nil, engine.ErrEmptyInput
	}
	e.closing.RLock()
	defer e.closing.RUnlock()
	rt, err := e.Runtime(ctx)
	if err != nil {
		return nil, err
	}

	det := DetectInput(in.MIMEType, in.Data)
	if det.Guessed {
		e.log.Warn().Str("mime", in.MIMEType).Msg("input format not recognized, assuming jpg")
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	ws, err := newWorkspace(rt.workDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.cleanup(); err != nil {
			e.log.Warn().Err(err).Str("dir", ws.dir).Msg("workspace cleanup failed")
		}
	}()

	inName := "input." + det.Ext
	outName := "output." + out.ext
	if err := ws.write(inName, in.Data); err != nil {
		return nil, err
	}

	args := BuildArgs(inName, outName, token, opts)
	e.log.Debug().Strs("args", args).Msg("running ffmpeg")
	if _, err := e.runner.Run(ctx, ws.dir, rt.Path, args...); err != nil {
		return nil, err
	}

	data, err := ws.read(outName)
	if err != nil {
		return nil, fmt.Errorf("FFmpeg output invalid: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("FFmpeg output invalid: %s is empty", outName)
	}

	return &engine.Output{Data: data, InputFormat: det.Ext, InputGuessed: det.Guessed}, nil
}

// workspace is the isolated file namespace of one conversion.
type workspace struct {
	dir string
}

func newWorkspace(root string) (*workspace, error) {
	dir := filepath.Join(root, uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return nil, fmt.Errorf("FFmpeg FS error: %w", err)
	}
	return &workspace{dir: dir}, nil
}

func (w *workspace) write(name string, data []byte) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("FFmpeg FS error: %q is not a plain file name", name)
	}
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("FFmpeg FS error: %w", err)
	}
	return nil
}

func (w *workspace) read(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(w.dir, name))
}

// cleanup removes the input, the output and the directory itself.
func (w *workspace) cleanup() error {
	return os.RemoveAll(w.dir)
}
