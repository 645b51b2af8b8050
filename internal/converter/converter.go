// Package converter is the single entry point for image conversion. It
// validates the requested output format, picks an engine, runs it and turns
// every failure into a classified result.
package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/formats"
)

// Request is one conversion.
type Request struct {
	Data []byte
	// MIMEType is the declared input type. It may be empty or wrong.
	MIMEType string
	// Format is the output format name, e.g. "png" or "JPG".
	Format  string
	Options engine.Options
	// Engine pins the conversion to one engine. Empty lets the converter
	// choose.
	Engine engine.ID
}

// Result holds exactly one of Success or Failure.
type Result struct {
	Success *Success `json:"success,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool { return r.Success != nil }

// Success is a converted image.
type Success struct {
	Data         []byte       `json:"-"`
	OriginalSize int          `json:"original_size"`
	NewSize      int          `json:"new_size"`
	Engine       engine.ID    `json:"engine"`
	Token        engine.Token `json:"token"`
	// Width and Height are zero when the output could not be measured.
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	InputFormat  string `json:"input_format,omitempty"`
	InputGuessed bool   `json:"input_guessed,omitempty"`
}

// Failure is a classified conversion error.
type Failure struct {
	classify.Descriptor
	// Engine is empty when no engine was invoked.
	Engine engine.ID `json:"engine,omitempty"`
	// Err is the raw cause, for logs only.
	Err error `json:"-"`
}

// Config configures a Converter.
type Config struct {
	// Engines in preference order.
	Engines []engine.Engine
	// Timeout bounds each conversion. Zero means no limit.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Converter dispatches requests to engines. It is safe for concurrent use.
type Converter struct {
	engines []engine.Engine
	byID    map[engine.ID]engine.Engine
	timeout time.Duration
	log     zerolog.Logger

	// mu is held shared by every running Convert and exclusively by Close.
	mu     sync.RWMutex
	closed bool
}

// New validates cfg and returns a converter.
func New(cfg Config) (*Converter, error) {
	if len(cfg.Engines) == 0 {
		return nil, errors.New("converter: no engines configured")
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("converter: negative timeout %s", cfg.Timeout)
	}
	c := &Converter{
		engines: cfg.Engines,
		byID:    make(map[engine.ID]engine.Engine, len(cfg.Engines)),
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
	for _, e := range cfg.Engines {
		if _, dup := c.byID[e.ID()]; dup {
			return nil, fmt.Errorf("converter: engine %s configured twice", e.ID())
		}
		c.byID[e.ID()] = e
	}
	return c, nil
}

// Convert runs one conversion. It never panics and never returns an error:
// every failure comes back as a classified Result.Failure.
func (c *Converter) Convert(ctx context.Context, req Request) (res Result) {
	var used engine.ID
	defer func() {
		if r := recover(); r != nil {
			res = c.fail(used, fmt.Errorf("engine panicked: %v", r))
		}
	}()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return c.fail("", engine.ErrClosed)
	}

	name := strings.TrimSpace(req.Format)
	if d, ok := formats.Lookup(name); ok && !d.Write {
		return c.fail("", unsupported(name))
	}

	in := engine.Input{Data: req.Data, MIMEType: req.MIMEType}
	eng, token, err := c.choose(req.Engine, name, in)
	if err != nil {
		return c.fail("", err)
	}
	used = eng.ID()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := eng.Convert(ctx, in, token, req.Options)
	if err != nil {
		return c.fail(used, err)
	}

	s := &Success{
		Data:         out.Data,
		OriginalSize: len(req.Data),
		NewSize:      len(out.Data),
		Engine:       used,
		Token:        token,
		InputFormat:  out.InputFormat,
		InputGuessed: out.InputGuessed,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(out.Data)); err == nil {
		s.Width, s.Height = cfg.Width, cfg.Height
	}

	c.log.Debug().
		Str("engine", string(used)).
		Str("token", string(token)).
		Str("input_ext", out.InputFormat).
		Int("bytes", s.NewSize).
		Dur("took", time.Since(start)).
		Msg("conversion done")
	return Result{Success: s}
}

func unsupported(name string) error {
	return fmt.Errorf("%w: %s", engine.ErrUnsupportedFormat, name)
}

// choose picks the engine and token for a request.
//
// A pinned engine is the only candidate. Otherwise the first engine, in
// preference order, that both writes the format and reads the input wins.
// When no engine reads the input, the first that writes the format is used
// so the decode error is reported by a real engine.
func (c *Converter) choose(pinned engine.ID, name string, in engine.Input) (engine.Engine, engine.Token, error) {
	if pinned != "" {
		e, ok := c.byID[pinned]
		if !ok {
			return nil, "", fmt.Errorf("invalid parameter: engine %q is not configured", pinned)
		}
		tok, ok := e.Resolve(name)
		if !ok {
			return nil, "", unsupported(name)
		}
		return e, tok, nil
	}

	var (
		first    engine.Engine
		firstTok engine.Token
	)
	for _, e := range c.engines {
		tok, ok := e.Resolve(name)
		if !ok {
			continue
		}
		if e.CanRead(in) {
			return e, tok, nil
		}
		if first == nil {
			first, firstTok = e, tok
		}
	}
	if first == nil {
		return nil, "", unsupported(name)
	}
	c.log.Debug().Str("engine", string(first.ID())).Msg("no engine recognizes the input, using first writer")
	return first, firstTok, nil
}

func (c *Converter) fail(id engine.ID, err error) Result {
	d := classify.Classify(err)
	classify.Log(c.log.With().Str("engine", string(id)).Logger(), err, d)
	return Result{Failure: &Failure{Descriptor: d, Engine: id, Err: err}}
}

// Resolution is the outcome of resolving a format name on one engine.
type Resolution struct {
	Engine    engine.ID    `json:"engine" yaml:"engine"`
	Token     engine.Token `json:"token,omitempty" yaml:"token,omitempty"`
	Available bool         `json:"available" yaml:"available"`
}

// Resolve reports how every engine resolves name, in preference order. It
// never initializes an engine.
func (c *Converter) Resolve(name string) []Resolution {
	out := make([]Resolution, 0, len(c.engines))
	for _, e := range c.engines {
		tok, ok := e.Resolve(name)
		out = append(out, Resolution{Engine: e.ID(), Token: tok, Available: ok})
	}
	return out
}

// Writable reports whether name can be produced at all: the registry allows
// writing it and some engine resolves it.
func (c *Converter) Writable(name string) bool {
	if d, ok := formats.Lookup(name); ok && !d.Write {
		return false
	}
	for _, e := range c.engines {
		if _, ok := e.Resolve(name); ok {
			return true
		}
	}
	return false
}

// EngineInfo describes a configured engine.
type EngineInfo struct {
	ID     engine.ID `json:"id" yaml:"id"`
	Status string    `json:"status" yaml:"status"`
	// Outputs lists the native output tokens, when the engine exposes them.
	Outputs []engine.Token `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

type resolverProvider interface {
	Resolver() *engine.Resolver
}

// Engines lists the engines in preference order.
func (c *Converter) Engines() []EngineInfo {
	out := make([]EngineInfo, 0, len(c.engines))
	for _, e := range c.engines {
		info := EngineInfo{ID: e.ID(), Status: e.Status().String()}
		if rp, ok := e.(resolverProvider); ok {
			info.Outputs = rp.Resolver().Tokens()
		}
		out = append(out, info)
	}
	return out
}

// Engine returns a configured engine by id.
func (c *Converter) Engine(id engine.ID) (engine.Engine, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Close waits for running conversions, then tears down every engine. Later
// conversions fail.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	var errs []error
	for _, e := range c.engines {
		if err := e.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s engine: %w", e.ID(), err))
		}
	}
	return errors.Join(errs...)
}
