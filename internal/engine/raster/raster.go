// Package raster is the primary conversion engine. It runs in process: input
// bytes are decoded into an image.Image, resized with imaging and encoded
// again with the standard library and x/image codecs.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/imgconv-cli/internal/engine"
)

// aliases map user-facing names to the native tokens.
var aliases = map[string]engine.Token{
	"JPG":   "JPEG",
	"JPE":   "JPEG",
	"JFIF":  "JPEG",
	"TIF":   "TIFF",
	"PNG32": "PNG",
	"BMP3":  "BMP",
}

// Config configures the raster engine.
type Config struct {
	Logger zerolog.Logger
	// Filter is the resampling filter. The zero value (nearest neighbor)
	// selects Lanczos.
	Filter imaging.ResampleFilter
	// Encoders overrides the codec set. Used by tests.
	Encoders []Encoder
}

// runtime is the initialized codec table.
type runtime struct {
	encoders map[engine.Token]Encoder
}

// Engine is the in-process raster engine.
type Engine struct {
	log      zerolog.Logger
	filter   imaging.ResampleFilter
	encoders []Encoder
	resolver *engine.Resolver
	state    *engine.Lazy[*runtime]
}

// New creates an engine. Nothing is initialized until the first Convert.
func New(cfg Config) *Engine {
	e := &Engine{
		log:      cfg.Logger.With().Str("engine", string(engine.Raster)).Logger(),
		filter:   cfg.Filter,
		encoders: cfg.Encoders,
	}
	if e.filter.Support == 0 {
		e.filter = imaging.Lanczos
	}
	if len(e.encoders) == 0 {
		e.encoders = defaultEncoders()
	}

	native := make([]engine.Token, 0, len(e.encoders))
	for _, enc := range e.encoders {
		native = append(native, enc.Token())
	}
	e.resolver = engine.NewResolver(aliases, native)
	e.state = engine.NewLazy(e.setup)
	return e
}

func (e *Engine) ID() engine.ID { return engine.Raster }

// Resolve maps a format name to a raster token.
func (e *Engine) Resolve(name string) (engine.Token, bool) { return e.resolver.Resolve(name) }

// Resolver exposes the alias table and native tokens.
func (e *Engine) Resolver() *engine.Resolver { return e.resolver }

// CanRead reports whether a registered decoder recognizes the input header.
func (e *Engine) CanRead(in engine.Input) bool {
	if len(in.Data) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(in.Data))
	return err == nil
}

func (e *Engine) Status() engine.Status { return e.state.Status() }

// Init runs the codec probe ahead of the first conversion.
func (e *Engine) Init(ctx context.Context) error {
	if _, err := e.state.Get(ctx); err != nil {
		return &engine.InitError{Engine: engine.Raster, Err: err}
	}
	return nil
}

// Close drops the codec table. The next Convert initializes again.
func (e *Engine) Close() error {
	return e.state.Reset(nil)
}

// setup builds the codec table and checks that every encoder produces
// output its decoder accepts.
func (e *Engine) setup(ctx context.Context) (*runtime, error) {
	probe := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	probe.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})

	rt := &runtime{encoders: make(map[engine.Token]Encoder, len(e.encoders))}
	for _, enc := range e.encoders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := enc.Encode(&buf, probe, 0); err != nil {
			return nil, fmt.Errorf("probe %s encoder: %w", enc.Token(), err)
		}
		if _, _, err := image.DecodeConfig(&buf); err != nil {
			return nil, fmt.Errorf("probe %s decoder: %w", enc.Token(), err)
		}
		rt.encoders[enc.Token()] = enc
	}

	e.log.Debug().Int("codecs", len(rt.encoders)).Msg("raster engine ready")
	return rt, nil
}

// Convert decodes the input, applies the resize and re-encodes it as token.
func (e *Engine) Convert(ctx context.Context, in engine.Input, token engine.Token, opts engine.Options) (*engine.Output, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rt, err := e.state.Get(ctx)
	if err != nil {
		return nil, &engine.InitError{Engine: engine.Raster, Err: err}
	}
	enc, ok := rt.encoders[token]
	if !ok {
		return nil, fmt.Errorf("%w: %s not available in raster engine", engine.ErrUnsupportedFormat, token)
	}
	if len(in.Data) == 0 {
		return nil, engine.ErrEmptyInput
	}

	_, inputFormat, err := image.DecodeConfig(bytes.NewReader(in.Data))
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	// Encoders drop EXIF, so the orientation tag is applied to the pixels.
	// Dimensions are preserved as displayed, not as stored.
	img, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img = e.resize(img, opts.Resize)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(in.Data))
	if err := enc.Encode(&buf, img, opts.Quality); err != nil {
		return nil, fmt.Errorf("encode %s: %w", token, err)
	}
	if buf.Len() == 0 {
		return nil, engine.ErrEmptyOutput
	}

	e.log.Debug().
		Str("input", inputFormat).
		Str("token", string(token)).
		Int("bytes_in", len(in.Data)).
		Int("bytes_out", buf.Len()).
		Msg("converted")

	return &engine.Output{Data: buf.Bytes(), InputFormat: inputFormat}, nil
}

// resize applies the geometry in r. A bounding box only ever shrinks.
func (e *Engine) resize(img image.Image, r *engine.Resize) image.Image {
	switch r.Mode() {
	case engine.ModeFit:
		return imaging.Fit(img, r.Width, r.Height, e.filter)
	case engine.ModeExact:
		return imaging.Resize(img, r.Width, r.Height, e.filter)
	case engine.ModeWidth:
		return imaging.Resize(img, r.Width, 0, e.filter)
	case engine.ModeHeight:
		return imaging.Resize(img, 0, r.Height, e.filter)
	}
	return img
}
