// Package engine defines the contract shared by the conversion engines: how
// output formats are resolved to engine tokens, the conversion options both
// engines honor, and the lazy single-flight state every engine keeps for its
// runtime.
package engine

import (
	"context"
	"strings"
)

// ID names an engine.
type ID string

// Built-in engines, in default preference order.
const (
	Raster ID = "raster"
	FFmpeg ID = "ffmpeg"
)

// ParseID returns the engine id for s, ignoring case.
func ParseID(s string) (ID, bool) {
	switch ID(strings.ToLower(strings.TrimSpace(s))) {
	case Raster:
		return Raster, true
	case FFmpeg:
		return FFmpeg, true
	}
	return "", false
}

// Token is an engine-specific format identifier, distinct from the
// engine-agnostic names users type.
type Token string

// Input is the source image handed to an engine.
type Input struct {
	Data []byte
	// MIMEType is the declared type. It may be empty, generic or wrong.
	MIMEType string
}

// Output is a successful engine conversion.
type Output struct {
	Data []byte
	// InputFormat is the format the engine decoded the input as.
	InputFormat string
	// InputGuessed is set when InputFormat is a last-resort guess rather
	// than a detection.
	InputGuessed bool
}

// Engine converts images between formats.
//
// Resolve and CanRead are cheap, side-effect free checks: they never
// initialize the engine or run a conversion. Convert initializes the engine
// on first use; Init does so ahead of time.
type Engine interface {
	ID() ID
	Resolve(name string) (Token, bool)
	CanRead(in Input) bool
	Init(ctx context.Context) error
	Convert(ctx context.Context, in Input, token Token, opts Options) (*Output, error)
	Status() Status
	Close() error
}
