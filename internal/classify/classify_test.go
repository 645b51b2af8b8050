package classify

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownMessages(t *testing.T) {
	for _, tc := range []struct {
		msg         string
		want        Category
		recoverable bool
	}{
		{"Failed to fetch WASM file: 404 Not Found", Initialization, true},
		{"float unrepresentable in integer range", Processing, true},
		{"Unsupported output format: INVALID", Format, true},
		{"out of memory", Memory, true},
		{"network error occurred", Network, true},
		{"operation not supported", Processing, true},
		{"WebAssembly instantiation failed", Initialization, false},
		{"SharedArrayBuffer is not defined", Initialization, false},
		{"CompileError: wasm validation error", Initialization, false},
		{"Both ImageMagick and FFmpeg failed", Processing, true},

		{"initialize raster engine: probe JPEG encoder: codec table corrupt", Initialization, true},
		{"initialize ffmpeg engine: ffmpeg binary not found: set ffmpeg.path", Initialization, false},
		{"initialize ffmpeg engine: runtime checksum mismatch: got 01, want 02 for ffmpeg", Initialization, true},
		{"initialize ffmpeg engine: fetch runtime asset http://x/6.1/ffmpeg failed: 503 Service Unavailable", Network, true},
		{"initialize ffmpeg engine: FFmpeg instance failed to start: exit status 126", Initialization, true},
		{"unsupported output format: WEBP not available in raster engine", Format, true},
		{"decode input: image: unknown format", Format, true},
		{"decode input: unexpected EOF", File, true},
		{"invalid image: empty input", File, true},
		{"invalid parameter: quality 150 out of range 1-100", Processing, true},
		{"ffmpeg command failed: exit status 1: Invalid data found when processing input", Processing, true},
		{"ffmpeg command failed: exit status 1: Unknown encoder 'libjxl'", Format, true},
		{"ffmpeg command failed: context deadline exceeded", Processing, true},
		{"FFmpeg output invalid: output.png is empty", Processing, true},
		{"engine output invalid: empty result", Processing, true},
		{"open /tmp/in.png: no such file or directory", File, true},
		{"FFmpeg FS error: mkdir /work: permission denied", File, true},
	} {
		d := Classify(tc.msg)
		assert.Equal(t, tc.want, d.Category, tc.msg)
		assert.Equal(t, tc.recoverable, d.Recoverable, tc.msg)
		assert.NotEmpty(t, d.Message, tc.msg)
		assert.NotEmpty(t, d.Suggestions, tc.msg)
	}
}

func TestClassifyUnknown(t *testing.T) {
	d := Classify("zzz_not_a_real_error_zzz")
	assert.Equal(t, Unknown, d.Category)
	assert.True(t, d.Recoverable)
	assert.Equal(t, "An unexpected error occurred", d.Message)
	assert.Len(t, d.Suggestions, 3)
	assert.Equal(t, -1, std.Match("zzz_not_a_real_error_zzz"))
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Memory, Classify("OUT OF MEMORY").Category)
	assert.Equal(t, Format, Classify("unsupported OUTPUT format: X").Category)
}

func TestSpecificRuleWins(t *testing.T) {
	// Matches the missing-executable rule and the generic "file not found" rule.
	msg := `exec: "ffmpeg": executable file not found in $PATH`

	var matching []int
	for i, r := range std.rules {
		if r.re.MatchString(msg) {
			matching = append(matching, i)
		}
	}
	require.GreaterOrEqual(t, len(matching), 2, "message must be ambiguous")

	d := Classify(msg)
	assert.Equal(t, Initialization, d.Category)
	assert.False(t, d.Recoverable)
	assert.Equal(t, matching[0], std.Match(msg))

	// Matches the early asset-fetch rule and the late generic init rule.
	msg = "initialize ffmpeg engine: fetch runtime asset http://x/runtime.yaml: network error: connection refused"
	assert.Equal(t, Network, Classify(msg).Category)
	assert.Equal(t, 1, std.Match(msg))
}

func TestRuleOrderDecides(t *testing.T) {
	specific := Rule{Pattern: "disk full", Category: File, Message: "disk"}
	generic := Rule{Pattern: "full", Category: Memory, Message: "generic"}

	c, err := New([]Rule{specific, generic}, fallback)
	require.NoError(t, err)
	assert.Equal(t, File, c.Classify("write: disk full").Category)

	c, err = New([]Rule{generic, specific}, fallback)
	require.NoError(t, err)
	assert.Equal(t, Memory, c.Classify("write: disk full").Category)
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New([]Rule{{Pattern: "(", Category: File}}, fallback)
	assert.Error(t, err)
}

type stringer struct{}

func (stringer) String() string { return "out of memory" }

func TestMessage(t *testing.T) {
	assert.Equal(t, "plain", Message("plain"))
	assert.Equal(t, "wrapped: inner", Message(fmt.Errorf("wrapped: %w", errors.New("inner"))))
	assert.Equal(t, "out of memory", Message(stringer{}))
	assert.Equal(t, "42", Message(42))
	assert.Equal(t, "", Message(nil))

	assert.Equal(t, Memory, Classify(stringer{}).Category)
	assert.Equal(t, Unknown, Classify(nil).Category)
}

func TestDescriptorsAreCopies(t *testing.T) {
	d := Classify("out of memory")
	d.Suggestions[0] = "mutated"
	assert.NotEqual(t, "mutated", Classify("out of memory").Suggestions[0])

	fb := Classify("zzz")
	fb.Suggestions[0] = "mutated"
	assert.NotEqual(t, "mutated", Fallback().Suggestions[0])
}

func TestRuleCount(t *testing.T) {
	stats := RuleCount()
	total := 0
	for _, n := range stats {
		total += n
	}
	assert.Equal(t, len(Rules()), total)
	assert.Len(t, stats, len(Categories()))
	assert.Zero(t, stats[Unknown])
	for _, c := range Categories() {
		if c != Unknown {
			assert.Positive(t, stats[c], c)
		}
	}
}

func TestRecommendedActions(t *testing.T) {
	assert.Len(t, RecommendedActions(Network), 2)
	assert.Len(t, RecommendedActions(Memory), 3)
	assert.Equal(t, Fallback().Suggestions, RecommendedActions(Unknown))
	assert.Equal(t, Fallback().Suggestions, RecommendedActions("bogus"))
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	err := errors.New("decode input: image: unknown format")
	Log(log, err, Classify(err))

	out := buf.String()
	assert.Contains(t, out, `"category":"format"`)
	assert.Contains(t, out, `"recoverable":true`)
	assert.Contains(t, out, `"cause":"decode input: image: unknown format"`)

	buf.Reset()
	Log(log.Level(zerolog.InfoLevel), err, Classify(err))
	assert.Empty(t, buf.String())
}
