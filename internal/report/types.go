package report

import "github.com/AnyUserName/imgconv-cli/internal/classify"

// Report is the record of one batch conversion run.
type Report struct {
	Version     int     `json:"version"`
	RunID       string  `json:"run_id"`
	GeneratedAt string  `json:"generated_at"`
	Format      string  `json:"format"`            // requested output format
	Profile     string  `json:"profile,omitempty"` // preset name, if any
	OutputDir   string  `json:"output_dir"`
	Entries     []Entry `json:"entries"`
	Stats       Stats   `json:"stats"`
}

// Entry is the outcome for one input file. Exactly one of Output and
// Failure is set.
type Entry struct {
	Input        string `json:"input"`
	Output       string `json:"output,omitempty"` // relative to output_dir
	Engine       string `json:"engine,omitempty"`
	Token        string `json:"token,omitempty"`
	InputFormat  string `json:"input_format,omitempty"`
	InputGuessed bool   `json:"input_guessed,omitempty"`
	OriginalSize int64  `json:"original_size"`
	NewSize      int64  `json:"new_size,omitempty"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Hash         string `json:"hash,omitempty"` // xxhash64 of the output

	Failure *classify.Descriptor `json:"failure,omitempty"`
}

// OK reports whether the entry converted.
func (e Entry) OK() bool { return e.Failure == nil }

// Stats aggregates run metrics.
type Stats struct {
	TotalInputs      int            `json:"total_inputs"`
	Converted        int            `json:"converted"`
	Failed           int            `json:"failed"`
	TotalInputBytes  int64          `json:"total_input_bytes"`
	TotalOutputBytes int64          `json:"total_output_bytes"`
	ByEngine         map[string]int `json:"by_engine,omitempty"`
	ByCategory       map[string]int `json:"failures_by_category,omitempty"`
	Larger           int            `json:"larger_than_original,omitempty"` // outputs that grew
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
