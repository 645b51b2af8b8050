package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// New creates an empty report for a run converting to format.
func New(format, profileName, outputDir string) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Format:      format,
		Profile:     profileName,
		OutputDir:   outputDir,
		Entries:     []Entry{},
	}
}

// Add appends an entry.
func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	s := Stats{TotalInputs: len(r.Entries)}
	for _, e := range r.Entries {
		s.TotalInputBytes += e.OriginalSize
		if !e.OK() {
			s.Failed++
			if s.ByCategory == nil {
				s.ByCategory = make(map[string]int)
			}
			s.ByCategory[string(e.Failure.Category)]++
			continue
		}
		s.Converted++
		s.TotalOutputBytes += e.NewSize
		if e.NewSize > e.OriginalSize {
			s.Larger++
		}
		if e.Engine != "" {
			if s.ByEngine == nil {
				s.ByEngine = make(map[string]int)
			}
			s.ByEngine[e.Engine]++
		}
	}
	r.Stats = s
}

// Failures returns the entries that did not convert.
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if !e.OK() {
			out = append(out, e)
		}
	}
	return out
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
