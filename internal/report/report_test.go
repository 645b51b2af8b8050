package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
)

func sample() *Report {
	r := New("WEBP", "web", "/tmp/out")
	r.Add(Entry{
		Input: "a.png", Output: "a.webp", Engine: "raster", Token: "webp",
		InputFormat: "png", OriginalSize: 1000, NewSize: 400, Width: 64, Height: 32,
	})
	r.Add(Entry{
		Input: "b.jpg", Output: "b.webp", Engine: "ffmpeg", Token: "libwebp",
		InputFormat: "jpeg", OriginalSize: 200, NewSize: 300,
	})
	r.Add(Entry{
		Input: "c.bmp", OriginalSize: 50,
		Failure: &classify.Descriptor{Category: classify.File, Message: "The file appears to be corrupted or invalid"},
	})
	return r
}

func TestNewReport(t *testing.T) {
	r := New("PNG", "", ".")
	if r.Version != SupportedReportVersion {
		t.Errorf("version: got %d, want %d", r.Version, SupportedReportVersion)
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("run id %q: %v", r.RunID, err)
	}
	if r.Entries == nil {
		t.Error("entries should marshal as [] not null")
	}
	if New("PNG", "", ".").RunID == r.RunID {
		t.Error("run ids must differ between runs")
	}
}

func TestComputeStats(t *testing.T) {
	r := sample()
	r.ComputeStats()
	s := r.Stats

	if s.TotalInputs != 3 || s.Converted != 2 || s.Failed != 1 {
		t.Errorf("counts: got %d/%d/%d", s.TotalInputs, s.Converted, s.Failed)
	}
	if s.TotalInputBytes != 1250 {
		t.Errorf("input bytes: got %d", s.TotalInputBytes)
	}
	if s.TotalOutputBytes != 700 {
		t.Errorf("output bytes: got %d", s.TotalOutputBytes)
	}
	if s.ByEngine["raster"] != 1 || s.ByEngine["ffmpeg"] != 1 {
		t.Errorf("by engine: got %v", s.ByEngine)
	}
	if s.ByCategory["file"] != 1 {
		t.Errorf("by category: got %v", s.ByCategory)
	}
	if s.Larger != 1 {
		t.Errorf("larger: got %d", s.Larger)
	}
	if f := r.Failures(); len(f) != 1 || f[0].Input != "c.bmp" {
		t.Errorf("failures: got %v", f)
	}
}

func TestWriteJSON(t *testing.T) {
	r := sample()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data[len(data)-1] != '\n' {
		t.Error("report should end with a newline")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["profile"] != "web" || raw["format"] != "WEBP" {
		t.Errorf("header: got %v / %v", raw["profile"], raw["format"])
	}
	stats, _ := raw["stats"].(map[string]any)
	if stats["converted"] != float64(2) {
		t.Errorf("stats not computed before writing: %v", stats)
	}

	entries, _ := raw["entries"].([]any)
	if len(entries) != 3 {
		t.Fatalf("entries: got %d", len(entries))
	}
	failed, _ := entries[2].(map[string]any)
	if _, ok := failed["output"]; ok {
		t.Error("failed entry should omit output")
	}
	failure, _ := failed["failure"].(map[string]any)
	if failure["category"] != "file" {
		t.Errorf("failure category: got %v", failure["category"])
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"run_id": "x",
		"generated_at": "2025-01-01T00:00:00Z",
		"format": "PNG",
		"future_field": true,
		"entries": [{"input": "a.png", "original_size": 1, "new_field": 2}],
		"stats": {"total_inputs": 1, "new_stat": 42}
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if len(r.Entries) != 1 || !r.Entries[0].OK() {
		t.Errorf("entries not parsed: %+v", r.Entries)
	}
}
