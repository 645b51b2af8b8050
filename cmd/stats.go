package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <report.json>",
	Short: "Display statistics for a conversion report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func readReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

func runStats(_ *cobra.Command, args []string) error {
	r, err := readReport(args[0])
	if err != nil {
		return err
	}
	printStats(r)
	return nil
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Run:              %s\n", r.RunID)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Format:           %s\n", r.Format)
	if r.Profile != "" {
		fmt.Printf("  Preset:           %s\n", r.Profile)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Inputs:           %d\n", s.TotalInputs)
	fmt.Printf("  Converted:        %d\n", s.Converted)
	fmt.Printf("  Failed:           %d\n", s.Failed)
	fmt.Printf("  Input size:       %s\n", converter.FormatFileSize(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", converter.FormatFileSize(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 && s.Converted > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-engine breakdown.
	type engineStat struct {
		count int
		bytes int64
	}
	byEngine := map[string]engineStat{}
	for _, e := range r.Entries {
		if !e.OK() {
			continue
		}
		es := byEngine[e.Engine]
		es.count++
		es.bytes += e.NewSize
		byEngine[e.Engine] = es
	}
	if len(byEngine) > 0 {
		names := make([]string, 0, len(byEngine))
		for n := range byEngine {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Println("  Engine breakdown:")
		for _, n := range names {
			es := byEngine[n]
			fmt.Printf("    %-8s  %4d files  %s\n", n, es.count, converter.FormatFileSize(es.bytes))
		}
		fmt.Println()
	}

	// Input format breakdown.
	byInput := map[string]int{}
	guessed := 0
	for _, e := range r.Entries {
		if e.InputFormat != "" {
			byInput[e.InputFormat]++
		}
		if e.InputGuessed {
			guessed++
		}
	}
	if len(byInput) > 0 {
		var keys []string
		for k := range byInput {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("  Input formats:")
		for _, k := range keys {
			fmt.Printf("    %-6s  %4d files\n", k, byInput[k])
		}
		fmt.Println()
	}

	// Warnings.
	var warnings []string
	if guessed > 0 {
		warnings = append(warnings, fmt.Sprintf("%d inputs had a guessed format", guessed))
	}
	if s.Larger > 0 {
		warnings = append(warnings, fmt.Sprintf("%d outputs are larger than their input", s.Larger))
	}
	for _, e := range r.Failures() {
		warnings = append(warnings, fmt.Sprintf("%s: %s (%s)", e.Input, e.Failure.Message, e.Failure.Category))
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
