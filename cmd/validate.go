package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/hasher"
	"github.com/AnyUserName/imgconv-cli/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Check that the outputs listed in a report exist and are unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	r, err := readReport(args[0])
	if err != nil {
		return err
	}

	baseDir := r.OutputDir
	if baseDir == "" {
		baseDir = filepath.Dir(args[0])
	}
	errs := validateReport(r, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d outputs present and unchanged\n", r.Stats.Converted)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedReportVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	seen := map[string]bool{}
	converted, failed := 0, 0
	for i, e := range r.Entries {
		if e.Input == "" {
			errs = append(errs, fmt.Sprintf("entry[%d]: missing input", i))
		}
		if !e.OK() {
			failed++
			if e.Output != "" {
				errs = append(errs, fmt.Sprintf("entry[%d]: failed entry lists output %q", i, e.Output))
			}
			continue
		}
		converted++

		if e.Output == "" {
			errs = append(errs, fmt.Sprintf("entry[%d]: missing output", i))
			continue
		}
		if seen[e.Output] {
			errs = append(errs, fmt.Sprintf("entry[%d]: duplicate output %q", i, e.Output))
		}
		seen[e.Output] = true

		data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(e.Output)))
		if err != nil {
			errs = append(errs, fmt.Sprintf("entry[%d]: file not found: %s", i, e.Output))
			continue
		}
		if e.NewSize > 0 && int64(len(data)) != e.NewSize {
			errs = append(errs, fmt.Sprintf("entry[%d]: size mismatch: report=%d, disk=%d", i, e.NewSize, len(data)))
		}
		if e.Hash != "" {
			if err := hasher.Verify(hasher.Sum(data), e.Hash); err != nil {
				errs = append(errs, fmt.Sprintf("entry[%d]: %s: %v", i, e.Output, err))
			}
		}
	}

	if r.Stats.Converted != converted {
		errs = append(errs, fmt.Sprintf("stats.converted mismatch: %d != %d", r.Stats.Converted, converted))
	}
	if r.Stats.Failed != failed {
		errs = append(errs, fmt.Sprintf("stats.failed mismatch: %d != %d", r.Stats.Failed, failed))
	}
	return errs
}
