package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
)

var explainCmd = &cobra.Command{
	Use:   "explain <error text>...",
	Short: "Classify an error message the way failed conversions are reported",
	Example: `  imgconv explain "ffmpeg binary not found"
  imgconv explain out of memory`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(_ *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	d := classify.Classify(text)
	rule := classify.Match(text)

	rec := color.GreenString("yes")
	if !d.Recoverable {
		rec = color.RedString("no")
	}
	fmt.Printf("  Category:    %s\n", color.New(color.Bold).Sprint(d.Category))
	fmt.Printf("  Message:     %s\n", d.Message)
	fmt.Printf("  Recoverable: %s\n", rec)
	if rule >= 0 {
		fmt.Printf("  Rule:        #%d of %d\n", rule+1, len(classify.Rules()))
	} else {
		fmt.Printf("  Rule:        none (fallback)\n")
	}
	if len(d.Suggestions) > 0 {
		fmt.Println("  Suggestions:")
		for _, s := range d.Suggestions {
			fmt.Printf("    • %s\n", s)
		}
	}
	return nil
}
