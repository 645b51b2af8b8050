package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/imgconv-cli/internal/classify"
	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/engine"
	"github.com/AnyUserName/imgconv-cli/internal/engine/ffmpeg"
)

var enginesInit bool

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Show the configured engines and what they write",
	Long: `Lists the engines in preference order with their status and native
output formats. Engines start lazily, so they show as uninitialized unless
--init is given.`,
	Args: cobra.NoArgs,
	RunE: runEngines,
}

var enginesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Locate or download the ffmpeg runtime ahead of time",
	Args:  cobra.NoArgs,
	RunE:  runEnginesFetch,
}

func init() {
	enginesCmd.Flags().BoolVar(&enginesInit, "init", false, "initialize every engine first")
	enginesCmd.AddCommand(enginesFetchCmd)
	rootCmd.AddCommand(enginesCmd)
}

func runEngines(cmd *cobra.Command, _ []string) error {
	conv, err := newConverter()
	if err != nil {
		return err
	}
	defer closeConverter(conv)

	initErrs := map[engine.ID]error{}
	if enginesInit {
		for _, info := range conv.Engines() {
			e, _ := conv.Engine(info.ID)
			if err := e.Init(cmd.Context()); err != nil {
				initErrs[info.ID] = err
			}
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	for i, info := range conv.Engines() {
		fmt.Printf("  %d. %s  %s\n", i+1, bold(info.ID), statusColor(info.Status))
		if err, ok := initErrs[info.ID]; ok {
			d := classify.Classify(err)
			fmt.Printf("     %s\n", d.Message)
			logger.Debug().Err(err).Str("engine", string(info.ID)).Msg("init failed")
		}
		if len(info.Outputs) > 0 {
			fmt.Printf("     writes: %s\n", joinTokens(info.Outputs, 12))
		}
	}
	return nil
}

func runEnginesFetch(cmd *cobra.Command, _ []string) error {
	engines, err := newEngines()
	if err != nil {
		return err
	}
	var fe *ffmpeg.Engine
	for _, e := range engines {
		if f, ok := e.(*ffmpeg.Engine); ok {
			fe = f
		}
	}
	conv, err := converter.New(converter.Config{Engines: engines, Logger: logger})
	if err != nil {
		return err
	}
	defer closeConverter(conv)
	if fe == nil {
		return fmt.Errorf("the ffmpeg engine is not in engine.order")
	}

	rt, err := fe.Runtime(cmd.Context())
	if err != nil {
		d := classify.Classify(err)
		fmt.Fprintf(os.Stderr, "  %s %s\n", color.RedString("✗"), d.Message)
		for _, s := range d.Suggestions {
			fmt.Fprintf(os.Stderr, "      • %s\n", s)
		}
		return err
	}
	fmt.Printf("  %s ffmpeg %s (%s)\n", color.GreenString("✓"), rt.Version, rt.Source)
	fmt.Printf("    %s\n", rt.Path)
	return nil
}

func statusColor(s string) string {
	switch s {
	case engine.Ready.String():
		return color.GreenString(s)
	case engine.Failed.String():
		return color.RedString(s)
	}
	return color.New(color.Faint).Sprint(s)
}

func joinTokens(toks []engine.Token, max int) string {
	parts := make([]string, 0, max+1)
	for i, t := range toks {
		if i == max {
			parts = append(parts, fmt.Sprintf("... (+%d)", len(toks)-max))
			break
		}
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
