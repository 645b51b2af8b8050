package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnyUserName/imgconv-cli/internal/converter"
	"github.com/AnyUserName/imgconv-cli/internal/formats"
)

var (
	formatsRead       bool
	formatsWrite      bool
	formatsImages     bool
	formatsInputs     bool
	formatsPopular    bool
	formatsCategorize bool
	formatsStats      bool
	formatsOutput     string
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List known formats and their capabilities",
	Long: `Lists the format registry. By default every format is shown; the flags
narrow the list. --images shows the formats offered as conversion targets,
--inputs the formats accepted as sources.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

var formatsInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show one format and how each engine resolves it",
	Args:  cobra.ExactArgs(1),
	RunE:  runFormatsInfo,
}

func init() {
	f := formatsCmd.PersistentFlags()
	f.StringVarP(&formatsOutput, "output", "o", "table", "output: table, json or yaml")
	fl := formatsCmd.Flags()
	fl.BoolVar(&formatsRead, "read", false, "only readable formats")
	fl.BoolVar(&formatsWrite, "write", false, "only writable formats")
	fl.BoolVar(&formatsImages, "images", false, "only image formats offered as outputs")
	fl.BoolVar(&formatsInputs, "inputs", false, "only image formats accepted as inputs")
	fl.BoolVar(&formatsPopular, "popular", false, "only popular formats")
	fl.BoolVar(&formatsCategorize, "categorize", false, "group by category")
	fl.BoolVar(&formatsStats, "stats", false, "registry summary")
	formatsCmd.AddCommand(formatsInfoCmd)
	rootCmd.AddCommand(formatsCmd)
}

func selectFormats() []formats.Descriptor {
	var list []formats.Descriptor
	switch {
	case formatsPopular:
		list = formats.Popular()
	case formatsImages:
		list = formats.ImageOutputs()
	case formatsInputs:
		list = formats.ImageInputs()
	default:
		var f formats.Filter
		if formatsRead {
			f.Read = &formatsRead
		}
		if formatsWrite {
			f.Write = &formatsWrite
		}
		return formats.List(f)
	}

	// The named subsets still honor --read and --write.
	out := list[:0:0]
	for _, d := range list {
		if (formatsRead && !d.Read) || (formatsWrite && !d.Write) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func runFormats(_ *cobra.Command, _ []string) error {
	w := os.Stdout
	if formatsStats {
		s := formats.ComputeStats()
		if formatsOutput != "table" {
			return encode(w, s)
		}
		fmt.Fprintf(w, "  Total:         %d\n", s.Total)
		fmt.Fprintf(w, "  Readable:      %d\n", s.Readable)
		fmt.Fprintf(w, "  Writable:      %d\n", s.Writable)
		fmt.Fprintf(w, "  Image inputs:  %d\n", s.ImageInputs)
		fmt.Fprintf(w, "  Image outputs: %d\n", s.ImageOutputs)
		warnList(w, "listed but missing from the table", s.MissingFromTable)
		warnList(w, "writable but not offered", s.WritableNotOffered)
		warnList(w, "offered but read-only", s.ReadOnlyOffered)
		return nil
	}

	list := selectFormats()
	if formatsCategorize {
		groups := formats.Categorize(list)
		if formatsOutput != "table" {
			return encode(w, groups)
		}
		head := color.New(color.Bold).SprintFunc()
		for _, g := range groups {
			fmt.Fprintf(w, "%s (%d)\n", head(g.Category), len(g.Formats))
			printFormatTable(w, g.Formats)
			fmt.Fprintln(w)
		}
		return nil
	}

	if formatsOutput != "table" {
		return encode(w, list)
	}
	printFormatTable(w, list)
	return nil
}

func printFormatTable(w io.Writer, list []formats.Descriptor) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  FORMAT\tREAD\tWRITE\tDESCRIPTION")
	for _, d := range list {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", d.ID, mark(d.Read), mark(d.Write), d.Description)
	}
	tw.Flush()
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func warnList(w io.Writer, what string, names []string) {
	if len(names) == 0 {
		return
	}
	warn := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(w, "  %s %d %s: %s\n", warn("⚠"), len(names), what, strings.Join(names, ", "))
}

// formatInfo is the formats info payload.
type formatInfo struct {
	Format      formats.Descriptor     `json:"format" yaml:"format"`
	Category    string                 `json:"category" yaml:"category"`
	ImageInput  bool                   `json:"image_input" yaml:"image_input"`
	ImageOutput bool                   `json:"image_output" yaml:"image_output"`
	Engines     []converter.Resolution `json:"engines" yaml:"engines"`
}

func runFormatsInfo(_ *cobra.Command, args []string) error {
	name := args[0]
	d, ok := formats.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown format %q", name)
	}

	engines, err := newEngines()
	if err != nil {
		return err
	}
	conv, err := converter.New(converter.Config{Engines: engines, Logger: logger})
	if err != nil {
		return err
	}
	defer closeConverter(conv)

	info := formatInfo{
		Format:      d,
		Category:    formats.CategoryOf(d.ID),
		ImageInput:  formats.IsImageInput(d.ID),
		ImageOutput: formats.IsImageOutput(d.ID),
		Engines:     conv.Resolve(name),
	}
	if formatsOutput != "table" {
		return encode(os.Stdout, info)
	}

	fmt.Printf("  %s  %s\n", color.New(color.Bold).Sprint(d.ID), d.Description)
	fmt.Printf("  Category: %s\n", info.Category)
	fmt.Printf("  Read:     %s   Write: %s\n", mark(d.Read), mark(d.Write))
	fmt.Printf("  Offered:  input=%s output=%s\n", mark(info.ImageInput), mark(info.ImageOutput))
	for _, r := range info.Engines {
		tok := "unavailable"
		if r.Available {
			tok = string(r.Token)
		}
		fmt.Printf("  %-8s  %s\n", r.Engine, tok)
	}
	return nil
}

// encode writes v as JSON or YAML according to --output.
func encode(w io.Writer, v any) error {
	switch formatsOutput {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown output %q: use table, json or yaml", formatsOutput)
}
