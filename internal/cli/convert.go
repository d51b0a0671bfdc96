package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/efharkin/swc2dot/pkg/pipeline"
	"github.com/efharkin/swc2dot/pkg/swcio"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output string // output file path ("-" or empty for derived path)
	config string // style-override TOML path
	format string // output format: dot, svg, png
}

// newConvertCmd creates the convert command.
//
// Default settings:
//   - format: dot
//   - output: input path with the format's extension
//   - styles: built-in defaults, overridable with --config
func newConvertCmd() *cobra.Command {
	opts := convertOpts{format: pipeline.FormatDOT}

	cmd := &cobra.Command{
		Use:   "convert <input.swc>",
		Short: "Convert an SWC morphology file to a DOT graph description",
		Long: `Convert an SWC morphology file to a DOT graph description.

Each compartment becomes a graph node, grouped into one styling block per
compartment type (soma, axon, dendrite, apical dendrite, undefined, custom).
Styling can be customized with a TOML config file; see --config.

Examples:
  swc2dot convert neuron.swc                      # writes neuron.dot
  swc2dot convert -o out.dot neuron.swc
  swc2dot convert -f svg neuron.swc               # rasterize via Graphviz
  swc2dot convert -c styles.toml neuron.swc       # override node styling
  swc2dot convert -o - neuron.swc > neuron.dot    # write to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return runConvert(c.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (\"-\" for stdout; default: input path with format extension)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML file with per-type style overrides")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")

	return cmd
}

// runConvert executes the conversion pipeline on the input file and writes
// the resulting artifact.
func runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	reg, err := loadStyleConfig(opts.config)
	if err != nil {
		return err
	}
	if opts.config != "" {
		logger.Debugf("Applied style overrides from %s", opts.config)
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", filepath.Base(input)))
	spin.Start()

	result, err := pipeline.Run(ctx, f, pipeline.Options{
		Format: opts.format,
		Styles: reg,
		Logger: logger,
	})
	if err != nil {
		spin.StopWithError("Conversion failed")
		return err
	}
	spin.Stop()

	path, err := writeArtifact(result.Artifact, input, opts)
	if err != nil {
		return err
	}

	printSuccess("Converted %s", filepath.Base(input))
	printStats(result.Stats.Compartments, result.Stats.Roots)
	if path != "" {
		printFile(path)
	}
	return nil
}

// writeArtifact writes data to the output destination and returns the path
// written, or "" when writing to stdout. An empty output flag derives the
// path from the input file name and format.
func writeArtifact(data []byte, input string, opts *convertOpts) (string, error) {
	if opts.output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("write stdout: %w", err)
		}
		return "", nil
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := swcio.ExportFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
