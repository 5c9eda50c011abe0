package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padviz/pkg/cache"
	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [flow.json]",
		Short: "Compute diagram geometry from a control-flow tree",
		Long: `Compute diagram geometry from a control-flow tree.

The layout command takes a flow.json file (or "-" for stdin) and computes
pixel positions and sizes for every node. The output is a geometry JSON
file (same format as 'render -f json') that carries stable node identities
for downstream tooling.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, or stdout for stdin input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout decodes the tree, computes the geometry, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	tree, err := runner.Decode(ctx, data)
	if err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	opts := pipeline.Options{Logger: c.Logger}
	opts.SetDefaults()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	geometry, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, tree, cache.Hash(data), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := pipeline.MarshalGeometry(geometry)
	if err != nil {
		return err
	}

	if input == "-" && output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := writeArtifact(outputPath, out); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(flow.Count(tree), cacheHit)
	printNewline()
	printNextStep("Render", "padviz render "+input)

	return nil
}
