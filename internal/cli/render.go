package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padviz/pkg/errors"
	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/pipeline"
	"github.com/matzehuels/padviz/pkg/render/outline"
)

// Visualization types.
const (
	vizPad     = "pad"     // nested-box problem analysis diagram
	vizOutline = "outline" // node-link outline via Graphviz
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	vizType string   // visualization type: pad or outline
	formats []string // output formats: svg, png, pdf, json, dot
	style   string   // visual style: simple or sketch
	scale   float64  // raster scale factor for PNG output
	refresh bool     // bypass cached artifacts
	noCache bool     // disable caching entirely
}

// renderCommand creates the render command for generating diagram artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale: pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [flow.json]",
		Short: "Render a control-flow tree to diagram artifacts",
		Long: `Render a control-flow tree to diagram artifacts.

The render command takes a flow.json file (or "-" for stdin) holding a
control-flow tree, computes the diagram geometry, and writes one file
per requested format. Layouts and artifacts are cached locally for
faster subsequent runs.

With --type outline the tree is rendered as a compact node-link outline
through Graphviz instead of a nested-box diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", vizPad, "visualization type: pad (default), outline")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), sketch")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender executes the full pipeline and writes every requested artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	if opts.vizType == vizOutline {
		return c.runRenderOutline(ctx, data, input, opts)
	}
	if opts.vizType != vizPad {
		return fmt.Errorf("unknown visualization type: %s", opts.vizType)
	}

	pipeOpts := pipeline.Options{
		Formats: opts.formats,
		Style:   opts.style,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, data, pipeOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(opts.output, input)
	for _, format := range pipeOpts.Formats {
		path := opts.output
		if path == "" || len(pipeOpts.Formats) > 1 {
			path = base + "." + format
		}
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))
	printSuccess("Render complete")
	printStats(result.Stats.NodeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// runRenderOutline generates node-link outlines using Graphviz. JSON has
// no outline form and is rejected; caching does not apply.
func (c *CLI) runRenderOutline(ctx context.Context, data []byte, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	tree, err := flow.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}
	dot := outline.ToDOT(tree, outline.Options{})

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		var artifact []byte
		switch format {
		case pipeline.FormatSVG:
			logger.Info("Rendering outline SVG")
			artifact, err = outline.RenderSVG(dot)
		case pipeline.FormatPNG:
			logger.Info("Rendering outline PNG")
			artifact, err = outline.RenderPNG(dot, opts.scale)
		case pipeline.FormatPDF:
			logger.Info("Rendering outline PDF")
			artifact, err = outline.RenderPDF(dot)
		case pipeline.FormatDOT:
			artifact = []byte(dot)
		default:
			return fmt.Errorf("unknown outline format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("outline/%s: %w", format, err)
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeArtifact(path, artifact); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Outline complete")
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (stdin becomes "flow").
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "flow"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if errors.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
