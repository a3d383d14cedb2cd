package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spliceplot/pkg/config"
	"github.com/matzehuels/spliceplot/pkg/observability"
	"github.com/matzehuels/spliceplot/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output        string  // output file (single format) or base path (multiple)
	formats       string  // comma-separated output formats
	width         float64 // canvas width in pixels
	height        float64 // canvas height in pixels
	fontSize      float64 // base font size
	laneWidth     float64 // nominal detail lane width
	zoomRadius    int     // positions shown either side of a site
	acceptorLanes bool    // draw acceptor lanes and connectors
	pngScale      float64 // rsvg-convert zoom for PNG
	noCache       bool
	refresh       bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	defaults := config.Default()
	f := renderFlags{
		width:         defaults.Width,
		height:        defaults.Height,
		fontSize:      defaults.FontSize,
		laneWidth:     defaults.LaneWidth,
		zoomRadius:    defaults.ZoomRadius,
		acceptorLanes: defaults.AcceptorLanes,
		pngScale:      pipeline.DefaultPNGScale,
	}

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Render a splice figure to SVG, PNG, PDF or JSON",
		Long: `Render a splice figure from a dataset file.

The dataset holds the transcriptome (genes, ORFs, transcripts and optional
explicit donor/acceptor sites) and the donor and acceptor read tracks.

Flags override values from the config file. Rendered artifacts are cached by
dataset content and options; use --refresh to re-render or --no-cache to
bypass the cache entirely.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataset,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := f.apply(cmd, cfg)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&f.width, "width", f.width, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", f.height, "canvas height")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", f.fontSize, "base font size")
	cmd.Flags().Float64Var(&f.laneWidth, "lane-width", f.laneWidth, "nominal detail lane width")
	cmd.Flags().IntVar(&f.zoomRadius, "zoom-radius", f.zoomRadius, "positions shown either side of each site")
	cmd.Flags().BoolVar(&f.acceptorLanes, "acceptor-lanes", f.acceptorLanes, "draw acceptor lanes and connectors")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", f.pngScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// apply overlays the flags the user set on the config's options.
func (f renderFlags) apply(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	set := cmd.Flags().Changed
	if set("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("font-size") {
		opts.FontSize = f.fontSize
	}
	if set("lane-width") {
		opts.LaneWidth = f.laneWidth
	}
	if set("zoom-radius") {
		opts.ZoomRadius = f.zoomRadius
	}
	if set("acceptor-lanes") {
		on := f.acceptorLanes
		opts.AcceptorLanes = &on
	}
	if set("png-scale") {
		opts.PNGScale = f.pngScale
	}
	opts.Refresh = f.refresh
	return opts
}

// runRender loads the dataset, renders every format and writes the files.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config, opts pipeline.Options, f renderFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	prog.step("Loaded dataset", "path", input)
	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Checking cache...")
	prev := observability.Pipeline()
	observability.SetPipelineHooks(spinnerHooks{PipelineHooks: prev, spinner: spinner})
	defer observability.SetPipelineHooks(prev)

	spinner.Start()
	result, err := runner.Execute(ctx, opts, ds)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	formats := slices.Sorted(slices.Values(opts.Formats))
	formats = slices.Compact(formats)
	var written []string
	for _, format := range formats {
		path := outputPath(f.output, input, format, len(formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done("Rendered figure", "artifacts", len(written), "cached", result.CacheInfo.RenderHit)

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.Panels, result.Stats.Lanes, result.Stats.Skipped, result.CacheInfo.RenderHit)
	if fig := result.Figure; fig != nil {
		for _, kind := range fig.Shrunk {
			printWarning("%s lanes narrowed to fit the canvas", kind)
		}
	}
	printNextStep("Inspect the layout", appName+" layout -i "+input)
	return nil
}

// outputPath derives the file for one format. With a single format an
// explicit output is used verbatim; otherwise the format extension is
// appended to the base path. JSON summaries get a ".figure.json" suffix so
// they never overwrite the dataset.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	ext := format
	if format == pipeline.FormatJSON {
		ext = "figure.json"
	}
	return basePath(output, input) + "." + ext
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
