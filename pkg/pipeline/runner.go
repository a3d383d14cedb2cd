package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spliceplot/pkg/cache"
	spio "github.com/matzehuels/spliceplot/pkg/io"
	"github.com/matzehuels/spliceplot/pkg/observability"
	"github.com/matzehuels/spliceplot/pkg/render"
	"github.com/matzehuels/spliceplot/pkg/render/figure"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads and validates the dataset file at path.
func (r *Runner) Load(ctx context.Context, path string) (*spio.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	ds, err := spio.ImportJSON(path)
	hooks.OnLoadComplete(ctx, path, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded dataset",
		"source", path,
		"genes", len(ds.Transcriptome.Genes),
		"transcripts", len(ds.Transcriptome.Transcripts))
	return ds, nil
}

// Read decodes and validates a dataset from rd. source names it in hooks.
func (r *Runner) Read(ctx context.Context, rd stdio.Reader, source string) (*spio.Dataset, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	ds, err := spio.ReadJSON(rd)
	hooks.OnLoadComplete(ctx, source, time.Since(start), err)
	return ds, err
}

// Execute runs the plot → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options, ds *spio.Dataset) (*Result, error) {
	if ds == nil {
		return nil, fmt.Errorf("invalid options: dataset is required")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := DatasetHash(ds)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}
	result := &Result{DatasetHash: hash}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, hash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			r.Logger.Info("artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Plot
	plotStart := time.Now()
	fig, err := r.PlotDataset(ctx, ds, opts, canvasID(hash))
	if err != nil {
		return nil, fmt.Errorf("plot: %w", err)
	}
	result.Figure = fig
	result.Stats.PlotTime = time.Since(plotStart)
	result.Stats.Panels = len(fig.Panels)
	result.Stats.Lanes = len(fig.Lanes)
	result.Stats.Skipped = len(fig.Skipped)

	r.Logger.Info("plotted figure",
		"panels", result.Stats.Panels,
		"lanes", result.Stats.Lanes,
		"duration", result.Stats.PlotTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, fig, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			r.Logger.Warn("cache set failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cachedArtifacts returns every requested format from the cache, or false
// if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Plot lays out ds without caching. The canvas id is derived from the
// dataset hash so repeated plots produce identical SVG.
func (r *Runner) Plot(ctx context.Context, ds *spio.Dataset, opts Options) (*figure.Figure, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hash, err := DatasetHash(ds)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}
	return r.PlotDataset(ctx, ds, opts, canvasID(hash))
}

// PlotDataset runs [figure.Plot] on ds with validated opts.
func (r *Runner) PlotDataset(ctx context.Context, ds *spio.Dataset, opts Options, id string) (*figure.Figure, error) {
	hooks := observability.Pipeline()
	hooks.OnPlotStart(ctx, opts.Width, opts.Height)
	start := time.Now()

	fig, err := figure.Plot(figureData(ds), opts.Width, opts.Height, opts.FigureOptions(id)...)

	var lanes, skipped int
	if fig != nil {
		lanes, skipped = len(fig.Lanes), len(fig.Skipped)
	}
	hooks.OnPlotComplete(ctx, lanes, skipped, time.Since(start), err)
	return fig, err
}

// Render serialises fig in every format of opts.
func (r *Runner) Render(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	formats := sortedFormats(opts.Formats)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	artifacts, err := renderFigure(ctx, fig, formats, opts.PNGScale)
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	return artifacts, err
}

func renderFigure(ctx context.Context, fig *figure.Figure, formats []string, pngScale float64) (map[string][]byte, error) {
	svg := fig.SVG()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, pngScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		case FormatJSON:
			data, err = json.MarshalIndent(fig, "", "  ")
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Store saves ds in the cache under its content hash and returns the hash.
func (r *Runner) Store(ctx context.Context, ds *spio.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := spio.WriteJSON(ds, &buf); err != nil {
		return "", err
	}
	hash := cache.Hash(buf.Bytes())
	if err := r.Cache.Set(ctx, r.Keyer.DatasetKey(hash), buf.Bytes(), cache.TTLDataset); err != nil {
		return "", err
	}
	observability.Cache().OnCacheSet(ctx, "dataset", buf.Len())
	return hash, nil
}

// Lookup returns the dataset stored under hash by [Runner.Store].
func (r *Runner) Lookup(ctx context.Context, hash string) (*spio.Dataset, bool, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.DatasetKey(hash))
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "dataset")
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, "dataset")
	ds, err := spio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}
	return ds, true, nil
}

// DatasetHash returns the content hash of the canonical JSON encoding of ds.
func DatasetHash(ds *spio.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := spio.WriteJSON(ds, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// canvasID derives a stable SVG id namespace from a dataset hash.
func canvasID(hash string) string {
	if len(hash) > 8 {
		hash = hash[:8]
	}
	return "sp" + hash
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
