package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/padviz/pkg/cache"
	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/layout"
	"github.com/matzehuels/padviz/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete decode → layout → render pipeline with caching.
// input is the control-flow tree's wire JSON.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	tree, err := r.Decode(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Tree = tree
	result.TreeHash = cache.Hash(input)
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.NodeCount = flow.Count(tree)

	r.Logger.Info("decoded control-flow tree",
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	geometry, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, tree, result.TreeHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Geometry = geometry
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"width", geometry.Width,
		"height", geometry.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, geometry, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode parses a control-flow tree from wire JSON.
func (r *Runner) Decode(ctx context.Context, input []byte) (*flow.Node, error) {
	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, len(input))

	tree, err := flow.Unmarshal(input)
	observability.Pipeline().OnDecodeComplete(ctx, flow.Count(tree), time.Since(start), err)
	return tree, err
}

// ComputeLayoutWithCacheInfo computes geometry with caching and returns
// cache hit info. treeHash keys the cache; pass "" to skip caching.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, tree *flow.Node, treeHash string, opts Options) (*layout.Node, bool, error) {
	opts.SetDefaults()
	r.applyLogger(&opts)

	// Custom measurers have no stable identity; skip the cache.
	cacheable := treeHash != "" && opts.MeasurerKey() != ""

	var cacheKey string
	if cacheable {
		cacheKey = r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				var cached layout.Node
				if err := json.Unmarshal(data, &cached); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return &cached, true, nil
				}
				// Corrupt entry, fall through to recompute.
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, flow.Count(tree))

	geometry := layout.New(opts.Measurer).Compute(tree)
	observability.Pipeline().OnLayoutComplete(ctx, flow.Count(tree), time.Since(start), nil)

	if cacheable {
		if data, err := json.Marshal(geometry); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultLayoutTTL)
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return geometry, false, nil
}

// ComputeLayout is a convenience wrapper that computes geometry without
// cache bookkeeping.
func (r *Runner) ComputeLayout(ctx context.Context, tree *flow.Node, opts Options) (*layout.Node, error) {
	g, _, err := r.ComputeLayoutWithCacheInfo(ctx, tree, "", opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, geometry *layout.Node, tree *flow.Node, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from geometry data
	layoutData, err := json.Marshal(geometry)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	rendered, err := Render(geometry, tree, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultArtifactTTL)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, geometry *layout.Node, tree *flow.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, geometry, tree, opts)
	return artifacts, err
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
