package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dashforge/dashforge/pkg/cache"
	"github.com/dashforge/dashforge/pkg/compile"
	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
	"github.com/dashforge/dashforge/pkg/io"
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

// Execute runs the complete load → compile → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	tree, canonical, err := r.load(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.TreeHash = cache.Hash(canonical)

	defaultsLayer, err := opts.ResolveDefaults()
	if err != nil {
		return nil, err
	}
	defaultsHash := hashDefaults(defaultsLayer)

	cacheKey := r.Keyer.DashboardKey(result.TreeHash, opts.DashboardKeyOpts(defaultsHash))

	// Try cache first (unless refresh requested). Transient backend
	// faults are retried; a cache that stays down degrades to a miss.
	if !opts.Refresh {
		var data []byte
		var hit bool
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			data, hit, err = r.Cache.Get(ctx, cacheKey)
			return err
		})
		if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		} else if hit {
			result.Encoded = data
			result.Stats.Bytes = len(data)
			result.CacheInfo.DocumentHit = true
			opts.Logger.Debug("document served from cache", "key", cacheKey)
			return result, nil
		}
	}

	// Stage 2: Compile
	compileStart := time.Now()
	doc, err := compile.Compile(tree, compile.Options{
		ExternalDefaults: defaultsLayer,
		UID:              opts.UID,
	})
	if err != nil {
		return nil, err
	}
	result.Dashboard = doc
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.PanelCount = len(doc.Panels)

	opts.Logger.Info("compiled dashboard",
		"uid", doc.UID,
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.CompileTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	encoded, err := doc.Marshal(opts.Pretty)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	result.Encoded = encoded
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.Stats.Bytes = len(encoded)

	// A failed store never fails the build; the document is already in hand.
	if err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, cacheKey, encoded, cache.DashboardTTL)
	}); err != nil {
		opts.Logger.Warn("cache store failed", "key", cacheKey, "err", err)
	}

	return result, nil
}

// Load reads and decodes the input tree without compiling it.
func (r *Runner) Load(ctx context.Context, opts Options) (*dashboard.Node, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	tree, _, err := r.load(opts)
	return tree, err
}

// CompileTree compiles a pre-built tree with the options' defaults layer,
// bypassing load and cache.
func (r *Runner) CompileTree(tree *dashboard.Node, opts Options) (*dashboard.Dashboard, error) {
	defaultsLayer, err := opts.ResolveDefaults()
	if err != nil {
		return nil, err
	}
	return compile.Compile(tree, compile.Options{
		ExternalDefaults: defaultsLayer,
		UID:              opts.UID,
	})
}

// load resolves the configured input source into a tree plus the
// canonical bytes that identify it in cache keys.
func (r *Runner) load(opts Options) (*dashboard.Node, []byte, error) {
	switch {
	case opts.Tree != nil:
		canonical, err := io.MarshalTree(opts.Tree)
		if err != nil {
			return nil, nil, err
		}
		return opts.Tree, canonical, nil
	case len(opts.Source) > 0:
		tree, err := io.ReadTree(bytes.NewReader(opts.Source))
		if err != nil {
			return nil, nil, err
		}
		canonical, err := io.MarshalTree(tree)
		if err != nil {
			return nil, nil, err
		}
		return tree, canonical, nil
	default:
		tree, err := io.ImportTree(opts.Input)
		if err != nil {
			return nil, nil, err
		}
		canonical, err := io.MarshalTree(tree)
		if err != nil {
			return nil, nil, err
		}
		return tree, canonical, nil
	}
}

// hashDefaults folds the external defaults layer into the cache key.
// Map iteration order does not matter: encoding/json sorts object keys.
func hashDefaults(defaults map[string]any) string {
	if len(defaults) == 0 {
		return ""
	}
	data, _ := json.Marshal(defaults)
	return cache.Hash(data)
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
