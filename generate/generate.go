// Package generate runs derivation over Go files: it reads every annotated
// type in a file, derives its comparison and writes the result next to the
// source. Files are processed concurrently; each file is handled on its own.
package generate

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-derive/config"
	"github.com/amp-labs/amp-derive/derive"
	"github.com/amp-labs/amp-derive/errors"
	"github.com/amp-labs/amp-derive/gogen"
	"github.com/amp-labs/amp-derive/hashing"
	"github.com/amp-labs/amp-derive/logger"
	"github.com/amp-labs/amp-derive/set"
	"github.com/amp-labs/amp-derive/shape"
	"github.com/amp-labs/amp-derive/source"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

const outputPerm = 0o644

// Report summarizes one Run.
type Report struct {
	// Files is every source file considered, in natural order.
	Files []string
	// Written lists the outputs created or replaced (or that would be, on a
	// dry run).
	Written   []string
	Unchanged int
	// Skipped counts source files without any annotated type.
	Skipped int
	Failed  int
	Types   int
}

type Generator struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
}

type Option func(*Generator)

// WithRegistry registers the generator's counters with reg instead of a
// registry of its own. reg must not hold another generator's counters.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(g *Generator) {
		g.registry = reg
	}
}

// WithLogger routes the generator's logs to l instead of the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

func New(cfg config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg}

	for _, opt := range opts {
		opt(g)
	}

	if g.registry == nil {
		g.registry = prometheus.NewRegistry()
	}

	g.metrics = newMetrics(g.registry)

	return g, nil
}

type fileResult struct {
	output  string
	outcome string
	types   int
	err     error
}

type counters struct {
	metrics   *metrics
	unchanged *atomic.Int64
	skipped   *atomic.Int64
	failed    *atomic.Int64
	types     *atomic.Int64
}

// Run derives every annotated type found in paths. A path may name a file or
// a directory; directories are not walked recursively. Errors in individual
// files do not stop the others and are returned together.
func (g *Generator) Run(ctx context.Context, paths []string) (*Report, error) {
	if g.logger != nil {
		ctx = logger.WithLogger(ctx, g.logger)
	}

	ctx = logger.WithSubsystem(ctx, "generate")

	g.metrics.runsTotal.Inc()

	files, err := g.collect(paths)
	if err != nil {
		return nil, err
	}

	report := &Report{Files: files}
	if len(files) == 0 {
		logger.Get(ctx).Warn("no Go source files found", "paths", paths)

		return report, nil
	}

	stats := counters{
		metrics:   g.metrics,
		unchanged: atomic.NewInt64(0),
		skipped:   atomic.NewInt64(0),
		failed:    atomic.NewInt64(0),
		types:     atomic.NewInt64(0),
	}

	pool := pond.NewResultPool[fileResult](g.cfg.Workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for _, file := range files {
		group.Submit(func() fileResult {
			res := g.process(ctx, file)
			stats.record(res)

			return res
		})
	}

	results, err := group.Wait()
	if err != nil {
		return report, fmt.Errorf("generation interrupted: %w", err)
	}

	var errs errors.Collection

	for _, res := range results {
		errs.Add(res.err)

		if res.outcome == outcomeWritten || res.outcome == outcomeDryRun {
			report.Written = append(report.Written, res.output)
		}
	}

	report.Unchanged = int(stats.unchanged.Load())
	report.Skipped = int(stats.skipped.Load())
	report.Failed = int(stats.failed.Load())
	report.Types = int(stats.types.Load())

	logger.Get(ctx).Info("generation finished",
		"files", len(files),
		"written", len(report.Written),
		"unchanged", report.Unchanged,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"dryRun", g.cfg.DryRun)

	return report, errs.GetError()
}

func (c counters) record(res fileResult) {
	c.metrics.filesProcessed.WithLabelValues(res.outcome).Inc()
	c.metrics.typesDerived.Add(float64(res.types))
	c.types.Add(int64(res.types))

	switch res.outcome {
	case outcomeUnchanged:
		c.unchanged.Inc()
	case outcomeSkipped:
		c.skipped.Inc()
	case outcomeFailed:
		c.failed.Inc()
	}
}

// collect expands paths into source files, dropping tests and generated
// output, deduplicated and in natural order.
func (g *Generator) collect(paths []string) ([]string, error) {
	files := set.NewStringSet(hashing.XXH3)

	add := func(path string) error {
		if path = filepath.Clean(path); g.isSource(path) {
			return files.Add(path)
		}

		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := add(path); err != nil {
				return nil, err
			}

			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			if err := add(filepath.Join(path, entry.Name())); err != nil {
				return nil, err
			}
		}
	}

	return files.NaturalSortedEntries(), nil
}

func (g *Generator) isSource(path string) bool {
	return strings.HasSuffix(path, ".go") &&
		!strings.HasSuffix(path, "_test.go") &&
		!strings.HasSuffix(path, g.cfg.Suffix)
}

// OutputPath names the file generated for source.
func (g *Generator) OutputPath(source string) string {
	return strings.TrimSuffix(source, ".go") + g.cfg.Suffix
}

func (g *Generator) process(ctx context.Context, path string) fileResult {
	ctx = logger.With(ctx, "file", path)
	log := logger.Get(ctx)

	if err := ctx.Err(); err != nil {
		return fileResult{outcome: outcomeFailed, err: fmt.Errorf("%s: %w", path, err)}
	}

	out, types, err := g.derive(path)
	if err != nil {
		log.Error("derivation failed", "error", err)

		return fileResult{outcome: outcomeFailed, err: err}
	}

	if out == nil {
		log.Debug("no annotated types")

		return fileResult{outcome: outcomeSkipped}
	}

	output := g.OutputPath(path)
	res := fileResult{output: output, types: types}

	existing, err := os.ReadFile(output)

	switch {
	case err == nil:
		same, err := hashing.Same(hashing.XXH3, hashing.Bytes(existing), hashing.Bytes(out))
		if err != nil {
			res.outcome, res.err = outcomeFailed, fmt.Errorf("%s: %w", output, err)

			return res
		}

		if same {
			log.Debug("output unchanged", "output", output)

			res.outcome = outcomeUnchanged

			return res
		}
	case !stderrors.Is(err, fs.ErrNotExist):
		res.outcome, res.err = outcomeFailed, err

		return res
	}

	if g.cfg.DryRun {
		log.Info("would write output", "output", output, "types", types)

		res.outcome = outcomeDryRun

		return res
	}

	if err := os.WriteFile(output, out, outputPerm); err != nil {
		res.outcome, res.err = outcomeFailed, err

		return res
	}

	log.Info("wrote output", "output", output, "types", types)

	res.outcome = outcomeWritten

	return res
}

// derive renders the generated file for path. It returns nil output when the
// file has no annotated types.
func (g *Generator) derive(path string) ([]byte, int, error) {
	arena := shape.NewArena()

	file, err := source.ParseFile(arena, path, nil)
	if err != nil {
		return nil, 0, err
	}

	if len(file.Types) == 0 {
		return nil, 0, nil
	}

	impls := make([]*derive.Impl, 0, len(file.Types))

	for _, desc := range file.Types {
		trait := derive.OrdTrait(desc.Span)
		for i := range trait.Methods {
			trait.Methods[i].UnifyFieldless = g.cfg.UnifyFieldless
		}

		impl, err := derive.Expand(trait, desc)
		if err != nil {
			return nil, 0, err
		}

		impls = append(impls, impl)
	}

	out, err := gogen.Render(gogen.Options{
		Package:       file.Package,
		Source:        filepath.Base(path),
		CompareImport: g.cfg.ComparePackage,
	}, impls)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	return out, len(impls), nil
}
