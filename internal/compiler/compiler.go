package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/lhaig/tagc/internal/backend"
	"github.com/lhaig/tagc/internal/codegen"
	"github.com/lhaig/tagc/internal/diagnostic"
	"github.com/lhaig/tagc/internal/ir"
	"github.com/lhaig/tagc/internal/linter"
	"github.com/lhaig/tagc/internal/observability"
	"github.com/lhaig/tagc/internal/source"
)

// ErrFormat is returned when generated source does not parse as Go.
var ErrFormat = errors.New("generated source does not format")

// Options configure a compilation.
type Options struct {
	Backend backend.Backend
	// OutDir receives the generated files; empty means next to each
	// document.
	OutDir string
	Suffix string
	// Format runs the output through goimports in format-only mode.
	Format  bool
	Workers int
	Logger  *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Backend == nil {
		o.Backend = backend.ForMode(false, backend.Options{})
	}
	if o.Suffix == "" {
		o.Suffix = DefaultSuffix
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Result holds the output of compiling one document. Source is empty when
// the document could not be generated.
type Result struct {
	Path         string
	OutPath      string
	Source       []byte
	Diagnostics  *diagnostic.Diagnostics
	LineMappings []codegen.LineMapping
}

// HasErrors reports whether the document failed validation or generation.
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Compile runs the full pipeline on one IR document:
// load -> validate -> lint -> generate -> format.
// Contract violations and generator diagnostics are reported in the
// result; the error is reserved for documents that cannot be read or
// output that is not Go.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	ctx, span := observability.Tracer().Start(ctx, "compile")
	span.SetAttributes(attribute.String("tagc.document", path), attribute.String("tagc.backend", opts.Backend.Name()))
	defer span.End()

	res, err := compile(ctx, path, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("tagc.diagnostics", res.Diagnostics.Count()))
	return res, nil
}

func compile(ctx context.Context, path string, opts Options) (*Result, error) {
	log := opts.Logger.With("document", path)

	doc, err := ir.LoadFile(path)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:        path,
		OutPath:     OutputPath(path, opts.OutDir, opts.Suffix),
		Diagnostics: Check(doc),
	}
	if res.HasErrors() {
		log.DebugContext(ctx, "document rejected", "errors", res.Diagnostics.ErrorCount())
		return res, nil
	}

	gen := opts.Backend.Generate(doc, filepath.Base(res.OutPath))
	res.Diagnostics.Merge(gen.Diagnostics)
	res.LineMappings = gen.LineMappings
	res.Source = []byte(gen.Source)

	if opts.Format {
		formatted, err := imports.Process(res.OutPath, res.Source, &imports.Options{
			FormatOnly: true,
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
		}
		res.Source = formatted
	}

	log.DebugContext(ctx, "document generated",
		"bytes", len(res.Source),
		"diagnostics", res.Diagnostics.Count(),
		"mappings", len(res.LineMappings))
	return res, nil
}

// Check validates and lints doc without generating it. Contract
// violations become errors, lint findings warnings.
func Check(doc *ir.Node) *diagnostic.Diagnostics {
	diag := diagnostic.New()
	for _, problem := range ir.Validate(doc) {
		diag.Errorf(source.Undefined, "%s", problem)
	}
	if diag.HasErrors() {
		return diag
	}
	diag.Merge(linter.Lint(doc))
	return diag
}

// CompileAll compiles every document with up to opts.Workers documents in
// flight. Each document gets its own generation pass. Results are in the
// order of paths; the first error cancels the documents not yet started.
func CompileAll(ctx context.Context, paths []string, opts Options) ([]*Result, error) {
	opts = opts.withDefaults()
	ctx, span := observability.Tracer().Start(ctx, "compile_all")
	span.SetAttributes(attribute.Int("tagc.documents", len(paths)))
	defer span.End()

	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.HasErrors() {
			failed++
		}
	}
	opts.Logger.InfoContext(ctx, "compiled documents",
		"documents", len(paths), "failed", failed, "backend", opts.Backend.Name(), "workers", opts.Workers)
	return results, nil
}
