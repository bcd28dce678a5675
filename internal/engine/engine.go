package engine

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"utilgen/internal/diagnostic"
	"utilgen/internal/selector"
	"utilgen/internal/typesys"
)

// Request is one declaration to evaluate.
type Request struct {
	// Name is the declared type name.
	Name string
	// Selector is the raw selector text.
	Selector string
	// Access is stamped on the result, never computed.
	Access typesys.Accessibility
	// Namespaces are the candidate prefixes for unqualified type names.
	Namespaces []string
	// Category is passed through to the emitter.
	Category typesys.Category

	// Package is the import path of the package the declaration belongs to,
	// PkgName its name and Dir its directory. Output goes to Dir.
	Package string
	PkgName string
	Dir     string
	// Pos locates the declaration in source, if it came from source.
	Pos token.Position
}

// Result is the outcome of one Request. Exactly one of Fields (possibly
// empty) and Diagnostic is meaningful: Diagnostic is nil on success.
type Result struct {
	Request    Request
	Node       selector.Node
	Fields     []typesys.Field
	Diagnostic *diagnostic.Diagnostic
}

// OK reports whether the request evaluated successfully.
func (r Result) OK() bool {
	return r.Diagnostic == nil
}

// Evaluate parses, builds and evaluates one request. Panics are recovered
// into internal failures.
func Evaluate(table typesys.SymbolTable, req Request) (res Result) {
	res.Request = req

	defer func() {
		if rec := recover(); rec != nil {
			d := diagnostic.New(diagnostic.KindInternalFailure, fmt.Sprintf("internal failure (panic): %v", rec))
			res.fail(d)
			res.Node = nil
			res.Fields = nil
		}
	}()

	n, err := selector.Compile(table, req.Selector, selector.Scope{
		Access:     req.Access,
		Namespaces: req.Namespaces,
	})
	if err != nil {
		res.fail(diagnostic.Classify(err))
		return res
	}

	fields, err := selector.Evaluate(table, n)
	if err != nil {
		res.fail(diagnostic.Classify(err))
		return res
	}

	res.Node = n
	res.Fields = fields

	return res
}

func (r *Result) fail(d diagnostic.Diagnostic) {
	d = d.At(r.Request.Pos).For(r.Request.Name, r.Request.Selector)
	r.Diagnostic = &d
}

// Options configures Run.
type Options struct {
	// Concurrency caps the number of requests evaluated at once.
	// Zero or less means unlimited.
	Concurrency int
	// Logger receives one debug record per request. Defaults to slog.Default().
	Logger *slog.Logger
}

// Run evaluates reqs and returns one result per request, in input order.
//
// Cancelling ctx stops scheduling: requests already started finish, the
// rest come back as internal failures and Run returns ctx.Err().
func Run(ctx context.Context, table typesys.SymbolTable, reqs []Request, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, len(reqs))
	scheduled := make([]bool, len(reqs))

	g := new(errgroup.Group)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	for i, req := range reqs {
		if ctx.Err() != nil {
			break
		}

		scheduled[i] = true

		g.Go(func() error {
			start := time.Now()
			results[i] = Evaluate(table, req)

			logResult(logger, results[i], time.Since(start))

			return nil
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	err := ctx.Err()
	if err == nil {
		return results, nil
	}

	for i, req := range reqs {
		if scheduled[i] {
			continue
		}

		results[i] = Result{Request: req}
		results[i].fail(diagnostic.New(diagnostic.KindInternalFailure, fmt.Sprintf("evaluation cancelled: %v", err)))
	}

	return results, err
}

func logResult(logger *slog.Logger, res Result, elapsed time.Duration) {
	req := res.Request
	if res.OK() {
		logger.Debug("evaluated declaration",
			slog.String("name", req.Name),
			slog.String("selector", req.Selector),
			slog.Int("fields", len(res.Fields)),
			slog.Duration("duration", elapsed))

		return
	}

	if res.Diagnostic.Kind == diagnostic.KindInternalFailure {
		logger.Error("declaration failed",
			slog.String("name", req.Name),
			slog.String("selector", req.Selector),
			slog.String("error", res.Diagnostic.Message))

		return
	}

	logger.Debug("declaration failed",
		slog.String("name", req.Name),
		slog.String("selector", req.Selector),
		slog.String("code", res.Diagnostic.Code),
		slog.String("error", res.Diagnostic.Message))
}
