package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-benchtmpl/pkg/builtin"
	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/render"
	"github.com/goliatone/go-benchtmpl/pkg/render/jinja"
	"github.com/goliatone/go-benchtmpl/pkg/template"
	"github.com/goliatone/go-benchtmpl/pkg/validate"
)

const defaultRendererName = render.StrictEngineName

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects a template store. The built-in templates are used when
// omitted.
func WithStore(store *template.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithTemplatesFS loads every template file in fsys on construction. The
// files are added to a copy of the store, so an injected store is never
// modified. May be given more than once.
func WithTemplatesFS(fsys fs.FS, opts ...template.LoadOption) Option {
	return func(o *Orchestrator) {
		if fsys == nil {
			return
		}
		o.extraFS = append(o.extraFS, templateFS{fsys: fsys, opts: opts})
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDefaults registers a binder consulted after the request parameters,
// typically computed defaults.
func WithDefaults(b params.Binder) Option {
	return func(o *Orchestrator) {
		o.defaults = b
	}
}

// WithLogger attaches a logger, also handed to the default renderers.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency bounds GenerateAll. Zero or less means unbounded.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		o.concurrency = n
	}
}

type templateFS struct {
	fsys fs.FS
	opts []template.LoadOption
}

// Orchestrator coordinates template lookup, binding, rendering and optional
// validation. It is safe for concurrent use once constructed.
type Orchestrator struct {
	store           *template.Store
	extraFS         []templateFS
	registry        *render.Registry
	defaultRenderer string
	defaults        params.Binder
	logger          *zap.Logger
	concurrency     int
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Template is the store name, e.g. "kubernetes/fib.yaml".
	Template string

	// Params binds the template. Orchestrator defaults are consulted after it.
	Params params.Binder

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// Schema, when set, validates the rendered text.
	Schema *validate.Schema
}

// Output is the result of Generate.
type Output struct {
	Result render.Result
	// Documents holds the validated documents when a schema was requested.
	Documents []validate.Document
}

// Generate looks up the template, renders it and validates the text when the
// request names a schema. On schema violations the rendered Result and the
// documents that passed are returned alongside the error.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}
	if req.Template == "" {
		return Output{}, errors.New("orchestrator: template name is required")
	}

	tmpl, err := o.store.Get(req.Template)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	result, err := renderer.Render(tmpl, params.Chain(req.Params, o.defaults))
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render %q: %w", req.Template, err)
	}
	out := Output{Result: result}

	if req.Schema != nil {
		docs, err := validate.Validate(result.Text, *req.Schema)
		out.Documents = docs
		if err != nil {
			o.logger.Warn("rendered output failed validation",
				zap.String("template", req.Template),
				zap.String("schema", req.Schema.Name),
				zap.Error(err),
			)
			return out, fmt.Errorf("orchestrator: validate %q: %w", req.Template, err)
		}
	}

	o.logger.Info("generated",
		zap.String("template", req.Template),
		zap.String("renderer", renderer.Name()),
		zap.Int("documents", len(out.Documents)),
	)
	return out, nil
}

// GenerateAll runs Generate for every request in parallel and returns the
// outputs in request order. The first failure cancels requests that have not
// started.
func (o *Orchestrator) GenerateAll(ctx context.Context, reqs []Request) ([]Output, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}

	outputs := make([]Output, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, req := range reqs {
		g.Go(func() error {
			out, err := o.Generate(gctx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Template returns a stored template.
func (o *Orchestrator) Template(name string) (*template.Template, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.store.Get(name)
}

// Templates lists the stored template names.
func (o *Orchestrator) Templates() []string {
	if o.store == nil {
		return nil
	}
	return o.store.List()
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}

	// a misconfigured default falls back to the registry default
	if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
		return renderer, nil
	}
	renderer, err := o.registry.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.store == nil {
		store, err := builtin.Store()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: builtin templates: %w", err)
			return
		}
		o.store = store
	}
	if len(o.extraFS) > 0 {
		o.store = o.store.Clone()
	}
	for _, extra := range o.extraFS {
		if err := o.store.LoadFS(extra.fsys, extra.opts...); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load templates: %w", err)
			return
		}
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(
			render.New(render.WithLogger(o.logger)),
			jinja.New(jinja.WithLogger(o.logger)),
		)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
