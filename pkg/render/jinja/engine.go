package jinja

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/render"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// EngineName is the registry name of the pongo2 engine.
const EngineName = "pongo2"

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name   string
	logger *zap.Logger
}

// WithSetName overrides the pongo2 template set name. It only shows up in
// pongo2 error messages.
func WithSetName(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithLogger attaches a logger. Compilations and renders are logged at debug
// level.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

var autoescapeOnce sync.Once

// Engine renders templates with pongo2. Compiled templates are cached per
// *template.Template, which is immutable.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[*template.Template]*pongo2.Template
	logger      *zap.Logger
}

var _ render.Renderer = (*Engine)(nil)

// New constructs an Engine. pongo2 HTML autoescaping is a process-wide
// setting; New switches it off because output is YAML or config text.
func New(options ...Option) *Engine {
	cfg := &config{
		name:   "benchtmpl",
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	autoescapeOnce.Do(func() { pongo2.SetAutoescape(false) })

	return &Engine{
		// pongo2 requires a loader; templates always come from strings here.
		templateSet: pongo2.NewSet(cfg.name, pongo2.NewFSLoader(emptyFS{})),
		templates:   make(map[*template.Template]*pongo2.Template),
		logger:      cfg.logger,
	}
}

// Name implements render.Renderer.
func (e *Engine) Name() string { return EngineName }

// Render implements render.Renderer.
func (e *Engine) Render(t *template.Template, b params.Binder) (render.Result, error) {
	if e == nil || e.templateSet == nil {
		return render.Result{}, errors.New("jinja: engine is nil")
	}
	consumed, err := render.Bind(t, b)
	if err != nil {
		return render.Result{}, err
	}

	tpl, err := e.getTemplate(t)
	if err != nil {
		return render.Result{}, err
	}

	text, err := tpl.Execute(buildContext(consumed, b))
	if err != nil {
		return render.Result{}, fmt.Errorf("jinja: execute template %q: %w", t.Name(), err)
	}

	e.logger.Debug("rendered template",
		zap.String("template", t.Name()),
		zap.String("engine", EngineName),
		zap.Int("bytes", len(text)),
		zap.Strings("consumed", consumed),
	)

	return render.Result{
		Template: t.Name(),
		Text:     text,
		Consumed: consumed,
	}, nil
}

func (e *Engine) getTemplate(t *template.Template) (*pongo2.Template, error) {
	e.mu.RLock()
	if tpl, ok := e.templates[t]; ok {
		e.mu.RUnlock()
		return tpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.templates[t]; ok {
		return tpl, nil
	}

	tpl, err := e.templateSet.FromString(t.Source())
	if err != nil {
		return nil, fmt.Errorf("jinja: compile template %q: %w", t.Name(), err)
	}
	e.logger.Debug("compiled template", zap.String("template", t.Name()))

	e.templates[t] = tpl
	return tpl, nil
}

// buildContext exposes only the names the template requires. Bind has
// already resolved all of them.
func buildContext(names []string, b params.Binder) pongo2.Context {
	ctx := make(pongo2.Context, len(names))
	for _, name := range names {
		v, _ := b.Lookup(name)
		if v.IsSequence() {
			ctx[name] = v.Items()
			continue
		}
		ctx[name] = v.String()
	}
	return ctx
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
