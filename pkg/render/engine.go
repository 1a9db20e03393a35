package render

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// StrictEngineName is the registry name of the native engine.
const StrictEngineName = "strict"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. Renders are logged at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine is the native renderer. It walks the parsed template tree and never
// evaluates anything beyond name lookups, so output only depends on the
// template and the bindings.
type Engine struct {
	logger *zap.Logger
}

var _ Renderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Name implements Renderer.
func (e *Engine) Name() string { return StrictEngineName }

// Render implements Renderer.
func (e *Engine) Render(t *template.Template, b params.Binder) (Result, error) {
	consumed, err := Bind(t, b)
	if err != nil {
		return Result{}, err
	}
	if b == nil {
		b = params.Set{}
	}

	var buf strings.Builder
	buf.Grow(len(t.Source()))

	s := &state{tmpl: t, binder: b, out: &buf}
	if err := s.walk(t.Nodes()); err != nil {
		return Result{}, err
	}

	e.logger.Debug("rendered template",
		zap.String("template", t.Name()),
		zap.String("engine", StrictEngineName),
		zap.Int("bytes", buf.Len()),
		zap.Strings("consumed", consumed),
	)

	return Result{
		Template: t.Name(),
		Text:     buf.String(),
		Consumed: consumed,
	}, nil
}

type frame struct {
	name  string
	value params.Value
}

type state struct {
	tmpl   *template.Template
	binder params.Binder
	scope  []frame
	out    *strings.Builder
}

// lookup resolves loop variables innermost first, then the binder.
func (s *state) lookup(name string, line int) (params.Value, error) {
	for i := len(s.scope) - 1; i >= 0; i-- {
		if s.scope[i].name == name {
			return s.scope[i].value, nil
		}
	}
	v, ok := s.binder.Lookup(name)
	if !ok || !v.Valid() {
		return params.Value{}, &UnboundPlaceholderError{Template: s.tmpl.Name(), Name: name, Line: line}
	}
	return v, nil
}

func (s *state) walk(nodes []template.Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *template.TextNode:
			s.out.WriteString(n.Text)

		case *template.PlaceholderNode:
			v, err := s.lookup(n.Name, n.Line)
			if err != nil {
				return err
			}
			if v.IsSequence() {
				return &TypeMismatchError{
					Template: s.tmpl.Name(), Name: n.Name, Line: n.Line,
					Want: params.KindScalar, Got: v.Kind(),
				}
			}
			s.out.WriteString(v.String())

		case *template.ForNode:
			v, err := s.lookup(n.Seq, n.Line)
			if err != nil {
				return err
			}
			if !v.IsSequence() {
				return &TypeMismatchError{
					Template: s.tmpl.Name(), Name: n.Seq, Line: n.Line,
					Want: params.KindSequence, Got: v.Kind(),
				}
			}
			for _, item := range v.Items() {
				s.scope = append(s.scope, frame{name: n.Var, value: params.Scalar(item)})
				err := s.walk(n.Body)
				s.scope = s.scope[:len(s.scope)-1]
				if err != nil {
					return err
				}
			}

		case *template.IfNode:
			v, err := s.lookup(n.Cond, n.Line)
			if err != nil {
				return err
			}
			branch := n.Else
			if v.Truthy() {
				branch = n.Then
			}
			if err := s.walk(branch); err != nil {
				return err
			}

		default:
			return fmt.Errorf("render: unsupported node %T", n)
		}
	}
	return nil
}
