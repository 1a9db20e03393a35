package template

import (
	"fmt"
	"sort"
	"strings"
)

// Usage describes how a template consumes a caller-supplied name.
type Usage int

const (
	// UsageScalar marks a {{ name }} placeholder.
	UsageScalar Usage = iota + 1
	// UsageSequence marks the source of a for block.
	UsageSequence
	// UsageCondition marks the subject of an if block.
	UsageCondition
)

func (u Usage) String() string {
	switch u {
	case UsageScalar:
		return "scalar"
	case UsageSequence:
		return "sequence"
	case UsageCondition:
		return "condition"
	default:
		return fmt.Sprintf("usage(%d)", int(u))
	}
}

// Requirement is one name the caller must bind, with the first line it is
// referenced on. Loop variables are bound by the template itself and never
// show up here.
type Requirement struct {
	Name  string
	Usage Usage
	Line  int
}

// Option configures parsing.
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// Template is a parsed, immutable template.
type Template struct {
	name         string
	source       string
	nodes        []Node
	requirements []Requirement
}

// New parses source into a Template. Structural problems are reported as a
// *MalformedTemplateError.
func New(name, source string, opts ...Option) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("template: name is required")
	}

	cfg := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	nodes, err := parse(name, source, cfg.maxDepth)
	if err != nil {
		return nil, err
	}

	return &Template{
		name:         name,
		source:       source,
		nodes:        nodes,
		requirements: collectRequirements(nodes),
	}, nil
}

// Must panics when err is non-nil. Useful for package-level templates.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template identifier.
func (t *Template) Name() string { return t.name }

// Source returns the raw template text.
func (t *Template) Source() string { return t.source }

// Nodes returns the parsed tree. Callers must treat it as read-only.
func (t *Template) Nodes() []Node { return t.nodes }

// Requirements lists the names the caller must bind, sorted by name then
// usage.
func (t *Template) Requirements() []Requirement {
	out := make([]Requirement, len(t.requirements))
	copy(out, t.requirements)
	return out
}

// Required returns the sorted, de-duplicated names the caller must bind.
func (t *Template) Required() []string {
	var out []string
	for _, req := range t.requirements {
		if n := len(out); n > 0 && out[n-1] == req.Name {
			continue
		}
		out = append(out, req.Name)
	}
	return out
}

// Placeholders returns the names used as scalar placeholders.
func (t *Template) Placeholders() []string {
	return t.namesFor(UsageScalar)
}

// Sequences returns the names used as for block sources.
func (t *Template) Sequences() []string {
	return t.namesFor(UsageSequence)
}

func (t *Template) namesFor(usage Usage) []string {
	var out []string
	for _, req := range t.requirements {
		if req.Usage == usage {
			out = append(out, req.Name)
		}
	}
	return out
}

func collectRequirements(nodes []Node) []Requirement {
	type key struct {
		name  string
		usage Usage
	}
	seen := make(map[key]int)
	scope := make(map[string]int)

	var walk func([]Node)
	record := func(name string, usage Usage, line int) {
		if scope[name] > 0 {
			return
		}
		k := key{name, usage}
		if _, ok := seen[k]; !ok {
			seen[k] = line
		}
	}
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *PlaceholderNode:
				record(n.Name, UsageScalar, n.Line)
			case *ForNode:
				record(n.Seq, UsageSequence, n.Line)
				scope[n.Var]++
				walk(n.Body)
				scope[n.Var]--
			case *IfNode:
				record(n.Cond, UsageCondition, n.Line)
				walk(n.Then)
				walk(n.Else)
			}
		}
	}
	walk(nodes)

	out := make([]Requirement, 0, len(seen))
	for k, line := range seen {
		out = append(out, Requirement{Name: k.name, Usage: k.usage, Line: line})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].Usage < out[j].Usage
		}
		return out[i].Name < out[j].Name
	})
	return out
}
