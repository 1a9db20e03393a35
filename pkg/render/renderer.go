package render

import (
	"sort"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// Renderer turns a template plus a binder into final text. Implementations
// must be pure: the same template and bindings produce byte-identical output,
// and a failed render never yields partial text.
type Renderer interface {
	Name() string
	Render(t *template.Template, b params.Binder) (Result, error)
}

// Result is the output of a successful render.
type Result struct {
	// Template is the name of the rendered template.
	Template string
	// Text is the rendered output. It contains no template markers.
	Text string
	// Consumed lists, sorted, every caller-bound name the render read. It
	// always covers the template's required names.
	Consumed []string
}

// Consumes reports whether name was read during the render.
func (r Result) Consumes(name string) bool {
	i := sort.SearchStrings(r.Consumed, name)
	return i < len(r.Consumed) && r.Consumed[i] == name
}
