package render

import (
	"errors"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// Bind resolves every requirement of t against b before any output is
// produced. It returns the sorted names that were consumed, or the first
// *UnboundPlaceholderError / *TypeMismatchError in name order. Engines call it
// so the binding invariants hold regardless of how text is produced.
func Bind(t *template.Template, b params.Binder) ([]string, error) {
	if t == nil {
		return nil, errors.New("render: template is required")
	}
	if b == nil {
		b = params.Set{}
	}

	reqs := t.Requirements()
	consumed := make([]string, 0, len(reqs))
	for _, req := range reqs {
		v, ok := b.Lookup(req.Name)
		if !ok || !v.Valid() {
			return nil, &UnboundPlaceholderError{Template: t.Name(), Name: req.Name, Line: req.Line}
		}

		switch req.Usage {
		case template.UsageScalar:
			if v.IsSequence() {
				return nil, &TypeMismatchError{
					Template: t.Name(), Name: req.Name, Line: req.Line,
					Want: params.KindScalar, Got: v.Kind(),
				}
			}
		case template.UsageSequence:
			if !v.IsSequence() {
				return nil, &TypeMismatchError{
					Template: t.Name(), Name: req.Name, Line: req.Line,
					Want: params.KindSequence, Got: v.Kind(),
				}
			}
		}

		if n := len(consumed); n == 0 || consumed[n-1] != req.Name {
			consumed = append(consumed, req.Name)
		}
	}
	return consumed, nil
}
