package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/render"
)

func TestErrors_MessagesAndMatching(t *testing.T) {
	unbound := &render.UnboundPlaceholderError{Template: "kubernetes/fib.yaml", Name: "port", Line: 30}
	mismatch := &render.TypeMismatchError{
		Template: "kubernetes/fib.yaml", Name: "node_selectors", Line: 39,
		Want: params.KindSequence, Got: params.KindScalar,
	}

	cases := []struct {
		err      error
		sentinel error
		text     string
	}{
		{unbound, render.ErrUnboundPlaceholder, `render: kubernetes/fib.yaml:30: "port" is not bound`},
		{mismatch, render.ErrTypeMismatch, `render: kubernetes/fib.yaml:39: "node_selectors" is a scalar, want sequence`},
	}
	for _, tc := range cases {
		if tc.err.Error() != tc.text {
			t.Errorf("message = %q, want %q", tc.err.Error(), tc.text)
		}
		wrapped := fmt.Errorf("job 3: %w", tc.err)
		if !errors.Is(wrapped, tc.sentinel) {
			t.Errorf("%T does not match its sentinel through wrapping", tc.err)
		}
	}

	if errors.Is(unbound, render.ErrTypeMismatch) || errors.Is(mismatch, render.ErrUnboundPlaceholder) {
		t.Fatalf("sentinels must not cross-match")
	}
}
