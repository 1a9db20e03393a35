package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-benchtmpl/pkg/params"
)

var (
	// ErrUnboundPlaceholder matches every *UnboundPlaceholderError.
	ErrUnboundPlaceholder = errors.New("unbound placeholder")
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
)

// UnboundPlaceholderError reports a name referenced by the template that the
// binder does not know. It is a caller error and retrying cannot fix it.
type UnboundPlaceholderError struct {
	Template string
	Name     string
	Line     int
}

func (e *UnboundPlaceholderError) Error() string {
	return fmt.Sprintf("render: %s:%d: %q is not bound", e.Template, e.Line, e.Name)
}

func (e *UnboundPlaceholderError) Unwrap() error {
	return ErrUnboundPlaceholder
}

// TypeMismatchError reports a scalar placeholder bound to a sequence or a
// block source bound to a scalar.
type TypeMismatchError struct {
	Template string
	Name     string
	Line     int
	Want     params.Kind
	Got      params.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("render: %s:%d: %q is a %s, want %s", e.Template, e.Line, e.Name, e.Got, e.Want)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
