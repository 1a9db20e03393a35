package template

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTemplate matches every *MalformedTemplateError.
	ErrMalformedTemplate = errors.New("malformed template")
	// ErrTemplateNotFound matches every *NotFoundError.
	ErrTemplateNotFound = errors.New("template not found")
)

// MalformedTemplateError reports a syntax or structure problem found while
// parsing. It always points at template data, never at render input.
type MalformedTemplateError struct {
	Template string
	Line     int
	Reason   string
}

func (e *MalformedTemplateError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("template: %s:%d: %s", e.Template, e.Line, e.Reason)
	}
	return fmt.Sprintf("template: %s: %s", e.Template, e.Reason)
}

func (e *MalformedTemplateError) Unwrap() error {
	return ErrMalformedTemplate
}

// NotFoundError is returned by Store.Get for unknown names.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template: %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrTemplateNotFound
}

func malformed(name string, line int, format string, args ...any) error {
	return &MalformedTemplateError{
		Template: name,
		Line:     line,
		Reason:   fmt.Sprintf(format, args...),
	}
}
