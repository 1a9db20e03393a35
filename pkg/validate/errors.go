package validate

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("validate: parse error")
	// ErrSchemaViolation matches every *SchemaViolation.
	ErrSchemaViolation = errors.New("validate: schema violation")
)

// ParseError reports text that cannot be decomposed into documents. It is
// fatal to the whole call. Line is absolute within the input, or 0 when
// unknown.
type ParseError struct {
	Index int
	Line  int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("validate: document %d: line %d: %v", e.Index, e.Line, e.Err)
	}
	return fmt.Sprintf("validate: document %d: %v", e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaViolation reports one field of one document that does not satisfy
// the schema.
type SchemaViolation struct {
	Index   int
	Kind    string
	Field   string
	Message string
}

func (e *SchemaViolation) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "?"
	}
	if e.Field == "" {
		return fmt.Sprintf("validate: document %d (%s): %s", e.Index, kind, e.Message)
	}
	return fmt.Sprintf("validate: document %d (%s): field %q: %s", e.Index, kind, e.Field, e.Message)
}

// Is lets errors.Is(err, ErrSchemaViolation) match.
func (e *SchemaViolation) Is(target error) bool { return target == ErrSchemaViolation }

// Violations extracts every *SchemaViolation carried by err, in the order
// they were found.
func Violations(err error) []*SchemaViolation {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]*SchemaViolation, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			var v *SchemaViolation
			if errors.As(e, &v) {
				out = append(out, v)
			}
		}
		return out
	}
	var v *SchemaViolation
	if errors.As(err, &v) {
		return []*SchemaViolation{v}
	}
	return nil
}

func formatViolations(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msg := fmt.Sprintf("validate: %d schema violations:", len(errs))
	for _, err := range errs {
		msg += "\n  * " + err.Error()
	}
	return msg
}
