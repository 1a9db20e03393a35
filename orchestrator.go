package benchtmpl

import (
	"context"

	"github.com/goliatone/go-benchtmpl/pkg/orchestrator"
	"github.com/goliatone/go-benchtmpl/pkg/params"
	"github.com/goliatone/go-benchtmpl/pkg/render"
	"github.com/goliatone/go-benchtmpl/pkg/validate"
)

// Result aliases render.Result for callers that only import the root package.
type Result = render.Result

// Document aliases validate.Document.
type Document = validate.Document

// Schema aliases validate.Schema.
type Schema = validate.Schema

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render renders a stored template with literal values using the default
// renderer. It is the simplest entry point for callers that just want text.
func Render(ctx context.Context, name string, values map[string]any, options ...orchestrator.Option) (string, error) {
	set, err := params.New(values)
	if err != nil {
		return "", err
	}
	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Template: name,
		Params:   set,
	})
	if err != nil {
		return "", err
	}
	return out.Result.Text, nil
}

// RenderAndValidate renders a stored template and validates the output
// against schema.
func RenderAndValidate(ctx context.Context, name string, values map[string]any, schema Schema, options ...orchestrator.Option) (string, []Document, error) {
	set, err := params.New(values)
	if err != nil {
		return "", nil, err
	}
	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Template: name,
		Params:   set,
		Schema:   &schema,
	})
	return out.Result.Text, out.Documents, err
}

// Validate checks already rendered text against schema.
func Validate(text string, schema Schema) ([]Document, error) {
	return validate.Validate(text, schema)
}
