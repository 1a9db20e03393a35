// Package orchestrator wires the template store, parameter binders, renderers
// and validator into a single Generate call, with defaults that cover the
// built-in templates so callers can start with one constructor.
package orchestrator
