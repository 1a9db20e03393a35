// Package params supplies values to the renderer. A Binder maps a name to a
// scalar or a sequence of scalars; Set is the immutable map implementation,
// Chain layers binders by precedence, and the loaders build sets from YAML,
// JSON, HCL, environment snapshots and name=value assignments.
package params
