// Package render produces text from a parsed template and a params.Binder.
//
// Every engine first resolves all of the template's requirements through
// Bind, so a render either fails with an *UnboundPlaceholderError or a
// *TypeMismatchError before writing anything, or returns a Result whose
// Consumed set covers every required name. Engines are registered by name in
// a Registry; RenderAll fans a batch out over goroutines.
package render
