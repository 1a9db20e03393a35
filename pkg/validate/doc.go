// Package validate checks rendered output against a structural schema before
// it is handed to an external consumer. Two formats are understood: a
// multi-document YAML stream separated by "---" lines, and flat key = value
// configuration files. Only shape is checked; values are passed through as
// written.
package validate
