// Package jinja provides a render.Renderer backed by pongo2, a Jinja2
// compatible engine. Templates are still parsed by pkg/template first, so only
// the placeholder, for and if forms reach pongo2, and the same binding checks
// run before pongo2 executes anything.
package jinja
