// Package template parses benchmark artifact templates and keeps them in a
// named Store.
//
// Templates use a small Jinja-compatible subset:
//
//	{{ name }}                          scalar placeholder
//	{% for item in items %}…{% endfor %} block repeated once per element
//	{% if name %}…{% else %}…{% endif %} conditional block
//	{# comment #}                       dropped from the output
//
// A leading or trailing dash inside a delimiter ({%- … -%}, {{- … -}}) trims
// the whitespace, newlines included, on that side of the tag.
//
// A Template is parsed once and never mutated afterwards, so the same value
// can be rendered from many goroutines.
package template
