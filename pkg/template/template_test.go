package template_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-benchtmpl/pkg/template"
)

func TestNew_Requirements(t *testing.T) {
	src := "image: {{ image }}\n" +
		"{% for sel in node_selectors %}{{ sel }} {{ zone }}{% endfor %}\n" +
		"{% if tools %}tools: {{ tools }}{% else %}none{% endif %}\n" +
		"again: {{ image }}\n"

	tmpl, err := template.New("manifest", src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	want := []template.Requirement{
		{Name: "image", Usage: template.UsageScalar, Line: 1},
		{Name: "node_selectors", Usage: template.UsageSequence, Line: 2},
		{Name: "tools", Usage: template.UsageScalar, Line: 3},
		{Name: "tools", Usage: template.UsageCondition, Line: 3},
		{Name: "zone", Usage: template.UsageScalar, Line: 2},
	}
	if diff := cmp.Diff(want, tmpl.Requirements()); diff != "" {
		t.Fatalf("requirements mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"image", "node_selectors", "tools", "zone"}, tmpl.Required()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"node_selectors"}, tmpl.Sequences()); diff != "" {
		t.Fatalf("sequences mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"image", "tools", "zone"}, tmpl.Placeholders()); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_LoopVariableShadowsOnlyInsideBody(t *testing.T) {
	tmpl, err := template.New("shadow", "{% for x in xs %}{{ x }}{% endfor %}{{ x }}")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if diff := cmp.Diff([]string{"x", "xs"}, tmpl.Required()); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_WhitespaceControl(t *testing.T) {
	src := "nodeSelector:\n  {%- for s in sel %}\n  {{ s }}\n  {%- endfor %}\n"

	tmpl, err := template.New("trim", src)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	want := []template.Node{
		&template.TextNode{Text: "nodeSelector:", Line: 1},
		&template.ForNode{
			Var: "s",
			Seq: "sel",
			Body: []template.Node{
				&template.TextNode{Text: "\n  ", Line: 2},
				&template.PlaceholderNode{Name: "s", Line: 3},
			},
			Line: 2,
		},
		&template.TextNode{Text: "\n", Line: 4},
	}
	if diff := cmp.Diff(want, tmpl.Nodes()); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_CommentsAndBracesInText(t *testing.T) {
	tmpl, err := template.New("comment", "a {# note #}{ b }{{ c }}")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []template.Node{
		&template.TextNode{Text: "a ", Line: 1},
		&template.TextNode{Text: "{ b }", Line: 1},
		&template.PlaceholderNode{Name: "c", Line: 1},
	}
	if diff := cmp.Diff(want, tmpl.Nodes()); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_CommentsKeepSurroundingWhitespace(t *testing.T) {
	tmpl, err := template.New("comment", "a\n{#- note -#}\n  {{ x }}")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	want := []template.Node{
		&template.TextNode{Text: "a\n", Line: 1},
		&template.TextNode{Text: "\n  ", Line: 2},
		&template.PlaceholderNode{Name: "x", Line: 3},
	}
	if diff := cmp.Diff(want, tmpl.Nodes()); diff != "" {
		t.Fatalf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Malformed(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []template.Option
		line int
	}{
		{name: "unterminated for", src: "a\n{% for x in xs %}{{ x }}", line: 2},
		{name: "unterminated if", src: "{% if x %}y", line: 1},
		{name: "unterminated else", src: "{% if x %}y{% else %}z", line: 1},
		{name: "stray endfor", src: "a\nb\n{% endfor %}", line: 3},
		{name: "stray else", src: "{% else %}", line: 1},
		{name: "endif closes for", src: "{% for x in xs %}\n{% endif %}", line: 2},
		{name: "endfor closes if", src: "{% if x %}{% endfor %}", line: 1},
		{name: "endfor with arguments", src: "{% for x in xs %}{% endfor xs %}", line: 1},
		{name: "bad for syntax", src: "{% for x of xs %}{% endfor %}", line: 1},
		{name: "bad if syntax", src: "{% if a b %}{% endif %}", line: 1},
		{name: "unknown tag", src: "{% include \"x\" %}", line: 1},
		{name: "empty tag", src: "{% %}", line: 1},
		{name: "expression placeholder", src: "{{ a.b }}", line: 1},
		{name: "empty placeholder", src: "x\n{{ }}", line: 2},
		{name: "unclosed placeholder", src: "x\ny {{ a", line: 2},
		{name: "unclosed tag", src: "{% for x in xs", line: 1},
		{name: "keyword loop variable", src: "{% for in in xs %}{% endfor %}", line: 1},
		{name: "keyword sequence", src: "x\n{% for a in as %}{% endfor %}", line: 2},
		{name: "keyword condition", src: "{% if not %}{% endif %}", line: 1},
		{name: "keyword placeholder", src: "{{ true }}", line: 1},
		{
			name: "too deep",
			src:  "{% for a in outer %}{% for b in bs %}{% endfor %}{% endfor %}",
			opts: []template.Option{template.WithMaxDepth(1)},
			line: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := template.New("broken", tc.src, tc.opts...)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, template.ErrMalformedTemplate) {
				t.Fatalf("expected ErrMalformedTemplate, got %v", err)
			}
			var malformed *template.MalformedTemplateError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedTemplateError, got %T", err)
			}
			if malformed.Template != "broken" {
				t.Fatalf("template name = %q", malformed.Template)
			}
			if malformed.Line != tc.line {
				t.Fatalf("line = %d, want %d (%v)", malformed.Line, tc.line, err)
			}
		})
	}
}

func TestNew_NestingWithinLimit(t *testing.T) {
	src := "{% for a in outer %}{% if a %}{% for b in bs %}{{ b }}{% endfor %}{% endif %}{% endfor %}"
	if _, err := template.New("nested", src, template.WithMaxDepth(3)); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := template.New("nested", src, template.WithMaxDepth(2)); !errors.Is(err, template.ErrMalformedTemplate) {
		t.Fatalf("expected depth error, got %v", err)
	}
}

func TestNew_RequiresName(t *testing.T) {
	if _, err := template.New("  ", "x"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
