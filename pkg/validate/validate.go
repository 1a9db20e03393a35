package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Document is one validated unit of output.
type Document struct {
	// Index is the position of the document in the input, counting only
	// non-empty sections.
	Index  int
	Kind   string
	Fields map[string]any
}

// Lookup resolves a dotted path inside the document.
func (d Document) Lookup(path string) (any, bool) {
	return lookupPath(d.Fields, path)
}

// Validate splits text into documents and checks each against schema.
//
// A *ParseError is fatal and no documents are returned. Schema violations are
// collected across all documents into a *multierror.Error; the documents that
// satisfied the schema are still returned, in input order.
func Validate(text string, schema Schema) ([]Document, error) {
	var (
		docs []Document
		err  error
	)
	switch schema.Format {
	case FormatYAMLStream:
		docs, err = parseYAMLStream(text, schema.kindField())
	case FormatKeyValue:
		var doc Document
		doc, err = parseKeyValue(text, schema.ConfigKind)
		docs = []Document{doc}
	default:
		return nil, fmt.Errorf("validate: unsupported format %s", schema.Format)
	}
	if err != nil {
		return nil, err
	}

	var (
		result *multierror.Error
		valid  = make([]Document, 0, len(docs))
	)
	for _, doc := range docs {
		violations := check(doc, schema)
		if len(violations) == 0 {
			valid = append(valid, doc)
			continue
		}
		for _, v := range violations {
			result = multierror.Append(result, v)
		}
	}
	if result != nil {
		result.ErrorFormat = formatViolations
		return valid, result
	}
	return valid, nil
}

type section struct {
	text string
	line int
}

// splitStream cuts text on "---" separator lines. Blank and comment-only
// sections are dropped.
func splitStream(text string) []section {
	var (
		out     []section
		current strings.Builder
		start   = 1
	)
	flush := func() {
		if !isBlankYAML(current.String()) {
			out = append(out, section{text: current.String(), line: start})
		}
		current.Reset()
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		switch {
		case trimmed == "---" || strings.HasPrefix(trimmed, "--- "):
			flush()
			start = i + 2
			if rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "---")); rest != "" {
				// content after the marker belongs to the next document
				start = i + 1
				current.WriteString(rest)
				current.WriteByte('\n')
			}
		case trimmed == "...":
			flush()
			start = i + 2
		default:
			current.WriteString(line)
			if i < len(lines)-1 {
				current.WriteByte('\n')
			}
		}
	}
	flush()
	return out
}

func isBlankYAML(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return false
		}
	}
	return true
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func parseYAMLStream(text, kindField string) ([]Document, error) {
	sections := splitStream(text)
	if len(sections) == 0 {
		return nil, &ParseError{Err: errors.New("no documents found")}
	}

	docs := make([]Document, 0, len(sections))
	for i, sec := range sections {
		var raw any
		if err := yaml.Unmarshal([]byte(sec.text), &raw); err != nil {
			line := sec.line
			if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
				if n, convErr := strconv.Atoi(m[1]); convErr == nil {
					line = sec.line + n - 1
				}
			}
			return nil, &ParseError{Index: i, Line: line, Err: err}
		}
		doc := Document{Index: i}
		if fields, ok := normalize(raw).(map[string]any); ok {
			doc.Fields = fields
			doc.Kind, _ = fields[kindField].(string)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// normalize turns yaml.v3 output into map[string]any / []any trees.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = normalize(child)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range v {
			v[i] = normalize(child)
		}
		return v
	default:
		return v
	}
}

func check(doc Document, schema Schema) []*SchemaViolation {
	if doc.Fields == nil {
		return []*SchemaViolation{{Index: doc.Index, Message: "document is not a mapping"}}
	}

	var out []*SchemaViolation
	kindOK := true
	if schema.Format == FormatYAMLStream {
		field := schema.kindField()
		raw, ok := doc.Fields[field]
		switch kind, isString := raw.(string); {
		case !ok || raw == nil:
			kindOK = false
			out = append(out, &SchemaViolation{Index: doc.Index, Field: field, Message: "required field missing"})
		case !isString || strings.TrimSpace(kind) == "":
			kindOK = false
			out = append(out, &SchemaViolation{Index: doc.Index, Field: field, Message: "must be a non-empty string"})
		}
	}

	rules := append([]FieldRule(nil), schema.Required...)
	// per-kind rules need a usable kind
	if kindOK && len(schema.Kinds) > 0 {
		kindRules, known := schema.Kinds[doc.Kind]
		if !known && !schema.AllowUnknownKinds {
			out = append(out, &SchemaViolation{
				Index: doc.Index, Kind: doc.Kind, Field: schema.kindField(),
				Message: fmt.Sprintf("unknown kind %q", doc.Kind),
			})
		}
		rules = append(rules, kindRules...)
	}

	for _, rule := range rules {
		if msg := checkRule(doc.Fields, rule); msg != "" {
			out = append(out, &SchemaViolation{Index: doc.Index, Kind: doc.Kind, Field: rule.Path, Message: msg})
		}
	}
	return out
}

func checkRule(fields map[string]any, rule FieldRule) string {
	v, ok := lookupPath(fields, rule.Path)
	if !ok {
		return "required field missing"
	}
	if v == nil {
		return "field is null"
	}
	got := kindOf(v)
	if rule.Kind != KindAny && got != rule.Kind {
		return fmt.Sprintf("expected %s, got %s", rule.Kind, got)
	}
	return ""
}

func kindOf(v any) FieldKind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

func lookupPath(fields map[string]any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = fields
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
