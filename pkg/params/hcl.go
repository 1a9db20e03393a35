package params

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL reads top-level attributes of an HCL body:
//
//	fib_image      = "example/fib:latest"
//	port           = 8080
//	node_selectors = ["disktype: ssd"]
//
// Expressions are evaluated without variables or functions.
func decodeHCL(data []byte, source string) (Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return Set{}, fmt.Errorf("params: parse %s: %w", source, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return Set{}, fmt.Errorf("params: %s: %w", source, diags)
	}

	out := make(map[string]Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Set{}, fmt.Errorf("params: %s: %q: %w", source, name, diags)
		}
		value, err := ctyToValue(val)
		if err != nil {
			return Set{}, fmt.Errorf("params: %s: %q: %w", source, name, err)
		}
		out[name] = value
	}
	return Set{values: out}, nil
}

func ctyToValue(v cty.Value) (Value, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("value is null or unknown")
	}

	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		s, err := ctyScalar(v)
		if err != nil {
			return Value{}, err
		}
		return Scalar(s), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		items := make([]string, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			if elem.IsNull() || !elem.Type().IsPrimitiveType() {
				return Value{}, fmt.Errorf("sequence elements must be strings, numbers or bools, got %s", elem.Type().FriendlyName())
			}
			s, err := ctyScalar(elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, s)
		}
		return Value{kind: KindSequence, items: items}, nil
	default:
		return Value{}, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

func ctyScalar(v cty.Value) (string, error) {
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case cty.Bool:
		return strconv.FormatBool(v.True()), nil
	default:
		return "", fmt.Errorf("unsupported type %s", v.Type().FriendlyName())
	}
}
