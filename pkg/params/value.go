package params

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind distinguishes scalar values from sequences.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	default:
		return "invalid"
	}
}

// Value is either a scalar (text) or an ordered sequence of scalars. The zero
// Value is invalid.
type Value struct {
	kind   Kind
	scalar string
	items  []string
}

// Scalar builds a scalar value from text.
func Scalar(s string) Value {
	return Value{kind: KindScalar, scalar: s}
}

// Sequence builds a sequence value. The items are copied.
func Sequence(items ...string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{kind: KindSequence, items: out}
}

// ValueOf converts a Go value into a Value. Strings, booleans, integers,
// floats, byte slices and fmt.Stringer become scalars; slices and arrays of
// those become sequences. Nil, maps and nested sequences are rejected.
func ValueOf(v any) (Value, error) {
	if v == nil {
		return Value{}, fmt.Errorf("params: nil value")
	}
	if value, ok := v.(Value); ok {
		if !value.Valid() {
			return Value{}, fmt.Errorf("params: invalid value")
		}
		return value, nil
	}
	if s, ok := scalarText(v); ok {
		return Scalar(s), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return Scalar(rv.String()), nil
	case reflect.Bool:
		return Scalar(strconv.FormatBool(rv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Scalar(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Scalar(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return Scalar(strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())), nil
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			s, ok := scalarText(elem)
			if !ok {
				return Value{}, fmt.Errorf("params: sequence element %d has unsupported type %T", i, elem)
			}
			items = append(items, s)
		}
		return Value{kind: KindSequence, items: items}, nil
	default:
		return Value{}, fmt.Errorf("params: unsupported value type %T", v)
	}
}

func scalarText(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return "", false
	}
}

// Kind reports the value kind.
func (v Value) Kind() Kind { return v.kind }

// Valid reports whether v was built by one of the constructors.
func (v Value) Valid() bool { return v.kind == KindScalar || v.kind == KindSequence }

// IsSequence reports whether v is a sequence.
func (v Value) IsSequence() bool { return v.kind == KindSequence }

// Items returns a copy of the sequence elements; nil for scalars.
func (v Value) Items() []string {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// Len is the number of sequence elements, or 1 for a scalar.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindScalar:
		return 1
	default:
		return 0
	}
}

// Truthy is false for empty scalars and empty sequences.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindScalar:
		return v.scalar != ""
	case KindSequence:
		return len(v.items) > 0
	default:
		return false
	}
}

// String returns the scalar text. Sequences render as a bracketed, comma
// separated list, which is also the syntax ParseAssignments accepts.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindSequence:
		return "[" + strings.Join(v.items, ", ") + "]"
	default:
		return ""
	}
}
