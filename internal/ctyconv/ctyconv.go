// Package ctyconv bridges native Go values and cty values. Formula cells
// evaluate in cty-land while the bag holds native values, so every crossing
// goes through this package. Numbers come back as int64 when they are whole
// and float64 otherwise.
package ctyconv

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// ToCty converts a native Go value into its corresponding cty.Value.
func ToCty(v any) (cty.Value, error) {
	switch val := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return val, nil
	case bool:
		return cty.BoolVal(val), nil
	case string:
		return cty.StringVal(val), nil
	case int:
		return cty.NumberIntVal(int64(val)), nil
	case int64:
		return cty.NumberIntVal(val), nil
	case float64:
		return cty.NumberFloatVal(val), nil
	case *big.Float:
		return cty.NumberVal(val), nil
	case []any:
		if len(val) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(val))
		for i, e := range val {
			conv, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = conv
		}
		return cty.TupleVal(elems), nil
	case []float64:
		elems := make([]cty.Value, len(val))
		for i, e := range val {
			elems[i] = cty.NumberFloatVal(e)
		}
		if len(elems) == 0 {
			return cty.ListValEmpty(cty.Number), nil
		}
		return cty.ListVal(elems), nil
	case []string:
		elems := make([]cty.Value, len(val))
		for i, e := range val {
			elems[i] = cty.StringVal(e)
		}
		if len(elems) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		return cty.ListVal(elems), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(val))
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			conv, err := ToCty(val[name])
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", name, err)
			}
			attrs[name] = conv
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported Go type %T for cty conversion", v)
	}
}

// FromCty recursively converts a cty.Value to its most natural Go
// counterpart. Unknown and null values become nil.
func FromCty(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		slice := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			native, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	case ty.IsMapType() || ty.IsObjectType():
		m := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			native, err := FromCty(ev)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", kv.AsString(), err)
			}
			m[kv.AsString()] = native
		}
		return m, nil

	default:
		return nil, fmt.Errorf("unsupported cty type %s for native conversion", ty.FriendlyName())
	}
}
