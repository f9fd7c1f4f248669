package handlers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/cellflow/internal/op"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Adapt turns a typed Go function into a cell implementation. The function
// must have the shape func(ctx context.Context, a1 T1, ..., an Tn) (R, error)
// with one Ti per declared parameter name; a variadic final parameter absorbs
// any remaining names. Shape mismatches panic because adaptation happens at
// registration time, before any evaluation.
//
// Resolved source values are converted to the parameter types with the bag's
// native conventions (numbers arrive as int64 or float64, lists as []any);
// a value that cannot be converted becomes an implementation error, recorded
// in the bag as a failure for the cell.
func Adapt(params []string, fn any) *op.Impl {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()

	if ft.Kind() != reflect.Func {
		panic(fmt.Sprintf("handlers.Adapt: fn must be a function, got %T", fn))
	}
	if ft.NumIn() < 1 || ft.In(0) != ctxType {
		panic("handlers.Adapt: fn must accept context.Context as its first parameter")
	}
	if ft.NumOut() != 2 || !ft.Out(1).Implements(errType) {
		panic("handlers.Adapt: fn must return (value, error)")
	}

	fixed := ft.NumIn() - 1
	if ft.IsVariadic() {
		fixed--
		if len(params) < fixed {
			panic(fmt.Sprintf("handlers.Adapt: %d parameter names for at least %d arguments", len(params), fixed))
		}
	} else if len(params) != fixed {
		panic(fmt.Sprintf("handlers.Adapt: %d parameter names for %d arguments", len(params), fixed))
	}

	return op.Func(params, func(ctx context.Context, args []any) (any, error) {
		call := make([]reflect.Value, 0, len(args)+1)
		call = append(call, reflect.ValueOf(ctx))

		for i, arg := range args {
			var want reflect.Type
			if ft.IsVariadic() && i >= fixed {
				want = ft.In(ft.NumIn() - 1).Elem()
			} else {
				want = ft.In(i + 1)
			}
			converted, err := convertArg(arg, want)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", params[i], err)
			}
			call = append(call, converted)
		}

		results := fv.Call(call)
		if errVal := results[1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
		return results[0].Interface(), nil
	})
}

// convertArg coerces a bag value into the concrete type a handler expects.
func convertArg(v any, want reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot pass null as %s", want)
		}
	}

	have := reflect.ValueOf(v)
	if have.Type().AssignableTo(want) {
		return have, nil
	}

	switch want.Kind() {
	case reflect.Float64, reflect.Float32, reflect.Int, reflect.Int64:
		if isNumeric(have.Kind()) {
			return have.Convert(want), nil
		}

	case reflect.String:
		if have.Kind() == reflect.String {
			return have.Convert(want), nil
		}

	case reflect.Slice:
		if have.Kind() != reflect.Slice {
			break
		}
		out := reflect.MakeSlice(want, have.Len(), have.Len())
		for i := 0; i < have.Len(); i++ {
			elem, err := convertArg(have.Index(i).Interface(), want.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(elem)
		}
		return out, nil

	case reflect.Map:
		if have.Kind() != reflect.Map || !have.Type().Key().AssignableTo(want.Key()) {
			break
		}
		out := reflect.MakeMapWithSize(want, have.Len())
		for it := have.MapRange(); it.Next(); {
			elem, err := convertArg(it.Value().Interface(), want.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", it.Key(), err)
			}
			out.SetMapIndex(it.Key(), elem)
		}
		return out, nil
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, want)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
