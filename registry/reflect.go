package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/object-runtime/errors"
	"github.com/wippyai/object-runtime/object"
)

var (
	ctxType      = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType      = reflect.TypeOf((*error)(nil)).Elem()
	instanceType = reflect.TypeOf((*object.Instance)(nil))
)

// AsMethod adapts fn to the object.Method calling convention. Functions
// already matching the convention pass through unchanged; other shapes are
// wrapped with a reflection adapter. The adapter fills an optional leading
// context.Context and *object.Instance parameter from the call, converts
// the caller's arguments to the remaining parameters, and maps a trailing
// error result onto Method's error.
func AsMethod(fn any) (object.Method, error) {
	switch f := fn.(type) {
	case object.Method:
		return f, nil
	case func(context.Context, *object.Instance, ...any) (any, error):
		return f, nil
	}

	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, errors.New(errors.PhaseRegistry, errors.KindTypeMismatch).
			GoType(reflect.TypeOf(fn).String()).
			Detail("handler must be a function").
			Build()
	}

	rt := rv.Type()
	if rt.IsVariadic() {
		return nil, errors.Unsupported(errors.PhaseRegistry, "variadic handler signatures")
	}
	if rt.NumOut() > 2 {
		return nil, errors.Unsupported(errors.PhaseRegistry, "handlers with more than two results")
	}
	if rt.NumOut() == 2 && rt.Out(1) != errType {
		return nil, errors.Unsupported(errors.PhaseRegistry, "second handler result must be an error")
	}

	pos := 0
	wantCtx := false
	if pos < rt.NumIn() && rt.In(pos) == ctxType {
		wantCtx = true
		pos++
	}
	wantSelf := false
	if pos < rt.NumIn() && rt.In(pos) == instanceType {
		wantSelf = true
		pos++
	}
	argParams := rt.NumIn() - pos

	return func(ctx context.Context, self *object.Instance, args ...any) (any, error) {
		if len(args) != argParams {
			return nil, errors.New(errors.PhaseCall, errors.KindInvalidInput).
				Detail("expected %d arguments, got %d", argParams, len(args)).
				Build()
		}
		if ctx == nil {
			ctx = context.Background()
		}

		in := make([]reflect.Value, 0, rt.NumIn())
		if wantCtx {
			in = append(in, reflect.ValueOf(ctx))
		}
		if wantSelf {
			in = append(in, reflect.ValueOf(self))
		}
		for i, arg := range args {
			av, err := convertArg(arg, rt.In(pos+i), i)
			if err != nil {
				return nil, err
			}
			in = append(in, av)
		}

		return splitResults(rt, rv.Call(in))
	}, nil
}

// convertArg converts a caller argument to the handler's parameter type.
// Numeric kinds convert across each other so JSON-decoded float64 values
// reach integer parameters.
func convertArg(arg any, want reflect.Type, index int) (reflect.Value, error) {
	path := []string{fmt.Sprintf("arg%d", index)}

	if arg == nil {
		switch want.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, errors.TypeMismatch(errors.PhaseCall, path, "nil", want.String())
	}

	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if isNumeric(av.Kind()) && isNumeric(want.Kind()) {
		return av.Convert(want), nil
	}
	return reflect.Value{}, errors.TypeMismatch(errors.PhaseCall, path, av.Type().String(), want.String())
}

func splitResults(rt reflect.Type, out []reflect.Value) (any, error) {
	switch rt.NumOut() {
	case 0:
		return nil, nil
	case 1:
		if rt.Out(0) == errType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
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

// toLowerCamel converts PascalCase to lowerCamelCase.
// Handles acronyms: HTTPGet -> httpGet, ID -> id
func toLowerCamel(s string) string {
	if len(s) == 0 {
		return ""
	}

	runes := []rune(s)
	if !unicode.IsUpper(runes[0]) {
		return s
	}

	acronymEnd := 1
	for acronymEnd < len(runes) && unicode.IsUpper(runes[acronymEnd]) {
		acronymEnd++
	}
	if acronymEnd > 1 && acronymEnd < len(runes) && unicode.IsLower(runes[acronymEnd]) {
		// Last uppercase before lowercase starts the next word, not part of the acronym
		acronymEnd--
	}

	var b strings.Builder
	for i := 0; i < acronymEnd; i++ {
		b.WriteRune(unicode.ToLower(runes[i]))
	}
	b.WriteString(string(runes[acronymEnd:]))
	return b.String()
}
