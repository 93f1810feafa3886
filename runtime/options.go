package runtime

import (
	"math"
	"strings"

	objectruntime "github.com/wippyai/object-runtime"
	"github.com/wippyai/object-runtime/object"
)

// ResolveOptions binds loose argument values to the comma-separated names
// declared in names, returning the resulting option map.
//
// Two modes exist. If the first value is a mapping (object.Properties,
// map[string]any, or any Getter including *object.Instance) and at least
// one declared name resolves to a truthy entry in it, named mode applies:
// exactly those truthy declared entries are copied and every other value is
// ignored. Otherwise values bind positionally, left to right; extra values
// are dropped and names beyond the value list stay absent.
//
// Truthiness follows scripting rules: nil, false, zero numbers, NaN and
// empty strings are falsy; everything else, including empty maps, is
// truthy. A leading mapping whose declared entries are all falsy is not
// consumed as options; it binds positionally to the first name.
func ResolveOptions(names string, values ...any) object.Properties {
	declared := splitNames(names)
	result := object.Properties{}

	if len(values) > 0 {
		if lookup, ok := lookupFunc(values[0]); ok {
			named := false
			for _, name := range declared {
				if v, found := lookup(name); found && truthy(v) {
					result[name] = v
					named = true
				}
			}
			if named {
				return result
			}
		}
	}

	for i, name := range declared {
		if i >= len(values) {
			break
		}
		result[name] = values[i]
	}
	return result
}

func splitNames(names string) []string {
	parts := strings.Split(names, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// lookupFunc returns a by-name accessor when v is a usable mapping.
func lookupFunc(v any) (func(name string) (any, bool), bool) {
	switch m := v.(type) {
	case object.Properties:
		return m.Get, true
	case map[string]any:
		return func(name string) (any, bool) {
			val, ok := m[name]
			return val, ok
		}, true
	case objectruntime.Getter:
		return m.Get, true
	}
	return nil, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case float64:
		return t != 0 && !math.IsNaN(t)
	}
	return true
}
