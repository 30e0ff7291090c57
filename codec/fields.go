package codec

import (
	"reflect"
	"strings"
	"sync"
)

// reservedNames are the property names owned by the exception envelope.
// Fields whose effective name collides with one of them never appear among
// the extra properties. Matching is case-sensitive and happens before the
// naming policy is applied.
var reservedNames = map[string]struct{}{
	"Message":        {},
	"StackTrace":     {},
	"Source":         {},
	"InnerException": {},
	"Data":           {},
	"TargetSite":     {},
	"HelpLink":       {},
	"HResult":        {},
}

// fieldInfo describes one exported struct field eligible as an extra
// property.
type fieldInfo struct {
	// Name is the effective declared name: the json tag override when
	// present, the Go field name otherwise. The naming policy is applied
	// to it at encode and decode time.
	Name string
	// Index is the reflect traversal path from the root struct.
	Index []int
	// Depth is the embedding depth, 0 for the struct's own fields.
	Depth int
}

var fieldCache = struct {
	sync.RWMutex
	m map[reflect.Type][]fieldInfo
}{m: make(map[reflect.Type][]fieldInfo)}

// cachedFields returns the extra-property fields of t, computing and
// caching them on first use. t must be a struct type.
func cachedFields(t reflect.Type) []fieldInfo {
	fieldCache.RLock()
	fields, ok := fieldCache.m[t]
	fieldCache.RUnlock()
	if ok {
		return fields
	}

	fields = collectFields(t, nil, 0)
	fields = resolveShadowing(fields)

	fieldCache.Lock()
	fieldCache.m[t] = fields
	fieldCache.Unlock()
	return fields
}

// collectFields walks t depth-first in declaration order, descending into
// embedded structs so inherited properties participate like the type's
// own. Unexported fields, json:"-" fields and reserved names are skipped.
func collectFields(t reflect.Type, index []int, depth int) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		path := append(append([]int(nil), index...), i)

		if f.Anonymous {
			// An embedded field with its own json tag behaves like a named
			// field, matching encoding/json.
			if _, tagged := f.Tag.Lookup("json"); !tagged {
				ft := f.Type
				if ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					fields = append(fields, collectFields(ft, path, depth+1)...)
					continue
				}
			}
		}
		if f.PkgPath != "" {
			continue
		}

		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if _, reserved := reservedNames[name]; reserved {
			continue
		}
		fields = append(fields, fieldInfo{Name: name, Index: path, Depth: depth})
	}
	return fields
}

// resolveShadowing keeps, for each effective name, only the occurrence at
// the smallest embedding depth, preserving discovery order otherwise.
func resolveShadowing(fields []fieldInfo) []fieldInfo {
	minDepth := make(map[string]int, len(fields))
	for _, f := range fields {
		if d, ok := minDepth[f.Name]; !ok || f.Depth < d {
			minDepth[f.Name] = f.Depth
		}
	}
	kept := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Depth != minDepth[f.Name] {
			continue
		}
		if _, dup := seen[f.Name]; dup {
			continue
		}
		seen[f.Name] = struct{}{}
		kept = append(kept, f)
	}
	return kept
}

// fieldByIndex walks the index path for reading, stopping at nil embedded
// pointers. The second return is false when the path is unreachable.
func fieldByIndex(v reflect.Value, index []int) (reflect.Value, bool) {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					return reflect.Value{}, false
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v, true
}

// fieldByIndexAlloc walks the index path for writing, allocating nil
// embedded pointers along the way.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for n, i := range index {
		if n > 0 {
			if v.Kind() == reflect.Pointer {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(i)
	}
	return v
}
