package introspect

import "reflect"

// NameStyle selects how a type name is rendered for matching.
type NameStyle int

const (
	// StyleName matches against the simple type name, e.g. "Exception".
	StyleName NameStyle = iota
	// StyleFullName matches against the package-path-qualified name,
	// e.g. "github.com/BaSui01/schemaflow/types.Exception".
	StyleFullName
)

// TypeName renders the name of t in the given style. Unnamed types fall
// back to their display string in both styles; builtin types carry no
// package path and render as their plain name. A nil type yields "".
func TypeName(t reflect.Type, style NameStyle) string {
	if t == nil {
		return ""
	}
	name := t.Name()
	if name == "" {
		return t.String()
	}
	if style == StyleFullName && t.PkgPath() != "" {
		return t.PkgPath() + "." + name
	}
	return name
}

// Base returns the ancestor of t: the type of its first embedded struct
// field, pointers dereferenced. It reports false when t is not a struct
// or embeds no struct. Embedded interfaces and non-struct types do not
// participate in the ancestor chain.
func Base(t reflect.Type) (reflect.Type, bool) {
	t = deref(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := deref(f.Type)
		if ft.Kind() == reflect.Struct {
			return ft, true
		}
	}
	return nil, false
}

// IsAssignableToTypeName reports whether t itself or any of its ancestors
// carries the given name. A nil type never matches.
func IsAssignableToTypeName(t reflect.Type, name string, style NameStyle) bool {
	cur := deref(t)
	for cur != nil {
		if TypeName(cur, style) == name {
			return true
		}
		base, ok := Base(cur)
		if !ok {
			return false
		}
		cur = base
	}
	return false
}

// InheritsFromTypeName reports whether a strict ancestor of t carries the
// given name. The type itself is excluded from the match.
func InheritsFromTypeName(t reflect.Type, name string, style NameStyle) bool {
	base, ok := Base(t)
	if !ok {
		return false
	}
	return IsAssignableToTypeName(base, name, style)
}

// FirstByTypeName returns the first element of items whose dynamic type
// carries exactly the given name, with pointers dereferenced before
// naming. It reports false when no element matches; a miss is not an
// error. Nil elements are skipped.
func FirstByTypeName(items []any, name string, style NameStyle) (any, bool) {
	for _, item := range items {
		t := reflect.TypeOf(item)
		if t == nil {
			continue
		}
		if TypeName(deref(t), style) == name {
			return item, true
		}
	}
	return nil, false
}

// FirstAssignableToTypeName returns the first element of items whose
// dynamic type or any of its ancestors carries the given name. It reports
// false when no element matches.
func FirstAssignableToTypeName(items []any, name string, style NameStyle) (any, bool) {
	for _, item := range items {
		t := reflect.TypeOf(item)
		if t == nil {
			continue
		}
		if IsAssignableToTypeName(t, name, style) {
			return item, true
		}
	}
	return nil, false
}

func deref(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
