package introspect

import (
	"reflect"
	"strings"
)

// TypeArguments returns the type argument names of t when it is an
// instantiated generic type, e.g. ["string"] for Container[string]. When t
// itself carries no arguments, the ancestor chain is climbed until a base
// exposes some; nil when the chain is exhausted without finding any.
//
// The runtime does not expose instantiated type parameters as
// reflect.Type values, so arguments are reported as the names embedded in
// the type's display name. Arguments from other packages keep the
// qualification the runtime gives them.
func TypeArguments(t reflect.Type) []string {
	cur := deref(t)
	for cur != nil {
		if args := ownTypeArguments(cur); len(args) > 0 {
			return args
		}
		base, ok := Base(cur)
		if !ok {
			return nil
		}
		cur = base
	}
	return nil
}

// SafeTypeName returns a name usable as a code identifier: the raw name of
// an instantiated generic joined with its first argument's safe name, e.g.
// "ContainerOfString" for Container[string], recursively for nested
// generics. Non-generic named types return their plain name; unnamed
// types return their display string unchanged.
func SafeTypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() == "" {
		return t.String()
	}
	return safeName(t.Name())
}

// ownTypeArguments parses the arguments out of t's own name without
// climbing. Unnamed types never carry arguments.
func ownTypeArguments(t reflect.Type) []string {
	if t == nil || t.Name() == "" {
		return nil
	}
	open := strings.IndexByte(t.Name(), '[')
	if open < 0 || !strings.HasSuffix(t.Name(), "]") {
		return nil
	}
	return splitArguments(t.Name()[open+1 : len(t.Name())-1])
}

// splitArguments splits a bracket body on top-level commas, leaving the
// arguments of nested instantiations intact.
func splitArguments(body string) []string {
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(body[start:]))
	return args
}

func safeName(name string) string {
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return unqualify(name)
	}
	args := splitArguments(name[open+1 : len(name)-1])
	if len(args) == 0 || args[0] == "" {
		return unqualify(name[:open])
	}
	return unqualify(name[:open]) + "Of" + capitalize(safeName(args[0]))
}

// unqualify strips package qualification and pointer markers from an
// argument name as the runtime renders it.
func unqualify(name string) string {
	name = strings.TrimLeft(name, "*")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
