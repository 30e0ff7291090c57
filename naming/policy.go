// Package naming defines the property naming policies applied to JSON keys
// during serialization. Exactly one policy is active per serializer; all
// policies are stateless and safe for concurrent use.
package naming

import (
	"github.com/iancoleman/strcase"

	"github.com/BaSui01/schemaflow/types"
)

// Policy kinds, used to select a policy from configuration.
const (
	KindIdentity = "identity"
	KindCamel    = "camel"
	KindPascal   = "pascal"
	KindSnake    = "snake"
)

// Policy resolves a declared property name to its serialized JSON key.
type Policy interface {
	// Kind returns the stable identifier of the policy.
	Kind() string
	// Resolve maps a declared name to the key written on the wire.
	Resolve(name string) string
}

// Identity keeps declared names unchanged.
type Identity struct{}

// Kind implements Policy.
func (Identity) Kind() string { return KindIdentity }

// Resolve implements Policy.
func (Identity) Resolve(name string) string { return name }

// CamelCase lower-camel-cases declared names: "StackTrace" -> "stackTrace".
type CamelCase struct{}

// Kind implements Policy.
func (CamelCase) Kind() string { return KindCamel }

// Resolve implements Policy.
func (CamelCase) Resolve(name string) string { return strcase.ToLowerCamel(name) }

// PascalCase upper-camel-cases declared names: "stackTrace" -> "StackTrace".
type PascalCase struct{}

// Kind implements Policy.
func (PascalCase) Kind() string { return KindPascal }

// Resolve implements Policy.
func (PascalCase) Resolve(name string) string { return strcase.ToCamel(name) }

// SnakeCase snake-cases declared names: "StackTrace" -> "stack_trace".
type SnakeCase struct{}

// Kind implements Policy.
func (SnakeCase) Kind() string { return KindSnake }

// Resolve implements Policy.
func (SnakeCase) Resolve(name string) string { return strcase.ToSnake(name) }

// ByKind returns the policy registered under the given kind identifier.
func ByKind(kind string) (Policy, error) {
	switch kind {
	case KindIdentity:
		return Identity{}, nil
	case KindCamel:
		return CamelCase{}, nil
	case KindPascal:
		return PascalCase{}, nil
	case KindSnake:
		return SnakeCase{}, nil
	default:
		return nil, types.NewError(types.ErrUnknownPolicy, "unknown naming policy kind: "+kind)
	}
}

// Kinds lists the known policy kind identifiers.
func Kinds() []string {
	return []string{KindIdentity, KindCamel, KindPascal, KindSnake}
}
