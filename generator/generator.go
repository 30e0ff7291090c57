package generator

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

var (
	timeType       = reflect.TypeOf(time.Time{})
	uuidType       = reflect.TypeOf(uuid.UUID{})
	rawMessageType = reflect.TypeOf(json.RawMessage{})
	byteSliceType  = reflect.TypeOf([]byte(nil))
)

// Generator derives JSON Schema documents from Go types using reflection.
// Construct it with NewGenerator; a single Generator is safe for concurrent
// use and caches one schema per root type.
type Generator struct {
	maxDepth      int
	includeTitles bool
	policy        naming.Policy
	logger        *zap.Logger

	cacheMu sync.RWMutex
	cache   map[reflect.Type]*types.JSONSchema
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxDepth bounds struct nesting; deeper levels collapse to a generic
// object. The default is 10.
func WithMaxDepth(depth int) Option {
	return func(g *Generator) { g.maxDepth = depth }
}

// WithTitles controls whether struct type names are emitted as schema
// titles. Enabled by default.
func WithTitles(include bool) Option {
	return func(g *Generator) { g.includeTitles = include }
}

// WithPolicy sets the naming policy applied to untagged field names.
// Defaults to camelCase; json tags always win over the policy.
func WithPolicy(p naming.Policy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// NewGenerator creates a schema generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		maxDepth:      10,
		includeTitles: true,
		policy:        naming.CamelCase{},
		logger:        zap.NewNop(),
		cache:         make(map[reflect.Type]*types.JSONSchema),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate derives the schema of v's dynamic type.
func (g *Generator) Generate(v any) (*types.JSONSchema, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, types.NewError(types.ErrSchemaGeneration, "cannot generate schema for nil")
	}
	return g.GenerateType(t)
}

// GenerateType derives the schema of t. Only struct types (or pointers to
// them) are accepted at the root.
func (g *Generator) GenerateType(t reflect.Type) (*types.JSONSchema, error) {
	if t == nil {
		return nil, types.NewError(types.ErrSchemaGeneration, "cannot generate schema for nil type")
	}
	root := t
	for root.Kind() == reflect.Pointer {
		root = root.Elem()
	}
	if root.Kind() != reflect.Struct {
		return nil, types.NewError(types.ErrUnsupportedKind, "schema root must be a struct").
			WithTypeName(root.String())
	}

	g.cacheMu.RLock()
	cached, ok := g.cache[root]
	g.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	g.logger.Debug("generating schema", zap.String("type", root.String()))

	schema, err := g.structSchema(root, newVisit())
	if err != nil {
		return nil, err
	}
	schema.Schema = "https://json-schema.org/draft/2020-12/schema"

	g.cacheMu.Lock()
	g.cache[root] = schema
	g.cacheMu.Unlock()
	return schema, nil
}

// visit tracks the traversal state of a single generation pass.
type visit struct {
	depth int
	seen  map[reflect.Type]bool
}

func newVisit() *visit {
	return &visit{seen: make(map[reflect.Type]bool)}
}

func (v *visit) enter(t reflect.Type) *visit {
	seen := make(map[reflect.Type]bool, len(v.seen)+1)
	for k := range v.seen {
		seen[k] = true
	}
	seen[t] = true
	return &visit{depth: v.depth + 1, seen: seen}
}

// structSchema builds an object schema from a struct type, flattening
// embedded structs so promoted fields appear as the type's own.
func (g *Generator) structSchema(t reflect.Type, v *visit) (*types.JSONSchema, error) {
	schema := types.NewObjectSchema()
	if g.includeTitles && t.Name() != "" {
		schema.Title = t.Name()
	}
	if err := g.addStructFields(schema, t, v.enter(t)); err != nil {
		return nil, err
	}
	return schema, nil
}

func (g *Generator) addStructFields(schema *types.JSONSchema, t reflect.Type, v *visit) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !isLeafType(ft) {
				if err := g.addStructFields(schema, ft, v); err != nil {
					return err
				}
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		name, skip := g.fieldName(field)
		if skip {
			continue
		}

		prop, err := g.typeSchema(field.Type, field.Tag, v)
		if err != nil {
			return types.NewError(types.ErrSchemaGeneration, "generate field schema").
				WithField(field.Name).WithTypeName(t.String()).WithCause(err)
		}
		applyFieldTags(prop, field.Tag)
		schema.AddProperty(name, prop)

		if isFieldRequired(field) {
			schema.AddRequired(name)
		}
	}
	return nil
}

// fieldName resolves the serialized property name: an explicit json tag
// wins, untagged fields go through the naming policy.
func (g *Generator) fieldName(field reflect.StructField) (name string, skip bool) {
	if tag, ok := field.Tag.Lookup("json"); ok {
		tagName, _, _ := splitTag(tag)
		if tagName == "-" {
			return "", true
		}
		if tagName != "" {
			return tagName, false
		}
	}
	return g.policy.Resolve(field.Name), false
}

// typeSchema maps a Go type to its schema, dispatching on kind with
// special cases for well-known types.
func (g *Generator) typeSchema(t reflect.Type, tag reflect.StructTag, v *visit) (*types.JSONSchema, error) {
	if t.Kind() == reflect.Pointer {
		return g.typeSchema(t.Elem(), tag, v)
	}

	switch t {
	case timeType:
		return types.NewStringSchema().WithFormat(types.FormatDateTime), nil
	case uuidType:
		return types.NewStringSchema().WithFormat(types.FormatUUID), nil
	case rawMessageType:
		return anyObjectSchema(), nil
	case byteSliceType:
		// encoding/json represents []byte as a base64 string.
		return types.NewStringSchema(), nil
	}

	switch t.Kind() {
	case reflect.String:
		return types.NewStringSchema(), nil
	case reflect.Bool:
		return types.NewBooleanSchema(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.NewIntegerSchema(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s := types.NewIntegerSchema()
		zero := 0.0
		s.Minimum = &zero
		return s, nil
	case reflect.Float32, reflect.Float64:
		return types.NewNumberSchema(), nil
	case reflect.Slice, reflect.Array:
		items, err := g.typeSchema(t.Elem(), "", v)
		if err != nil {
			return nil, err
		}
		return types.NewArraySchema(items), nil
	case reflect.Map:
		return anyObjectSchema(), nil
	case reflect.Interface:
		return anyObjectSchema(), nil
	case reflect.Struct:
		if v.depth >= g.maxDepth || v.seen[t] {
			// Depth or cycle boundary: collapse to a generic object.
			return anyObjectSchema(), nil
		}
		return g.structSchema(t, v)
	default:
		return nil, types.NewError(types.ErrUnsupportedKind, "no schema mapping for kind "+t.Kind().String()).
			WithTypeName(t.String())
	}
}

// isLeafType reports whether a struct type has a dedicated scalar mapping
// and must not be flattened when embedded.
func isLeafType(t reflect.Type) bool {
	return t == timeType || t == uuidType
}

func anyObjectSchema() *types.JSONSchema {
	s := types.NewObjectSchema()
	open := true
	s.AdditionalProperties = &open
	return s
}
