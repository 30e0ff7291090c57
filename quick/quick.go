// =============================================================================
// Package quick — One-Line Serialization Entry Points
// =============================================================================
// Provides convenience entry points for serializing errors and generating
// schemas with minimal boilerplate. Delegates to codec.Serializer and
// generator.Generator internally.
//
// The package lives under quick/ (not root) so the root package can
// re-export it under the shorter import path.
//
// Usage:
//
//	import "github.com/BaSui01/schemaflow/quick"
//
//	data, err := quick.MarshalError(myErr)
//	data, err := quick.MarshalError(myErr, quick.WithPolicyKind("snake"))
//	schema, err := quick.Schema(MyRequest{}, quick.WithMaxDepth(5))
//
// =============================================================================
package quick

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/BaSui01/schemaflow/codec"
	"github.com/BaSui01/schemaflow/config"
	"github.com/BaSui01/schemaflow/generator"
	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

// Option configures the serializer and generator built by the entry points.
type Option func(*options)

type options struct {
	policy     naming.Policy
	policyKind string
	indent     string
	maxDepth   int
	titles     bool
	logger     *zap.Logger
	configPath string
}

// WithPolicy sets a pre-built naming policy.
func WithPolicy(p naming.Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithPolicyKind selects a naming policy by its kind identifier:
// identity, camel, pascal or snake.
func WithPolicyKind(kind string) Option {
	return func(o *options) { o.policyKind = kind }
}

// WithIndent pretty-prints output with the given indent string.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// WithMaxDepth bounds struct nesting during schema generation.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithTitles controls whether schemas carry type names as titles.
func WithTitles(include bool) Option {
	return func(o *options) { o.titles = include }
}

// WithLogger sets a custom zap logger. Defaults to zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithConfigFile loads defaults from a SchemaFlow YAML config file before
// the other options apply. Explicit options win over file values.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

func defaultOptions() *options {
	return &options{
		maxDepth: 10,
		titles:   true,
	}
}

// resolveOptions folds config file, defaults and explicit options together.
func resolveOptions(opts []Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.configPath != "" {
		cfg, err := config.NewLoader().
			WithConfigPath(o.configPath).
			WithValidator(func(c *config.Config) error { return c.Validate() }).
			Load()
		if err != nil {
			return nil, err
		}
		o = optionsFromConfig(cfg)
		// Explicit options win over file values.
		for _, opt := range opts {
			opt(o)
		}
	}

	if o.policy == nil {
		kind := o.policyKind
		if kind == "" {
			kind = naming.KindCamel
		}
		policy, err := naming.ByKind(kind)
		if err != nil {
			return nil, err
		}
		o.policy = policy
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o, nil
}

func optionsFromConfig(cfg *config.Config) *options {
	return &options{
		policyKind: cfg.Serializer.Policy,
		indent:     cfg.Serializer.Indent,
		maxDepth:   cfg.Generator.MaxDepth,
		titles:     cfg.Generator.IncludeTitles,
		logger:     config.NewLogger(cfg.Log),
	}
}

func (o *options) serializer() *codec.Serializer {
	s := codec.Default().WithPolicy(o.policy)
	if o.indent != "" {
		s = s.WithIndent(o.indent)
	}
	return s
}

func (o *options) generator() *generator.Generator {
	return generator.NewGenerator(
		generator.WithMaxDepth(o.maxDepth),
		generator.WithPolicy(o.policy),
		generator.WithTitles(o.titles),
		generator.WithLogger(o.logger),
	)
}

// MarshalError serializes an error into the exception wire format. Errors
// that do not carry the exception surface are promoted first, keeping
// their wrapped causes.
func MarshalError(e error, opts ...Option) ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	s := o.serializer()
	if _, ok := e.(types.ExceptionError); ok {
		return s.Marshal(e)
	}
	return s.Marshal(types.FromError(e))
}

// UnmarshalError decodes exception wire data into target, which must be a
// non-nil pointer to an exception-capable type.
func UnmarshalError(data []byte, target any, opts ...Option) error {
	o, err := resolveOptions(opts)
	if err != nil {
		return err
	}
	return o.serializer().Unmarshal(data, target)
}

// DecodeError decodes exception wire data into a base exception value.
func DecodeError(data []byte, opts ...Option) (*types.Exception, error) {
	var exc *types.Exception
	if err := UnmarshalError(data, &exc, opts...); err != nil {
		return nil, err
	}
	return exc, nil
}

// Schema derives the JSON Schema of v's dynamic type.
func Schema(v any, opts ...Option) (*types.JSONSchema, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return o.generator().Generate(v)
}

// SchemaJSON derives the JSON Schema of v's dynamic type and renders it,
// honoring WithIndent.
func SchemaJSON(v any, opts ...Option) ([]byte, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	schema, err := o.generator().Generate(v)
	if err != nil {
		return nil, err
	}
	if o.indent != "" {
		return json.MarshalIndent(schema, "", o.indent)
	}
	return schema.ToJSON()
}

// ErrorSchema returns the schema of the exception wire format under the
// resolved naming policy.
func ErrorSchema(opts ...Option) (*types.JSONSchema, error) {
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return generator.ExceptionSchema(o.policy), nil
}
