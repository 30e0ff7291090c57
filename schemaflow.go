// Package schemaflow provides a top-level convenience entry point for
// serializing errors and generating JSON Schemas with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/schemaflow"
//
//	data, err := schemaflow.MarshalError(myErr)
//	data, err := schemaflow.MarshalError(myErr, schemaflow.WithPolicyKind("snake"))
//	schema, err := schemaflow.Schema(MyRequest{})
//
// This is a thin wrapper around the quick package; both produce identical
// results. Use this package when you prefer the shorter import path.
package schemaflow

import (
	"github.com/BaSui01/schemaflow/quick"
	"github.com/BaSui01/schemaflow/types"
)

// Option configures the serializer and generator behind the entry points.
type Option = quick.Option

// MarshalError serializes an error into the exception wire format.
func MarshalError(e error, opts ...Option) ([]byte, error) {
	return quick.MarshalError(e, opts...)
}

// UnmarshalError decodes exception wire data into target.
func UnmarshalError(data []byte, target any, opts ...Option) error {
	return quick.UnmarshalError(data, target, opts...)
}

// DecodeError decodes exception wire data into a base [types.Exception].
func DecodeError(data []byte, opts ...Option) (*types.Exception, error) {
	return quick.DecodeError(data, opts...)
}

// Schema derives the JSON Schema of v's dynamic type.
func Schema(v any, opts ...Option) (*types.JSONSchema, error) {
	return quick.Schema(v, opts...)
}

// SchemaJSON derives the JSON Schema of v's dynamic type and renders it.
func SchemaJSON(v any, opts ...Option) ([]byte, error) {
	return quick.SchemaJSON(v, opts...)
}

// ErrorSchema returns the schema of the exception wire format.
func ErrorSchema(opts ...Option) (*types.JSONSchema, error) {
	return quick.ErrorSchema(opts...)
}

// Re-export options so callers never need to import quick/.

// WithPolicy sets a pre-built naming policy.
var WithPolicy = quick.WithPolicy

// WithPolicyKind selects a naming policy by kind: identity, camel, pascal, snake.
var WithPolicyKind = quick.WithPolicyKind

// WithIndent pretty-prints output with the given indent string.
var WithIndent = quick.WithIndent

// WithMaxDepth bounds struct nesting during schema generation.
var WithMaxDepth = quick.WithMaxDepth

// WithTitles controls whether schemas carry type names as titles.
var WithTitles = quick.WithTitles

// WithLogger sets a custom zap logger.
var WithLogger = quick.WithLogger

// WithConfigFile loads defaults from a SchemaFlow YAML config file.
var WithConfigFile = quick.WithConfigFile
