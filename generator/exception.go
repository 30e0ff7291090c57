package generator

import (
	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

// ExceptionSchema returns the schema of the wire format the codec package
// produces for exception values, with envelope keys rendered under the
// given naming policy. Extra properties of concrete error types surface as
// additional object members, so additionalProperties stays open. A nil
// policy means camelCase.
func ExceptionSchema(policy naming.Policy) *types.JSONSchema {
	if policy == nil {
		policy = naming.CamelCase{}
	}

	root := envelopeSchema(policy)
	root.Schema = "https://json-schema.org/draft/2020-12/schema"
	root.Title = "Exception"
	root.AddDefinition("exception", envelopeSchema(policy))
	return root
}

// envelopeSchema builds one level of the envelope: the four fixed members,
// all present on the wire, with the nullable ones marked in prose and the
// inner exception recursing through the shared definition.
func envelopeSchema(policy naming.Policy) *types.JSONSchema {
	open := true
	s := types.NewObjectSchema()
	s.AdditionalProperties = &open
	s.AddProperty(policy.Resolve("Message"), types.NewStringSchema().
		WithDescription("Human-readable error message."))
	s.AddProperty(policy.Resolve("StackTrace"), types.NewStringSchema().
		WithDescription("Captured stack trace, null when none was taken."))
	s.AddProperty(policy.Resolve("Source"), types.NewStringSchema().
		WithDescription("Component that raised the error, null when unset."))
	s.AddProperty(policy.Resolve("InnerException"), types.NewRefSchema("exception").
		WithDescription("Wrapped cause, null when the chain ends."))
	s.AddRequired(
		policy.Resolve("Message"),
		policy.Resolve("StackTrace"),
		policy.Resolve("Source"),
		policy.Resolve("InnerException"),
	)
	return s
}
