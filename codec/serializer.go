package codec

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

// Converter is a serialization plugin claiming specific Go types. The
// serializer consults converters in registration order and hands matched
// values to the first one that claims them.
type Converter interface {
	// CanConvert reports whether the converter handles values of type t.
	CanConvert(t reflect.Type) bool
	// Encode turns v into a JSON-encodable representation, typically an
	// ordered object. Nested values must already be fully encoded.
	Encode(s *Serializer, v any) (any, error)
	// Decode materializes a value of type t from raw JSON. A JSON null
	// yields (nil, nil).
	Decode(s *Serializer, data []byte, t reflect.Type) (any, error)
}

// Serializer encodes and decodes values, dispatching claimed types to
// registered converters and everything else to plain JSON handling. A
// Serializer is immutable after construction: the With* methods return
// clones, so serializers can be shared across goroutines and temporarily
// reshaped without affecting the caller's instance.
type Serializer struct {
	policy     naming.Policy
	converters []Converter
	indent     string
}

// NewSerializer creates a serializer with the camelCase naming policy and
// no converters registered.
func NewSerializer() *Serializer {
	return &Serializer{policy: naming.CamelCase{}}
}

// Default creates a serializer with the exception converter registered.
func Default() *Serializer {
	return NewSerializer().WithConverter(NewExceptionConverter())
}

// Policy returns the active naming policy.
func (s *Serializer) Policy() naming.Policy {
	return s.policy
}

// ResolveKey maps a declared property name through the active policy.
func (s *Serializer) ResolveKey(name string) string {
	if s.policy == nil {
		return name
	}
	return s.policy.Resolve(name)
}

// WithPolicy returns a clone using the given naming policy.
func (s *Serializer) WithPolicy(p naming.Policy) *Serializer {
	c := s.clone()
	c.policy = p
	return c
}

// WithConverter returns a clone with c appended to the converter list.
func (s *Serializer) WithConverter(c Converter) *Serializer {
	cl := s.clone()
	cl.converters = append(cl.converters, c)
	return cl
}

// WithoutConverter returns a clone with the given converter instance
// removed. Converters are matched by identity; an absent converter leaves
// the clone identical.
func (s *Serializer) WithoutConverter(c Converter) *Serializer {
	cl := s.clone()
	kept := make([]Converter, 0, len(cl.converters))
	for _, existing := range cl.converters {
		if existing != c {
			kept = append(kept, existing)
		}
	}
	cl.converters = kept
	return cl
}

// WithIndent returns a clone that pretty-prints output using the given
// indent string. An empty indent restores compact output.
func (s *Serializer) WithIndent(indent string) *Serializer {
	c := s.clone()
	c.indent = indent
	return c
}

// Converters returns a snapshot of the registered converters.
func (s *Serializer) Converters() []Converter {
	out := make([]Converter, len(s.converters))
	copy(out, s.converters)
	return out
}

func (s *Serializer) clone() *Serializer {
	converters := make([]Converter, len(s.converters))
	copy(converters, s.converters)
	return &Serializer{
		policy:     s.policy,
		converters: converters,
		indent:     s.indent,
	}
}

// converterFor returns the first registered converter claiming t.
func (s *Serializer) converterFor(t reflect.Type) (Converter, bool) {
	for _, c := range s.converters {
		if c.CanConvert(t) {
			return c, true
		}
	}
	return nil, false
}

// Marshal encodes v. Values claimed by a converter are encoded through it;
// everything else takes the plain JSON path.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	if t := reflect.TypeOf(v); t != nil {
		if c, ok := s.converterFor(t); ok {
			repr, err := c.Encode(s, v)
			if err != nil {
				return nil, err
			}
			return s.encodePlain(repr)
		}
	}
	return s.encodePlain(v)
}

// Unmarshal decodes data into v, which must be a non-nil pointer. When the
// pointed-to type is claimed by a converter the converter materializes the
// value; otherwise the plain JSON path is used.
func (s *Serializer) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return types.NewError(types.ErrUnsupportedType, "unmarshal target must be a non-nil pointer")
	}
	target := rv.Elem().Type()
	c, ok := s.converterFor(target)
	if !ok {
		if err := json.Unmarshal(data, v); err != nil {
			return types.NewError(types.ErrConversionFailure, "decode value").
				WithTypeName(target.String()).WithCause(err)
		}
		return nil
	}

	out, err := c.Decode(s, data, target)
	if err != nil {
		return err
	}
	if out == nil {
		rv.Elem().SetZero()
		return nil
	}
	ov := reflect.ValueOf(out)
	for ov.Kind() == reflect.Pointer && !ov.Type().AssignableTo(target) {
		ov = ov.Elem()
	}
	if !ov.Type().AssignableTo(target) {
		return types.NewError(types.ErrConversionFailure, "converter produced incompatible value").
			WithTypeName(target.String())
	}
	rv.Elem().Set(ov)
	return nil
}

func (s *Serializer) encodePlain(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if s.indent != "" {
		data, err = json.MarshalIndent(v, "", s.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, types.NewError(types.ErrConversionFailure, "encode value").WithCause(err)
	}
	return data, nil
}

// isJSONNull reports whether data is the JSON null literal.
func isJSONNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
