package codec

import (
	"encoding/json"
	"reflect"
	"sync"

	"github.com/BaSui01/schemaflow/introspect"
	"github.com/BaSui01/schemaflow/jsonobj"
	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/types"
)

// exceptionTypeName is the simple name the converter claims types by.
const exceptionTypeName = "Exception"

var (
	exceptionErrorType = reflect.TypeOf((*types.ExceptionError)(nil)).Elem()
	exceptionPtrType   = reflect.TypeOf((*types.Exception)(nil))
)

// ExceptionConverter is the serialization plugin for exception values. It
// writes a fixed envelope of message, stackTrace, source and innerException
// under the active naming policy, with the concrete type's own exported
// fields prepended in front of the envelope, and restores all of it on
// decode through the types.ExceptionWriter surface.
type ExceptionConverter struct {
	defaultOnce   sync.Once
	defaultPolicy naming.Policy
}

// NewExceptionConverter creates the converter. A single instance can serve
// any number of serializers concurrently.
func NewExceptionConverter() *ExceptionConverter {
	return &ExceptionConverter{}
}

// CanConvert implements Converter. A type is claimed when it or one of its
// embedded ancestors is named "Exception", or when it implements
// types.ExceptionError.
func (c *ExceptionConverter) CanConvert(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if introspect.IsAssignableToTypeName(t, exceptionTypeName, introspect.StyleName) {
		return true
	}
	if t.Implements(exceptionErrorType) {
		return true
	}
	return reflect.PointerTo(t).Implements(exceptionErrorType)
}

// activePolicy returns the serializer's policy when it is one of the
// recognized kinds, falling back to the converter's own default otherwise.
// The default is built once on first use.
func (c *ExceptionConverter) activePolicy(s *Serializer) naming.Policy {
	if p := s.Policy(); p != nil {
		if _, err := naming.ByKind(p.Kind()); err == nil {
			return p
		}
	}
	c.defaultOnce.Do(func() {
		c.defaultPolicy = naming.CamelCase{}
	})
	return c.defaultPolicy
}

// Encode implements Converter. The resulting object carries the concrete
// type's extra properties first, in reverse discovery order, followed by
// the envelope. Envelope keys are always present, null when unset; extra
// properties with nil values are omitted.
func (c *ExceptionConverter) Encode(s *Serializer, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}
	exc, ok := v.(types.ExceptionError)
	if !ok {
		return nil, types.NewError(types.ErrUnsupportedType, "value does not expose the exception surface").
			WithTypeName(introspect.TypeName(rv.Type(), introspect.StyleFullName))
	}

	policy := c.activePolicy(s)
	obj := jsonobj.NewObject()
	obj.Append(policy.Resolve("Message"), exc.Message())
	obj.Append(policy.Resolve("StackTrace"), nullableString(exc.StackTrace()))
	obj.Append(policy.Resolve("Source"), nullableString(exc.Source()))

	if cause := exc.Cause(); cause != nil {
		nested, err := c.encodeCause(s, cause)
		if err != nil {
			return nil, err
		}
		obj.Append(policy.Resolve("InnerException"), nested)
	} else {
		obj.Append(policy.Resolve("InnerException"), nil)
	}

	sv := reflect.Indirect(rv)
	if sv.Kind() == reflect.Struct {
		for _, f := range cachedFields(sv.Type()) {
			fv, reachable := fieldByIndex(sv, f.Index)
			if !reachable || isNilValue(fv) {
				continue
			}
			encoded, err := s.Marshal(fv.Interface())
			if err != nil {
				return nil, types.NewError(types.ErrConversionFailure, "encode extra property").
					WithField(f.Name).WithTypeName(sv.Type().String()).WithCause(err)
			}
			obj.Prepend(policy.Resolve(f.Name), json.RawMessage(encoded))
		}
	}
	return obj, nil
}

// encodeCause encodes a wrapped cause. Exception values re-enter the
// serializer so the converter applies recursively; plain errors are
// rendered as an envelope built from the error interface alone, with their
// own wrapped causes carried over.
func (c *ExceptionConverter) encodeCause(s *Serializer, cause error) (json.RawMessage, error) {
	if _, ok := cause.(types.ExceptionError); ok {
		data, err := s.Marshal(cause)
		if err != nil {
			return nil, err
		}
		return json.RawMessage(data), nil
	}

	policy := c.activePolicy(s)
	obj := jsonobj.NewObject()
	obj.Append(policy.Resolve("Message"), cause.Error())
	obj.Append(policy.Resolve("StackTrace"), nil)
	obj.Append(policy.Resolve("Source"), nil)
	if next := unwrapCause(cause); next != nil {
		nested, err := c.encodeCause(s, next)
		if err != nil {
			return nil, err
		}
		obj.Append(policy.Resolve("InnerException"), nested)
	} else {
		obj.Append(policy.Resolve("InnerException"), nil)
	}
	data, err := obj.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Decode implements Converter. The value is materialized with this
// converter removed from the serializer, extra properties are assigned
// through exported fields, and the envelope is restored through the
// types.ExceptionWriter surface. A target without that surface is a hard
// lookup failure.
func (c *ExceptionConverter) Decode(s *Serializer, data []byte, t reflect.Type) (any, error) {
	if isJSONNull(data) {
		return nil, nil
	}
	obj, err := jsonobj.ParseObject(data)
	if err != nil {
		return nil, err
	}

	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if base.Kind() != reflect.Struct {
		return nil, types.NewError(types.ErrLookupFailure, "decode target is not a struct").
			WithTypeName(base.String())
	}

	pv := reflect.New(base)
	initEmbeddedPointers(pv.Elem())
	writer, ok := pv.Interface().(types.ExceptionWriter)
	if !ok {
		return nil, types.NewError(types.ErrLookupFailure, "target does not expose the exception writer surface").
			WithTypeName(introspect.TypeName(base, introspect.StyleFullName))
	}

	policy := c.activePolicy(s)
	scratch := s.WithoutConverter(c)

	for _, f := range cachedFields(base) {
		raw, present := obj.GetRaw(policy.Resolve(f.Name))
		if !present {
			continue
		}
		fv := fieldByIndexAlloc(pv.Elem(), f.Index)
		if !fv.CanAddr() {
			continue
		}
		if err := scratch.Unmarshal(raw, fv.Addr().Interface()); err != nil {
			return nil, types.NewError(types.ErrConversionFailure, "decode extra property").
				WithField(f.Name).WithTypeName(base.String()).WithCause(err)
		}
	}

	message, err := c.stringField(obj, policy, "Message")
	if err != nil {
		return nil, err
	}
	writer.SetMessage(message)

	stackTrace, err := c.stringField(obj, policy, "StackTrace")
	if err != nil {
		return nil, err
	}
	writer.SetStackTrace(stackTrace)

	source, err := c.stringField(obj, policy, "Source")
	if err != nil {
		return nil, err
	}
	writer.SetSource(source)

	if raw, present := obj.GetRaw(policy.Resolve("InnerException")); present && !isJSONNull(raw) {
		inner, err := c.Decode(s, raw, exceptionPtrType)
		if err != nil {
			return nil, err
		}
		if cause, ok := inner.(*types.Exception); ok && cause != nil {
			writer.SetCause(cause)
		}
	}

	if t.Kind() == reflect.Pointer {
		return pv.Interface(), nil
	}
	return pv.Elem().Interface(), nil
}

// stringField reads a nullable string envelope member; an absent key or a
// JSON null yields the empty string.
func (c *ExceptionConverter) stringField(obj *jsonobj.Object, policy naming.Policy, name string) (string, error) {
	raw, present := obj.GetRaw(policy.Resolve(name))
	if !present || isJSONNull(raw) {
		return "", nil
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", types.NewError(types.ErrConversionFailure, "decode envelope member").
			WithField(name).WithCause(err)
	}
	return out, nil
}

// nullableString maps the empty string to JSON null.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// unwrapCause follows the standard unwrap chain.
func unwrapCause(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}

// isNilValue reports whether a field value would serialize as an absent
// optional: nil pointers, interfaces, slices and maps.
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// initEmbeddedPointers allocates nil embedded struct pointers so the
// writer surface promoted through them is callable.
func initEmbeddedPointers(v reflect.Value) {
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct {
			if fv.IsNil() && fv.CanSet() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			if !fv.IsNil() {
				initEmbeddedPointers(fv.Elem())
			}
			continue
		}
		if fv.Kind() == reflect.Struct {
			initEmbeddedPointers(fv)
		}
	}
}

var _ Converter = (*ExceptionConverter)(nil)
