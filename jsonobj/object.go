// Package jsonobj provides an insertion-ordered JSON object model. The
// standard map-backed decoding loses document order; Object keeps it, which
// the codec relies on to place envelope and extra properties precisely.
package jsonobj

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/BaSui01/schemaflow/types"
)

// Entry is a single key/value pair of an Object.
type Entry struct {
	Key   string
	Value any
}

// Object is an ordered string-to-value mapping. The zero value is an empty
// object ready for use. Nil values serialize as JSON null and are never
// omitted.
type Object struct {
	entries []Entry
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{}
}

// ParseObject parses a JSON document into an ordered object, preserving
// the key order of the input. Non-object documents are rejected.
func ParseObject(data []byte) (*Object, error) {
	o := NewObject()
	if err := o.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return o, nil
}

// Append adds a key/value pair at the end of the object.
func (o *Object) Append(key string, value any) *Object {
	o.entries = append(o.entries, Entry{Key: key, Value: value})
	return o
}

// Prepend inserts a key/value pair at the front of the object.
func (o *Object) Prepend(key string, value any) *Object {
	o.entries = append([]Entry{{Key: key, Value: value}}, o.entries...)
	return o
}

// Set replaces the value under key in place, appending when absent.
func (o *Object) Set(key string, value any) *Object {
	for i := range o.entries {
		if o.entries[i].Key == key {
			o.entries[i].Value = value
			return o
		}
	}
	return o.Append(key, value)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	for i := range o.entries {
		if o.entries[i].Key == key {
			return o.entries[i].Value, true
		}
	}
	return nil, false
}

// GetRaw returns the raw JSON stored under key. It reports false when the
// key is absent or the value was not produced by parsing.
func (o *Object) GetRaw(key string) (json.RawMessage, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	raw, ok := v.(json.RawMessage)
	return raw, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes the entry under key, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	for i := range o.entries {
		if o.entries[i].Key == key {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns a snapshot of the entries in document order.
func (o *Object) Entries() []Entry {
	out := make([]Entry, len(o.entries))
	copy(out, o.entries)
	return out
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.entries)
}

// MarshalJSON writes the entries in document order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, types.NewError(types.ErrConversionFailure, "marshal object key").
				WithField(e.Key).WithCause(err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, types.NewError(types.ErrConversionFailure, "marshal object value").
				WithField(e.Key).WithCause(err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the object's entries with the document's,
// preserving key order. Values are stored as json.RawMessage and converted
// lazily by the consumer.
func (o *Object) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return types.NewError(types.ErrInvalidDocument, "malformed JSON document")
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return types.NewError(types.ErrInvalidDocument, "expected a JSON object")
	}
	o.entries = o.entries[:0]
	parsed.ForEach(func(key, value gjson.Result) bool {
		o.entries = append(o.entries, Entry{
			Key:   key.String(),
			Value: json.RawMessage(value.Raw),
		})
		return true
	})
	return nil
}
