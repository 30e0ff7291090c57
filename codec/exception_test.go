package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/schemaflow/jsonobj"
	"github.com/BaSui01/schemaflow/naming"
	"github.com/BaSui01/schemaflow/testutil"
	"github.com/BaSui01/schemaflow/types"
)

type validationError struct {
	types.Exception
	Code int
}

type requestError struct {
	types.Exception
	Status int    `json:"status"`
	URL    string `json:"url"`
}

type ioError struct {
	types.Exception
	Path    string   `json:"path"`
	Retries *int     `json:"retries"`
	Tags    []string `json:"tags"`
}

type reservedError struct {
	types.Exception
	Data    map[string]string
	HResult int
	Target  string `json:"TargetSite"`
	Kept    string `json:"kept"`
}

type detachedError struct {
	*types.Exception
	Code int `json:"code"`
}

// Exception collides with the name the converter claims while exposing
// neither the readable nor the writable surface.
type Exception struct {
	Note string `json:"note"`
}

func TestExceptionConverter_EnvelopeShape(t *testing.T) {
	s := Default()

	exc := &validationError{Code: 42}
	exc.SetMessage("boom")

	data, err := s.Marshal(exc)
	require.NoError(t, err)

	assert.Equal(t,
		`{"code":42,"message":"boom","stackTrace":null,"source":null,"innerException":null}`,
		string(data))
	testutil.AssertKeysInOrder(t, data, "code", "message", "stackTrace", "source", "innerException")
}

func TestExceptionConverter_ExtrasPrecedeEnvelopeReversed(t *testing.T) {
	s := Default()

	exc := &requestError{Status: 503, URL: "https://example.com"}
	exc.SetMessage("upstream unavailable")

	data, err := s.Marshal(exc)
	require.NoError(t, err)

	testutil.AssertKeysInOrder(t, data, "url", "status", "message", "stackTrace", "source", "innerException")
}

func TestExceptionConverter_StackAndSourceRendered(t *testing.T) {
	s := Default()

	exc := types.NewException("disk full").WithSource("storage")
	data, err := s.Marshal(exc)
	require.NoError(t, err)

	obj, err := jsonobj.ParseObject(data)
	require.NoError(t, err)

	raw, ok := obj.GetRaw("source")
	require.True(t, ok)
	assert.Equal(t, `"storage"`, string(raw))

	raw, ok = obj.GetRaw("stackTrace")
	require.True(t, ok)
	assert.Contains(t, string(raw), "TestExceptionConverter_StackAndSourceRendered")
}

func TestExceptionConverter_InnerExceptionChain(t *testing.T) {
	s := Default()

	leaf := types.NewException("leaf")
	mid := types.WrapException("mid", leaf)
	root := types.WrapException("root", mid)

	data, err := s.Marshal(root)
	require.NoError(t, err)

	obj, err := jsonobj.ParseObject(data)
	require.NoError(t, err)
	raw, ok := obj.GetRaw("innerException")
	require.True(t, ok)

	inner, err := jsonobj.ParseObject(raw)
	require.NoError(t, err)
	rawMsg, ok := inner.GetRaw("message")
	require.True(t, ok)
	assert.Equal(t, `"mid"`, string(rawMsg))

	rawLeaf, ok := inner.GetRaw("innerException")
	require.True(t, ok)
	leafObj, err := jsonobj.ParseObject(rawLeaf)
	require.NoError(t, err)
	rawMsg, ok = leafObj.GetRaw("message")
	require.True(t, ok)
	assert.Equal(t, `"leaf"`, string(rawMsg))
	assert.Equal(t, []string{"message", "stackTrace", "source", "innerException"}, leafObj.Keys())
}

func TestExceptionConverter_PlainErrorCause(t *testing.T) {
	s := Default()

	cause := fmt.Errorf("query failed: %w", errors.New("connection reset"))
	root := types.WrapException("request aborted", cause)

	data, err := s.Marshal(root)
	require.NoError(t, err)

	obj, err := jsonobj.ParseObject(data)
	require.NoError(t, err)
	raw, ok := obj.GetRaw("innerException")
	require.True(t, ok)

	inner, err := jsonobj.ParseObject(raw)
	require.NoError(t, err)
	testutil.AssertKeysInOrder(t, raw, "message", "stackTrace", "source", "innerException")

	rawMsg, _ := inner.GetRaw("message")
	assert.Equal(t, `"query failed: connection reset"`, string(rawMsg))
	rawStack, _ := inner.GetRaw("stackTrace")
	assert.Equal(t, "null", string(rawStack), "plain errors carry no stack")

	rawNested, ok := inner.GetRaw("innerException")
	require.True(t, ok)
	nested, err := jsonobj.ParseObject(rawNested)
	require.NoError(t, err)
	rawMsg, _ = nested.GetRaw("message")
	assert.Equal(t, `"connection reset"`, string(rawMsg))
}

func TestExceptionConverter_NilExtrasOmitted(t *testing.T) {
	s := Default()

	exc := &ioError{Path: "/tmp/out"}
	exc.SetMessage("write failed")

	data, err := s.Marshal(exc)
	require.NoError(t, err)

	obj, err := jsonobj.ParseObject(data)
	require.NoError(t, err)
	assert.False(t, obj.Has("retries"), "nil pointer extras are omitted")
	assert.False(t, obj.Has("tags"), "nil slice extras are omitted")
	assert.True(t, obj.Has("path"))

	retries := 3
	exc.Retries = &retries
	exc.Tags = []string{"io"}
	data, err = s.Marshal(exc)
	require.NoError(t, err)

	obj, err = jsonobj.ParseObject(data)
	require.NoError(t, err)
	raw, ok := obj.GetRaw("retries")
	require.True(t, ok)
	assert.Equal(t, "3", string(raw))
	assert.True(t, obj.Has("tags"))
}

func TestExceptionConverter_ReservedNamesExcluded(t *testing.T) {
	s := Default()

	exc := &reservedError{
		Data:    map[string]string{"k": "v"},
		HResult: -2147024894,
		Target:  "site",
		Kept:    "stays",
	}
	exc.SetMessage("reserved fields stay off the wire")

	data, err := s.Marshal(exc)
	require.NoError(t, err)

	obj, err := jsonobj.ParseObject(data)
	require.NoError(t, err)
	for _, key := range []string{"Data", "data", "HResult", "hResult", "TargetSite", "targetSite"} {
		assert.False(t, obj.Has(key), "key %s must be excluded", key)
	}
	raw, ok := obj.GetRaw("kept")
	require.True(t, ok)
	assert.Equal(t, `"stays"`, string(raw))
}

func TestExceptionConverter_NamingPolicies(t *testing.T) {
	tests := []struct {
		name     string
		policy   naming.Policy
		expected []string
	}{
		{
			name:     "snake",
			policy:   naming.SnakeCase{},
			expected: []string{"code", "message", "stack_trace", "source", "inner_exception"},
		},
		{
			name:     "pascal",
			policy:   naming.PascalCase{},
			expected: []string{"Code", "Message", "StackTrace", "Source", "InnerException"},
		},
		{
			name:     "identity",
			policy:   naming.Identity{},
			expected: []string{"Code", "Message", "StackTrace", "Source", "InnerException"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default().WithPolicy(tt.policy)

			exc := &validationError{Code: 1}
			exc.SetMessage("boom")

			data, err := s.Marshal(exc)
			require.NoError(t, err)
			testutil.AssertKeysInOrder(t, data, tt.expected...)

			var decoded validationError
			require.NoError(t, s.Unmarshal(data, &decoded))
			assert.Equal(t, 1, decoded.Code)
			assert.Equal(t, "boom", decoded.Message())
		})
	}
}

type screamingPolicy struct{}

func (screamingPolicy) Kind() string { return "screaming" }

func (screamingPolicy) Resolve(name string) string { return strings.ToUpper(name) }

func TestExceptionConverter_UnknownPolicyFallsBackToCamel(t *testing.T) {
	s := Default().WithPolicy(screamingPolicy{})

	exc := &validationError{Code: 9}
	exc.SetMessage("boom")

	data, err := s.Marshal(exc)
	require.NoError(t, err)
	testutil.AssertKeysInOrder(t, data, "code", "message", "stackTrace", "source", "innerException")
}

func TestExceptionConverter_RoundTrip(t *testing.T) {
	s := Default()

	orig := &validationError{Code: 7}
	orig.SetMessage("write rejected")
	orig.SetStackTrace("writeLoop\n\tio.go:42")
	orig.SetSource("storage")
	orig.SetCause(types.NewException("disk full").WithSource("kernel"))

	data, err := s.Marshal(orig)
	require.NoError(t, err)

	var decoded validationError
	require.NoError(t, s.Unmarshal(data, &decoded))

	assert.Equal(t, 7, decoded.Code)
	testutil.AssertExceptionEqual(t, orig, &decoded)

	cause, ok := decoded.Cause().(*types.Exception)
	require.True(t, ok, "decoded causes materialize as *types.Exception")
	assert.Equal(t, "disk full", cause.Message())
	assert.Equal(t, "kernel", cause.Source())
}

func TestExceptionConverter_RoundTripEmbeddedPointer(t *testing.T) {
	s := Default()

	orig := &detachedError{Exception: types.NewException("detached"), Code: 3}

	data, err := s.Marshal(orig)
	require.NoError(t, err)

	var decoded detachedError
	require.NoError(t, s.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Exception, "nil embedded pointers are allocated on decode")
	assert.Equal(t, 3, decoded.Code)
	assert.Equal(t, "detached", decoded.Message())
}

func TestExceptionConverter_MarshalNilPointer(t *testing.T) {
	s := Default()

	data, err := s.Marshal((*validationError)(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestExceptionConverter_DecodeNull(t *testing.T) {
	s := Default()

	var ptr *types.Exception
	require.NoError(t, s.Unmarshal([]byte("null"), &ptr))
	assert.Nil(t, ptr)

	decoded := validationError{Code: 5}
	require.NoError(t, s.Unmarshal([]byte("null"), &decoded))
	assert.Equal(t, 0, decoded.Code, "null zeroes a value target")
}

func TestExceptionConverter_DecodeMissingKeys(t *testing.T) {
	s := Default()

	var decoded validationError
	require.NoError(t, s.Unmarshal([]byte(`{"message":"partial"}`), &decoded))
	assert.Equal(t, "partial", decoded.Message())
	assert.Equal(t, "", decoded.StackTrace())
	assert.Equal(t, "", decoded.Source())
	assert.Nil(t, decoded.Cause())
	assert.Equal(t, 0, decoded.Code)
}

func TestExceptionConverter_DecodeIgnoresUnknownKeys(t *testing.T) {
	s := Default()

	var decoded validationError
	err := s.Unmarshal([]byte(`{"message":"m","bogus":123,"innerException":null}`), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "m", decoded.Message())
}

func TestExceptionConverter_DecodeNullEnvelopeMembers(t *testing.T) {
	s := Default()

	var decoded validationError
	err := s.Unmarshal([]byte(`{"message":"m","stackTrace":null,"source":null}`), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "", decoded.StackTrace())
	assert.Equal(t, "", decoded.Source())
}

func TestExceptionConverter_LookupFailure(t *testing.T) {
	s := Default()

	var target Exception
	err := s.Unmarshal([]byte(`{"note":"x"}`), &target)
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrLookupFailure)
}

func TestExceptionConverter_DecodeTargetNotStruct(t *testing.T) {
	conv := NewExceptionConverter()
	s := NewSerializer().WithConverter(conv)

	_, err := conv.Decode(s, []byte(`{}`), reflect.TypeOf(0))
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrLookupFailure)
}

func TestExceptionConverter_EncodeWithoutSurface(t *testing.T) {
	s := Default()

	_, err := s.Marshal(Exception{Note: "impostor"})
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrUnsupportedType)
}

func TestExceptionConverter_DecodeMalformed(t *testing.T) {
	s := Default()

	var decoded validationError
	err := s.Unmarshal([]byte(`{"message":`), &decoded)
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrInvalidDocument)

	err = s.Unmarshal([]byte(`[1,2]`), &decoded)
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrInvalidDocument)
}

func TestExceptionConverter_DecodeTypeMismatch(t *testing.T) {
	s := Default()

	var decoded validationError
	err := s.Unmarshal([]byte(`{"message":5}`), &decoded)
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrConversionFailure)

	err = s.Unmarshal([]byte(`{"code":"not a number","message":"m"}`), &decoded)
	require.Error(t, err)
	testutil.AssertErrorCode(t, err, types.ErrConversionFailure)
}

func TestExceptionConverter_CanConvert(t *testing.T) {
	conv := NewExceptionConverter()

	tests := []struct {
		name     string
		typ      reflect.Type
		expected bool
	}{
		{"base type by name", reflect.TypeOf(types.Exception{}), true},
		{"pointer to base", reflect.TypeOf(&types.Exception{}), true},
		{"embedding type", reflect.TypeOf(validationError{}), true},
		{"pointer embedding type", reflect.TypeOf(detachedError{}), true},
		{"name collision without surface", reflect.TypeOf(Exception{}), true},
		{"unrelated struct", reflect.TypeOf(struct{ X int }{}), false},
		{"scalar", reflect.TypeOf(42), false},
		{"nil type", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, conv.CanConvert(tt.typ))
		})
	}
}

func TestProperty_ExceptionChain_RoundTrip(t *testing.T) {
	s := Default()

	rapid.Check(t, func(rt *rapid.T) {
		depth := rapid.IntRange(0, 4).Draw(rt, "depth")

		root := types.NewException(rapid.String().Draw(rt, "message0"))
		root.SetSource(rapid.StringMatching(`[a-z]{0,8}`).Draw(rt, "source0"))
		cur := root
		for i := 1; i <= depth; i++ {
			next := types.NewException(rapid.String().Draw(rt, fmt.Sprintf("message%d", i)))
			cur.SetCause(next)
			cur = next
		}

		data, err := s.Marshal(root)
		if err != nil {
			rt.Fatalf("marshal failed: %v", err)
		}

		var decoded *types.Exception
		if err := s.Unmarshal(data, &decoded); err != nil {
			rt.Fatalf("unmarshal failed: %v", err)
		}

		var expected types.ExceptionError = root
		var actual types.ExceptionError = decoded
		for level := 0; ; level++ {
			if expected.Message() != actual.Message() {
				rt.Fatalf("level %d: message %q != %q", level, expected.Message(), actual.Message())
			}
			if expected.StackTrace() != actual.StackTrace() {
				rt.Fatalf("level %d: stack trace mismatch", level)
			}
			if expected.Source() != actual.Source() {
				rt.Fatalf("level %d: source %q != %q", level, expected.Source(), actual.Source())
			}
			ec, ac := expected.Cause(), actual.Cause()
			if (ec == nil) != (ac == nil) {
				rt.Fatalf("level %d: cause presence mismatch", level)
			}
			if ec == nil {
				break
			}
			expected = ec.(types.ExceptionError)
			actual = ac.(types.ExceptionError)
		}
	})
}

func TestExceptionCodec_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	s := Default()

	properties.Property("extra properties always precede the envelope", prop.ForAll(
		func(code int, message string) bool {
			exc := &validationError{Code: code}
			exc.SetMessage(message)

			data, err := s.Marshal(exc)
			if err != nil {
				return false
			}
			obj, err := jsonobj.ParseObject(data)
			if err != nil {
				return false
			}
			keys := obj.Keys()
			return len(keys) == 5 && keys[0] == "code" && keys[1] == "message"
		},
		gen.Int(),
		gen.AnyString(),
	))

	properties.Property("envelope keys are present even when unset", prop.ForAll(
		func(message string) bool {
			exc := &types.Exception{}
			exc.SetMessage(message)

			data, err := s.Marshal(exc)
			if err != nil {
				return false
			}
			obj, err := jsonobj.ParseObject(data)
			if err != nil {
				return false
			}
			return obj.Has("message") && obj.Has("stackTrace") &&
				obj.Has("source") && obj.Has("innerException")
		},
		gen.AnyString(),
	))

	properties.Property("round-trip preserves message, source and extras", prop.ForAll(
		func(code int, message, source string) bool {
			exc := &validationError{Code: code}
			exc.SetMessage(message)
			exc.SetSource(source)

			data, err := s.Marshal(exc)
			if err != nil {
				return false
			}
			var decoded validationError
			if err := s.Unmarshal(data, &decoded); err != nil {
				return false
			}
			return decoded.Code == code &&
				decoded.Message() == message &&
				decoded.Source() == source
		},
		gen.Int(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func BenchmarkExceptionEncode(b *testing.B) {
	h := testutil.NewBenchmarkHelper(b)
	s := Default()
	exc := testutil.FixtureException("benchmark failure", "cause one", "cause two")

	h.ReportAllocs()
	h.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Marshal(exc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExceptionDecode(b *testing.B) {
	h := testutil.NewBenchmarkHelper(b)
	s := Default()
	data, err := s.Marshal(testutil.FixtureException("benchmark failure", "cause one", "cause two"))
	if err != nil {
		b.Fatal(err)
	}

	h.ReportAllocs()
	h.ResetTimer()
	for i := 0; i < b.N; i++ {
		var decoded *types.Exception
		if err := s.Unmarshal(data, &decoded); err != nil {
			b.Fatal(err)
		}
	}
}
