// =============================================================================
// 🧪 测试辅助函数
// =============================================================================
// 提供通用的测试辅助函数和断言
//
// 使用方法:
//
//	testutil.AssertKeysInOrder(t, data, "code", "message")
//	testutil.AssertExceptionEqual(t, expected, actual)
// =============================================================================
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/BaSui01/schemaflow/jsonobj"
	"github.com/BaSui01/schemaflow/types"
)

// =============================================================================
// 🔍 断言辅助
// =============================================================================

// AssertJSONEqual 断言两个值的 JSON 表示相等
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual: %s", expectedJSON, actualJSON)
	}
}

// AssertKeysInOrder 断言 JSON 对象的顶层键按给定顺序排列
func AssertKeysInOrder(t *testing.T, data []byte, expected ...string) {
	t.Helper()

	obj, err := jsonobj.ParseObject(data)
	if err != nil {
		t.Fatalf("failed to parse JSON object: %v", err)
	}

	keys := obj.Keys()
	if len(keys) != len(expected) {
		t.Errorf("key count mismatch: expected %v, got %v", expected, keys)
		return
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("key[%d] mismatch: expected %q, got %q (all keys: %v)", i, expected[i], keys[i], keys)
		}
	}
}

// AssertExceptionEqual 断言两个异常的消息、堆栈、来源与因果链相等
func AssertExceptionEqual(t *testing.T, expected, actual types.ExceptionError) {
	t.Helper()

	if expected.Message() != actual.Message() {
		t.Errorf("message mismatch: expected %q, got %q", expected.Message(), actual.Message())
	}
	if expected.StackTrace() != actual.StackTrace() {
		t.Errorf("stack trace mismatch: expected %q, got %q", expected.StackTrace(), actual.StackTrace())
	}
	if expected.Source() != actual.Source() {
		t.Errorf("source mismatch: expected %q, got %q", expected.Source(), actual.Source())
	}

	expectedCause, actualCause := expected.Cause(), actual.Cause()
	switch {
	case expectedCause == nil && actualCause == nil:
		return
	case expectedCause == nil || actualCause == nil:
		t.Errorf("cause mismatch: expected %v, got %v", expectedCause, actualCause)
	default:
		ec, eok := expectedCause.(types.ExceptionError)
		ac, aok := actualCause.(types.ExceptionError)
		if eok && aok {
			AssertExceptionEqual(t, ec, ac)
			return
		}
		if expectedCause.Error() != actualCause.Error() {
			t.Errorf("cause text mismatch: expected %q, got %q", expectedCause.Error(), actualCause.Error())
		}
	}
}

// AssertNoError 断言没有错误
func AssertNoError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		if len(msgAndArgs) > 0 {
			t.Errorf("%v: unexpected error: %v", msgAndArgs[0], err)
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
}

// AssertError 断言有错误
func AssertError(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		if len(msgAndArgs) > 0 {
			t.Errorf("%v: expected error but got nil", msgAndArgs[0])
		} else {
			t.Error("expected error but got nil")
		}
	}
}

// AssertErrorCode 断言错误携带指定错误码
func AssertErrorCode(t *testing.T, err error, code types.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Errorf("expected error with code %s but got nil", code)
		return
	}
	if got := types.GetErrorCode(err); got != code {
		t.Errorf("error code mismatch: expected %s, got %s (error: %v)", code, got, err)
	}
}

// AssertContains 断言字符串包含子串
func AssertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}

// AssertNotContains 断言字符串不包含子串
func AssertNotContains(t *testing.T, s, substr string) {
	t.Helper()
	if contains(s, substr) {
		t.Errorf("expected %q to not contain %q", s, substr)
	}
}

func contains(s, substr string) bool {
	return len(substr) == 0 || (len(s) >= len(substr) && searchSubstring(s, substr))
}

func searchSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// =============================================================================
// 🔧 测试数据辅助
// =============================================================================

// MustJSON 将值转换为 JSON 字符串，失败时 panic
func MustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// MustParseJSON 解析 JSON 字符串，失败时 panic
func MustParseJSON[T any](s string) T {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		panic(err)
	}
	return v
}

// FixtureID 生成测试用的唯一标识
func FixtureID() string {
	return uuid.NewString()
}

// FixtureException 构造带来源与因果链的测试异常
func FixtureException(message string, causes ...string) *types.Exception {
	exc := types.NewException(message)
	exc.SetSource("testutil")
	current := exc
	for _, cause := range causes {
		next := types.NewException(cause)
		current.SetCause(next)
		current = next
	}
	return exc
}

// =============================================================================
// 📊 基准测试辅助
// =============================================================================

// BenchmarkHelper 基准测试辅助结构
type BenchmarkHelper struct {
	b *testing.B
}

// NewBenchmarkHelper 创建基准测试辅助
func NewBenchmarkHelper(b *testing.B) *BenchmarkHelper {
	return &BenchmarkHelper{b: b}
}

// ResetTimer 重置计时器
func (h *BenchmarkHelper) ResetTimer() {
	h.b.ResetTimer()
}

// StopTimer 停止计时器
func (h *BenchmarkHelper) StopTimer() {
	h.b.StopTimer()
}

// StartTimer 启动计时器
func (h *BenchmarkHelper) StartTimer() {
	h.b.StartTimer()
}

// ReportAllocs 报告内存分配
func (h *BenchmarkHelper) ReportAllocs() {
	h.b.ReportAllocs()
}

// RunParallel 并行运行基准测试
func (h *BenchmarkHelper) RunParallel(body func()) {
	h.b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			body()
		}
	})
}
