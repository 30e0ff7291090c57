// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供 SchemaFlow 测试的共享工具和辅助函数。

# 概述

testutil 包为整个项目的单元测试与基准测试提供统一的辅助能力，
避免各包重复实现相似的测试基础设施。所有测试应优先使用此包
中的工具函数。

# 核心能力

  - 断言工具: AssertJSONEqual / AssertKeysInOrder / AssertExceptionEqual /
    AssertNoError / AssertError / AssertErrorCode / AssertContains 等
  - 数据工具: MustJSON / MustParseJSON，简化测试数据构造
  - 测试夹具: FixtureID 生成唯一标识，FixtureException 构造带
    来源与因果链的异常值
  - 基准辅助: BenchmarkHelper 封装 testing.B 常用操作

# 使用示例

	func TestEncode(t *testing.T) {
		exc := testutil.FixtureException("boom", "cause")
		data, err := s.Marshal(exc)
		testutil.AssertNoError(t, err)
		testutil.AssertKeysInOrder(t, data,
			"message", "stackTrace", "source", "innerException")
	}

AssertKeysInOrder 检查编码结果的顶层键序：额外属性在前，
信封成员居后。AssertExceptionEqual 递归比较整条因果链。
*/
package testutil
