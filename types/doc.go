// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package types 提供 SchemaFlow 库的全局共享类型定义。

# 概述

types 是库最底层的公共包，不依赖任何内部包，为 codec、generator、
introspect、config 等上层模块提供统一的类型契约。所有跨包共享的接口、
结构体、枚举和错误码均定义于此，以避免循环依赖。

# 核心接口与类型

  - Exception          — 可序列化错误的基础值（message / stackTrace / source / cause）
  - ExceptionError     — 异常的只读能力接口（Message / StackTrace / Source / Cause）
  - ExceptionWriter    — 异常的可写能力接口（SetMessage / SetCause 等，供解码恢复状态）
  - Error / ErrorCode  — 结构化错误体系，含 TypeName、Field 定位信息
  - JSONSchema         — JSON Schema 定义与构建器（NewObjectSchema 等）
  - SchemaType         — JSON Schema 类型枚举（string / object / array 等）
  - StringFormat       — 字符串格式约束（date-time / uuid / email 等）

# 主要能力

  - 异常构造：NewException / WrapException（自动捕获调用栈）
  - 错误工具链：NewError / WithCause / IsErrorCode / GetErrorCode
  - Schema 构建：AddProperty / AddRequired / WithFormat / AddDefinition
  - Schema 序列化：ToJSON / FromJSON
*/
package types
