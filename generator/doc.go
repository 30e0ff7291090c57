// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package generator 提供基于反射的 JSON Schema 生成器。

# 概述

generator 包从 Go 结构体推导 types.JSONSchema 文档：按 Kind 映射类型，
内联展开匿名嵌入字段，识别 time.Time、uuid.UUID、json.RawMessage 等
特殊类型，并从 json / validate / 约束标签中提取属性名与校验约束。
未打标签的字段名经由激活的命名策略解析。

# 核心类型与函数

  - Generator        — 生成器（WithMaxDepth / WithPolicy / WithTitles / WithLogger 配置）
  - Generate         — 从值的动态类型推导 Schema
  - GenerateType     — 从 reflect.Type 推导 Schema
  - ExceptionSchema  — codec 异常线格式的 Schema（信封 + $defs 递归引用）

# 生成规则

  - 指针解引用后映射；指针字段不进入 required 列表
  - json 标签名优先，validate:"required" 强制必填，omitempty 取消必填
  - 结构体嵌套受 maxDepth 限制，越界或成环时折叠为开放 object
  - 每个根类型的结果缓存一次，Generator 可并发使用
*/
package generator
