// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package introspect 提供基于名称的反射类型检查工具。

# 概述

introspect 包以字符串形式（简单名或全限定名）对 reflect.Type 进行匹配、
查找与继承链遍历，供 codec 在不引入编译期类型依赖的情况下识别可序列化
的错误类型。所有函数均为无状态纯函数，并发安全。

# 继承模型

Go 没有类继承，本包以嵌入结构体链作为祖先链：一个结构体类型的祖先是其
第一个匿名结构体字段（指针自动解引用），链在没有匿名结构体字段时终止。
接口实现关系不参与遍历。

# 核心函数

  - TypeName                   — 按 NameStyle 取类型名（简单名 / 全限定名）
  - Base                       — 取祖先类型（第一个匿名结构体字段）
  - IsAssignableToTypeName     — 自身或任一祖先名称匹配
  - InheritsFromTypeName       — 仅严格祖先名称匹配
  - FirstByTypeName            — 序列中第一个动态类型精确匹配的元素
  - FirstAssignableToTypeName  — 序列中第一个可赋值匹配的元素
  - TypeArguments              — 泛型实参名列表（沿祖先链上溯）
  - SafeTypeName               — 代码生成安全名（ContainerOfString 形式）
*/
package introspect
