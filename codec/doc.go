// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package codec 提供可插拔的 JSON 序列化器与异常编解码器。

# 概述

codec 包实现 SchemaFlow 的序列化核心：Serializer 按注册顺序将值分派给
第一个认领其类型的 Converter，未被认领的值走标准 JSON 路径。包内置
ExceptionConverter，负责异常值的编解码。

# 异常线格式

固定信封按激活的命名策略输出四个键（message / stackTrace / source /
innerException），无论是否为空总是存在；具体类型自身的导出字段作为
额外属性，按发现顺序的逆序排在信封之前。保留名（Message、StackTrace、
Source、InnerException、Data、TargetSite、HelpLink、HResult）不会出现
在额外属性中。

# 核心类型

  - Serializer          — 不可变序列化器（WithPolicy / WithConverter / WithoutConverter 返回克隆）
  - Converter           — 序列化插件接口（CanConvert / Encode / Decode）
  - ExceptionConverter  — 异常编解码器（信封 + 额外属性，解码时临时摘除自身）

# 错误语义

  - 未命中（序列中无匹配、JSON 键缺失）→ (zero, false)，不是错误
  - 目标缺少 ExceptionWriter 能力 → LOOKUP_FAILURE，硬失败
  - JSON 畸形或值类型不符 → CONVERSION_FAILURE / INVALID_DOCUMENT，按原样向上传播

编解码路径不做日志、不做重试、不做恢复。
*/
package codec
