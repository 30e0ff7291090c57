// Copyright 2026 SchemaFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package main 提供 SchemaFlow 命令行工具入口。

# 概述

cmd/schemaflow 是围绕异常线格式的小型工具集，面向调试与联调场景：
导出线格式的 JSON Schema、按参数生成样例报文、解码既有报文并展示
异常链、以及校验 YAML 配置文件。所有子命令共享 quick 门面的选项
解析，显式命令行参数优先于配置文件。

# 主要能力

  - 子命令：schema（导出 Schema）、encode（生成样例报文）、
    decode（解码并打印异常链）、config（校验并打印生效配置）、version
  - 命名策略：--policy 在 identity、camel、pascal、snake 间切换
  - 输出控制：--pretty 输出缩进 JSON，decode 支持文件与标准输入
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置

# 运行方式

	schemaflow schema --policy snake --pretty
	schemaflow encode --message "disk full" --cause "io timeout"
	cat payload.json | schemaflow decode
*/
package main
