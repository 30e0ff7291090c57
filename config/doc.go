// Package config 提供 SchemaFlow 的配置管理功能。
//
// 包含序列化器、Schema 生成器与日志的配置模型，
// 支持从 YAML 文件和环境变量加载配置（默认值 → 文件 → 环境变量），
// 并依据 LogConfig 构建 zap.Logger。
package config
