// =============================================================================
// 📦 SchemaFlow 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "github.com/BaSui01/schemaflow/naming"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Serializer: DefaultSerializerConfig(),
		Generator:  DefaultGeneratorConfig(),
		Log:        DefaultLogConfig(),
	}
}

// DefaultSerializerConfig 返回默认序列化器配置
func DefaultSerializerConfig() SerializerConfig {
	return SerializerConfig{
		Policy: naming.KindCamel,
		Indent: "",
	}
}

// DefaultGeneratorConfig 返回默认生成器配置
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxDepth:      10,
		IncludeTitles: true,
		Policy:        naming.KindCamel,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}
