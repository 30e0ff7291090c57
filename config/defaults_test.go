package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/schemaflow/naming"
)

// --- DefaultConfig aggregate ---

func TestDefaultConfig_ContainsAllSubConfigs(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	// Each sub-config should be non-zero
	assert.NotEqual(t, SerializerConfig{}, cfg.Serializer)
	assert.NotEqual(t, GeneratorConfig{}, cfg.Generator)
	assert.NotEqual(t, LogConfig{}, cfg.Log)
}

func TestDefaultConfig_PassesValidation(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

// --- Individual Default*Config functions ---

func TestDefaultSerializerConfig(t *testing.T) {
	cfg := DefaultSerializerConfig()
	assert.Equal(t, naming.KindCamel, cfg.Policy)
	assert.Empty(t, cfg.Indent)
}

func TestDefaultGeneratorConfig(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	assert.Equal(t, 10, cfg.MaxDepth)
	assert.True(t, cfg.IncludeTitles)
	assert.Equal(t, naming.KindCamel, cfg.Policy)
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
	assert.True(t, cfg.EnableCaller)
	assert.False(t, cfg.EnableStacktrace)
}
