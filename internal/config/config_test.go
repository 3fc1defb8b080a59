package config

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `<API REQUEST_DUMP="true">
  <CONTEXT>
    <PORT>9090</PORT>
    <HOST>0.0.0.0</HOST>
  </CONTEXT>
  <PAGINATION>
    <PAGE_SIZE>25</PAGE_SIZE>
  </PAGINATION>
  <DB>
    <INITIALIZE>true</INITIALIZE>
    <HOST>localhost</HOST>
    <PORT>5432</PORT>
    <NAME>gamifyiq</NAME>
    <USERNAME>postgres</USERNAME>
    <PASSWORD>secret</PASSWORD>
    <POOL>
      <MAX_OPEN_CONNS>20</MAX_OPEN_CONNS>
      <MAX_IDLE_CONNS>5</MAX_IDLE_CONNS>
      <CONN_MAX_LIFETIME>30</CONN_MAX_LIFETIME>
    </POOL>
  </DB>
  <LLM>
    <PROVIDER>openai</PROVIDER>
    <MODEL>gpt-4o-mini</MODEL>
    <TEMPERATURE>0.3</TEMPERATURE>
    <MAX_TOKENS>2000</MAX_TOKENS>
  </LLM>
</API>`

func TestConfigUnmarshal(t *testing.T) {
	var cfg APIConfig
	require.NoError(t, xml.Unmarshal([]byte(sampleConfig), &cfg))

	assert.True(t, cfg.RequestDump)
	assert.Equal(t, 9090, cfg.Context.Port)
	assert.Equal(t, 25, cfg.Pagination.PageSize)
	assert.True(t, cfg.DB.Initialize)
	assert.Equal(t, "gamifyiq", cfg.DB.Name)
	assert.Equal(t, 20, cfg.DB.Pool.MaxOpenConns)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
}

func TestApplyDefaults(t *testing.T) {
	var cfg APIConfig
	applyDefaults(&cfg)

	assert.Equal(t, 8080, cfg.Context.Port)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.LLM.OllamaURL)
	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.ScenarioCount)
	assert.Equal(t, "medium", cfg.LLM.Difficulty)
	assert.Equal(t, 10, cfg.Upload.MaxFileSizeMB)
}
