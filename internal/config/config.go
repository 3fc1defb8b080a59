package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	DB             DBConfig             `xml:"DB"`
	LLM            LLMConfig            `xml:"LLM"`
	Upload         UploadConfig         `xml:"UPLOAD"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds authentication settings.
type AuthenticationConfig struct {
	EnableTokenAuth bool `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout  int  `xml:"SESSION_TIMEOUT"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Name       string       `xml:"NAME"`
	SSLMode    string       `xml:"SSL_MODE"`
	Username   string       `xml:"USERNAME"`
	Password   string       `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"` // minutes
}

// LLMConfig selects and tunes the completion provider.
type LLMConfig struct {
	Provider      string  `xml:"PROVIDER"` // ollama or openai
	OllamaURL     string  `xml:"OLLAMA_URL"`
	OpenAIBaseURL string  `xml:"OPENAI_BASE_URL"`
	Model         string  `xml:"MODEL"`
	Temperature   float64 `xml:"TEMPERATURE"`
	MaxTokens     int     `xml:"MAX_TOKENS"`
	ScenarioCount int     `xml:"SCENARIO_COUNT"`
	Difficulty    string  `xml:"DIFFICULTY"`
}

// UploadConfig bounds document uploads.
type UploadConfig struct {
	MaxFileSizeMB int `xml:"MAX_FILE_SIZE_MB"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			return
		}

		applyDefaults(&newCfg)
		cfg = &newCfg
	})

	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

func applyDefaults(c *APIConfig) {
	if c.Context.Port == 0 {
		c.Context.Port = 8080
	}
	if c.Pagination.PageSize == 0 {
		c.Pagination.PageSize = 10
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.OllamaURL == "" {
		c.LLM.OllamaURL = "http://localhost:11434/api/generate"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "mistral"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 3000
	}
	if c.LLM.ScenarioCount == 0 {
		c.LLM.ScenarioCount = 5
	}
	if c.LLM.Difficulty == "" {
		c.LLM.Difficulty = "medium"
	}
	if c.Upload.MaxFileSizeMB == 0 {
		c.Upload.MaxFileSizeMB = 10
	}
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}
